package domain

// StructurePatterns holds per-text membership ratios for structural habits,
// each in [0,1].
type StructurePatterns struct {
	UsesBullets     float64 `json:"uses_bullets"`
	UsesQuestions   float64 `json:"uses_questions"`
	UsesNumbers     float64 `json:"uses_numbers"`
	ParagraphBreaks float64 `json:"paragraph_breaks"`
	UsesLineBreaks  float64 `json:"uses_line_breaks"`
}

// ToneIndicators holds tone ratios extracted from a post corpus. The
// conversational score is normalized by (total texts * 10), a fixed
// normalizer kept from the original heuristic; it is not a proportion.
type ToneIndicators struct {
	Conversational float64 `json:"conversational"`
	Direct         float64 `json:"direct"`
	QuestionHeavy  float64 `json:"question_heavy"`
	UsesImperative float64 `json:"uses_imperative"`
}

// StyleAnalysis is the aggregate computed from a user's historical posts.
// It is derived and ephemeral: recomputed on every invocation, persisted
// only as a metadata snapshot on drafts it produced.
type StyleAnalysis struct {
	TotalPosts        int               `json:"total_posts"`
	AvgLength         float64           `json:"avg_length"`
	MinLength         int               `json:"min_length"`
	MaxLength         int               `json:"max_length"`
	CommonStarters    []string          `json:"common_starters,omitempty"`
	CommonEndings     []string          `json:"common_endings,omitempty"`
	StructurePatterns StructurePatterns `json:"structure_patterns"`
	ToneIndicators    ToneIndicators    `json:"tone_indicators"`
	CommonQuestions   []string          `json:"common_questions,omitempty"`
	ExamplePosts      []string          `json:"example_posts,omitempty"`
}

// Empty reports whether the analysis was computed from no usable text.
func (a *StyleAnalysis) Empty() bool {
	return a == nil || a.TotalPosts == 0
}
