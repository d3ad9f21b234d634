// Package analyzer extracts style patterns from a corpus of published
// posts. The heuristics are cheap lexical measures, good enough to steer
// a prompt; no NLP stack involved.
package analyzer

import (
	"log/slog"
	"regexp"
	"strings"

	"threadflow/internal/domain"
)

var (
	sentenceSplit = regexp.MustCompile(`[.!?]+`)
	numberedItem  = regexp.MustCompile(`\d+\.`)
	questionRe    = regexp.MustCompile(`[^.!?]*\?`)
	imperativeRe  = regexp.MustCompile(`(?i)\b(Let's|Try|Start|Build|Create)`)
)

// conversationalWords are checked as substrings of the joined corpus; the
// count of distinct hits is normalized by (texts * 10).
var conversationalWords = []string{"you", "your", "we", "our", "i", "my"}

var directStarters = []string{"Here", "This", "That", "The", "Most", "Many"}

const (
	maxStarters      = 5
	maxEndings       = 5
	maxQuestions     = 10
	maxExamplePosts  = 5
	minPhraseLength  = 10
	maxStarterLength = 150
)

// Analyzer computes style analyses from raw post texts.
type Analyzer struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Analyzer {
	return &Analyzer{logger: logger}
}

// Analyze computes a style analysis over the given texts. Empty strings
// are skipped; an input with no usable text yields an empty analysis.
func (a *Analyzer) Analyze(texts []string) *domain.StyleAnalysis {
	usable := make([]string, 0, len(texts))
	for _, t := range texts {
		if t != "" {
			usable = append(usable, t)
		}
	}
	if len(usable) == 0 {
		return &domain.StyleAnalysis{}
	}

	totalChars := 0
	minLen, maxLen := -1, 0
	for _, t := range usable {
		n := len([]rune(t))
		totalChars += n
		if minLen < 0 || n < minLen {
			minLen = n
		}
		if n > maxLen {
			maxLen = n
		}
	}

	examples := usable
	if len(examples) > maxExamplePosts {
		examples = examples[:maxExamplePosts]
	}

	analysis := &domain.StyleAnalysis{
		TotalPosts:        len(usable),
		AvgLength:         float64(totalChars) / float64(len(usable)),
		MinLength:         minLen,
		MaxLength:         maxLen,
		CommonStarters:    extractStarters(usable),
		CommonEndings:     extractEndings(usable),
		StructurePatterns: analyzeStructure(usable),
		ToneIndicators:    analyzeTone(usable),
		CommonQuestions:   extractQuestions(usable),
		ExamplePosts:      examples,
	}

	a.logger.Debug("analyzed post corpus",
		"posts", analysis.TotalPosts,
		"avg_length", analysis.AvgLength,
	)
	return analysis
}

// extractStarters collects opening sentences that look like deliberate
// hooks rather than fragments or whole paragraphs.
func extractStarters(texts []string) []string {
	var starters []string
	for _, text := range texts {
		first := strings.TrimSpace(sentenceSplit.Split(text, -1)[0])
		if n := len([]rune(first)); n > minPhraseLength && n < maxStarterLength {
			starters = append(starters, first)
		}
		if len(starters) == maxStarters {
			break
		}
	}
	return starters
}

func extractEndings(texts []string) []string {
	var endings []string
	for _, text := range texts {
		sentences := sentenceSplit.Split(text, -1)
		last := strings.TrimSpace(sentences[len(sentences)-1])
		if len([]rune(last)) > minPhraseLength {
			endings = append(endings, last)
		}
		if len(endings) == maxEndings {
			break
		}
	}
	return endings
}

func analyzeStructure(texts []string) domain.StructurePatterns {
	total := float64(len(texts))
	var bullets, questions, numbers, paragraphs, lineBreaks int
	for _, t := range texts {
		if strings.ContainsAny(t, "•-*") {
			bullets++
		}
		if strings.Contains(t, "?") {
			questions++
		}
		if numberedItem.MatchString(t) {
			numbers++
		}
		if strings.Contains(t, "\n\n") {
			paragraphs++
		}
		if strings.Contains(t, "\n") {
			lineBreaks++
		}
	}
	return domain.StructurePatterns{
		UsesBullets:     float64(bullets) / total,
		UsesQuestions:   float64(questions) / total,
		UsesNumbers:     float64(numbers) / total,
		ParagraphBreaks: float64(paragraphs) / total,
		UsesLineBreaks:  float64(lineBreaks) / total,
	}
}

func analyzeTone(texts []string) domain.ToneIndicators {
	total := float64(len(texts))
	allText := strings.ToLower(strings.Join(texts, " "))

	conversational := 0
	for _, word := range conversationalWords {
		if strings.Contains(allText, word) {
			conversational++
		}
	}

	var direct, questionHeavy, imperative int
	for _, t := range texts {
		for _, prefix := range directStarters {
			if strings.HasPrefix(t, prefix) {
				direct++
				break
			}
		}
		if strings.Count(t, "?") > 1 {
			questionHeavy++
		}
		if imperativeRe.MatchString(t) {
			imperative++
		}
	}

	return domain.ToneIndicators{
		Conversational: float64(conversational) / (total * 10),
		Direct:         float64(direct) / total,
		QuestionHeavy:  float64(questionHeavy) / total,
		UsesImperative: float64(imperative) / total,
	}
}

func extractQuestions(texts []string) []string {
	var questions []string
	for _, text := range texts {
		for _, q := range questionRe.FindAllString(text, -1) {
			q = strings.TrimSpace(q)
			if len([]rune(q)) > minPhraseLength {
				questions = append(questions, q)
			}
			if len(questions) == maxQuestions {
				return questions
			}
		}
	}
	return questions
}
