package analyzer

import (
	"log/slog"
	"strings"
	"testing"
)

func testAnalyzer() *Analyzer {
	return New(slog.New(slog.DiscardHandler))
}

func TestAnalyzeEmptyCorpus(t *testing.T) {
	a := testAnalyzer()

	for _, texts := range [][]string{nil, {}, {"", ""}} {
		result := a.Analyze(texts)
		if !result.Empty() {
			t.Errorf("Analyze(%q) = %+v, want empty analysis", texts, result)
		}
	}
}

func TestAnalyzeLengths(t *testing.T) {
	a := testAnalyzer()

	result := a.Analyze([]string{"aaaa", "aaaaaaaa", "", "aaaaaa"})

	if result.TotalPosts != 3 {
		t.Errorf("TotalPosts = %d, want 3 (empty text skipped)", result.TotalPosts)
	}
	if result.MinLength != 4 || result.MaxLength != 8 {
		t.Errorf("length bounds = [%d, %d], want [4, 8]", result.MinLength, result.MaxLength)
	}
	if result.AvgLength != 6 {
		t.Errorf("AvgLength = %v, want 6", result.AvgLength)
	}
}

func TestExtractStarters(t *testing.T) {
	a := testAnalyzer()

	tests := []struct {
		name string
		text string
		want int
	}{
		{"qualifying hook", "Ever wondered why builds are slow? Here is why.", 1},
		{"too short", "Hi. The rest of this post is long enough though.", 0},
		{"too long", strings.Repeat("a", 200) + ". Tail.", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := a.Analyze([]string{tt.text})
			if got := len(result.CommonStarters); got != tt.want {
				t.Errorf("starters = %v, want %d entries", result.CommonStarters, tt.want)
			}
		})
	}
}

func TestExtractStartersCapped(t *testing.T) {
	a := testAnalyzer()

	texts := make([]string, 8)
	for i := range texts {
		texts[i] = "This opening sentence qualifies easily. Tail."
	}

	result := a.Analyze(texts)
	if len(result.CommonStarters) != 5 {
		t.Errorf("starters capped at %d, want 5", len(result.CommonStarters))
	}
}

func TestStructurePatterns(t *testing.T) {
	a := testAnalyzer()

	result := a.Analyze([]string{
		"• first point\n• second point",
		"plain text with no structure at all",
		"What do you think?\n\nSecond paragraph here",
		"1. numbered item here",
	})

	s := result.StructurePatterns
	if s.UsesBullets != 0.25 {
		t.Errorf("UsesBullets = %v, want 0.25", s.UsesBullets)
	}
	if s.UsesQuestions != 0.25 {
		t.Errorf("UsesQuestions = %v, want 0.25", s.UsesQuestions)
	}
	if s.UsesNumbers != 0.25 {
		t.Errorf("UsesNumbers = %v, want 0.25", s.UsesNumbers)
	}
	if s.ParagraphBreaks != 0.25 {
		t.Errorf("ParagraphBreaks = %v, want 0.25", s.ParagraphBreaks)
	}
	if s.UsesLineBreaks != 0.5 {
		t.Errorf("UsesLineBreaks = %v, want 0.5", s.UsesLineBreaks)
	}
}

func TestToneIndicators(t *testing.T) {
	a := testAnalyzer()

	result := a.Analyze([]string{
		"Here is the thing about your workflow? Or is it? Let's fix it.",
		"zzz qqq zzz",
	})

	tone := result.ToneIndicators
	// "you"/"your", "i" (substring), "my"? no; "we"? no; "our" (in "your"): 4 hits / (2*10)
	if tone.Conversational != 0.2 {
		t.Errorf("Conversational = %v, want 0.2", tone.Conversational)
	}
	if tone.Direct != 0.5 {
		t.Errorf("Direct = %v, want 0.5", tone.Direct)
	}
	if tone.QuestionHeavy != 0.5 {
		t.Errorf("QuestionHeavy = %v, want 0.5", tone.QuestionHeavy)
	}
	if tone.UsesImperative != 0.5 {
		t.Errorf("UsesImperative = %v, want 0.5", tone.UsesImperative)
	}
}

func TestFormatForPrompt(t *testing.T) {
	a := testAnalyzer()

	t.Run("empty analysis", func(t *testing.T) {
		if got := FormatForPrompt(a.Analyze(nil)); got != "" {
			t.Errorf("FormatForPrompt(empty) = %q, want \"\"", got)
		}
	})

	t.Run("includes examples and preferences", func(t *testing.T) {
		texts := []string{
			"What slows your build down?\nUsually the linker.",
			"Do you cache your deps?\nYou should.",
		}
		out := FormatForPrompt(a.Analyze(texts))

		if !strings.Contains(out, "POST STYLE ANALYSIS") {
			t.Error("missing analysis header")
		}
		if !strings.Contains(out, "Example 1:") || !strings.Contains(out, "Example 2:") {
			t.Errorf("missing numbered examples in:\n%s", out)
		}
		if !strings.Contains(out, "Uses line breaks for structure") {
			t.Error("expected line-break preference (ratio 1.0 > 0.5)")
		}
		if !strings.Contains(out, "Generate a post that matches this style") {
			t.Error("missing closing instruction")
		}
	})

	t.Run("long example truncated", func(t *testing.T) {
		long := strings.Repeat("x", 400)
		out := FormatForPrompt(a.Analyze([]string{long}))
		if strings.Contains(out, long) {
			t.Error("example over 300 chars should be truncated")
		}
		if !strings.Contains(out, strings.Repeat("x", 300)+"...") {
			t.Error("truncated example should end with ellipsis")
		}
	})
}
