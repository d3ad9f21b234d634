package analyzer

import (
	"fmt"
	"strings"

	"threadflow/internal/domain"
)

const exampleTruncateAt = 300

// FormatForPrompt renders an analysis as a prompt block instructing the
// model to match the analyzed style. An empty analysis renders as "".
func FormatForPrompt(analysis *domain.StyleAnalysis) string {
	if analysis.Empty() {
		return ""
	}

	parts := []string{"\nPOST STYLE ANALYSIS:"}

	if len(analysis.ExamplePosts) > 0 {
		parts = append(parts, "\nExample posts to match style:")
		for i, post := range analysis.ExamplePosts {
			parts = append(parts, fmt.Sprintf("\nExample %d:", i+1))
			if runes := []rune(post); len(runes) > exampleTruncateAt {
				post = string(runes[:exampleTruncateAt]) + "..."
			}
			parts = append(parts, post)
		}
	}

	if len(analysis.CommonStarters) > 0 {
		parts = append(parts, "\nCommon opening patterns:")
		for _, starter := range firstN(analysis.CommonStarters, 3) {
			parts = append(parts, "  • "+starter)
		}
	}

	if len(analysis.CommonEndings) > 0 {
		parts = append(parts, "\nCommon ending patterns:")
		for _, ending := range firstN(analysis.CommonEndings, 3) {
			parts = append(parts, "  • "+ending)
		}
	}

	structure := analysis.StructurePatterns
	var prefs []string
	if structure.UsesBullets > 0.3 {
		prefs = append(prefs, "  • Often uses bullet points")
	}
	if structure.UsesQuestions > 0.5 {
		prefs = append(prefs, "  • Frequently ends with questions")
	}
	if structure.UsesLineBreaks > 0.5 {
		prefs = append(prefs, "  • Uses line breaks for structure")
	}
	if len(prefs) > 0 {
		parts = append(parts, "\nStructure preferences:")
		parts = append(parts, prefs...)
	}

	parts = append(parts, "\nGenerate a post that matches this style and structure.")

	return strings.Join(parts, "\n")
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
