package generation

import (
	"strings"

	"threadflow/internal/service/prompt"
)

// emojiRanges are the Unicode blocks scrubbed from model output. Whitelisted
// decoration symbols that fall inside these blocks are exempt.
var emojiRanges = [][2]rune{
	{0x2600, 0x26FF},   // miscellaneous symbols
	{0x2700, 0x27BF},   // dingbats
	{0x2B00, 0x2BFF},   // misc symbols and arrows (⭐ etc.)
	{0xFE00, 0xFE0F},   // variation selectors
	{0x1F1E6, 0x1F1FF}, // regional indicators
	{0x1F300, 0x1F5FF}, // symbols and pictographs
	{0x1F600, 0x1F64F}, // emoticons
	{0x1F680, 0x1F6FF}, // transport
	{0x1F900, 0x1F9FF}, // supplemental symbols
	{0x1FA00, 0x1FAFF}, // extended pictographs
}

var allowedSymbols = func() map[rune]bool {
	set := make(map[rune]bool)
	for _, r := range prompt.AllowedSymbols {
		set[r] = true
	}
	return set
}()

func isForbiddenSymbol(r rune) bool {
	if allowedSymbols[r] {
		return false
	}
	for _, rng := range emojiRanges {
		if r >= rng[0] && r <= rng[1] {
			return true
		}
	}
	return false
}

// stripWrappingQuotes removes one quote pair wrapping the whole text.
// Models sometimes return the post quoted despite instructions.
func stripWrappingQuotes(text string) string {
	if len(text) >= 2 && strings.HasPrefix(text, `"`) && strings.HasSuffix(text, `"`) {
		return text[1 : len(text)-1]
	}
	return text
}

// stripEmojis removes forbidden symbols and collapses the space runs the
// removals leave behind. Newlines are preserved.
func stripEmojis(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	removed := false
	for _, r := range text {
		if isForbiddenSymbol(r) {
			removed = true
			continue
		}
		b.WriteRune(r)
	}
	if !removed {
		return text
	}

	lines := strings.Split(b.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return strings.Join(lines, "\n")
}

// smartTruncate cuts text down to max characters, preferring a sentence
// boundary at or after 70% of the cap, then a word or line boundary at
// or after 80%, then a hard cut.
func smartTruncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	cut := runes[:max]

	sentenceFloor := max * 7 / 10
	for i := max - 1; i >= sentenceFloor; i-- {
		switch cut[i] {
		case '.', '!', '?':
			return strings.TrimSpace(string(cut[:i+1]))
		}
	}

	wordFloor := max * 8 / 10
	for i := max - 1; i >= wordFloor; i-- {
		if cut[i] == ' ' || cut[i] == '\n' {
			return strings.TrimSpace(string(cut[:i]))
		}
	}

	return string(cut)
}
