// Package prompt builds the instruction strings sent to the generation
// model. Builders are pure string construction: no I/O, no randomness.
package prompt

import (
	"strings"

	"threadflow/internal/brand"
	"threadflow/internal/domain"
)

// Builder assembles generation prompts, optionally flavored by a brand
// profile.
type Builder struct {
	profile *brand.Profile
}

// NewBuilder creates a prompt builder. profile may be nil or empty; the
// prompts simply omit brand context.
func NewBuilder(profile *brand.Profile) *Builder {
	return &Builder{profile: profile}
}

const (
	lengthDirective       = "- MAXIMUM 500 characters - aim for 400-450 characters to be safe"
	strictLengthDirective = "- CRITICAL: MAXIMUM 500 characters - MUST be under 500. Aim for 400-450 characters. Be very concise."

	connectionLengthDirective       = "- MAXIMUM 200 characters - aim for 100-150 characters"
	strictConnectionLengthDirective = "- CRITICAL: MAXIMUM 200 characters - MUST be under 200. Aim for 100-150 characters. Be very concise."
)

// checklist is the fixed requirement block shared by all prompt variants.
// The length directive is injected per variant.
func checklist(lengthLine string) []string {
	return []string{
		"",
		"CRITICAL REQUIREMENTS:",
		"- NEVER use emojis (🚀, 🤔, 🔒, 👇, etc.) - they are STRICTLY FORBIDDEN",
		"- Use ONLY plain text and simple symbols for decoration",
		"- Allowed symbols: " + strings.Join(ListMarkers, " ") + " (bullets, arrows, stars only)",
		lengthLine,
		"- Be concise and direct - every word counts",
		"- Make it conversational and authentic",
		"- Add value or insight",
		"- Use engaging language",
		"- No hashtags unless natural",
		"- Write in first or second person when appropriate",
		"- End with a question or call-to-action when natural",
		"",
		"Examples of allowed formatting:",
		"• Point one",
		"→ Point two",
		"★ Key insight",
		"",
	}
}

const closingInstruction = "Generate ONLY the post text, nothing else. No quotes, no explanations. NO EMOJIS. MAX 500 CHARACTERS."

const connectionClosingInstruction = "Generate ONLY the post text, nothing else. No quotes, no explanations. NO EMOJIS. MAX 200 CHARACTERS."

// Brief builds the prompt for a Notion-brief post. strict tightens the
// length wording for the single length-violation retry.
func (b *Builder) Brief(brief *domain.Brief, strict bool) string {
	parts := []string{
		"Create an engaging Threads post about: " + brief.Topic,
	}

	parts = append(parts, b.brandContext()...)

	if brief.Pillar != "" {
		parts = append(parts, "\nContent pillar: "+brief.Pillar)
	}
	if postType := strings.Join(brief.PostTypes, ", "); postType != "" && postType != "Text" {
		parts = append(parts, "Post type: "+postType)
	}

	lengthLine := lengthDirective
	if strict {
		lengthLine = strictLengthDirective
	}
	parts = append(parts, checklist(lengthLine)...)
	parts = append(parts, closingInstruction)

	return strings.Join(parts, "\n")
}

// StyleBased builds the prompt for an analysis-driven post. styleBlock is
// the formatted analyzer output; when empty, a warning placeholder is
// inlined rather than silently omitted.
func (b *Builder) StyleBased(topic, styleBlock string, strict bool) string {
	subject := "your authentic style and voice"
	if topic != "" {
		subject = topic
	}

	parts := []string{
		"Create an engaging Threads post about: " + subject,
	}

	parts = append(parts, b.brandContext()...)

	if styleBlock != "" {
		parts = append(parts, styleBlock)
	} else {
		parts = append(parts, "\n(No style analysis available - write in a natural, conversational voice.)")
	}

	lengthLine := lengthDirective
	if strict {
		lengthLine = strictLengthDirective
	}
	parts = append(parts, checklist(lengthLine)...)
	parts = append(parts, closingInstruction)

	return strings.Join(parts, "\n")
}

// connectionExemplars show the register expected of a networking post.
var connectionExemplars = []string{
	"Building in public and looking to meet other founders. What are you working on?",
	"Who else is automating their content workflow? Let's trade notes.",
	"New here. I write about shipping small tools fast. Say hi if that's your thing.",
}

// Connection builds the prompt for a short networking post. The length
// budget is tighter than normal posts.
func (b *Builder) Connection(connectionType string, strict bool) string {
	audience := connectionType
	if audience == "" {
		audience = "like-minded people"
	}

	parts := []string{
		"Create a short, friendly Threads post to connect with: " + audience,
	}

	parts = append(parts, b.brandContext()...)

	if b.profile != nil && len(b.profile.AudienceSegments) > 0 {
		segments := b.profile.AudienceSegments
		if len(segments) > 2 {
			segments = segments[:2]
		}
		parts = append(parts, "\nTarget audience: "+strings.Join(segments, ", "))
	}

	parts = append(parts, "", "Style examples:")
	for _, exemplar := range connectionExemplars {
		parts = append(parts, "- "+exemplar)
	}

	lengthLine := connectionLengthDirective
	if strict {
		lengthLine = strictConnectionLengthDirective
	}
	parts = append(parts, checklist(lengthLine)...)
	parts = append(parts, connectionClosingInstruction)

	return strings.Join(parts, "\n")
}

func (b *Builder) brandContext() []string {
	if b.profile == nil || !b.profile.Loaded() {
		return nil
	}
	context := b.profile.PromptContext()
	if context == "" {
		return nil
	}
	return []string{"\nBrand Context:", context}
}
