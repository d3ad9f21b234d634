// Package brand loads the optional brand profile that shapes generation
// prompts.
package brand

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Profile describes the brand voice injected into generation prompts.
// All fields are optional.
type Profile struct {
	Name             string   `yaml:"name"`
	Tone             string   `yaml:"tone"`
	Voice            string   `yaml:"voice"`
	Audience         string   `yaml:"audience"`
	AudienceSegments []string `yaml:"audience_segments"`
	KeyTopics        []string `yaml:"key_topics"`
	StyleGuidelines  []string `yaml:"style_guidelines"`
	ExamplePosts     []string `yaml:"example_posts"`
	Avoid            []string `yaml:"avoid"`
}

// Load reads a profile from path. A missing file is not an error: the
// pipeline runs fine without brand context, it just generates without it.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Profile{}, nil
		}
		return nil, fmt.Errorf("read brand profile: %w", err)
	}

	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("parse brand profile: %w", err)
	}
	return &profile, nil
}

// Loaded reports whether the profile carries any content.
func (p *Profile) Loaded() bool {
	return p != nil && (p.Name != "" || p.Tone != "" || p.Voice != "" || p.Audience != "" ||
		len(p.AudienceSegments) > 0 || len(p.KeyTopics) > 0 || len(p.StyleGuidelines) > 0 ||
		len(p.ExamplePosts) > 0 || len(p.Avoid) > 0)
}

// PromptContext renders the profile as a block of prompt text. An empty
// profile renders as the empty string.
func (p *Profile) PromptContext() string {
	if !p.Loaded() {
		return ""
	}

	var parts []string

	if p.Name != "" {
		parts = append(parts, "Brand: "+p.Name)
	}
	if p.Tone != "" {
		parts = append(parts, "Tone: "+p.Tone)
	}
	if p.Voice != "" {
		parts = append(parts, "Voice: "+p.Voice)
	}
	if p.Audience != "" {
		parts = append(parts, "Target Audience: "+p.Audience)
	}

	if len(p.StyleGuidelines) > 0 {
		parts = append(parts, "\nStyle Guidelines:")
		for _, guideline := range p.StyleGuidelines {
			parts = append(parts, "- "+guideline)
		}
	}

	if len(p.ExamplePosts) > 0 {
		parts = append(parts, "\nExample Post Styles:")
		examples := p.ExamplePosts
		if len(examples) > 3 {
			examples = examples[:3]
		}
		for _, example := range examples {
			parts = append(parts, "- "+example)
		}
	}

	if len(p.Avoid) > 0 {
		parts = append(parts, "\nAvoid:")
		for _, item := range p.Avoid {
			parts = append(parts, "- "+item)
		}
	}

	return strings.Join(parts, "\n")
}
