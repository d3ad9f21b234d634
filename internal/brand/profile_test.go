package brand

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	profile, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error, got %v", err)
	}
	if profile.Loaded() {
		t.Error("missing file should yield an empty profile")
	}
	if got := profile.PromptContext(); got != "" {
		t.Errorf("empty profile PromptContext = %q, want empty", got)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brand.yaml")
	if err := os.WriteFile(path, []byte("name: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadAndRender(t *testing.T) {
	content := `name: Acme Dev
tone: friendly but direct
voice: practical engineer
audience: indie developers
audience_segments:
  - solo founders
  - platform engineers
style_guidelines:
  - short sentences
  - no hype
example_posts:
  - "Example one"
  - "Example two"
  - "Example three"
  - "Example four"
avoid:
  - buzzwords
`
	path := filepath.Join(t.TempDir(), "brand.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	profile, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !profile.Loaded() {
		t.Fatal("profile should be loaded")
	}
	if len(profile.AudienceSegments) != 2 {
		t.Errorf("segments = %v", profile.AudienceSegments)
	}

	rendered := profile.PromptContext()
	for _, want := range []string{
		"Brand: Acme Dev",
		"Tone: friendly but direct",
		"Target Audience: indie developers",
		"Style Guidelines:",
		"- no hype",
		"Example Post Styles:",
		"Avoid:",
		"- buzzwords",
	} {
		if !strings.Contains(rendered, want) {
			t.Errorf("PromptContext missing %q", want)
		}
	}
	if strings.Contains(rendered, "Example four") {
		t.Error("PromptContext should include at most three example posts")
	}
}
