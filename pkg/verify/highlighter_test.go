package verify

import (
	"strings"
	"testing"
)

func TestBionicHighlighter_Highlight_WrapsConflictingWords(t *testing.T) {
	h := NewBionicHighlighter(0.5)
	out := h.Highlight("Morning Herald Today", HighlightConflict{
		Tokens: []string{"morning", "herald"},
	})

	if !strings.Contains(out, `class="bionic-wrapper"`) {
		t.Fatalf("expected output to be wrapped, got %q", out)
	}
	if !strings.Contains(out, "bionic-fixation") {
		t.Fatalf("expected at least one fixation span for conflicting words, got %q", out)
	}
	if !strings.Contains(out, "Today") {
		t.Fatalf("expected non-conflicting word to pass through, got %q", out)
	}
}

func TestBionicHighlighter_Highlight_RuleSubstringMatch(t *testing.T) {
	h := NewBionicHighlighter(0.5)
	out := h.Highlight("Police Gazette", HighlightConflict{
		Rules: []string{"police"},
	})
	if !strings.Contains(out, "bionic-fixation") {
		t.Fatalf("expected rule-term word to be highlighted, got %q", out)
	}
}

func TestBionicHighlighter_FixationWeight(t *testing.T) {
	h := NewBionicHighlighter(0)
	if w := h.fixationWeight(); w != 400 {
		t.Errorf("fixationWeight() at intensity 0 = %d, want 400", w)
	}
	h = NewBionicHighlighter(1)
	if w := h.fixationWeight(); w != 900 {
		t.Errorf("fixationWeight() at intensity 1 = %d, want 900", w)
	}
}
