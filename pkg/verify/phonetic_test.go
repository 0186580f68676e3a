package verify

import "testing"

func TestDoubleMetaphone(t *testing.T) {
	tests := []struct {
		input string
	}{
		{"Herald"},
		{"Chronicle"},
		{"Phoenix"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			primary, _ := doubleMetaphone(tt.input)
			if primary == "" {
				t.Errorf("doubleMetaphone(%q) produced empty primary code", tt.input)
			}
		})
	}
}

func TestDoubleMetaphone_PhoneticEquivalents(t *testing.T) {
	p1, _ := doubleMetaphone("Phone")
	p2, _ := doubleMetaphone("Fone")
	if p1 != p2 {
		t.Errorf("expected 'Phone' and 'Fone' to share a phonetic code, got %q vs %q", p1, p2)
	}
}

func TestSequenceRatio(t *testing.T) {
	if got := sequenceRatio("", ""); got != 1 {
		t.Errorf("sequenceRatio(\"\", \"\") = %v, want 1", got)
	}
	if got := sequenceRatio("abc", ""); got != 0 {
		t.Errorf("sequenceRatio(abc, \"\") = %v, want 0", got)
	}
	if got := sequenceRatio("abc", "abc"); got != 1 {
		t.Errorf("sequenceRatio(abc, abc) = %v, want 1", got)
	}
}

func TestPhoneticSimilarity_SimilarSoundingTitles(t *testing.T) {
	got := PhoneticSimilarity("Herald", "Herrald", "Herald", "Herrald")
	if got < 0.8 {
		t.Errorf("PhoneticSimilarity(Herald, Herrald) = %v, want >= 0.8", got)
	}
}
