package verify

import "testing"

func newTestComplianceEngine() *ComplianceEngine {
	return NewComplianceEngine(GetRuleCatalogue())
}

func TestComplianceEngine_RestrictedTerms(t *testing.T) {
	e := newTestComplianceEngine()
	result := e.Check("Police Gazette", nil)
	if result.IsCompliant {
		t.Fatal("expected restricted term to fail compliance")
	}
	if result.PenaltyScore != 1.0 {
		t.Errorf("PenaltyScore = %v, want 1.0", result.PenaltyScore)
	}
}

func TestComplianceEngine_Periodicity(t *testing.T) {
	e := newTestComplianceEngine()
	result := e.Check("Daily Herald", nil)
	if result.IsCompliant {
		t.Fatal("expected periodicity term to fail compliance")
	}
	if len(result.CleanedTitles) == 0 {
		t.Fatal("expected a cleaned title with the periodicity term stripped")
	}
	if result.CleanedTitles[0] != "herald" {
		t.Errorf("CleanedTitles[0] = %q, want %q", result.CleanedTitles[0], "herald")
	}
}

func TestComplianceEngine_PrefixSuffix(t *testing.T) {
	e := newTestComplianceEngine()
	result := e.Check("test-Herald", nil)
	if result.IsCompliant {
		t.Fatal("expected restricted prefix to fail compliance")
	}
}

func TestComplianceEngine_Combination(t *testing.T) {
	e := newTestComplianceEngine()
	existing := []string{"morning", "herald"}
	result := e.Check("Morning Herald Express", existing)
	if result.IsCompliant {
		t.Fatal("expected combination of two existing titles to fail compliance")
	}
}

func TestComplianceEngine_CombinationRequiresTwoDistinctMatches(t *testing.T) {
	e := newTestComplianceEngine()
	existing := []string{"morning"}
	result := e.Check("Morning Express", existing)
	if !result.IsCompliant {
		t.Fatal("expected single existing-title match to not trigger combination violation")
	}
}

func TestComplianceEngine_CleanTitlePasses(t *testing.T) {
	e := newTestComplianceEngine()
	result := e.Check("Horizon Chronicle", nil)
	if !result.IsCompliant {
		t.Errorf("expected clean title to pass compliance, violations: %v", result.Violations)
	}
}

func TestContainsWholeWord(t *testing.T) {
	tests := []struct {
		haystack string
		needle   string
		expected bool
	}{
		{"morning herald", "morning", true},
		{"morningstar herald", "morning", false},
		{"the herald morning", "morning", true},
		{"herald", "heraldic", false},
	}
	for _, tt := range tests {
		t.Run(tt.haystack+"/"+tt.needle, func(t *testing.T) {
			got := containsWholeWord(tt.haystack, tt.needle)
			if got != tt.expected {
				t.Errorf("containsWholeWord(%q, %q) = %v, want %v", tt.haystack, tt.needle, got, tt.expected)
			}
		})
	}
}
