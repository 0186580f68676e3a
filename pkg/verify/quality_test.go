package verify

import "testing"

func TestCheckQuality(t *testing.T) {
	tests := []struct {
		name         string
		title        string
		wantLowQual  bool
	}{
		{"valid english title", "The Morning Herald", false},
		{"too short", "Xy", true},
		{"digit heavy", "12345 News 678", true},
		{"keyboard mash", "xqzjkvbwmplq", true},
		{"symbol overload", "###$$$@@@News", true},
		{"devanagari always passes", "हिन्दुस्तान समाचार", false},
		{"repetitive pattern", "aaaaa", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckQuality(tt.title)
			if got.IsLowQuality != tt.wantLowQual {
				t.Errorf("CheckQuality(%q).IsLowQuality = %v, want %v (violations: %v)", tt.title, got.IsLowQuality, tt.wantLowQual, got.Violations)
			}
		})
	}
}

func TestCheckQuality_RiskGradation(t *testing.T) {
	got := CheckQuality("12345678")
	if got.Risk != QualityRiskCritical {
		t.Errorf("expected Critical risk for digit-heavy title, got %q", got.Risk)
	}
}

func TestShannonEntropy(t *testing.T) {
	if h := shannonEntropy(""); h != 0 {
		t.Errorf("shannonEntropy(\"\") = %v, want 0", h)
	}
	if h := shannonEntropy("aaaa"); h != 0 {
		t.Errorf("shannonEntropy(%q) = %v, want 0 (single symbol)", "aaaa", h)
	}
	if h := shannonEntropy("ab"); h <= 0 {
		t.Errorf("shannonEntropy(%q) = %v, want > 0", "ab", h)
	}
}
