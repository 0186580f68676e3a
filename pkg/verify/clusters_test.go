package verify

import "testing"

func TestConceptClusters_Root(t *testing.T) {
	cc := GetConceptClusters()

	tests := []struct {
		token string
		want  string
	}{
		{"dawn", "morning"},
		{"samachar", "news"},
		{"dainik", "daily"},
		{"unrelatedword", "unrelatedword"},
	}
	for _, tt := range tests {
		if got := cc.Root(tt.token); got != tt.want {
			t.Errorf("Root(%q) = %q, want %q", tt.token, got, tt.want)
		}
	}
}

func TestConceptClusters_GetClusterAlternatives(t *testing.T) {
	cc := GetConceptClusters()
	alts := cc.GetClusterAlternatives("morning")
	if len(alts) == 0 {
		t.Fatal("expected alternatives for 'morning'")
	}
	for _, a := range alts {
		if a == "morning" {
			t.Errorf("GetClusterAlternatives should exclude the token itself, got %v", alts)
		}
	}
}

func TestConceptClusterSimilarity(t *testing.T) {
	if got := ConceptClusterSimilarity("morning herald", "dawn herald"); got != 1.0 {
		t.Errorf("ConceptClusterSimilarity(morning herald, dawn herald) = %v, want 1.0", got)
	}
	if got := ConceptClusterSimilarity("morning herald", "evening gazette"); got != 0.0 {
		t.Errorf("ConceptClusterSimilarity(morning herald, evening gazette) = %v, want 0.0", got)
	}
}

func TestResetConceptClusters_RestoresDefaults(t *testing.T) {
	ResetConceptClusters()
	cc := GetConceptClusters()
	if cc.Root("dawn") != "morning" {
		t.Errorf("expected defaults restored after ResetConceptClusters, got Root(dawn)=%q", cc.Root("dawn"))
	}
}
