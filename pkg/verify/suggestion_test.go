package verify

import "testing"

func TestClassifyTokenRisk(t *testing.T) {
	cat := GetRuleCatalogue()
	analysis := ConflictAnalysis{ConflictingTokens: map[string]bool{"herald": true}}

	pairs := ClassifyTokenRisk([]string{"Police", "Dawn", "Herald"}, analysis, cat)
	if len(pairs) != 3 {
		t.Fatalf("expected 3 risk pairs, got %d", len(pairs))
	}
	if pairs[0].risk != TokenBlocked {
		t.Errorf("'Police' risk = %q, want Blocked", pairs[0].risk)
	}
	if pairs[1].risk != TokenRisky {
		t.Errorf("'Dawn' risk = %q, want Risky (non-root cluster member)", pairs[1].risk)
	}
	if pairs[2].risk != TokenRisky {
		t.Errorf("'Herald' risk = %q, want Risky (conflicting token)", pairs[2].risk)
	}
}

func TestGenerateCandidates_PeriodicityRemoval(t *testing.T) {
	cat := GetRuleCatalogue()
	analysis := ConflictAnalysis{HasPeriodicity: true, ConflictType: "lexical"}
	pairs := ClassifyTokenRisk([]string{"Daily", "Herald"}, analysis, cat)

	candidates := GenerateCandidates("Daily Herald", analysis, pairs, cat, 10)
	found := false
	for _, c := range candidates {
		if c.title == "Herald" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected periodicity-stripped candidate 'Herald' among %v", candidates)
	}
}

func TestGenerateCandidates_NoBlacklistedOutput(t *testing.T) {
	cat := GetRuleCatalogue()
	analysis := ConflictAnalysis{HasRestricted: true, ConflictType: "lexical"}
	pairs := ClassifyTokenRisk([]string{"Police", "Gazette"}, analysis, cat)

	candidates := GenerateCandidates("Police Gazette", analysis, pairs, cat, 10)
	for _, c := range candidates {
		if !titleIsClean(c.title, cat) {
			t.Errorf("GenerateCandidates produced a non-clean candidate: %q", c.title)
		}
	}
}

func TestRescoreAndFilter(t *testing.T) {
	candidates := []suggestionCandidate{
		{title: "Horizon Chronicle", reason: "test"},
		{title: "Blocked Candidate", reason: "test"},
	}
	verify := func(title string) Result {
		if title == "Horizon Chronicle" {
			return Result{Decision: DecisionAccept, VerificationProbability: 80}
		}
		return Result{Decision: DecisionReject, VerificationProbability: 5}
	}

	suggestions := RescoreAndFilter(candidates, verify, 50, 5)
	if len(suggestions) != 1 {
		t.Fatalf("expected 1 surviving suggestion, got %d", len(suggestions))
	}
	if suggestions[0].SuggestedTitle != "Horizon Chronicle" {
		t.Errorf("SuggestedTitle = %q, want %q", suggestions[0].SuggestedTitle, "Horizon Chronicle")
	}
}

func TestTitleIsClean(t *testing.T) {
	cat := GetRuleCatalogue()
	if titleIsClean("Police Gazette", cat) {
		t.Error("expected 'Police Gazette' to be unclean (restricted term)")
	}
	if !titleIsClean("Horizon Chronicle", cat) {
		t.Error("expected 'Horizon Chronicle' to be clean")
	}
	if titleIsClean("ab", cat) {
		t.Error("expected too-short title to be unclean")
	}
}

func TestSmartTitleCase(t *testing.T) {
	got := smartTitleCase("morning HERALD today")
	want := "Morning HERALD Today"
	if got != want {
		t.Errorf("smartTitleCase() = %q, want %q", got, want)
	}
}
