package verify

import (
	"context"
	"testing"
	"time"

	"github.com/aurorareg/titlesentry/pkg/config"
)

func newTestCore(t *testing.T, records []TitleRecord) *Core {
	t.Helper()
	repo := NewInMemoryRepository(records)
	core, err := NewCore(context.Background(), repo, config.NewDefaultConfig())
	if err != nil {
		t.Fatalf("NewCore() error = %v", err)
	}
	return core
}

func seedRecord(id int64, title string) TitleRecord {
	return TitleRecord{
		ID:              id,
		Title:           title,
		NormalizedTitle: Normalize(title),
		CanonicalTitle:  CanonicalForm(title),
		RegisteredAt:    time.Now(),
	}
}

func TestCore_Verify_AcceptsDistinctTitle(t *testing.T) {
	core := newTestCore(t, []TitleRecord{
		seedRecord(1, "Morning Herald"),
		seedRecord(2, "Evening Gazette"),
	})

	result := core.Verify(context.Background(), "Pioneer Horizon Digest")
	if result.Decision != DecisionAccept {
		t.Fatalf("expected Accept for a distinct title, got %q: %s", result.Decision, result.Explanation)
	}
}

func TestCore_Verify_RejectsExactDuplicate(t *testing.T) {
	core := newTestCore(t, []TitleRecord{
		seedRecord(1, "Morning Herald"),
	})

	result := core.Verify(context.Background(), "Morning Herald")
	if result.Decision != DecisionReject {
		t.Fatalf("expected Reject for exact duplicate, got %q", result.Decision)
	}
	if len(result.Conflicts) == 0 {
		t.Fatal("expected at least one conflict for an exact duplicate")
	}
}

func TestCore_Verify_RejectsConcatenationAttack(t *testing.T) {
	core := newTestCore(t, []TitleRecord{
		seedRecord(1, "Hindustan Times"),
	})

	result := core.Verify(context.Background(), "hindustantimes")
	if result.Decision != DecisionReject {
		t.Fatalf("expected Reject for concatenation of an existing title, got %q", result.Decision)
	}
}

func TestCore_Verify_RejectsRestrictedTerm(t *testing.T) {
	core := newTestCore(t, nil)

	result := core.Verify(context.Background(), "Government Gazette Today")
	if result.Decision != DecisionReject {
		t.Fatalf("expected Reject for restricted term, got %q", result.Decision)
	}
	if result.IsCompliant {
		t.Error("expected IsCompliant = false for a restricted-term title")
	}
}

func TestCore_Verify_RejectsLowQualityTitle(t *testing.T) {
	core := newTestCore(t, nil)

	result := core.Verify(context.Background(), "12345678")
	if result.Decision != DecisionReject {
		t.Fatalf("expected Reject at the quality gate, got %q", result.Decision)
	}
}

func TestCore_Verify_SuggestionsNeverRepeatRejectedTitle(t *testing.T) {
	core := newTestCore(t, []TitleRecord{
		seedRecord(1, "Morning Herald"),
	})

	result := core.Verify(context.Background(), "The Morning Herald")
	if result.Decision != DecisionReject {
		t.Fatalf("expected Reject, got %q: %s", result.Decision, result.Explanation)
	}
	for _, s := range result.Suggestions {
		if s.SuggestedTitle == "The Morning Herald" {
			t.Errorf("a suggestion must not equal the rejected title itself, got %v", result.Suggestions)
		}
	}
}

func TestCore_Submit_AddsToLiveIndex(t *testing.T) {
	core := newTestCore(t, nil)

	if _, err := core.Submit(context.Background(), "Horizon Chronicle"); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	result := core.Verify(context.Background(), "Horizon Chronicle")
	if result.Decision != DecisionReject {
		t.Fatalf("expected submitted title to now conflict with itself, got %q", result.Decision)
	}
}
