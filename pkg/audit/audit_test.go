package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/aurorareg/titlesentry/pkg/verify"
)

func TestSink_Record_WritesSignedEvent(t *testing.T) {
	var buf bytes.Buffer
	sink := New("test-signing-key", &buf, "")

	result := verify.Result{
		Decision:                verify.DecisionAccept,
		VerificationProbability: 91.5,
		Metadata:                verify.Metadata{RiskTier: verify.RiskLow},
	}

	id, err := sink.Record(context.Background(), "Horizon Chronicle", result)
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if id == "" {
		t.Fatal("expected a non-empty correlation ID")
	}

	line := strings.TrimSpace(buf.String())
	var event Event
	if err := json.Unmarshal([]byte(line), &event); err != nil {
		t.Fatalf("failed to decode recorded event: %v", err)
	}
	if event.CorrelationID != id {
		t.Errorf("decoded CorrelationID = %q, want %q", event.CorrelationID, id)
	}
	if event.Title != "Horizon Chronicle" {
		t.Errorf("decoded Title = %q, want %q", event.Title, "Horizon Chronicle")
	}
	if !sink.Verify(event) {
		t.Error("expected recorded event's signature to verify")
	}
}

func TestSink_Verify_DetectsTampering(t *testing.T) {
	var buf bytes.Buffer
	sink := New("test-signing-key", &buf, "")

	result := verify.Result{Decision: verify.DecisionReject, VerificationProbability: 3}
	id, err := sink.Record(context.Background(), "Morning Herald", result)
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	var event Event
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &event); err != nil {
		t.Fatalf("failed to decode recorded event: %v", err)
	}
	if event.CorrelationID != id {
		t.Fatalf("CorrelationID mismatch: %q vs %q", event.CorrelationID, id)
	}

	event.Decision = verify.DecisionAccept
	if sink.Verify(event) {
		t.Error("expected tampered event to fail verification")
	}
}

func TestSink_Verify_RejectsWrongKey(t *testing.T) {
	var buf bytes.Buffer
	sink := New("key-one", &buf, "")

	_, err := sink.Record(context.Background(), "Evening Gazette", verify.Result{Decision: verify.DecisionReview})
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	var event Event
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &event); err != nil {
		t.Fatalf("failed to decode recorded event: %v", err)
	}

	otherSink := New("key-two", &bytes.Buffer{}, "")
	if otherSink.Verify(event) {
		t.Error("expected verification under a different signing key to fail")
	}
}
