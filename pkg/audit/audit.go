// Package audit records every verification decision as a signed,
// structured event: a correlation ID for cross-referencing with a
// caller's own logs, an HMAC tag over the event body so a downstream
// consumer can detect tampering, and an optional webhook delivery for
// deployments that want decisions streamed out in real time.
package audit

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/aurorareg/titlesentry/pkg/verify"
)

// Event is one recorded verification decision.
type Event struct {
	CorrelationID string          `json:"correlation_id"`
	Title         string          `json:"title"`
	Decision      verify.Decision `json:"decision"`
	Probability   float64         `json:"verification_probability"`
	RiskTier      verify.RiskTier `json:"risk_tier"`
	Confidence    float64         `json:"confidence_score"`
	IsCompliant   bool            `json:"is_compliant"`
	RecordedAt    time.Time       `json:"recorded_at"`
	Signature     string          `json:"signature"`
}

// Sink persists Events and signs each one with an HMAC-SHA256 tag keyed
// off the configured signing key.
type Sink struct {
	signingKey []byte
	writer     io.Writer
	webhookURL string
	client     *http.Client
}

// sharedTransport pools connections across every webhook delivery this
// process makes, instead of paying a fresh dial + TLS handshake per event.
var sharedTransport = &http.Transport{
	DialContext: (&net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
	MaxIdleConns:        100,
	MaxIdleConnsPerHost: 10,
	IdleConnTimeout:     90 * time.Second,
}

// New creates a Sink that writes newline-delimited JSON events to w,
// signing each with signingKey. webhookURL may be empty to disable
// webhook delivery.
func New(signingKey string, w io.Writer, webhookURL string) *Sink {
	return &Sink{
		signingKey: []byte(signingKey),
		writer:     w,
		webhookURL: webhookURL,
		client: &http.Client{
			Timeout:   5 * time.Second,
			Transport: sharedTransport,
		},
	}
}

// Record builds an Event from a verification result, signs it, writes it
// to the sink's writer, and best-effort delivers it to the configured
// webhook. It returns the correlation ID assigned to the event.
func (s *Sink) Record(ctx context.Context, title string, result verify.Result) (string, error) {
	event := Event{
		CorrelationID: uuid.NewString(),
		Title:         title,
		Decision:      result.Decision,
		Probability:   result.VerificationProbability,
		RiskTier:      result.Metadata.RiskTier,
		Confidence:    result.Metadata.ConfidenceScore,
		IsCompliant:   result.IsCompliant,
		RecordedAt:    time.Now().UTC(),
	}
	event.Signature = s.sign(event)

	line, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("marshaling audit event: %w", err)
	}
	line = append(line, '\n')

	if _, err := s.writer.Write(line); err != nil {
		return "", fmt.Errorf("writing audit event: %w", err)
	}

	if s.webhookURL != "" {
		s.deliver(ctx, line)
	}

	return event.CorrelationID, nil
}

// sign computes an HMAC-SHA256 tag over the event's stable fields, so a
// verifier can recompute it from the body alone (Signature itself is
// excluded from the signed payload).
func (s *Sink) sign(event Event) string {
	payload := fmt.Sprintf("%s|%s|%s|%.2f|%s|%.2f|%t|%s",
		event.CorrelationID, event.Title, event.Decision, event.Probability,
		event.RiskTier, event.Confidence, event.IsCompliant,
		event.RecordedAt.Format(time.RFC3339Nano))

	mac := hmac.New(sha256.New, s.signingKey)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether event.Signature matches what sign would produce
// for the event's fields, i.e. whether the event has not been altered
// since it was recorded.
func (s *Sink) Verify(event Event) bool {
	want := event.Signature
	event.Signature = ""
	got := s.sign(event)
	return hmac.Equal([]byte(want), []byte(got))
}

func (s *Sink) deliver(ctx context.Context, body []byte) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/x-ndjson")

	resp, err := s.client.Do(req)
	if err != nil {
		// Webhook delivery is fire-and-forget: the event already landed in
		// the durable writer above, so a dead endpoint must not fail Record.
		return
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
}
