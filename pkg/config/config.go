// Package config holds process-wide tunables for the verification pipeline:
// decision thresholds, suggestion re-scoring gates, and the audit signing
// secret. Nothing here is mutated after load.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"strconv"
)

// Config carries the policy knobs the orchestrator and decision stage read.
// Every field has a sane default via NewDefaultConfig; named constructors
// offer pre-baked profiles for common registry postures.
type Config struct {
	// RejectThreshold is the fused-similarity floor above which a compliant
	// candidate still forces Reject.
	RejectThreshold float64
	// ReviewThreshold is the fused-similarity floor above which a compliant
	// candidate is sent to Review instead of Accept.
	ReviewThreshold float64

	// MinSuggestionProbability is the standard floor for a re-scored
	// suggestion's probability. No code in this module reads it; the
	// orchestrator's suggestion call uses ReducedMinSuggestionProbability.
	MinSuggestionProbability float64
	// ReducedMinSuggestionProbability is used by the orchestrator's own
	// re-entrant suggestion call, which runs with a relaxed floor so
	// alternatives near the boundary are still offered.
	ReducedMinSuggestionProbability float64

	// MaxCandidates bounds how many retrieved titles are scored per request.
	MaxCandidates int
	// MaxConflicts bounds the conflicts list surfaced in a result.
	MaxConflicts int
	// MaxSuggestions bounds how many suggestions are returned.
	MaxSuggestions int

	// DisableEmbeddings suppresses any optional dense-embedding subsystem,
	// per the single environment toggle the core contract allows.
	DisableEmbeddings bool
}

// NewDefaultConfig returns the documented default policy: reject=0.85,
// review=0.65, as specified for the fusion/decision stage.
func NewDefaultConfig() *Config {
	return &Config{
		RejectThreshold:                 0.85,
		ReviewThreshold:                 0.65,
		MinSuggestionProbability:        50.0,
		ReducedMinSuggestionProbability: 10.0,
		MaxCandidates:                   50,
		MaxConflicts:                    5,
		MaxSuggestions:                  5,
		DisableEmbeddings:               getEnvBool("TITLESENTRY_DISABLE_EMBEDDINGS", true),
	}
}

// NewStrictConfig tightens both thresholds for registries that want fewer
// false accepts, at the cost of more Review traffic.
func NewStrictConfig() *Config {
	cfg := NewDefaultConfig()
	cfg.RejectThreshold = 0.75
	cfg.ReviewThreshold = 0.55
	return cfg
}

// NewPermissiveConfig loosens both thresholds for sandboxes/staging
// registries where near-duplicates are tolerated.
func NewPermissiveConfig() *Config {
	cfg := NewDefaultConfig()
	cfg.RejectThreshold = 0.92
	cfg.ReviewThreshold = 0.78
	return cfg
}

// getAuditSigningKey returns the HMAC key used to tag audit records, read
// from TITLESENTRY_AUDIT_KEY or generated as a random 32-byte hex string.
// A freshly generated key does not persist across process restarts; callers
// that need durable signing must set the environment variable.
func getAuditSigningKey() string {
	if v := os.Getenv("TITLESENTRY_AUDIT_KEY"); v != "" {
		return v
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing is a program environment fault; fall back to
		// a fixed marker rather than panicking inside a library call.
		return "titlesentry-insecure-fallback-key"
	}
	return hex.EncodeToString(buf)
}

// AuditSigningKey is exported for pkg/audit to consume without this package
// needing to know anything about the audit record shape.
func AuditSigningKey() string {
	return getAuditSigningKey()
}

func getEnvBool(name string, def bool) bool {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// GetEnvInt reads an integer environment variable, falling back to def if
// unset or unparseable.
func GetEnvInt(name string, def int) int {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// GetEnvFloat reads a float64 environment variable, falling back to def if
// unset or unparseable.
func GetEnvFloat(name string, def float64) float64 {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

// clampInt restricts val to [min, max].
func clampInt(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampInt is the exported form of clampInt, used by callers outside this
// package to keep configured bounds sane (e.g. MaxCandidates).
func ClampInt(val, min, max int) int {
	return clampInt(val, min, max)
}
