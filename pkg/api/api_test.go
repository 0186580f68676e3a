package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aurorareg/titlesentry/pkg/config"
	"github.com/aurorareg/titlesentry/pkg/verify"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	repo := verify.NewInMemoryRepository(nil)
	core, err := verify.NewCore(context.Background(), repo, config.NewDefaultConfig())
	if err != nil {
		t.Fatalf("NewCore() error = %v", err)
	}
	return New(core, nil)
}

func TestHandleVerify_RejectsEmptyTitle(t *testing.T) {
	s := newTestServer(t)

	body, _ := json.Marshal(verifyRequest{Title: ""})
	req := httptest.NewRequest(http.MethodPost, "/v1/verify", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestHandleVerify_AcceptsDistinctTitle(t *testing.T) {
	s := newTestServer(t)

	body, _ := json.Marshal(verifyRequest{Title: "Pioneer Business Horizon Digest"})
	req := httptest.NewRequest(http.MethodPost, "/v1/verify", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var result verify.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.Decision != verify.DecisionAccept {
		t.Errorf("Decision = %q, want %q", result.Decision, verify.DecisionAccept)
	}
}

func TestHandleSubmit_AddsTitleToRepository(t *testing.T) {
	s := newTestServer(t)

	body, _ := json.Marshal(submitRequest{Title: "Horizon Chronicle"})
	req := httptest.NewRequest(http.MethodPost, "/v1/submit", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}

	var record verify.TitleRecord
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if record.Title != "Horizon Chronicle" {
		t.Errorf("Title = %q, want %q", record.Title, "Horizon Chronicle")
	}
}

func TestHandleHealth_ReturnsOK(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, err := s.app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}
