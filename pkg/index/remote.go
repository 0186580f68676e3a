package index

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"
)

// remoteTransport pools connections to the embedding service across every
// call this process makes, the same sharing pattern pkg/audit uses for
// webhook delivery.
var remoteTransport = &http.Transport{
	DialContext: (&net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
	MaxIdleConns:        100,
	MaxIdleConnsPerHost: 10,
	IdleConnTimeout:     90 * time.Second,
}

type embedRequest struct {
	Text string `json:"text"`
}

type embedResponse struct {
	Embedding []float32 `json:"embedding"`
}

// NewRemoteEmbeddingFunc returns an EmbeddingFunc that delegates to an
// external embedding service over HTTP: POST {"text": ...}, expect
// {"embedding": [...]}. This is the wiring a deployment supplies when it
// enables the optional semantic-enrichment path (config.Config's
// DisableEmbeddings set to false) without this module carrying a local
// embedding model.
func NewRemoteEmbeddingFunc(serviceURL string) EmbeddingFunc {
	client := &http.Client{Timeout: 5 * time.Second, Transport: remoteTransport}

	return func(ctx context.Context, text string) ([]float32, error) {
		body, err := json.Marshal(embedRequest{Text: text})
		if err != nil {
			return nil, fmt.Errorf("marshaling embedding request: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, serviceURL, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("building embedding request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("calling embedding service: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("embedding service returned status %d", resp.StatusCode)
		}

		var out embedResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return nil, fmt.Errorf("decoding embedding response: %w", err)
		}
		return out.Embedding, nil
	}
}
