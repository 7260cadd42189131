// Package enrich talks to the external AI service. It enriches extracted articles
// with attributes and embeddings and generates per-reader daily digests.
package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/umputun/newsdigest/pkg/domain"
)

// ErrNoEmbeddings is returned when the enrichment response lacks a usable embeddings vector
var ErrNoEmbeddings = errors.New("embeddings missing in enrichment response")

// Client is an http client of the enrichment and digest generation service
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient makes a client for the service at baseURL
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// IngestArticle sends article text for enrichment. The embeddings vector is split
// out of the response, all other response fields are returned as attributes.
func (c *Client) IngestArticle(ctx context.Context, title, subtitle, content string) (*domain.Enrichment, error) {
	req := struct {
		Title    string `json:"title"`
		Subtitle string `json:"subtitle"`
		Content  string `json:"content"`
	}{Title: title, Subtitle: subtitle, Content: content}

	var resp map[string]json.RawMessage
	if err := c.post(ctx, "/api/ingest-article", req, &resp); err != nil {
		return nil, fmt.Errorf("ingest article: %w", err)
	}

	raw, ok := resp["embeddings"]
	if !ok {
		return nil, ErrNoEmbeddings
	}
	var embeddings []float64
	if err := json.Unmarshal(raw, &embeddings); err != nil || len(embeddings) == 0 {
		return nil, ErrNoEmbeddings
	}
	delete(resp, "embeddings")

	attrs := make(map[string]any, len(resp))
	for k, v := range resp {
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return nil, fmt.Errorf("decode attribute %s: %w", k, err)
		}
		attrs[k] = val
	}
	return &domain.Enrichment{Attributes: attrs, Embeddings: embeddings}, nil
}

// GenerateDigest asks the service to build today's digest for the reader
func (c *Client) GenerateDigest(ctx context.Context, userID int64) (*domain.DigestContent, error) {
	req := struct {
		ReaderID int64 `json:"reader_id"`
	}{ReaderID: userID}

	var resp domain.DigestContent
	if err := c.post(ctx, "/api/daily-digest", req, &resp); err != nil {
		return nil, fmt.Errorf("generate digest for user %d: %w", userID, err)
	}
	if len(resp.Sections) == 0 {
		return nil, fmt.Errorf("generate digest for user %d: empty digest", userID)
	}
	return &resp, nil
}

func (c *Client) post(ctx context.Context, path string, payload, v any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
