// Package hf provides a client for the HuggingFace Inference API, covering
// the two model tasks this service needs: token classification (NER) and
// text generation.
package hf

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/matheus/jobmatch/internal/config"
)

// Token is a single raw model token from a token-classification response.
// Offsets index into the text that was submitted.
type Token struct {
	EntityGroup string  `json:"entity_group"`
	Score       float64 `json:"score"`
	Word        string  `json:"word"`
	Start       int     `json:"start"`
	End         int     `json:"end"`
}

// Client talks to the HuggingFace inference router. Safe for concurrent use.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a client from configuration. The HTTP client carries the
// configured timeout; callers still pass a context for cancellation.
func NewClient(cfg config.HuggingFaceConfig) *Client {
	base := cfg.BaseURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return &Client{
		baseURL:    base,
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// TokenClassification submits text to a NER-style model and returns the raw
// token list. The API sometimes nests the array one level deep depending on
// the model pipeline; both shapes are accepted.
func (c *Client) TokenClassification(ctx context.Context, model, text string) ([]Token, error) {
	payload := map[string]any{
		"inputs":  text,
		"options": map[string]any{"wait_for_model": true},
	}

	body, err := c.post(ctx, model, payload)
	if err != nil {
		return nil, err
	}

	return parseTokens(body)
}

// Generate submits a prompt to a generative model and returns the generated
// text. The API returns either a single object or an array of objects with a
// generated_text field; the first non-empty one wins.
func (c *Client) Generate(ctx context.Context, model, prompt string, maxNewTokens int, temperature float64) (string, error) {
	params := map[string]any{"max_new_tokens": maxNewTokens}
	if temperature > 0 {
		params["temperature"] = temperature
	}
	payload := map[string]any{
		"inputs":     prompt,
		"parameters": params,
		"options":    map[string]any{"wait_for_model": true},
	}

	body, err := c.post(ctx, model, payload)
	if err != nil {
		return "", err
	}

	return parseGenerated(body)
}

func (c *Client) post(ctx context.Context, model string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	endpoint := c.baseURL + "models/" + url.PathEscape(model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("inference request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read inference response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("model %s returned %d: %s", model, resp.StatusCode, truncate(string(body), 300))
	}

	return body, nil
}

// parseTokens accepts a flat token array or an array of token arrays.
func parseTokens(body []byte) ([]Token, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(body, &elems); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}

	tokens := make([]Token, 0, len(elems))
	for _, raw := range elems {
		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) == 0 {
			continue
		}
		if trimmed[0] == '[' {
			var nested []rawToken
			if err := json.Unmarshal(trimmed, &nested); err != nil {
				return nil, fmt.Errorf("failed to decode nested tokens: %w", err)
			}
			for _, rt := range nested {
				tokens = append(tokens, rt.token())
			}
			continue
		}
		var rt rawToken
		if err := json.Unmarshal(trimmed, &rt); err != nil {
			return nil, fmt.Errorf("failed to decode token: %w", err)
		}
		tokens = append(tokens, rt.token())
	}

	return tokens, nil
}

// rawToken tolerates the label key variants different pipelines emit.
type rawToken struct {
	EntityGroup string  `json:"entity_group"`
	Entity      string  `json:"entity"`
	Label       string  `json:"label"`
	Score       float64 `json:"score"`
	Word        string  `json:"word"`
	Start       int     `json:"start"`
	End         int     `json:"end"`
}

func (r rawToken) token() Token {
	group := r.EntityGroup
	if group == "" {
		group = r.Entity
	}
	if group == "" {
		group = r.Label
	}
	return Token{
		EntityGroup: group,
		Score:       r.Score,
		Word:        r.Word,
		Start:       r.Start,
		End:         r.End,
	}
}

func parseGenerated(body []byte) (string, error) {
	type generated struct {
		GeneratedText string `json:"generated_text"`
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var out []generated
		if err := json.Unmarshal(trimmed, &out); err != nil {
			return "", fmt.Errorf("failed to decode generation response: %w", err)
		}
		for _, g := range out {
			if text := strings.TrimSpace(g.GeneratedText); text != "" {
				return text, nil
			}
		}
		return "", nil
	}

	var out generated
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return "", fmt.Errorf("failed to decode generation response: %w", err)
	}
	return strings.TrimSpace(out.GeneratedText), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
