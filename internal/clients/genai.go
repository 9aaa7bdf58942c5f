package clients

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// GenAIClient calls the external generative model with one prompt and an
// optional inline image, returning the model's raw text reply.
type GenAIClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewGenAIClient creates a GenAIClient.
func NewGenAIClient(baseURL, apiKey string) *GenAIClient {
	return &GenAIClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 45 * time.Second},
	}
}

// Configured reports whether an API key is present.
func (c *GenAIClient) Configured() bool {
	return c.apiKey != ""
}

type genaiPart struct {
	Text       string           `json:"text,omitempty"`
	InlineData *genaiInlineData `json:"inline_data,omitempty"`
}

type genaiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type genaiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate sends the prompt (and image, when non-nil) to the model and
// returns the concatenated text of the first candidate.
func (c *GenAIClient) Generate(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	parts := []genaiPart{{Text: prompt}}
	if len(image) > 0 {
		parts = append(parts, genaiPart{InlineData: &genaiInlineData{
			MimeType: mimeType,
			Data:     base64.StdEncoding.EncodeToString(image),
		}})
	}

	body, err := json.Marshal(map[string]interface{}{
		"contents": []map[string]interface{}{{"parts": parts}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal model request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"?key="+c.apiKey, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build model request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("model call failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read model response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("model API returned status %d: %s", resp.StatusCode, raw)
	}

	var payload genaiResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", fmt.Errorf("failed to decode model response: %w", err)
	}
	if len(payload.Candidates) == 0 || len(payload.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("model response contained no candidates")
	}

	var out bytes.Buffer
	for _, p := range payload.Candidates[0].Content.Parts {
		out.WriteString(p.Text)
	}
	return out.String(), nil
}
