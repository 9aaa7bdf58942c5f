package clients

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// visionAttributes is the fixed attribute set requested from the face API.
const visionAttributes = "gender,age,skinstatus"

// VisionClient proxies face/skin attribute detection to the external
// vision API.
type VisionClient struct {
	baseURL    string
	apiKey     string
	apiSecret  string
	httpClient *http.Client
}

// NewVisionClient creates a VisionClient. Empty credentials are allowed;
// Configured reports whether the client can actually be used.
func NewVisionClient(baseURL, apiKey, apiSecret string) *VisionClient {
	return &VisionClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
}

// Configured reports whether API credentials are present.
func (c *VisionClient) Configured() bool {
	return c.apiKey != "" && c.apiSecret != ""
}

// Detect sends the raw image bytes to the vision API and returns the decoded
// attribute payload as-is.
func (c *VisionClient) Detect(ctx context.Context, image []byte) (map[string]interface{}, error) {
	form := url.Values{}
	form.Set("api_key", c.apiKey)
	form.Set("api_secret", c.apiSecret)
	form.Set("image_base64", base64.StdEncoding.EncodeToString(image))
	form.Set("return_attributes", visionAttributes)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build vision request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("vision call failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read vision response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("vision API returned status %d: %s", resp.StatusCode, body)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode vision response: %w", err)
	}
	return payload, nil
}
