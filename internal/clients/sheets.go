package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// RemoteReview is one review row as stored by the spreadsheet backup service.
// The backup schema uses `date` where the local store uses `time`.
type RemoteReview struct {
	Name      string `json:"name"`
	SkinType  string `json:"skinType"`
	Title     string `json:"title"`
	FullStory string `json:"fullStory"`
	Location  string `json:"location"`
	Concerns  string `json:"concerns"`
	Rating    int    `json:"rating"`
	Date      string `json:"date"`
}

// SheetsClient talks to the spreadsheet-backed backup API. One endpoint URL
// per sheet; rows are pushed as {"data": [row]} and fetched as a plain array.
type SheetsClient struct {
	httpClient *http.Client
}

// NewSheetsClient creates a SheetsClient with a bounded request timeout.
func NewSheetsClient() *SheetsClient {
	return &SheetsClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// PushRow appends one row to the sheet behind url.
func (c *SheetsClient) PushRow(ctx context.Context, url string, row map[string]interface{}) error {
	body, err := json.Marshal(map[string]interface{}{"data": []map[string]interface{}{row}})
	if err != nil {
		return fmt.Errorf("failed to marshal sheet row: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build sheet request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sheet push failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sheet push returned status %d", resp.StatusCode)
	}
	return nil
}

// FetchReviews pulls the full remote review collection from the sheet
// behind url.
func (c *SheetsClient) FetchReviews(ctx context.Context, url string) ([]RemoteReview, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build sheet request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sheet fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sheet fetch returned status %d", resp.StatusCode)
	}

	var rows []RemoteReview
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode sheet rows: %w", err)
	}
	return rows, nil
}
