package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// NeutralAQI is returned when the air-quality lookup is unavailable, so a
// weather outage never fails an analysis request.
const NeutralAQI = 2

// AirQualityClient looks up the air-quality index for a coordinate pair.
type AirQualityClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewAirQualityClient creates an AirQualityClient.
func NewAirQualityClient(baseURL, apiKey string) *AirQualityClient {
	return &AirQualityClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Configured reports whether an API key is present.
func (c *AirQualityClient) Configured() bool {
	return c.apiKey != ""
}

// AQI returns the air-quality index for the coordinates.
func (c *AirQualityClient) AQI(ctx context.Context, lat, lon string) (int, error) {
	q := url.Values{}
	q.Set("lat", lat)
	q.Set("lon", lon)
	q.Set("appid", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build air-quality request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("air-quality call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("air-quality API returned status %d", resp.StatusCode)
	}

	var payload struct {
		List []struct {
			Main struct {
				AQI int `json:"aqi"`
			} `json:"main"`
		} `json:"list"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("failed to decode air-quality response: %w", err)
	}
	if len(payload.List) == 0 {
		return 0, fmt.Errorf("air-quality response contained no readings")
	}
	return payload.List[0].Main.AQI, nil
}
