package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// PrometheusClient wraps the Prometheus HTTP query API for instant queries.
type PrometheusClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewPrometheusClient constructs a client targeting the configured backend.
func NewPrometheusClient(baseURL string, timeout time.Duration) *PrometheusClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &PrometheusClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// instantResponse is the standard instant-query envelope. Only the first
// vector's sample value is of interest here.
type instantResponse struct {
	Status string `json:"status"`
	Data   struct {
		ResultType string `json:"resultType"`
		Result     []struct {
			Value []json.RawMessage `json:"value"`
		} `json:"result"`
	} `json:"data"`
}

// QueryInstant evaluates a PromQL expression and returns the first result
// vector's sample value. Any shape mismatch is an error for the caller to
// downgrade to an absent sample.
func (c *PrometheusClient) QueryInstant(ctx context.Context, expr string) (float64, error) {
	if c == nil || c.baseURL == "" {
		return 0, fmt.Errorf("prometheus base URL not configured")
	}

	endpoint := fmt.Sprintf("%s/api/v1/query?query=%s", c.baseURL, url.QueryEscape(expr))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("prometheus returned %s", resp.Status)
	}

	var decoded instantResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}
	if decoded.Status != "success" {
		return 0, fmt.Errorf("prometheus query status %q", decoded.Status)
	}
	if len(decoded.Data.Result) == 0 {
		return 0, fmt.Errorf("prometheus query returned no vectors")
	}

	// An instant vector value is a [timestamp, "value"] pair; the sample of
	// interest is the second element.
	value := decoded.Data.Result[0].Value
	if len(value) < 2 {
		return 0, fmt.Errorf("prometheus vector has no sample value")
	}

	var raw string
	if err := json.Unmarshal(value[1], &raw); err != nil {
		return 0, fmt.Errorf("sample value is not a string: %w", err)
	}
	sample, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parse sample %q: %w", raw, err)
	}
	return sample, nil
}
