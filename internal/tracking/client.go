package tracking

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultHTTPTimeout = 30 * time.Second

// HistoryRecord is one production-history event as the portal returns it.
// Timestamp fields are raw ISO-8601 strings; the portal sends null for
// in-progress visits, which decodes to the empty string.
type HistoryRecord struct {
	SerialNumber string `json:"sn"`
	Source       string `json:"source"`
	StationName  string `json:"workstation_name"`
	StationStart string `json:"history_station_start_time"`
	StationEnd   string `json:"history_station_end_time"`
}

// Window optionally bounds a history lookup by date. Both fields must be set
// for the window to apply; the portal ignores half-open ranges.
type Window struct {
	StartDate string
	EndDate   string
}

func (w Window) isSet() bool {
	return strings.TrimSpace(w.StartDate) != "" && strings.TrimSpace(w.EndDate) != ""
}

// Fetcher defines the history lookup used by the export runner.
type Fetcher interface {
	SerialHistory(ctx context.Context, serials []string, window Window) ([]HistoryRecord, error)
}

// Client provides access to the tracking portal API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

var _ Fetcher = (*Client)(nil)

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithToken sets a bearer token sent on every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = strings.TrimSpace(token)
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// New creates a portal client.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tracking base url required")
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

type historyRequest struct {
	SerialNumbers []string `json:"serialNumbers"`
	StartDate     string   `json:"startDate,omitempty"`
	EndDate       string   `json:"endDate,omitempty"`
}

type historyResponse struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	History []HistoryRecord `json:"history"`
}

// SerialHistory fetches the full production history for a batch of serial
// numbers. The returned records are unordered across serials; callers group
// by SerialNumber.
func (c *Client) SerialHistory(ctx context.Context, serials []string, window Window) ([]HistoryRecord, error) {
	if len(serials) == 0 {
		return nil, errors.New("serial history: at least one serial number required")
	}

	payload := historyRequest{SerialNumbers: serials}
	if window.isSet() {
		payload.StartDate = strings.TrimSpace(window.StartDate)
		payload.EndDate = strings.TrimSpace(window.EndDate)
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("serial history: encode request: %w", err)
	}

	endpoint, err := url.JoinPath(c.baseURL, "/serial-history")
	if err != nil {
		return nil, fmt.Errorf("serial history: build url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("serial history: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("serial history: execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("serial history: read body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("serial history: http %d (latency=%v): %s", resp.StatusCode, latency, strings.TrimSpace(string(body)))
	}

	var decoded historyResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("serial history: decode response: %w", err)
	}
	if !decoded.Success {
		message := strings.TrimSpace(decoded.Error)
		if message == "" {
			message = "unknown error"
		}
		return nil, fmt.Errorf("serial history: portal error: %s", message)
	}
	return decoded.History, nil
}

// GroupBySerial buckets history records by serial number, preserving the
// portal's record order within each bucket. Grouping order matters: the cycle
// extractor's station groups inherit this encounter order.
func GroupBySerial(records []HistoryRecord) map[string][]HistoryRecord {
	grouped := make(map[string][]HistoryRecord)
	for _, record := range records {
		grouped[record.SerialNumber] = append(grouped[record.SerialNumber], record)
	}
	return grouped
}
