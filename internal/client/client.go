// Package client talks to the travel search API over JSON/HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Abhilash001/gemini-crewai-travelplanner/internal/ratelimit"
)

const DefaultBaseURL = "http://localhost:8000"

const (
	PathCompleteSearch = "/complete_search/"
	PathSearchFlights  = "/search_flights/"
	PathSearchHotels   = "/search_hotels/"
	PathTravelPlan     = "/ai_travel_plan/"
	PathGeneratePDF    = "/generate_pdf/"
)

const HeaderRequestID = "X-Request-ID"

type Config struct {
	BaseURL string
	// Timeout bounds a whole request. Zero means no timeout.
	Timeout     time.Duration
	RateLimiter *ratelimit.EndpointLimiter
	HTTPClient  *http.Client
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *ratelimit.EndpointLimiter
}

func New(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		limiter:    cfg.RateLimiter,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// PostJSON sends payload to path and decodes the JSON response into out.
// Non-2xx responses are returned as *APIError.
func (c *Client) PostJSON(ctx context.Context, path string, payload, out any) error {
	body, err := c.post(ctx, path, payload, "application/json")
	if err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrapf(err, "decode %s response", path)
	}
	return nil
}

// PostBytes sends payload to path and returns the raw response body.
func (c *Client) PostBytes(ctx context.Context, path string, payload any) ([]byte, error) {
	return c.post(ctx, path, payload, "*/*")
}

func (c *Client) post(ctx context.Context, path string, payload any, accept string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, path); err != nil {
			return nil, errors.Wrapf(err, "rate limit %s", path)
		}
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrapf(err, "encode %s request", path)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "build %s request", path)
	}
	requestID := uuid.New().String()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", accept)
	req.Header.Set(HeaderRequestID, requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("Request %s to %s failed: %v", requestID, path, err)
		return nil, errors.Wrapf(err, "POST %s", path)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s response", path)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newAPIError(resp.StatusCode, body)
		log.Printf("Request %s to %s returned %d: %s", requestID, path, resp.StatusCode, apiErr.Detail)
		return nil, apiErr
	}

	return body, nil
}

// APIError is a non-2xx answer from the search API. Detail is the server's
// "detail" string when the body carried one.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("search api: status %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("search api: status %d", e.StatusCode)
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	// detail is a list of field errors on FastAPI-style 422 responses; only
	// plain strings are meant for display.
	var payload struct {
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if s, ok := payload.Detail.(string); ok {
			apiErr.Detail = s
		}
	}
	return apiErr
}

// Detail extracts the user-facing server message from err, if any.
func Detail(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail, true
	}
	return "", false
}
