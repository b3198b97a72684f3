// Package upstream talks to the university's public academic-records API.
// Every call is bounded by the client timeout; failures are surfaced to the
// caller and never retried here.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// Client fetches seasons, departments and courses from the upstream system.
type Client interface {
	FetchSeasons(ctx context.Context) ([]Season, error)
	FetchDepartments(ctx context.Context) ([]Department, error)
	FetchCourses(ctx context.Context, seasonID, departmentID int64) ([]Course, error)
}

// HTTPClient is the production Client implementation.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

// NewHTTPClient creates an HTTP-backed upstream client.
func NewHTTPClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: timeout,
		},
		logger: logger.With().Str("component", "upstream").Logger(),
	}
}

// FetchSeasons retrieves all academic seasons.
func (c *HTTPClient) FetchSeasons(ctx context.Context) ([]Season, error) {
	var seasons []Season
	if err := c.getJSON(ctx, "/api/seasons", nil, &seasons); err != nil {
		return nil, fmt.Errorf("fetching seasons: %w", err)
	}
	return seasons, nil
}

// FetchDepartments retrieves all departments.
func (c *HTTPClient) FetchDepartments(ctx context.Context) ([]Department, error) {
	var departments []Department
	if err := c.getJSON(ctx, "/api/departments", nil, &departments); err != nil {
		return nil, fmt.Errorf("fetching departments: %w", err)
	}
	return departments, nil
}

// FetchCourses retrieves the courses (with nested meeting blocks) offered by
// one department in one season.
func (c *HTTPClient) FetchCourses(ctx context.Context, seasonID, departmentID int64) ([]Course, error) {
	params := url.Values{}
	params.Set("seasonId", strconv.FormatInt(seasonID, 10))
	params.Set("departmentId", strconv.FormatInt(departmentID, 10))

	var courses []Course
	if err := c.getJSON(ctx, "/api/courses", params, &courses); err != nil {
		return nil, fmt.Errorf("fetching courses for season %d department %d: %w", seasonID, departmentID, err)
	}
	return courses, nil
}

// getJSON performs a GET request against the upstream API and decodes the
// JSON body into out.
func (c *HTTPClient) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("Upstream request completed")

	if resp.StatusCode != http.StatusOK {
		// Drain a bounded amount so the connection can be reused.
		_, _ = io.CopyN(io.Discard, resp.Body, 4096)
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}
