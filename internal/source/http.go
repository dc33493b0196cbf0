// Package source implements the questionnaire fetch service: an HTTP client
// for the questionnaire API and a read-only directory of questionnaire files,
// plus a watcher that reports file changes.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"questionnaire/internal/domain"
)

// APIError is a response whose envelope carries a non-zero errno.
type APIError struct {
	Errno int
	Msg   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api errno %d: %s", e.Errno, e.Msg)
}

// envelope is the {errno, data, msg} wrapper every API response uses.
type envelope struct {
	Errno int             `json:"errno"`
	Data  json.RawMessage `json:"data"`
	Msg   string          `json:"msg"`
}

// HTTPClient talks to the questionnaire API.
type HTTPClient struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewHTTPClient creates a client for the API rooted at baseURL. token is sent
// as a bearer token when non-empty.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// GetQuestionnaire fetches GET /api/question/{id}.
func (c *HTTPClient) GetQuestionnaire(ctx context.Context, id string) (*domain.Questionnaire, error) {
	var q domain.Questionnaire
	if err := c.get(ctx, "/api/question/"+url.PathEscape(id), nil, &q); err != nil {
		return nil, fmt.Errorf("get questionnaire %s: %w", id, err)
	}
	if q.ID == "" {
		q.ID = id
	}
	return &q, nil
}

// ListQuestionnaires fetches GET /api/question with the query as parameters.
func (c *HTTPClient) ListQuestionnaires(ctx context.Context, q domain.ListQuery) (*domain.ListResult, error) {
	params := url.Values{}
	if q.Keyword != "" {
		params.Set("keyword", q.Keyword)
	}
	if q.IsStar {
		params.Set("isStar", "true")
	}
	if q.IsDeleted {
		params.Set("isDeleted", "true")
	}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		params.Set("pageSize", strconv.Itoa(q.PageSize))
	}

	var res domain.ListResult
	if err := c.get(ctx, "/api/question", params, &res); err != nil {
		return nil, fmt.Errorf("list questionnaires: %w", err)
	}
	return &res, nil
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", requestID, err)
	}
	defer resp.Body.Close()
	log.Printf("source: GET %s -> %d in %dms (request %s)", path, resp.StatusCode, time.Since(start).Milliseconds(), requestID)

	if resp.StatusCode == http.StatusNotFound {
		return domain.ErrNotFound
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}
	if env.Errno != 0 {
		return &APIError{Errno: env.Errno, Msg: env.Msg}
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return fmt.Errorf("%w: response has no data", domain.ErrInvalidDocument)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidDocument, err)
	}
	return nil
}
