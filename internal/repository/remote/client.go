// Package remote implements the repository interfaces on top of a generic
// hosted record API that exposes named tables of records.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-roster-api/internal/repository"
)

// pageLimit is the page size used when draining a table.
const pageLimit = 500

// Condition is one where clause of a query.
type Condition struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Values   []any  `json:"values"`
}

// Order sorts query results by one field.
type Order struct {
	Field     string `json:"fieldName"`
	Direction string `json:"sorttype"`
}

// Paging bounds a query window.
type Paging struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// Query is the body of a records query.
type Query struct {
	Fields  []string    `json:"fields"`
	Where   []Condition `json:"where,omitempty"`
	OrderBy []Order     `json:"orderBy,omitempty"`
	Paging  Paging      `json:"pagingInfo"`
}

// EqualTo builds an equality condition.
func EqualTo(field string, value any) Condition {
	return Condition{Field: field, Operator: "EqualTo", Values: []any{value}}
}

type result struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Total   int             `json:"total"`
	Results []result        `json:"results"`
}

// Client talks to the record API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates a client for baseURL. A zero timeout falls back to ten
// seconds.
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (c *Client) tableURL(table string, parts ...string) string {
	u := c.baseURL + "/tables/" + url.PathEscape(table) + "/records"
	for _, p := range parts {
		u += "/" + p
	}
	return u
}

// QueryAll drains every page of q into dest, which must point to a slice.
func (c *Client) QueryAll(ctx context.Context, table string, q Query, dest any) error {
	var all []json.RawMessage
	q.Paging = Paging{Limit: pageLimit}
	for {
		env, err := c.do(ctx, http.MethodPost, c.tableURL(table, "query"), q)
		if err != nil {
			return err
		}
		var page []json.RawMessage
		if len(env.Data) > 0 && string(env.Data) != "null" {
			if err := json.Unmarshal(env.Data, &page); err != nil {
				return fmt.Errorf("%w: decode %s query: %v", repository.ErrUnavailable, table, err)
			}
		}
		all = append(all, page...)
		q.Paging.Offset += len(page)
		if len(page) < pageLimit || (env.Total > 0 && q.Paging.Offset >= env.Total) {
			break
		}
	}

	raw, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("re-encode %s records: %w", table, err)
	}
	if all == nil {
		raw = []byte("[]")
	}
	return json.Unmarshal(raw, dest)
}

// Get fetches one record into dest. A missing record yields
// repository.ErrNotFound.
func (c *Client) Get(ctx context.Context, table string, id int64, fields []string, dest any) error {
	u := c.tableURL(table, fmt.Sprint(id)) + "?fields=" + url.QueryEscape(strings.Join(fields, ","))
	env, err := c.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return repository.ErrNotFound
	}
	if err := json.Unmarshal(env.Data, dest); err != nil {
		return fmt.Errorf("%w: decode %s record: %v", repository.ErrUnavailable, table, err)
	}
	return nil
}

// Create inserts record and decodes the stored copy into dest.
func (c *Client) Create(ctx context.Context, table string, record, dest any) error {
	return c.write(ctx, http.MethodPost, table, map[string]any{"records": []any{record}}, dest)
}

// Update replaces record, which must carry its Id, and decodes the stored copy
// into dest.
func (c *Client) Update(ctx context.Context, table string, record, dest any) error {
	return c.write(ctx, http.MethodPatch, table, map[string]any{"records": []any{record}}, dest)
}

// Delete removes the record with id.
func (c *Client) Delete(ctx context.Context, table string, id int64) error {
	return c.write(ctx, http.MethodDelete, table, map[string]any{"RecordIds": []int64{id}}, nil)
}

// Ping issues a one-row query against the student table.
func (c *Client) Ping(ctx context.Context) error {
	q := Query{Fields: []string{"Id"}, Paging: Paging{Limit: 1}}
	_, err := c.do(ctx, http.MethodPost, c.tableURL(studentTable, "query"), q)
	return err
}

func (c *Client) write(ctx context.Context, method, table string, body, dest any) error {
	env, err := c.do(ctx, method, c.tableURL(table), body)
	if err != nil {
		return err
	}
	if len(env.Results) == 0 {
		return fmt.Errorf("%w: %s %s returned no results", repository.ErrUnavailable, method, table)
	}
	first := env.Results[0]
	if !first.Success {
		return fmt.Errorf("%w: %s %s: %s", repository.ErrUnavailable, method, table, first.Message)
	}
	if dest == nil || len(first.Data) == 0 || string(first.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(first.Data, dest); err != nil {
		return fmt.Errorf("%w: decode %s result: %v", repository.ErrUnavailable, table, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, u string, body any) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", repository.ErrUnavailable, method, u, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("remote request",
		zap.String("method", method),
		zap.String("url", u),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", repository.ErrUnavailable, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, repository.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s %s: status %d", repository.ErrUnavailable, method, u, resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: decode envelope: %v", repository.ErrUnavailable, err)
	}
	if !env.Success {
		return nil, fmt.Errorf("%w: %s %s: %s", repository.ErrUnavailable, method, u, env.Message)
	}
	return &env, nil
}
