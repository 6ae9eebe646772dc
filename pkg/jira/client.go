// Package jira provides the work-item tracker operations used by the
// submission stage.
package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/noktah-inovasi/contentops/internal/resilience"
)

const apiPrefix = "/rest/api/3"

// ServerInfo holds tracker instance metadata, used as a connectivity probe.
type ServerInfo struct {
	BaseURL        string `json:"baseUrl"`
	Version        string `json:"version"`
	DeploymentType string `json:"deploymentType"`
	ServerTitle    string `json:"serverTitle"`
}

// CreatedIssue identifies one work item created by a bulk call.
type CreatedIssue struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Self string `json:"self"`
}

// BulkError describes one rejected element of a bulk call.
type BulkError struct {
	Status              int           `json:"status"`
	ElementErrors       ElementErrors `json:"elementErrors"`
	FailedElementNumber int           `json:"failedElementNumber"`
}

// ElementErrors carries the tracker's per-element error detail.
type ElementErrors struct {
	ErrorMessages []string          `json:"errorMessages"`
	Errors        map[string]string `json:"errors"`
}

// BulkResult is the tracker's bulk-create response. Creations and rejections
// arrive together; a non-empty Errors slice does not imply an empty Issues
// slice.
type BulkResult struct {
	Issues []CreatedIssue `json:"issues"`
	Errors []BulkError    `json:"errors"`
}

// Client defines the tracker operations used by the pipeline.
type Client interface {
	GetServerInfo(ctx context.Context) (*ServerInfo, error)
	// CreateIssuesBulk submits the field payloads as one bulk-create call
	// and returns the tracker's mixed result. The error return covers only
	// call-level failures; per-element rejections live in BulkResult.Errors.
	CreateIssuesBulk(ctx context.Context, fields []any) (*BulkResult, error)
}

// Option configures the client.
type Option func(*httpClient)

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) { c.http = hc }
}

// WithRateLimit sets a per-second request rate limit.
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), max(int(rps), 1))
		}
	}
}

// WithRetryPolicy overrides the default transient-failure retry policy.
func WithRetryPolicy(p resilience.Policy) Option {
	return func(c *httpClient) { c.retry = p }
}

type httpClient struct {
	baseURL string
	email   string
	token   string
	http    *http.Client
	limiter *rate.Limiter
	retry   resilience.Policy
}

// NewClient creates a tracker client. baseURL is the instance root (e.g.
// "https://example.atlassian.net"); email and token form the basic-auth
// credential pair. Bulk creates can run long, so the default timeout is
// generous.
func NewClient(baseURL, email, token string, opts ...Option) Client {
	c := &httpClient{
		baseURL: baseURL,
		email:   email,
		token:   token,
		http:    &http.Client{Timeout: 120 * time.Second},
		retry:   resilience.DefaultPolicy(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) GetServerInfo(ctx context.Context) (*ServerInfo, error) {
	body, err := c.do(ctx, http.MethodGet, apiPrefix+"/serverInfo", nil, "get server info")
	if err != nil {
		return nil, err
	}

	var info ServerInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, eris.Wrap(err, "jira: unmarshal server info")
	}
	return &info, nil
}

type bulkRequest struct {
	IssueUpdates []bulkIssue `json:"issueUpdates"`
}

type bulkIssue struct {
	Fields any `json:"fields"`
}

func (c *httpClient) CreateIssuesBulk(ctx context.Context, fields []any) (*BulkResult, error) {
	req := bulkRequest{IssueUpdates: make([]bulkIssue, len(fields))}
	for i, f := range fields {
		req.IssueUpdates[i] = bulkIssue{Fields: f}
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, eris.Wrap(err, "jira: marshal bulk request")
	}

	body, err := c.do(ctx, http.MethodPost, apiPrefix+"/issue/bulk", payload, "bulk create issues")
	if err != nil {
		return nil, err
	}

	var result BulkResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "jira: unmarshal bulk result")
	}
	return &result, nil
}

// do issues one authenticated request with rate limiting and transient-failure
// retry. The tracker answers a fully rejected bulk call with 400 and the same
// errors envelope, so 400 bodies on the bulk path are returned to the caller
// instead of failing the call.
func (c *httpClient) do(ctx context.Context, method, path string, payload []byte, op string) ([]byte, error) {
	return resilience.DoVal(ctx, c.retry, func(ctx context.Context) ([]byte, error) {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, eris.Wrapf(err, "jira: rate limit %s", op)
			}
		}

		var reqBody io.Reader
		if payload != nil {
			reqBody = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
		if err != nil {
			return nil, eris.Wrapf(err, "jira: create request %s", op)
		}
		req.SetBasicAuth(c.email, c.token)
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, eris.Wrapf(err, "jira: %s", op)
		}
		defer resp.Body.Close() //nolint:errcheck

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, eris.Wrapf(err, "jira: read response %s", op)
		}

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return body, nil
		case resp.StatusCode == http.StatusBadRequest && method == http.MethodPost:
			return body, nil
		default:
			err := eris.Errorf("jira: %s: unexpected status %d: %s", op, resp.StatusCode, string(body))
			if resilience.IsTransientHTTPStatus(resp.StatusCode) {
				return nil, resilience.MarkTransient(err, resp.StatusCode)
			}
			return nil, err
		}
	})
}
