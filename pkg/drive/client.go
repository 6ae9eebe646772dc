// Package drive provides file search over the document store holding the
// per-client content plan folders.
package drive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/noktah-inovasi/contentops/internal/resilience"
)

const (
	defaultBaseURL  = "https://www.googleapis.com/drive/v3"
	defaultPageSize = 100

	folderMimeType = "application/vnd.google-apps.folder"
)

// File is a document-store entry.
type File struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MimeType     string `json:"mimeType"`
	ModifiedTime string `json:"modifiedTime"`
}

// Client defines the file-search operations used by the locator.
type Client interface {
	// ListFiles returns non-folder files under folderID whose name contains
	// nameContains (all files when empty), in the order the store returns
	// them. With recursive set, descendant folders are enumerated breadth-
	// first and their files appended after the parent folder's.
	ListFiles(ctx context.Context, folderID, nameContains string, recursive bool) ([]File, error)
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *httpClient) { c.baseURL = u }
}

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

// WithPageSize overrides the per-request page size.
func WithPageSize(n int) Option {
	return func(c *httpClient) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

type httpClient struct {
	token    string
	baseURL  string
	http     *http.Client
	limiter  *rate.Limiter
	retry    resilience.Policy
	pageSize int
}

// NewClient creates a document-store client authenticated with a bearer token.
func NewClient(token string, opts ...Option) Client {
	c := &httpClient{
		token:    token,
		baseURL:  defaultBaseURL,
		http:     &http.Client{Timeout: 30 * time.Second},
		retry:    resilience.DefaultPolicy(),
		pageSize: defaultPageSize,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) ListFiles(ctx context.Context, folderID, nameContains string, recursive bool) ([]File, error) {
	folders := []string{folderID}
	if recursive {
		expanded, err := c.expandFolders(ctx, folderID)
		if err != nil {
			return nil, err
		}
		folders = expanded
	}

	var files []File
	for _, id := range folders {
		q := fmt.Sprintf("'%s' in parents and mimeType != '%s'", escapeQueryValue(id), folderMimeType)
		if nameContains != "" {
			q += fmt.Sprintf(" and name contains '%s'", escapeQueryValue(nameContains))
		}
		found, err := c.query(ctx, q)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

// expandFolders walks the folder graph breadth-first, returning the root
// first followed by descendants in discovery order.
func (c *httpClient) expandFolders(ctx context.Context, rootID string) ([]string, error) {
	all := []string{rootID}
	queue := []string{rootID}
	seen := map[string]bool{rootID: true}

	for len(queue) > 0 {
		parent := queue[0]
		queue = queue[1:]

		q := fmt.Sprintf("'%s' in parents and mimeType = '%s'", escapeQueryValue(parent), folderMimeType)
		subs, err := c.query(ctx, q)
		if err != nil {
			return nil, err
		}
		for _, sub := range subs {
			if seen[sub.ID] {
				continue
			}
			seen[sub.ID] = true
			all = append(all, sub.ID)
			queue = append(queue, sub.ID)
		}
	}
	return all, nil
}

type listResponse struct {
	Files         []File `json:"files"`
	NextPageToken string `json:"nextPageToken"`
}

func (c *httpClient) query(ctx context.Context, q string) ([]File, error) {
	var files []File
	pageToken := ""
	for {
		params := url.Values{}
		params.Set("q", q)
		params.Set("fields", "nextPageToken, files(id,name,mimeType,modifiedTime)")
		params.Set("pageSize", fmt.Sprint(c.pageSize))
		params.Set("supportsAllDrives", "true")
		params.Set("includeItemsFromAllDrives", "true")
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		body, err := c.get(ctx, c.baseURL+"/files?"+params.Encode())
		if err != nil {
			return nil, err
		}

		var resp listResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, eris.Wrap(err, "drive: unmarshal file list")
		}
		files = append(files, resp.Files...)

		if resp.NextPageToken == "" {
			return files, nil
		}
		pageToken = resp.NextPageToken
	}
}

func (c *httpClient) get(ctx context.Context, url string) ([]byte, error) {
	return resilience.DoVal(ctx, c.retry, func(ctx context.Context) ([]byte, error) {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, eris.Wrap(err, "drive: rate limit")
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, eris.Wrap(err, "drive: create request")
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, eris.Wrap(err, "drive: list files")
		}
		defer resp.Body.Close() //nolint:errcheck

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, eris.Wrap(err, "drive: read response")
		}

		if resp.StatusCode != http.StatusOK {
			err := eris.Errorf("drive: unexpected status %d: %s", resp.StatusCode, string(body))
			if resilience.IsTransientHTTPStatus(resp.StatusCode) {
				return nil, resilience.MarkTransient(err, resp.StatusCode)
			}
			return nil, err
		}
		return body, nil
	})
}

// escapeQueryValue escapes single quotes and backslashes for the store's
// query syntax.
func escapeQueryValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return strings.ReplaceAll(v, `'`, `\'`)
}
