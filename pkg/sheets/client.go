// Package sheets provides read access to the spreadsheet service used for
// the client roster and content plan documents.
package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/noktah-inovasi/contentops/internal/resilience"
)

const defaultBaseURL = "https://sheets.googleapis.com/v4"

// Client defines the spreadsheet operations used by the pipeline.
type Client interface {
	TestConnection(ctx context.Context, spreadsheetID string) error
	GetSpreadsheetInfo(ctx context.Context, spreadsheetID string) (*SpreadsheetInfo, error)
	ReadTable(ctx context.Context, spreadsheetID, sheetName string, opts ReadOptions) (*Table, error)
}

// SpreadsheetInfo holds spreadsheet metadata.
type SpreadsheetInfo struct {
	Title  string
	Sheets []SheetInfo
}

// SheetInfo describes one sheet tab.
type SheetInfo struct {
	Title string
}

// HasSheet reports whether a sheet with the given title exists.
func (i *SpreadsheetInfo) HasSheet(title string) bool {
	for _, s := range i.Sheets {
		if s.Title == title {
			return true
		}
	}
	return false
}

// SheetTitles lists the sheet tab titles in order.
func (i *SpreadsheetInfo) SheetTitles() []string {
	titles := make([]string, len(i.Sheets))
	for j, s := range i.Sheets {
		titles[j] = s.Title
	}
	return titles
}

// ReadOptions narrows a table read.
type ReadOptions struct {
	// Range is an optional A1 range within the sheet (e.g. "A1:D10").
	Range string
	// MaxRows caps the number of data rows returned (0 = no cap). The
	// header row does not count against the cap.
	MaxRows int
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

type httpClient struct {
	token   string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	retry   resilience.Policy
}

// NewClient creates a spreadsheet client authenticated with a bearer token.
func NewClient(token string, opts ...Option) Client {
	c := &httpClient{
		token:   token,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		retry:   resilience.DefaultPolicy(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) TestConnection(ctx context.Context, spreadsheetID string) error {
	u := fmt.Sprintf("%s/spreadsheets/%s?fields=spreadsheetId", c.baseURL, url.PathEscape(spreadsheetID))
	_, err := c.get(ctx, u, "test connection")
	return err
}

type spreadsheetResponse struct {
	Properties struct {
		Title string `json:"title"`
	} `json:"properties"`
	Sheets []struct {
		Properties struct {
			Title string `json:"title"`
		} `json:"properties"`
	} `json:"sheets"`
}

func (c *httpClient) GetSpreadsheetInfo(ctx context.Context, spreadsheetID string) (*SpreadsheetInfo, error) {
	u := fmt.Sprintf("%s/spreadsheets/%s?fields=properties.title,sheets.properties.title",
		c.baseURL, url.PathEscape(spreadsheetID))

	body, err := c.get(ctx, u, "get spreadsheet info")
	if err != nil {
		return nil, err
	}

	var resp spreadsheetResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, eris.Wrap(err, "sheets: unmarshal spreadsheet info")
	}

	info := &SpreadsheetInfo{Title: resp.Properties.Title}
	for _, s := range resp.Sheets {
		info.Sheets = append(info.Sheets, SheetInfo{Title: s.Properties.Title})
	}
	return info, nil
}

type valuesResponse struct {
	Values [][]any `json:"values"`
}

func (c *httpClient) ReadTable(ctx context.Context, spreadsheetID, sheetName string, opts ReadOptions) (*Table, error) {
	rangeRef := "'" + sheetName + "'"
	if opts.Range != "" {
		rangeRef += "!" + opts.Range
	}
	u := fmt.Sprintf("%s/spreadsheets/%s/values/%s?majorDimension=ROWS",
		c.baseURL, url.PathEscape(spreadsheetID), url.PathEscape(rangeRef))

	body, err := c.get(ctx, u, "read values")
	if err != nil {
		return nil, err
	}

	var resp valuesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, eris.Wrap(err, "sheets: unmarshal values")
	}

	return NewTable(resp.Values, opts.MaxRows), nil
}

// get issues a GET with auth, rate limiting, and transient-failure retry.
func (c *httpClient) get(ctx context.Context, url, op string) ([]byte, error) {
	return resilience.DoVal(ctx, c.retry, func(ctx context.Context) ([]byte, error) {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, eris.Wrapf(err, "sheets: rate limit %s", op)
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, eris.Wrapf(err, "sheets: create request %s", op)
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, eris.Wrapf(err, "sheets: %s", op)
		}
		defer resp.Body.Close() //nolint:errcheck

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, eris.Wrapf(err, "sheets: read response %s", op)
		}

		if resp.StatusCode != http.StatusOK {
			err := eris.Errorf("sheets: %s: unexpected status %d: %s", op, resp.StatusCode, string(body))
			if resilience.IsTransientHTTPStatus(resp.StatusCode) {
				return nil, resilience.MarkTransient(err, resp.StatusCode)
			}
			return nil, err
		}
		return body, nil
	})
}
