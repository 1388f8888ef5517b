package buildkite

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const (
	DefaultBaseURL = "https://api.buildkite.com/v2"
	pageSize       = "100"
)

var nextLinkRe = regexp.MustCompile(`<([^>]*)>;\s*rel="next"`)

// HTTPError is returned for any non-2xx response.
type HTTPError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("buildkite: GET %s: %d %s: %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}

// Client talks to the Buildkite REST API with a bearer token.
type Client struct {
	http    *http.Client
	baseURL string
	logger  *zap.Logger
}

// NewClient authenticates every request with token. A *http.Client stored
// in ctx under oauth2.HTTPClient is used as the underlying transport.
func NewClient(ctx context.Context, token, baseURL string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return &Client{
		http:    oauth2.NewClient(ctx, src),
		baseURL: baseURL,
		logger:  logger,
	}
}

// Organizations pages through every organization the token can see.
func (c *Client) Organizations() *PageIterator[Organization] {
	return &PageIterator[Organization]{
		client: c,
		next:   c.baseURL + "/organizations?per_page=" + pageSize,
	}
}

// Pipelines pages through the pipelines of one organization.
func (c *Client) Pipelines(orgSlug string) *PageIterator[APIPipeline] {
	return &PageIterator[APIPipeline]{
		client: c,
		next:   c.baseURL + "/organizations/" + url.PathEscape(orgSlug) + "/pipelines?per_page=" + pageSize,
	}
}

// getPage fetches one page into out and returns the rel="next" URL, empty
// on the last page.
func (c *Client) getPage(ctx context.Context, pageURL string, out any) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("fetching page", zap.String("url", pageURL))
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("buildkite: GET %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return "", &HTTPError{URL: pageURL, StatusCode: resp.StatusCode, Body: string(body)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return "", fmt.Errorf("buildkite: decode %s: %w", pageURL, err)
	}
	return nextLink(resp.Header.Get("Link")), nil
}

func nextLink(header string) string {
	m := nextLinkRe.FindStringSubmatch(header)
	if m == nil {
		return ""
	}
	return m[1]
}

// PageIterator walks a paginated collection one page per Next call.
type PageIterator[T any] struct {
	client *Client
	next   string
	done   bool
}

// Done reports whether the last page has been returned or an error ended
// the iteration.
func (it *PageIterator[T]) Done() bool {
	return it.done
}

// Next fetches the following page. It must not be called once Done is true.
func (it *PageIterator[T]) Next(ctx context.Context) ([]T, error) {
	if it.done {
		return nil, fmt.Errorf("buildkite: iterator exhausted")
	}
	var page []T
	next, err := it.client.getPage(ctx, it.next, &page)
	if err != nil {
		it.done = true
		return nil, err
	}
	it.next = next
	it.done = next == ""
	return page, nil
}

// All drains an iterator.
func All[T any](ctx context.Context, it *PageIterator[T]) ([]T, error) {
	var all []T
	for !it.Done() {
		page, err := it.Next(ctx)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
	}
	return all, nil
}
