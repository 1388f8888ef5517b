package datadog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultAPIURL    = "https://api.datadoghq.com/api"
	DefaultSubdomain = "app"

	paramAPIKey         = "api_key"
	paramApplicationKey = "application_key"
)

// HTTPError is returned for any non-2xx response.
type HTTPError struct {
	Path       string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("datadog: GET %s: %d %s: %s", e.Path, e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}

// Client reads the v1 dashboard and monitor listings.
type Client struct {
	http           *http.Client
	apiURL         string
	apiKey         string
	applicationKey string
	urls           URLs
	logger         *zap.Logger
}

type ClientOptions struct {
	APIURL         string
	APIKey         string
	ApplicationKey string
	Subdomain      string
	// HTTPClient defaults to a client with a 30s timeout.
	HTTPClient *http.Client
}

func NewClient(opts ClientOptions, logger *zap.Logger) *Client {
	if opts.APIURL == "" {
		opts.APIURL = DefaultAPIURL
	}
	if opts.Subdomain == "" {
		opts.Subdomain = DefaultSubdomain
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		http:           opts.HTTPClient,
		apiURL:         opts.APIURL,
		apiKey:         opts.APIKey,
		applicationKey: opts.ApplicationKey,
		urls:           URLs{Subdomain: opts.Subdomain},
		logger:         logger,
	}
}

// Snapshot is everything a refresh stores.
type Snapshot struct {
	TimeBoards   []TimeBoard
	ScreenBoards []ScreenBoard
	Monitors     []Monitor
}

// FetchAll retrieves the three listings concurrently. The first failure
// cancels the others and is returned.
func (c *Client) FetchAll(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(3)

	g.Go(func() (err error) {
		snap.TimeBoards, err = c.TimeBoards(ctx)
		return err
	})
	g.Go(func() (err error) {
		snap.ScreenBoards, err = c.ScreenBoards(ctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Monitors, err = c.Monitors(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

func (c *Client) TimeBoards(ctx context.Context) ([]TimeBoard, error) {
	body, err := c.get(ctx, "/v1/dash")
	if err != nil {
		return nil, err
	}

	var boards []TimeBoard
	for _, r := range gjson.GetBytes(body, "dashes").Array() {
		modified, err := parseModified(r)
		if err != nil {
			return nil, err
		}
		id := r.Get("id").String()
		boards = append(boards, TimeBoard{
			ID:          id,
			Title:       r.Get("title").String(),
			Description: r.Get("description").String(),
			URL:         c.urls.TimeBoard(id),
			Modified:    modified,
		})
	}
	return boards, nil
}

func (c *Client) ScreenBoards(ctx context.Context) ([]ScreenBoard, error) {
	body, err := c.get(ctx, "/v1/screen")
	if err != nil {
		return nil, err
	}

	var boards []ScreenBoard
	for _, r := range gjson.GetBytes(body, "screenboards").Array() {
		modified, err := parseModified(r)
		if err != nil {
			return nil, err
		}
		id := r.Get("id").Int()
		boards = append(boards, ScreenBoard{
			ID:          id,
			Title:       r.Get("title").String(),
			Description: r.Get("description").String(),
			URL:         c.urls.ScreenBoard(id),
			Modified:    modified,
		})
	}
	return boards, nil
}

func (c *Client) Monitors(ctx context.Context) ([]Monitor, error) {
	body, err := c.get(ctx, "/v1/monitor")
	if err != nil {
		return nil, err
	}

	var monitors []Monitor
	for _, r := range gjson.ParseBytes(body).Array() {
		modified, err := parseModified(r)
		if err != nil {
			return nil, err
		}
		id := r.Get("id").Int()
		var tags []string
		for _, tag := range r.Get("tags").Array() {
			tags = append(tags, tag.String())
		}
		monitors = append(monitors, Monitor{
			ID:       id,
			Name:     r.Get("name").String(),
			URL:      c.urls.Monitor(id),
			Tags:     tags,
			Modified: modified,
		})
	}
	return monitors, nil
}

func parseModified(r gjson.Result) (time.Time, error) {
	raw := r.Get("modified").String()
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("datadog: id %s: modified %q: %w", r.Get("id").String(), raw, err)
	}
	return t.UTC(), nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	q := url.Values{}
	q.Set(paramApplicationKey, c.applicationKey)
	q.Set(paramAPIKey, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("fetching", zap.String("path", path))
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("datadog: GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("datadog: read %s: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{Path: path, StatusCode: resp.StatusCode, Body: string(body)}
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("datadog: GET %s: response is not valid JSON", path)
	}
	return body, nil
}
