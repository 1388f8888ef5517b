package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cli/go-gh/v2/pkg/api"
	"github.com/cli/go-gh/v2/pkg/auth"
	"go.uber.org/zap"
)

const DefaultHost = "github.com"

// ErrNoToken is returned when neither the configuration nor the gh CLI
// provides a token.
var ErrNoToken = errors.New("no GitHub token: set API_KEY or run `gh auth login`")

// graphQLClient is the part of api.GraphQLClient the workflow uses.
type graphQLClient interface {
	QueryWithContext(ctx context.Context, name string, q interface{}, variables map[string]interface{}) error
}

// Client pages through the viewer's repositories over GraphQL.
type Client struct {
	gql    graphQLClient
	logger *zap.Logger
}

type ClientOptions struct {
	// Token falls back to the gh CLI's stored credentials when empty.
	Token string
	Host  string
	// Transport overrides the HTTP round tripper, mainly for tests.
	Transport http.RoundTripper
}

func NewClient(opts ClientOptions, logger *zap.Logger) (*Client, error) {
	if opts.Host == "" {
		opts.Host = DefaultHost
	}
	token, err := ResolveToken(opts.Token, opts.Host)
	if err != nil {
		return nil, err
	}

	gql, err := api.NewGraphQLClient(api.ClientOptions{
		Host:      opts.Host,
		AuthToken: token,
		Transport: opts.Transport,
	})
	if err != nil {
		return nil, fmt.Errorf("create GitHub client: %w", err)
	}
	return &Client{gql: gql, logger: logger}, nil
}

// ResolveToken prefers an explicit token and otherwise asks the gh CLI.
func ResolveToken(token, host string) (string, error) {
	if token != "" {
		return token, nil
	}
	if t, _ := auth.TokenForHost(host); t != "" {
		return t, nil
	}
	return "", ErrNoToken
}

// Repositories returns an iterator over every accessible repository.
func (c *Client) Repositories() *RepositoryIterator {
	return &RepositoryIterator{client: c}
}

// RepositoryIterator follows pageInfo.endCursor until hasNextPage is false.
type RepositoryIterator struct {
	client *Client
	cursor string
	done   bool
}

func (it *RepositoryIterator) Done() bool {
	return it.done
}

func (it *RepositoryIterator) Next(ctx context.Context) ([]Repository, error) {
	if it.done {
		return nil, errors.New("github: iterator exhausted")
	}

	var q repositoriesQuery
	vars := map[string]interface{}{"cursor": cursorVariable(it.cursor)}
	it.client.logger.Debug("fetching repositories", zap.String("cursor", it.cursor))
	if err := it.client.gql.QueryWithContext(ctx, "ViewerRepositories", &q, vars); err != nil {
		it.done = true
		return nil, fmt.Errorf("failed GitHub query, check permissions: %w", err)
	}

	page := q.Viewer.Repositories
	repos := make([]Repository, 0, len(page.Nodes))
	for _, node := range page.Nodes {
		repos = append(repos, node.repository())
	}

	it.done = !page.PageInfo.HasNextPage
	it.cursor = page.PageInfo.EndCursor
	return repos, nil
}
