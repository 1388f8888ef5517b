package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyleking/alfred-workflows/internal/alfred"
	"github.com/kyleking/alfred-workflows/internal/config"
)

const graphqlURL = "https://api.github.com/graphql"

func setup(t *testing.T) {
	t.Helper()
	t.Setenv(alfred.EnvWorkflowData, t.TempDir())
	t.Setenv(config.EnvAPIKey, "secret")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	env := newEnv()
	root := newRootCmd(env)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{}, args...))
	err := root.ExecuteContext(context.Background())
	require.NoError(t, env.Close())
	return out.String(), err
}

func decodeItems(t *testing.T, out string) []alfred.Item {
	t.Helper()
	var list struct {
		Items []alfred.Item `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	return list.Items
}

func useTransport(t *testing.T, responder httpmock.Responder) {
	t.Helper()
	mock := httpmock.NewMockTransport()
	mock.RegisterResponder(http.MethodPost, graphqlURL, responder)
	transport = mock
	t.Cleanup(func() { transport = nil })
}

func TestNoArgsShowsRefreshItem(t *testing.T) {
	setup(t)
	out, err := execute(t)
	require.NoError(t, err)

	items := decodeItems(t, out)
	require.Len(t, items, 1)
	assert.Equal(t, ">settings refresh", items[0].Arg)
}

func TestRefreshThenQuery(t *testing.T) {
	setup(t)
	useTransport(t, httpmock.NewStringResponder(http.StatusOK, `{"data":{"viewer":{"repositories":{
		"pageInfo":{"hasNextPage":false,"endCursor":"Y3Vyc29yOjI="},
		"nodes":[
			{"name":"alfred-workflows","nameWithOwner":"kyleking/alfred-workflows","url":"https://github.com/kyleking/alfred-workflows","pushedAt":"2021-03-01T00:00:00Z"},
			{"name":"workflow-tools","nameWithOwner":"acme/workflow-tools","url":"https://github.com/acme/workflow-tools","pushedAt":"2021-03-05T00:00:00Z"},
			{"name":"dotfiles","nameWithOwner":"kyleking/dotfiles","url":"https://github.com/kyleking/dotfiles","pushedAt":null}
		]}}}}`))

	out, err := execute(t, ">settings", "refresh")
	require.NoError(t, err)
	assert.Equal(t, "Successfully Refreshed GitHub cache (3 repositories)\n", out)

	out, err = execute(t, "workflow")
	require.NoError(t, err)
	items := decodeItems(t, out)
	require.Len(t, items, 2)
	assert.Equal(t, "acme/workflow-tools", items[0].Title)
	assert.Equal(t, "kyleking/alfred-workflows", items[1].Title)
	assert.Equal(t, "open https://github.com/acme/workflow-tools", items[0].Arg)
}

func TestMultiTokenQuery(t *testing.T) {
	setup(t)
	useTransport(t, httpmock.NewStringResponder(http.StatusOK, `{"data":{"viewer":{"repositories":{
		"pageInfo":{"hasNextPage":false,"endCursor":""},
		"nodes":[{"name":"alfred-workflows","nameWithOwner":"kyleking/alfred-workflows","url":"https://github.com/kyleking/alfred-workflows","pushedAt":null}]}}}}`))
	_, err := execute(t, ">settings", "refresh")
	require.NoError(t, err)

	out, err := execute(t, "alfred", "work")
	require.NoError(t, err)
	require.Len(t, decodeItems(t, out), 1)
}

func TestFailedRefreshLeavesNoOutput(t *testing.T) {
	setup(t)
	useTransport(t, httpmock.NewStringResponder(http.StatusUnauthorized, `{"message":"Bad credentials"}`))

	out, err := execute(t, ">settings", "refresh")
	require.Error(t, err)
	assert.Empty(t, out)
}
