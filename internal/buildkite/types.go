// Package buildkite caches the pipelines visible to a Buildkite API token
// and searches them.
package buildkite

import "time"

// Organization is the subset of the REST organization object the workflow
// reads.
type Organization struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	WebURL    string    `json:"web_url"`
	CreatedAt time.Time `json:"created_at"`
}

// APIPipeline is the subset of the REST pipeline object the workflow reads.
type APIPipeline struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	WebURL        string    `json:"web_url"`
	Repository    string    `json:"repository"`
	DefaultBranch string    `json:"default_branch"`
	Visibility    string    `json:"visibility"`
	CreatedAt     time.Time `json:"created_at"`
}

// Pipeline is a cached pipeline row.
type Pipeline struct {
	// UniqueName is "<org slug>/<pipeline slug>".
	UniqueName string
	Name       string
	URL        string
}

// NewPipeline converts an API pipeline of org into a cache row.
func NewPipeline(org Organization, p APIPipeline) Pipeline {
	url := p.WebURL
	if url == "" {
		url = "https://buildkite.com/" + org.Slug + "/" + p.Slug
	}
	return Pipeline{
		UniqueName: org.Slug + "/" + p.Slug,
		Name:       p.Name,
		URL:        url,
	}
}
