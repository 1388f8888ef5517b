// Package github caches the repositories the authenticated user can reach
// and searches them.
package github

import (
	"time"

	graphql "github.com/cli/shurcooL-graphql"
)

// Repository is a cached repository row.
type Repository struct {
	NameWithOwner string
	Name          string
	URL           string
	PushedAt      time.Time
}

// repositoriesQuery is one page of viewer.repositories, limited to
// repositories the viewer owns, collaborates on or reaches through an
// organization.
type repositoriesQuery struct {
	Viewer struct {
		Repositories struct {
			PageInfo pageInfo
			Nodes    []repositoryNode
		} `graphql:"repositories(first: 100, after: $cursor, affiliations: [OWNER, COLLABORATOR, ORGANIZATION_MEMBER], ownerAffiliations: [OWNER, COLLABORATOR, ORGANIZATION_MEMBER])"`
	}
}

type pageInfo struct {
	HasNextPage bool
	EndCursor   string
}

type repositoryNode struct {
	Name          string
	NameWithOwner string
	URL           string `graphql:"url"`
	PushedAt      *time.Time
}

func (n repositoryNode) repository() Repository {
	r := Repository{
		NameWithOwner: n.NameWithOwner,
		Name:          n.Name,
		URL:           n.URL,
	}
	if n.PushedAt != nil {
		r.PushedAt = n.PushedAt.UTC()
	} else {
		// Never pushed; sorts after every pushed repository.
		r.PushedAt = time.Unix(0, 0).UTC()
	}
	return r
}

// cursorVariable is the $cursor value; nil requests the first page.
func cursorVariable(cursor string) *graphql.String {
	if cursor == "" {
		return nil
	}
	c := graphql.String(cursor)
	return &c
}
