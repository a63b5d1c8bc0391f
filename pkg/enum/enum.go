package enum

import (
	"context"
	"strings"

	"github.com/praetorian-inc/envhunter/pkg/types"
)

// EnvFileQualifier restricts code search to .env files.
const EnvFileQualifier = "filename:.env"

// DefaultPerPage is the page size used when none is configured.
const DefaultPerPage = 30

// Searcher fetches one page of search hits from a backend.
type Searcher interface {
	// Search returns the hits on the given 1-based page. An empty slice
	// means the backend has no more results. The query is ignored in gist mode.
	Search(ctx context.Context, mode types.Mode, query string, page, perPage int) ([]*types.SearchResult, error)
}

// CodeQuery builds the code search query for an optional keyword.
func CodeQuery(keyword string) string {
	return strings.TrimSpace(strings.TrimSpace(keyword) + " " + EnvFileQualifier)
}
