package enum

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/go-github/v57/github"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/praetorian-inc/envhunter/pkg/types"
)

// DefaultUserAgent identifies envhunter to the GitHub API.
const DefaultUserAgent = "EnvHunter"

// GitHubConfig configures GitHub API search.
type GitHubConfig struct {
	Token     string         // GitHub API token (required)
	BaseURL   string         // API base URL; empty selects api.github.com
	UserAgent string         // User-Agent header; empty selects DefaultUserAgent
	Logger    zerolog.Logger // receives rate limit and response shape diagnostics
}

// GitHubSearcher searches GitHub code and lists public gists via the REST API.
type GitHubSearcher struct {
	client *github.Client
	logger zerolog.Logger
}

// NewGitHubSearcher creates a new authenticated GitHub searcher.
func NewGitHubSearcher(cfg GitHubConfig) (*GitHubSearcher, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("GitHub token is required")
	}

	// Create authenticated GitHub client
	ctx := context.Background()
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
	tc := oauth2.NewClient(ctx, ts)
	client := github.NewClient(tc)

	if cfg.BaseURL != "" {
		base := cfg.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("parsing GitHub base URL: %w", err)
		}
		client.BaseURL = u
	}

	client.UserAgent = cfg.UserAgent
	if client.UserAgent == "" {
		client.UserAgent = DefaultUserAgent
	}

	return &GitHubSearcher{
		client: client,
		logger: cfg.Logger.With().Str("component", "github").Logger(),
	}, nil
}

// Search returns one page of hits for mode.
func (s *GitHubSearcher) Search(ctx context.Context, mode types.Mode, query string, page, perPage int) ([]*types.SearchResult, error) {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	switch mode {
	case types.ModeGists:
		return s.listGists(ctx, page, perPage)
	case types.ModeCode:
		return s.searchCode(ctx, query, page, perPage)
	default:
		return nil, fmt.Errorf("unsupported search mode: %q", mode)
	}
}

// searchCode runs a code search for query.
func (s *GitHubSearcher) searchCode(ctx context.Context, query string, page, perPage int) ([]*types.SearchResult, error) {
	opts := &github.SearchOptions{
		ListOptions: github.ListOptions{Page: page, PerPage: perPage},
	}

	res, _, err := s.client.Search.Code(ctx, query, opts)
	if err != nil {
		if isShapeError(err) {
			s.logger.Debug().Err(err).Int("page", page).Msg("Unexpected code search response, treating page as empty")
			return nil, nil
		}
		return nil, s.apiError("searching code", err)
	}

	results := make([]*types.SearchResult, 0, len(res.CodeResults))
	for _, item := range res.CodeResults {
		if item == nil {
			continue
		}
		repo := item.GetRepository()
		results = append(results, &types.SearchResult{
			Mode:    types.ModeCode,
			Owner:   repo.GetOwner().GetLogin(),
			Label:   repo.GetFullName(),
			Name:    item.GetName(),
			HTMLURL: item.GetHTMLURL(),
		})
	}

	return results, nil
}

// listGists lists one page of public gists.
// The response is decoded by hand because github.Gist stores its files in a
// map, which loses the manifest order.
func (s *GitHubSearcher) listGists(ctx context.Context, page, perPage int) ([]*types.SearchResult, error) {
	u := fmt.Sprintf("gists/public?page=%d&per_page=%d", page, perPage)
	req, err := s.client.NewRequest("GET", u, nil)
	if err != nil {
		return nil, fmt.Errorf("building gist request: %w", err)
	}

	var raw json.RawMessage
	if _, err := s.client.Do(ctx, req, &raw); err != nil {
		if isShapeError(err) {
			s.logger.Debug().Err(err).Int("page", page).Msg("Unexpected gist listing response, treating page as empty")
			return nil, nil
		}
		return nil, s.apiError("listing gists", err)
	}

	var gists []gistListing
	if err := json.Unmarshal(raw, &gists); err != nil {
		s.logger.Debug().Err(err).Int("page", page).Msg("Unexpected gist listing response, treating page as empty")
		return nil, nil
	}

	results := make([]*types.SearchResult, 0, len(gists))
	for _, g := range gists {
		var owner string
		if g.Owner != nil {
			owner = g.Owner.Login
		}
		results = append(results, &types.SearchResult{
			Mode:  types.ModeGists,
			Owner: owner,
			Label: "Gist: " + g.ID,
			Files: []types.GistFile(g.Files),
		})
	}

	return results, nil
}

// apiError annotates rate limit failures with their reset time.
func (s *GitHubSearcher) apiError(op string, err error) error {
	var rle *github.RateLimitError
	if errors.As(err, &rle) {
		s.logger.Warn().
			Int("limit", rle.Rate.Limit).
			Time("reset", rle.Rate.Reset.Time).
			Msg("GitHub API rate limit exceeded")
	}
	var arle *github.AbuseRateLimitError
	if errors.As(err, &arle) && arle.RetryAfter != nil {
		s.logger.Warn().Dur("retry_after", *arle.RetryAfter).Msg("GitHub secondary rate limit hit")
	}
	return fmt.Errorf("%s: %w", op, err)
}

// isShapeError reports whether err came from decoding an unexpected body.
func isShapeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}

// gistListing is the subset of a public gist listing entry we need.
type gistListing struct {
	ID    string `json:"id"`
	Owner *struct {
		Login string `json:"login"`
	} `json:"owner"`
	Files orderedFiles `json:"files"`
}

// orderedFiles decodes a gist "files" object preserving key order.
type orderedFiles []types.GistFile

// UnmarshalJSON implements json.Unmarshaler.
func (f *orderedFiles) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*f = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("gist files: expected object, got %v", tok)
	}

	var files orderedFiles
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := keyTok.(string)

		var gf types.GistFile
		if err := dec.Decode(&gf); err != nil {
			return err
		}
		if gf.Filename == "" {
			gf.Filename = name
		}
		files = append(files, gf)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*f = files
	return nil
}
