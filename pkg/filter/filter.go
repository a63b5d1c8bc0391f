// Package filter turns search hits into fetchable candidates.
package filter

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/praetorian-inc/envhunter/pkg/prefilter"
	"github.com/praetorian-inc/envhunter/pkg/types"
)

const (
	// DefaultWebHost is the host of GitHub's HTML file views.
	DefaultWebHost = "github.com"
	// DefaultRawHost serves raw file content for repository blobs.
	DefaultRawHost = "raw.githubusercontent.com"
)

// RejectTerms mark file names that are unlikely to hold live secrets.
// Matching is a case-insensitive substring test.
var RejectTerms = []string{
	"example",
	"sample",
	"template",
	".ex.",
	".bak",
	".bkp",
	"staging",
	"copy",
	"backup",
	"old",
	"archive",
}

// Config for a Filter. Empty fields select the github.com defaults.
type Config struct {
	WebHost string
	RawHost string
	// BlobReplacement replaces the "/blob/" path segment of web URLs.
	// github.com serves raw content under "/"; GitHub Enterprise under "/raw/".
	BlobReplacement string
}

// EnterpriseConfig returns the Config for a GitHub Enterprise Server whose
// REST API lives at apiURL (e.g. https://ghe.example.com/api/v3). Web and
// raw content share the API host there.
func EnterpriseConfig(apiURL string) (Config, error) {
	u, err := url.Parse(apiURL)
	if err != nil {
		return Config{}, fmt.Errorf("parsing API URL: %w", err)
	}
	if u.Host == "" {
		return Config{}, fmt.Errorf("API URL has no host: %q", apiURL)
	}
	return Config{
		WebHost:         u.Host,
		RawHost:         u.Host,
		BlobReplacement: "/raw/",
	}, nil
}

// Filter resolves raw URLs for search hits and drops non-secret file names.
type Filter struct {
	webHost  string
	rawHost  string
	blobRepl string
	reject   *prefilter.Prefilter
}

// New creates a Filter.
func New(cfg Config) *Filter {
	if cfg.WebHost == "" {
		cfg.WebHost = DefaultWebHost
	}
	if cfg.RawHost == "" {
		cfg.RawHost = DefaultRawHost
	}
	if cfg.BlobReplacement == "" {
		cfg.BlobReplacement = "/"
	}
	return &Filter{
		webHost:  cfg.WebHost,
		rawHost:  cfg.RawHost,
		blobRepl: cfg.BlobReplacement,
		reject:   prefilter.New(RejectTerms, true),
	}
}

// Resolve converts a hit into a Candidate. It returns false when the hit has
// no usable file or its file name is rejected.
func (f *Filter) Resolve(hit *types.SearchResult) (types.Candidate, bool) {
	if hit == nil {
		return types.Candidate{}, false
	}

	var c types.Candidate
	switch hit.Mode {
	case types.ModeGists:
		file, ok := FirstEnvFile(hit.Files)
		if !ok {
			return types.Candidate{}, false
		}
		c = types.Candidate{
			Owner:  hit.Owner,
			Label:  hit.Label,
			File:   file.Filename,
			RawURL: file.RawURL,
		}
	default:
		rawURL, ok := f.RawURL(hit.HTMLURL)
		if !ok {
			return types.Candidate{}, false
		}
		c = types.Candidate{
			Owner:  hit.Owner,
			Label:  hit.Label,
			File:   hit.Name,
			RawURL: rawURL,
		}
	}

	if c.File == "" || c.RawURL == "" || f.Rejected(c.File) {
		return types.Candidate{}, false
	}
	return c, true
}

// Rejected reports whether name contains one of the RejectTerms.
func (f *Filter) Rejected(name string) bool {
	return f.reject.Contains(name)
}

// RawURL rewrites a web "blob" URL into a direct download URL on the raw host.
func (f *Filter) RawURL(htmlURL string) (string, bool) {
	if htmlURL == "" {
		return "", false
	}

	u, err := url.Parse(htmlURL)
	if err != nil || u.Host == "" {
		return "", false
	}

	if u.Host == f.webHost {
		u.Host = f.rawHost
	}
	u.Path = strings.Replace(u.Path, "/blob/", f.blobRepl, 1)
	u.RawPath = ""

	return u.String(), true
}

// FirstEnvFile returns the first file in manifest order whose name ends in ".env".
func FirstEnvFile(files []types.GistFile) (types.GistFile, bool) {
	for _, f := range files {
		if strings.HasSuffix(f.Filename, ".env") {
			return f, true
		}
	}
	return types.GistFile{}, false
}
