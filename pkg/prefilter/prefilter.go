package prefilter

import (
	"strings"

	"github.com/cloudflare/ahocorasick"
)

// Prefilter uses Aho-Corasick for efficient substring keyword matching.
type Prefilter struct {
	matcher  *ahocorasick.Matcher
	keywords []string // keyword at each index
	foldCase bool
}

// New creates a prefilter for the given keywords.
// With foldCase set, keywords and inputs are compared in lower case.
func New(keywords []string, foldCase bool) *Prefilter {
	pf := &Prefilter{foldCase: foldCase}

	seen := make(map[string]bool)
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if foldCase {
			kw = strings.ToLower(kw)
		}
		if !seen[kw] {
			seen[kw] = true
			pf.keywords = append(pf.keywords, kw)
		}
	}

	// Build Aho-Corasick matcher if we have keywords
	if len(pf.keywords) > 0 {
		pf.matcher = ahocorasick.NewStringMatcher(pf.keywords)
	}

	return pf
}

// Keywords returns the normalized keyword set.
func (pf *Prefilter) Keywords() []string {
	out := make([]string, len(pf.keywords))
	copy(out, pf.keywords)
	return out
}

// Contains reports whether any keyword occurs in s.
func (pf *Prefilter) Contains(s string) bool {
	return len(pf.hits(s)) > 0
}

func (pf *Prefilter) hits(s string) []int {
	if pf.matcher == nil || s == "" {
		return nil
	}
	if pf.foldCase {
		s = strings.ToLower(s)
	}
	return pf.matcher.Match([]byte(s))
}
