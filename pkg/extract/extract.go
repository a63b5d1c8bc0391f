// Package extract pulls high-entropy KEY/TOKEN assignments out of .env style files.
package extract

import (
	"regexp"
	"strings"

	"github.com/praetorian-inc/envhunter/pkg/entropy"
	"github.com/praetorian-inc/envhunter/pkg/prefilter"
	"github.com/praetorian-inc/envhunter/pkg/types"
)

// DefaultThreshold is the entropy (bits per character) a value must exceed.
const DefaultThreshold = 4.0

// DefaultKeywords are the case-sensitive substrings a variable name must contain.
var DefaultKeywords = []string{"KEY", "TOKEN"}

// assignment matches `NAME=value` lines with optional leading whitespace.
var assignment = regexp.MustCompile(`^\s*[\w-]+=(.+)$`)

// Extractor selects assignments whose names contain a keyword and whose
// values look random.
type Extractor struct {
	threshold float64
	keywords  *prefilter.Prefilter
}

// Config for an Extractor. Zero values select the defaults.
type Config struct {
	Threshold float64  // exclusive lower bound; non-positive selects DefaultThreshold
	Keywords  []string // empty selects DefaultKeywords
}

// New creates an Extractor with the default threshold and keywords.
func New() *Extractor {
	return NewWithConfig(Config{})
}

// NewWithConfig creates an Extractor from cfg.
func NewWithConfig(cfg Config) *Extractor {
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultThreshold
	}
	if len(cfg.Keywords) == 0 {
		cfg.Keywords = DefaultKeywords
	}
	return &Extractor{
		threshold: cfg.Threshold,
		keywords:  prefilter.New(cfg.Keywords, false),
	}
}

// Threshold returns the entropy threshold in bits per character.
func (e *Extractor) Threshold() float64 {
	return e.threshold
}

// Keywords returns the name substrings a variable must contain.
func (e *Extractor) Keywords() []string {
	return e.keywords.Keywords()
}

// Extract returns the kept assignments of content, mapping each name to its
// raw value. Surrounding quotes are ignored when scoring but kept in the
// returned value.
func (e *Extractor) Extract(content string) types.ExtractedSecret {
	results := make(types.ExtractedSecret)

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if !assignment.MatchString(line) {
			continue
		}

		key, value, ok := strings.Cut(strings.TrimSpace(line), "=")
		if !ok || value == "" {
			continue
		}
		if !e.keywords.Contains(key) {
			continue
		}

		if entropy.Shannon(stripQuotes(value)) > e.threshold {
			results[key] = value
		}
	}

	return results
}

// stripQuotes removes leading and trailing single and double quotes from v.
func stripQuotes(v string) string {
	return strings.Trim(v, `"'`)
}
