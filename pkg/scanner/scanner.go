// Package scanner drives the page → candidate → fetch → extract loop.
package scanner

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/praetorian-inc/envhunter/pkg/enum"
	"github.com/praetorian-inc/envhunter/pkg/extract"
	"github.com/praetorian-inc/envhunter/pkg/filter"
	"github.com/praetorian-inc/envhunter/pkg/store"
	"github.com/praetorian-inc/envhunter/pkg/types"
)

// Fetcher retrieves the raw content of a candidate file.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (string, error)
}

// Reporter receives scan progress as it happens.
type Reporter interface {
	OnMatch(r *types.ScanRecord)
	OnPage(s *types.Session)
}

// Config holds per-scan settings.
type Config struct {
	Mode    types.Mode
	Query   string // code search query; ignored for gists
	PerPage int
	Limit   int
}

// Scanner runs one sequential scan.
type Scanner struct {
	cfg       Config
	searcher  enum.Searcher
	fetcher   Fetcher
	filter    *filter.Filter
	extractor *extract.Extractor
	reporter  Reporter
	results   store.Store // accumulator for the end-of-scan report, may be nil
	datastore store.Store // persistent history, may be nil
	logger    zerolog.Logger
}

// Option customizes a Scanner.
type Option func(*Scanner)

// WithFilter replaces the default GitHub candidate filter.
func WithFilter(f *filter.Filter) Option {
	return func(s *Scanner) { s.filter = f }
}

// WithExtractor replaces the default extractor.
func WithExtractor(e *extract.Extractor) Option {
	return func(s *Scanner) { s.extractor = e }
}

// WithReporter sets the live reporter.
func WithReporter(r Reporter) Option {
	return func(s *Scanner) { s.reporter = r }
}

// WithResults collects every record into st.
func WithResults(st store.Store) Option {
	return func(s *Scanner) { s.results = st }
}

// WithDatastore persists every record into st.
func WithDatastore(st store.Store) Option {
	return func(s *Scanner) { s.datastore = st }
}

// WithLogger sets the diagnostics logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Scanner) { s.logger = l }
}

// New creates a Scanner.
func New(cfg Config, searcher enum.Searcher, fetcher Fetcher, opts ...Option) *Scanner {
	if cfg.PerPage <= 0 {
		cfg.PerPage = enum.DefaultPerPage
	}

	s := &Scanner{
		cfg:       cfg,
		searcher:  searcher,
		fetcher:   fetcher,
		filter:    filter.New(filter.Config{}),
		extractor: extract.New(),
		reporter:  nopReporter{},
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With().Str("component", "scanner").Str("mode", cfg.Mode.String()).Logger()
	return s
}

// Run pages through search results until a page comes back empty or the
// limit is reached. The limit is checked after each full page, so the final
// count may exceed it. Cancelling ctx stops the scan between candidates;
// the returned session is then marked Interrupted and err is nil.
// Search and fetch failures are logged and never returned.
func (s *Scanner) Run(ctx context.Context) (*types.Session, error) {
	session := types.NewSession(s.cfg.Limit)

	for {
		if ctx.Err() != nil {
			session.Interrupted = true
			break
		}

		page := session.NextPage()
		hits, err := s.searcher.Search(ctx, s.cfg.Mode, s.cfg.Query, page, s.cfg.PerPage)
		if err != nil {
			if ctx.Err() != nil {
				session.Interrupted = true
				break
			}
			s.logger.Warn().Err(err).Int("page", page).Msg("search failed, stopping")
			break
		}
		if len(hits) == 0 {
			s.logger.Debug().Int("page", page).Msg("empty page, stopping")
			break
		}

		s.logger.Debug().Int("page", page).Int("hits", len(hits)).Msg("processing page")
		if !s.processPage(ctx, session, hits) {
			session.Interrupted = true
			break
		}

		s.reporter.OnPage(session)
		if session.LimitReached() {
			s.logger.Debug().Int("found", session.Found).Int("limit", session.Limit).Msg("limit reached")
			break
		}
	}

	return session, nil
}

// processPage handles every hit of one page. It returns false when ctx was
// cancelled part way.
func (s *Scanner) processPage(ctx context.Context, session *types.Session, hits []*types.SearchResult) bool {
	for _, hit := range hits {
		if ctx.Err() != nil {
			return false
		}

		candidate, ok := s.filter.Resolve(hit)
		if !ok {
			s.logger.Debug().Str("repo", hit.Label).Str("file", hit.Name).Msg("candidate skipped")
			continue
		}

		if err := s.scanCandidate(ctx, session, candidate); err != nil {
			if ctx.Err() != nil {
				return false
			}
			s.logger.Warn().Str("url", candidate.RawURL).Err(err).Msg("fetch failed")
		}
	}
	return true
}

func (s *Scanner) scanCandidate(ctx context.Context, session *types.Session, c types.Candidate) error {
	content, err := s.fetcher.Fetch(ctx, c.RawURL)
	if err != nil {
		return err
	}

	secrets := s.extractor.Extract(content)
	if len(secrets) == 0 {
		return nil
	}

	record, err := types.NewScanRecord(c, secrets)
	if err != nil {
		return fmt.Errorf("creating record: %w", err)
	}

	session.Record()
	s.reporter.OnMatch(record)

	if s.results != nil {
		if err := s.results.AddRecord(record); err != nil {
			s.logger.Error().Err(err).Str("id", record.ID).Msg("storing result")
		}
	}
	if s.datastore != nil {
		s.persist(record)
	}
	return nil
}

// persist writes record to the datastore unless an earlier scan already did.
func (s *Scanner) persist(record *types.ScanRecord) {
	seen, err := s.datastore.RecordExists(record.ID)
	if err != nil {
		s.logger.Error().Err(err).Str("id", record.ID).Msg("reading datastore")
		return
	}
	if seen {
		s.logger.Debug().Str("id", record.ID).Str("url", record.RawURL).Msg("already in datastore")
		return
	}
	if err := s.datastore.AddRecord(record); err != nil {
		s.logger.Error().Err(err).Str("id", record.ID).Msg("writing datastore")
	}
}

type nopReporter struct{}

func (nopReporter) OnMatch(*types.ScanRecord) {}
func (nopReporter) OnPage(*types.Session)     {}
