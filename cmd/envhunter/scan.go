package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/praetorian-inc/envhunter/pkg/config"
	"github.com/praetorian-inc/envhunter/pkg/enum"
	"github.com/praetorian-inc/envhunter/pkg/extract"
	"github.com/praetorian-inc/envhunter/pkg/fetch"
	"github.com/praetorian-inc/envhunter/pkg/filter"
	"github.com/praetorian-inc/envhunter/pkg/report"
	"github.com/praetorian-inc/envhunter/pkg/scanner"
	"github.com/praetorian-inc/envhunter/pkg/store"
)

var scanConfigFile string

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Search GitHub for .env files holding live secrets",
	Long: `Search GitHub code search (--mode code) or the public gist feed (--mode gists)
for .env files, print every file with high-entropy KEY/TOKEN assignments as it
is found, and optionally write all matches to a report file.

Press Ctrl-C to stop early; matches found so far are still written.`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func init() {
	addScanFlags(scanCmd)
}

func addScanFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("mode", "m", config.DefaultMode, "Search mode: code or gists")
	f.StringP("output", "o", "", "Write matches to this report file")
	f.IntP("limit", "l", config.DefaultLimit, "Stop after a page that brings the match count to this limit")
	f.String("token", "", "GitHub token (default $GITHUB_TOKEN)")
	f.String("keyword", "", "Extra code search terms combined with filename:.env")
	f.Int("per-page", config.DefaultPerPage, "Search results per page (1-100)")
	f.String("format", "", "Report format: yaml, json, sarif (default from --output extension)")
	f.String("datastore", "", "Also record matches in this SQLite datastore")
	f.String("api-url", "", "GitHub Enterprise API base URL, e.g. https://ghe.example.com/api/v3")
	f.StringVar(&scanConfigFile, "config", "", "YAML config file")
}

func runScan(cmd *cobra.Command, args []string) error {
	v := viper.New()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	cfg, err := config.Load(v, scanConfigFile)
	if err != nil {
		return err
	}

	log, err := newLogger(cmd)
	if err != nil {
		return err
	}

	searcher, err := enum.NewGitHubSearcher(enum.GitHubConfig{
		Token:   cfg.Token,
		BaseURL: cfg.APIURL,
		Logger:  log,
	})
	if err != nil {
		return fmt.Errorf("creating GitHub client: %w", err)
	}

	filterCfg := filter.Config{}
	if cfg.APIURL != "" {
		filterCfg, err = filter.EnterpriseConfig(cfg.APIURL)
		if err != nil {
			return err
		}
	}

	opts := []scanner.Option{
		scanner.WithLogger(log),
		scanner.WithFilter(filter.New(filterCfg)),
		scanner.WithExtractor(extract.New()),
	}

	var results *store.MemoryStore
	if cfg.Output != "" {
		results = store.NewMemory()
		opts = append(opts, scanner.WithResults(results))
	}

	if cfg.Datastore != "" {
		ds, err := store.New(store.Config{Path: cfg.Datastore})
		if err != nil {
			return fmt.Errorf("opening datastore: %w", err)
		}
		defer ds.Close()
		opts = append(opts, scanner.WithDatastore(ds))
	}

	out := cmd.OutOrStdout()
	progress := cmd.ErrOrStderr()
	if quiet || !isTerminal(progress) {
		progress = nil
	}
	console := report.NewConsole(report.ConsoleOptions{
		Out:      out,
		Progress: progress,
		Color:    colorEnabled("auto", out),
	})
	opts = append(opts, scanner.WithReporter(console))

	s := scanner.New(scanner.Config{
		Mode:    cfg.ScanMode(),
		Query:   enum.CodeQuery(cfg.Keyword),
		PerPage: cfg.PerPage,
		Limit:   cfg.Limit,
	}, searcher, fetch.New(fetch.Config{UserAgent: enum.DefaultUserAgent}), opts...)

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt)
	defer stop()

	log.Debug().Str("mode", cfg.Mode).Int("limit", cfg.Limit).Msg("starting scan")
	session, err := s.Run(ctx)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	console.Finish(session)

	if results == nil || results.Len() == 0 {
		return nil
	}

	records, err := results.GetRecords()
	if err != nil {
		return fmt.Errorf("collecting results: %w", err)
	}
	if err := report.WriteFile(cfg.Output, records, cfg.ReportFormat(), version); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	console.Written(cfg.Output)

	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
