package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/praetorian-inc/envhunter/pkg/report"
	"github.com/praetorian-inc/envhunter/pkg/store"
)

var (
	reportDatastore string
	reportFormat    string
	reportColor     string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show matches recorded by previous scans",
	Long:  "Read scan records from a datastore and print them",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	addReportFlags(reportCmd)
}

func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&reportDatastore, "datastore", "envhunter.db", "Path to datastore file")
	cmd.Flags().StringVar(&reportFormat, "format", "human", "Output format: human, yaml, json, sarif")
	cmd.Flags().StringVar(&reportColor, "color", "auto", "Color output: auto, always, never")
}

func runReport(cmd *cobra.Command, args []string) error {
	storePath := reportDatastore

	// Check if it's :memory: (invalid for report)
	if storePath == store.MemoryPath {
		return fmt.Errorf("cannot report from in-memory store")
	}

	info, err := os.Stat(storePath)
	if err != nil {
		return fmt.Errorf("datastore not found: %s", storePath)
	}
	if info.IsDir() {
		return fmt.Errorf("datastore is a directory: %s", storePath)
	}

	s, err := store.New(store.Config{Path: storePath})
	if err != nil {
		return fmt.Errorf("opening datastore: %w", err)
	}
	defer s.Close()

	records, err := s.GetRecords()
	if err != nil {
		return fmt.Errorf("retrieving records: %w", err)
	}

	out := cmd.OutOrStdout()
	switch reportFormat {
	case "human":
		styles := report.NewStyles(colorEnabled(reportColor, out))
		if err := report.WriteHuman(out, records, styles); err != nil {
			return err
		}
		fmt.Fprintf(out, "%d records in %s\n", len(records), storePath)
		return nil
	case report.FormatYAML, report.FormatJSON, report.FormatSARIF:
		return report.Write(out, records, reportFormat, version)
	default:
		return fmt.Errorf("unknown output format: %s", reportFormat)
	}
}
