package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/praetorian-inc/envhunter/pkg/store"
)

var (
	mergeOutput string
)

var mergeCmd = &cobra.Command{
	Use:   "merge <source1.db> <source2.db> [source3.db...]",
	Short: "Merge multiple EnvHunter datastores",
	Long: `Merge multiple EnvHunter datastores into a single output datastore.

This is useful for combining the history of scans run on different
machines or with different search modes.

Deduplication is automatic - a file seen in several sources is
only stored once in the merged datastore.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "merged.db", "Output datastore path")
}

func runMerge(cmd *cobra.Command, args []string) error {
	stats, err := store.Merge(store.MergeConfig{
		SourcePaths: args,
		DestPath:    mergeOutput,
	})
	if err != nil {
		return fmt.Errorf("merge failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Merge complete:\n")
	fmt.Fprintf(cmd.OutOrStdout(), "  Sources processed: %d\n", stats.SourcesProcessed)
	fmt.Fprintf(cmd.OutOrStdout(), "  Records merged: %d\n", stats.RecordsMerged)
	fmt.Fprintf(cmd.OutOrStdout(), "  Secrets merged: %d\n", stats.SecretsMerged)
	fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", mergeOutput)

	return nil
}
