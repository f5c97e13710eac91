package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fileroute/fileroute/pkg/batch"
	"github.com/fileroute/fileroute/pkg/report"
	"github.com/fileroute/fileroute/pkg/sniff"
	"github.com/fileroute/fileroute/pkg/store"
	"github.com/fileroute/fileroute/pkg/types"
)

var (
	identifyDir       string
	identifyRecursive bool
	identifyHidden    bool
	identifyGitignore bool
	identifyWorkers   int
	identifyFormat    string
	identifyColor     string
	identifyStore     string
)

var identifyCmd = &cobra.Command{
	Use:   "identify [file]",
	Short: "Identify the format of a file or directory of files",
	Long: `Identify the concrete format of a file by magic-byte signature, falling
back to extension heuristics when no signature matches. With --dir, every
regular file under the directory is identified; results are ordered
lexicographically by path so batch runs can be diffed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIdentify,
}

func init() {
	identifyCmd.Flags().StringVarP(&identifyDir, "dir", "d", "", "Identify all files in a directory")
	identifyCmd.Flags().BoolVarP(&identifyRecursive, "recursive", "r", false, "Recurse into subdirectories (with --dir)")
	identifyCmd.Flags().BoolVar(&identifyHidden, "include-hidden", false, "Include hidden files and directories")
	identifyCmd.Flags().BoolVar(&identifyGitignore, "honor-gitignore", false, "Skip paths matched by the root .gitignore")
	identifyCmd.Flags().IntVar(&identifyWorkers, "workers", 0, "Identification workers for batch mode (0 = NumCPU)")
	identifyCmd.Flags().StringVar(&identifyFormat, "format", "human", "Output format: human, json")
	identifyCmd.Flags().StringVar(&identifyColor, "color", "auto", "Color output: auto, always, never")
	identifyCmd.Flags().StringVar(&identifyStore, "store", "", "Persist batch results to a SQLite ledger at this path")
}

func runIdentify(cmd *cobra.Command, args []string) error {
	if identifyDir != "" {
		return runIdentifyDir(cmd)
	}
	if len(args) == 0 {
		return fmt.Errorf("a file argument or --dir is required")
	}

	detector := sniff.NewDetector()
	result := detector.Identify(args[0])

	if err := writeIdentification(cmd, result); err != nil {
		return err
	}
	if result.IsError() {
		return fmt.Errorf("%s", result.Error)
	}
	return nil
}

func runIdentifyDir(cmd *cobra.Command) error {
	scanner := batch.New(nil, batch.Config{
		Root:           identifyDir,
		Recursive:      identifyRecursive,
		IncludeHidden:  identifyHidden,
		HonorGitignore: identifyGitignore,
		Workers:        identifyWorkers,
	})

	results, err := scanner.Scan(context.Background())
	if err != nil {
		return err
	}

	if identifyStore != "" {
		if err := persistResults(results); err != nil {
			return fmt.Errorf("persisting results: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Results stored in: %s\n", identifyStore)
	}

	if identifyFormat == "json" {
		return report.WriteJSON(cmd.OutOrStdout(), results)
	}

	out := cmd.OutOrStdout()
	styles := report.NewStyles(report.ColorEnabled(identifyColor, out))
	for _, r := range results {
		styles.WriteIdentification(out, r)
		fmt.Fprintln(out, strings.Repeat("-", 40))
	}
	return nil
}

func persistResults(results []types.IdentificationResult) error {
	ledger, err := store.New(identifyStore)
	if err != nil {
		return err
	}
	defer ledger.Close()

	scanID, err := ledger.BeginScan(identifyDir, identifyRecursive)
	if err != nil {
		return err
	}
	return ledger.AddResults(scanID, results)
}

func writeIdentification(cmd *cobra.Command, r types.IdentificationResult) error {
	out := cmd.OutOrStdout()
	if identifyFormat == "json" {
		return report.WriteJSON(out, r)
	}
	styles := report.NewStyles(report.ColorEnabled(identifyColor, out))
	styles.WriteIdentification(out, r)
	return nil
}
