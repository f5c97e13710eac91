package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fileroute/fileroute/pkg/report"
	"github.com/fileroute/fileroute/pkg/sniff"
)

var inspectJSON bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <archive>",
	Short: "List the entries of a zip or 7z container",
	Long: `List the entry names of an archive container. Useful for manually
identifying a container the detector reported as a generic archive or an
unknown format.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().BoolVarP(&inspectJSON, "json", "j", false, "Output as JSON")
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]

	lister, err := listerFor(path)
	if err != nil {
		return err
	}

	names, err := lister.List(path)
	if err != nil {
		return fmt.Errorf("opening container: %w", err)
	}
	sort.Strings(names)

	out := cmd.OutOrStdout()
	if inspectJSON {
		return report.WriteJSON(out, names)
	}
	for _, name := range names {
		fmt.Fprintln(out, name)
	}
	return nil
}

// listerFor picks a container lister by signature, falling back to the
// extension for headerless formats.
func listerFor(path string) (sniff.ContainerLister, error) {
	result := sniff.NewDetector().Identify(path)
	if result.IsError() {
		return nil, fmt.Errorf("%s", result.Error)
	}

	switch {
	case result.FileType == "7z":
		return sniff.SevenZipLister{}, nil
	case result.FileType == sniff.TypeZip,
		result.FileType == "docx",
		result.FileType == "pptx",
		result.FileType == "xlsx",
		strings.EqualFold(result.Metadata.Extension, ".zip"):
		return sniff.ZipLister{}, nil
	default:
		return nil, fmt.Errorf("not a zip or 7z container: %s (%s)", path, result.FileType)
	}
}
