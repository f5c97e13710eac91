package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/fileroute/fileroute/pkg/dbident"
	"github.com/fileroute/fileroute/pkg/report"
	"github.com/fileroute/fileroute/pkg/sniff"
)

var (
	formatsJSON   bool
	formatsRoutes bool
	formatsDB     bool
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported file types and the routing table",
	RunE:  runFormats,
}

func init() {
	formatsCmd.Flags().BoolVarP(&formatsJSON, "json", "j", false, "Output as JSON")
	formatsCmd.Flags().BoolVar(&formatsRoutes, "routes", false, "Show the routing table instead of detectable types")
	formatsCmd.Flags().BoolVar(&formatsDB, "db", false, "Show detectable database formats with version info")
}

// typeInfo describes one supported type for listing.
type typeInfo struct {
	Processor string `json:"processor"`
	Detection string `json:"detection"`
}

func runFormats(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if formatsRoutes {
		return listRoutes(cmd)
	}
	if formatsDB {
		return listDBFormats(cmd)
	}

	types := supportedTypes()
	if formatsJSON {
		return report.WriteJSON(out, types)
	}

	fmt.Fprintln(out, "Supported File Types:")
	fmt.Fprintln(out)
	for _, name := range sortedKeys(types) {
		info := types[name]
		fmt.Fprintf(out, "  %-15s -> %-20s (%s)\n", name, info.Processor, info.Detection)
	}
	return nil
}

// supportedTypes merges the signature and extension tables, signature rules
// first so their detection method wins for types present in both.
func supportedTypes() map[string]typeInfo {
	types := make(map[string]typeInfo)

	for _, r := range sniff.NewSignatureTable(sniff.DefaultSignatures).Rules() {
		if r.Handler == "" {
			continue
		}
		if _, ok := types[r.FileType]; !ok {
			types[r.FileType] = typeInfo{Processor: r.Handler, Detection: "signature"}
		}
	}
	for _, r := range sniff.DefaultExtensions {
		if _, ok := types[r.FileType]; !ok {
			types[r.FileType] = typeInfo{Processor: r.Handler, Detection: "extension"}
		}
	}
	return types
}

func listRoutes(cmd *cobra.Command) error {
	registry, err := loadRegistry("")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if formatsJSON {
		return report.WriteJSON(out, registry)
	}

	fmt.Fprintln(out, "Routing Table:")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%-15s %-10s %-25s %-12s\n", "Format", "DBeaver", "Handler", "Status")
	fmt.Fprintln(out, "--------------------------------------------------------------")

	formats := make([]string, 0, len(registry.Handlers))
	for f := range registry.Handlers {
		formats = append(formats, f)
	}
	sort.Strings(formats)

	for _, f := range formats {
		handler, status := registry.HandlerFor(f)
		dbeaver := "No"
		if s := registry.GenericSupport(f); s != nil && *s {
			dbeaver = "Yes"
		}
		fmt.Fprintf(out, "%-15s %-10s %-25s %-12s\n", f, dbeaver, handler, status)
	}
	return nil
}

func listDBFormats(cmd *cobra.Command) error {
	registry, err := loadRegistry("")
	if err != nil {
		return err
	}

	type dbFormatInfo struct {
		Versions  []string `json:"versions"`
		Supported *bool    `json:"dbeaver_supported"`
	}
	formats := make(map[string]*dbFormatInfo)
	for _, sig := range dbident.Signatures {
		info, ok := formats[sig.FileType]
		if !ok {
			info = &dbFormatInfo{Supported: registry.GenericSupport(sig.FileType)}
			formats[sig.FileType] = info
		}
		if !contains(info.Versions, sig.Version) {
			info.Versions = append(info.Versions, sig.Version)
		}
	}

	out := cmd.OutOrStdout()
	if formatsJSON {
		return report.WriteJSON(out, formats)
	}

	fmt.Fprintln(out, "Detectable database formats:")
	fmt.Fprintln(out)
	for _, name := range sortedKeys(formats) {
		info := formats[name]
		fmt.Fprintf(out, "  %s\n", name)
		fmt.Fprintf(out, "    Versions: %s\n", join(info.Versions))
		supported := "unknown"
		if info.Supported != nil {
			if *info.Supported {
				supported = "Yes"
			} else {
				supported = "No"
			}
		}
		fmt.Fprintf(out, "    DBeaver supported: %s\n", supported)
		fmt.Fprintln(out)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func join(list []string) string {
	out := ""
	for i, s := range list {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}
