package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fileroute/fileroute/pkg/dbident"
	"github.com/fileroute/fileroute/pkg/report"
	"github.com/fileroute/fileroute/pkg/routing"
	"github.com/fileroute/fileroute/pkg/sniff"
	"github.com/fileroute/fileroute/pkg/types"
)

var (
	routeFile         string
	routeInput        string
	routeFileType     string
	routeGenericFlag  string
	routeConfidence   string
	routeOutputFormat string
	routeColor        string
	routeRegistry     string
	routeDB           bool
)

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Decide which handler should process a file",
	Long: `Decide which extraction handler should process an identified file. The
identification can come from --file (identify then route), --input (a JSON
identification document), or explicit --file-type/--generic-supported flags.

The policy prefers the DBeaver CLI whenever it claims support for the
format, falling back to the specialized handler only when the generic path
is out and the handler is implemented.`,
	RunE: runRoute,
}

func init() {
	routeCmd.Flags().StringVarP(&routeFile, "file", "f", "", "File to identify and route")
	routeCmd.Flags().BoolVar(&routeDB, "db", false, "Use the database identifier for --file")
	routeCmd.Flags().StringVarP(&routeInput, "input", "i", "", "Identification JSON document")
	routeCmd.Flags().StringVar(&routeFileType, "file-type", "", "Explicit format tag")
	routeCmd.Flags().StringVar(&routeGenericFlag, "generic-supported", "", "Generic tool support: true, false (empty = unknown)")
	routeCmd.Flags().StringVar(&routeConfidence, "confidence", "high", "Detection confidence: high, low, none")
	routeCmd.Flags().StringVar(&routeOutputFormat, "format", "human", "Output format: human, json")
	routeCmd.Flags().StringVar(&routeColor, "color", "auto", "Color output: auto, always, never")
	routeCmd.Flags().StringVar(&routeRegistry, "registry", "", "Path to an alternate routing registry YAML")
}

func runRoute(cmd *cobra.Command, args []string) error {
	registry, err := loadRegistry(routeRegistry)
	if err != nil {
		return err
	}
	policy := routing.NewPolicy(registry)

	decision, err := buildDecision(policy, registry)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if routeOutputFormat == "json" {
		return report.WriteJSON(out, decision)
	}
	styles := report.NewStyles(report.ColorEnabled(routeColor, out))
	styles.WriteDecision(out, *decision)
	return nil
}

func buildDecision(policy *routing.Policy, registry *routing.Registry) (*types.RoutingDecision, error) {
	switch {
	case routeFile != "" && routeDB:
		identifier := dbident.New(registry.Capabilities)
		id := identifier.Identify(routeFile)
		if id.IsError() {
			return nil, fmt.Errorf("identification failed: %s", id.Error)
		}
		d := policy.Route(id.Format, id.GenericToolSupported, id.Confidence)
		d.Identification = &types.IdentificationResult{
			FileType:        id.Format,
			DetectionMethod: id.DetectionMethod,
			Confidence:      id.Confidence,
			Metadata:        id.FileInfo,
		}
		return &d, nil

	case routeFile != "":
		result := sniff.NewDetector().Identify(routeFile)
		if result.IsError() {
			return nil, fmt.Errorf("identification failed: %s", result.Error)
		}
		d := policy.RouteIdentification(result)
		return &d, nil

	case routeInput != "":
		var input struct {
			FileType         string           `json:"file_type"`
			Format           string           `json:"format"`
			GenericSupported *bool            `json:"dbeaver_supported"`
			Confidence       types.Confidence `json:"confidence"`
		}
		if err := json.Unmarshal([]byte(routeInput), &input); err != nil {
			return nil, fmt.Errorf("malformed identification JSON: %w", err)
		}
		fileType := input.FileType
		if fileType == "" {
			fileType = input.Format
		}
		d := policy.Route(fileType, input.GenericSupported, input.Confidence)
		return &d, nil

	case routeFileType != "":
		generic, err := parseGenericFlag(routeGenericFlag)
		if err != nil {
			return nil, err
		}
		d := policy.Route(routeFileType, generic, types.Confidence(routeConfidence))
		return &d, nil

	default:
		return nil, fmt.Errorf("one of --file, --input, or --file-type is required")
	}
}

func parseGenericFlag(v string) (*bool, error) {
	switch v {
	case "":
		return nil, nil
	case "true":
		t := true
		return &t, nil
	case "false":
		f := false
		return &f, nil
	default:
		return nil, fmt.Errorf("invalid --generic-supported value %q (want true or false)", v)
	}
}
