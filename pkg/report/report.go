// Package report renders identification results and routing decisions as
// human-readable text or JSON. Both representations carry the same
// information.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/fileroute/fileroute/pkg/dbident"
	"github.com/fileroute/fileroute/pkg/types"
)

// Styles holds color formatters for human output.
type Styles struct {
	heading *color.Color
	value   *color.Color
	high    *color.Color
	low     *color.Color
	errText *color.Color
}

// NewStyles creates color formatters. enabled=false disables all color,
// respecting --color=never and non-terminal output.
func NewStyles(enabled bool) *Styles {
	s := &Styles{
		heading: color.New(color.Bold),
		value:   color.New(color.FgHiBlue),
		high:    color.New(color.FgHiGreen),
		low:     color.New(color.FgYellow),
		errText: color.New(color.FgHiRed),
	}
	if !enabled {
		s.heading.DisableColor()
		s.value.DisableColor()
		s.high.DisableColor()
		s.low.DisableColor()
		s.errText.DisableColor()
	}
	return s
}

// ColorEnabled resolves a color mode (auto, always, never) against the
// output destination. NO_COLOR always wins.
func ColorEnabled(mode string, w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd()))
	}
}

// FormatSize renders a byte count for humans.
func FormatSize(n int64) string {
	size := float64(n)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if size < 1024 {
			return fmt.Sprintf("%.1f %s", size, unit)
		}
		size /= 1024
	}
	return fmt.Sprintf("%.1f TB", size)
}

// WriteIdentification renders one identification as a text block.
func (s *Styles) WriteIdentification(w io.Writer, r types.IdentificationResult) {
	if r.IsError() {
		fmt.Fprintf(w, "%s %s\n", s.errText.Sprint("Error:"), r.Error)
		return
	}

	fmt.Fprintf(w, "%s %s\n", s.heading.Sprint("File:"), r.Metadata.Name)
	fmt.Fprintf(w, "%s %s\n", s.heading.Sprint("Size:"), FormatSize(r.Metadata.SizeBytes))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %s\n", s.heading.Sprint("Type:"), s.value.Sprint(r.FileType))
	processor := r.Processor
	if processor == "" {
		processor = "none"
	}
	fmt.Fprintf(w, "%s %s\n", s.heading.Sprint("Processor:"), processor)
	fmt.Fprintf(w, "%s %s (%s)\n",
		s.heading.Sprint("Confidence:"),
		s.confidence(r.Confidence),
		r.DetectionMethod,
	)
}

// WriteDBIdentification renders a database identification as a text block.
func (s *Styles) WriteDBIdentification(w io.Writer, r dbident.Identification) {
	if r.IsError() {
		fmt.Fprintf(w, "%s %s\n", s.errText.Sprint("Error:"), r.Error)
		return
	}

	fmt.Fprintf(w, "%s %s\n", s.heading.Sprint("File:"), r.FileInfo.Name)
	fmt.Fprintf(w, "%s %s\n", s.heading.Sprint("Size:"), FormatSize(r.FileInfo.SizeBytes))
	fmt.Fprintln(w)

	if r.Format == types.TypeUnknown {
		fmt.Fprintf(w, "%s Unknown\n", s.heading.Sprint("Format:"))
		fmt.Fprintln(w, "Could not identify database format.")
		return
	}

	fmt.Fprintf(w, "%s %s\n", s.heading.Sprint("Format:"), s.value.Sprint(r.Format))
	fmt.Fprintf(w, "%s %s\n", s.heading.Sprint("Version:"), r.Version)
	fmt.Fprintf(w, "%s %s (%s detection)\n",
		s.heading.Sprint("Confidence:"),
		s.confidence(r.Confidence),
		r.DetectionMethod,
	)
	if r.Note != "" {
		fmt.Fprintf(w, "%s %s\n", s.heading.Sprint("Note:"), r.Note)
	}
	if r.GenericToolSupported != nil {
		fmt.Fprintf(w, "%s %s\n", s.heading.Sprint("DBeaver supported:"), yesNo(*r.GenericToolSupported))
	}
}

// WriteDecision renders a routing decision as a text block.
func (s *Styles) WriteDecision(w io.Writer, d types.RoutingDecision) {
	if d.FileType != "" {
		fmt.Fprintf(w, "%s %s\n", s.heading.Sprint("Format:"), s.value.Sprint(d.FileType))
	}
	fmt.Fprintf(w, "%s %s\n", s.heading.Sprint("Decision:"), s.value.Sprint(string(d.Decision)))
	handler := d.Handler
	if handler == "" {
		handler = "none"
	}
	fmt.Fprintf(w, "%s %s\n", s.heading.Sprint("Handler:"), handler)
	if d.FallbackHandler != "" {
		fmt.Fprintf(w, "%s %s (%s)\n", s.heading.Sprint("Fallback:"), d.FallbackHandler, d.FallbackStatus)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, s.heading.Sprint("Instructions:"))
	for _, line := range d.Instructions {
		fmt.Fprintf(w, "  - %s\n", line)
	}

	if d.ExportHint != "" {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s %s\n", s.heading.Sprint("DBeaver hint:"), d.ExportHint)
	}
}

func (s *Styles) confidence(c types.Confidence) string {
	switch c {
	case types.ConfidenceHigh:
		return s.high.Sprint(string(c))
	case types.ConfidenceLow:
		return s.low.Sprint(string(c))
	default:
		return string(c)
	}
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// WriteJSON renders any value as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
