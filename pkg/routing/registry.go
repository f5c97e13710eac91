// Package routing decides which extraction handler should process an
// identified file. The decision tables are static configuration, shipped as
// embedded YAML and overridable from a file so tests and operators can
// substitute alternates without mutating shared state.
package routing

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/fileroute/fileroute/pkg/types"
	"gopkg.in/yaml.v3"
)

//go:embed config/registry.yml
var builtinRegistry []byte

// Registry holds the static routing tables: format to specialized handler,
// handler implementation status, generic-tool capability per format, and
// per-format export hints for the generic tool. The surrounding system is
// expected to keep these current as handlers are implemented; nothing here
// queries the external tool for live capability.
type Registry struct {
	Handlers     map[string]string              `yaml:"handlers"`
	Status       map[string]types.HandlerStatus `yaml:"status"`
	Capabilities map[string]bool                `yaml:"generic_tool"`
	ExportHints  map[string]string              `yaml:"export_hints"`
}

// DefaultRegistry parses the embedded registry tables.
func DefaultRegistry() (*Registry, error) {
	return parseRegistry(builtinRegistry)
}

// LoadRegistry parses registry tables from a YAML file.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry %s: %w", path, err)
	}
	return parseRegistry(data)
}

func parseRegistry(data []byte) (*Registry, error) {
	var r Registry
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse registry YAML: %w", err)
	}
	if err := r.validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *Registry) validate() error {
	for handler, status := range r.Status {
		switch status {
		case types.StatusAvailable, types.StatusPlanned, types.StatusUnavailable:
		default:
			return fmt.Errorf("handler %s has invalid status %q", handler, status)
		}
	}
	return nil
}

// HandlerFor returns the specialized handler registered for a format and
// its status. A format with no registered handler, or a handler with no
// status entry, reports StatusUnavailable.
func (r *Registry) HandlerFor(format string) (string, types.HandlerStatus) {
	handler, ok := r.Handlers[format]
	if !ok {
		return "", types.StatusUnavailable
	}
	status, ok := r.Status[handler]
	if !ok {
		return handler, types.StatusUnavailable
	}
	return handler, status
}

// GenericSupport looks up generic-tool capability for a format. Nil means
// the capability table has no entry for the format.
func (r *Registry) GenericSupport(format string) *bool {
	v, ok := r.Capabilities[format]
	if !ok {
		return nil
	}
	return &v
}

// ExportHint returns the generic-tool command hint for a format.
func (r *Registry) ExportHint(format string) string {
	if hint, ok := r.ExportHints[format]; ok {
		return hint
	}
	return "Refer to the export tool documentation"
}
