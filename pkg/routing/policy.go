package routing

import (
	"fmt"

	"github.com/fileroute/fileroute/pkg/types"
)

// Policy turns an identification into a routing decision against a
// registry. Policies hold no mutable state and are safe to share.
type Policy struct {
	registry *Registry
}

// NewPolicy builds a policy over the given registry.
func NewPolicy(registry *Registry) *Policy {
	return &Policy{registry: registry}
}

// Route decides which handler should process a file of the given type.
//
// The decision table, evaluated top to bottom:
//
//  1. unknown format: no handler, suggest manual identification
//  2. generic tool supports the format: use it, but still report the
//     specialized fallback and its status for visibility
//  3. generic tool does not (or may not) support it and the specialized
//     handler is available: use the specialized handler
//  4. otherwise: no handler can run; one must be built
//
// The generic tool wins over an available specialized handler on purpose:
// fewer bespoke code paths to maintain. genericSupport nil means support is
// unknown and is treated like false.
func (p *Policy) Route(fileType string, genericSupport *bool, confidence types.Confidence) types.RoutingDecision {
	if fileType == "" || fileType == types.TypeUnknown {
		return types.RoutingDecision{
			Decision: types.DecisionUnknownFormat,
			Instructions: []string{
				"Format could not be identified",
				"Try opening with the DBeaver GUI to identify",
				"Check file documentation or source",
			},
		}
	}

	fallback, fallbackStatus := p.registry.HandlerFor(fileType)

	if genericSupport != nil && *genericSupport {
		fallbackLine := "No fallback handler available"
		if fallback != "" {
			fallbackLine = fmt.Sprintf("Fallback: %s (%s)", fallback, fallbackStatus)
		}
		return types.RoutingDecision{
			Decision:        types.DecisionGenericTool,
			FileType:        fileType,
			Handler:         "dbeaver_cli",
			FallbackHandler: fallback,
			FallbackStatus:  fallbackStatus,
			ExportHint:      p.registry.ExportHint(fileType),
			Instructions: []string{
				fmt.Sprintf("Use DBeaver CLI to export %s data", fileType),
				"DBeaver supports this format natively",
				fallbackLine,
			},
		}
	}

	if fallbackStatus == types.StatusAvailable {
		return types.RoutingDecision{
			Decision:        types.DecisionSpecializedHandler,
			FileType:        fileType,
			Handler:         fallback,
			FallbackHandler: fallback,
			FallbackStatus:  fallbackStatus,
			Instructions: []string{
				fmt.Sprintf("DBeaver CLI does not support %s", fileType),
				fmt.Sprintf("Use %s for extraction", fallback),
			},
		}
	}

	return types.RoutingDecision{
		Decision:        types.DecisionHandlerUnavailable,
		FileType:        fileType,
		FallbackHandler: fallback,
		FallbackStatus:  fallbackStatus,
		Instructions: []string{
			fmt.Sprintf("DBeaver CLI does not support %s", fileType),
			fmt.Sprintf("Extraction handler %s is %s", handlerOrNone(fallback), fallbackStatus),
			"Need to create an extraction handler for this format",
		},
	}
}

// RouteIdentification routes a generic identification result, attaching it
// to the decision for traceability. Generic-tool support comes from the
// registry's capability table.
func (p *Policy) RouteIdentification(r types.IdentificationResult) types.RoutingDecision {
	d := p.Route(r.FileType, p.registry.GenericSupport(r.FileType), r.Confidence)
	d.Identification = &r
	return d
}

func handlerOrNone(handler string) string {
	if handler == "" {
		return "(none)"
	}
	return handler
}
