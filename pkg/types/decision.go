package types

// DecisionKind is the outcome class of a routing decision.
type DecisionKind string

const (
	// DecisionGenericTool routes extraction to the general-purpose external
	// tool. Preferred whenever the tool claims support for the format, even
	// when a specialized handler is available.
	DecisionGenericTool DecisionKind = "use_generic_tool"

	// DecisionSpecializedHandler routes to a format-specific handler.
	DecisionSpecializedHandler DecisionKind = "use_specialized_handler"

	// DecisionHandlerUnavailable means no implemented handler exists for the
	// format; a new extraction handler must be built.
	DecisionHandlerUnavailable DecisionKind = "handler_unavailable"

	// DecisionUnknownFormat means the format could not be identified at all.
	DecisionUnknownFormat DecisionKind = "unknown_format"
)

// HandlerStatus is the implementation state of a specialized handler.
type HandlerStatus string

const (
	StatusAvailable   HandlerStatus = "available"
	StatusPlanned     HandlerStatus = "planned"
	StatusUnavailable HandlerStatus = "unavailable"
)

// RoutingDecision records which handler should process an identified file
// and why. Instructions are presentation detail for operators; the decision
// fields carry the semantics.
type RoutingDecision struct {
	Decision DecisionKind `json:"decision"`
	FileType string       `json:"file_type,omitempty"`

	// Handler is the chosen handler, empty when no handler was chosen
	// (unknown format or nothing implemented).
	Handler string `json:"skill,omitempty"`

	// FallbackHandler is the specialized handler that would serve this
	// format, reported for visibility even when the generic tool is chosen.
	FallbackHandler string        `json:"fallback_skill,omitempty"`
	FallbackStatus  HandlerStatus `json:"fallback_status,omitempty"`

	// ExportHint is a command-line hint for the generic tool, set only on
	// generic-tool decisions.
	ExportHint string `json:"export_hint,omitempty"`

	Instructions []string `json:"instructions"`

	// Identification carries the result that produced this decision, for
	// traceability, when routing was composed with identification.
	Identification *IdentificationResult `json:"identification,omitempty"`
}
