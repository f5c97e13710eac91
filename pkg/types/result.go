package types

import "fmt"

// DetectionMethod describes how a file type was determined.
type DetectionMethod string

const (
	// MethodSignature means the type was matched by magic bytes.
	MethodSignature DetectionMethod = "signature"

	// MethodExtension means the type was guessed from the file extension.
	MethodExtension DetectionMethod = "extension"

	// MethodNone means no detection rule matched.
	MethodNone DetectionMethod = "none"
)

// Confidence is the trust level attached to an identification.
type Confidence string

const (
	ConfidenceHigh Confidence = "high"
	ConfidenceLow  Confidence = "low"
	ConfidenceNone Confidence = "none"
)

// TypeUnknown is the file type reported when nothing matched.
const TypeUnknown = "unknown"

// Handler sentinels. Passthrough marks content that is already readable text
// and needs no extraction; Skip marks media types that are deliberately
// excluded from extraction.
const (
	HandlerPassthrough = "passthrough"
	HandlerSkip        = "skip"
)

// FileMetadata describes the file that was identified. It is populated on
// every result, including error entries, whenever the file could be stat'd.
type FileMetadata struct {
	Path      string `json:"path"`
	Name      string `json:"name"`
	SizeBytes int64  `json:"size_bytes"`
	Extension string `json:"extension"`
}

// IdentificationResult is the outcome of identifying a single file.
//
// Field pairings are fixed: a signature match is always high confidence, an
// extension match is always low confidence, and no match at all reports the
// unknown type with no confidence.
type IdentificationResult struct {
	FileType        string          `json:"file_type"`
	Processor       string          `json:"processor,omitempty"`
	DetectionMethod DetectionMethod `json:"detection_method"`
	Confidence      Confidence      `json:"confidence"`
	Metadata        FileMetadata    `json:"metadata"`

	// Error is set on per-file failures (missing path, permission denied).
	// Error entries still carry whatever metadata could be collected.
	Error string `json:"error,omitempty"`
}

// IsError reports whether this result is a per-file error entry.
func (r *IdentificationResult) IsError() bool {
	return r.Error != ""
}

// Unknown reports whether identification produced no match.
func (r *IdentificationResult) Unknown() bool {
	return r.FileType == TypeUnknown
}

// Validate checks the method/confidence pairing invariants.
func (r *IdentificationResult) Validate() error {
	if r.IsError() {
		return nil
	}
	switch r.DetectionMethod {
	case MethodSignature:
		if r.Confidence != ConfidenceHigh {
			return fmt.Errorf("signature match must be high confidence, got %q", r.Confidence)
		}
	case MethodExtension:
		if r.Confidence != ConfidenceLow {
			return fmt.Errorf("extension match must be low confidence, got %q", r.Confidence)
		}
	case MethodNone:
		if r.FileType != TypeUnknown {
			return fmt.Errorf("no detection method but file type is %q", r.FileType)
		}
		if r.Confidence != ConfidenceNone {
			return fmt.Errorf("no detection method must have no confidence, got %q", r.Confidence)
		}
	default:
		return fmt.Errorf("unknown detection method %q", r.DetectionMethod)
	}
	return nil
}

// ErrorResult builds a per-file error entry.
func ErrorResult(meta FileMetadata, err error) IdentificationResult {
	return IdentificationResult{
		FileType:        TypeUnknown,
		DetectionMethod: MethodNone,
		Confidence:      ConfidenceNone,
		Metadata:        meta,
		Error:           err.Error(),
	}
}

// UnknownResult builds the result for a file matching no rule.
func UnknownResult(meta FileMetadata) IdentificationResult {
	return IdentificationResult{
		FileType:        TypeUnknown,
		DetectionMethod: MethodNone,
		Confidence:      ConfidenceNone,
		Metadata:        meta,
	}
}
