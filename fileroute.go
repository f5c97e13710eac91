// Package fileroute identifies file formats and routes them to extraction
// handlers.
//
// Identification inspects magic-byte signatures first and falls back to
// extension heuristics; zip containers are peeked into to tell Office Open
// XML documents apart from plain archives. Routing maps an identified
// format to the handler that should extract it, preferring a general-
// purpose export tool whenever it claims support.
//
// # Basic Usage
//
// Identify a single file:
//
//	result := fileroute.Identify("report.pdf")
//	fmt.Println(result.FileType, result.Confidence)
//
// Identify and route in one step:
//
//	decision, err := fileroute.Route("course.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(decision.Decision, decision.Handler)
package fileroute

import (
	"context"

	"github.com/fileroute/fileroute/pkg/batch"
	"github.com/fileroute/fileroute/pkg/routing"
	"github.com/fileroute/fileroute/pkg/sniff"
	"github.com/fileroute/fileroute/pkg/types"
)

// Re-export commonly used types so callers can import just
// "github.com/fileroute/fileroute" without subpackages.
type (
	// IdentificationResult is the outcome of identifying a single file.
	IdentificationResult = types.IdentificationResult

	// RoutingDecision records which handler should process a file and why.
	RoutingDecision = types.RoutingDecision

	// FileMetadata describes the identified file.
	FileMetadata = types.FileMetadata

	// DetectionMethod describes how a type was determined.
	DetectionMethod = types.DetectionMethod

	// Confidence is the trust level of an identification.
	Confidence = types.Confidence
)

const (
	MethodSignature = types.MethodSignature
	MethodExtension = types.MethodExtension
	MethodNone      = types.MethodNone

	ConfidenceHigh = types.ConfidenceHigh
	ConfidenceLow  = types.ConfidenceLow
	ConfidenceNone = types.ConfidenceNone

	TypeUnknown = types.TypeUnknown
)

// Identify determines the format of a single file using the built-in
// signature and extension tables. Failures come back as error entries on
// the result, never as a panic.
func Identify(path string) IdentificationResult {
	return sniff.NewDetector().Identify(path)
}

// IdentifyDir identifies every regular file under root, optionally
// recursing, with results in stable lexicographic path order.
func IdentifyDir(ctx context.Context, root string, recursive bool) ([]IdentificationResult, error) {
	scanner := batch.New(nil, batch.Config{Root: root, Recursive: recursive})
	return scanner.Scan(ctx)
}

// Route identifies a file and decides which handler should process it,
// using the built-in routing registry.
func Route(path string) (RoutingDecision, error) {
	registry, err := routing.DefaultRegistry()
	if err != nil {
		return RoutingDecision{}, err
	}
	policy := routing.NewPolicy(registry)
	return policy.RouteIdentification(Identify(path)), nil
}
