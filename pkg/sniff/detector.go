package sniff

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fileroute/fileroute/pkg/types"
)

// HeaderProbeSize is how many leading bytes Identify reads for signature
// matching. 512 covers every built-in rule; the deepest magic is tar's
// "ustar" at offset 257.
const HeaderProbeSize = 512

// Detector orchestrates signature matching, container inspection, and
// extension fallback into a single identification. Detectors are stateless
// and safe for concurrent use.
type Detector struct {
	signatures *SignatureTable
	extensions *ExtensionTable
	inspector  *Inspector
	probeSize  int
}

// Option configures a Detector.
type Option func(*Detector)

// WithSignatures replaces the built-in signature table.
func WithSignatures(t *SignatureTable) Option {
	return func(d *Detector) { d.signatures = t }
}

// WithExtensions replaces the built-in extension table.
func WithExtensions(t *ExtensionTable) Option {
	return func(d *Detector) { d.extensions = t }
}

// WithInspector replaces the container inspector.
func WithInspector(i *Inspector) Option {
	return func(d *Detector) { d.inspector = i }
}

// NewDetector builds a detector over the built-in tables.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{
		signatures: NewSignatureTable(DefaultSignatures),
		extensions: NewExtensionTable(DefaultExtensions),
		inspector:  NewInspector(ZipLister{}, 0),
		probeSize:  HeaderProbeSize,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Identify determines the format of the file at path.
//
// Signature matching runs first and always wins over the extension; a PK
// zip signature defers to container inspection for OOXML subtypes. Per-file
// failures come back as error entries, never as a panic or a hard error,
// and every result carries whatever file metadata could be collected.
func (d *Detector) Identify(path string) types.IdentificationResult {
	meta := types.FileMetadata{
		Path:      absPath(path),
		Name:      filepath.Base(path),
		Extension: strings.ToLower(filepath.Ext(path)),
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return types.ErrorResult(meta, fmt.Errorf("file not found: %s", path))
		}
		return types.ErrorResult(meta, fmt.Errorf("stat %s: %w", path, err))
	}
	if !info.Mode().IsRegular() {
		return types.ErrorResult(meta, fmt.Errorf("not a regular file: %s", path))
	}
	meta.SizeBytes = info.Size()

	header, err := d.readHeader(path)
	if err != nil {
		return types.ErrorResult(meta, fmt.Errorf("reading header: %w", err))
	}

	if rule := d.signatures.Match(header); rule != nil {
		if rule.FileType == TypeZip {
			if m := d.inspector.Inspect(path); m != nil {
				return signatureResult(m.FileType, m.Handler, meta)
			}
			// Plain zip archive. The container was unreadable or carried no
			// OOXML marker; the PK signature itself is still a high
			// confidence match.
			return signatureResult(TypeZip, "archive-extractor", meta)
		}
		return signatureResult(rule.FileType, rule.Handler, meta)
	}

	if rule := d.extensions.Match(meta.Name); rule != nil {
		return types.IdentificationResult{
			FileType:        rule.FileType,
			Processor:       rule.Handler,
			DetectionMethod: types.MethodExtension,
			Confidence:      types.ConfidenceLow,
			Metadata:        meta,
		}
	}

	return types.UnknownResult(meta)
}

// readHeader reads up to probeSize leading bytes. Files shorter than the
// probe are not an error; the whole file is never loaded.
func (d *Detector) readHeader(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, d.probeSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return buf[:n], nil
}

func signatureResult(fileType, handler string, meta types.FileMetadata) types.IdentificationResult {
	return types.IdentificationResult{
		FileType:        fileType,
		Processor:       handler,
		DetectionMethod: types.MethodSignature,
		Confidence:      types.ConfidenceHigh,
		Metadata:        meta,
	}
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
