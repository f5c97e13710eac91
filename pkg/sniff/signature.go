// Package sniff identifies file formats by magic-byte signatures with a
// deterministic fallback to extension heuristics.
package sniff

// SignatureRule matches a fixed byte sequence at a fixed offset.
type SignatureRule struct {
	// Offset is the byte position where Magic must appear.
	Offset int

	// Magic is the exact byte sequence expected at Offset.
	Magic []byte

	// FileType is the concrete format tag (e.g. "sqlite", "png").
	FileType string

	// Handler names the downstream processor. Empty means the match needs
	// deeper inspection before a handler can be chosen (the zip carrier).
	Handler string

	// Version is optional format version info, used by the database
	// identification tables.
	Version string
}

// SignatureTable is an ordered set of signature rules. Rules are evaluated
// in declaration order and the first match wins, so overlapping signatures
// must be listed most-specific-first by the table's author.
type SignatureTable struct {
	rules []SignatureRule
}

// NewSignatureTable builds a table from rules in the given order.
func NewSignatureTable(rules []SignatureRule) *SignatureTable {
	return &SignatureTable{rules: rules}
}

// Match returns the first rule whose magic bytes appear at its offset in
// header, or nil if none match. Rules that would read past the end of a
// short header are skipped, never an error.
func (t *SignatureTable) Match(header []byte) *SignatureRule {
	for i := range t.rules {
		r := &t.rules[i]
		end := r.Offset + len(r.Magic)
		if len(header) < end {
			continue
		}
		if bytesEqual(header[r.Offset:end], r.Magic) {
			return r
		}
	}
	return nil
}

// MaxProbe returns the minimum header length that can satisfy every rule in
// the table.
func (t *SignatureTable) MaxProbe() int {
	max := 0
	for i := range t.rules {
		if end := t.rules[i].Offset + len(t.rules[i].Magic); end > max {
			max = end
		}
	}
	return max
}

// Rules returns the rules in declaration order.
func (t *SignatureTable) Rules() []SignatureRule {
	return t.rules
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// TypeZip is the carrier tag for the PK zip signature. It never resolves
// directly to a handler: zip containers are inspected for OOXML markers
// first and only degrade to a generic archive when none is found.
const TypeZip = "zip"

// DefaultSignatures is the built-in signature set. Single-byte and other
// highly generic magics (dBase, Firebird, Derby) sit at the bottom so that
// every longer signature gets first refusal.
var DefaultSignatures = []SignatureRule{
	// Databases
	{Offset: 0, Magic: []byte("SQLite format 3\x00"), FileType: "sqlite", Handler: "db-extractor-sqlite"},
	{Offset: 0, Magic: []byte("\x00\x01\x00\x00Standard Jet DB"), FileType: "access", Handler: "db-identify"},
	{Offset: 0, Magic: []byte("\x00\x01\x00\x00Standard ACE DB"), FileType: "access", Handler: "db-identify"},
	{Offset: 0, Magic: []byte("-- H2 0.5/B"), FileType: "h2", Handler: "db-identify"},
	{Offset: 0, Magic: []byte("REDIS"), FileType: "redis-rdb", Handler: "db-identify"},
	{Offset: 12, Magic: []byte{0x00, 0x05, 0x31, 0x62}, FileType: "berkeleydb", Handler: "db-identify"},
	{Offset: 12, Magic: []byte{0x62, 0x31, 0x05, 0x00}, FileType: "berkeleydb", Handler: "db-identify"},

	// Documents
	{Offset: 0, Magic: []byte("%PDF-"), FileType: "pdf", Handler: "extractor-pdf"},

	// Images
	{Offset: 0, Magic: []byte("\x89PNG\r\n\x1a\n"), FileType: "png", Handler: "extractor-image"},
	{Offset: 0, Magic: []byte{0xff, 0xd8, 0xff}, FileType: "jpeg", Handler: "extractor-image"},
	{Offset: 0, Magic: []byte("GIF87a"), FileType: "gif", Handler: "extractor-image"},
	{Offset: 0, Magic: []byte("GIF89a"), FileType: "gif", Handler: "extractor-image"},
	{Offset: 0, Magic: []byte("II\x2a\x00"), FileType: "tiff", Handler: "extractor-image"}, // little-endian
	{Offset: 0, Magic: []byte("MM\x00\x2a"), FileType: "tiff", Handler: "extractor-image"}, // big-endian
	{Offset: 0, Magic: []byte("BM"), FileType: "bmp", Handler: "extractor-image"},

	// Archives
	{Offset: 0, Magic: []byte("PK\x03\x04"), FileType: TypeZip}, // zip or OOXML, needs inspection
	{Offset: 0, Magic: []byte("Rar!\x1a\x07\x00"), FileType: "rar", Handler: "archive-extractor"},
	{Offset: 0, Magic: []byte("Rar!\x1a\x07\x01\x00"), FileType: "rar5", Handler: "archive-extractor"},
	{Offset: 0, Magic: []byte("7z\xbc\xaf\x27\x1c"), FileType: "7z", Handler: "archive-extractor"},
	{Offset: 0, Magic: []byte{0x1f, 0x8b}, FileType: "gzip", Handler: "archive-extractor"},
	{Offset: 257, Magic: []byte("ustar"), FileType: "tar", Handler: "archive-extractor"},

	// Generic leading bytes, kept last. The dBase first byte collides with
	// printable ASCII ('0', '1') and small control bytes.
	{Offset: 0, Magic: []byte{0x01, 0x00, 0x00, 0x00}, FileType: "firebird", Handler: "db-identify"},
	{Offset: 0, Magic: []byte{0x00, 0x00, 0x04, 0x00}, FileType: "derby", Handler: "db-identify"},
	{Offset: 0, Magic: []byte{0x03}, FileType: "dbf", Handler: "db-identify"},
	{Offset: 0, Magic: []byte{0x83}, FileType: "dbf", Handler: "db-identify"},
	{Offset: 0, Magic: []byte{0x8b}, FileType: "dbf", Handler: "db-identify"},
	{Offset: 0, Magic: []byte{0xf5}, FileType: "dbf", Handler: "db-identify"},
	{Offset: 0, Magic: []byte{0x30}, FileType: "dbf", Handler: "db-identify"},
	{Offset: 0, Magic: []byte{0x31}, FileType: "dbf", Handler: "db-identify"},
}
