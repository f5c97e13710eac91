// Package dbident identifies database file formats by magic-byte signature,
// with extension hints as a low-confidence fallback. Unlike the generic
// detector it reports version information and whether the general-purpose
// export tool claims support for the format.
package dbident

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fileroute/fileroute/pkg/sniff"
	"github.com/fileroute/fileroute/pkg/types"
)

// Signatures is the database signature set, ordered most-specific-first.
// The Berkeley DB probes sit at offset 12; a file shorter than 16 bytes is
// treated the same as a non-match.
var Signatures = []sniff.SignatureRule{
	{Offset: 0, Magic: []byte("SQLite format 3\x00"), FileType: "sqlite", Version: "3.x"},
	{Offset: 0, Magic: []byte("\x00\x01\x00\x00Standard Jet DB"), FileType: "access", Version: "2000/2003 (Jet)"},
	{Offset: 0, Magic: []byte("\x00\x01\x00\x00Standard ACE DB"), FileType: "access", Version: "2007+ (ACE)"},
	{Offset: 0, Magic: []byte("-- H2 0.5/B"), FileType: "h2", Version: "0.5"},
	{Offset: 0, Magic: []byte("REDIS"), FileType: "redis-rdb", Version: "unknown"},
	{Offset: 12, Magic: []byte{0x00, 0x05, 0x31, 0x62}, FileType: "berkeleydb", Version: "unknown"},
	{Offset: 12, Magic: []byte{0x62, 0x31, 0x05, 0x00}, FileType: "berkeleydb", Version: "unknown (LE)"},
	{Offset: 0, Magic: []byte{0x01, 0x00, 0x00, 0x00}, FileType: "firebird", Version: "unknown"},
	{Offset: 0, Magic: []byte{0x00, 0x00, 0x04, 0x00}, FileType: "derby", Version: "unknown"},
	{Offset: 0, Magic: []byte{0x03}, FileType: "dbf", Version: "dBase III"},
	{Offset: 0, Magic: []byte{0x83}, FileType: "dbf", Version: "dBase III + memo"},
	{Offset: 0, Magic: []byte{0x8b}, FileType: "dbf", Version: "dBase IV + memo"},
	{Offset: 0, Magic: []byte{0xf5}, FileType: "dbf", Version: "FoxPro"},
	{Offset: 0, Magic: []byte{0x30}, FileType: "dbf", Version: "Visual FoxPro"},
	{Offset: 0, Magic: []byte{0x31}, FileType: "dbf", Version: "Visual FoxPro + autoincrement"},
}

// ExtensionHint is a suffix-matched extension fallback with an advisory
// note. Multi-segment suffixes (".h2.db") must precede their shorter tails
// (".db").
type ExtensionHint struct {
	Suffix string
	Format string
	Note   string
}

// ExtensionHints is the built-in hint table, in match order.
var ExtensionHints = []ExtensionHint{
	{".sqlite3", "sqlite", "Likely SQLite 3.x"},
	{".sqlite", "sqlite", "Likely SQLite"},
	{".h2.db", "h2", "H2 Database"},
	{".db", "sqlite", "Could be SQLite or other formats"},
	{".mdb", "access", "Microsoft Access 2003 or earlier"},
	{".accdb", "access", "Microsoft Access 2007+"},
	{".dbf", "dbf", "dBase/FoxPro/Clipper"},
	{".fdb", "firebird", "Firebird database"},
	{".gdb", "firebird", "Firebird/InterBase database"},
	{".kdbx", "keepass", "KeePass database (encrypted)"},
	{".realm", "realm", "Realm mobile database"},
	{".rdb", "redis-rdb", "Redis database dump"},
}

// headerProbeSize covers every database signature; the deepest probe ends
// at offset 16.
const headerProbeSize = 64

// Identification is the outcome of identifying a database file.
type Identification struct {
	Format          string                `json:"format"`
	Version         string                `json:"version,omitempty"`
	DetectionMethod types.DetectionMethod `json:"detection_method"`
	Confidence      types.Confidence      `json:"confidence"`
	Note            string                `json:"note,omitempty"`

	// GenericToolSupported reports whether the general-purpose export tool
	// handles this format. Nil when the format is unknown or the capability
	// table has no entry.
	GenericToolSupported *bool `json:"dbeaver_supported"`

	FileInfo types.FileMetadata `json:"file_info"`
	Error    string             `json:"error,omitempty"`
}

// IsError reports whether identification failed outright.
func (i *Identification) IsError() bool {
	return i.Error != ""
}

// Identifier identifies database files against a signature table, hint
// table, and generic-tool capability map. The zero-argument constructor
// uses the built-in tables.
type Identifier struct {
	table *sniff.SignatureTable
	hints []ExtensionHint
	caps  map[string]bool
}

// New builds an identifier with the built-in signatures and hints. caps
// maps format tag to generic-tool support; it is static configuration kept
// in sync by the surrounding system, not queried live.
func New(caps map[string]bool) *Identifier {
	return &Identifier{
		table: sniff.NewSignatureTable(Signatures),
		hints: ExtensionHints,
		caps:  caps,
	}
}

// Identify determines the database format of the file at path.
func (id *Identifier) Identify(path string) Identification {
	info := types.FileMetadata{
		Path:      mustAbs(path),
		Name:      filepath.Base(path),
		Extension: strings.ToLower(filepath.Ext(path)),
	}

	st, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return errorIdentification(info, fmt.Errorf("file not found: %s", path))
		}
		return errorIdentification(info, fmt.Errorf("stat %s: %w", path, err))
	}
	if !st.Mode().IsRegular() {
		return errorIdentification(info, fmt.Errorf("not a regular file: %s", path))
	}
	info.SizeBytes = st.Size()

	header, err := readHeader(path)
	if err != nil {
		if errors.Is(err, os.ErrPermission) {
			return errorIdentification(info, fmt.Errorf("permission denied: %s", path))
		}
		return errorIdentification(info, fmt.Errorf("could not read file: %w", err))
	}

	if rule := id.table.Match(header); rule != nil {
		return Identification{
			Format:               rule.FileType,
			Version:              rule.Version,
			DetectionMethod:      types.MethodSignature,
			Confidence:           types.ConfidenceHigh,
			GenericToolSupported: id.support(rule.FileType),
			FileInfo:             info,
		}
	}

	lower := strings.ToLower(info.Name)
	for _, h := range id.hints {
		if strings.HasSuffix(lower, h.Suffix) {
			return Identification{
				Format:               h.Format,
				Version:              "unknown",
				DetectionMethod:      types.MethodExtension,
				Confidence:           types.ConfidenceLow,
				Note:                 h.Note,
				GenericToolSupported: id.support(h.Format),
				FileInfo:             info,
			}
		}
	}

	return Identification{
		Format:          types.TypeUnknown,
		DetectionMethod: types.MethodNone,
		Confidence:      types.ConfidenceNone,
		FileInfo:        info,
	}
}

func (id *Identifier) support(format string) *bool {
	if id.caps == nil {
		return nil
	}
	v, ok := id.caps[format]
	if !ok {
		return nil
	}
	return &v
}

func errorIdentification(info types.FileMetadata, err error) Identification {
	return Identification{
		Format:          types.TypeUnknown,
		DetectionMethod: types.MethodNone,
		Confidence:      types.ConfidenceNone,
		FileInfo:        info,
		Error:           err.Error(),
	}
}

func readHeader(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, headerProbeSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return buf[:n], nil
}

func mustAbs(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
