package dbident

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fileroute/fileroute/pkg/types"
)

var caps = map[string]bool{
	"sqlite":     true,
	"access":     true,
	"dbf":        true,
	"h2":         true,
	"firebird":   true,
	"derby":      true,
	"berkeleydb": false,
	"redis-rdb":  false,
	"keepass":    false,
	"realm":      false,
}

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestIdentifySQLite(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeFile(t, tmpDir, "course.file", []byte("SQLite format 3\x00more"))

	id := New(caps).Identify(path)
	if id.Format != "sqlite" {
		t.Errorf("expected sqlite, got %s", id.Format)
	}
	if id.Version != "3.x" {
		t.Errorf("expected version 3.x, got %s", id.Version)
	}
	if id.DetectionMethod != types.MethodSignature || id.Confidence != types.ConfidenceHigh {
		t.Errorf("expected signature/high, got %s/%s", id.DetectionMethod, id.Confidence)
	}
	if id.GenericToolSupported == nil || !*id.GenericToolSupported {
		t.Error("expected generic tool support for sqlite")
	}
}

func TestIdentifyAccessVariants(t *testing.T) {
	tmpDir := t.TempDir()

	jet := New(caps).Identify(writeFile(t, tmpDir, "old.mdb", []byte("\x00\x01\x00\x00Standard Jet DB rest")))
	if jet.Format != "access" || jet.Version != "2000/2003 (Jet)" {
		t.Errorf("expected access Jet, got %s %s", jet.Format, jet.Version)
	}

	ace := New(caps).Identify(writeFile(t, tmpDir, "new.accdb", []byte("\x00\x01\x00\x00Standard ACE DB rest")))
	if ace.Format != "access" || ace.Version != "2007+ (ACE)" {
		t.Errorf("expected access ACE, got %s %s", ace.Format, ace.Version)
	}
}

func TestIdentifyBerkeleyDBAtOffset(t *testing.T) {
	tmpDir := t.TempDir()

	content := make([]byte, 32)
	copy(content[12:], []byte{0x62, 0x31, 0x05, 0x00})
	id := New(caps).Identify(writeFile(t, tmpDir, "data.bdb", content))

	if id.Format != "berkeleydb" {
		t.Errorf("expected berkeleydb, got %s", id.Format)
	}
	if id.GenericToolSupported == nil || *id.GenericToolSupported {
		t.Error("expected berkeleydb to be unsupported by the generic tool")
	}
}

func TestIdentifyShortFileNoMatch(t *testing.T) {
	tmpDir := t.TempDir()
	// Too short for the offset-12 probe: indistinguishable from no-match.
	id := New(caps).Identify(writeFile(t, tmpDir, "stub.bin", []byte{0x99, 0x98}))

	if id.IsError() {
		t.Fatalf("short file must not error: %s", id.Error)
	}
	if id.Format != types.TypeUnknown {
		t.Errorf("expected unknown, got %s", id.Format)
	}
	if id.Confidence != types.ConfidenceNone {
		t.Errorf("expected no confidence, got %s", id.Confidence)
	}
}

func TestIdentifyExtensionHints(t *testing.T) {
	tmpDir := t.TempDir()
	identifier := New(caps)

	tests := []struct {
		name   string
		format string
	}{
		{"data.db", "sqlite"},
		{"data.sqlite3", "sqlite"},
		{"store.h2.db", "h2"}, // .h2.db must beat the plain .db suffix
		{"vault.kdbx", "keepass"},
		{"dump.rdb", "redis-rdb"},
		{"legacy.dbf", "dbf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := identifier.Identify(writeFile(t, tmpDir, tt.name, []byte("no signature here......")))
			if id.Format != tt.format {
				t.Errorf("expected %s, got %s", tt.format, id.Format)
			}
			if id.DetectionMethod != types.MethodExtension || id.Confidence != types.ConfidenceLow {
				t.Errorf("expected extension/low, got %s/%s", id.DetectionMethod, id.Confidence)
			}
			if id.Note == "" {
				t.Error("extension hints carry an advisory note")
			}
		})
	}
}

func TestIdentifyUnknownCapability(t *testing.T) {
	tmpDir := t.TempDir()
	// A format missing from the capability table reports nil support.
	id := New(map[string]bool{}).Identify(writeFile(t, tmpDir, "c.sqlite", []byte("SQLite format 3\x00")))
	if id.GenericToolSupported != nil {
		t.Errorf("expected nil support for unlisted format, got %v", *id.GenericToolSupported)
	}
}

func TestIdentifyMissingFile(t *testing.T) {
	id := New(caps).Identify("/nonexistent/db.sqlite")
	if !id.IsError() {
		t.Fatal("expected an error identification")
	}
}

func TestSignatureOrderJetBeforeGenerics(t *testing.T) {
	// The Access signatures start with 0x00 0x01 0x00 0x00; they must be
	// declared before the generic four-byte Firebird/Derby probes.
	sawAccess := false
	for _, sig := range Signatures {
		switch sig.FileType {
		case "access":
			sawAccess = true
		case "firebird", "derby":
			if !sawAccess {
				t.Fatal("generic four-byte signatures declared before Access")
			}
		}
	}
}
