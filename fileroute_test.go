package fileroute

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fileroute/fileroute/pkg/types"
)

func TestIdentify(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "report.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.7\nbody"), 0644); err != nil {
		t.Fatal(err)
	}

	result := Identify(path)
	if result.FileType != "pdf" {
		t.Errorf("expected pdf, got %s", result.FileType)
	}
	if result.Confidence != ConfidenceHigh {
		t.Errorf("expected high confidence, got %s", result.Confidence)
	}
	if result.DetectionMethod != MethodSignature {
		t.Errorf("expected signature detection, got %s", result.DetectionMethod)
	}
}

func TestIdentifyMissingFile(t *testing.T) {
	result := Identify("/nonexistent/file.bin")
	if !result.IsError() {
		t.Fatal("expected an error entry for a missing file")
	}
	if result.FileType != TypeUnknown {
		t.Errorf("error entries report unknown, got %s", result.FileType)
	}
}

func TestIdentifyDir(t *testing.T) {
	tmpDir := t.TempDir()
	files := map[string][]byte{
		"b.pdf":  []byte("%PDF-1.4"),
		"a.md":   []byte("# notes"),
		"c.blob": {0x99, 0x98},
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(tmpDir, name), content, 0644); err != nil {
			t.Fatal(err)
		}
	}

	results, err := IdentifyDir(context.Background(), tmpDir, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	// Stable lexicographic order by path
	wantNames := []string{"a.md", "b.pdf", "c.blob"}
	for i, want := range wantNames {
		if results[i].Metadata.Name != want {
			t.Errorf("result %d: expected %s, got %s", i, want, results[i].Metadata.Name)
		}
	}
	if results[2].FileType != TypeUnknown {
		t.Errorf("expected unknown for c.blob, got %s", results[2].FileType)
	}
}

func TestRoute(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "course.db")
	if err := os.WriteFile(path, []byte("SQLite format 3\x00data"), 0644); err != nil {
		t.Fatal(err)
	}

	decision, err := Route(path)
	if err != nil {
		t.Fatal(err)
	}
	if decision.Decision != types.DecisionGenericTool {
		t.Errorf("expected the generic tool for sqlite, got %s", decision.Decision)
	}
	if decision.Identification == nil {
		t.Fatal("expected the identification attached to the decision")
	}
	if decision.Identification.FileType != "sqlite" {
		t.Errorf("expected sqlite, got %s", decision.Identification.FileType)
	}
}

func TestRouteUnknown(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "mystery.blob")
	if err := os.WriteFile(path, []byte{0x99, 0x98, 0x97}, 0644); err != nil {
		t.Fatal(err)
	}

	decision, err := Route(path)
	if err != nil {
		t.Fatal(err)
	}
	if decision.Decision != types.DecisionUnknownFormat {
		t.Errorf("expected unknown_format, got %s", decision.Decision)
	}
}
