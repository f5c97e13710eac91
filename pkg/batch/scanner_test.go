package batch

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/fileroute/fileroute/pkg/routing"
	"github.com/fileroute/fileroute/pkg/types"
)

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestScanTopLevel(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "a.pdf", []byte("%PDF-1.4"))
	writeFile(t, tmpDir, "b.md", []byte("# notes"))
	writeFile(t, tmpDir, "c.blob", []byte{0x99, 0x98})

	subDir := filepath.Join(tmpDir, "sub")
	if err := os.Mkdir(subDir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, subDir, "nested.pdf", []byte("%PDF-1.4"))

	scanner := New(nil, Config{Root: tmpDir})
	results, err := scanner.Scan(context.Background())
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	// Non-recursive: the nested file is not visited.
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	byName := map[string]types.IdentificationResult{}
	for _, r := range results {
		byName[r.Metadata.Name] = r
	}
	if byName["a.pdf"].FileType != "pdf" {
		t.Errorf("expected pdf, got %s", byName["a.pdf"].FileType)
	}
	if byName["b.md"].FileType != "markdown" {
		t.Errorf("expected markdown, got %s", byName["b.md"].FileType)
	}
	if byName["c.blob"].FileType != types.TypeUnknown {
		t.Errorf("expected unknown, got %s", byName["c.blob"].FileType)
	}
}

func TestScanRecursive(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "top.pdf", []byte("%PDF-1.4"))

	subDir := filepath.Join(tmpDir, "sub")
	if err := os.Mkdir(subDir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, subDir, "nested.pdf", []byte("%PDF-1.4"))

	scanner := New(nil, Config{Root: tmpDir, Recursive: true})
	results, err := scanner.Scan(context.Background())
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
}

func TestScanStableOrder(t *testing.T) {
	tmpDir := t.TempDir()
	// Create out of lexicographic order, with enough files that parallel
	// completion order would differ.
	names := []string{"zeta.md", "alpha.md", "mid.md", "beta.md", "omega.md"}
	for _, n := range names {
		writeFile(t, tmpDir, n, []byte("text"))
	}

	scanner := New(nil, Config{Root: tmpDir, Workers: 4})
	results, err := scanner.Scan(context.Background())
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	paths := make([]string, len(results))
	for i, r := range results {
		paths[i] = r.Metadata.Path
	}
	if !sort.StringsAreSorted(paths) {
		t.Errorf("results not in lexicographic path order: %v", paths)
	}

	// A second run yields the same ordering.
	again, err := scanner.Scan(context.Background())
	if err != nil {
		t.Fatalf("rescan failed: %v", err)
	}
	for i := range results {
		if results[i].Metadata.Path != again[i].Metadata.Path {
			t.Errorf("run ordering differs at %d: %s vs %s", i, results[i].Metadata.Path, again[i].Metadata.Path)
		}
	}
}

func TestScanHiddenFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "visible.md", []byte("text"))
	writeFile(t, tmpDir, ".hidden.md", []byte("text"))

	scanner := New(nil, Config{Root: tmpDir})
	results, err := scanner.Scan(context.Background())
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	scanner = New(nil, Config{Root: tmpDir, IncludeHidden: true})
	results, err = scanner.Scan(context.Background())
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results with hidden included, got %d", len(results))
	}
}

func TestScanHonorGitignore(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, ".gitignore", []byte("*.log\n"))
	writeFile(t, tmpDir, "keep.md", []byte("text"))
	writeFile(t, tmpDir, "drop.log", []byte("text"))

	scanner := New(nil, Config{Root: tmpDir, HonorGitignore: true})
	results, err := scanner.Scan(context.Background())
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Metadata.Name != "keep.md" {
		t.Errorf("expected keep.md, got %s", results[0].Metadata.Name)
	}
}

func TestScanUnreadableFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root, permission bits are not enforced")
	}

	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "ok.pdf", []byte("%PDF-1.4"))
	locked := writeFile(t, tmpDir, "locked.pdf", []byte("%PDF-1.4"))
	if err := os.Chmod(locked, 0000); err != nil {
		t.Fatalf("chmod: %v", err)
	}

	scanner := New(nil, Config{Root: tmpDir})
	results, err := scanner.Scan(context.Background())
	if err != nil {
		t.Fatalf("a per-file failure must not abort the batch: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	errors := 0
	for _, r := range results {
		if r.IsError() {
			errors++
		}
	}
	if errors != 1 {
		t.Errorf("expected 1 error entry, got %d", errors)
	}
}

func TestScanInvalidRoot(t *testing.T) {
	scanner := New(nil, Config{Root: "/nonexistent/dir"})
	if _, err := scanner.Scan(context.Background()); err == nil {
		t.Fatal("expected an error for a missing root")
	}

	tmpDir := t.TempDir()
	file := writeFile(t, tmpDir, "file.md", []byte("text"))
	scanner = New(nil, Config{Root: file})
	if _, err := scanner.Scan(context.Background()); err == nil {
		t.Fatal("expected an error for a non-directory root")
	}
}

func TestScanRouted(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "data.file", []byte("SQLite format 3\x00rest"))
	writeFile(t, tmpDir, "mystery.blob", []byte{0x99, 0x98})

	registry, err := routing.DefaultRegistry()
	if err != nil {
		t.Fatalf("loading registry: %v", err)
	}

	scanner := New(nil, Config{Root: tmpDir})
	routed, err := scanner.ScanRouted(context.Background(), routing.NewPolicy(registry))
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(routed) != 2 {
		t.Fatalf("expected 2 results, got %d", len(routed))
	}

	for _, rr := range routed {
		if rr.Decision == nil {
			t.Fatalf("expected a decision for %s", rr.Identification.Metadata.Name)
		}
		switch rr.Identification.Metadata.Name {
		case "data.file":
			if rr.Decision.Decision != types.DecisionGenericTool {
				t.Errorf("expected use_generic_tool for sqlite, got %s", rr.Decision.Decision)
			}
		case "mystery.blob":
			if rr.Decision.Decision != types.DecisionUnknownFormat {
				t.Errorf("expected unknown_format, got %s", rr.Decision.Decision)
			}
		}
	}
}
