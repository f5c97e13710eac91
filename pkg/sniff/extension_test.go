package sniff

import "testing"

func TestExtensionTableMatch(t *testing.T) {
	table := NewExtensionTable(DefaultExtensions)

	tests := []struct {
		name     string
		fileType string
		handler  string
	}{
		{"report.pdf", "pdf", "extractor-pdf"},
		{"deck.pptx", "pptx", "extractor-pptx"},
		{"data.xlsx", "xlsx", "db-extractor-xlsx"},
		{"course.db", "sqlite", "db-extractor-sqlite"},
		{"notes.md", "markdown", "passthrough"},
		{"main.go", "go", "passthrough"},
		{"movie.mkv", "video", "skip"},
		{"song.mp3", "audio", "skip"},
		{"page.html", "html", "extractor-html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := table.Match(tt.name)
			if rule == nil {
				t.Fatalf("expected match for %s", tt.name)
			}
			if rule.FileType != tt.fileType {
				t.Errorf("expected type %s, got %s", tt.fileType, rule.FileType)
			}
			if rule.Handler != tt.handler {
				t.Errorf("expected handler %s, got %s", tt.handler, rule.Handler)
			}
		})
	}
}

func TestExtensionTableCompoundPrecedence(t *testing.T) {
	table := NewExtensionTable(DefaultExtensions)

	// .tar.gz must resolve before the plain .gz suffix
	rule := table.Match("archive.tar.gz")
	if rule == nil {
		t.Fatal("expected match")
	}
	if rule.FileType != "tar.gz" {
		t.Errorf("expected tar.gz, got %s", rule.FileType)
	}

	rule = table.Match("archive.tar.bz2")
	if rule == nil || rule.FileType != "tar.bz2" {
		t.Fatalf("expected tar.bz2, got %+v", rule)
	}

	rule = table.Match("archive.tar.xz")
	if rule == nil || rule.FileType != "tar.xz" {
		t.Fatalf("expected tar.xz, got %+v", rule)
	}

	// Plain .gz still resolves on its own
	rule = table.Match("single.gz")
	if rule == nil || rule.FileType != "gzip" {
		t.Fatalf("expected gzip, got %+v", rule)
	}
}

func TestExtensionTableCaseInsensitive(t *testing.T) {
	table := NewExtensionTable(DefaultExtensions)

	rule := table.Match("REPORT.PDF")
	if rule == nil || rule.FileType != "pdf" {
		t.Fatalf("expected case-insensitive pdf match, got %+v", rule)
	}

	rule = table.Match("Archive.TAR.GZ")
	if rule == nil || rule.FileType != "tar.gz" {
		t.Fatalf("expected case-insensitive tar.gz match, got %+v", rule)
	}
}

func TestExtensionTableUnknown(t *testing.T) {
	table := NewExtensionTable(DefaultExtensions)

	if rule := table.Match("mystery.xyz123"); rule != nil {
		t.Errorf("expected no match, got %s", rule.FileType)
	}
	if rule := table.Match("no-extension"); rule != nil {
		t.Errorf("expected no match, got %s", rule.FileType)
	}
}

func TestExtensionTableFullPath(t *testing.T) {
	table := NewExtensionTable(DefaultExtensions)

	rule := table.Match("/some/deep/path/archive.tar.gz")
	if rule == nil || rule.FileType != "tar.gz" {
		t.Fatalf("expected tar.gz from full path, got %+v", rule)
	}
}
