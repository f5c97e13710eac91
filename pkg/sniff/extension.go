package sniff

import (
	"path/filepath"
	"strings"
)

// ExtensionRule maps a normalized file extension to a type and handler.
type ExtensionRule struct {
	Extension string // lower-cased, leading dot, may be compound (".tar.gz")
	FileType  string
	Handler   string
}

// ExtensionTable resolves file names to types when signature matching is
// inconclusive. Compound extensions are checked before their single-segment
// suffix (".tar.gz" before ".gz"), otherwise detection is wrong.
type ExtensionTable struct {
	compound []ExtensionRule
	plain    map[string]ExtensionRule
}

// NewExtensionTable builds a table from rules. Rules with more than one dot
// are treated as compound and matched by suffix, in the given order.
func NewExtensionTable(rules []ExtensionRule) *ExtensionTable {
	t := &ExtensionTable{plain: make(map[string]ExtensionRule)}
	for _, r := range rules {
		if strings.Count(r.Extension, ".") > 1 {
			t.compound = append(t.compound, r)
		} else {
			t.plain[r.Extension] = r
		}
	}
	return t
}

// Match resolves a file name (or path) to an extension rule, or nil if the
// extension is not recognized. Matching is case-insensitive.
func (t *ExtensionTable) Match(name string) *ExtensionRule {
	base := strings.ToLower(filepath.Base(name))
	for i := range t.compound {
		if strings.HasSuffix(base, t.compound[i].Extension) {
			return &t.compound[i]
		}
	}
	if r, ok := t.plain[filepath.Ext(base)]; ok {
		return &r
	}
	return nil
}

// Rules returns all rules, compound first.
func (t *ExtensionTable) Rules() []ExtensionRule {
	out := make([]ExtensionRule, 0, len(t.compound)+len(t.plain))
	out = append(out, t.compound...)
	for _, r := range t.plain {
		out = append(out, r)
	}
	return out
}

// DefaultExtensions is the built-in extension fallback mapping.
var DefaultExtensions = []ExtensionRule{
	// Compound archive extensions, before their plain suffixes.
	{".tar.gz", "tar.gz", "archive-extractor"},
	{".tar.bz2", "tar.bz2", "archive-extractor"},
	{".tar.xz", "tar.xz", "archive-extractor"},

	// Documents
	{".pdf", "pdf", "extractor-pdf"},
	{".docx", "docx", "extractor-docx"},
	{".doc", "doc", "extractor-docx"},
	{".pptx", "pptx", "extractor-pptx"},
	{".ppt", "ppt", "extractor-pptx"},
	{".xlsx", "xlsx", "db-extractor-xlsx"},
	{".xls", "xls", "db-extractor-xlsx"},

	// Databases
	{".db", "sqlite", "db-extractor-sqlite"},
	{".sqlite", "sqlite", "db-extractor-sqlite"},
	{".sqlite3", "sqlite", "db-extractor-sqlite"},
	{".mdb", "access", "db-identify"},
	{".accdb", "access", "db-identify"},

	// HTML
	{".html", "html", "extractor-html"},
	{".htm", "html", "extractor-html"},
	{".xhtml", "html", "extractor-html"},

	// Images
	{".png", "png", "extractor-image"},
	{".jpg", "jpeg", "extractor-image"},
	{".jpeg", "jpeg", "extractor-image"},
	{".gif", "gif", "extractor-image"},
	{".bmp", "bmp", "extractor-image"},
	{".tiff", "tiff", "extractor-image"},
	{".tif", "tiff", "extractor-image"},

	// Archives
	{".zip", "zip", "archive-extractor"},
	{".rar", "rar", "archive-extractor"},
	{".7z", "7z", "archive-extractor"},
	{".tar", "tar", "archive-extractor"},
	{".gz", "gzip", "archive-extractor"},
	{".tgz", "tar.gz", "archive-extractor"},

	// Text and data, already readable
	{".txt", "text", "passthrough"},
	{".md", "markdown", "passthrough"},
	{".csv", "csv", "passthrough"},
	{".json", "json", "passthrough"},
	{".xml", "xml", "passthrough"},
	{".yaml", "yaml", "passthrough"},
	{".yml", "yaml", "passthrough"},
	{".srt", "srt", "passthrough"},
	{".vtt", "vtt", "passthrough"},

	// Source code, already readable
	{".ts", "typescript", "passthrough"},
	{".tsx", "typescript", "passthrough"},
	{".js", "javascript", "passthrough"},
	{".jsx", "javascript", "passthrough"},
	{".py", "python", "passthrough"},
	{".java", "java", "passthrough"},
	{".c", "c", "passthrough"},
	{".cpp", "cpp", "passthrough"},
	{".h", "c-header", "passthrough"},
	{".hpp", "cpp-header", "passthrough"},
	{".cs", "csharp", "passthrough"},
	{".go", "go", "passthrough"},
	{".rs", "rust", "passthrough"},
	{".rb", "ruby", "passthrough"},
	{".php", "php", "passthrough"},
	{".swift", "swift", "passthrough"},
	{".kt", "kotlin", "passthrough"},
	{".sql", "sql", "passthrough"},
	{".sh", "shell", "passthrough"},
	{".bash", "shell", "passthrough"},
	{".ps1", "powershell", "passthrough"},
	{".bat", "batch", "passthrough"},
	{".cmd", "batch", "passthrough"},

	// Media, excluded from extraction
	{".mp4", "video", "skip"},
	{".mkv", "video", "skip"},
	{".avi", "video", "skip"},
	{".mov", "video", "skip"},
	{".wmv", "video", "skip"},
	{".flv", "video", "skip"},
	{".webm", "video", "skip"},
	{".mp3", "audio", "skip"},
	{".wav", "audio", "skip"},
	{".flac", "audio", "skip"},
	{".aac", "audio", "skip"},
	{".ogg", "audio", "skip"},
	{".wma", "audio", "skip"},
	{".m4a", "audio", "skip"},
}
