package sniff

import (
	"archive/zip"
	"time"

	"github.com/bodgit/sevenzip"
)

// ContainerLister lists the entry names of an archive container. The
// interface is deliberately narrow so the backing archive library can be
// swapped without touching detection logic.
type ContainerLister interface {
	List(path string) ([]string, error)
}

// ZipLister lists entries of zip containers via archive/zip.
type ZipLister struct{}

func (ZipLister) List(path string) ([]string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	names := make([]string, 0, len(r.File))
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	return names, nil
}

// SevenZipLister lists entries of 7z containers.
type SevenZipLister struct{}

func (SevenZipLister) List(path string) ([]string, error) {
	r, err := sevenzip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	names := make([]string, 0, len(r.File))
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	return names, nil
}

// ContainerMatch is a container-derived identification.
type ContainerMatch struct {
	FileType string
	Handler  string
}

// ooxmlMarker maps a marker entry inside a zip container to an OOXML
// subtype. Checked in declaration order.
type ooxmlMarker struct {
	entry    string
	fileType string
	handler  string
}

var ooxmlMarkers = []ooxmlMarker{
	{"word/document.xml", "docx", "extractor-docx"},
	{"ppt/presentation.xml", "pptx", "extractor-pptx"},
	{"xl/workbook.xml", "xlsx", "db-extractor-xlsx"},
}

// DefaultInspectTimeout bounds a single container inspection. Corrupt or
// adversarial archives must not hang identification.
const DefaultInspectTimeout = 5 * time.Second

// Inspector disambiguates OOXML subtypes from generic zip containers by
// looking for marker entries in the archive's entry list.
type Inspector struct {
	lister  ContainerLister
	timeout time.Duration
}

// NewInspector builds an inspector over the given lister. A zero timeout
// uses DefaultInspectTimeout.
func NewInspector(lister ContainerLister, timeout time.Duration) *Inspector {
	if lister == nil {
		lister = ZipLister{}
	}
	if timeout <= 0 {
		timeout = DefaultInspectTimeout
	}
	return &Inspector{lister: lister, timeout: timeout}
}

// Inspect opens path as a container and returns the OOXML subtype indicated
// by its entries, or nil when no marker is present. Failures are soft: an
// unreadable or corrupt archive, or an inspection that exceeds the time
// budget, is reported as "no container marker found".
func (i *Inspector) Inspect(path string) *ContainerMatch {
	type listing struct {
		names []string
		err   error
	}
	ch := make(chan listing, 1)
	go func() {
		names, err := i.lister.List(path)
		ch <- listing{names, err}
	}()

	timer := time.NewTimer(i.timeout)
	defer timer.Stop()

	select {
	case l := <-ch:
		if l.err != nil {
			return nil
		}
		present := make(map[string]bool, len(l.names))
		for _, n := range l.names {
			present[n] = true
		}
		for _, m := range ooxmlMarkers {
			if present[m.entry] {
				return &ContainerMatch{FileType: m.fileType, Handler: m.handler}
			}
		}
		return nil
	case <-timer.C:
		return nil
	}
}
