// Package batch applies the detector across a directory tree and
// aggregates per-file results.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
	"golang.org/x/sync/errgroup"

	"github.com/fileroute/fileroute/pkg/routing"
	"github.com/fileroute/fileroute/pkg/sniff"
	"github.com/fileroute/fileroute/pkg/types"
)

// Config for a batch scan.
type Config struct {
	// Root is the directory to scan.
	Root string

	// Recursive descends into subdirectories; otherwise only top-level
	// files are scanned.
	Recursive bool

	// IncludeHidden includes dot-files and dot-directories.
	IncludeHidden bool

	// HonorGitignore skips paths matched by a .gitignore at Root.
	HonorGitignore bool

	// Workers is the identification parallelism (0 = NumCPU).
	Workers int
}

// RoutedResult pairs an identification with its routing decision.
type RoutedResult struct {
	Identification types.IdentificationResult `json:"identification"`
	Decision       *types.RoutingDecision     `json:"decision,omitempty"`
}

// Scanner identifies every regular file under a root directory.
type Scanner struct {
	detector *sniff.Detector
	config   Config
}

// New builds a scanner. A nil detector uses the built-in tables.
func New(detector *sniff.Detector, config Config) *Scanner {
	if detector == nil {
		detector = sniff.NewDetector()
	}
	return &Scanner{detector: detector, config: config}
}

// Scan identifies every regular file under the root and returns one result
// per file, sorted lexicographically by path so successive runs are
// diffable. A file that cannot be identified produces an error entry;
// per-file failures never abort the batch. Only a missing or non-directory
// root is a hard error.
//
// Phase 1 collects eligible paths sequentially; phase 2 identifies them in
// parallel and the results are sorted after collection, not emitted in
// completion order.
func (s *Scanner) Scan(ctx context.Context) ([]types.IdentificationResult, error) {
	files, err := s.collect(ctx)
	if err != nil {
		return nil, err
	}

	workers := s.config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]types.IdentificationResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	indexCh := make(chan int, workers*2)

	g.Go(func() error {
		defer close(indexCh)
		for i := range files {
			select {
			case indexCh <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := range indexCh {
				results[i] = s.detector.Identify(files[i])
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Metadata.Path < results[j].Metadata.Path
	})
	return results, nil
}

// ScanRouted runs Scan and attaches a routing decision to each successful
// identification. Error entries carry no decision.
func (s *Scanner) ScanRouted(ctx context.Context, policy *routing.Policy) ([]RoutedResult, error) {
	results, err := s.Scan(ctx)
	if err != nil {
		return nil, err
	}

	routed := make([]RoutedResult, len(results))
	for i, r := range results {
		routed[i] = RoutedResult{Identification: r}
		if !r.IsError() {
			d := policy.RouteIdentification(r)
			routed[i].Decision = &d
		}
	}
	return routed, nil
}

// collect walks the root and returns eligible file paths.
func (s *Scanner) collect(ctx context.Context) ([]string, error) {
	info, err := os.Stat(s.config.Root)
	if err != nil {
		return nil, fmt.Errorf("invalid directory: %s", s.config.Root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", s.config.Root)
	}

	var ignore *gitignore.GitIgnore
	if s.config.HonorGitignore {
		gitignorePath := filepath.Join(s.config.Root, ".gitignore")
		if _, err := os.Stat(gitignorePath); err == nil {
			ignore, _ = gitignore.CompileIgnoreFile(gitignorePath)
		}
	}

	var files []string
	err = filepath.Walk(s.config.Root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// Unreadable entries become error results rather than aborting
			// the walk.
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if info.IsDir() {
			if path == s.config.Root {
				return nil
			}
			if !s.config.Recursive {
				return filepath.SkipDir
			}
			if !s.config.IncludeHidden && isHidden(info.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if !info.Mode().IsRegular() {
			return nil
		}
		if !s.config.IncludeHidden && isHidden(info.Name()) {
			return nil
		}
		if ignore != nil {
			relPath, err := filepath.Rel(s.config.Root, path)
			if err == nil && ignore.MatchesPath(relPath) {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// isHidden reports whether a name is a dot-file. "." and ".." are not
// considered hidden.
func isHidden(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return strings.HasPrefix(name, ".")
}
