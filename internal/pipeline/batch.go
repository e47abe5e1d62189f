package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/claims-triage/internal/types"
)

// DefaultBatchWorkers bounds concurrent document runs in batch mode.
const DefaultBatchWorkers = 4

// BatchResult pairs one document with its decision. Err is set only for
// load failures, mirroring Run.
type BatchResult struct {
	Path     string
	Decision *types.Decision
	Err      error
}

// documentExtensions are the file types picked up from a batch directory.
var documentExtensions = map[string]bool{
	".txt": true,
	".md":  true,
	".pdf": true,
}

// RunBatch triages every recognized document in a directory. Runs execute
// concurrently up to the worker limit; the shared schema and bound ruleset
// are read-only, and each run owns its record and decision. Results come
// back in path order.
func (a *Agent) RunBatch(ctx context.Context, dir string, workers int, onProgress ProgressCallback) ([]BatchResult, error) {
	if workers <= 0 {
		workers = DefaultBatchWorkers
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if documentExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)
	if len(paths) == 0 {
		return nil, fmt.Errorf("no documents found in %s", dir)
	}

	results := make([]BatchResult, len(paths))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			decision, runErr := a.Run(gctx, RunOptions{Path: path, OnProgress: onProgress})
			mu.Lock()
			results[i] = BatchResult{Path: path, Decision: decision, Err: runErr}
			mu.Unlock()
			// Load failures are recorded per document, not batch-fatal.
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
