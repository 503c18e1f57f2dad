package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"ImageVault/internal/config"
	"ImageVault/internal/errors"
	"ImageVault/internal/log"

	"golang.org/x/sync/errgroup"
)

// fileFunc processes one input and returns the path it wrote.
type fileFunc func(ctx context.Context, input string) (string, error)

// runBatch runs fn over inputs with at most workers in flight. A failing
// file is reported and does not stop the others.
func runBatch(ctx context.Context, inputs []string, workers int, rep *Reporter, fn fileFunc) error {
	if workers < 1 || workers > config.MaxWorkers {
		return errors.NewValidationError("workers", fmt.Sprintf("must be between 1 and %d, got %d", config.MaxWorkers, workers))
	}

	var g errgroup.Group
	g.SetLimit(workers)

	var failed atomic.Int32
	for _, input := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				failed.Add(1)
				return nil
			}
			out, err := fn(ctx, input)
			if err != nil {
				failed.Add(1)
				rep.PrintError("%s: %s", input, errors.UserMessage(errors.Public(err)))
				return nil
			}
			rep.PrintSuccess("%s -> %s", input, out)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrCancelled, err)
	}
	if n := failed.Load(); n > 0 {
		log.Warn("Batch finished with failures", log.Int("failed", int(n)), log.Int("total", len(inputs)))
		return fmt.Errorf("%d of %d files failed", n, len(inputs))
	}
	return nil
}

// outputSet records the outputs claimed within one batch so that no two
// inputs ever write the same file.
type outputSet struct {
	mu     sync.Mutex
	owners map[string]string
}

func newOutputSet() *outputSet {
	return &outputSet{owners: make(map[string]string)}
}

// claim reserves output for input. A second claim on the same file fails.
func (s *outputSet) claim(output, input string) error {
	key := pathKey(output)
	s.mu.Lock()
	defer s.mu.Unlock()
	if owner, ok := s.owners[key]; ok {
		return errors.NewValidationError("output", fmt.Sprintf("%s is also the output of %s", output, owner))
	}
	s.owners[key] = input
	return nil
}

// pathKey normalizes path for comparison, folding case where the usual
// filesystems are case-insensitive.
func pathKey(path string) string {
	key := filepath.Clean(path)
	if abs, err := filepath.Abs(key); err == nil {
		key = abs
	}
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		key = strings.ToLower(key)
	}
	return key
}

// expandInputs resolves glob patterns and walks directories into a flat list
// of regular files. A file reached twice is listed once.
func expandInputs(patterns []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	add := func(path string) {
		if key := pathKey(path); !seen[key] {
			seen[key] = true
			files = append(files, path)
		}
	}
	for _, input := range patterns {
		// Expand glob patterns
		matches, err := filepath.Glob(input)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", input, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("input file not found: %s", input)
		}

		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil {
				return nil, fmt.Errorf("cannot access %s: %w", match, err)
			}
			if !info.IsDir() {
				add(match)
				continue
			}
			// Walk directory to get all files
			err = filepath.Walk(match, func(path string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if info.Mode().IsRegular() {
					add(path)
				}
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("walking directory %s: %w", match, err)
			}
		}
	}
	if len(files) == 0 {
		return nil, errors.ErrNoInput
	}
	return files, nil
}
