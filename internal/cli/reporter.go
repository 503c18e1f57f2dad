package cli

import (
	"fmt"
	"io"
	"sync"
)

// Reporter prints per-file progress for batch operations.
// Lines from concurrent workers are serialized and never interleave.
type Reporter struct {
	mu    sync.Mutex
	out   io.Writer
	quiet bool
}

// NewReporter creates a new CLI progress reporter.
// If quiet is true, only errors are printed.
func NewReporter(out io.Writer, quiet bool) *Reporter {
	return &Reporter{
		out:   out,
		quiet: quiet,
	}
}

// For returns a vault.ProgressReporter that prefixes every line with name.
func (r *Reporter) For(name string) *FileReporter {
	return &FileReporter{parent: r, name: name}
}

// PrintError prints an error message.
func (r *Reporter) PrintError(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, "Error: "+format+"\n", args...)
}

// PrintSuccess prints a success message.
func (r *Reporter) PrintSuccess(format string, args ...any) {
	if r.quiet {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, format+"\n", args...)
}

// FileReporter reports the progress of a single file.
type FileReporter struct {
	parent *Reporter
	name   string

	mu   sync.Mutex
	info string
}

// SetStatus prints the new status of the file.
func (f *FileReporter) SetStatus(text string) {
	f.mu.Lock()
	info := f.info
	f.mu.Unlock()

	if info != "" {
		f.parent.PrintSuccess("%s: %s (%s)", f.name, text, info)
	} else {
		f.parent.PrintSuccess("%s: %s", f.name, text)
	}
}

// SetProgress records the info text shown with the next status line.
func (f *FileReporter) SetProgress(fraction float32, info string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.info = info
}
