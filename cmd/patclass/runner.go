package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/funvibe/patclass/internal/analyzer"
	"github.com/funvibe/patclass/internal/config"
	"github.com/funvibe/patclass/internal/diagnostics"
	"github.com/funvibe/patclass/internal/parser"
	"github.com/funvibe/patclass/internal/pipeline"
	"github.com/funvibe/patclass/internal/prettyprinter"
)

const (
	colorRed    = "\x1b[31m"
	colorYellow = "\x1b[33m"
	colorReset  = "\x1b[0m"
)

// watchDebounce collapses the burst of events an editor save produces.
const watchDebounce = 150 * time.Millisecond

type runner struct {
	out    io.Writer
	errOut io.Writer
	flags  checkFlags
	color  bool
	logger *slog.Logger
}

// isProblemFile checks if a file has a recognized problem file extension
func isProblemFile(path string) bool {
	for _, ext := range config.ProblemFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// collectFiles expands directories into the problem files below them.
// Files named explicitly are kept whatever their extension.
func collectFiles(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && isProblemFile(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

func (r *runner) checkFile(path string) *pipeline.PipelineContext {
	ctx := &pipeline.PipelineContext{
		FilePath: path,
		Fuel:     r.flags.fuel,
		Verify:   r.flags.verify,
		Logger:   r.logger,
	}
	p := pipeline.New(&parser.LoaderProcessor{}, &parser.ParserProcessor{}, &analyzer.AnalyzerProcessor{})
	return p.Run(ctx)
}

// run checks every file once and reports whether any had errors.
func (r *runner) run(paths []string) (bool, error) {
	files, err := collectFiles(paths)
	if err != nil {
		return false, err
	}
	failed := false
	for _, file := range files {
		ctx := r.checkFile(file)
		r.logger.Debug("checked file", "file", file, "definitions", len(ctx.Checks), "diagnostics", len(ctx.Errors))

		if (r.flags.report || r.flags.tree) && len(ctx.Checks) > 0 {
			p := prettyprinter.NewReportPrinter()
			p.PrintChecks(ctx.Checks, r.flags.tree)
			fmt.Fprint(r.out, p.String())
		}

		diagnostics.Sort(ctx.Errors)
		for _, d := range ctx.Errors {
			fmt.Fprintln(r.errOut, r.paint(d))
		}
		if diagnostics.HasErrors(ctx.Errors) {
			failed = true
		}
	}
	return failed, nil
}

func (r *runner) paint(d *diagnostics.DiagnosticError) string {
	if !r.color {
		return d.Error()
	}
	if d.IsWarning() {
		return colorYellow + d.Error() + colorReset
	}
	return colorRed + d.Error() + colorReset
}

// watch checks paths once, then again after every change to a problem
// file in the watched directories, until ctx is cancelled.
func (r *runner) watch(ctx context.Context, paths []string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	for _, p := range paths {
		dir := p
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			dir = filepath.Dir(p)
		}
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	if _, err := r.run(paths); err != nil {
		fmt.Fprintln(r.errOut, err)
	}

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !isProblemFile(ev.Name) || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			r.logger.Debug("file changed", "file", ev.Name, "op", ev.Op.String())
			debounce = time.After(watchDebounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(r.errOut, "watch error: %v\n", err)
		case <-debounce:
			debounce = nil
			fmt.Fprintf(r.out, "--- %s\n", time.Now().Format(time.TimeOnly))
			if _, err := r.run(paths); err != nil {
				fmt.Fprintln(r.errOut, err)
			}
		}
	}
}
