package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"

	"github.com/roveo/codextract/extract"
	"github.com/roveo/codextract/model"
)

var recursiveFlag bool

// skipDirs names dependency directories a directory walk never descends
// into, in addition to any hidden directory (.git, .svn, ...).
var skipDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
}

var extractCmd = &cobra.Command{
	Use:   "extract <file|dir> [file|dir...]",
	Short: "Extract symbols from one or more source files or directories",
	Long: `extract dispatches each file to the extractor registered for its
extension (or, with --language, an explicit language tag shared by every
file given) and prints the ParsedItems it finds. Any argument that names a
directory is walked with --recursive, skipping hidden and vendor
directories, and every file with a registered extension is extracted.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

// expandPaths resolves the CLI's file/directory arguments into a flat list
// of file paths to extract, walking any directory argument when
// recursiveFlag is set.
func expandPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		if !recursiveFlag {
			return nil, fmt.Errorf("%s is a directory; pass --recursive to walk it", arg)
		}
		err = filepath.WalkDir(arg, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				name := d.Name()
				if path != arg && (strings.HasPrefix(name, ".") || skipDirs[name]) {
					return filepath.SkipDir
				}
				return nil
			}
			if _, ok := extract.ForFile(path); ok {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", arg, err)
		}
	}
	return paths, nil
}

type fileResult struct {
	path  string
	items []model.ParsedItem
	err   error
}

// runExtract fans paths out across a bounded goroutine pool, demonstrating
// that Dispatch/DispatchLanguage are safe to call concurrently from many
// goroutines without the extract package itself importing a concurrency
// library.
func runExtract(cmd *cobra.Command, args []string) error {
	paths, err := expandPaths(args)
	if err != nil {
		return err
	}

	maxGoroutines := runtime.NumCPU()
	if maxGoroutines < 1 {
		maxGoroutines = 1
	}
	p := pool.NewWithResults[fileResult]().WithMaxGoroutines(maxGoroutines)
	ctx := cmd.Context()

	for _, path := range paths {
		path := path
		p.Go(func() fileResult {
			content, err := os.ReadFile(path)
			if err != nil {
				return fileResult{path: path, err: fmt.Errorf("reading %s: %w", path, err)}
			}

			var items []model.ParsedItem
			if languageFlag != "" {
				items, err = extract.DispatchLanguage(ctx, languageFlag, path, content)
			} else {
				items, err = extract.Dispatch(ctx, path, content)
			}
			if err != nil {
				return fileResult{path: path, err: fmt.Errorf("extracting %s: %w", path, err)}
			}
			return fileResult{path: path, items: items}
		})
	}
	results := p.Wait()

	var doc *docRenderer
	if formatFlag == "text" {
		var err error
		doc, err = newDocRenderer()
		if err != nil {
			return err
		}
	}

	logger := loggerFrom(ctx)
	exitErr := false
	for _, res := range results {
		if res.err != nil {
			logger.Errorw("extraction failed", "path", res.path, "error", res.err)
			exitErr = true
			continue
		}
		if err := printResult(res, doc); err != nil {
			return err
		}
	}
	if exitErr {
		return fmt.Errorf("one or more files failed to extract")
	}
	return nil
}

func printResult(res fileResult, doc *docRenderer) error {
	switch formatFlag {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		if prettyFlag {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(struct {
			Path  string             `json:"path"`
			Items []model.ParsedItem `json:"items"`
		}{Path: res.path, Items: res.items})
	default:
		fmt.Print(renderText(res.path, res.items, doc))
		return nil
	}
}
