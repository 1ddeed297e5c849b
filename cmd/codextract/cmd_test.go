package main

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"go.uber.org/goleak"

	"github.com/roveo/codextract/extract"
	"github.com/roveo/codextract/model"
)

func TestExpandPathsSingleFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "main.go")
	if err := os.WriteFile(file, []byte("package main\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	paths, err := expandPaths([]string{file})
	if err != nil {
		t.Fatalf("expandPaths failed: %v", err)
	}
	if len(paths) != 1 || paths[0] != file {
		t.Fatalf("expected [%s], got %v", file, paths)
	}
}

func TestExpandPathsDirectoryRequiresRecursiveFlag(t *testing.T) {
	dir := t.TempDir()
	recursiveFlag = false
	_, err := expandPaths([]string{dir})
	if err == nil {
		t.Fatal("expected error for directory argument without --recursive")
	}
}

func TestExpandPathsRecursiveSkipsVendorAndHiddenDirs(t *testing.T) {
	dir := t.TempDir()
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("fixture setup: %v", err)
		}
	}
	must(os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n"), 0o644))
	must(os.Mkdir(filepath.Join(dir, "vendor"), 0o755))
	must(os.WriteFile(filepath.Join(dir, "vendor", "dep.go"), []byte("package vendor\n"), 0o644))
	must(os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	must(os.WriteFile(filepath.Join(dir, ".git", "config.go"), []byte("package git\n"), 0o644))
	must(os.WriteFile(filepath.Join(dir, "README.md"), []byte("# readme\n"), 0o644))

	recursiveFlag = true
	defer func() { recursiveFlag = false }()

	paths, err := expandPaths([]string{dir})
	if err != nil {
		t.Fatalf("expandPaths failed: %v", err)
	}
	sort.Strings(paths)

	want := []string{filepath.Join(dir, "main.go")}
	if len(paths) != len(want) {
		t.Fatalf("expected %v, got %v", want, paths)
	}
	for i, p := range want {
		if paths[i] != p {
			t.Errorf("path %d: expected %s, got %s", i, p, paths[i])
		}
	}
}

func TestRangeLabel(t *testing.T) {
	it := model.NewBuilder("x.go", "go").
		Name("f").
		Range(model.Range{Start: model.Position{Line: 4}, End: model.Position{Line: 9}}).
		Build()
	got := rangeLabel(it)
	if got != "L4-9" {
		t.Errorf("expected L4-9, got %s", got)
	}
}

func TestRenderTextIncludesKindAndName(t *testing.T) {
	it := model.NewBuilder("x.go", "go").
		Kind(model.KindFunction).
		Name("greet").
		QualifiedName("greet").
		Visibility(model.Public).
		Range(model.Range{}).
		Build()

	out := renderText("x.go", []model.ParsedItem{it}, nil)
	if !contains(out, "x.go") || !contains(out, "greet") || !contains(out, "function") {
		t.Errorf("renderText output missing expected fields: %q", out)
	}
}

func contains(haystack, needle string) bool {
	return len(haystack) >= len(needle) && (needle == "" || indexOf(haystack, needle) >= 0)
}

func indexOf(haystack, needle string) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return i
		}
	}
	return -1
}

// TestDispatchConcurrentNoLeak exercises extract.Dispatch from many
// goroutines at once, verifying the registry's RWMutex-guarded lookup
// leaves no goroutine stuck behind once every call returns.
func TestDispatchConcurrentNoLeak(t *testing.T) {
	defer goleak.VerifyNone(t)

	src := []byte("package main\n\nfunc f() {}\n")
	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := extract.Dispatch(context.Background(), "f.go", src); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("Dispatch failed: %v", err)
	}
}
