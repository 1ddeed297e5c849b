// Command codextract is a thin CLI/MCP front end over the extract library:
// it dispatches one or more files to the registered language extractors
// and prints their ParsedItems, or serves the same capability as a single
// MCP tool over stdio. An indexing/navigation layer built on top of a
// parser (symbol tables, find-references, write-definition) is out of
// scope here; this binary exists only to exercise the library end-to-end.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type loggerKey struct{}

// loggerFrom retrieves the SugaredLogger main wired into ctx. Commands
// never hold a package-level logger; they read it off the context they're
// handed, which main constructs once and every other caller inherits.
func loggerFrom(ctx context.Context) *zap.SugaredLogger {
	l, _ := ctx.Value(loggerKey{}).(*zap.SugaredLogger)
	if l == nil {
		return zap.NewNop().Sugar()
	}
	return l
}

var (
	languageFlag string
	formatFlag   string
	prettyFlag   bool
)

var rootCmd = &cobra.Command{
	Use:   "codextract",
	Short: "Multi-language source-code symbol extractor",
	Long: `codextract parses source files with tree-sitter grammars (and, for
formats with no grammar, a hand-rolled scanner) and prints the stable,
typed sequence of symbols each one contains.`,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(languagesCmd)
	rootCmd.AddCommand(mcpCmd)

	extractCmd.Flags().StringVar(&languageFlag, "language", "", "explicit language tag (overrides file extension detection)")
	extractCmd.Flags().StringVar(&formatFlag, "format", "text", "output format: text or json")
	extractCmd.Flags().BoolVar(&prettyFlag, "pretty", false, "indent JSON output (only applies to --format json)")
	extractCmd.Flags().BoolVar(&recursiveFlag, "recursive", false, "walk directory arguments, skipping hidden and vendor directories")
}

func main() {
	z, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: creating logger: %v\n", err)
		os.Exit(1)
	}
	defer z.Sync()
	logger := z.Sugar()

	ctx := context.WithValue(context.Background(), loggerKey{}, logger)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Errorw("command failed", "error", err)
		os.Exit(1)
	}
}
