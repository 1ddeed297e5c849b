package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/roveo/codextract/extract"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List every registered language and its file extensions",
	RunE: func(cmd *cobra.Command, args []string) error {
		langs := extract.Languages()
		sort.Strings(langs)
		for _, lang := range langs {
			e, ok := extract.ForLanguage(lang)
			if !ok {
				continue
			}
			exts := e.Extensions()
			sort.Strings(exts)
			fmt.Printf("%-12s %v\n", lang, exts)
		}
		return nil
	},
}
