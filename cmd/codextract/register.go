package main

// Blank-importing every extract/<language> subpackage runs each one's
// init(), which registers it with the extract package's global registry.
// Any extractor left out here is simply invisible to Dispatch/DispatchLanguage
// at runtime, not a compile error — so this list is the single place that
// must be kept in sync with the set of supported languages.
import (
	_ "github.com/roveo/codextract/extract/bash"
	_ "github.com/roveo/codextract/extract/c"
	_ "github.com/roveo/codextract/extract/cpp"
	_ "github.com/roveo/codextract/extract/csharp"
	_ "github.com/roveo/codextract/extract/elixir"
	_ "github.com/roveo/codextract/extract/golang"
	_ "github.com/roveo/codextract/extract/haskell"
	_ "github.com/roveo/codextract/extract/java"
	_ "github.com/roveo/codextract/extract/lua"
	_ "github.com/roveo/codextract/extract/php"
	_ "github.com/roveo/codextract/extract/python"
	_ "github.com/roveo/codextract/extract/rst"
	_ "github.com/roveo/codextract/extract/ruby"
	_ "github.com/roveo/codextract/extract/rust"
	_ "github.com/roveo/codextract/extract/svelte"
	_ "github.com/roveo/codextract/extract/typescript"
)
