package docparse

import (
	"regexp"
	"strings"

	"github.com/roveo/codextract/model"
)

// headerAliases maps every recognized section header spelling, lowercased,
// to its canonical model.Section* name: Rust's
// Errors/Panics/Safety/Examples, Python Google/NumPy-style
// Args/Arguments/Parameters/Returns/Raises/Yields/Note(s)/See Also, JSDoc's
// @param/@returns/@throws/@example, and Markdown-flavored "##" headings
// that happen to spell one of the above.
var headerAliases = map[string]string{
	"errors":     model.SectionErrors,
	"panics":     model.SectionPanics,
	"safety":     model.SectionSafety,
	"examples":   model.SectionExamples,
	"example":    model.SectionExamples,
	"args":       model.SectionArgs,
	"arguments":  model.SectionArgs,
	"parameters": model.SectionArgs,
	"@param":     model.SectionArgs,
	"returns":    model.SectionReturns,
	"return":     model.SectionReturns,
	"@returns":   model.SectionReturns,
	"@return":    model.SectionReturns,
	"raises":     model.SectionRaises,
	"raise":      model.SectionRaises,
	"throws":     model.SectionRaises,
	"@throws":    model.SectionRaises,
	"@throw":     model.SectionRaises,
	"exceptions": model.SectionRaises,
	"yields":     model.SectionYields,
	"yield":      model.SectionYields,
	"see also":   model.SectionSeeAlso,
	"seealso":    model.SectionSeeAlso,
	"note":       model.SectionNotes,
	"notes":      model.SectionNotes,
	"deprecated": model.SectionDeprecated,
}

// headerLine matches a recognized header on its own line: a bare word
// (optionally followed by a trailing colon), a "## Heading" Markdown
// heading, or an "@tag" JSDoc annotation possibly followed by more text on
// the same line (the rest of that line becomes the first item's content).
var headerLine = regexp.MustCompile(`(?i)^\s*(#{1,6}\s*)?(@[a-z]+|[a-z][a-z ]*[a-z])\s*:?\s*(.*)$`)

// itemLine matches a parameter/exception-keyed line: a leading identifier
// (or JSDoc "{type} name") followed by a colon or dash and a description.
var itemLine = regexp.MustCompile(`^\s*(?:\{[^}]*\}\s*)?([A-Za-z_][A-Za-z0-9_]*)\s*[:\-]\s+(.*)$`)

// ParseSections scans an already-collected doc Block for recognized
// section headers and splits the remainder into model.DocSections. Text
// preceding the first recognized header is not part of any section; a
// caller that wants the free-text preamble should take the original
// doc_comment field, not doc_sections.
func ParseSections(text string) model.DocSections {
	lines := strings.Split(text, "\n")
	sections := model.DocSections{}

	var currentKey string
	var currentLines []string

	flush := func() {
		if currentKey == "" {
			return
		}
		body := strings.TrimSpace(strings.Join(currentLines, "\n"))
		sections[currentKey] = buildSection(body)
	}

	for _, line := range lines {
		if key, rest, ok := matchHeader(line); ok {
			flush()
			currentKey = key
			currentLines = nil
			if strings.TrimSpace(rest) != "" {
				currentLines = append(currentLines, rest)
			}
			continue
		}
		if currentKey != "" {
			currentLines = append(currentLines, line)
		}
	}
	flush()

	return sections
}

func matchHeader(line string) (key, rest string, ok bool) {
	m := headerLine.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	candidate := strings.ToLower(strings.TrimSpace(m[2]))
	canonical, known := headerAliases[candidate]
	if !known {
		return "", "", false
	}
	// A bare word header ("Returns") must own its whole line; a "##"
	// heading or "@tag" form may carry trailing content on the same line.
	if m[1] == "" && !strings.HasPrefix(candidate, "@") && strings.TrimSpace(m[3]) != "" {
		return "", "", false
	}
	return canonical, m[3], true
}

// buildSection decides whether a section's body is parameter-keyed (each
// line starts "name: description") and, if so, also produces the Items
// sub-map alongside the flat Text.
func buildSection(body string) model.DocSection {
	if body == "" {
		return model.DocSection{}
	}

	lines := strings.Split(body, "\n")
	items := map[string]string{}
	keyed := true
	var order []string

	var currentName string
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if m := itemLine.FindStringSubmatch(line); m != nil {
			currentName = m[1]
			items[currentName] = m[2]
			order = append(order, currentName)
			continue
		}
		if currentName != "" && (strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")) {
			items[currentName] = strings.TrimSpace(items[currentName] + " " + strings.TrimSpace(line))
			continue
		}
		keyed = false
		break
	}

	if keyed && len(items) > 0 {
		return model.DocSection{Text: body, Items: items}
	}
	return model.DocSection{Text: body}
}
