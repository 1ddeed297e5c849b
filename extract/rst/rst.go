// Package rst extracts ParsedItems from reStructuredText documents using a
// hand-rolled line scanner: like Haskell, no tree-sitter grammar is wired
// for this format, so the scanning follows the same layout-driven style as
// the markdown extractor it was grounded on (title/underline detection,
// line-oriented dispatch), extended to cover RST's explicit markup blocks
// like hyperlink targets, footnotes, directives, and inline roles.
package rst

import (
	"context"
	"regexp"
	"strings"

	"github.com/roveo/codextract/extract"
	"github.com/roveo/codextract/model"
)

func init() {
	extract.Register(&Extractor{})
}

// Extractor implements extract.Extractor for reStructuredText documents.
type Extractor struct{}

func (Extractor) Language() string     { return "rst" }
func (Extractor) Extensions() []string { return []string{".rst"} }

func (Extractor) Extract(ctx context.Context, path string, content []byte) ([]model.ParsedItem, error) {
	lines := strings.Split(string(content), "\n")
	s := &scanner{path: path, lines: lines}
	s.scanSections()
	s.scanExplicitMarkup()
	s.scanInlineRoles()
	return s.items, nil
}

type scanner struct {
	path  string
	lines []string
	items []model.ParsedItem
}

func (s *scanner) builder() *model.Builder {
	return model.NewBuilder(s.path, "rst")
}

var sectionPunct = "=-~^\"'`:.,_*+#!$%&()[]{}<>/\\|@"

// isUnderline reports whether a trimmed line consists of 2+ repeats of one
// punctuation rune from docutils' allowed section-adornment set.
func isUnderline(line string) (rune, bool) {
	t := strings.TrimRight(line, " \t")
	if len(t) < 2 || !strings.ContainsRune(sectionPunct, rune(t[0])) {
		return 0, false
	}
	first := rune(t[0])
	for _, r := range t {
		if r != first {
			return 0, false
		}
	}
	return first, true
}

type heading struct {
	line, level int
	text        string
}

// scanSections finds title+underline (and optional overline) pairs and
// assigns nesting levels by the order each adornment character is first
// used, per docutils' convention that a document need not use a fixed
// "# for level 1, = for level 2" scheme.
func (s *scanner) scanSections() {
	levelOf := map[rune]int{}
	next := 1

	var headings []heading
	i := 0
	for i < len(s.lines) {
		ch, ok := isUnderline(s.lines[i])
		if !ok {
			i++
			continue
		}
		// overline form: adornment, title, matching adornment
		if i+2 < len(s.lines) {
			if ch2, ok2 := isUnderline(s.lines[i+2]); ok2 && ch2 == ch && strings.TrimSpace(s.lines[i+1]) != "" {
				text := strings.TrimSpace(s.lines[i+1])
				headings = append(headings, heading{line: i, level: levelFor(ch, levelOf, &next), text: text})
				i += 3
				continue
			}
		}
		// underline-only form: title line directly above
		if i > 0 && strings.TrimSpace(s.lines[i-1]) != "" {
			_, prevIsUnderline := isUnderline(s.lines[i-1])
			if !prevIsUnderline && len(strings.TrimRight(s.lines[i], " \t")) >= len(strings.TrimSpace(s.lines[i-1])) {
				text := strings.TrimSpace(s.lines[i-1])
				headings = append(headings, heading{line: i - 1, level: levelFor(ch, levelOf, &next), text: text})
			}
		}
		i++
	}

	for idx, h := range headings {
		end := len(s.lines) - 1
		for j := idx + 1; j < len(headings); j++ {
			if headings[j].level <= h.level {
				end = headings[j].line - 1
				break
			}
		}
		r := model.Range{
			Start: model.Position{Line: h.line + 1},
			End:   model.Position{Line: end + 1},
		}
		item := s.builder().
			Kind(model.KindSection).
			Name(h.text).
			QualifiedName(h.text).
			Range(r).
			Visibility(model.Unspecified).
			Metadata(model.RSTMetadata{Level: h.level}).
			Build()
		s.items = append(s.items, item)
	}
}

func levelFor(ch rune, levelOf map[rune]int, next *int) int {
	if lvl, ok := levelOf[ch]; ok {
		return lvl
	}
	levelOf[ch] = *next
	*next++
	return levelOf[ch]
}

var (
	reTarget       = regexp.MustCompile(`^\.\.\s+_([^:]+):\s*(.*)$`)
	reFootnoteOrCitation = regexp.MustCompile(`^\.\.\s+\[([^\]]+)\]\s*(.*)$`)
	reSubstitution = regexp.MustCompile(`^\.\.\s+\|([^|]+)\|\s+([A-Za-z][\w-]*)::\s*(.*)$`)
	reDirective    = regexp.MustCompile(`^\.\.\s+([A-Za-z][\w-]*)::\s*(.*)$`)
	reRoleArg      = regexp.MustCompile(`^([A-Za-z][\w-]*)\s*(?:\(([A-Za-z][\w-]*)\))?$`)
	reFootnoteNum  = regexp.MustCompile(`^(\d+|#[\w-]*|\*)$`)
)

// scanExplicitMarkup finds every ".. " explicit-markup block: directives,
// hyperlink targets, footnotes, citations, and substitution definitions.
// Each block's range extends through any following more-indented lines
// (its body/options), matching docutils' block structure.
func (s *scanner) scanExplicitMarkup() {
	for i := 0; i < len(s.lines); i++ {
		line := s.lines[i]
		trimmed := strings.TrimLeft(line, " ")
		if !strings.HasPrefix(trimmed, "..") {
			continue
		}
		indent := len(line) - len(trimmed)
		end := i
		for end+1 < len(s.lines) {
			next := s.lines[end+1]
			if strings.TrimSpace(next) == "" {
				if end+2 < len(s.lines) && blockIndent(s.lines[end+2]) > indent {
					end++
					continue
				}
				break
			}
			if blockIndent(next) <= indent {
				break
			}
			end++
		}
		r := model.Range{Start: model.Position{Line: i + 1}, End: model.Position{Line: end + 1}}

		switch {
		case reTarget.MatchString(trimmed):
			s.extractTarget(trimmed, r)
		case reFootnoteOrCitation.MatchString(trimmed):
			s.extractFootnoteOrCitation(trimmed, r)
		case reSubstitution.MatchString(trimmed):
			s.extractSubstitution(trimmed, r)
		case reDirective.MatchString(trimmed):
			s.extractDirective(trimmed, r)
		}
		i = end
	}
}

func blockIndent(line string) int {
	if strings.TrimSpace(line) == "" {
		return -1
	}
	return len(line) - len(strings.TrimLeft(line, " "))
}

func (s *scanner) extractTarget(line string, r model.Range) {
	m := reTarget.FindStringSubmatch(line)
	if m == nil {
		return
	}
	name := strings.TrimSpace(m[1])
	uri := strings.TrimSpace(m[2])
	item := s.builder().
		Kind(model.KindRSTTarget).
		Name(name).
		QualifiedName(name).
		Signature(strings.TrimSpace(line)).
		Range(r).
		Visibility(model.Unspecified).
		Metadata(model.RSTMetadata{TargetName: name, IsBrokenReference: uri == "" && r.Start.Line == r.End.Line}).
		Build()
	s.items = append(s.items, item)
}

func (s *scanner) extractFootnoteOrCitation(line string, r model.Range) {
	m := reFootnoteOrCitation.FindStringSubmatch(line)
	if m == nil {
		return
	}
	label := strings.TrimSpace(m[1])
	kind := model.KindCitation
	if reFootnoteNum.MatchString(label) {
		kind = model.KindFootnote
	}
	item := s.builder().
		Kind(kind).
		Name(label).
		QualifiedName(label).
		Signature(strings.TrimSpace(line)).
		Range(r).
		Visibility(model.Unspecified).
		Metadata(model.RSTMetadata{}).
		Build()
	s.items = append(s.items, item)
}

func (s *scanner) extractSubstitution(line string, r model.Range) {
	m := reSubstitution.FindStringSubmatch(line)
	if m == nil {
		return
	}
	name := strings.TrimSpace(m[1])
	directive := m[2]
	item := s.builder().
		Kind(model.KindSubstitution).
		Name(name).
		QualifiedName(name).
		Signature(strings.TrimSpace(line)).
		Range(r).
		Visibility(model.Unspecified).
		Metadata(model.RSTMetadata{DirectiveName: directive}).
		Build()
	s.items = append(s.items, item)
}

func (s *scanner) extractDirective(line string, r model.Range) {
	m := reDirective.FindStringSubmatch(line)
	if m == nil {
		return
	}
	name := m[1]
	arg := strings.TrimSpace(m[2])
	meta := model.RSTMetadata{DirectiveName: name}

	displayName := arg
	if name == "role" {
		if rm := reRoleArg.FindStringSubmatch(arg); rm != nil {
			meta.RoleName = rm[1]
			displayName = rm[1]
		}
	}
	if displayName == "" {
		displayName = name
	}
	item := s.builder().
		Kind(model.KindDirective).
		Name(displayName).
		QualifiedName(displayName).
		Signature(strings.TrimSpace(line)).
		Range(r).
		Visibility(model.Unspecified).
		Metadata(meta).
		Build()
	s.items = append(s.items, item)
}

var reInlineRole = regexp.MustCompile(":([A-Za-z][\\w-]*):`([^`]+)`")

// scanInlineRoles finds ":rolename:`content`" interpreted-text usages in
// ordinary paragraph lines (skipping explicit markup lines, which were
// already handled by scanExplicitMarkup).
func (s *scanner) scanInlineRoles() {
	for i, line := range s.lines {
		trimmed := strings.TrimLeft(line, " ")
		if strings.HasPrefix(trimmed, "..") {
			continue
		}
		matches := reInlineRole.FindAllStringSubmatchIndex(line, -1)
		for _, idx := range matches {
			role := line[idx[2]:idx[3]]
			text := line[idx[4]:idx[5]]
			r := model.Range{
				Start: model.Position{Line: i + 1, Column: idx[0]},
				End:   model.Position{Line: i + 1, Column: idx[1]},
			}
			item := s.builder().
				Kind(model.KindRole).
				Name(role).
				QualifiedName(role).
				Signature(":" + role + ":`" + text + "`").
				Range(r).
				Visibility(model.Unspecified).
				Metadata(model.RSTMetadata{RoleName: role}).
				Build()
			s.items = append(s.items, item)
		}
	}
}
