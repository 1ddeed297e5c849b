// Package haskell extracts ParsedItems from Haskell source using a
// hand-rolled line scanner rather than a tree-sitter grammar: no Haskell
// grammar is wired into parsetree's registry, so this extractor follows the same
// layout-driven scanning style as the markdown extractor it was grounded
// on, adapted for Haskell's declaration forms.
package haskell

import (
	"context"
	"regexp"
	"strings"

	"github.com/roveo/codextract/docparse"
	"github.com/roveo/codextract/extract"
	"github.com/roveo/codextract/model"
)

func init() {
	extract.Register(&Extractor{})
}

// Extractor implements extract.Extractor for Haskell source files.
type Extractor struct{}

func (Extractor) Language() string     { return "haskell" }
func (Extractor) Extensions() []string { return []string{".hs"} }

func (Extractor) Extract(ctx context.Context, path string, content []byte) ([]model.ParsedItem, error) {
	lines := strings.Split(string(content), "\n")
	s := &scanner{path: path, raw: lines, lineByte: lineByteOffsets(lines)}
	s.stripComments()
	s.scan()
	return s.items, nil
}

// lineByteOffsets returns the byte offset of the first byte of each line,
// assuming the original split on "\n" (one byte reinserted per join).
func lineByteOffsets(lines []string) []uint32 {
	offsets := make([]uint32, len(lines))
	var total uint32
	for i, l := range lines {
		offsets[i] = total
		total += uint32(len(l)) + 1
	}
	return offsets
}

type scanner struct {
	path     string
	raw      []string // source lines with block-comment bodies blanked out
	lineByte []uint32 // byte offset of each line's first byte
	doc      []string // pending doc text (Haddock) per line, indexed like raw

	items      []model.ParsedItem
	sigIndex   map[string]pendingSig // name -> not-yet-emitted type signature
	sigOrder   []string              // insertion order of sigIndex, for deterministic fallback emission
	defIndex   map[string]int        // name -> items index, for equation merging
}

// pendingSig holds a type signature seen before any equation for that name;
// it is either consumed by the first matching equation or, if none ever
// appears (e.g. a type class method signature), emitted standalone once
// scanning finishes.
type pendingSig struct {
	typeSig string
	doc     string
	r       model.Range
	used    bool
}

func (s *scanner) builder() *model.Builder {
	return model.NewBuilder(s.path, "haskell")
}

// stripComments blanks out block comment bodies ({- ... -}, which nest in
// Haskell) so declaration scanning never trips over commented-out code,
// while recording {-| ... -} Haddock blocks as pending doc text attached to
// the next declaration line.
func (s *scanner) stripComments() {
	s.doc = make([]string, len(s.raw))
	depth := 0
	var blockDoc []string
	collectingDoc := false

	for i := 0; i < len(s.raw); i++ {
		line := s.raw[i]
		if depth == 0 {
			trimmed := strings.TrimLeft(line, " \t")
			if strings.HasPrefix(trimmed, "{-|") || strings.HasPrefix(trimmed, "{-^") {
				collectingDoc = true
				blockDoc = nil
			}
		}
		if idx := strings.Index(line, "{-"); depth == 0 && idx >= 0 && !strings.Contains(line[:idx], "--") {
			depth++
			if collectingDoc {
				blockDoc = append(blockDoc, line)
			}
			s.raw[i] = line[:idx]
			// same-line close handled below by re-scanning rest of line
			rest := line[idx+2:]
			s.raw[i], rest = consumeBlockComment(s.raw[i], rest, &depth)
			_ = rest
			continue
		}
		if depth > 0 {
			if collectingDoc {
				blockDoc = append(blockDoc, line)
			}
			before := depth
			remainder, newDepth := scanBlockLine(line, depth)
			depth = newDepth
			s.raw[i] = remainder
			if before > 0 && depth == 0 {
				// block closed on this line
				if collectingDoc {
					s.doc[i] = docparse.CollectBlock(strings.Join(blockDoc, "\n"), "{-", "-}").Text
					s.doc[i] = strings.TrimPrefix(strings.TrimPrefix(s.doc[i], "|"), "^")
					s.doc[i] = strings.TrimSpace(s.doc[i])
					collectingDoc = false
				}
			}
			continue
		}
		// strip line comments, but keep "-- |" / "-- ^" haddock lines intact
		// for the doc pass below (handled in logical-line grouping).
		if idx := strings.Index(line, "--"); idx >= 0 {
			// don't treat "-->" style operators inside strings; good enough
			// for a hand-rolled scanner.
			trimmed := strings.TrimLeft(line, " \t")
			if !strings.HasPrefix(trimmed, "--") {
				s.raw[i] = line[:idx]
			}
		}
	}
}

func consumeBlockComment(kept, rest string, depth *int) (string, string) {
	remainder, newDepth := scanBlockLine(rest, *depth)
	*depth = newDepth
	return kept, remainder
}

// scanBlockLine consumes one line's worth of a (possibly nested) block
// comment, returning any trailing code on the line once depth returns to 0.
func scanBlockLine(line string, depth int) (string, int) {
	i := 0
	for i < len(line) {
		if depth == 0 {
			break
		}
		if strings.HasPrefix(line[i:], "{-") {
			depth++
			i += 2
			continue
		}
		if strings.HasPrefix(line[i:], "-}") {
			depth--
			i += 2
			continue
		}
		i++
	}
	if depth == 0 {
		return line[i:], depth
	}
	return "", depth
}

var (
	reSignature = regexp.MustCompile(`^([A-Za-z_][\w']*(?:\s*,\s*[A-Za-z_][\w']*)*|\([^)]+\))\s*::\s*(.+)$`)
	reData      = regexp.MustCompile(`^(data|newtype)\s+([A-Z][\w']*)`)
	reType      = regexp.MustCompile(`^type\s+([A-Z][\w']*)`)
	reClass     = regexp.MustCompile(`^class\s+(.+?)\s+where\s*$`)
	reInstance  = regexp.MustCompile(`^instance\s+(.+?)\s+where\s*$`)
	reForeign   = regexp.MustCompile(`^foreign\s+(import|export)\s+(ccall|stdcall|capi|prim|javascript)?\s*\S*\s*([A-Za-z_][\w']*)\s*::\s*(.+)$`)
	reFixity    = regexp.MustCompile(`^(infixl|infixr|infix)\s+(\d+)\s+(.+)$`)
	reEquation  = regexp.MustCompile(`^([A-Za-z_][\w']*|\([^)]+\))\s+[^=]*=[^=]`)
	reClassName = regexp.MustCompile(`^([A-Z][\w']*)`)
)

// scan groups s.raw into logical top-level statements (a col-0 line plus
// its indented continuation lines) and dispatches each on its leading
// keyword or shape.
func (s *scanner) scan() {
	s.sigIndex = map[string]pendingSig{}
	s.defIndex = map[string]int{}

	i := 0
	for i < len(s.raw) {
		line := s.raw[i]
		trimmed := strings.TrimRight(line, " \t")
		if strings.TrimSpace(trimmed) == "" || isIndented(line) {
			i++
			continue
		}

		start := i
		end := i
		for end+1 < len(s.raw) {
			next := s.raw[end+1]
			if strings.TrimSpace(next) == "" {
				break
			}
			if !isIndented(next) {
				break
			}
			end++
		}

		docText := s.docFor(start)
		body := strings.Join(s.raw[start:end+1], "\n")
		s.dispatch(strings.TrimSpace(body), docText, start, end)
		i = end + 1
	}
	s.emitUnusedSignatures()
}

// emitUnusedSignatures adds a standalone item for every signature that no
// equation ever claimed (type class method signatures, signatures for
// functions defined elsewhere, etc).
func (s *scanner) emitUnusedSignatures() {
	for _, name := range s.sigOrder {
		sig := s.sigIndex[name]
		if sig.used {
			continue
		}
		item := s.builder().
			Kind(model.KindFunction).
			Name(name).
			QualifiedName(name).
			Signature(name + " :: " + sig.typeSig).
			DocComment(sig.doc).
			DocSections(docparse.ParseSections(sig.doc)).
			Range(sig.r).
			Visibility(model.Public).
			Metadata(model.HaskellMetadata{DeclKind: "signature", TypeSig: sig.typeSig}).
			Build()
		s.items = append(s.items, item)
	}
}

// isIndented reports whether a non-blank line starts with whitespace
// (continuation of the previous top-level declaration).
func isIndented(line string) bool {
	if line == "" {
		return false
	}
	return line[0] == ' ' || line[0] == '\t'
}

// docFor collects the contiguous run of "-- |"/"-- ^"/"--" Haddock line
// comments above declStart (blank lines between the run and declStart are
// skipped), or the block-comment doc recorded by stripComments for the
// line immediately preceding it.
func (s *scanner) docFor(declStart int) string {
	if declStart > 0 && s.doc[declStart-1] != "" {
		return s.doc[declStart-1]
	}
	end := declStart - 1
	for end >= 0 && strings.TrimSpace(s.raw[end]) == "" {
		end--
	}
	start := end
	for start >= 0 {
		t := strings.TrimLeft(s.raw[start], " \t")
		if !strings.HasPrefix(t, "--") {
			break
		}
		start--
	}
	start++
	if start > end || end < 0 {
		return ""
	}
	var lines []string
	for _, l := range s.raw[start : end+1] {
		t := strings.TrimLeft(l, " \t")
		t = strings.TrimPrefix(t, "--")
		t = strings.TrimPrefix(t, " ")
		t = strings.TrimPrefix(t, "|")
		t = strings.TrimPrefix(t, "^")
		t = strings.TrimPrefix(t, " ")
		lines = append(lines, t)
	}
	return docparse.CollectLine(lines, "").Text
}

func (s *scanner) dispatch(body, doc string, start, end int) {
	r := lineRange(start, end, s.raw)
	r.StartByte, r.EndByte = s.byteRange(start, end)

	switch {
	case reForeign.MatchString(body):
		s.extractForeign(body, doc, r)
	case reData.MatchString(body):
		s.extractData(body, doc, r)
	case reType.MatchString(body):
		s.extractTypeAlias(body, doc, r)
	case reClass.MatchString(strings.SplitN(body, "\n", 2)[0]):
		s.extractClass(body, doc, r)
	case reInstance.MatchString(strings.SplitN(body, "\n", 2)[0]):
		s.extractInstance(body, doc, r)
	case reFixity.MatchString(body):
		s.extractFixity(body, doc, r)
	case reSignature.MatchString(body):
		s.extractSignature(body, doc, r)
	case reEquation.MatchString(body):
		s.extractEquation(body, doc, r)
	}
}

func lineRange(start, end int, lines []string) model.Range {
	lastLen := 0
	if end < len(lines) {
		lastLen = len(lines[end])
	}
	return model.Range{
		Start: model.Position{Line: start + 1, Column: 0},
		End:   model.Position{Line: end + 1, Column: lastLen},
	}
}

func (s *scanner) byteRange(start, end int) (uint32, uint32) {
	startByte := uint32(0)
	if start < len(s.lineByte) {
		startByte = s.lineByte[start]
	}
	endByte := startByte
	if end < len(s.lineByte) {
		endByte = s.lineByte[end] + uint32(len(s.raw[end]))
	}
	return startByte, endByte
}

func (s *scanner) extractSignature(body, doc string, r model.Range) {
	m := reSignature.FindStringSubmatch(body)
	if m == nil {
		return
	}
	namesPart := strings.Trim(m[1], "()")
	typeSig := strings.Join(strings.Fields(strings.ReplaceAll(m[2], "\n", " ")), " ")
	for _, name := range strings.Split(namesPart, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, exists := s.sigIndex[name]; !exists {
			s.sigOrder = append(s.sigOrder, name)
		}
		s.sigIndex[name] = pendingSig{typeSig: typeSig, doc: doc, r: r}
	}
}

func (s *scanner) extractEquation(body, doc string, r model.Range) {
	m := reEquation.FindStringSubmatch(body)
	if m == nil {
		return
	}
	name := strings.Trim(m[1], "()")
	if idx, ok := s.defIndex[name]; ok {
		meta := s.items[idx].Metadata.(model.HaskellMetadata)
		meta.Equations++
		s.items[idx].Metadata = meta
		if s.items[idx].Range.End.Line < r.End.Line {
			s.items[idx].Range.End = r.End
		}
		return
	}
	typeSig := ""
	if sig, ok := s.sigIndex[name]; ok {
		typeSig = sig.typeSig
		if doc == "" {
			doc = sig.doc
		}
		sig.used = true
		s.sigIndex[name] = sig
	}
	item := s.builder().
		Kind(model.KindFunction).
		Name(name).
		QualifiedName(name).
		Signature(strings.Join(strings.Fields(body), " ")).
		DocComment(doc).
		DocSections(docparse.ParseSections(doc)).
		Range(r).
		Visibility(model.Public).
		Metadata(model.HaskellMetadata{DeclKind: "equation", TypeSig: typeSig, Equations: 1}).
		Build()
	s.items = append(s.items, item)
	s.defIndex[name] = len(s.items) - 1
}

func (s *scanner) extractData(body, doc string, r model.Range) {
	m := reData.FindStringSubmatch(body)
	if m == nil {
		return
	}
	declKind := m[1]
	name := m[2]
	var ctors []string
	if idx := strings.Index(body, "="); idx >= 0 {
		rhs := body[idx+1:]
		if semi := strings.Index(rhs, " deriving"); semi >= 0 {
			rhs = rhs[:semi]
		}
		for _, alt := range strings.Split(rhs, "|") {
			alt = strings.TrimSpace(alt)
			if alt == "" {
				continue
			}
			if cm := reClassName.FindString(alt); cm != "" {
				ctors = append(ctors, cm)
			}
		}
	}
	kind := model.KindStruct
	if len(ctors) > 1 {
		kind = model.KindEnum
	}
	item := s.builder().
		Kind(kind).
		Name(name).
		QualifiedName(name).
		Signature(strings.SplitN(body, "\n", 2)[0]).
		DocComment(doc).
		DocSections(docparse.ParseSections(doc)).
		Range(r).
		Visibility(model.Public).
		Metadata(model.HaskellMetadata{DeclKind: declKind, Constructors: ctors}).
		Build()
	s.items = append(s.items, item)
}

func (s *scanner) extractTypeAlias(body, doc string, r model.Range) {
	m := reType.FindStringSubmatch(body)
	if m == nil {
		return
	}
	name := m[1]
	item := s.builder().
		Kind(model.KindTypeAlias).
		Name(name).
		QualifiedName(name).
		Signature(strings.SplitN(body, "\n", 2)[0]).
		DocComment(doc).
		DocSections(docparse.ParseSections(doc)).
		Range(r).
		Visibility(model.Public).
		Metadata(model.HaskellMetadata{DeclKind: "type"}).
		Build()
	s.items = append(s.items, item)
}

func (s *scanner) extractClass(body, doc string, r model.Range) {
	header := strings.SplitN(body, "\n", 2)[0]
	m := reClass.FindStringSubmatch(header)
	if m == nil {
		return
	}
	name := reClassName.FindString(lastTypeWordBeforeParams(m[1]))
	if name == "" {
		name = m[1]
	}
	item := s.builder().
		Kind(model.KindTrait).
		Name(name).
		QualifiedName(name).
		Signature(header).
		DocComment(doc).
		DocSections(docparse.ParseSections(doc)).
		Range(r).
		Visibility(model.Public).
		Metadata(model.HaskellMetadata{DeclKind: "class"}).
		Build()
	s.items = append(s.items, item)
}

func (s *scanner) extractInstance(body, doc string, r model.Range) {
	header := strings.SplitN(body, "\n", 2)[0]
	m := reInstance.FindStringSubmatch(header)
	if m == nil {
		return
	}
	name := strings.TrimSpace(m[1])
	item := s.builder().
		Kind(model.KindImplTrait).
		Name(name).
		QualifiedName(name).
		Signature(header).
		DocComment(doc).
		DocSections(docparse.ParseSections(doc)).
		Range(r).
		Visibility(model.Public).
		Metadata(model.HaskellMetadata{DeclKind: "instance"}).
		Build()
	s.items = append(s.items, item)
}

func (s *scanner) extractForeign(body, doc string, r model.Range) {
	m := reForeign.FindStringSubmatch(body)
	if m == nil {
		return
	}
	direction, conv, name, typeSig := m[1], m[2], m[3], strings.Join(strings.Fields(m[4]), " ")
	item := s.builder().
		Kind(model.KindFunction).
		Name(name).
		QualifiedName(name).
		Signature(name + " :: " + typeSig).
		DocComment(doc).
		DocSections(docparse.ParseSections(doc)).
		Range(r).
		Visibility(model.Public).
		Metadata(model.HaskellMetadata{DeclKind: "foreign_" + direction, TypeSig: typeSig, ForeignCConv: conv}).
		Build()
	s.items = append(s.items, item)
}

func (s *scanner) extractFixity(body, doc string, r model.Range) {
	m := reFixity.FindStringSubmatch(body)
	if m == nil {
		return
	}
	assoc, level, ops := m[1], m[2], m[3]
	for _, op := range strings.Split(ops, ",") {
		op = strings.TrimSpace(op)
		if op == "" {
			continue
		}
		item := s.builder().
			Kind(model.KindOperatorOverload).
			Name(op).
			QualifiedName(op).
			Signature(body).
			DocComment(doc).
			Range(r).
			Visibility(model.Public).
			Metadata(model.HaskellMetadata{DeclKind: "fixity", Fixity: assoc + " " + level}).
			Build()
		s.items = append(s.items, item)
	}
}

// lastTypeWordBeforeParams trims trailing type-parameter/constraint text
// from a class header's head (e.g. "Eq a => Ord a" -> "Ord a" -> "Ord").
func lastTypeWordBeforeParams(head string) string {
	if idx := strings.Index(head, "=>"); idx >= 0 {
		head = head[idx+2:]
	}
	return strings.TrimSpace(head)
}
