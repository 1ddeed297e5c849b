package model

// DocSection is one canonical subsection of a doc comment. Text holds the
// section's flat prose; Items holds a name -> description breakdown when
// the section's lines are keyed by an identifier (e.g. an Args or Raises
// section), and is nil otherwise.
type DocSection struct {
	Text  string            `json:"text"`
	Items map[string]string `json:"items,omitempty"`
}

// DocSections maps a canonical, language-neutral section name (lowercase,
// e.g. "errors", "panics", "args", "returns", "raises") to its parsed body.
type DocSections map[string]DocSection

// Canonical section-name constants.
const (
	SectionErrors     = "errors"
	SectionPanics     = "panics"
	SectionSafety     = "safety"
	SectionExamples   = "examples"
	SectionArgs       = "args"
	SectionReturns    = "returns"
	SectionRaises     = "raises"
	SectionYields     = "yields"
	SectionSeeAlso    = "see_also"
	SectionNotes      = "notes"
	SectionDeprecated = "deprecated"
)
