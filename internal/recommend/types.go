// Package recommend decodes the Markdown mechanic list produced by the AI
// advisor into render-ready view models.
//
// The producer contract is loose: a bullet list, one entry per recommended
// shop, with a nested blockquote carrying free-text rationale plus zero or
// more tagged lines (📍 address, 📞 phone, 🌐 website, 🗺️ map). The model is
// not guaranteed to honor any of it, so every stage here is total: missing,
// reordered, duplicated, or malformed input degrades to a partial card,
// never an error.
package recommend

// RawItem is one list entry after structural splitting: the title text, the
// flattened text of the entry's first blockquote (empty when the entry has
// none), and its zero-based position in the document. Trailing is text that
// followed the fields segment, later blockquotes included; it is kept
// verbatim and never scanned for tagged fields.
type RawItem struct {
	Ordinal    int
	Title      string
	FieldsText string
	Trailing   string
}

// FieldSet holds the tagged contact fields of one entry. Empty string means
// the producer omitted the field; fields are independent of each other.
type FieldSet struct {
	Address string
	Phone   string
	Website string
	MapLink string
}

// Item is a fully decoded entry.
type Item struct {
	Ordinal           int
	Title             string
	Rationale         string
	Fields            FieldSet
	TopChoice         bool
	ExpandedByDefault bool
}

type ActionKind string

const (
	ActionCall    ActionKind = "call"
	ActionMap     ActionKind = "map"
	ActionWebsite ActionKind = "website"
)

// Action is one tappable affordance on a rendered card. Target is a ready
// href: tel: for calls, an absolute URL for map and website.
type Action struct {
	Kind   ActionKind `json:"kind"`
	Label  string     `json:"label"`
	Target string     `json:"target"`
}

// ViewModel is what the render layer consumes, directly or as the JSON body
// of a streamed card event. Treat as immutable once built.
type ViewModel struct {
	Title             string   `json:"title"`
	Rationale         string   `json:"rationale"`
	Address           string   `json:"address"`
	TopChoice         bool     `json:"topChoice"`
	ExpandedByDefault bool     `json:"expandedByDefault"`
	Actions           []Action `json:"actions"`
}
