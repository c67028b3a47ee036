package recommend

import "strings"

// Marker glyphs of the producer contract. The map glyph is matched on its
// base rune so both 🗺 and 🗺️ (with the emoji variation selector) decode the
// same way; models flip-flop between the two spellings.
const (
	markerAddress = "📍"
	markerPhone   = "📞"
	markerWebsite = "🌐"
	markerMap     = "🗺"

	variationSelector = "️"
)

// markerTable fixes the recognition priority: the first glyph found on a
// line claims the whole line.
var markerTable = []struct {
	glyph string
	field func(*FieldSet) *string
}{
	{markerAddress, func(f *FieldSet) *string { return &f.Address }},
	{markerPhone, func(f *FieldSet) *string { return &f.Phone }},
	{markerWebsite, func(f *FieldSet) *string { return &f.Website }},
	{markerMap, func(f *FieldSet) *string { return &f.MapLink }},
}

// Decode scans the flattened fields segment of one entry. Lines carrying a
// marker glyph anywhere on them are assigned to that field; the payload is
// whatever follows the last occurrence of the glyph, trimmed. The first line
// to claim a field wins; duplicates are dropped entirely. Every other
// non-empty line accumulates, in order, into the rationale.
//
// Decode never fails: arbitrary input yields at worst an empty FieldSet and
// the input itself as rationale.
func Decode(fieldsText string) (rationale string, fields FieldSet) {
	var free []string

	for _, line := range strings.Split(fieldsText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		matched := false
		for _, m := range markerTable {
			idx := strings.LastIndex(line, m.glyph)
			if idx < 0 {
				continue
			}
			matched = true
			slot := m.field(&fields)
			if *slot == "" {
				*slot = payload(line[idx+len(m.glyph):])
			}
			break
		}
		if !matched {
			free = append(free, line)
		}
	}

	return strings.TrimSpace(strings.Join(free, "\n")), fields
}

func payload(rest string) string {
	rest = strings.TrimPrefix(rest, variationSelector)
	return strings.TrimSpace(rest)
}
