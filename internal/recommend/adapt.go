package recommend

import (
	"net/url"
	"strings"
)

// LinkKind selects the normalization rule SafeURL applies.
type LinkKind int

const (
	LinkWeb LinkKind = iota
	LinkMap
)

const mapsSearchBase = "https://www.google.com/maps/search/?api=1&query="

// SafeURL makes a raw field value clickable. Values already carrying an
// http prefix pass through verbatim; bare domains get https:// prepended.
// Map values that look like a place name rather than a link (no http or www
// prefix) become a Google Maps search URL over the urlencoded text. No
// validation beyond that: the producer's output is free-form and a wrong
// link beats a missing button.
func SafeURL(raw string, kind LinkKind) string {
	clean := strings.TrimSpace(raw)
	if clean == "" {
		return ""
	}

	if kind == LinkMap && !strings.HasPrefix(clean, "http") && !strings.HasPrefix(clean, "www") {
		return mapsSearchBase + url.QueryEscape(clean)
	}

	if !strings.HasPrefix(clean, "http") {
		return "https://" + clean
	}
	return clean
}

// TelURL builds the tel: target for a raw phone value: whitespace stripped,
// nothing else touched.
func TelURL(phone string) string {
	return "tel:" + strings.Join(strings.Fields(phone), "")
}

// Adapt turns a decoded item into its render-ready view model. Actions are
// emitted only for present fields, in call / map / website order.
func Adapt(item Item) ViewModel {
	vm := ViewModel{
		Title:             item.Title,
		Rationale:         item.Rationale,
		Address:           item.Fields.Address,
		TopChoice:         item.TopChoice,
		ExpandedByDefault: item.ExpandedByDefault,
	}

	if item.Fields.Phone != "" {
		vm.Actions = append(vm.Actions, Action{Kind: ActionCall, Label: "Call", Target: TelURL(item.Fields.Phone)})
	}
	if target := SafeURL(item.Fields.MapLink, LinkMap); target != "" {
		vm.Actions = append(vm.Actions, Action{Kind: ActionMap, Label: "Map", Target: target})
	}
	if target := SafeURL(item.Fields.Website, LinkWeb); target != "" {
		vm.Actions = append(vm.Actions, Action{Kind: ActionWebsite, Label: "Website", Target: target})
	}

	return vm
}

// DecodeItem runs the tagged-field decoder over one raw entry and derives
// the positional display flags. The first entry in the document is the top
// choice by contract with the producer, which pre-sorts best-first.
func DecodeItem(raw RawItem) Item {
	rationale, fields := Decode(raw.FieldsText)
	if raw.Trailing != "" {
		if rationale != "" {
			rationale += "\n"
		}
		rationale += raw.Trailing
	}

	top := raw.Ordinal == 0
	return Item{
		Ordinal:           raw.Ordinal,
		Title:             raw.Title,
		Rationale:         rationale,
		Fields:            fields,
		TopChoice:         top,
		ExpandedByDefault: top,
	}
}

// Render is the full pipeline: split the document, decode each entry, adapt
// to view models. Documents that yield no structural entries fall back to
// the flat line splitter.
func Render(doc string) []ViewModel {
	raws := Split(doc)
	if len(raws) == 0 {
		raws = SplitText(doc)
	}

	vms := make([]ViewModel, 0, len(raws))
	for _, raw := range raws {
		vms = append(vms, Adapt(DecodeItem(raw)))
	}
	return vms
}
