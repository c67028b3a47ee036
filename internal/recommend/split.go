package recommend

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var md = goldmark.New()

// Split parses doc as Markdown and returns one RawItem per list entry, in
// document order. Within an entry, everything before the first blockquote is
// the title, the first blockquote is the tagged-fields segment, and anything
// after it (including further blockquotes) is carried into Trailing verbatim.
// Entries without a blockquote get an empty FieldsText.
//
// Producers often emit the quote lines flush with the left margin, where
// CommonMark makes the blockquote a sibling of the list instead of part of
// the item. A top-level blockquote directly after a list therefore attaches
// to that list's last entry.
func Split(doc string) []RawItem {
	source := []byte(doc)
	root := md.Parser().Parse(text.NewReader(source))

	var items []RawItem
	attachTo := -1
	for block := root.FirstChild(); block != nil; block = block.NextSibling() {
		switch b := block.(type) {
		case *ast.List:
			for li := b.FirstChild(); li != nil; li = li.NextSibling() {
				items = append(items, splitListItem(li, source, len(items)))
			}
			attachTo = len(items) - 1
		case *ast.Blockquote:
			if attachTo < 0 {
				continue
			}
			it := &items[attachTo]
			switch quoted := flatten(b, source); {
			case it.FieldsText == "":
				it.FieldsText = quoted
			case it.Trailing == "":
				it.Trailing = quoted
			default:
				it.Trailing += "\n" + quoted
			}
		default:
			attachTo = -1
		}
	}
	return items
}

func splitListItem(li ast.Node, source []byte, ordinal int) RawItem {
	item := RawItem{Ordinal: ordinal}

	var title, trailing []string
	seenQuote := false
	for child := li.FirstChild(); child != nil; child = child.NextSibling() {
		_, isQuote := child.(*ast.Blockquote)
		switch {
		case isQuote && !seenQuote:
			seenQuote = true
			item.FieldsText = flatten(child, source)
		case seenQuote:
			trailing = append(trailing, flatten(child, source))
		default:
			title = append(title, flatten(child, source))
		}
	}

	item.Title = strings.TrimSpace(strings.Join(title, "\n"))
	item.Trailing = strings.TrimSpace(strings.Join(trailing, "\n"))
	return item
}

// flatten concatenates the textual leaves of n depth-first, inserting a line
// break between sibling block-level children and at soft or hard line breaks,
// so that one tagged line in the source stays one line in the output no
// matter how the inline tree is nested.
func flatten(n ast.Node, source []byte) string {
	var b strings.Builder
	walkText(n, source, &b)
	return b.String()
}

func walkText(n ast.Node, source []byte, b *strings.Builder) {
	switch t := n.(type) {
	case *ast.Text:
		b.Write(t.Segment.Value(source))
		if t.SoftLineBreak() || t.HardLineBreak() {
			b.WriteByte('\n')
		}
	case *ast.String:
		b.Write(t.Value)
	case *ast.AutoLink:
		b.Write(t.URL(source))
	default:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			walkText(c, source, b)
			if c.Type() == ast.TypeBlock && c.NextSibling() != nil {
				b.WriteByte('\n')
			}
		}
	}
}

// SplitText is the fallback splitter for producers whose output does not
// parse as Markdown. It walks lines directly: a `* ` or `- ` bullet starts a
// new entry, a run of `>`-prefixed lines forms its quote block (only the
// first run is the fields segment), and anything else attaches to the title
// or, after the fields segment, to Trailing.
func SplitText(doc string) []RawItem {
	var items []RawItem
	var cur *RawItem
	var fields, trailing []string
	inFirstQuote := false

	flush := func() {
		if cur == nil {
			return
		}
		cur.FieldsText = strings.Join(fields, "\n")
		cur.Trailing = strings.TrimSpace(strings.Join(trailing, "\n"))
		items = append(items, *cur)
		cur, fields, trailing, inFirstQuote = nil, nil, nil, false
	}

	for _, line := range strings.Split(doc, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			inFirstQuote = false
		case strings.HasPrefix(trimmed, "* ") || strings.HasPrefix(trimmed, "- "):
			flush()
			cur = &RawItem{Ordinal: len(items), Title: stripInlineMarkup(trimmed[2:])}
		case strings.HasPrefix(trimmed, ">"):
			if cur == nil {
				continue
			}
			body := strings.TrimSpace(strings.TrimPrefix(trimmed, ">"))
			switch {
			case len(fields) == 0 || inFirstQuote:
				inFirstQuote = true
				fields = append(fields, body)
			default:
				trailing = append(trailing, body)
			}
		case cur != nil && len(fields) > 0:
			inFirstQuote = false
			trailing = append(trailing, trimmed)
		case cur != nil:
			inFirstQuote = false
			cur.Title += "\n" + stripInlineMarkup(trimmed)
		}
	}
	flush()
	return items
}

// stripInlineMarkup removes emphasis and heading glyphs from a title line.
func stripInlineMarkup(s string) string {
	s = strings.TrimLeft(s, "# ")
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	return strings.TrimSpace(s)
}
