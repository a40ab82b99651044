package match

import (
	"fmt"
	"io"
	"strings"
)

// Options controls how match paths are rendered.
type Options struct {
	// BriefPaths omits the context prefix (instrument, filekind) from
	// each rendering.
	BriefPaths bool

	// OmitNames hides parameter names, showing values only.
	OmitNames bool

	// TupleFormat renders nested ordered tuples instead of text.
	TupleFormat bool
}

// ItemKind distinguishes the element forms of a rendered tuple.
type ItemKind int

const (
	// ItemValue is a bare value element (OmitNames renderings).
	ItemValue ItemKind = iota

	// ItemPair is a (name, value) element.
	ItemPair

	// ItemTuple is a nested tuple element.
	ItemTuple
)

// Item is one element of a rendered tuple.
type Item struct {
	Kind  ItemKind
	Name  string
	Value string
	Items []Item
}

// Tuple is an ordered sequence of rendered items.
type Tuple []Item

// String renders the tuple in its canonical parenthesized form, values
// quoted, nested tuples parenthesized recursively.
func (t Tuple) String() string {
	parts := make([]string, 0, len(t))
	for _, item := range t {
		parts = append(parts, item.String())
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// String renders a single tuple item.
func (i Item) String() string {
	switch i.Kind {
	case ItemPair:
		return fmt.Sprintf("(%s, %s)", quote(i.Name), quote(i.Value))
	case ItemTuple:
		return Tuple(i.Items).String()
	default:
		return quote(i.Value)
	}
}

// Rendering is one rendered match path: a Tuple in structured mode, a
// plain string otherwise.
type Rendering struct {
	Structured bool
	Text       string
	Tuple      Tuple
}

// String returns the printable form of the rendering.
func (r Rendering) String() string {
	if r.Structured {
		return r.Tuple.String()
	}
	return r.Text
}

// Presenter renders match paths under a fixed set of display options.
// The same path traversal feeds both output modes; only the leaf and
// prefix formatting differ.
type Presenter struct {
	opts Options
}

// NewPresenter creates a presenter for the given options.
func NewPresenter(opts Options) *Presenter {
	return &Presenter{opts: opts}
}

// RenderPaths renders each path independently, one Rendering per path,
// in input order.
func (p *Presenter) RenderPaths(paths []Path) []Rendering {
	renderings := make([]Rendering, 0, len(paths))
	for _, path := range paths {
		renderings = append(renderings, p.renderPath(path))
	}
	return renderings
}

// Dump writes one line per match path of reference to w, in the form
// "<contextLabel> <reference> : <rendering>". A reference with no match
// paths produces a single "none" line. The context label is omitted from
// the line when empty (single-context invocations).
func (p *Presenter) Dump(w io.Writer, contextLabel, reference string, paths []Path) error {
	if len(paths) == 0 {
		_, err := fmt.Fprintln(w, joinFields(contextLabel, reference, ":", "none"))
		return err
	}
	for _, rendering := range p.RenderPaths(paths) {
		if _, err := fmt.Fprintln(w, joinFields(contextLabel, reference, ":", rendering.String())); err != nil {
			return err
		}
	}
	return nil
}

// renderPath renders one path: a prefix from the context segment plus the
// formatted entries of every remaining segment in traversal order.
func (p *Presenter) renderPath(path Path) Rendering {
	if p.opts.TupleFormat {
		return Rendering{Structured: true, Tuple: p.renderTuple(path)}
	}
	return Rendering{Text: p.renderText(path)}
}

// renderTuple produces the structured form: the uppercased context pairs
// (unless brief) concatenated with the formatted match and useafter
// entries into one flat tuple.
func (p *Presenter) renderTuple(path Path) Tuple {
	var tuple Tuple
	if !p.opts.BriefPaths {
		for _, entry := range path.Context().Children {
			if entry.Kind != NodeLeaf {
				continue
			}
			tuple = append(tuple, Item{
				Kind:  ItemPair,
				Name:  strings.ToUpper(entry.Name),
				Value: strings.ToUpper(entry.Value),
			})
		}
	}
	for _, segment := range rest(path) {
		for _, entry := range segment.Children {
			tuple = append(tuple, p.tupleEntry(entry))
		}
	}
	return tuple
}

// tupleEntry formats one segment entry as a tuple item: the pair itself,
// just the value under OmitNames, or a nested tuple for compound rules.
func (p *Presenter) tupleEntry(entry Node) Item {
	if entry.Kind == NodeGroup {
		items := make([]Item, 0, len(entry.Children))
		for _, child := range entry.Children {
			items = append(items, p.tupleEntry(child))
		}
		return Item{Kind: ItemTuple, Items: items}
	}
	if p.opts.OmitNames {
		return Item{Kind: ItemValue, Value: entry.Value}
	}
	return Item{Kind: ItemPair, Name: entry.Name, Value: entry.Value}
}

// renderText produces the text form: the uppercased context values
// (excluding the observatory entry, unless brief), a space, then the
// space-joined match and useafter entries as name='value' assignments.
func (p *Presenter) renderText(path Path) string {
	var parts []string
	for _, segment := range rest(path) {
		for _, entry := range segment.Children {
			parts = append(parts, p.textEntry(entry))
		}
	}
	body := strings.Join(parts, " ")

	if p.opts.BriefPaths {
		return body
	}

	var prefix []string
	context := path.Context().Children
	for i, entry := range context {
		if i == 0 || entry.Kind != NodeLeaf {
			continue
		}
		prefix = append(prefix, strings.ToUpper(entry.Value))
	}
	if len(prefix) == 0 {
		return body
	}
	return strings.Join(prefix, " ") + " " + body
}

// textEntry formats one segment entry as text. Compound rule groups are
// rendered recursively and space-joined.
func (p *Presenter) textEntry(entry Node) string {
	if entry.Kind == NodeGroup {
		parts := make([]string, 0, len(entry.Children))
		for _, child := range entry.Children {
			parts = append(parts, p.textEntry(child))
		}
		return strings.Join(parts, " ")
	}
	if p.opts.OmitNames {
		return quote(entry.Value)
	}
	return entry.Name + "=" + quote(entry.Value)
}

// rest returns the segments after the context segment.
func rest(path Path) []Node {
	if len(path) == 0 {
		return nil
	}
	return path[1:]
}

// quote writes a value in its quoted literal form.
func quote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", `\'`) + "'"
}

// joinFields joins the non-empty fields with single spaces.
func joinFields(fields ...string) string {
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		if field != "" {
			parts = append(parts, field)
		}
	}
	return strings.Join(parts, " ")
}
