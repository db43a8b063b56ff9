package dom

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// DefaultRoot is the selector new subtrees are appended to.
const DefaultRoot = "body"

// Option configures a Document.
type Option func(*Document)

// WithRoot changes the container selector. Empty selectors are ignored.
func WithRoot(selector string) Option {
	return func(d *Document) {
		if selector != "" {
			d.root = selector
		}
	}
}

// Document is a render tree backed by goquery. It is not safe for concurrent
// use; callers drive it from a single event loop.
type Document struct {
	doc  *goquery.Document
	root string
}

// New wraps an already parsed goquery document.
func New(doc *goquery.Document, opts ...Option) *Document {
	d := &Document{doc: doc, root: DefaultRoot}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Parse reads an HTML document.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, errors.Join(ErrParsingDocument, err)
	}
	return New(doc, opts...), nil
}

// ParseString reads an HTML document from a string.
func ParseString(s string, opts ...Option) (*Document, error) {
	return Parse(strings.NewReader(s), opts...)
}

// Contains reports whether an element with the given id exists.
func (d *Document) Contains(id string) bool {
	return d.Count(id) > 0
}

// Count returns how many elements carry the given id.
func (d *Document) Count(id string) int {
	if d == nil || d.doc == nil {
		return 0
	}
	return d.byID(id).Length()
}

// Append parses markup and appends it as the last child of the root.
func (d *Document) Append(_ string, markup string) error {
	if d == nil || d.doc == nil {
		return ErrNoRoot
	}
	root := d.doc.Find(d.root).First()
	if root.Length() == 0 {
		return ErrNoRoot
	}
	root.AppendHtml(markup)
	return nil
}

// SetStyle sets a single inline style property on the element with the
// given id, replacing a previous value of the same property.
func (d *Document) SetStyle(id, property, value string) bool {
	if d == nil || d.doc == nil {
		return false
	}
	sel := d.byID(id)
	if sel.Length() == 0 {
		return false
	}

	current, _ := sel.Attr("style")
	sel.SetAttr("style", setDeclaration(current, property, value))
	return true
}

// Style returns the inline style of the element with the given id.
func (d *Document) Style(id string) string {
	if d == nil || d.doc == nil {
		return ""
	}
	style, _ := d.byID(id).Attr("style")
	return style
}

// Remove deletes every element with the given id.
func (d *Document) Remove(id string) bool {
	if d == nil || d.doc == nil {
		return false
	}
	sel := d.byID(id)
	if sel.Length() == 0 {
		return false
	}
	sel.Remove()
	return true
}

// Find exposes goquery selection for callers that need to inspect the tree.
func (d *Document) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// Render writes the whole document, doctype included.
func (d *Document) Render(w io.Writer) error {
	if d == nil || d.doc == nil || len(d.doc.Nodes) == 0 {
		return ErrRenderingDocument
	}
	if err := html.Render(w, d.doc.Nodes[0]); err != nil {
		return errors.Join(ErrRenderingDocument, err)
	}
	return nil
}

// String renders the document to a string.
func (d *Document) String() (string, error) {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (d *Document) byID(id string) *goquery.Selection {
	return d.doc.Find(`[id="` + strings.ReplaceAll(id, `"`, `\"`) + `"]`)
}

// setDeclaration rewrites a style attribute so property appears once with value.
func setDeclaration(style, property, value string) string {
	property = strings.TrimSpace(property)
	decls := make([]string, 0, 4)
	for _, decl := range strings.Split(style, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		name, _, _ := strings.Cut(decl, ":")
		if strings.EqualFold(strings.TrimSpace(name), property) {
			continue
		}
		decls = append(decls, decl)
	}
	decls = append(decls, property+": "+value)
	return strings.Join(decls, "; ")
}
