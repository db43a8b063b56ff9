package dom

import (
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// IsDocument reports whether r holds a full HTML document rather than a
// fragment. The first doctype or element decides: a doctype or an html, head
// or body tag means a document. Leading text and comments are skipped.
func IsDocument(r io.Reader) bool {
	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			return false
		case html.DoctypeToken:
			return true
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch atom.Lookup(name) {
			case atom.Html, atom.Head, atom.Body:
				return true
			}
			return false
		}
	}
}
