// Package dom implements a render tree over a parsed HTML document.
//
// Document wraps a goquery document and exposes the small, id-keyed surface
// the overlay needs: check presence, append a subtree under the root, patch an
// inline style and remove a subtree. Everything else in the page is left
// untouched.
//
//	doc, err := dom.ParseString(body)
//	if err != nil {
//	    return err
//	}
//	if !doc.Contains("browser-redirect-overlay") {
//	    _ = doc.Append("browser-redirect-overlay", markup)
//	}
//	html, _ := doc.String()
//
// The root defaults to <body>; WithRoot selects another container.
package dom
