// Package page turns page markup into a view.Document and wires the
// donation client onto it.
package page

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/alumni-network/donation-client/internal/view"
)

// Parse reads HTML from r.
func Parse(r io.Reader) (*view.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	doc := view.NewDocument()
	htmlEl := find(root, "html")
	if htmlEl == nil {
		return doc, nil
	}
	copyAttrs(htmlEl, doc.Root())

	for c := htmlEl.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "head":
			head := doc.CreateElement("head")
			copyAttrs(c, head)
			build(doc, c, head)
			doc.Root().Append(head)
			// keep head ahead of body
			doc.Root().Append(doc.Body())
		case "body":
			copyAttrs(c, doc.Body())
			build(doc, c, doc.Body())
		}
	}
	return doc, nil
}

func find(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if f := find(c, tag); f != nil {
			return f
		}
	}
	return nil
}

func copyAttrs(src *html.Node, dst *view.Node) {
	for _, a := range src.Attr {
		dst.SetAttr(a.Key, a.Val)
	}
}

func build(doc *view.Document, src *html.Node, dst *view.Node) {
	var text strings.Builder
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			text.WriteString(c.Data)
		case html.ElementNode:
			el := doc.CreateElement(c.Data)
			copyAttrs(c, el)
			build(doc, c, el)
			dst.Append(el)
		}
	}

	switch dst.Tag() {
	case "input":
		v, _ := dst.Attr("value")
		dst.SetValue(v)
	case "textarea":
		dst.SetValue(text.String())
	case "select":
		dst.SetValue(selected(dst))
	default:
		if t := strings.TrimSpace(text.String()); t != "" {
			dst.SetText(t)
		}
	}
}

// selected returns the value of the selected option, or the first one.
func selected(sel *view.Node) string {
	opts := sel.Query(view.Selector{Tag: "option"})
	if len(opts) == 0 {
		return ""
	}
	pick := opts[0]
	for _, o := range opts {
		if _, ok := o.Attr("selected"); ok {
			pick = o
			break
		}
	}
	if v, ok := pick.Attr("value"); ok {
		return v
	}
	return pick.Text()
}
