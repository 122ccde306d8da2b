package view

import (
	"slices"
	"strings"
)

// Selector matches elements on every non-empty criterion.
// It covers the handful of CSS forms the page relies on:
// tag, #id, .class, [name="x"], [attr] and [attr^="prefix"].
type Selector struct {
	Tag        string
	ID         string
	Name       string
	Class      string
	Attr       string
	AttrPrefix string // requires Attr
}

func (s Selector) match(n *Node) bool {
	if s.Tag != "" && n.tag != s.Tag {
		return false
	}
	if s.ID != "" && n.attrs["id"] != s.ID {
		return false
	}
	if s.Name != "" && n.attrs["name"] != s.Name {
		return false
	}
	if s.Class != "" && !slices.Contains(n.classes, s.Class) {
		return false
	}
	if s.Attr != "" {
		v, ok := n.attrs[s.Attr]
		if !ok || !strings.HasPrefix(v, s.AttrPrefix) {
			return false
		}
	}
	return true
}

// Query returns the descendants of n matching sel, in document order.
func (n *Node) Query(sel Selector) []*Node {
	n.doc.mu.Lock()
	defer n.doc.mu.Unlock()
	var out []*Node
	n.walk(func(c *Node) {
		if sel.match(c) {
			out = append(out, c)
		}
	})
	return out
}

// QueryFirst returns the first descendant of n matching sel, or nil.
func (n *Node) QueryFirst(sel Selector) *Node {
	if all := n.Query(sel); len(all) > 0 {
		return all[0]
	}
	return nil
}
