// Package view is a minimal element tree that the donation client renders
// into: inline form errors, notification banners and loading spinners.
//
// All nodes created by a Document share its lock, so timers that add or
// remove nodes may run concurrently with the submit cycle.
package view

import (
	"slices"
	"strings"
	"sync"
)

// Document owns a tree of nodes rooted at an html element with a body.
type Document struct {
	mu   sync.Mutex
	root *Node
	body *Node
}

// Node is an element in a Document.
type Node struct {
	doc      *Document
	tag      string
	attrs    map[string]string
	classes  []string
	text     string
	value    string
	parent   *Node
	children []*Node
}

// NewDocument returns an empty document with an html root and a body.
func NewDocument() *Document {
	d := &Document{}
	d.root = d.CreateElement("html")
	d.body = d.CreateElement("body")
	d.root.children = append(d.root.children, d.body)
	d.body.parent = d.root
	return d
}

// CreateElement returns a detached node owned by d.
func (d *Document) CreateElement(tag string) *Node {
	return &Node{doc: d, tag: strings.ToLower(tag), attrs: map[string]string{}}
}

// Root returns the html element.
func (d *Document) Root() *Node { return d.root }

// Body returns the body element.
func (d *Document) Body() *Node { return d.body }

// ByID returns the first element with the given id, or nil.
func (d *Document) ByID(id string) *Node {
	return d.root.QueryFirst(Selector{ID: id})
}

// Query returns every element under the root matching sel, in document order.
func (d *Document) Query(sel Selector) []*Node {
	return d.root.Query(sel)
}

// Tag returns the lower-cased tag name.
func (n *Node) Tag() string { return n.tag }

// ID returns the id attribute.
func (n *Node) ID() string {
	n.doc.mu.Lock()
	defer n.doc.mu.Unlock()
	return n.attrs["id"]
}

// Attr returns the named attribute and whether it is set.
func (n *Node) Attr(key string) (string, bool) {
	n.doc.mu.Lock()
	defer n.doc.mu.Unlock()
	if key == "class" {
		return strings.Join(n.classes, " "), len(n.classes) > 0
	}
	v, ok := n.attrs[key]
	return v, ok
}

// SetAttr sets an attribute. Setting "class" replaces the class list.
func (n *Node) SetAttr(key, value string) {
	n.doc.mu.Lock()
	defer n.doc.mu.Unlock()
	if key == "class" {
		n.classes = strings.Fields(value)
		return
	}
	n.attrs[key] = value
}

// RemoveAttr deletes an attribute.
func (n *Node) RemoveAttr(key string) {
	n.doc.mu.Lock()
	defer n.doc.mu.Unlock()
	if key == "class" {
		n.classes = nil
		return
	}
	delete(n.attrs, key)
}

// Classes returns a copy of the class list.
func (n *Node) Classes() []string {
	n.doc.mu.Lock()
	defer n.doc.mu.Unlock()
	return slices.Clone(n.classes)
}

// HasClass reports whether c is in the class list.
func (n *Node) HasClass(c string) bool {
	n.doc.mu.Lock()
	defer n.doc.mu.Unlock()
	return slices.Contains(n.classes, c)
}

// AddClass adds c unless already present.
func (n *Node) AddClass(c string) {
	n.doc.mu.Lock()
	defer n.doc.mu.Unlock()
	if !slices.Contains(n.classes, c) {
		n.classes = append(n.classes, c)
	}
}

// RemoveClass removes c if present.
func (n *Node) RemoveClass(c string) {
	n.doc.mu.Lock()
	defer n.doc.mu.Unlock()
	n.classes = slices.DeleteFunc(n.classes, func(s string) bool { return s == c })
}

// Text returns the node's own text.
func (n *Node) Text() string {
	n.doc.mu.Lock()
	defer n.doc.mu.Unlock()
	return n.text
}

// SetText replaces the node's own text.
func (n *Node) SetText(s string) {
	n.doc.mu.Lock()
	defer n.doc.mu.Unlock()
	n.text = s
}

// TextContent returns the text of n and all descendants, space separated.
func (n *Node) TextContent() string {
	n.doc.mu.Lock()
	defer n.doc.mu.Unlock()
	var parts []string
	n.walk(func(c *Node) {
		if t := strings.TrimSpace(c.text); t != "" {
			parts = append(parts, t)
		}
	})
	return strings.Join(parts, " ")
}

// Value returns the current value of a form control.
func (n *Node) Value() string {
	n.doc.mu.Lock()
	defer n.doc.mu.Unlock()
	return n.value
}

// SetValue sets the current value of a form control.
func (n *Node) SetValue(v string) {
	n.doc.mu.Lock()
	defer n.doc.mu.Unlock()
	n.value = v
}

// Parent returns the parent node, or nil once detached.
func (n *Node) Parent() *Node {
	n.doc.mu.Lock()
	defer n.doc.mu.Unlock()
	return n.parent
}

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	n.doc.mu.Lock()
	defer n.doc.mu.Unlock()
	return slices.Clone(n.children)
}

// Append attaches child as the last child of n, detaching it first.
func (n *Node) Append(child *Node) {
	n.doc.mu.Lock()
	defer n.doc.mu.Unlock()
	child.detach()
	child.parent = n
	n.children = append(n.children, child)
}

// InsertAfter attaches n right after ref in ref's parent.
// It returns false when ref is detached.
func (n *Node) InsertAfter(ref *Node) bool {
	n.doc.mu.Lock()
	defer n.doc.mu.Unlock()
	p := ref.parent
	if p == nil {
		return false
	}
	n.detach()
	i := slices.Index(p.children, ref)
	p.children = slices.Insert(p.children, i+1, n)
	n.parent = p
	return true
}

// Remove detaches n from its parent.
// It returns false when n was already detached.
func (n *Node) Remove() bool {
	n.doc.mu.Lock()
	defer n.doc.mu.Unlock()
	return n.detach()
}

func (n *Node) detach() bool {
	p := n.parent
	if p == nil {
		return false
	}
	p.children = slices.DeleteFunc(p.children, func(c *Node) bool { return c == n })
	n.parent = nil
	return true
}

// walk visits every descendant of n in document order, excluding n.
// Callers hold the document lock.
func (n *Node) walk(fn func(*Node)) {
	for _, c := range n.children {
		fn(c)
		c.walk(fn)
	}
}
