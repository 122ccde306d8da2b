package view

import "slices"

var controlTags = []string{"input", "textarea", "select"}

// Form binds to a form element and exposes its named controls.
type Form struct {
	node     *Node
	defaults map[*Node]string
}

// NewForm binds n and records each control's current value as its
// default, which Reset later restores.
func NewForm(n *Node) *Form {
	f := &Form{node: n, defaults: map[*Node]string{}}
	for _, c := range f.controls() {
		f.defaults[c] = c.Value()
	}
	return f
}

// Node returns the bound form element.
func (f *Form) Node() *Node { return f.node }

func (f *Form) controls() []*Node {
	var out []*Node
	for _, c := range f.node.Query(Selector{Attr: "name"}) {
		if slices.Contains(controlTags, c.Tag()) {
			out = append(out, c)
		}
	}
	return out
}

// Control returns the first control named name, or nil.
func (f *Form) Control(name string) *Node {
	for _, c := range f.node.Query(Selector{Name: name}) {
		if slices.Contains(controlTags, c.Tag()) {
			return c
		}
	}
	return nil
}

// Lookup implements validate.Lookup.
func (f *Form) Lookup(name string) (string, bool) {
	c := f.Control(name)
	if c == nil {
		return "", false
	}
	return c.Value(), true
}

// Value returns the value of the named control, or "" when absent.
func (f *Form) Value(name string) string {
	v, _ := f.Lookup(name)
	return v
}

// Set assigns the named control's value. It reports whether the control exists.
func (f *Form) Set(name, value string) bool {
	c := f.Control(name)
	if c == nil {
		return false
	}
	c.SetValue(value)
	return true
}

// Values returns every named control's value. The first control wins
// when names repeat.
func (f *Form) Values() map[string]string {
	out := map[string]string{}
	for _, c := range f.controls() {
		name, _ := c.Attr("name")
		if _, dup := out[name]; !dup {
			out[name] = c.Value()
		}
	}
	return out
}

// Reset restores every control to its default value.
func (f *Form) Reset() {
	for _, c := range f.controls() {
		c.SetValue(f.defaults[c])
	}
}

// SubmitControl returns the form's submit button, or nil.
func (f *Form) SubmitControl() *Node {
	for _, c := range f.node.Query(Selector{Attr: "type", AttrPrefix: "submit"}) {
		if c.Tag() == "button" || c.Tag() == "input" {
			return c
		}
	}
	return f.node.QueryFirst(Selector{Tag: "button"})
}

// SetBusy toggles the disabled attribute on the submit control.
func (f *Form) SetBusy(busy bool) {
	c := f.SubmitControl()
	if c == nil {
		return
	}
	if busy {
		c.SetAttr("disabled", "disabled")
		return
	}
	c.RemoveAttr("disabled")
}
