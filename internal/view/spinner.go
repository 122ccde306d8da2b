package view

// ShowLoading appends a spinner to container and returns it.
func ShowLoading(container *Node) *Node {
	s := container.doc.CreateElement("div")
	s.SetAttr("class", "spinner")
	container.Append(s)
	return s
}

// HideLoading removes spinner. It is a no-op for nil or detached spinners.
func HideLoading(spinner *Node) {
	if spinner == nil {
		return
	}
	spinner.Remove()
}
