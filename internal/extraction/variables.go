package extraction

import "strings"

// decodeVariables reads every direct "variables" child of the named container.
// A missing container yields nil.
func decodeVariables(parent Element, container string) []Variable {
	c := parent.Child(container)
	if c == nil {
		return nil
	}

	var vars []Variable
	for _, v := range c.Children("variables") {
		vars = append(vars, Variable{
			Name:    attr(v, "name"),
			Type:    attr(v, "typeName"),
			Comment: childText(v, "comment"),
			Address: attr(v, "topologicalAddress"),
		})
	}
	return vars
}

// text returns the trimmed character data of e, or "" for a nil element.
func text(e Element) string {
	if e == nil {
		return ""
	}
	return strings.TrimSpace(e.Text())
}
