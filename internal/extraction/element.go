package extraction

// Element is the read-only view of a parsed document the extractor works on.
// All lookups are restricted to direct children.
type Element interface {
	// Name returns the element's local name.
	Name() string

	// Attr returns the attribute value and whether it was present.
	Attr(name string) (string, bool)

	// Child returns the first direct child with the given name, or nil.
	Child(name string) Element

	// Children returns all direct children with the given name, in document order.
	Children(name string) []Element

	// Text returns the element's own character data.
	Text() string
}

// attr returns the attribute value, or "" when absent.
func attr(e Element, name string) string {
	v, _ := e.Attr(name)
	return v
}

// attrOr returns the attribute value, or def when the attribute is absent.
func attrOr(e Element, name, def string) string {
	if v, ok := e.Attr(name); ok {
		return v
	}
	return def
}

// childText returns the trimmed text of the named child, or "" when absent.
func childText(e Element, name string) string {
	return text(e.Child(name))
}
