// Package xmltree decodes an XEF export into a generic element tree.
//
// The vendor schema is large and only loosely specified, so instead of
// mirroring it with structs the document is decoded into nested Nodes and the
// extractor reads the handful of paths it cares about.
package xmltree

import (
	"encoding/xml"
	"strings"

	"github.com/mvp-joe/xef-extract/internal/extraction"
)

// Node is one XML element with its attributes, leading character data and
// child elements in document order.
type Node struct {
	XMLName xml.Name
	Attrs   []xml.Attr
	Content string // character data before the first child element
	Nodes   []*Node
}

var (
	_ extraction.Element = (*Node)(nil)
	_ xml.Unmarshaler    = (*Node)(nil)
)

// UnmarshalXML decodes the element rooted at start. Character data that
// follows a child element is dropped, so Content only holds the leading text.
func (n *Node) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	n.XMLName = start.Name
	n.Attrs = append([]xml.Attr(nil), start.Attr...)

	var (
		text    strings.Builder
		leading = true
	)
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			leading = false
			child := &Node{}
			if err := child.UnmarshalXML(d, t); err != nil {
				return err
			}
			n.Nodes = append(n.Nodes, child)
		case xml.CharData:
			if leading {
				text.Write(t)
			}
		case xml.EndElement:
			n.Content = text.String()
			return nil
		}
	}
}

// Name returns the local element name.
func (n *Node) Name() string {
	return n.XMLName.Local
}

// Attr looks up an attribute by local name.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// Child returns the first direct child with the given local name, or nil.
func (n *Node) Child(name string) extraction.Element {
	if c := n.child(name); c != nil {
		return c
	}
	return nil
}

// Children returns every direct child with the given local name.
func (n *Node) Children(name string) []extraction.Element {
	var out []extraction.Element
	for _, c := range n.Nodes {
		if c.XMLName.Local == name {
			out = append(out, c)
		}
	}
	return out
}

// Text returns the character data before the first child element, untrimmed.
func (n *Node) Text() string {
	return n.Content
}

func (n *Node) child(name string) *Node {
	for _, c := range n.Nodes {
		if c.XMLName.Local == name {
			return c
		}
	}
	return nil
}
