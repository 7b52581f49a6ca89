package xmltree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/net/html/charset"
)

var (
	// ErrNotFound indicates the input document does not exist
	ErrNotFound = errors.New("input file not found")

	// ErrParse indicates the input is not a well-formed XML document
	ErrParse = errors.New("failed to parse document")
)

// Parse decodes a single XML document from r.
// Non-UTF-8 encodings declared in the XML prolog (ISO-8859-1, windows-1252, ...)
// are transcoded on the fly.
func Parse(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	var root Node
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	// Only whitespace, comments and processing instructions may follow the root
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			if len(bytes.TrimSpace(t)) == 0 {
				continue
			}
		case xml.Comment, xml.ProcInst:
			continue
		}
		return nil, fmt.Errorf("%w: unexpected content after root element", ErrParse)
	}

	return &root, nil
}

// ParseFile opens path, decodes it and closes the handle before returning.
func ParseFile(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	root, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}
