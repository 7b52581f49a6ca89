package xmltree

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for xmltree:
// - Parse decodes names, attributes, text and children in document order
// - Child / Children only look at direct children
// - Child returns a true nil interface when missing
// - Attr distinguishes absent from empty attributes
// - Parse transcodes ISO-8859-1 documents
// - Parse and ParseFile wrap errors with ErrParse / ErrNotFound
// - Parse rejects content after the root element, but allows trailing comments
// - Text only holds character data before the first child element

func TestParse_Tree(t *testing.T) {
	t.Parallel()

	root, err := Parse(strings.NewReader(`<?xml version="1.0" encoding="UTF-8"?>
<STExchangeFile>
  <contentHeader name="Demo" version="1.2.3"/>
  <program name="A"><STSource><![CDATA[IF a < b THEN c := 1; END_IF;]]></STSource></program>
  <program name="B"/>
  <wrapper><program name="nested"/></wrapper>
</STExchangeFile>`))
	require.NoError(t, err)

	assert.Equal(t, "STExchangeFile", root.Name())

	header := root.Child("contentHeader")
	require.NotNil(t, header)
	v, ok := header.Attr("name")
	assert.True(t, ok)
	assert.Equal(t, "Demo", v)

	programs := root.Children("program")
	require.Len(t, programs, 2)
	name, _ := programs[0].Attr("name")
	assert.Equal(t, "A", name)
	name, _ = programs[1].Attr("name")
	assert.Equal(t, "B", name)

	st := programs[0].Child("STSource")
	require.NotNil(t, st)
	assert.Equal(t, "IF a < b THEN c := 1; END_IF;", st.Text())
}

func TestNode_MissingLookups(t *testing.T) {
	t.Parallel()

	root, err := Parse(strings.NewReader(`<root empty=""><child/></root>`))
	require.NoError(t, err)

	// Must be an untyped nil so callers can compare against nil
	assert.True(t, root.Child("missing") == nil)
	assert.Empty(t, root.Children("missing"))

	v, ok := root.Attr("empty")
	assert.True(t, ok)
	assert.Empty(t, v)

	_, ok = root.Attr("absent")
	assert.False(t, ok)
}

func TestParse_Latin1(t *testing.T) {
	t.Parallel()

	doc := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><root><comment>Temp\xe9rature</comment></root>"
	root, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)

	c := root.Child("comment")
	require.NotNil(t, c)
	assert.Equal(t, "Température", c.Text())
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	_, err := Parse(strings.NewReader(`<root><unclosed></root>`))
	assert.ErrorIs(t, err, ErrParse)

	_, err = Parse(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrParse)
}

func TestParse_TrailingContent(t *testing.T) {
	t.Parallel()

	for _, doc := range []string{
		`<a/><b>`,
		`<a/><b/>`,
		`<a/>junk`,
	} {
		_, err := Parse(strings.NewReader(doc))
		assert.ErrorIs(t, err, ErrParse, doc)
	}

	root, err := Parse(strings.NewReader("<a/>\n<!-- exported -->\n<?pi x?>\n"))
	require.NoError(t, err)
	assert.Equal(t, "a", root.Name())
}

func TestNode_TextIsLeadingOnly(t *testing.T) {
	t.Parallel()

	root, err := Parse(strings.NewReader(`<root><c>lead<x>inner</x>tail</c><d>a<!-- note -->b</d></root>`))
	require.NoError(t, err)

	c := root.Child("c")
	require.NotNil(t, c)
	assert.Equal(t, "lead", c.Text())
	assert.Equal(t, "inner", c.Child("x").Text())

	// Comments do not end the leading text
	assert.Equal(t, "ab", root.Child("d").Text())
}

func TestParseFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := ParseFile(filepath.Join(dir, "missing.xef"))
	assert.ErrorIs(t, err, ErrNotFound)

	path := filepath.Join(dir, "demo.xef")
	require.NoError(t, os.WriteFile(path, []byte(`<root><a/></root>`), 0644))
	root, err := ParseFile(path)
	require.NoError(t, err)
	assert.NotNil(t, root.Child("a"))

	bad := filepath.Join(dir, "bad.xef")
	require.NoError(t, os.WriteFile(bad, []byte(`<root>`), 0644))
	_, err = ParseFile(bad)
	assert.ErrorIs(t, err, ErrParse)
}
