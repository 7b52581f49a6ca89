package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for NameFilter and BodyPolicy:
// - Empty filter matches everything and Filter returns the same record
// - Include patterns restrict, exclude patterns win over include
// - Invalid patterns are rejected
// - Filter leaves the source record untouched and keeps order
// - ParseBodyPolicy accepts known values and rejects others

func TestNameFilter_Empty(t *testing.T) {
	t.Parallel()

	f, err := NewNameFilter(nil, nil)
	require.NoError(t, err)
	assert.True(t, f.Empty())
	assert.True(t, f.Match("anything"))

	var nilFilter *NameFilter
	assert.True(t, nilFilter.Match("anything"))

	rec := &Record{Programs: []ProgramSource{{Name: "P"}}}
	assert.Same(t, rec, rec.Filter(f))
}

func TestNameFilter_IncludeExclude(t *testing.T) {
	t.Parallel()

	f, err := NewNameFilter([]string{"FB_*", "MAIN"}, []string{"FB_Test*"})
	require.NoError(t, err)

	assert.True(t, f.Match("FB_Timer"))
	assert.True(t, f.Match("MAIN"))
	assert.False(t, f.Match("FB_TestHarness"))
	assert.False(t, f.Match("T_Motor"))

	excludeOnly, err := NewNameFilter(nil, []string{"*_old"})
	require.NoError(t, err)
	assert.True(t, excludeOnly.Match("Pump"))
	assert.False(t, excludeOnly.Match("Pump_old"))
}

func TestNameFilter_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := NewNameFilter([]string{"[unclosed"}, nil)
	assert.Error(t, err)

	_, err = NewNameFilter(nil, []string{"[unclosed"})
	assert.Error(t, err)
}

func TestRecord_Filter(t *testing.T) {
	t.Parallel()

	rec := &Record{
		Project:        ProjectInfo{Name: "Demo", Version: "1"},
		FunctionBlocks: []FunctionBlockSource{{Name: "FB_B"}, {Name: "X"}, {Name: "FB_A"}},
		DataTypes:      []DataTypeSource{{Name: "T_1"}},
		Programs:       []ProgramSource{{Name: "MAIN"}, {Name: "AUX"}},
	}

	f, err := NewNameFilter([]string{"FB_*", "MAIN"}, nil)
	require.NoError(t, err)

	got := rec.Filter(f)
	assert.Equal(t, rec.Project, got.Project)
	assert.Equal(t, []FunctionBlockSource{{Name: "FB_B"}, {Name: "FB_A"}}, got.FunctionBlocks)
	assert.Empty(t, got.DataTypes)
	assert.Equal(t, []ProgramSource{{Name: "MAIN"}}, got.Programs)

	// Source record is untouched
	assert.Len(t, rec.FunctionBlocks, 3)
	assert.Len(t, rec.Programs, 2)
}

func TestParseBodyPolicy(t *testing.T) {
	t.Parallel()

	p, err := ParseBodyPolicy("")
	require.NoError(t, err)
	assert.Equal(t, BodyPolicyLastWins, p)

	p, err = ParseBodyPolicy("strict")
	require.NoError(t, err)
	assert.Equal(t, BodyPolicyStrict, p)
	assert.Equal(t, "strict", p.String())

	_, err = ParseBodyPolicy("first-wins")
	assert.Error(t, err)
}
