package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/mvp-joe/xef-extract/internal/config"
	"github.com/mvp-joe/xef-extract/internal/extraction"
	"github.com/mvp-joe/xef-extract/internal/xmltree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for CLI:
// - Extraction writes the file tree and prints per-kind counts
// - --quiet suppresses all stdout output
// - Missing input and malformed XML fail with a diagnostic and write nothing
// - Wrong argument counts are rejected
// - --strict-bodies, --include and --workers override the configuration
// - Invalid flag values fail validation
// - clean removes a previous extraction and reports when there is nothing to do
// - version prints build information
// - formatNumber adds thousands separators

const demoDoc = `<?xml version="1.0" encoding="UTF-8"?>
<STExchangeFile>
	<contentHeader name="Demo" version="1.2.3"/>
	<FBSource nameOfFBType="FB_Timer">
		<inputParameters><variables name="IN" typeName="BOOL"/></inputParameters>
	</FBSource>
	<DFBSource nameOfDFBType="DFB_Mixed"><STSource>a;</STSource><LDSource/></DFBSource>
	<program>
		<identProgram name="MAIN" task="MAST"/>
		<STSource>IF IN THEN OUT:=TRUE; END_IF;</STSource>
	</program>
</STExchangeFile>`

type testEnv struct {
	dir    string
	input  string
	output string
	config string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	dir := t.TempDir()
	env := testEnv{
		dir:    dir,
		input:  filepath.Join(dir, "demo.xef"),
		output: filepath.Join(dir, "out"),
		config: filepath.Join(dir, "xef.yml"),
	}
	require.NoError(t, os.WriteFile(env.input, []byte(demoDoc), 0644))
	require.NoError(t, os.WriteFile(env.config, []byte("output:\n  suffix: _extracted\n"), 0644))
	return env
}

// execute runs the command tree with args and returns captured stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmd_Extracts(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	out, err := execute(t, env.input, env.output, "--config", env.config)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(env.output, "PROJECT_INFO.txt"))
	assert.FileExists(t, filepath.Join(env.output, "FunctionBlocks", "FB_Timer.st"))
	assert.FileExists(t, filepath.Join(env.output, "FunctionBlocks", "DFB_Mixed_DFB.st"))
	assert.FileExists(t, filepath.Join(env.output, "Programs", "MAIN.st"))

	assert.Contains(t, out, "✓ Extraction complete: 3 units")
	assert.Contains(t, out, "Project: Demo (version 1.2.3)")
	assert.Regexp(t, `Function blocks:\s+1`, out)
	assert.Regexp(t, `DFBs:\s+1`, out)
	assert.Regexp(t, `Programs:\s+1`, out)
	assert.Regexp(t, `Data types:\s+0`, out)
}

func TestRootCmd_Quiet(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	out, err := execute(t, env.input, env.output, "--config", env.config, "--quiet")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.FileExists(t, filepath.Join(env.output, "Programs", "MAIN.st"))
}

func TestRootCmd_MissingInput(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	missing := filepath.Join(env.dir, "missing.xef")

	_, err := execute(t, missing, env.output, "--config", env.config, "-q")
	require.Error(t, err)
	assert.ErrorIs(t, err, xmltree.ErrNotFound)
	assert.Contains(t, err.Error(), "input file not found: "+missing)

	_, statErr := os.Stat(env.output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRootCmd_MalformedInput(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	require.NoError(t, os.WriteFile(env.input, []byte("<STExchangeFile>"), 0644))

	_, err := execute(t, env.input, env.output, "--config", env.config, "-q")
	require.Error(t, err)
	assert.ErrorIs(t, err, xmltree.ErrParse)

	_, statErr := os.Stat(env.output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRootCmd_ArgumentCount(t *testing.T) {
	t.Parallel()

	_, err := execute(t)
	assert.Error(t, err)

	_, err = execute(t, "a.xef", "out", "extra")
	assert.Error(t, err)
}

func TestRootCmd_StrictBodies(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	_, err := execute(t, env.input, env.output, "--config", env.config, "-q", "--strict-bodies")
	require.Error(t, err)
	assert.ErrorIs(t, err, extraction.ErrMultipleBodies)
	assert.Contains(t, err.Error(), "DFB_Mixed")
}

func TestRootCmd_IncludeFilter(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	_, err := execute(t, env.input, env.output, "--config", env.config, "-q", "--include", "FB_*", "--workers", "2")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(env.output, "FunctionBlocks", "FB_Timer.st"))
	assert.NoFileExists(t, filepath.Join(env.output, "FunctionBlocks", "DFB_Mixed_DFB.st"))
	assert.NoFileExists(t, filepath.Join(env.output, "Programs", "MAIN.st"))
}

func TestRootCmd_InvalidFlagValues(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	_, err := execute(t, env.input, env.output, "--config", env.config, "-q", "--workers", "-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidWorkers)

	_, err = execute(t, env.input, env.output, "--config", env.config, "-q", "--exclude", "[bad")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidPattern)
}

func TestRootCmd_MissingConfigFile(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	_, err := execute(t, env.input, env.output, "--config", filepath.Join(env.dir, "nope.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestCleanCmd(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	_, err := execute(t, env.input, env.output, "--config", env.config, "-q")
	require.NoError(t, err)

	out, err := execute(t, "clean", env.input, env.output, "--config", env.config)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Cleaned "+env.output+" (4 files)")

	_, statErr := os.Stat(env.output)
	assert.True(t, os.IsNotExist(statErr))

	out, err = execute(t, "clean", env.input, env.output, "--config", env.config)
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to clean")

	out, err = execute(t, "clean", env.input, env.output, "--config", env.config, "-q")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestVersionCmd(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "xef-extract "+Version)
	assert.Contains(t, out, "Git commit: "+GitCommit)
	assert.Contains(t, out, "Build date: "+BuildDate)
}

func TestFormatNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    int
		expected string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{12345, "12,345"},
		{1234567, "1,234,567"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatNumber(tt.input))
		})
	}
}
