package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootCmdGeneratesFromFlags(t *testing.T) {
	root := t.TempDir()
	in := filepath.Join(root, "examples")
	out := filepath.Join(root, "tests")
	mustWrite(t, filepath.Join(in, "hello.rcs"), "beam V1 {}")

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"--in", in, "--out", out})
	require.NoError(t, cmd.Execute())

	assertExists(t, filepath.Join(out, "hello", "test.typ"))
}

func TestRootCmdRejectsArguments(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetArgs([]string{"examples"})
	require.Error(t, cmd.Execute())
}

func TestRootCmdFlagsOverrideConfigFile(t *testing.T) {
	root := t.TempDir()
	in := filepath.Join(root, "examples")
	fileOut := filepath.Join(root, "from-file")
	flagOut := filepath.Join(root, "from-flag")
	mustWrite(t, filepath.Join(in, "hello.rcs"), "beam V1 {}")

	configPath := filepath.Join(root, "fixturegen.yaml")
	mustWrite(t, configPath, "in: "+in+"\nout: "+fileOut+"\noutput_name: harness.typ\ntemplate:\n  lang: en\n")

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"--config", configPath, "--out", flagOut})
	require.NoError(t, cmd.Execute())

	assertNotExists(t, fileOut)
	raw, err := os.ReadFile(filepath.Join(flagOut, "hello", "harness.typ"))
	require.NoError(t, err)
	require.Contains(t, string(raw), `#set text(lang: "en")`)
}

func TestExitCode(t *testing.T) {
	require.Equal(t, ExitCodeSuccess, ExitCode(nil))
	require.Equal(t, ExitCodeStale, ExitCode(newExitError(ExitCodeStale, nil)))
	require.Equal(t, 1, ExitCode(os.ErrNotExist))
}
