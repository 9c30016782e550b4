package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/PaoloLupo/rcsection/internal/fixture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "examples", cfg.In)
	assert.Equal(t, "tests", cfg.Out)
	assert.Equal(t, "*.rcs", cfg.Pattern())
	assert.Equal(t, fixture.PolicyOverwrite, cfg.Policy())
}

func TestValidateFillsBlanks(t *testing.T) {
	cfg := Default()
	cfg.In = " "
	cfg.Ext = ""
	cfg.OnCollision = ""
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultInputDir, cfg.In)
	assert.Equal(t, DefaultExampleExt, cfg.Ext)
	assert.Equal(t, DefaultOnCollision, cfg.OnCollision)
}

func TestValidateDoesNotRequireExistingInput(t *testing.T) {
	cfg := Default()
	cfg.In = filepath.Join(t.TempDir(), "missing")
	require.NoError(t, cfg.Validate())
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(c *Config){
		"ext without dot":     func(c *Config) { c.Ext = "rcs" },
		"nested output name":  func(c *Config) { c.OutputName = "sub/test.typ" },
		"unknown policy":      func(c *Config) { c.OnCollision = "rename" },
		"same in and out":     func(c *Config) { c.Out = c.In },
		"empty template lang": func(c *Config) { c.Template.Lang = "" },
		"check with watch":    func(c *Config) { c.Check, c.Watch = true, true },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestPatternRecursive(t *testing.T) {
	cfg := Default()
	cfg.Recursive = true
	assert.Equal(t, "**/*.rcs", cfg.Pattern())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixturegen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
in: corpus
out: harness
on_collision: fail
template:
  lang: en
`), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "corpus", cfg.In)
	assert.Equal(t, "harness", cfg.Out)
	assert.Equal(t, "fail", cfg.OnCollision)
	assert.Equal(t, "en", cfg.Template.Lang)
	assert.Equal(t, fixture.DefaultImportPath, cfg.Template.ImportPath)
	assert.Equal(t, DefaultOutputName, cfg.OutputName)
	require.NoError(t, cfg.Validate())
}

func TestLoadFileEmptyUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixturegen.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixturegen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("inputs: corpus\n"), 0o644))

	_, err := LoadFile(path)
	require.Error(t, err)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
