package fixture

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestDefaultTemplateMatchesGolden(t *testing.T) {
	want, err := os.ReadFile(filepath.Join("testdata", "hello.expected.typ"))
	require.NoError(t, err)

	got, err := DefaultTemplate().For("../../examples", "hello.rcs").Render()
	require.NoError(t, err)

	if diff := cmp.Diff(string(want), string(got)); diff != "" {
		t.Fatalf("rendered fixture mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderOnlySubstitutesFilename(t *testing.T) {
	hello, err := DefaultTemplate().For("../../examples", "hello.rcs").Render()
	require.NoError(t, err)
	world, err := DefaultTemplate().For("../../examples", "world.rcs").Render()
	require.NoError(t, err)

	require.Contains(t, string(world), `read("../../examples/world.rcs")`)
	require.Equal(t, string(hello), strings.Replace(string(world), "world.rcs", "hello.rcs", 1))
}

func TestRenderCustomScaffold(t *testing.T) {
	tpl := DefaultTemplate()
	tpl.Lang = "en"
	tpl.PageMargin = "5pt"
	tpl.ImportPath = "@preview/rcsection:0.1.0"

	got, err := tpl.For("../../examples", "beam.rcs").Render()
	require.NoError(t, err)
	require.Contains(t, string(got), `#import "@preview/rcsection:0.1.0": *`)
	require.Contains(t, string(got), `#set text(lang: "en")`)
	require.Contains(t, string(got), `margin: 5pt)`)
}

func TestRenderRejectsPartialTemplate(t *testing.T) {
	_, err := DefaultTemplate().For("../../examples", "").Render()
	require.Error(t, err)

	_, err = DefaultTemplate().For("", "hello.rcs").Render()
	require.Error(t, err)
}

func TestRenderKeepsFilenameVerbatim(t *testing.T) {
	got, err := DefaultTemplate().For("../../examples", "viga\x01ñ.rcs").Render()
	require.NoError(t, err)
	require.Contains(t, string(got), "read(\"../../examples/viga\x01ñ.rcs\")")
	require.NotContains(t, string(got), `\x01`)

	got, err = DefaultTemplate().For("../../examples", `odd"name\.rcs`).Render()
	require.NoError(t, err)
	require.Contains(t, string(got), `read("../../examples/odd\"name\\.rcs")`)
}
