package diagnostics

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiagnosticErrorFormatting(t *testing.T) {
	d := New(CodeCollision, "examples/Beam.rcs", "identity already generated", nil)
	require.Equal(t, "examples/Beam.rcs [E_COLLISION]: identity already generated", d.Error())

	d = New("", "tests/beam", "write failed", fs.ErrPermission)
	require.Equal(t, "tests/beam: write failed: permission denied", d.Error())
}

func TestDiagnosticUnwrap(t *testing.T) {
	err := error(New(CodeRootMissing, "examples", "examples directory not found", fs.ErrNotExist))
	require.True(t, errors.Is(err, fs.ErrNotExist))

	var d Diagnostic
	require.True(t, errors.As(err, &d))
	require.Equal(t, CodeRootMissing, d.Code)
}
