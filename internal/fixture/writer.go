package fixture

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/PaoloLupo/rcsection/internal/corpus"
	"github.com/PaoloLupo/rcsection/internal/diagnostics"
)

// Status is the per-fixture outcome of a write or check.
type Status string

const (
	StatusCreated   Status = "created"
	StatusUpdated   Status = "updated"
	StatusUnchanged Status = "unchanged"
	StatusFresh     Status = "fresh"
	StatusStale     Status = "stale"
)

// Policy decides what happens when two examples map to the same fixture directory.
type Policy string

const (
	PolicyOverwrite Policy = "overwrite"
	PolicyFail      Policy = "fail"
)

// Fixture is one rendered test harness and where it belongs.
type Fixture struct {
	Identity string
	Dir      string
	Path     string
	Content  []byte
}

// Result describes what happened to one example's fixture.
type Result struct {
	Example   corpus.Example
	Fixture   Fixture
	Status    Status
	Collision bool
}

// Writer renders and persists fixtures under OutRoot.
type Writer struct {
	InRoot     string
	OutRoot    string
	OutputName string
	Template   Template
	Policy     Policy

	registry *Registry
}

// NewWriter builds a Writer with a fresh collision registry.
func NewWriter(inRoot string, outRoot string, outputName string, tpl Template, policy Policy) *Writer {
	return &Writer{
		InRoot:     filepath.Clean(inRoot),
		OutRoot:    filepath.Clean(outRoot),
		OutputName: outputName,
		Template:   tpl,
		Policy:     policy,
		registry:   NewRegistry(),
	}
}

// Identities returns the identities handled by this writer so far.
func (w *Writer) Identities() map[string]struct{} {
	return w.registry.Identities()
}

// Plan resolves the fixture location and content for ex without touching disk.
func (w *Writer) Plan(ex corpus.Example) (Fixture, error) {
	identity := corpus.Identity(ex)
	if identity == "" || identity == "." || identity == ".." {
		return Fixture{}, diagnostics.New(diagnostics.CodeRender, ex.Source(), fmt.Sprintf("example has no usable identity %q", identity), nil)
	}
	dir := filepath.Join(w.OutRoot, identity)

	sourceDir, err := relativeSourceDir(dir, w.InRoot)
	if err != nil {
		return Fixture{}, diagnostics.New(diagnostics.CodeRender, ex.Source(), "resolve example path from fixture", err)
	}
	content, err := w.Template.For(sourceDir, ex.Source()).Render()
	if err != nil {
		return Fixture{}, diagnostics.New(diagnostics.CodeRender, ex.Source(), "render fixture", err)
	}

	return Fixture{
		Identity: identity,
		Dir:      dir,
		Path:     filepath.Join(dir, w.OutputName),
		Content:  content,
	}, nil
}

// Write ensures the fixture directory exists and overwrites the fixture file.
func (w *Writer) Write(ex corpus.Example) (Result, error) {
	fx, collided, err := w.prepare(ex)
	if err != nil {
		return Result{}, err
	}

	if err := os.MkdirAll(fx.Dir, 0o755); err != nil {
		return Result{}, diagnostics.New(diagnostics.CodeWrite, fx.Dir, "create fixture directory", err)
	}

	status := StatusCreated
	if prev, err := os.ReadFile(fx.Path); err == nil {
		status = StatusUpdated
		if bytes.Equal(prev, fx.Content) {
			status = StatusUnchanged
		}
	}

	if err := os.WriteFile(fx.Path, fx.Content, 0o644); err != nil {
		return Result{}, diagnostics.New(diagnostics.CodeWrite, fx.Path, "write fixture", err)
	}

	slog.Info("generated fixture", "example", ex.Filename(), "fixture", fx.Path, "status", status)
	return Result{Example: ex, Fixture: fx, Status: status, Collision: collided}, nil
}

// Check compares the rendered fixture with what is on disk. Nothing is written.
func (w *Writer) Check(ex corpus.Example) (Result, error) {
	fx, collided, err := w.prepare(ex)
	if err != nil {
		return Result{}, err
	}

	status := StatusStale
	prev, err := os.ReadFile(fx.Path)
	switch {
	case err == nil:
		if bytes.Equal(prev, fx.Content) {
			status = StatusFresh
		}
	case !errors.Is(err, fs.ErrNotExist):
		return Result{}, fmt.Errorf("read fixture %q: %w", fx.Path, err)
	}

	slog.Debug("checked fixture", "example", ex.Filename(), "fixture", fx.Path, "status", status)
	return Result{Example: ex, Fixture: fx, Status: status, Collision: collided}, nil
}

func (w *Writer) prepare(ex corpus.Example) (Fixture, bool, error) {
	fx, err := w.Plan(ex)
	if err != nil {
		return Fixture{}, false, err
	}

	prev, collided := w.registry.Claim(fx.Identity, ex.Source())
	if !collided {
		return fx, false, nil
	}
	if w.Policy == PolicyFail {
		msg := fmt.Sprintf("fixture %q already generated from %q", fx.Identity, prev)
		return Fixture{}, true, diagnostics.New(diagnostics.CodeCollision, ex.Source(), msg, nil)
	}
	slog.Warn("fixture identity collision, last write wins", "identity", fx.Identity, "previous", prev, "example", ex.Source())
	return fx, true, nil
}

// relativeSourceDir returns the slash path leading from a fixture directory back
// to the examples root, e.g. ../../examples for tests/<identity>.
func relativeSourceDir(fixtureDir string, inRoot string) (string, error) {
	from, err := filepath.Abs(fixtureDir)
	if err != nil {
		return "", err
	}
	to, err := filepath.Abs(inRoot)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(from, to)
	if err != nil {
		return "", err
	}
	return path.Clean(filepath.ToSlash(rel)), nil
}
