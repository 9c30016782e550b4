package corpus

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/PaoloLupo/rcsection/internal/diagnostics"
	"github.com/bmatcuk/doublestar/v4"
)

// ErrRootNotFound reports that the examples root does not exist.
var ErrRootNotFound = errors.New("examples root not found")

var errStopWalk = errors.New("stop walk")

// Example stores absolute and root-relative paths for one example input.
type Example struct {
	AbsPath string
	RelPath string
}

// Filename returns the example base name including its extension.
func (e Example) Filename() string {
	return path.Base(e.RelPath)
}

// Stem returns the example base name without its extension. A dot-file such
// as ".rcs" has no extension, so its stem is the whole name.
func (e Example) Stem() string {
	name := e.Filename()
	ext := path.Ext(name)
	if ext == name {
		return name
	}
	return strings.TrimSuffix(name, ext)
}

// Source returns the slash-separated path of the example relative to the root.
func (e Example) Source() string {
	return e.RelPath
}

// PatternFor builds the discovery glob for an extension filter.
func PatternFor(ext string, recursive bool) string {
	ext = strings.TrimSpace(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if recursive {
		return "**/*" + ext
	}
	return "*" + ext
}

// Scan checks root and returns a lazy sequence of examples matching pattern.
// Every range over the sequence walks the filesystem again.
func Scan(root string, pattern string) (iter.Seq2[Example, error], error) {
	absRoot, err := filepath.Abs(filepath.Clean(root))
	if err != nil {
		return nil, fmt.Errorf("resolve examples root %q: %w", root, err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, diagnostics.New(diagnostics.CodeRootMissing, root, "examples directory not found", ErrRootNotFound)
		}
		return nil, fmt.Errorf("stat examples root %q: %w", root, err)
	}
	if !info.IsDir() {
		return nil, diagnostics.New(diagnostics.CodeRootNotDir, root, "examples root must be a directory", nil)
	}

	matcher := filepath.ToSlash(strings.TrimSpace(pattern))
	if !doublestar.ValidatePattern(matcher) {
		return nil, diagnostics.New(diagnostics.CodeBadPattern, root, fmt.Sprintf("invalid glob pattern %q", pattern), doublestar.ErrBadPattern)
	}

	fsys := os.DirFS(absRoot)
	seq := func(yield func(Example, error) bool) {
		err := doublestar.GlobWalk(fsys, matcher, func(p string, _ fs.DirEntry) error {
			ex := Example{
				AbsPath: filepath.Join(absRoot, filepath.FromSlash(p)),
				RelPath: p,
			}
			if !yield(ex, nil) {
				return errStopWalk
			}
			return nil
		}, doublestar.WithFilesOnly())
		if err != nil && !errors.Is(err, errStopWalk) {
			yield(Example{}, fmt.Errorf("walk examples root %q: %w", root, err))
		}
	}
	return seq, nil
}
