package fixture

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/PaoloLupo/rcsection/internal/corpus"
)

// Orphans lists fixture directories under outRoot that hold outputName but belong
// to no current example. keep holds exact identities, as returned by
// Writer.Identities. A directory differing only in case from a kept identity is
// an orphan unless the filesystem resolves both names to the same directory.
func Orphans(outRoot string, outputName string, keep map[string]struct{}) ([]string, error) {
	entries, err := os.ReadDir(outRoot)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list fixtures under %q: %w", outRoot, err)
	}

	folded := make(map[string][]string, len(keep))
	for id := range keep {
		key := corpus.FoldKey(id)
		folded[key] = append(folded[key], id)
	}

	var orphans []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if _, ok := keep[name]; ok {
			continue
		}
		if aliased(outRoot, name, folded[corpus.FoldKey(name)]) {
			continue
		}
		if _, err := os.Stat(filepath.Join(outRoot, name, outputName)); err != nil {
			continue
		}
		orphans = append(orphans, name)
	}
	sort.Strings(orphans)
	return orphans, nil
}

func aliased(outRoot string, name string, identities []string) bool {
	for _, id := range identities {
		if sameDir(filepath.Join(outRoot, name), filepath.Join(outRoot, id)) {
			return true
		}
	}
	return false
}

func sameDir(a string, b string) bool {
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}
