package corpus

import "strings"

// Identity derives the fixture directory name for an example: its stem.
// Names are trusted to be valid path components already.
func Identity(ex Example) string {
	return ex.Stem()
}

// FoldKey maps an identity to the key two fixtures share when a case-insensitive
// filesystem would put them in the same directory.
func FoldKey(identity string) string {
	return strings.ToLower(identity)
}
