package manifest

import (
	"github.com/pmezard/go-difflib/difflib"
)

// Preview is a unified diff between the manifest on disk and what a run
// would write. It is empty when they match.
func Preview(path string, before, after []byte) (string, error) {
	if string(before) == string(after) {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: path,
		ToFile:   path + " (after update)",
		Context:  2,
	})
}
