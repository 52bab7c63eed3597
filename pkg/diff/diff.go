// Package diff compares manifests by value and finds entries whose
// filesystem state has drifted from what the manifest says.
package diff

import (
	"github.com/dotyhq/doty/pkg/entry"
	"github.com/dotyhq/doty/pkg/types"
)

// Entries returns the current entries with no equal prior entry, and the
// prior entries with no equal current entry. Both keep input order.
func Entries(current, prior []*entry.Entry) (newOrChanged, removed []*entry.Entry) {
	newOrChanged = missingFrom(current, prior)
	removed = missingFrom(prior, current)
	return newOrChanged, removed
}

func missingFrom(entries, others []*entry.Entry) []*entry.Entry {
	byHash := make(map[string][]*entry.Entry, len(others))
	for _, o := range others {
		byHash[o.Hash()] = append(byHash[o.Hash()], o)
	}

	var out []*entry.Entry
	for _, e := range entries {
		if !containsEqual(byHash[e.Hash()], e) {
			out = append(out, e)
		}
	}
	return out
}

func containsEqual(candidates []*entry.Entry, e *entry.Entry) bool {
	for _, c := range candidates {
		if c.Equal(e) {
			return true
		}
	}
	return false
}

// Drifted appends to queued every current entry that is not already
// queued and whose file is out of place or whose link disagrees with
// Linked. Broken entries are left out; they are reported when they first
// appear and never retried.
func Drifted(fsys types.FS, current, queued []*entry.Entry) []*entry.Entry {
	out := append([]*entry.Entry(nil), queued...)
	for _, e := range current {
		if e.Broken || containsSame(out, e) {
			continue
		}
		st := e.Inspect(fsys)
		if !st.Location.OK || !st.Link.OK {
			out = append(out, e)
		}
	}
	return out
}

func containsSame(list []*entry.Entry, e *entry.Entry) bool {
	for _, q := range list {
		if q == e || q.Equal(e) {
			return true
		}
	}
	return false
}
