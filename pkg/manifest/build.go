package manifest

import (
	"strings"

	"github.com/dotyhq/doty/pkg/entry"
	"github.com/dotyhq/doty/pkg/errors"
)

// Entries builds every record against env. Two records deriving the same
// name are rejected before anything is built.
func (m *Manifest) Entries(env entry.Env) ([]*entry.Entry, error) {
	if err := m.CheckDuplicates(); err != nil {
		return nil, err
	}
	out := make([]*entry.Entry, 0, len(m.Records))
	for _, r := range m.Records {
		out = append(out, entry.Build(r, env))
	}
	return out, nil
}

// CheckDuplicates fails with ErrDuplicateName listing every name that is
// declared more than once.
func (m *Manifest) CheckDuplicates() error {
	seen := make(map[string]int)
	var dups []string
	for _, r := range m.Records {
		name := r.DerivedName()
		if name == "" {
			continue
		}
		seen[name]++
		if seen[name] == 2 {
			dups = append(dups, name)
		}
	}
	if len(dups) == 0 {
		return nil
	}
	return errors.Newf(errors.ErrDuplicateName, "manifest declares these names more than once: %s",
		strings.Join(dups, ", ")).WithDetail("names", dups)
}

// Index returns the position of the record deriving name, or -1.
func (m *Manifest) Index(name string) int {
	for i, r := range m.Records {
		if r.DerivedName() == name {
			return i
		}
	}
	return -1
}

// Add appends raw, refusing names already present.
func (m *Manifest) Add(raw entry.Raw) error {
	name := raw.DerivedName()
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "an entry needs a name or a src")
	}
	if m.Index(name) >= 0 {
		return errors.Newf(errors.ErrDuplicateName, "manifest already has an entry named %s", name)
	}
	m.Records = append(m.Records, raw)
	return nil
}

// Remove drops the record deriving name and returns it.
func (m *Manifest) Remove(name string) (entry.Raw, error) {
	i := m.Index(name)
	if i < 0 {
		return entry.Raw{}, errors.Newf(errors.ErrNotFound, "manifest has no entry named %s", name)
	}
	raw := m.Records[i]
	m.Records = append(m.Records[:i], m.Records[i+1:]...)
	return raw, nil
}
