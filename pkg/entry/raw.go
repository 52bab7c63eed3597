package entry

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Raw is a manifest record as written by the user, before defaults are
// applied. Unset fields stay empty.
type Raw struct {
	Name     string `yaml:"name,omitempty" json:"name,omitempty"`
	Src      string `yaml:"src,omitempty" json:"src,omitempty"`
	Dst      string `yaml:"dst,omitempty" json:"dst,omitempty"`
	Notes    string `yaml:"notes,omitempty" json:"notes,omitempty"`
	Linked   *bool  `yaml:"linked,omitempty" json:"linked,omitempty"`
	LinkName string `yaml:"link_name,omitempty" json:"link_name,omitempty"`
}

// Recognized manifest keys.
const (
	KeyName     = "name"
	KeySrc      = "src"
	KeyDst      = "dst"
	KeyNotes    = "notes"
	KeyLinked   = "linked"
	KeyLinkName = "link_name"
)

// Shorthand builds the Raw for a bare string manifest element.
func Shorthand(name string) Raw {
	return Raw{Name: name}
}

// FromMap builds a Raw from a decoded manifest mapping. Keys are matched
// case-insensitively. Unrecognized keys are returned, sorted, so the caller
// can warn about them; a recognized key holding the wrong type is an error.
func FromMap(m map[string]interface{}) (Raw, []string, error) {
	var raw Raw
	var unknown []string

	for key, value := range m {
		k := strings.ToLower(strings.TrimSpace(key))
		switch k {
		case KeyName, KeySrc, KeyDst, KeyLinkName:
			s, err := stringField(k, value)
			if err != nil {
				return Raw{}, nil, err
			}
			switch k {
			case KeyName:
				raw.Name = s
			case KeySrc:
				raw.Src = s
			case KeyDst:
				raw.Dst = s
			case KeyLinkName:
				raw.LinkName = s
			}
		case KeyNotes:
			if value == nil {
				continue
			}
			s, err := stringField(k, value)
			if err != nil {
				return Raw{}, nil, err
			}
			raw.Notes = s
		case KeyLinked:
			if value == nil {
				continue
			}
			b, ok := value.(bool)
			if !ok {
				return Raw{}, nil, fmt.Errorf("%s must be a boolean, got %T", k, value)
			}
			raw.Linked = &b
		default:
			unknown = append(unknown, key)
		}
	}

	sort.Strings(unknown)
	return raw, unknown, nil
}

func stringField(key string, value interface{}) (string, error) {
	if value == nil {
		return "", nil
	}
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string, got %T", key, value)
	}
	return strings.TrimSpace(s), nil
}

// DerivedName is the name an entry built from r would carry, or "" if none
// can be derived.
func (r Raw) DerivedName() string {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		name = strings.TrimSpace(r.Src)
	}
	return baseName(name)
}

func baseName(p string) string {
	if p == "" {
		return ""
	}
	b := filepath.Base(p)
	switch b {
	case ".", "..", "~", string(filepath.Separator):
		return ""
	}
	return b
}
