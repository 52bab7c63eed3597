// Package manifest reads and writes the YAML list of entries doty manages.
//
// Each element is either a bare string, shorthand for {name: <string>},
// or a mapping with the keys name, src, dst, notes, linked and link_name.
// Elements that are neither are skipped with a diagnostic. A mapping whose
// known keys carry the wrong type fails the whole parse: dropping it would
// read as a removed entry and erase the record on the next write. Comments
// are not preserved; a fixed header is written on every write.
package manifest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/dotyhq/doty/pkg/entry"
	"github.com/dotyhq/doty/pkg/errors"
	"github.com/dotyhq/doty/pkg/types"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the manifest lives, relative to the repository root.
const DefaultPath = ".doty_config/doty_lock.yml"

// Header is written above the entries on every write.
const Header = "# doty manifest\n" +
	"# Entries are normalized on every update. Comments in this file are not preserved.\n\n"

//go:embed entry.schema.json
var entrySchema []byte

var schema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource("entry.schema.json", bytes.NewReader(entrySchema)); err != nil {
		panic(err)
	}
	return c.MustCompile("entry.schema.json")
}

// Diagnostic describes a problem with one manifest element.
type Diagnostic struct {
	Index   int
	Line    int
	Message string
	Skipped bool
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("element %d (line %d): %s", d.Index, d.Line, d.Message)
}

// Manifest is the ordered list of records in a manifest file.
type Manifest struct {
	Records     []entry.Raw
	Diagnostics []Diagnostic
}

// Parse decodes manifest bytes. Empty input is an empty manifest. Input
// that is not YAML, whose top level is not a sequence, or that holds a
// malformed mapping element is an ErrManifestParse error.
func Parse(data []byte) (*Manifest, error) {
	m := &Manifest{}
	if len(bytes.TrimSpace(data)) == 0 {
		return m, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrManifestParse, "manifest is not valid YAML")
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return m, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return m, nil
	}
	if root.Kind != yaml.SequenceNode {
		return nil, errors.Newf(errors.ErrManifestParse, "manifest must be a list of entries (line %d)", root.Line)
	}

	for i, node := range root.Content {
		raw, diags, ok, err := parseElement(i, node)
		if err != nil {
			return nil, err
		}
		m.Diagnostics = append(m.Diagnostics, diags...)
		if ok {
			m.Records = append(m.Records, raw)
		}
	}
	return m, nil
}

func parseElement(i int, node *yaml.Node) (entry.Raw, []Diagnostic, bool, error) {
	skip := func(format string, args ...interface{}) (entry.Raw, []Diagnostic, bool, error) {
		return entry.Raw{}, []Diagnostic{{Index: i, Line: node.Line, Message: fmt.Sprintf(format, args...), Skipped: true}}, false, nil
	}
	malformed := func(err error) (entry.Raw, []Diagnostic, bool, error) {
		return entry.Raw{}, nil, false, errors.Wrapf(err, errors.ErrManifestParse,
			"manifest element %d (line %d) is malformed", i, node.Line).
			WithDetail("index", i).
			WithDetail("line", node.Line)
	}

	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag != "!!str" {
			return skip("expected a string or a mapping, got %s", strings.TrimPrefix(node.Tag, "!!"))
		}
		if strings.TrimSpace(node.Value) == "" {
			return skip("empty entry name")
		}
		return entry.Shorthand(strings.TrimSpace(node.Value)), nil, true, nil

	case yaml.MappingNode:
		var decoded map[string]interface{}
		if err := node.Decode(&decoded); err != nil {
			return malformed(err)
		}
		lowered := make(map[string]interface{}, len(decoded))
		for k, v := range decoded {
			lowered[strings.ToLower(strings.TrimSpace(k))] = v
		}
		if err := validate(lowered); err != nil {
			return malformed(err)
		}
		raw, unknown, err := entry.FromMap(lowered)
		if err != nil {
			return malformed(err)
		}
		var diags []Diagnostic
		if len(unknown) > 0 {
			diags = append(diags, Diagnostic{Index: i, Line: node.Line,
				Message: fmt.Sprintf("ignoring unknown keys: %s", strings.Join(unknown, ", "))})
		}
		return raw, diags, true, nil

	default:
		return skip("expected a string or a mapping")
	}
}

// validate runs the entry schema over a decoded mapping. The value goes
// through JSON first so the validator only sees JSON types.
func validate(m map[string]interface{}) error {
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	return schema.Validate(v)
}

// Encode renders records as a manifest file, header included.
func Encode(records []entry.Raw) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(Header)
	if len(records) == 0 {
		buf.WriteString("[]\n")
		return buf.Bytes(), nil
	}

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	return buf.Bytes(), nil
}

// Records returns the write-back form of entries, in order.
func Records(entries []*entry.Entry) []entry.Raw {
	out := make([]entry.Raw, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Record())
	}
	return out
}

// Read loads the manifest at path. A missing file is an empty manifest.
func Read(fsys types.FS, path string) ([]byte, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrManifestParse, "failed to read manifest %s", path)
	}
	return data, nil
}

// Write stores data at path, creating the parent directory if needed.
func Write(fsys types.FS, path string, data []byte) error {
	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create manifest directory: %w", err)
	}
	if err := fsys.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// Log emits every diagnostic as a warning.
func (m *Manifest) Log(logger zerolog.Logger, source string) {
	for _, d := range m.Diagnostics {
		ev := logger.Warn().Str("manifest", source).Int("element", d.Index).Int("line", d.Line)
		if d.Skipped {
			ev.Msg("Skipping manifest element: " + d.Message)
			continue
		}
		ev.Msg(d.Message)
	}
}
