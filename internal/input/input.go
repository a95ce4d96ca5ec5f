// Package input loads lists of values to evaluate from JSON, YAML or CUE
// files.
//
// Every format describes the same document: a list of inputs, where each
// item is either a bare value in the JSON form understood by
// value.Unmarshal or an object {name, value} naming it.
//
//	inputs:
//	  - 1
//	  - name: rotation
//	    value: {mathjs: Complex, re: 0, im: 3.141592653589793}
package input

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/sonphnt/mathjs/internal/value"
)

// Entry is a single named input.
type Entry struct {
	Name  string
	Value value.Value
}

// LoadError reports a failure to load an input file. Index is the position
// of the offending item, or -1 when the file as a whole is at fault.
type LoadError struct {
	Path  string
	Index int
	Err   error
}

func (e *LoadError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s: inputs[%d]: %v", e.Path, e.Index, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// inputsField is the top-level field holding the list in object documents.
const inputsField = "inputs"

// Load reads the file at path and returns its entries in file order.
// The format is chosen by extension: .json, .yaml, .yml or .cue.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return Parse(path, data)
}

// Parse decodes data as if it had been read from path.
func Parse(path string, data []byte) ([]Entry, error) {
	var (
		doc any
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		doc, err = decodeJSON(data)
	case ".yaml", ".yml":
		doc, err = decodeYAML(data)
	case ".cue":
		doc, err = decodeCUE(path, data)
	default:
		err = fmt.Errorf("unsupported input format %q", ext)
	}
	if err != nil {
		return nil, &LoadError{Path: path, Index: -1, Err: err}
	}

	items, err := inputList(doc)
	if err != nil {
		return nil, &LoadError{Path: path, Index: -1, Err: err}
	}

	entries := make([]Entry, 0, len(items))
	for i, item := range items {
		entry, err := toEntry(i, item)
		if err != nil {
			return nil, &LoadError{Path: path, Index: i, Err: err}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return doc, nil
}

func decodeYAML(data []byte) (any, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return doc, nil
}

// decodeCUE evaluates the file and exports its inputs field as JSON, so
// CUE expressions (references, arithmetic, comprehensions) are resolved
// before values are decoded.
func decodeCUE(path string, data []byte) (any, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("building CUE value: %w", err)
	}

	list := v.LookupPath(cue.ParsePath(inputsField))
	if !list.Exists() {
		return nil, fmt.Errorf("missing %q field", inputsField)
	}
	if err := list.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("%s: %w", inputsField, err)
	}

	raw, err := list.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("exporting %s: %w", inputsField, err)
	}
	items, err := decodeJSON(raw)
	if err != nil {
		return nil, err
	}
	return map[string]any{inputsField: items}, nil
}

// inputList accepts either a bare list or an object with an inputs list.
func inputList(doc any) ([]any, error) {
	switch d := doc.(type) {
	case []any:
		return d, nil
	case map[string]any:
		items, ok := d[inputsField]
		if !ok {
			return nil, fmt.Errorf("missing %q field", inputsField)
		}
		list, ok := items.([]any)
		if !ok {
			return nil, fmt.Errorf("%q must be a list, got %T", inputsField, items)
		}
		return list, nil
	case nil:
		return nil, fmt.Errorf("empty document")
	default:
		return nil, fmt.Errorf("expected a list of inputs, got %T", doc)
	}
}

func toEntry(i int, item any) (Entry, error) {
	name := fmt.Sprintf("#%d", i)

	if obj, ok := item.(map[string]any); ok && isNamed(obj) {
		for key := range obj {
			if key != "name" && key != "value" {
				return Entry{}, fmt.Errorf("unknown field %q", key)
			}
		}
		if n, ok := obj["name"]; ok {
			s, ok := n.(string)
			if !ok || s == "" {
				return Entry{}, fmt.Errorf("name must be a non-empty string")
			}
			name = s
		}
		item = obj["value"]
	}

	v, err := value.FromPlain(item)
	if err != nil {
		return Entry{}, err
	}
	return Entry{Name: name, Value: v}, nil
}

// isNamed reports whether obj is a {name, value} wrapper rather than a
// tagged value.
func isNamed(obj map[string]any) bool {
	if _, tagged := obj["mathjs"]; tagged {
		return false
	}
	_, hasValue := obj["value"]
	return hasValue
}
