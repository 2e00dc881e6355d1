// Package schemas compiles JSON schemas once per process and shares them by
// name. Deck files and structured LLM output are both checked through it.
package schemas

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ErrMalformed is returned by ValidateJSON when the instance is not JSON.
var ErrMalformed = errors.New("malformed JSON")

type entry struct {
	once   sync.Once
	schema *jsonschema.Schema
	err    error
}

var cache sync.Map // name -> *entry

// Compile returns the schema registered under name, compiling def on first
// use. def is any value that marshals to a JSON schema document. Later calls
// with the same name return the first result, including a compile error.
func Compile(name string, def any) (*jsonschema.Schema, error) {
	return compile(name, func() ([]byte, error) {
		data, err := json.Marshal(def)
		if err != nil {
			return nil, fmt.Errorf("marshal schema %q: %w", name, err)
		}
		return data, nil
	})
}

// CompileJSON is Compile for a schema document that is already encoded.
func CompileJSON(name string, doc []byte) (*jsonschema.Schema, error) {
	return compile(name, func() ([]byte, error) { return doc, nil })
}

func compile(name string, load func() ([]byte, error)) (*jsonschema.Schema, error) {
	v, _ := cache.LoadOrStore(name, &entry{})
	e := v.(*entry)
	e.once.Do(func() {
		data, err := load()
		if err != nil {
			e.err = err
			return
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			e.err = fmt.Errorf("parse schema %q: %w", name, err)
			return
		}
		url := fmt.Sprintf("schema://%s.json", name)
		c := jsonschema.NewCompiler()
		if err := c.AddResource(url, doc); err != nil {
			e.err = fmt.Errorf("add schema %q: %w", name, err)
			return
		}
		e.schema, e.err = c.Compile(url)
	})
	return e.schema, e.err
}

// ValidateJSON decodes raw and validates it against s. A decode failure
// wraps ErrMalformed; a schema violation is returned as the validator's
// *jsonschema.ValidationError.
func ValidateJSON(s *jsonschema.Schema, raw []byte) error {
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return s.Validate(inst)
}
