package dynjson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	ijsonschema "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/cybergodev/dynjson/internal"
)

// Validator checks a native JSON tree, as produced by Value.Interface.
type Validator interface {
	Validate(any) error
}

// Validate runs validator against v's native tree.
func (v Value) Validate(validator Validator) error {
	if !v.Exists() {
		return v.err
	}
	return validator.Validate(v.Interface())
}

// Schema is a compiled JSON Schema.
type Schema struct {
	compiled *jsonschema.Schema
	source   []byte
}

// ReflectSchema generates a JSON Schema document for model, a struct or a
// pointer to one. Property names and required-ness follow the json tags.
func ReflectSchema(model any) ([]byte, error) {
	if model == nil {
		return nil, &DecodeError{Kind: KindUnsupportedType, Target: "<nil>", Message: "cannot reflect a schema from nil"}
	}
	r := &ijsonschema.Reflector{
		Anonymous:      true,
		DoNotReference: true,
		ExpandedStruct: true,
	}
	s := r.Reflect(model)
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("dynjson: marshal reflected schema: %w", err)
	}
	return data, nil
}

// CompileSchema compiles a JSON Schema document.
func CompileSchema(doc []byte) (*Schema, error) {
	const url = "dynjson://schema.json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, bytes.NewReader(doc)); err != nil {
		return nil, fmt.Errorf("dynjson: load schema: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("dynjson: compile schema: %w", err)
	}
	return &Schema{compiled: compiled, source: append([]byte(nil), doc...)}, nil
}

// SchemaFor reflects and compiles the schema of model.
func SchemaFor(model any) (*Schema, error) {
	doc, err := ReflectSchema(model)
	if err != nil {
		return nil, err
	}
	return CompileSchema(doc)
}

// Validate implements Validator.
func (s *Schema) Validate(native any) error {
	if err := s.compiled.Validate(native); err != nil {
		return &DecodeError{
			Kind:    KindInvalidJSON,
			Target:  "schema",
			Message: strings.TrimSpace(err.Error()),
			Err:     err,
		}
	}
	return nil
}

// Source returns the schema document.
func (s *Schema) Source() []byte {
	return append([]byte(nil), s.source...)
}

// DecodeStructValidated validates v against the schema reflected from dst's
// type and then decodes it with DecodeStruct.
func (d *Decoder) DecodeStructValidated(v Value, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return d.DecodeStruct(v, dst)
	}
	s, err := cachedSchema(rv.Elem().Type(), dst)
	if err != nil {
		return err
	}
	if err := v.Validate(s); err != nil {
		return err
	}
	return d.DecodeStruct(v, dst)
}

var schemaCache = internal.NewTypeCache[*Schema]()

func cachedSchema(t reflect.Type, model any) (*Schema, error) {
	if s, ok := schemaCache.Load(t); ok {
		return s, nil
	}
	s, err := SchemaFor(model)
	if err != nil {
		return nil, err
	}
	return schemaCache.Store(t, s), nil
}
