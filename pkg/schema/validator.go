// Package schema compiles design template parameter schemas and checks layer parameters against them.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"swc/pkg/apperr"
)

const resource = "template.json"

var printer = message.NewPrinter(language.English)

// Compile parses a JSON Schema given as a decoded object. An empty schema accepts anything.
func Compile(doc map[string]any) (*jsonschema.Schema, error) {
	if len(doc) == 0 {
		doc = map[string]any{}
	}
	raw, err := reload(doc)
	if err != nil {
		return nil, err
	}
	c := jsonschema.NewCompiler()
	c.DefaultDraft(jsonschema.Draft2020)
	if err := c.AddResource(resource, raw); err != nil {
		return nil, apperr.Invalid("parameter_schema", err.Error())
	}
	sch, err := c.Compile(resource)
	if err != nil {
		return nil, apperr.Invalid("parameter_schema", err.Error())
	}
	return sch, nil
}

// Validate returns one detail per failing leaf of the schema, sorted by path.
func Validate(sch *jsonschema.Schema, params map[string]any) ([]apperr.Detail, error) {
	if params == nil {
		params = map[string]any{}
	}
	inst, err := reload(params)
	if err != nil {
		return nil, err
	}
	err = sch.Validate(inst)
	if err == nil {
		return nil, nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, err
	}
	var out []apperr.Detail
	collect(ve, &out)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out, nil
}

// Check compiles doc and validates params in one step, returning a validation error on failure.
func Check(doc map[string]any, params map[string]any) error {
	sch, err := Compile(doc)
	if err != nil {
		return err
	}
	details, err := Validate(sch, params)
	if err != nil {
		return err
	}
	if len(details) > 0 {
		return &apperr.ValidationError{Details: details}
	}
	return nil
}

func collect(ve *jsonschema.ValidationError, out *[]apperr.Detail) {
	if len(ve.Causes) == 0 {
		path := "parameters"
		if len(ve.InstanceLocation) > 0 {
			path += "." + strings.Join(ve.InstanceLocation, ".")
		}
		*out = append(*out, apperr.Detail{Field: path, Message: ve.ErrorKind.LocalizedString(printer)})
		return
	}
	for _, c := range ve.Causes {
		collect(c, out)
	}
}

// reload round-trips v through the library's own decoder so numbers arrive as json.Number.
func reload(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(b))
}
