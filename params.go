package toolgate

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/invopop/jsonschema"
)

// ParamType is the JSON type tag a parameter value must satisfy.
type ParamType string

const (
	TypeString  ParamType = "string"
	TypeNumber  ParamType = "number"
	TypeInteger ParamType = "integer"
	TypeBoolean ParamType = "boolean"
	TypeArray   ParamType = "array"
	TypeObject  ParamType = "object"
)

func (t ParamType) valid() bool {
	switch t {
	case TypeString, TypeNumber, TypeInteger, TypeBoolean, TypeArray, TypeObject:
		return true
	}
	return false
}

// Param describes one declared parameter of a tool. A non-empty Enum
// restricts the value to the listed members (checked after the type tag).
type Param struct {
	Name        string
	Type        ParamType
	Required    bool
	Default     any
	Enum        []any
	Description string
}

// checkParams rejects specs a Tool must never be built from: empty or
// duplicate names and unknown type tags.
func checkParams(params []Param) error {
	seen := make(map[string]struct{}, len(params))
	for _, p := range params {
		if p.Name == "" {
			return fmt.Errorf("parameter with empty name")
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("duplicate parameter %q", p.Name)
		}
		seen[p.Name] = struct{}{}
		if !p.Type.valid() {
			return fmt.Errorf("parameter %q: unknown type tag %q", p.Name, p.Type)
		}
	}
	return nil
}

// schemaFromParams renders declared parameters as a JSON Schema object.
// additionalProperties is always false: the validator is strict, and the
// exported schema should promise the same.
func schemaFromParams(params []Param) map[string]any {
	props := make(map[string]any, len(params))
	var required []string
	for _, p := range params {
		prop := map[string]any{"type": string(p.Type)}
		if p.Description != "" {
			prop["description"] = p.Description
		}
		if p.Default != nil {
			prop["default"] = p.Default
		}
		if len(p.Enum) > 0 {
			prop["enum"] = append([]any(nil), p.Enum...)
		}
		props[p.Name] = prop
		if p.Required {
			required = append(required, p.Name)
		}
	}
	schema := map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// ParamsOf reflects the exported fields of struct type T into parameter
// descriptors. One set of struct tags (json, jsonschema, description) drives
// both the schema shown to the caller and the validation of incoming
// arguments. Fields without omitempty are required; enum and default come
// from jsonschema tags (e.g. `jsonschema:"enum=celsius,enum=kelvin,default=celsius"`).
func ParamsOf[T any]() ([]Param, error) {
	r := &jsonschema.Reflector{DoNotReference: true, ExpandedStruct: true}
	schema := r.Reflect(new(T))
	if schema == nil || schema.Properties == nil {
		return nil, fmt.Errorf("argument type must be a struct with exported fields")
	}
	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}
	var params []Param
	for pair := schema.Properties.Oldest(); pair != nil; pair = pair.Next() {
		prop := pair.Value
		pt := ParamType(prop.Type)
		if !pt.valid() {
			return nil, fmt.Errorf("field %q: unsupported schema type %q", pair.Key, prop.Type)
		}
		params = append(params, Param{
			Name:        pair.Key,
			Type:        pt,
			Required:    required[pair.Key],
			Default:     coerceDefault(pt, prop.Default),
			Enum:        append([]any(nil), prop.Enum...),
			Description: prop.Description,
		})
	}
	if len(params) == 0 {
		return nil, fmt.Errorf("argument type must be a struct with exported fields")
	}
	enrichFromStructTags[T](params)
	return params, nil
}

// enrichFromStructTags fills descriptions from `description` struct tags,
// matched to parameters by the json tag name.
func enrichFromStructTags[T any](params []Param) {
	typ := reflect.TypeOf(*new(T))
	if typ == nil {
		return
	}
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return
	}
	descriptions := make(map[string]string)
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		jsonTag := strings.Split(field.Tag.Get("json"), ",")[0]
		if jsonTag == "" || jsonTag == "-" {
			continue
		}
		if desc := field.Tag.Get("description"); desc != "" {
			descriptions[jsonTag] = desc
		}
	}
	for i := range params {
		if params[i].Description == "" {
			params[i].Description = descriptions[params[i].Name]
		}
	}
}

// coerceDefault converts tag-sourced defaults (which some reflectors keep as
// strings) into the declared parameter type so substitution stays typed.
func coerceDefault(t ParamType, def any) any {
	if def == nil {
		return nil
	}
	s, isString := def.(string)
	if !isString || t == TypeString {
		return def
	}
	switch t {
	case TypeNumber:
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	case TypeInteger:
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
	case TypeBoolean:
		if b, err := strconv.ParseBool(s); err == nil {
			return b
		}
	case TypeArray, TypeObject:
		var v any
		if err := json.Unmarshal([]byte(s), &v); err == nil {
			return v
		}
	}
	return def
}
