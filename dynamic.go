package toolgate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
)

// NewDynamicTool builds a Tool from a raw JSON Schema map and a handler.
// Useful when the schema comes from configuration or a remote catalog rather
// than Go types. The schema is deep-copied, forced strict (every object gets
// additionalProperties: false so unknown arguments are rejected), and
// compiled once at construction. Top-level property defaults are substituted
// after validation.
func NewDynamicTool(name, description string, schema map[string]any, h Handler) (Tool, error) {
	if name == "" {
		return nil, fmt.Errorf("tool name must not be empty")
	}
	if h == nil {
		return nil, fmt.Errorf("tool %q: handler must not be nil", name)
	}
	if schema == nil {
		return nil, fmt.Errorf("tool %q: schema map must not be nil", name)
	}
	// Deep copy before strict-mode edits so the caller's map is never mutated.
	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("tool %q: copy schema: %w", name, err)
	}
	var schemaCopy map[string]any
	if err := json.Unmarshal(raw, &schemaCopy); err != nil {
		return nil, fmt.Errorf("tool %q: copy schema: %w", name, err)
	}
	applyStrictMode(schemaCopy)
	compiled, err := compileSchema(schemaCopy)
	if err != nil {
		return nil, fmt.Errorf("tool %q: compile schema: %w", name, err)
	}
	defaults := topLevelDefaults(schemaCopy)
	return &tool{
		name:        name,
		description: description,
		schema:      schemaCopy,
		validate: func(args Args) (Args, error) {
			return validateDynamic(compiled, defaults, args)
		},
		call: h,
	}, nil
}

// compileSchema compiles a raw JSON Schema map. The json round trip
// normalizes Go-typed values into the decoded form the compiler expects.
func compileSchema(schemaMap map[string]any) (*jsonschema.Schema, error) {
	data, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("tool.json", doc); err != nil {
		return nil, err
	}
	return compiler.Compile("tool.json")
}

func validateDynamic(compiled *jsonschema.Schema, defaults Args, args Args) (Args, error) {
	// Normalize to plain decoded JSON (float64 numbers) before validating.
	data, err := json.Marshal(args)
	if err != nil {
		return nil, errf(KindTypeMismatch, "arguments are not serializable: %v", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, errf(KindTypeMismatch, "arguments are not an object: %v", err)
	}
	if v == nil {
		v = map[string]any{}
	}
	if err := compiled.Validate(v); err != nil {
		return nil, classifySchemaError(err)
	}
	out := make(Args, len(args)+len(defaults))
	maps.Copy(out, args)
	for name, def := range defaults {
		if _, present := out[name]; !present {
			out[name] = def
		}
	}
	return out, nil
}

// classifySchemaError maps a schema validation failure onto the gateway's
// error kinds by inspecting the first leaf cause.
func classifySchemaError(err error) *InvocationError {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return errf(KindTypeMismatch, "%v", err)
	}
	leaf := ve
	for len(leaf.Causes) > 0 {
		leaf = leaf.Causes[0]
	}
	switch k := leaf.ErrorKind.(type) {
	case *kind.Required:
		if len(k.Missing) > 0 {
			return errf(KindMissingParameter, "missing required parameter %q", k.Missing[0])
		}
		return errf(KindMissingParameter, "missing required parameter")
	case *kind.AdditionalProperties:
		if len(k.Properties) > 0 {
			return errf(KindUnknownParameter, "unknown parameter %q", k.Properties[0])
		}
		return errf(KindUnknownParameter, "unknown parameter")
	case *kind.Type:
		return errf(KindTypeMismatch, "expected %v, got %s", k.Want, k.Got)
	case *kind.Enum:
		return errf(KindTypeMismatch, "value not in enum")
	default:
		return &InvocationError{Kind: KindTypeMismatch, Message: leaf.Error(), Err: ve}
	}
}

// walkSchema recursively visits every map node in the schema tree
// (including $defs and definitions).
func walkSchema(schemaMap map[string]any, visit func(map[string]any)) {
	if schemaMap == nil {
		return
	}
	visit(schemaMap)
	for _, val := range schemaMap {
		switch v := val.(type) {
		case map[string]any:
			walkSchema(v, visit)
		case []any:
			for _, item := range v {
				if m, ok := item.(map[string]any); ok {
					walkSchema(m, visit)
				}
			}
		}
	}
}

// applyStrictMode sets additionalProperties: false for every object node
// that declares properties, unless the schema already says otherwise.
func applyStrictMode(schemaMap map[string]any) {
	walkSchema(schemaMap, func(n map[string]any) {
		if _, isObj := n["properties"]; isObj {
			if _, set := n["additionalProperties"]; !set {
				n["additionalProperties"] = false
			}
		}
	})
}

// topLevelDefaults collects default values of root-level properties.
func topLevelDefaults(schemaMap map[string]any) Args {
	props, ok := schemaMap["properties"].(map[string]any)
	if !ok {
		return nil
	}
	defaults := make(Args)
	for name, val := range props {
		prop, ok := val.(map[string]any)
		if !ok {
			continue
		}
		if def, ok := prop["default"]; ok && def != nil {
			defaults[name] = def
		}
	}
	return defaults
}
