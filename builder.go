package toolgate

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
)

// tool is the concrete Tool built by NewTool, NewTypedTool, or NewDynamicTool.
// Immutable after construction.
type tool struct {
	name        string
	description string
	schema      map[string]any
	validate    func(Args) (Args, error)
	call        Handler
}

// NewTool builds a Tool from declared parameter descriptors and a handler.
// The exported schema and the validator are derived from the same
// descriptors. Returns an error for an empty name, nil handler, or an
// invalid parameter list.
func NewTool(name, description string, params []Param, h Handler) (Tool, error) {
	if name == "" {
		return nil, fmt.Errorf("tool name must not be empty")
	}
	if h == nil {
		return nil, fmt.Errorf("tool %q: handler must not be nil", name)
	}
	if err := checkParams(params); err != nil {
		return nil, fmt.Errorf("tool %q: %w", name, err)
	}
	declared := append([]Param(nil), params...)
	return &tool{
		name:        name,
		description: description,
		schema:      schemaFromParams(declared),
		validate: func(args Args) (Args, error) {
			return ValidateArgs(declared, args)
		},
		call: h,
	}, nil
}

// NewTypedTool builds a Tool from a typed function. Parameter descriptors
// are reflected from T's struct tags (see ParamsOf), and validated arguments
// are decoded into T before the function runs.
func NewTypedTool[T any, R any](
	name, description string,
	fn func(ctx context.Context, args T) (R, error),
) (Tool, error) {
	if fn == nil {
		return nil, fmt.Errorf("tool %q: handler must not be nil", name)
	}
	params, err := ParamsOf[T]()
	if err != nil {
		return nil, fmt.Errorf("tool %q: %w", name, err)
	}
	handler := func(ctx context.Context, args Args) (any, error) {
		b, err := json.Marshal(args)
		if err != nil {
			return nil, err
		}
		var typed T
		if err := json.Unmarshal(b, &typed); err != nil {
			return nil, err
		}
		return fn(ctx, typed)
	}
	return NewTool(name, description, params, handler)
}

func (t *tool) Name() string        { return t.name }
func (t *tool) Description() string { return t.description }

// Schema returns a shallow copy of the JSON Schema (top-level keys only).
// Nested maps are shared; callers must not mutate them.
func (t *tool) Schema() map[string]any { return maps.Clone(t.schema) }

func (t *tool) Validate(args Args) (Args, error) { return t.validate(args) }

func (t *tool) Call(ctx context.Context, args Args) (any, error) {
	return t.call(ctx, args)
}

var _ Tool = (*tool)(nil)
