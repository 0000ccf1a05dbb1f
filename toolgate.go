package toolgate

import (
	"context"
	"encoding/json"
	"time"
)

// Args is the argument map of a tool call, as produced by deserializing the
// caller's envelope (or built directly in Go).
type Args map[string]any

// Handler is the inner function a Tool dispatches to. It receives validated
// arguments (defaults substituted) and returns an opaque data payload.
type Handler func(ctx context.Context, args Args) (any, error)

// Tool is the contract for an invokable, schema-described operation.
// Implementations are immutable after construction.
type Tool interface {
	Name() string
	Description() string
	// Schema returns the tool's parameters as a JSON Schema map
	// (compatible with LLM tool definitions).
	Schema() map[string]any
	// Validate checks args against the declared parameters and returns a
	// fresh validated map with defaults substituted. Failures carry
	// KindMissingParameter, KindTypeMismatch, or KindUnknownParameter.
	Validate(args Args) (Args, error)
	// Call runs the handler with validated arguments.
	Call(ctx context.Context, args Args) (any, error)
}

// Call is a single invocation request. ID correlates logs and results; when
// empty, the Gateway generates one. The JSON form matches the wire envelope
// {"tool_name": ..., "arguments": {...}}.
type Call struct {
	ID   string `json:"id,omitempty"`
	Tool string `json:"tool_name"`
	Args Args   `json:"arguments"`
}

// Result is the uniform envelope returned by Gateway.Invoke. Exactly one of
// Data and Err is meaningful, selected by Success.
type Result struct {
	CallID   string
	ToolName string
	Success  bool
	Data     any
	Err      *InvocationError
	Duration time.Duration
	Cached   bool
}

// MarshalJSON renders the wire envelope with exactly one of data/error
// present: {"success": true, "data": ...} or
// {"success": false, "error": "<kind>", "message": ...}.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Success {
		return json.Marshal(struct {
			Success bool `json:"success"`
			Data    any  `json:"data"`
		}{true, r.Data})
	}
	env := struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
		Message string `json:"message,omitempty"`
	}{Success: false, Error: string(KindInternalError)}
	if r.Err != nil {
		env.Error = string(r.Err.Kind)
		env.Message = r.Err.Message
	}
	return json.Marshal(env)
}

func failure(err *InvocationError) *Result {
	return &Result{Success: false, Err: err}
}
