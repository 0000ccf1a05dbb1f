// Package toolgate is a small tool-invocation gateway: a registry of
// schema-described tools, a strict argument validator, and an ordered
// middleware chain (auth, cache, logging, metrics) wrapped around every
// dispatch.
//
// # Overview
//
// Assistants produce tool calls as name + argument map. The gateway turns
// that into a handler call: lookup → validate (defaults substituted,
// unknown arguments rejected) → middleware request phase → handler →
// middleware response phase → uniform result envelope. Nothing escapes
// Invoke as a fault; handler errors and panics come back as structured
// failures.
//
// Pipeline: params (declared or reflected from a struct) → NewTool /
// NewTypedTool / NewDynamicTool → Tool → Gateway.Register → Invoke → Result.
//
// # Key concepts
//
//   - Strict validation: a call either matches the declared parameters
//     exactly (after defaults) or fails fast with a named error kind,
//     before any middleware or handler runs.
//   - Symmetric middleware: the request phase runs stages left to right,
//     the response phase unwinds right to left, so protective stages wrap
//     the handler the way they were declared.
//   - Uniform envelope: every invocation returns a Result with either data
//     or an error descriptor, never both.
//
// # Example
//
//	add, err := toolgate.NewTool("add", "Add two numbers", []toolgate.Param{
//	    {Name: "a", Type: toolgate.TypeNumber, Required: true},
//	    {Name: "b", Type: toolgate.TypeNumber, Required: true},
//	}, func(_ context.Context, args toolgate.Args) (any, error) {
//	    return args["a"].(float64) + args["b"].(float64), nil
//	})
//	if err != nil { ... }
//	gw := toolgate.New(toolgate.WithStages(toolgate.NewLoggingStage(nil)))
//	if err := gw.Register(add); err != nil { ... }
//	res := gw.Invoke(ctx, toolgate.Call{Tool: "add", Args: toolgate.Args{"a": 2.0, "b": 3.0}})
package toolgate
