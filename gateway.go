package toolgate

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Gateway orchestrates lookup, validation, middleware, and dispatch. It
// holds no per-invocation state of its own; invocations are independent and
// may run concurrently. The gateway imposes no timeout — a caller-supplied
// deadline on ctx is the handler's responsibility to honor.
type Gateway struct {
	registry *Registry
	chain    *Chain
	newID    func() string
}

// New creates a Gateway with the given options.
func New(opts ...Option) *Gateway {
	o := gatewayOptions{newID: uuid.NewString}
	for _, opt := range opts {
		opt(&o)
	}
	return &Gateway{
		registry: NewRegistry(),
		chain:    NewChain(o.stages...),
		newID:    o.newID,
	}
}

// Register adds a tool to the gateway's registry. Returns ErrDuplicateTool
// if the name is taken.
func (g *Gateway) Register(t Tool) error {
	return g.registry.Register(t)
}

// Tools returns the registered tools sorted by name.
func (g *Gateway) Tools() []Tool {
	return g.registry.All()
}

// Invoke runs one call through the gateway: registry lookup, strict
// validation, middleware request phase, handler, middleware response phase.
// Every outcome — unknown tool, invalid arguments, middleware rejection,
// handler error or panic — returns a well-formed Result; nothing escapes as
// a fault. Lookup and validation failures never reach the chain or handler.
func (g *Gateway) Invoke(ctx context.Context, call Call) Result {
	start := time.Now()
	if call.ID == "" {
		call.ID = g.newID()
	}

	tool, ok := g.registry.Lookup(call.Tool)
	if !ok {
		res := failure(errf(KindToolNotFound, "no tool named %q", call.Tool))
		return *stamp(res, &call, start)
	}
	validated, err := tool.Validate(call.Args)
	if err != nil {
		res := failure(asInvocationError(err, KindInternalError))
		return *stamp(res, &call, start)
	}
	call.Args = validated

	res, completed := g.chain.Request(ctx, &call)
	if res == nil {
		res = dispatch(ctx, tool, &call)
	}
	stamp(res, &call, start)
	res = g.chain.Response(ctx, &call, res, completed)
	if res == nil {
		res = stamp(failure(errf(KindInternalError, "middleware chain returned no result")), &call, start)
	}
	return *res
}

// dispatch runs the handler, converting returned errors and panics into
// handler failures so one bad tool never corrupts the gateway.
func dispatch(ctx context.Context, tool Tool, call *Call) (res *Result) {
	defer func() {
		if p := recover(); p != nil {
			res = failure(errf(KindHandlerError, "panic: %v", p))
		}
	}()
	data, err := tool.Call(ctx, call.Args)
	if err != nil {
		return failure(&InvocationError{Kind: KindHandlerError, Message: err.Error(), Err: err})
	}
	return &Result{Success: true, Data: data}
}

// stamp fills the identity and timing fields shared by every outcome.
func stamp(res *Result, call *Call, start time.Time) *Result {
	res.CallID = call.ID
	res.ToolName = call.Tool
	res.Duration = time.Since(start)
	return res
}
