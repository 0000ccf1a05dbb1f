package toolgate

import "context"

// Stage is a composable request/response transform wrapped around handler
// dispatch. The request phase may short-circuit by returning a non-nil
// Result (e.g. a cache hit) or reject the call by returning an error (mapped
// to KindMiddlewareRejected). The response phase observes or rewrites the
// result; returning nil keeps the incoming result. Stages must be safe for
// concurrent use: invocations may run in parallel.
type Stage interface {
	Name() string
	Request(ctx context.Context, call *Call) (*Result, error)
	Response(ctx context.Context, call *Call, res *Result) *Result
}

// Chain is an ordered sequence of stages. The request phase runs left to
// right; the response phase unwinds right to left, so the last-added stage
// sees the response first and protective stages wrap the handler
// symmetrically.
type Chain struct {
	stages []Stage
}

// NewChain builds a Chain over the given stages in declaration order.
func NewChain(stages ...Stage) *Chain {
	return &Chain{stages: append([]Stage(nil), stages...)}
}

// Len returns the number of stages.
func (c *Chain) Len() int { return len(c.stages) }

// Request applies each stage's request phase in order. It returns a non-nil
// Result when a stage short-circuits (a synthesized failure for a rejection,
// or the stage's own result such as a cache hit), together with the number
// of stages whose request phase completed; those are the stages that will
// observe the response phase. A nil Result means the handler should run and
// every stage completed.
func (c *Chain) Request(ctx context.Context, call *Call) (*Result, int) {
	for i, st := range c.stages {
		res, err := stageRequest(ctx, st, call)
		if err != nil {
			return failure(asInvocationError(err, KindMiddlewareRejected)), i
		}
		if res != nil {
			return res, i
		}
	}
	return nil, len(c.stages)
}

// Response unwinds the response phase right to left over the first
// `completed` stages. Success and failure results alike pass through, so an
// outer logging stage still observes rejected calls.
func (c *Chain) Response(ctx context.Context, call *Call, res *Result, completed int) *Result {
	if completed > len(c.stages) {
		completed = len(c.stages)
	}
	for i := completed - 1; i >= 0; i-- {
		res = stageResponse(ctx, c.stages[i], call, res)
	}
	return res
}

// stageRequest runs one request-phase transform, converting a stage panic
// into an internal error instead of letting it escape.
func stageRequest(ctx context.Context, st Stage, call *Call) (res *Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			res = nil
			err = errf(KindInternalError, "stage %s: panic: %v", st.Name(), p)
		}
	}()
	return st.Request(ctx, call)
}

func stageResponse(ctx context.Context, st Stage, call *Call, res *Result) (out *Result) {
	defer func() {
		if p := recover(); p != nil {
			f := failure(errf(KindInternalError, "stage %s: panic: %v", st.Name(), p))
			f.CallID, f.ToolName, f.Duration = res.CallID, res.ToolName, res.Duration
			out = f
		}
	}()
	out = st.Response(ctx, call, res)
	if out == nil {
		out = res
	}
	return out
}
