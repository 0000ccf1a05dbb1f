package toolgate

import "context"

// AuthFunc decides whether a call may proceed. A non-nil error rejects the
// call; the gateway maps it to KindMiddlewareRejected unless the error
// already carries a kind.
type AuthFunc func(ctx context.Context, call *Call) error

// AuthStage rejects unauthorized calls before the handler runs. Credentials
// travel in the context (or in the call itself); the stage only applies the
// supplied decision function.
type AuthStage struct {
	authorize AuthFunc
}

// NewAuthStage creates an auth stage. A nil authorize func admits every call.
func NewAuthStage(authorize AuthFunc) *AuthStage {
	return &AuthStage{authorize: authorize}
}

func (s *AuthStage) Name() string { return "auth" }

func (s *AuthStage) Request(ctx context.Context, call *Call) (*Result, error) {
	if s.authorize == nil {
		return nil, nil
	}
	if err := s.authorize(ctx, call); err != nil {
		return nil, err
	}
	return nil, nil
}

func (s *AuthStage) Response(_ context.Context, _ *Call, res *Result) *Result {
	return res
}
