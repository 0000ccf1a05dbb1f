package toolgate

// gatewayOptions hold optional Gateway settings.
type gatewayOptions struct {
	stages []Stage
	newID  func() string
}

// Option configures a Gateway (e.g. WithStages, WithIDGenerator).
type Option func(*gatewayOptions)

// WithStages appends middleware stages in request-phase order: the first
// stage listed is outermost and sees the response last.
func WithStages(stages ...Stage) Option {
	return func(o *gatewayOptions) {
		o.stages = append(o.stages, stages...)
	}
}

// WithIDGenerator overrides how call IDs are generated when the caller
// supplies none. The default is a random UUID.
func WithIDGenerator(fn func() string) Option {
	return func(o *gatewayOptions) {
		if fn != nil {
			o.newID = fn
		}
	}
}
