// Package testutil provides test helpers for toolgate (e.g. StaticTool and
// RecordingStage).
package testutil

import (
	"context"
	"sync"

	"github.com/skosovsky/toolgate"
)

// StaticTool is a configurable Tool implementation for tests. Zero-value
// fields fall back to permissive defaults: every argument map validates as
// is and Call returns nil.
type StaticTool struct {
	NameVal    string
	DescVal    string
	SchemaVal  map[string]any
	ValidateFn func(args toolgate.Args) (toolgate.Args, error)
	CallFn     func(ctx context.Context, args toolgate.Args) (any, error)
}

// Name returns the tool name.
func (t *StaticTool) Name() string {
	if t.NameVal != "" {
		return t.NameVal
	}
	return "static"
}

// Description returns the tool description.
func (t *StaticTool) Description() string { return t.DescVal }

// Schema returns the configured schema (or an empty object schema).
func (t *StaticTool) Schema() map[string]any {
	if t.SchemaVal != nil {
		return t.SchemaVal
	}
	return map[string]any{"type": "object"}
}

// Validate runs ValidateFn if set, otherwise accepts args unchanged.
func (t *StaticTool) Validate(args toolgate.Args) (toolgate.Args, error) {
	if t.ValidateFn != nil {
		return t.ValidateFn(args)
	}
	return args, nil
}

// Call runs CallFn if set, otherwise returns nil.
func (t *StaticTool) Call(ctx context.Context, args toolgate.Args) (any, error) {
	if t.CallFn != nil {
		return t.CallFn(ctx, args)
	}
	return nil, nil
}

// RecordingStage appends "<name>:request" / "<name>:response" events to a
// shared log, for asserting chain ordering. Optional hooks inject a
// rejection or a short-circuit result.
type RecordingStage struct {
	StageName    string
	Events       *EventLog
	RejectWith   error
	ShortCircuit *toolgate.Result
}

func (s *RecordingStage) Name() string { return s.StageName }

func (s *RecordingStage) Request(_ context.Context, _ *toolgate.Call) (*toolgate.Result, error) {
	s.Events.Append(s.StageName + ":request")
	if s.RejectWith != nil {
		return nil, s.RejectWith
	}
	if s.ShortCircuit != nil {
		return s.ShortCircuit, nil
	}
	return nil, nil
}

func (s *RecordingStage) Response(_ context.Context, _ *toolgate.Call, res *toolgate.Result) *toolgate.Result {
	s.Events.Append(s.StageName + ":response")
	return res
}

// EventLog is a concurrency-safe ordered list of strings.
type EventLog struct {
	mu     sync.Mutex
	events []string
}

// Append adds one event.
func (l *EventLog) Append(event string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
}

// All returns a copy of the recorded events in order.
func (l *EventLog) All() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.events...)
}

var (
	_ toolgate.Tool  = (*StaticTool)(nil)
	_ toolgate.Stage = (*RecordingStage)(nil)
)
