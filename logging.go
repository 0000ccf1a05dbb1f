package toolgate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

const logPayloadLimit = 512

// LoggingStage observes calls and results without mutating them. Placed
// first in the chain, it also sees calls rejected by inner stages.
type LoggingStage struct {
	logger *slog.Logger
}

// NewLoggingStage creates a logging stage; a nil logger falls back to
// slog.Default().
func NewLoggingStage(logger *slog.Logger) *LoggingStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingStage{logger: logger}
}

func (s *LoggingStage) Name() string { return "logging" }

// Request logs the call and never short-circuits.
func (s *LoggingStage) Request(_ context.Context, call *Call) (*Result, error) {
	s.logger.Info("tool call",
		"call_id", call.ID,
		"tool", call.Tool,
		"args", preview(call.Args),
	)
	return nil, nil
}

// Response logs the outcome and passes the result through unchanged.
func (s *LoggingStage) Response(_ context.Context, call *Call, res *Result) *Result {
	if res.Success {
		s.logger.Info("tool result",
			"call_id", call.ID,
			"tool", call.Tool,
			"cached", res.Cached,
			"duration", res.Duration,
			"data", preview(res.Data),
		)
		return res
	}
	kind := KindInternalError
	message := ""
	if res.Err != nil {
		kind, message = res.Err.Kind, res.Err.Message
	}
	s.logger.Warn("tool call failed",
		"call_id", call.ID,
		"tool", call.Tool,
		"duration", res.Duration,
		"error", string(kind),
		"message", message,
	)
	return res
}

// preview renders a payload for logging, falling back to a best-effort
// string for values JSON cannot represent.
func preview(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return truncate(fmt.Sprint(v))
	}
	return truncate(string(b))
}

func truncate(s string) string {
	if len(s) > logPayloadLimit {
		return s[:logPayloadLimit] + "..."
	}
	return s
}
