package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/logicx/pkg/domain"
)

// LogHooks returns lifecycle hooks that audit gestures to logger.
// Per-sample move changes are logged at Debug, everything else at Info.
func LogHooks(logger *slog.Logger) domain.Hooks {
	return domain.Hooks{
		OnSessionBegin: func(e *domain.SessionEvent) {
			logger.Info("session_begin", "kind", e.Kind, "button", e.Button)
		},
		OnSessionEnd: func(e *domain.SessionEvent) {
			logger.Info("session_end", "kind", e.Kind, "button", e.Button)
		},
		OnConnect: func(e *domain.ConnectEvent) {
			logger.Info("connect",
				"output", e.Output.String(),
				"input", e.Input.String(),
			)
		},
		OnDrop: func(e *domain.DropEvent) {
			logger.Info("drop",
				"from", e.From.String(),
				"to", e.To.String(),
				"reason", e.Reason,
			)
		},
		OnProjectChanged: func(e *domain.ChangeEvent) {
			level := slog.LevelInfo
			if e.Cause == "move" {
				level = slog.LevelDebug
			}
			logger.Log(context.Background(), level, "project_changed", "cause", e.Cause)
		},
	}
}
