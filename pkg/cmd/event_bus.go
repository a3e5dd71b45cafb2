package cmd

import (
	"log/slog"

	"github.com/canvaslab/flowcanvas/pkg/eventbus"
)

// NewEventBus builds the lifecycle event bus. The design console runs
// single-process, so the in-memory transport is the only provider.
func NewEventBus(logger *slog.Logger) eventbus.EventBus {
	return eventbus.NewGoChannelEventBus(logger)
}
