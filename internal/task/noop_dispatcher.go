package task

import (
	"context"

	"github.com/fhuszti/way2enjoy-go/internal/logger"
	"github.com/fhuszti/way2enjoy-go/internal/port"
	"github.com/google/uuid"
)

// NoopDispatcher drops every task. Used when no Redis is configured.
type NoopDispatcher struct{}

var _ port.TaskDispatcher = (*NoopDispatcher)(nil)

func NewNoopDispatcher() *NoopDispatcher { return &NoopDispatcher{} }

func (d *NoopDispatcher) EnqueueOptimiseObject(ctx context.Context, id uuid.UUID) error {
	logger.Warnf(ctx, "no task queue configured, job #%s will stay pending", id)
	return nil
}
