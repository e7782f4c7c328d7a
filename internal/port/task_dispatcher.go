package port

import (
	"context"

	"github.com/google/uuid"
)

// TaskDispatcher enqueues asynchronous compression tasks.
type TaskDispatcher interface {
	EnqueueOptimiseObject(ctx context.Context, id uuid.UUID) error
}
