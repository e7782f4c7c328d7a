package task

import (
	"context"

	"github.com/fhuszti/way2enjoy-go/internal/logger"
	"github.com/fhuszti/way2enjoy-go/internal/port"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type Dispatcher struct {
	client *asynq.Client
}

// compile-time check
var _ port.TaskDispatcher = (*Dispatcher)(nil)

func NewDispatcher(addr, password string) *Dispatcher {
	c := asynq.NewClient(asynq.RedisClientOpt{Addr: addr, Password: password})
	return &Dispatcher{client: c}
}

func (d *Dispatcher) EnqueueOptimiseObject(ctx context.Context, id uuid.UUID) error {
	t, err := NewOptimiseObjectTask(id.String())
	if err != nil {
		return err
	}
	info, err := d.client.EnqueueContext(ctx, t)
	if err != nil {
		return err
	}
	logger.Debugf(ctx, "task %s enqueued on queue %q", info.ID, info.Queue)
	return nil
}

func (d *Dispatcher) Close() error {
	return d.client.Close()
}
