package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/fhuszti/way2enjoy-go/internal/api_context"
	"github.com/fhuszti/way2enjoy-go/internal/logger"
	"github.com/fhuszti/way2enjoy-go/internal/port"
	"github.com/fhuszti/way2enjoy-go/internal/task"
	"github.com/fhuszti/way2enjoy-go/internal/usecase/compression"
	"github.com/fhuszti/way2enjoy-go/internal/validation"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// OptimiseObjectHandler handles an optimise-object task.
// It validates the incoming payload and delegates the call to the service.
// Errors that a new attempt cannot fix are wrapped with asynq.SkipRetry;
// transport failures leave the job pending and are retried.
func OptimiseObjectHandler(ctx context.Context, p task.OptimiseObjectPayload, svc port.ObjectOptimiser) error {
	if err := validation.ValidateStruct(p); err != nil {
		logger.Errorf(ctx, "❌  Payload validation failed: %v", err)
		return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
	}

	id := uuid.MustParse(p.ID)
	ctx = api_context.WithJobID(ctx, id)
	if err := svc.OptimiseObject(ctx, id); err != nil {
		logger.Errorf(ctx, "❌  Failed to optimise object of job #%s: %v", id, err)
		if isFinal(err) {
			return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
		}
		return err
	}

	logger.Infof(ctx, "✅  Successfully ran job #%s", id)
	return nil
}

func isFinal(err error) bool {
	return errors.Is(err, compression.ErrJobNotFound) ||
		errors.Is(err, compression.ErrJobNotPending) ||
		errors.Is(err, compression.ErrCompressionFail)
}
