package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const TypeOptimiseObject = "compression:optimise"

type OptimiseObjectPayload struct {
	ID string `json:"id" validate:"required,uuid"`
}

// NewOptimiseObjectTask creates an Asynq task running the compression job with the given ID.
func NewOptimiseObjectTask(jobID string) (*asynq.Task, error) {
	p := OptimiseObjectPayload{ID: jobID}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("could not marshal optimise-object payload: %w", err)
	}
	return asynq.NewTask(TypeOptimiseObject, data), nil
}

// ParseOptimiseObjectPayload parses the task payload to OptimiseObjectPayload.
func ParseOptimiseObjectPayload(t *asynq.Task) (OptimiseObjectPayload, error) {
	var p OptimiseObjectPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return OptimiseObjectPayload{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	return p, nil
}
