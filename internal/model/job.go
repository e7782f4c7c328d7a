package model

import (
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// Job tracks the optimisation of one object sitting in a bucket.
type Job struct {
	ID             uuid.UUID `json:"id"`
	Bucket         string    `json:"bucket"`
	ObjectKey      string    `json:"object_key"`
	OutputKey      *string   `json:"output_key,omitempty"`
	Resize         *Resize   `json:"resize,omitempty"`
	Status         JobStatus `json:"status"`
	InputSize      *int64    `json:"input_size,omitempty"`
	OutputSize     *int64    `json:"output_size,omitempty"`
	Ratio          *float64  `json:"ratio,omitempty"`
	HTTPStatus     *int      `json:"http_status,omitempty"`
	FailureMessage *string   `json:"failure_message,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
