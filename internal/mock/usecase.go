package mock

import (
	"context"

	"github.com/fhuszti/way2enjoy-go/internal/model"
	"github.com/fhuszti/way2enjoy-go/internal/port"
	"github.com/google/uuid"
)

// MockJobCreator implements port.JobCreator for tests.
type MockJobCreator struct {
	Out    port.CreateJobOutput
	Err    error
	Called bool
	In     port.CreateJobInput
}

func (m *MockJobCreator) CreateJob(ctx context.Context, in port.CreateJobInput) (port.CreateJobOutput, error) {
	m.Called = true
	m.In = in
	return m.Out, m.Err
}

// MockJobGetter implements port.JobGetter for tests.
type MockJobGetter struct {
	Out    *model.Job
	Err    error
	Called bool
	ID     uuid.UUID
}

func (m *MockJobGetter) GetJob(ctx context.Context, id uuid.UUID) (*model.Job, error) {
	m.Called = true
	m.ID = id
	return m.Out, m.Err
}

// MockObjectOptimiser implements port.ObjectOptimiser for tests.
type MockObjectOptimiser struct {
	Err    error
	Called bool
	ID     uuid.UUID
}

func (m *MockObjectOptimiser) OptimiseObject(ctx context.Context, id uuid.UUID) error {
	m.Called = true
	m.ID = id
	return m.Err
}
