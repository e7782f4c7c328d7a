package mock

import (
	"context"

	"github.com/fhuszti/way2enjoy-go/internal/model"
	"github.com/google/uuid"
)

// MockJobRepo implements repository operations for tests.
type MockJobRepo struct {
	JobRecord *model.Job

	GetErr    error
	CreateErr error
	UpdateErr error

	GetCalled bool
	GotID     uuid.UUID
	Created   *model.Job
	Updated   *model.Job
}

func (m *MockJobRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Job, error) {
	m.GetCalled = true
	m.GotID = id
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.JobRecord, nil
}

func (m *MockJobRepo) Update(ctx context.Context, job *model.Job) error {
	// snapshot, the caller keeps mutating its copy
	cp := *job
	m.Updated = &cp
	return m.UpdateErr
}

func (m *MockJobRepo) Create(ctx context.Context, job *model.Job) error {
	m.Created = job
	return m.CreateErr
}
