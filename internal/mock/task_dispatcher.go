package mock

import (
	"context"

	"github.com/google/uuid"
)

// MockDispatcher implements task dispatching for tests.
type MockDispatcher struct {
	OptimiseCalled bool
	OptimiseIDs    []uuid.UUID
	OptimiseErr    error
}

func (m *MockDispatcher) EnqueueOptimiseObject(ctx context.Context, id uuid.UUID) error {
	m.OptimiseCalled = true
	m.OptimiseIDs = append(m.OptimiseIDs, id)
	return m.OptimiseErr
}
