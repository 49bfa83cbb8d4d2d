package liststate

import (
	"context"
	"sync"

	"github.com/BearBump/RollOff/internal/models"
	"github.com/stretchr/testify/mock"
)

type containerAPIMock struct {
	mock.Mock
}

func (m *containerAPIMock) ListContainers(ctx context.Context) ([]models.Container, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Container), args.Error(1)
}

func (m *containerAPIMock) GetContainer(ctx context.Context, id string) (models.Container, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Container), args.Error(1)
}

func (m *containerAPIMock) CreateContainer(ctx context.Context, c models.Container) (models.Container, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(models.Container), args.Error(1)
}

func (m *containerAPIMock) UpdateContainer(ctx context.Context, id string, c models.Container) (models.Container, error) {
	args := m.Called(ctx, id, c)
	return args.Get(0).(models.Container), args.Error(1)
}

func (m *containerAPIMock) DeleteContainer(ctx context.Context, id string) (models.Container, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Container), args.Error(1)
}

// recorder collects notices.
type recorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *recorder) Notify(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *recorder) all() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

type answer struct {
	ok      bool
	prompts []string
}

func (a *answer) Confirm(_ context.Context, prompt string) bool {
	a.prompts = append(a.prompts, prompt)
	return a.ok
}
