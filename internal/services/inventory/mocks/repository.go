package mocks

import (
	"context"

	"github.com/BearBump/RollOff/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func ptr[T any](v any) *T {
	if v == nil {
		return nil
	}
	return v.(*T)
}

func slice[T any](v any) []*T {
	if v == nil {
		return nil
	}
	return v.([]*T)
}

func (m *MockRepository) ListContainers(ctx context.Context) ([]*models.Container, error) {
	args := m.Called(ctx)
	return slice[models.Container](args.Get(0)), args.Error(1)
}

func (m *MockRepository) GetContainer(ctx context.Context, id string) (*models.Container, error) {
	args := m.Called(ctx, id)
	return ptr[models.Container](args.Get(0)), args.Error(1)
}

func (m *MockRepository) InsertContainer(ctx context.Context, c models.Container) (*models.Container, error) {
	args := m.Called(ctx, c)
	return ptr[models.Container](args.Get(0)), args.Error(1)
}

func (m *MockRepository) UpdateContainer(ctx context.Context, c models.Container) (*models.Container, error) {
	args := m.Called(ctx, c)
	return ptr[models.Container](args.Get(0)), args.Error(1)
}

func (m *MockRepository) DeleteContainer(ctx context.Context, id string) (*models.Container, error) {
	args := m.Called(ctx, id)
	return ptr[models.Container](args.Get(0)), args.Error(1)
}

func (m *MockRepository) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	args := m.Called(ctx)
	return slice[models.Customer](args.Get(0)), args.Error(1)
}

func (m *MockRepository) GetCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	args := m.Called(ctx, id)
	return ptr[models.Customer](args.Get(0)), args.Error(1)
}

func (m *MockRepository) SearchCustomers(ctx context.Context, name string) ([]*models.Customer, error) {
	args := m.Called(ctx, name)
	return slice[models.Customer](args.Get(0)), args.Error(1)
}

func (m *MockRepository) InsertCustomer(ctx context.Context, d models.CustomerDraft) (*models.Customer, error) {
	args := m.Called(ctx, d)
	return ptr[models.Customer](args.Get(0)), args.Error(1)
}

func (m *MockRepository) UpdateCustomer(ctx context.Context, id int64, d models.CustomerDraft) (*models.Customer, error) {
	args := m.Called(ctx, id, d)
	return ptr[models.Customer](args.Get(0)), args.Error(1)
}

func (m *MockRepository) DeleteCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	args := m.Called(ctx, id)
	return ptr[models.Customer](args.Get(0)), args.Error(1)
}

func (m *MockRepository) ListLogEntries(ctx context.Context) ([]*models.LogEntry, error) {
	args := m.Called(ctx)
	return slice[models.LogEntry](args.Get(0)), args.Error(1)
}

func (m *MockRepository) ListLogEntriesByContainer(ctx context.Context, containerID string) ([]*models.LogEntry, error) {
	args := m.Called(ctx, containerID)
	return slice[models.LogEntry](args.Get(0)), args.Error(1)
}

func (m *MockRepository) ListLogEntriesByCustomer(ctx context.Context, customerID int64) ([]*models.LogEntry, error) {
	args := m.Called(ctx, customerID)
	return slice[models.LogEntry](args.Get(0)), args.Error(1)
}

func (m *MockRepository) InsertLogEntry(ctx context.Context, e models.LogEntry) (*models.LogEntry, error) {
	args := m.Called(ctx, e)
	return ptr[models.LogEntry](args.Get(0)), args.Error(1)
}
