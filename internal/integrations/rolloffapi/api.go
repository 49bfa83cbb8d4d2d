package rolloffapi

import (
	"context"

	"github.com/BearBump/RollOff/internal/models"
)

type ContainerAPI interface {
	ListContainers(ctx context.Context) ([]models.Container, error)
	GetContainer(ctx context.Context, id string) (models.Container, error)
	CreateContainer(ctx context.Context, c models.Container) (models.Container, error)
	UpdateContainer(ctx context.Context, id string, c models.Container) (models.Container, error)
	DeleteContainer(ctx context.Context, id string) (models.Container, error)
}

type CustomerAPI interface {
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	GetCustomer(ctx context.Context, id int64) (models.Customer, error)
	CreateCustomer(ctx context.Context, d models.CustomerDraft) (models.Customer, error)
	UpdateCustomer(ctx context.Context, id int64, d models.CustomerDraft) (models.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) (models.Customer, error)
	SearchCustomers(ctx context.Context, name string) ([]models.Customer, error)
}

type LogEntryAPI interface {
	ListLogEntries(ctx context.Context) ([]models.LogEntry, error)
	CreateLogEntry(ctx context.Context, d models.LogEntryDraft) (models.LogEntry, error)
	ListContainerLogEntries(ctx context.Context, containerID string) ([]models.LogEntry, error)
	ListCustomerLogEntries(ctx context.Context, customerID int64) ([]models.LogEntry, error)
}

// API is the whole REST surface the dashboard consumes.
type API interface {
	ContainerAPI
	CustomerAPI
	LogEntryAPI
}

var _ API = (*Client)(nil)
