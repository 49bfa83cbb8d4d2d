package main

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/BearBump/RollOff/internal/models"
	"github.com/BearBump/RollOff/internal/services/inventory"
)

// memRepo — inventory.Repository в памяти для сквозных тестов сервера.
type memRepo struct {
	mu         sync.Mutex
	containers []models.Container
	customers  []models.Customer
	logs       []models.LogEntry
	nextID     int64
}

var _ inventory.Repository = (*memRepo)(nil)

func (m *memRepo) ListContainers(ctx context.Context) ([]*models.Container, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.Container{}
	for i := range m.containers {
		c := m.containers[i]
		out = append(out, &c)
	}
	return out, nil
}

func (m *memRepo) GetContainer(ctx context.Context, id string) (*models.Container, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.containers {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, nil
}

func (m *memRepo) InsertContainer(ctx context.Context, c models.Container) (*models.Container, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.containers = append(m.containers, c)
	return &c, nil
}

func (m *memRepo) UpdateContainer(ctx context.Context, c models.Container) (*models.Container, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.containers {
		if m.containers[i].ID == c.ID {
			m.containers[i] = c
			return &c, nil
		}
	}
	return nil, nil
}

func (m *memRepo) DeleteContainer(ctx context.Context, id string) (*models.Container, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range m.containers {
		if c.ID == id {
			m.containers = slices.Delete(m.containers, i, i+1)
			return &c, nil
		}
	}
	return nil, nil
}

func (m *memRepo) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	return m.SearchCustomers(ctx, "")
}

func (m *memRepo) GetCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.customers {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, nil
}

func (m *memRepo) SearchCustomers(ctx context.Context, name string) ([]*models.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.Customer{}
	for _, c := range m.customers {
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(name)) {
			c.CurrentContainers = []models.Container{}
			out = append(out, &c)
		}
	}
	return out, nil
}

func (m *memRepo) InsertCustomer(ctx context.Context, d models.CustomerDraft) (*models.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	c := models.Customer{ID: m.nextID, Name: d.Name, Address: d.Address, Phone: d.Phone, JobSiteInfo: d.JobSiteInfo}
	m.customers = append(m.customers, c)
	return &c, nil
}

func (m *memRepo) UpdateCustomer(ctx context.Context, id int64, d models.CustomerDraft) (*models.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.customers {
		if m.customers[i].ID == id {
			m.customers[i] = models.Customer{ID: id, Name: d.Name, Address: d.Address, Phone: d.Phone, JobSiteInfo: d.JobSiteInfo}
			c := m.customers[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (m *memRepo) DeleteCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range m.customers {
		if c.ID == id {
			m.customers = slices.Delete(m.customers, i, i+1)
			return &c, nil
		}
	}
	return nil, nil
}

func (m *memRepo) ListLogEntries(ctx context.Context) ([]*models.LogEntry, error) {
	return m.logsWhere(func(models.LogEntry) bool { return true }), nil
}

func (m *memRepo) ListLogEntriesByContainer(ctx context.Context, containerID string) ([]*models.LogEntry, error) {
	return m.logsWhere(func(e models.LogEntry) bool { return e.ContainerID == containerID }), nil
}

func (m *memRepo) ListLogEntriesByCustomer(ctx context.Context, customerID int64) ([]*models.LogEntry, error) {
	return m.logsWhere(func(e models.LogEntry) bool { return e.CustomerID == customerID }), nil
}

func (m *memRepo) InsertLogEntry(ctx context.Context, e models.LogEntry) (*models.LogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.ID = int64(len(m.logs) + 1)
	m.logs = append(m.logs, e)
	return &e, nil
}

func (m *memRepo) logsWhere(keep func(models.LogEntry) bool) []*models.LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.LogEntry{}
	for _, e := range m.logs {
		if keep(e) {
			out = append(out, &e)
		}
	}
	return out
}
