package fake

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/BearBump/RollOff/internal/integrations/rolloffapi"
	"github.com/BearBump/RollOff/internal/models"
)

// Backend — in-memory реализация REST-контракта: те же 404/409, что и настоящий сервер.
// Годится для тестов контроллеров и для офлайн-режима дашборда.
type Backend struct {
	mu sync.Mutex

	containers []models.Container
	customers  []models.Customer
	logEntries []models.LogEntry

	nextCustomerID int64
	nextLogID      int64

	failures map[string]error
	calls    map[string]int
	now      func() time.Time
}

var _ rolloffapi.API = (*Backend)(nil)

func New() *Backend {
	return &Backend{
		nextCustomerID: 1,
		nextLogID:      1,
		failures:       map[string]error{},
		calls:          map[string]int{},
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// Seed replaces the stored containers as-is, keeping their order.
func (b *Backend) Seed(cs ...models.Container) *Backend {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.containers = append([]models.Container(nil), cs...)
	return b
}

func (b *Backend) SeedCustomers(cs ...models.Customer) *Backend {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.customers = append([]models.Customer(nil), cs...)
	for _, c := range cs {
		if c.ID >= b.nextCustomerID {
			b.nextCustomerID = c.ID + 1
		}
	}
	return b
}

// Fail makes the next call of op return err. op is the RequestError.Op name, e.g. "create container".
func (b *Backend) Fail(op string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[op] = err
}

// Calls reports how many times op was invoked.
func (b *Backend) Calls(op string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[op]
}

func (b *Backend) enter(op string) error {
	b.calls[op]++
	if err, ok := b.failures[op]; ok {
		delete(b.failures, op)
		return err
	}
	return nil
}

func (b *Backend) ListContainers(ctx context.Context) ([]models.Container, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("list containers"); err != nil {
		return nil, err
	}
	return append([]models.Container{}, b.containers...), nil
}

func (b *Backend) GetContainer(ctx context.Context, id string) (models.Container, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("get container"); err != nil {
		return models.Container{}, err
	}
	i := b.containerIdx(id)
	if i < 0 {
		return models.Container{}, notFound("get container", "Container "+id)
	}
	return b.containers[i], nil
}

func (b *Backend) CreateContainer(ctx context.Context, in models.Container) (models.Container, error) {
	const op = "create container"
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter(op); err != nil {
		return models.Container{}, err
	}
	in.ID = models.NormalizeContainerID(in.ID)
	if err := models.DraftOf(in).Validate(); err != nil {
		return models.Container{}, rolloffapi.HTTPError(op, http.StatusBadRequest, err.Error())
	}
	if b.containerIdx(in.ID) >= 0 {
		return models.Container{}, rolloffapi.HTTPError(op, http.StatusConflict, fmt.Sprintf("Container %s already exists", in.ID))
	}
	out := b.stamp(in)
	b.containers = append(b.containers, out)
	return out, nil
}

func (b *Backend) UpdateContainer(ctx context.Context, id string, in models.Container) (models.Container, error) {
	const op = "update container"
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter(op); err != nil {
		return models.Container{}, err
	}
	i := b.containerIdx(id)
	if i < 0 {
		return models.Container{}, notFound(op, "Container "+id)
	}
	if b.containers[i].Archived() {
		return models.Container{}, rolloffapi.HTTPError(op, http.StatusConflict, fmt.Sprintf("Container %s is archived", id))
	}
	in.ID = b.containers[i].ID
	if err := models.DraftOf(in).Validate(); err != nil {
		return models.Container{}, rolloffapi.HTTPError(op, http.StatusBadRequest, err.Error())
	}
	out := b.stamp(in)
	b.containers[i] = out
	return out, nil
}

func (b *Backend) DeleteContainer(ctx context.Context, id string) (models.Container, error) {
	const op = "delete container"
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter(op); err != nil {
		return models.Container{}, err
	}
	i := b.containerIdx(id)
	if i < 0 {
		return models.Container{}, notFound(op, "Container "+id)
	}
	if b.containers[i].Archived() {
		return models.Container{}, rolloffapi.HTTPError(op, http.StatusConflict, fmt.Sprintf("Container %s is archived", id))
	}
	out := b.containers[i]
	b.containers = append(b.containers[:i], b.containers[i+1:]...)
	return out, nil
}

func (b *Backend) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("list customers"); err != nil {
		return nil, err
	}
	out := make([]models.Customer, 0, len(b.customers))
	for _, c := range b.customers {
		out = append(out, b.withContainers(c))
	}
	return out, nil
}

func (b *Backend) GetCustomer(ctx context.Context, id int64) (models.Customer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("get customer"); err != nil {
		return models.Customer{}, err
	}
	i := b.customerIdx(id)
	if i < 0 {
		return models.Customer{}, notFound("get customer", fmt.Sprintf("Customer %d", id))
	}
	return b.withContainers(b.customers[i]), nil
}

func (b *Backend) CreateCustomer(ctx context.Context, d models.CustomerDraft) (models.Customer, error) {
	const op = "create customer"
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter(op); err != nil {
		return models.Customer{}, err
	}
	if err := d.Validate(); err != nil {
		return models.Customer{}, rolloffapi.HTTPError(op, http.StatusBadRequest, err.Error())
	}
	d = d.Trimmed()
	c := models.Customer{ID: b.nextCustomerID, Name: d.Name, Address: d.Address, Phone: d.Phone, JobSiteInfo: d.JobSiteInfo}
	b.nextCustomerID++
	b.customers = append(b.customers, c)
	return b.withContainers(c), nil
}

func (b *Backend) UpdateCustomer(ctx context.Context, id int64, d models.CustomerDraft) (models.Customer, error) {
	const op = "update customer"
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter(op); err != nil {
		return models.Customer{}, err
	}
	i := b.customerIdx(id)
	if i < 0 {
		return models.Customer{}, notFound(op, fmt.Sprintf("Customer %d", id))
	}
	if err := d.Validate(); err != nil {
		return models.Customer{}, rolloffapi.HTTPError(op, http.StatusBadRequest, err.Error())
	}
	d = d.Trimmed()
	b.customers[i] = models.Customer{ID: id, Name: d.Name, Address: d.Address, Phone: d.Phone, JobSiteInfo: d.JobSiteInfo}
	return b.withContainers(b.customers[i]), nil
}

func (b *Backend) DeleteCustomer(ctx context.Context, id int64) (models.Customer, error) {
	const op = "delete customer"
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter(op); err != nil {
		return models.Customer{}, err
	}
	i := b.customerIdx(id)
	if i < 0 {
		return models.Customer{}, notFound(op, fmt.Sprintf("Customer %d", id))
	}
	out := b.withContainers(b.customers[i])
	b.customers = append(b.customers[:i], b.customers[i+1:]...)
	for j := range b.containers {
		if cid := b.containers[j].CurrentCustomerID; cid != nil && *cid == id {
			b.containers[j].CurrentCustomerID = nil
		}
	}
	return out, nil
}

func (b *Backend) SearchCustomers(ctx context.Context, name string) ([]models.Customer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("search customers"); err != nil {
		return nil, err
	}
	q := strings.ToLower(name)
	out := []models.Customer{}
	for _, c := range b.customers {
		if strings.Contains(strings.ToLower(c.Name), q) {
			out = append(out, b.withContainers(c))
		}
	}
	return out, nil
}

func (b *Backend) ListLogEntries(ctx context.Context) ([]models.LogEntry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("list log entries"); err != nil {
		return nil, err
	}
	return b.sortedEntries(func(models.LogEntry) bool { return true }), nil
}

func (b *Backend) CreateLogEntry(ctx context.Context, d models.LogEntryDraft) (models.LogEntry, error) {
	const op = "create log entry"
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter(op); err != nil {
		return models.LogEntry{}, err
	}
	if err := d.Validate(); err != nil {
		return models.LogEntry{}, rolloffapi.HTTPError(op, http.StatusBadRequest, err.Error())
	}
	d = d.Trimmed()
	if b.containerIdx(d.ContainerID) < 0 {
		return models.LogEntry{}, notFound(op, "Container "+d.ContainerID)
	}
	if b.customerIdx(d.CustomerID) < 0 {
		return models.LogEntry{}, notFound(op, fmt.Sprintf("Customer %d", d.CustomerID))
	}
	e := models.LogEntry{
		ID:          b.nextLogID,
		ContainerID: d.ContainerID,
		CustomerID:  d.CustomerID,
		Action:      d.Action,
		Timestamp:   b.now(),
		Notes:       d.Notes,
	}
	b.nextLogID++
	b.logEntries = append(b.logEntries, e)
	return e, nil
}

func (b *Backend) ListContainerLogEntries(ctx context.Context, containerID string) ([]models.LogEntry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("list container log entries"); err != nil {
		return nil, err
	}
	return b.sortedEntries(func(e models.LogEntry) bool { return e.ContainerID == containerID }), nil
}

func (b *Backend) ListCustomerLogEntries(ctx context.Context, customerID int64) ([]models.LogEntry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("list customer log entries"); err != nil {
		return nil, err
	}
	return b.sortedEntries(func(e models.LogEntry) bool { return e.CustomerID == customerID }), nil
}

// sortedEntries returns entries oldest first, like the server.
func (b *Backend) sortedEntries(keep func(models.LogEntry) bool) []models.LogEntry {
	out := []models.LogEntry{}
	for _, e := range b.logEntries {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].ID < out[j].ID
		}
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

func (b *Backend) stamp(c models.Container) models.Container {
	c = models.DraftOf(c).Container()
	c.LastUpdated = b.now()
	c.UpdatedBy = "fake"
	return c
}

func (b *Backend) withContainers(c models.Customer) models.Customer {
	c.CurrentContainers = []models.Container{}
	for _, ct := range b.containers {
		if ct.CurrentCustomerID != nil && *ct.CurrentCustomerID == c.ID {
			c.CurrentContainers = append(c.CurrentContainers, ct)
		}
	}
	return c
}

func (b *Backend) containerIdx(id string) int {
	for i, c := range b.containers {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (b *Backend) customerIdx(id int64) int {
	for i, c := range b.customers {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func notFound(op, what string) *rolloffapi.RequestError {
	return rolloffapi.HTTPError(op, http.StatusNotFound, what+" not found")
}
