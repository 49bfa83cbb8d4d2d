package liststate

import (
	"context"
	"fmt"
	"slices"

	"github.com/BearBump/RollOff/internal/integrations/rolloffapi"
	"github.com/BearBump/RollOff/internal/models"
)

// Scope says which server query filled the log collection.
type Scope struct {
	ContainerID string
	CustomerID  int64
}

func (s Scope) All() bool { return s.ContainerID == "" && s.CustomerID == 0 }

func (s Scope) includes(e models.LogEntry) bool {
	if s.ContainerID != "" && e.ContainerID != s.ContainerID {
		return false
	}
	if s.CustomerID != 0 && e.CustomerID != s.CustomerID {
		return false
	}
	return true
}

type LogEntrySnapshot struct {
	Items  []models.LogEntry
	Scope  Scope
	Query  string
	Action models.Action
	View   []models.LogEntry
}

// ContainerLookup and CustomerLookup are the read-only joins used to label log rows.
// The container and customer controllers implement them.
type ContainerLookup interface {
	Find(id string) (models.Container, bool)
}

type CustomerLookup interface {
	Find(id int64) (models.Customer, bool)
}

// LogRow is a log entry with its references resolved for display.
type LogRow struct {
	Entry          models.LogEntry
	ContainerLabel string
	CustomerName   string
}

const unknownRef = "unknown"

// LogEntryController owns the audit log collection. Entries are only ever appended.
type LogEntryController struct {
	base[LogEntrySnapshot]

	api rolloffapi.LogEntryAPI

	items  []models.LogEntry
	scope  Scope
	query  string
	action models.Action
}

func NewLogEntryController(api rolloffapi.LogEntryAPI, n Notifier) *LogEntryController {
	lc := &LogEntryController{
		api:    api,
		action: models.ActionAll,
	}
	lc.init(n, nil, lc.snapshotLocked)
	return lc
}

func (c *LogEntryController) Load(ctx context.Context) error {
	items, err := c.api.ListLogEntries(ctx)
	if err != nil {
		return c.fail("load log entries", "Failed to load log entries", err)
	}
	return c.replace(items, Scope{})
}

func (c *LogEntryController) LoadForContainer(ctx context.Context, containerID string) error {
	containerID = models.NormalizeContainerID(containerID)
	items, err := c.api.ListContainerLogEntries(ctx, containerID)
	if err != nil {
		return c.fail("load container log entries", fmt.Sprintf("Failed to load history for container %s", containerID), err)
	}
	return c.replace(items, Scope{ContainerID: containerID})
}

func (c *LogEntryController) LoadForCustomer(ctx context.Context, customerID int64) error {
	items, err := c.api.ListCustomerLogEntries(ctx, customerID)
	if err != nil {
		return c.fail("load customer log entries", "Failed to load customer history", err)
	}
	return c.replace(items, Scope{CustomerID: customerID})
}

// Reload repeats the query of the current scope.
func (c *LogEntryController) Reload(ctx context.Context) error {
	s := c.Snapshot().Scope
	switch {
	case s.ContainerID != "":
		return c.LoadForContainer(ctx, s.ContainerID)
	case s.CustomerID != 0:
		return c.LoadForCustomer(ctx, s.CustomerID)
	}
	return c.Load(ctx)
}

// Create appends the server's entry when it belongs to the loaded scope.
// Whether the referenced container and customer exist is checked by the server.
func (c *LogEntryController) Create(ctx context.Context, d models.LogEntryDraft) (models.LogEntry, error) {
	const op = "create log entry"
	if err := d.Validate(); err != nil {
		return models.LogEntry{}, c.fail(op, "Failed to add log entry", err)
	}
	created, err := c.api.CreateLogEntry(ctx, d.Trimmed())
	if err != nil {
		return models.LogEntry{}, c.fail(op, "Failed to add log entry", err)
	}
	if err := c.apply(func() {
		if c.scope.includes(created) && indexBy(c.items, logKey, created.ID) < 0 {
			c.items = append(c.items, created)
		}
	}); err != nil {
		return models.LogEntry{}, err
	}
	return created, nil
}

func (c *LogEntryController) SetQuery(q string) {
	_ = c.apply(func() { c.query = q })
}

func (c *LogEntryController) SetActionFilter(a models.Action) error {
	if a == "" {
		a = models.ActionAll
	}
	if a != models.ActionAll && !a.Valid() {
		return fmt.Errorf("unknown log action %q", a)
	}
	return c.apply(func() { c.action = a })
}

func (c *LogEntryController) Snapshot() LogEntrySnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Rows labels the filtered view. Missing references show as "unknown", and so does
// every reference when a lookup is nil (including a nil controller).
func (c *LogEntryController) Rows(containers ContainerLookup, customers CustomerLookup) []LogRow {
	view := c.Snapshot().View
	out := make([]LogRow, 0, len(view))
	for _, e := range view {
		row := LogRow{Entry: e, ContainerLabel: unknownRef, CustomerName: unknownRef}
		if containers != nil {
			if ct, ok := containers.Find(e.ContainerID); ok {
				row.ContainerLabel = ct.ID
			}
		}
		if customers != nil {
			if cu, ok := customers.Find(e.CustomerID); ok {
				row.CustomerName = cu.Name
			}
		}
		out = append(out, row)
	}
	return out
}

func logKey(e models.LogEntry) int64 { return e.ID }

func (c *LogEntryController) replace(items []models.LogEntry, s Scope) error {
	return c.apply(func() {
		c.items = items
		c.scope = s
	})
}

func (c *LogEntryController) snapshotLocked() LogEntrySnapshot {
	return LogEntrySnapshot{
		Items:  slices.Clone(c.items),
		Scope:  c.scope,
		Query:  c.query,
		Action: c.action,
		View:   FilterLogEntries(c.items, c.query, c.action),
	}
}

var (
	_ ContainerLookup = (*ContainerController)(nil)
	_ CustomerLookup  = (*CustomerController)(nil)
)
