package liststate

import (
	"context"
	"fmt"
	"slices"

	"github.com/BearBump/RollOff/internal/integrations/rolloffapi"
	"github.com/BearBump/RollOff/internal/models"
)

type Tab string

const (
	TabActive   Tab = "active"
	TabArchived Tab = "archived"
)

// ContainerSnapshot is a copy of the controller state; subscribers may keep it.
type ContainerSnapshot struct {
	Active   []models.Container
	Archived []models.Container
	Query    string
	Status   models.Status
	Tab      Tab
	// View is the local filter applied to the partition selected by Tab.
	View []models.Container
}

// ContainerController owns the container collection split into the active and archived
// partitions. A container is in exactly one of them: archived iff its status is terminal.
//
// Create and Update apply the server's canonical record in place (append / replace by id)
// instead of reloading the list.
type ContainerController struct {
	base[ContainerSnapshot]

	api rolloffapi.ContainerAPI

	active   []models.Container
	archived []models.Container
	query    string
	status   models.Status
	tab      Tab
}

func NewContainerController(api rolloffapi.ContainerAPI, n Notifier, c Confirmer) *ContainerController {
	cc := &ContainerController{
		api:    api,
		status: models.StatusAll,
		tab:    TabActive,
	}
	cc.init(n, c, cc.snapshotLocked)
	return cc
}

func containerKey(c models.Container) string { return c.ID }

func (c *ContainerController) Load(ctx context.Context) error {
	const op = "load containers"
	items, err := c.api.ListContainers(ctx)
	if err != nil {
		return c.fail(op, "Failed to load containers. Make sure the backend is running.", err)
	}

	active := make([]models.Container, 0, len(items))
	archived := make([]models.Container, 0)
	for _, it := range items {
		if it.Archived() {
			archived = append(archived, it)
		} else {
			active = append(active, it)
		}
	}

	return c.apply(func() {
		c.active, c.archived = active, archived
	})
}

func (c *ContainerController) Create(ctx context.Context, d models.ContainerDraft) (models.Container, error) {
	const op = "create container"
	if err := d.Validate(); err != nil {
		return models.Container{}, c.fail(op, "Failed to add container", err)
	}
	created, err := c.api.CreateContainer(ctx, d.Container())
	if err != nil {
		return models.Container{}, c.fail(op, "Failed to add container", err)
	}
	if err := c.apply(func() { c.placeLocked(created) }); err != nil {
		return models.Container{}, err
	}
	return created, nil
}

// Update sends the draft for the container d.ID. A container that turns Dumped moves from
// the active partition to the end of the archived one in the same step.
func (c *ContainerController) Update(ctx context.Context, d models.ContainerDraft) (models.Container, error) {
	const op = "update container"
	id := models.NormalizeContainerID(d.ID)
	if cur, ok := c.Find(id); ok && cur.Archived() {
		return models.Container{}, c.fail(op, "", fmt.Errorf("%s: %w", id, ErrArchived))
	}
	if err := d.Validate(); err != nil {
		return models.Container{}, c.fail(op, "Failed to update container", err)
	}
	updated, err := c.api.UpdateContainer(ctx, id, d.Container())
	if err != nil {
		return models.Container{}, c.fail(op, "Failed to update container", err)
	}
	if err := c.apply(func() { c.placeLocked(updated) }); err != nil {
		return models.Container{}, err
	}
	return updated, nil
}

// Delete asks the confirmer first; a declined confirmation issues no request and returns (false, nil).
func (c *ContainerController) Delete(ctx context.Context, id string) (bool, error) {
	const op = "delete container"
	id = models.NormalizeContainerID(id)
	if cur, ok := c.Find(id); ok && cur.Archived() {
		return false, c.fail(op, "", fmt.Errorf("%s: %w", id, ErrArchived))
	}
	if !c.confirm.Confirm(ctx, fmt.Sprintf("Are you sure you want to delete container %s?", id)) {
		return false, nil
	}
	if _, err := c.api.DeleteContainer(ctx, id); err != nil {
		return false, c.fail(op, "Failed to delete container", err)
	}
	if err := c.apply(func() {
		if i := indexBy(c.active, containerKey, id); i >= 0 {
			c.active = slices.Delete(c.active, i, i+1)
		}
	}); err != nil {
		return false, err
	}
	return true, nil
}

func (c *ContainerController) SetQuery(q string) {
	_ = c.apply(func() { c.query = q })
}

func (c *ContainerController) SetStatusFilter(s models.Status) error {
	if s == "" {
		s = models.StatusAll
	}
	if s != models.StatusAll && !s.Valid() {
		return fmt.Errorf("unknown container status %q", s)
	}
	return c.apply(func() { c.status = s })
}

func (c *ContainerController) SetTab(t Tab) error {
	if t != TabActive && t != TabArchived {
		return fmt.Errorf("unknown tab %q", t)
	}
	return c.apply(func() { c.tab = t })
}

// Find looks the container up in both partitions. A nil controller finds nothing.
func (c *ContainerController) Find(id string) (models.Container, bool) {
	if c == nil {
		return models.Container{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := indexBy(c.active, containerKey, id); i >= 0 {
		return c.active[i], true
	}
	if i := indexBy(c.archived, containerKey, id); i >= 0 {
		return c.archived[i], true
	}
	return models.Container{}, false
}

// CanEdit reports whether edit and delete may be offered for id.
func (c *ContainerController) CanEdit(id string) bool {
	cur, ok := c.Find(id)
	return ok && !cur.Archived()
}

func (c *ContainerController) Snapshot() ContainerSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *ContainerController) View() []models.Container {
	return c.Snapshot().View
}

func (c *ContainerController) snapshotLocked() ContainerSnapshot {
	part := c.active
	if c.tab == TabArchived {
		part = c.archived
	}
	return ContainerSnapshot{
		Active:   slices.Clone(c.active),
		Archived: slices.Clone(c.archived),
		Query:    c.query,
		Status:   c.status,
		Tab:      c.tab,
		View:     FilterContainers(part, c.query, c.status),
	}
}

// placeLocked puts ct into the partition its status selects. An existing element with the
// same id is removed first, so the container ends up in exactly one place: replaced in
// position when it stays in its partition, appended when it moves or is new.
func (c *ContainerController) placeLocked(ct models.Container) {
	target := &c.active
	other := &c.archived
	if ct.Archived() {
		target, other = other, target
	}
	if i := indexBy(*other, containerKey, ct.ID); i >= 0 {
		*other = slices.Delete(*other, i, i+1)
	}
	if i := indexBy(*target, containerKey, ct.ID); i >= 0 {
		(*target)[i] = ct
		return
	}
	*target = append(*target, ct)
}
