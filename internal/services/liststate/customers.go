package liststate

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/BearBump/RollOff/internal/integrations/rolloffapi"
	"github.com/BearBump/RollOff/internal/models"
)

type CustomerSnapshot struct {
	Items []models.Customer
	// Search is the last server-side name search; "" after a plain Load.
	Search string
	Query  string
	View   []models.Customer
}

// CustomerController owns the customer collection. Search replaces the collection with the
// server's result set; Query is the local filter over whatever is loaded.
type CustomerController struct {
	base[CustomerSnapshot]

	api rolloffapi.CustomerAPI

	items  []models.Customer
	search string
	query  string
}

func NewCustomerController(api rolloffapi.CustomerAPI, n Notifier, c Confirmer) *CustomerController {
	cc := &CustomerController{
		api: api,
	}
	cc.init(n, c, cc.snapshotLocked)
	return cc
}

func customerKey(c models.Customer) int64 { return c.ID }

func (c *CustomerController) Load(ctx context.Context) error {
	items, err := c.api.ListCustomers(ctx)
	if err != nil {
		return c.fail("load customers", "Failed to load customers", err)
	}
	return c.apply(func() {
		c.items = items
		c.search = ""
	})
}

// Search with an empty name is exactly Load.
func (c *CustomerController) Search(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return c.Load(ctx)
	}
	items, err := c.api.SearchCustomers(ctx, name)
	if err != nil {
		return c.fail("search customers", "Failed to search customers", err)
	}
	return c.apply(func() {
		c.items = items
		c.search = name
	})
}

func (c *CustomerController) Create(ctx context.Context, d models.CustomerDraft) (models.Customer, error) {
	const op = "create customer"
	if err := d.Validate(); err != nil {
		return models.Customer{}, c.fail(op, "Failed to add customer", err)
	}
	created, err := c.api.CreateCustomer(ctx, d.Trimmed())
	if err != nil {
		return models.Customer{}, c.fail(op, "Failed to add customer", err)
	}
	if err := c.apply(func() { c.putLocked(created) }); err != nil {
		return models.Customer{}, err
	}
	return created, nil
}

func (c *CustomerController) Update(ctx context.Context, id int64, d models.CustomerDraft) (models.Customer, error) {
	const op = "update customer"
	if id <= 0 {
		return models.Customer{}, c.fail(op, "Failed to update customer", &models.ValidationError{Fields: map[string]string{"id": "id is required"}})
	}
	if err := d.Validate(); err != nil {
		return models.Customer{}, c.fail(op, "Failed to update customer", err)
	}
	updated, err := c.api.UpdateCustomer(ctx, id, d.Trimmed())
	if err != nil {
		return models.Customer{}, c.fail(op, "Failed to update customer", err)
	}
	if err := c.apply(func() { c.putLocked(updated) }); err != nil {
		return models.Customer{}, err
	}
	return updated, nil
}

func (c *CustomerController) Delete(ctx context.Context, id int64) (bool, error) {
	name := fmt.Sprintf("#%d", id)
	if cur, ok := c.Find(id); ok {
		name = cur.Name
	}
	if !c.confirm.Confirm(ctx, fmt.Sprintf("Are you sure you want to delete customer %s?", name)) {
		return false, nil
	}
	if _, err := c.api.DeleteCustomer(ctx, id); err != nil {
		return false, c.fail("delete customer", "Failed to delete customer", err)
	}
	if err := c.apply(func() {
		if i := indexBy(c.items, customerKey, id); i >= 0 {
			c.items = slices.Delete(c.items, i, i+1)
		}
	}); err != nil {
		return false, err
	}
	return true, nil
}

func (c *CustomerController) SetQuery(q string) {
	_ = c.apply(func() { c.query = q })
}

// Find looks the customer up in the loaded collection. A nil controller finds nothing.
func (c *CustomerController) Find(id int64) (models.Customer, bool) {
	if c == nil {
		return models.Customer{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := indexBy(c.items, customerKey, id); i >= 0 {
		return c.items[i], true
	}
	return models.Customer{}, false
}

func (c *CustomerController) Snapshot() CustomerSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *CustomerController) View() []models.Customer {
	return c.Snapshot().View
}

func (c *CustomerController) snapshotLocked() CustomerSnapshot {
	return CustomerSnapshot{
		Items:  slices.Clone(c.items),
		Search: c.search,
		Query:  c.query,
		View:   FilterCustomers(c.items, c.query),
	}
}

func (c *CustomerController) putLocked(cu models.Customer) {
	if i := indexBy(c.items, customerKey, cu.ID); i >= 0 {
		c.items[i] = cu
		return
	}
	c.items = append(c.items, cu)
}
