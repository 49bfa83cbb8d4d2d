package liststate

import (
	"context"
	"errors"
	"testing"

	"github.com/BearBump/RollOff/internal/integrations/rolloffapi"
	"github.com/BearBump/RollOff/internal/integrations/rolloffapi/fake"
	"github.com/BearBump/RollOff/internal/models"
	"github.com/stretchr/testify/require"
)

func seededCustomers() *fake.Backend {
	return fake.New().SeedCustomers(
		models.Customer{ID: 1, Name: "Acme Corp", Address: "1 Main St"},
		models.Customer{ID: 2, Name: "Bob's Builders"},
		models.Customer{ID: 3, Name: "acme west"},
	)
}

func TestCustomerController_SearchEmptyIsLoad(t *testing.T) {
	ctx := context.Background()
	api := seededCustomers()
	cc := NewCustomerController(api, &recorder{}, nil)

	require.NoError(t, cc.Search(ctx, "acme"))
	require.Len(t, cc.Snapshot().Items, 2)
	require.Equal(t, "acme", cc.Snapshot().Search)

	require.NoError(t, cc.Search(ctx, "   "))
	snap := cc.Snapshot()
	require.Len(t, snap.Items, 3)
	require.Empty(t, snap.Search)
	require.Equal(t, 2, api.Calls("list customers"))
	require.Equal(t, 1, api.Calls("search customers"))
}

func TestCustomerController_SearchReplacesCollection(t *testing.T) {
	ctx := context.Background()
	cc := NewCustomerController(seededCustomers(), &recorder{}, nil)

	require.NoError(t, cc.Load(ctx))
	require.NoError(t, cc.Search(ctx, "bob"))

	items := cc.Snapshot().Items
	require.Len(t, items, 1)
	require.Equal(t, int64(2), items[0].ID)
}

func TestCustomerController_CreateUpdate(t *testing.T) {
	ctx := context.Background()
	notes := &recorder{}
	cc := NewCustomerController(seededCustomers(), notes, nil)
	require.NoError(t, cc.Load(ctx))

	created, err := cc.Create(ctx, models.CustomerDraft{Name: "  Dana Demo  ", Phone: "555-0100"})
	require.NoError(t, err)
	require.Equal(t, "Dana Demo", created.Name)
	require.Equal(t, int64(4), created.ID)
	require.Len(t, cc.Snapshot().Items, 4)

	updated, err := cc.Update(ctx, 2, models.CustomerDraft{Name: "Bob Builders LLC"})
	require.NoError(t, err)
	require.Equal(t, "Bob Builders LLC", updated.Name)
	got, ok := cc.Find(2)
	require.True(t, ok)
	require.Equal(t, "Bob Builders LLC", got.Name)
	require.Equal(t, int64(2), cc.Snapshot().Items[1].ID)

	require.Empty(t, notes.all())
}

func TestCustomerController_RejectsBadInputLocally(t *testing.T) {
	ctx := context.Background()
	api := seededCustomers()
	notes := &recorder{}
	cc := NewCustomerController(api, notes, nil)

	_, err := cc.Create(ctx, models.CustomerDraft{Name: "  "})
	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr))

	_, err = cc.Update(ctx, 0, models.CustomerDraft{Name: "X"})
	require.True(t, errors.As(err, &verr))

	require.Len(t, notes.all(), 2)
	require.Zero(t, api.Calls("create customer"))
	require.Zero(t, api.Calls("update customer"))
}

func TestCustomerController_UpdateUnknownSurfaces404(t *testing.T) {
	ctx := context.Background()
	notes := &recorder{}
	cc := NewCustomerController(seededCustomers(), notes, nil)
	require.NoError(t, cc.Load(ctx))
	before := cc.Snapshot()

	_, err := cc.Update(ctx, 99, models.CustomerDraft{Name: "Ghost"})
	var rerr *rolloffapi.RequestError
	require.True(t, errors.As(err, &rerr))
	require.True(t, rerr.NotFound())
	require.Equal(t, before, cc.Snapshot())
	require.Equal(t, "Customer 99 not found", notes.all()[0].Message)
}

func TestCustomerController_Delete(t *testing.T) {
	ctx := context.Background()
	api := seededCustomers()
	confirm := &answer{ok: false}
	cc := NewCustomerController(api, &recorder{}, confirm)
	require.NoError(t, cc.Load(ctx))

	ok, err := cc.Delete(ctx, 1)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, []string{"Are you sure you want to delete customer Acme Corp?"}, confirm.prompts)
	require.Zero(t, api.Calls("delete customer"))

	confirm.ok = true
	ok, err = cc.Delete(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)
	_, found := cc.Find(1)
	require.False(t, found)
	require.Len(t, cc.Snapshot().Items, 2)
}

func TestCustomerController_NilConfirmerDeclines(t *testing.T) {
	ctx := context.Background()
	api := seededCustomers()
	cc := NewCustomerController(api, &recorder{}, nil)

	ok, err := cc.Delete(ctx, 1)
	require.NoError(t, err)
	require.False(t, ok)
	require.Zero(t, api.Calls("delete customer"))
}

func TestCustomerController_LoadFailureNotifiesOnce(t *testing.T) {
	ctx := context.Background()
	api := seededCustomers()
	notes := &recorder{}
	cc := NewCustomerController(api, notes, nil)
	require.NoError(t, cc.Load(ctx))

	api.Fail("list customers", rolloffapi.TransportError("list customers", errors.New("dial tcp: refused")))
	require.Error(t, cc.Load(ctx))
	require.Len(t, cc.Snapshot().Items, 3)
	require.Len(t, notes.all(), 1)
	require.Equal(t, "Failed to load customers", notes.all()[0].Message)
}

func TestCustomerController_QueryFiltersView(t *testing.T) {
	ctx := context.Background()
	cc := NewCustomerController(seededCustomers(), &recorder{}, nil)
	require.NoError(t, cc.Load(ctx))

	cc.SetQuery("main st")
	view := cc.View()
	require.Len(t, view, 1)
	require.Equal(t, "Acme Corp", view[0].Name)
	require.Len(t, cc.Snapshot().Items, 3)
}
