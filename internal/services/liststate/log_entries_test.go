package liststate

import (
	"context"
	"errors"
	"testing"

	"github.com/BearBump/RollOff/internal/integrations/rolloffapi/fake"
	"github.com/BearBump/RollOff/internal/models"
	"github.com/stretchr/testify/require"
)

func logBackend(t *testing.T) *fake.Backend {
	t.Helper()
	ctx := context.Background()
	b := fake.New().
		Seed(
			models.Container{ID: "CNT-1", Status: models.StatusInUse},
			models.Container{ID: "CNT-2", Status: models.StatusAvailable},
		).
		SeedCustomers(
			models.Customer{ID: 1, Name: "Acme Corp"},
			models.Customer{ID: 2, Name: "Bob"},
		)
	for _, d := range []models.LogEntryDraft{
		{ContainerID: "CNT-1", CustomerID: 1, Action: models.ActionDropoff},
		{ContainerID: "CNT-2", CustomerID: 2, Action: models.ActionDropoff},
		{ContainerID: "CNT-1", CustomerID: 1, Action: models.ActionPickup, Notes: "full"},
	} {
		_, err := b.CreateLogEntry(ctx, d)
		require.NoError(t, err)
	}
	return b
}

func TestLogEntryController_Scopes(t *testing.T) {
	ctx := context.Background()
	lc := NewLogEntryController(logBackend(t), &recorder{})

	require.NoError(t, lc.Load(ctx))
	require.Len(t, lc.Snapshot().Items, 3)
	require.True(t, lc.Snapshot().Scope.All())

	require.NoError(t, lc.LoadForContainer(ctx, "cnt-1"))
	snap := lc.Snapshot()
	require.Equal(t, "CNT-1", snap.Scope.ContainerID)
	require.Len(t, snap.Items, 2)

	require.NoError(t, lc.LoadForCustomer(ctx, 2))
	snap = lc.Snapshot()
	require.Equal(t, int64(2), snap.Scope.CustomerID)
	require.Len(t, snap.Items, 1)
}

func TestLogEntryController_CreateAppendsInScope(t *testing.T) {
	ctx := context.Background()
	lc := NewLogEntryController(logBackend(t), &recorder{})
	require.NoError(t, lc.LoadForContainer(ctx, "CNT-1"))

	e, err := lc.Create(ctx, models.LogEntryDraft{ContainerID: "cnt-1", CustomerID: 1, Action: "Maintenance", Notes: " hinge "})
	require.NoError(t, err)
	require.Equal(t, models.ActionMaintenance, e.Action)
	require.Equal(t, "hinge", e.Notes)

	items := lc.Snapshot().Items
	require.Len(t, items, 3)
	require.Equal(t, e, items[2])

	_, err = lc.Create(ctx, models.LogEntryDraft{ContainerID: "CNT-2", CustomerID: 2, Action: models.ActionPickup})
	require.NoError(t, err)
	require.Len(t, lc.Snapshot().Items, 3)
}

func TestLogEntryController_CreateKeepsServerOrder(t *testing.T) {
	ctx := context.Background()
	b := logBackend(t)
	lc := NewLogEntryController(b, &recorder{})
	require.NoError(t, lc.Load(ctx))

	_, err := lc.Create(ctx, models.LogEntryDraft{ContainerID: "CNT-2", CustomerID: 2, Action: models.ActionPickup})
	require.NoError(t, err)
	afterCreate := logIDs(lc.Snapshot().Items)

	require.NoError(t, lc.Load(ctx))
	require.Equal(t, logIDs(lc.Snapshot().Items), afterCreate)
	require.Equal(t, []int64{1, 2, 3, 4}, afterCreate)
}

func logIDs(items []models.LogEntry) []int64 {
	out := make([]int64, 0, len(items))
	for _, e := range items {
		out = append(out, e.ID)
	}
	return out
}

func TestLogEntryController_CreateUnknownContainer(t *testing.T) {
	ctx := context.Background()
	notes := &recorder{}
	lc := NewLogEntryController(logBackend(t), notes)
	require.NoError(t, lc.Load(ctx))

	_, err := lc.Create(ctx, models.LogEntryDraft{ContainerID: "CNT-9", CustomerID: 1, Action: models.ActionDropoff})
	require.Error(t, err)
	require.Len(t, lc.Snapshot().Items, 3)
	require.Equal(t, "Container CNT-9 not found", notes.all()[0].Message)
}

func TestLogEntryController_CreateInvalidAction(t *testing.T) {
	ctx := context.Background()
	b := logBackend(t)
	lc := NewLogEntryController(b, &recorder{})

	_, err := lc.Create(ctx, models.LogEntryDraft{ContainerID: "CNT-1", CustomerID: 1, Action: "teleport"})
	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr))
	require.Equal(t, 3, b.Calls("create log entry"))
}

func TestLogEntryController_ReloadKeepsScope(t *testing.T) {
	ctx := context.Background()
	b := logBackend(t)
	lc := NewLogEntryController(b, &recorder{})
	require.NoError(t, lc.LoadForCustomer(ctx, 1))

	require.NoError(t, lc.Reload(ctx))
	require.Equal(t, 2, b.Calls("list customer log entries"))
	require.Zero(t, b.Calls("list log entries"))
}

func TestLogEntryController_Rows(t *testing.T) {
	ctx := context.Background()
	b := logBackend(t)
	lc := NewLogEntryController(b, &recorder{})
	cc := NewContainerController(b, &recorder{}, nil)
	cu := NewCustomerController(b, &recorder{}, nil)

	require.NoError(t, lc.Load(ctx))
	require.NoError(t, cc.Load(ctx))
	require.NoError(t, cu.Load(ctx))

	require.NoError(t, lc.SetActionFilter(models.ActionDropoff))
	rows := lc.Rows(cc, cu)
	require.Len(t, rows, 2)
	for _, r := range rows {
		require.Equal(t, r.Entry.ContainerID, r.ContainerLabel)
		require.NotEqual(t, unknownRef, r.CustomerName)
	}

	// клиент удалён: запись лога остаётся, имя неизвестно
	cu.Close()
	fresh := NewCustomerController(fake.New(), &recorder{}, nil)
	rows = lc.Rows(cc, fresh)
	require.Equal(t, unknownRef, rows[0].CustomerName)

	rows = lc.Rows((*ContainerController)(nil), (*CustomerController)(nil))
	require.NotEmpty(t, rows)
	for _, r := range rows {
		require.Equal(t, unknownRef, r.ContainerLabel)
		require.Equal(t, unknownRef, r.CustomerName)
	}

	require.Error(t, lc.SetActionFilter("teleport"))
}
