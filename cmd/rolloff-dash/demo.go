package main

import (
	"context"
	"time"

	"cloud.google.com/go/civil"
	"github.com/BearBump/RollOff/internal/integrations/rolloffapi/fake"
	"github.com/BearBump/RollOff/internal/models"
)

// demoBackend — данные для -offline: живут до конца процесса.
func demoBackend() *fake.Backend {
	acme, oak := int64(1), int64(2)
	day := func(m time.Month, d int) *civil.Date {
		return &civil.Date{Year: 2024, Month: m, Day: d}
	}
	weight := 4.2

	b := fake.New().
		SeedCustomers(
			models.Customer{ID: acme, Name: "Acme Roofing", Address: "12 Main St", Phone: "555-0101", JobSiteInfo: "gate code 4411"},
			models.Customer{ID: oak, Name: "Oak Street Builders", Address: "90 Oak St"},
		).
		Seed(
			models.Container{ID: "CNT-001", Status: models.StatusInUse, Location: "12 Main St", Contents: "shingles", CurrentCustomerID: &acme, DateDropped: day(time.March, 4)},
			models.Container{ID: "CNT-002", Status: models.StatusNeedsPickedUp, Location: "90 Oak St", Contents: "drywall", CurrentCustomerID: &oak, DateDropped: day(time.February, 20)},
			models.Container{ID: "CNT-003", Status: models.StatusAvailable, Location: "Yard"},
			models.Container{ID: "CNT-004", Status: models.StatusDumped, Location: "Landfill", Weight: &weight, DateDumped: day(time.February, 1)},
		)

	ctx := context.Background()
	_, _ = b.CreateLogEntry(ctx, models.LogEntryDraft{ContainerID: "CNT-002", CustomerID: oak, Action: models.ActionDropoff, Notes: "driveway"})
	_, _ = b.CreateLogEntry(ctx, models.LogEntryDraft{ContainerID: "CNT-001", CustomerID: acme, Action: models.ActionDropoff})
	return b
}
