package liststate

import (
	"strings"

	"github.com/BearBump/RollOff/internal/models"
)

// FilterContainers keeps containers whose id, contents or location contains query
// (case-insensitive) and whose status equals status. "" and StatusAll (any case) match everything.
// The result keeps input order and never aliases the input slice.
func FilterContainers(items []models.Container, query string, status models.Status) []models.Container {
	q := strings.ToLower(query)
	anyStatus := status == "" || strings.EqualFold(string(status), string(models.StatusAll))
	out := make([]models.Container, 0, len(items))
	for _, c := range items {
		if !anyStatus && c.Status != status {
			continue
		}
		if !containsAny(q, c.ID, c.Contents, c.Location) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// FilterCustomers matches name, address and job site info. Customers have no status.
func FilterCustomers(items []models.Customer, query string) []models.Customer {
	q := strings.ToLower(query)
	out := make([]models.Customer, 0, len(items))
	for _, c := range items {
		if containsAny(q, c.Name, c.Address, c.JobSiteInfo) {
			out = append(out, c)
		}
	}
	return out
}

// FilterLogEntries matches container id and notes; action plays the role of the status filter.
func FilterLogEntries(items []models.LogEntry, query string, action models.Action) []models.LogEntry {
	q := strings.ToLower(query)
	anyAction := action == "" || strings.EqualFold(string(action), string(models.ActionAll))
	out := make([]models.LogEntry, 0, len(items))
	for _, e := range items {
		if !anyAction && e.Action != action {
			continue
		}
		if containsAny(q, e.ContainerID, e.Notes) {
			out = append(out, e)
		}
	}
	return out
}

func containsAny(q string, fields ...string) bool {
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
