package models

import (
	"strings"
	"time"
)

// LogEntry is one append-only audit record. Timestamp is assigned by the server.
type LogEntry struct {
	ID          int64     `json:"id"`
	ContainerID string    `json:"container_id"`
	CustomerID  int64     `json:"customer_id"`
	Action      Action    `json:"action"`
	Timestamp   time.Time `json:"timestamp"`
	Notes       string    `json:"notes,omitempty"`
}

type LogEntryDraft struct {
	ContainerID string `json:"container_id" validate:"required,max=64"`
	CustomerID  int64  `json:"customer_id" validate:"required,gt=0"`
	Action      Action `json:"action" validate:"required,action"`
	Notes       string `json:"notes,omitempty" validate:"max=2048"`
}

func (d LogEntryDraft) Trimmed() LogEntryDraft {
	return LogEntryDraft{
		ContainerID: NormalizeContainerID(d.ContainerID),
		CustomerID:  d.CustomerID,
		Action:      Action(strings.ToLower(strings.TrimSpace(string(d.Action)))),
		Notes:       strings.TrimSpace(d.Notes),
	}
}
