package messages

import (
	"time"

	"github.com/google/uuid"
)

type Resource string

const (
	ResourceContainer Resource = "container"
	ResourceCustomer  Resource = "customer"
	ResourceLogEntry  Resource = "log_entry"
)

type ChangeOp string

const (
	OpCreated ChangeOp = "created"
	OpUpdated ChangeOp = "updated"
	OpDeleted ChangeOp = "deleted"
)

// RecordChanged публикуется после каждой успешной мутации. Ключ сообщения — RecordID,
// так что изменения одной записи попадают в одну партицию.
type RecordChanged struct {
	EventID    string    `json:"event_id"`
	Resource   Resource  `json:"resource"`
	Op         ChangeOp  `json:"op"`
	RecordID   string    `json:"record_id"`
	Status     string    `json:"status,omitempty"`
	UpdatedBy  string    `json:"updated_by,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewRecordChanged(res Resource, op ChangeOp, recordID string, at time.Time) RecordChanged {
	return RecordChanged{
		EventID:    uuid.NewString(),
		Resource:   res,
		Op:         op,
		RecordID:   recordID,
		OccurredAt: at.UTC(),
	}
}
