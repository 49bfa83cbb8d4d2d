package pgrolloff

import (
	"context"

	"github.com/BearBump/RollOff/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

const logEntryColumns = ` id, container_id, customer_id, action, ts, notes`

func scanLogEntry(row pgx.Row) (*models.LogEntry, error) {
	var e models.LogEntry
	if err := row.Scan(&e.ID, &e.ContainerID, &e.CustomerID, &e.Action, &e.Timestamp, &e.Notes); err != nil {
		return nil, err
	}
	e.Timestamp = e.Timestamp.UTC()
	return &e, nil
}

// Журнал отдаётся в хронологическом порядке: новая запись всегда в конце.
func (s *Storage) ListLogEntries(ctx context.Context) ([]*models.LogEntry, error) {
	return s.queryLogEntries(ctx, `SELECT`+logEntryColumns+` FROM log_entries ORDER BY ts, id`)
}

func (s *Storage) ListLogEntriesByContainer(ctx context.Context, containerID string) ([]*models.LogEntry, error) {
	return s.queryLogEntries(ctx, `SELECT`+logEntryColumns+` FROM log_entries WHERE container_id = $1 ORDER BY ts, id`, containerID)
}

func (s *Storage) ListLogEntriesByCustomer(ctx context.Context, customerID int64) ([]*models.LogEntry, error) {
	return s.queryLogEntries(ctx, `SELECT`+logEntryColumns+` FROM log_entries WHERE customer_id = $1 ORDER BY ts, id`, customerID)
}

func (s *Storage) InsertLogEntry(ctx context.Context, e models.LogEntry) (*models.LogEntry, error) {
	out, err := scanLogEntry(s.db.QueryRow(ctx, `
INSERT INTO log_entries (container_id, customer_id, action, ts, notes)
VALUES ($1,$2,$3,$4,$5)
RETURNING`+logEntryColumns, e.ContainerID, e.CustomerID, e.Action, e.Timestamp, e.Notes))
	if err != nil {
		return nil, errors.Wrap(err, "insert log entry")
	}
	return out, nil
}

func (s *Storage) queryLogEntries(ctx context.Context, q string, args ...any) ([]*models.LogEntry, error) {
	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "select log entries")
	}
	defer rows.Close()

	out := []*models.LogEntry{}
	for rows.Next() {
		e, err := scanLogEntry(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan log entry")
		}
		out = append(out, e)
	}
	if rows.Err() != nil {
		return nil, errors.Wrap(rows.Err(), "rows")
	}
	return out, nil
}
