package pgrolloff

import (
	"context"

	"github.com/pkg/errors"
)

func (s *Storage) initSchema(ctx context.Context) error {
	stmts := []string{
		`
CREATE TABLE IF NOT EXISTS customers (
  id BIGSERIAL PRIMARY KEY,
  name TEXT NOT NULL,
  address TEXT NOT NULL DEFAULT '',
  phone TEXT NOT NULL DEFAULT '',
  job_site_info TEXT NOT NULL DEFAULT '',
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`CREATE INDEX IF NOT EXISTS idx_customers_lower_name ON customers(lower(name))`,
		`
CREATE TABLE IF NOT EXISTS containers (
  id TEXT PRIMARY KEY,
  status TEXT NOT NULL,
  location TEXT NOT NULL DEFAULT '',
  contents TEXT NOT NULL DEFAULT '',
  current_customer_id BIGINT NULL REFERENCES customers(id) ON DELETE SET NULL,
  date_dropped DATE NULL,
  weight DOUBLE PRECISION NULL,
  date_dumped DATE NULL,
  last_updated TIMESTAMPTZ NOT NULL,
  updated_by TEXT NOT NULL DEFAULT '',
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  CHECK (status IN ('Available', 'In Use', 'Needs Picked Up', 'Dumped')),
  CHECK (weight IS NULL OR (weight >= 0 AND weight <= 50))
)`,
		`CREATE INDEX IF NOT EXISTS idx_containers_current_customer_id ON containers(current_customer_id)`,
		// Журнал без FK: записи переживают удаление контейнера и клиента.
		`
CREATE TABLE IF NOT EXISTS log_entries (
  id BIGSERIAL PRIMARY KEY,
  container_id TEXT NOT NULL,
  customer_id BIGINT NOT NULL,
  action TEXT NOT NULL,
  ts TIMESTAMPTZ NOT NULL,
  notes TEXT NOT NULL DEFAULT '',
  CHECK (action IN ('dropoff', 'pickup', 'maintenance'))
)`,
		`CREATE INDEX IF NOT EXISTS idx_log_entries_container_ts ON log_entries(container_id, ts)`,
		`CREATE INDEX IF NOT EXISTS idx_log_entries_customer_ts ON log_entries(customer_id, ts)`,
	}

	for _, q := range stmts {
		if _, err := s.db.Exec(ctx, q); err != nil {
			return errors.Wrap(err, "init schema")
		}
	}
	return nil
}
