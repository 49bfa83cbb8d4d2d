package pgrolloff

import (
	"context"
	"time"

	"cloud.google.com/go/civil"
	"github.com/BearBump/RollOff/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

const containerColumns = `
  id, status, location, contents, current_customer_id,
  date_dropped, weight, date_dumped,
  last_updated, updated_by`

func scanContainer(row pgx.Row) (*models.Container, error) {
	var c models.Container
	var dateDropped, dateDumped *time.Time
	if err := row.Scan(
		&c.ID, &c.Status, &c.Location, &c.Contents, &c.CurrentCustomerID,
		&dateDropped, &c.Weight, &dateDumped,
		&c.LastUpdated, &c.UpdatedBy,
	); err != nil {
		return nil, err
	}
	c.DateDropped = dateOf(dateDropped)
	c.DateDumped = dateOf(dateDumped)
	c.LastUpdated = c.LastUpdated.UTC()
	return &c, nil
}

func dateOf(t *time.Time) *civil.Date {
	if t == nil {
		return nil
	}
	d := civil.DateOf(*t)
	return &d
}

// dateArg переводит civil.Date в значение для колонки DATE.
func dateArg(d *civil.Date) any {
	if d == nil {
		return nil
	}
	return d.In(time.UTC)
}

func (s *Storage) ListContainers(ctx context.Context) ([]*models.Container, error) {
	rows, err := s.db.Query(ctx, `SELECT`+containerColumns+` FROM containers ORDER BY created_at, id`)
	if err != nil {
		return nil, errors.Wrap(err, "select containers")
	}
	defer rows.Close()

	out := []*models.Container{}
	for rows.Next() {
		c, err := scanContainer(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan container")
		}
		out = append(out, c)
	}
	if rows.Err() != nil {
		return nil, errors.Wrap(rows.Err(), "rows")
	}
	return out, nil
}

func (s *Storage) GetContainer(ctx context.Context, id string) (*models.Container, error) {
	c, err := scanContainer(s.db.QueryRow(ctx, `SELECT`+containerColumns+` FROM containers WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "select container")
	}
	return c, nil
}

func (s *Storage) InsertContainer(ctx context.Context, c models.Container) (*models.Container, error) {
	out, err := scanContainer(s.db.QueryRow(ctx, `
INSERT INTO containers (
  id, status, location, contents, current_customer_id,
  date_dropped, weight, date_dumped, last_updated, updated_by
)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
RETURNING`+containerColumns,
		c.ID, c.Status, c.Location, c.Contents, c.CurrentCustomerID,
		dateArg(c.DateDropped), c.Weight, dateArg(c.DateDumped), c.LastUpdated, c.UpdatedBy,
	))
	if isUniqueViolation(err) {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, errors.Wrap(err, "insert container")
	}
	return out, nil
}

// UpdateContainer заменяет все изменяемые поля. nil, если контейнера нет.
func (s *Storage) UpdateContainer(ctx context.Context, c models.Container) (*models.Container, error) {
	out, err := scanContainer(s.db.QueryRow(ctx, `
UPDATE containers SET
  status = $2, location = $3, contents = $4, current_customer_id = $5,
  date_dropped = $6, weight = $7, date_dumped = $8,
  last_updated = $9, updated_by = $10
WHERE id = $1
RETURNING`+containerColumns,
		c.ID, c.Status, c.Location, c.Contents, c.CurrentCustomerID,
		dateArg(c.DateDropped), c.Weight, dateArg(c.DateDumped), c.LastUpdated, c.UpdatedBy,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "update container")
	}
	return out, nil
}

func (s *Storage) DeleteContainer(ctx context.Context, id string) (*models.Container, error) {
	out, err := scanContainer(s.db.QueryRow(ctx, `DELETE FROM containers WHERE id = $1 RETURNING`+containerColumns, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "delete container")
	}
	return out, nil
}
