package pgrolloff

import (
	"context"

	"github.com/BearBump/RollOff/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

const customerColumns = ` id, name, address, phone, job_site_info`

func scanCustomer(row pgx.Row) (*models.Customer, error) {
	var c models.Customer
	if err := row.Scan(&c.ID, &c.Name, &c.Address, &c.Phone, &c.JobSiteInfo); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Storage) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	return s.queryCustomers(ctx, `SELECT`+customerColumns+` FROM customers ORDER BY id`)
}

// SearchCustomers — подстрока имени без учёта регистра.
func (s *Storage) SearchCustomers(ctx context.Context, name string) ([]*models.Customer, error) {
	return s.queryCustomers(ctx, `
SELECT`+customerColumns+`
FROM customers
WHERE strpos(lower(name), lower($1)) > 0
ORDER BY id`, name)
}

func (s *Storage) GetCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	c, err := scanCustomer(s.db.QueryRow(ctx, `SELECT`+customerColumns+` FROM customers WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "select customer")
	}
	return s.withContainers(ctx, c)
}

func (s *Storage) InsertCustomer(ctx context.Context, d models.CustomerDraft) (*models.Customer, error) {
	c, err := scanCustomer(s.db.QueryRow(ctx, `
INSERT INTO customers (name, address, phone, job_site_info)
VALUES ($1,$2,$3,$4)
RETURNING`+customerColumns, d.Name, d.Address, d.Phone, d.JobSiteInfo))
	if err != nil {
		return nil, errors.Wrap(err, "insert customer")
	}
	c.CurrentContainers = []models.Container{}
	return c, nil
}

func (s *Storage) UpdateCustomer(ctx context.Context, id int64, d models.CustomerDraft) (*models.Customer, error) {
	c, err := scanCustomer(s.db.QueryRow(ctx, `
UPDATE customers SET name = $2, address = $3, phone = $4, job_site_info = $5
WHERE id = $1
RETURNING`+customerColumns, id, d.Name, d.Address, d.Phone, d.JobSiteInfo))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "update customer")
	}
	return s.withContainers(ctx, c)
}

// DeleteCustomer возвращает клиента вместе с контейнерами, которые были за ним
// закреплены до удаления.
func (s *Storage) DeleteCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "begin tx")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	byCustomer, err := containersByCustomer(ctx, tx, []int64{id})
	if err != nil {
		return nil, err
	}

	c, err := scanCustomer(tx.QueryRow(ctx, `DELETE FROM customers WHERE id = $1 RETURNING`+customerColumns, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "delete customer")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errors.Wrap(err, "commit tx")
	}
	c.CurrentContainers = nonNil(byCustomer[id])
	return c, nil
}

func (s *Storage) queryCustomers(ctx context.Context, q string, args ...any) ([]*models.Customer, error) {
	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "select customers")
	}
	defer rows.Close()

	out := []*models.Customer{}
	ids := []int64{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan customer")
		}
		out = append(out, c)
		ids = append(ids, c.ID)
	}
	if rows.Err() != nil {
		return nil, errors.Wrap(rows.Err(), "rows")
	}
	rows.Close()

	byCustomer, err := containersByCustomer(ctx, s.db, ids)
	if err != nil {
		return nil, err
	}
	for _, c := range out {
		c.CurrentContainers = nonNil(byCustomer[c.ID])
	}
	return out, nil
}

func (s *Storage) withContainers(ctx context.Context, c *models.Customer) (*models.Customer, error) {
	byCustomer, err := containersByCustomer(ctx, s.db, []int64{c.ID})
	if err != nil {
		return nil, err
	}
	c.CurrentContainers = nonNil(byCustomer[c.ID])
	return c, nil
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// containersByCustomer — производное поле current_containers одним запросом на пачку клиентов.
func containersByCustomer(ctx context.Context, q querier, ids []int64) (map[int64][]models.Container, error) {
	out := map[int64][]models.Container{}
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := q.Query(ctx, `
SELECT`+containerColumns+`
FROM containers
WHERE current_customer_id = ANY($1)
ORDER BY created_at, id`, ids)
	if err != nil {
		return nil, errors.Wrap(err, "select customer containers")
	}
	defer rows.Close()

	for rows.Next() {
		c, err := scanContainer(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan customer container")
		}
		out[*c.CurrentCustomerID] = append(out[*c.CurrentCustomerID], *c)
	}
	if rows.Err() != nil {
		return nil, errors.Wrap(rows.Err(), "rows")
	}
	return out, nil
}

func nonNil(cs []models.Container) []models.Container {
	if cs == nil {
		return []models.Container{}
	}
	return cs
}
