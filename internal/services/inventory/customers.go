package inventory

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/BearBump/RollOff/internal/broker/messages"
	"github.com/BearBump/RollOff/internal/models"
)

func (s *Service) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	return cachedList(ctx, s, customersKey, s.repo.ListCustomers)
}

func (s *Service) GetCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	c, err := s.repo.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, customerNotFound(id)
	}
	return c, nil
}

// SearchCustomers ищет по подстроке имени без учёта регистра. Пустой запрос — весь список.
func (s *Service) SearchCustomers(ctx context.Context, name string) ([]*models.Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s.ListCustomers(ctx)
	}
	out, err := s.repo.SearchCustomers(ctx, name)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []*models.Customer{}
	}
	return out, nil
}

func (s *Service) CreateCustomer(ctx context.Context, d models.CustomerDraft) (*models.Customer, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	c, err := s.repo.InsertCustomer(ctx, d.Trimmed())
	if err != nil {
		return nil, err
	}
	s.changed(ctx, customerEvent(messages.OpCreated, c.ID, s.now()))
	return c, nil
}

func (s *Service) UpdateCustomer(ctx context.Context, id int64, d models.CustomerDraft) (*models.Customer, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	c, err := s.repo.UpdateCustomer(ctx, id, d.Trimmed())
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, customerNotFound(id)
	}
	s.changed(ctx, customerEvent(messages.OpUpdated, id, s.now()))
	return c, nil
}

// DeleteCustomer удаляет клиента; контейнеры остаются, ссылка на клиента обнуляется,
// записи журнала сохраняются.
func (s *Service) DeleteCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	c, err := s.repo.DeleteCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, customerNotFound(id)
	}
	s.changed(ctx, customerEvent(messages.OpDeleted, id, s.now()))
	return c, nil
}

func customerEvent(op messages.ChangeOp, id int64, at time.Time) messages.RecordChanged {
	return messages.NewRecordChanged(messages.ResourceCustomer, op, strconv.FormatInt(id, 10), at)
}
