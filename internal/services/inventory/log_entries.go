package inventory

import (
	"context"
	"strconv"

	"github.com/BearBump/RollOff/internal/broker/messages"
	"github.com/BearBump/RollOff/internal/models"
)

func (s *Service) ListLogEntries(ctx context.Context) ([]*models.LogEntry, error) {
	return cachedList(ctx, s, logEntriesKey, s.repo.ListLogEntries)
}

// ListContainerLogEntries для неизвестного контейнера возвращает пустой список.
func (s *Service) ListContainerLogEntries(ctx context.Context, containerID string) ([]*models.LogEntry, error) {
	out, err := s.repo.ListLogEntriesByContainer(ctx, models.NormalizeContainerID(containerID))
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []*models.LogEntry{}
	}
	return out, nil
}

func (s *Service) ListCustomerLogEntries(ctx context.Context, customerID int64) ([]*models.LogEntry, error) {
	out, err := s.repo.ListLogEntriesByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []*models.LogEntry{}
	}
	return out, nil
}

// CreateLogEntry дописывает запись журнала. Контейнер и клиент должны существовать
// на момент записи, дальше журнал от них не зависит.
func (s *Service) CreateLogEntry(ctx context.Context, d models.LogEntryDraft) (*models.LogEntry, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	d = d.Trimmed()

	ct, err := s.repo.GetContainer(ctx, d.ContainerID)
	if err != nil {
		return nil, err
	}
	if ct == nil {
		return nil, containerNotFound(d.ContainerID)
	}
	cu, err := s.repo.GetCustomer(ctx, d.CustomerID)
	if err != nil {
		return nil, err
	}
	if cu == nil {
		return nil, customerNotFound(d.CustomerID)
	}

	e, err := s.repo.InsertLogEntry(ctx, models.LogEntry{
		ContainerID: d.ContainerID,
		CustomerID:  d.CustomerID,
		Action:      d.Action,
		Timestamp:   s.now(),
		Notes:       d.Notes,
	})
	if err != nil {
		return nil, err
	}

	s.changed(ctx, messages.NewRecordChanged(messages.ResourceLogEntry, messages.OpCreated, strconv.FormatInt(e.ID, 10), e.Timestamp))
	return e, nil
}
