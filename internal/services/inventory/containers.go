package inventory

import (
	"context"
	"errors"

	"github.com/BearBump/RollOff/internal/broker/messages"
	"github.com/BearBump/RollOff/internal/models"
	"github.com/BearBump/RollOff/internal/storage/pgrolloff"
)

func (s *Service) ListContainers(ctx context.Context) ([]*models.Container, error) {
	return cachedList(ctx, s, containersKey, s.repo.ListContainers)
}

func (s *Service) GetContainer(ctx context.Context, id string) (*models.Container, error) {
	id = models.NormalizeContainerID(id)
	c, err := s.repo.GetContainer(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, containerNotFound(id)
	}
	return c, nil
}

// CreateContainer сохраняет новый контейнер. Номер контейнера выбирает оператор,
// повтор номера — 409.
func (s *Service) CreateContainer(ctx context.Context, in models.Container, updatedBy string) (*models.Container, error) {
	in.ID = models.NormalizeContainerID(in.ID)
	c, err := s.prepare(ctx, in, updatedBy)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetContainer(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fail(ErrConflict, "Container %s already exists", c.ID)
	}

	created, err := s.repo.InsertContainer(ctx, c)
	if errors.Is(err, pgrolloff.ErrDuplicate) {
		return nil, fail(ErrConflict, "Container %s already exists", c.ID)
	}
	if err != nil {
		return nil, err
	}

	s.changed(ctx, containerEvent(messages.OpCreated, created))
	return created, nil
}

// UpdateContainer заменяет запись id целиком. Dumped-контейнеры только для чтения.
func (s *Service) UpdateContainer(ctx context.Context, id string, in models.Container, updatedBy string) (*models.Container, error) {
	id = models.NormalizeContainerID(id)
	cur, err := s.GetContainer(ctx, id)
	if err != nil {
		return nil, err
	}
	if cur.Archived() {
		return nil, fail(ErrArchived, "Container %s is archived", id)
	}

	in.ID = id
	c, err := s.prepare(ctx, in, updatedBy)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateContainer(ctx, c)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, containerNotFound(id)
	}

	s.changed(ctx, containerEvent(messages.OpUpdated, updated))
	return updated, nil
}

func (s *Service) DeleteContainer(ctx context.Context, id string) (*models.Container, error) {
	id = models.NormalizeContainerID(id)
	cur, err := s.GetContainer(ctx, id)
	if err != nil {
		return nil, err
	}
	if cur.Archived() {
		return nil, fail(ErrArchived, "Container %s is archived", id)
	}

	deleted, err := s.repo.DeleteContainer(ctx, id)
	if err != nil {
		return nil, err
	}
	if deleted == nil {
		return nil, containerNotFound(id)
	}

	s.changed(ctx, containerEvent(messages.OpDeleted, deleted))
	return deleted, nil
}

// prepare валидирует вход так же, как форма дашборда, проверяет FK на клиента
// и проставляет серверные поля.
func (s *Service) prepare(ctx context.Context, in models.Container, updatedBy string) (models.Container, error) {
	if err := models.DraftOf(in).Validate(); err != nil {
		return models.Container{}, err
	}
	c := models.DraftOf(in).Container()

	if c.CurrentCustomerID != nil {
		cu, err := s.repo.GetCustomer(ctx, *c.CurrentCustomerID)
		if err != nil {
			return models.Container{}, err
		}
		if cu == nil {
			return models.Container{}, customerNotFound(*c.CurrentCustomerID)
		}
	}

	c.LastUpdated = s.now()
	c.UpdatedBy = s.updatedBy(updatedBy)
	return c, nil
}

func containerEvent(op messages.ChangeOp, c *models.Container) messages.RecordChanged {
	ev := messages.NewRecordChanged(messages.ResourceContainer, op, c.ID, c.LastUpdated)
	ev.Status = string(c.Status)
	ev.UpdatedBy = c.UpdatedBy
	return ev
}
