package inventory

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/BearBump/RollOff/internal/broker/messages"
	"github.com/BearBump/RollOff/internal/cache"
	"github.com/BearBump/RollOff/internal/models"
)

type Repository interface {
	ListContainers(ctx context.Context) ([]*models.Container, error)
	GetContainer(ctx context.Context, id string) (*models.Container, error)
	InsertContainer(ctx context.Context, c models.Container) (*models.Container, error)
	UpdateContainer(ctx context.Context, c models.Container) (*models.Container, error)
	DeleteContainer(ctx context.Context, id string) (*models.Container, error)

	ListCustomers(ctx context.Context) ([]*models.Customer, error)
	GetCustomer(ctx context.Context, id int64) (*models.Customer, error)
	SearchCustomers(ctx context.Context, name string) ([]*models.Customer, error)
	InsertCustomer(ctx context.Context, d models.CustomerDraft) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, id int64, d models.CustomerDraft) (*models.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) (*models.Customer, error)

	ListLogEntries(ctx context.Context) ([]*models.LogEntry, error)
	ListLogEntriesByContainer(ctx context.Context, containerID string) ([]*models.LogEntry, error)
	ListLogEntriesByCustomer(ctx context.Context, customerID int64) ([]*models.LogEntry, error)
	InsertLogEntry(ctx context.Context, e models.LogEntry) (*models.LogEntry, error)
}

type Producer interface {
	Publish(ctx context.Context, topic string, key, value []byte) error
}

// Service — бэкенд REST-контракта: проверки, кэш списков, события об изменениях.
// Get/Insert/Update/Delete репозитория возвращают nil без ошибки, если записи нет.
type Service struct {
	repo    Repository
	cache   cache.BytesCache
	listTTL time.Duration

	events Producer
	topic  string

	defaultUpdatedBy string
	now              func() time.Time
}

type Option func(*Service)

func WithEvents(p Producer, topic string) Option {
	return func(s *Service) {
		s.events = p
		s.topic = topic
	}
}

func WithDefaultUpdatedBy(name string) Option {
	return func(s *Service) { s.defaultUpdatedBy = name }
}

func withClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(repo Repository, c cache.BytesCache, listTTL time.Duration, opts ...Option) *Service {
	s := &Service{
		repo:             repo,
		cache:            c,
		listTTL:          listTTL,
		defaultUpdatedBy: "system",
		now:              func() time.Time { return time.Now().UTC() },
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// publish — best effort: мутация уже закоммичена, событие только сбрасывает кэши реплик.
func (s *Service) publish(ctx context.Context, ev messages.RecordChanged) {
	if s.events == nil || s.topic == "" {
		return
	}
	b, err := json.Marshal(ev)
	if err != nil {
		slog.Error("marshal change event", "err", err)
		return
	}
	if err := s.events.Publish(ctx, s.topic, []byte(ev.RecordID), b); err != nil {
		slog.Warn("change event not published", "resource", ev.Resource, "id", ev.RecordID, "err", err)
	}
}

func (s *Service) updatedBy(name string) string {
	if name == "" {
		return s.defaultUpdatedBy
	}
	return name
}
