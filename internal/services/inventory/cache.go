package inventory

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/BearBump/RollOff/internal/broker/messages"
)

const (
	containersKey = "rolloff:containers:list"
	customersKey  = "rolloff:customers:list"
	logEntriesKey = "rolloff:log_entries:list"
)

func (s *Service) cacheEnabled() bool {
	return s.cache != nil && s.listTTL > 0
}

// cachedList отдаёт список из кэша или грузит его через load и кладёт в кэш.
// Ошибки кэша не ломают запрос.
func cachedList[T any](ctx context.Context, s *Service, key string, load func(context.Context) ([]*T, error)) ([]*T, error) {
	if s.cacheEnabled() {
		if b, ok, err := s.cache.Get(ctx, key); err == nil && ok {
			var out []*T
			if json.Unmarshal(b, &out) == nil {
				return out, nil
			}
		}
	}

	out, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []*T{}
	}
	if s.cacheEnabled() {
		b, _ := json.Marshal(out)
		_ = s.cache.Set(ctx, key, b, s.listTTL)
	}
	return out, nil
}

// keysFor — какие списки устаревают при изменении ресурса. Клиенты содержат
// current_containers, поэтому контейнер сбрасывает и их.
func keysFor(res messages.Resource) []string {
	switch res {
	case messages.ResourceContainer:
		return []string{containersKey, customersKey}
	case messages.ResourceCustomer:
		// удаление клиента обнуляет current_customer_id у контейнеров
		return []string{customersKey, containersKey}
	case messages.ResourceLogEntry:
		return []string{logEntriesKey}
	}
	return []string{containersKey, customersKey, logEntriesKey}
}

func (s *Service) invalidate(ctx context.Context, res messages.Resource) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, keysFor(res)...); err != nil {
		slog.Warn("cache invalidation failed", "resource", res, "err", err)
	}
}

// ApplyChange обрабатывает событие другой реплики.
func (s *Service) ApplyChange(ctx context.Context, ev messages.RecordChanged) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Del(ctx, keysFor(ev.Resource)...)
}

// changed сбрасывает кэш и публикует событие.
func (s *Service) changed(ctx context.Context, ev messages.RecordChanged) {
	s.invalidate(ctx, ev.Resource)
	s.publish(ctx, ev)
}
