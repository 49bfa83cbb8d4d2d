package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/BearBump/RollOff/internal/broker/messages"
	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
)

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Consumer struct {
	r messageReader
}

// NewConsumer читает topic в consumer group groupID. Без группы читается одна партиция
// напрямую и коммиты не нужны.
//
// Новая группа стартует с LastOffset: события только сбрасывают кэш списков, а свежая
// реплика начинает с пустым кэшем, так что старая история ей не нужна.
func NewConsumer(brokers []string, topic, groupID string) *Consumer {
	cfg := kafka.ReaderConfig{
		Brokers:           brokers,
		GroupID:           groupID,
		HeartbeatInterval: 3 * time.Second,
		SessionTimeout:    30 * time.Second,
		StartOffset:       kafka.LastOffset,
	}
	if groupID != "" {
		cfg.GroupTopics = []string{topic}
	} else {
		cfg.Topic = topic
	}
	return &Consumer{r: kafka.NewReader(cfg)}
}

func newConsumerWithReader(r messageReader) *Consumer {
	return &Consumer{r: r}
}

func (c *Consumer) Close() error {
	return c.r.Close()
}

// Consume блокируется до отмены ctx, ошибки чтения или ошибки handler.
// Сообщение коммитится только после успешной обработки.
func (c *Consumer) Consume(ctx context.Context, handler func(key, value []byte) error) error {
	for {
		msg, err := c.r.FetchMessage(ctx)
		switch {
		case ctx.Err() != nil:
			return ctx.Err()
		case err != nil:
			return errors.Wrap(err, "fetch message")
		}

		if err := handler(msg.Key, msg.Value); err != nil {
			return err
		}
		if err := c.r.CommitMessages(ctx, msg); err != nil {
			return errors.Wrap(err, "commit message")
		}
	}
}

// ConsumeChanges декодирует RecordChanged и передаёт его в apply. Битое сообщение
// логируется и коммитится: иначе группа встанет на нём навсегда.
func (c *Consumer) ConsumeChanges(ctx context.Context, apply func(ctx context.Context, ev messages.RecordChanged) error) error {
	return c.Consume(ctx, func(key, value []byte) error {
		var ev messages.RecordChanged
		if err := json.Unmarshal(value, &ev); err != nil {
			slog.Warn("skip malformed change event", "key", string(key), "err", err)
			return nil
		}
		if ev.Resource == "" {
			slog.Warn("skip change event without resource", "key", string(key), "event_id", ev.EventID)
			return nil
		}
		return apply(ctx, ev)
	})
}
