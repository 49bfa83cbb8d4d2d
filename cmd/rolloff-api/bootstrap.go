package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BearBump/RollOff/config"
	"github.com/BearBump/RollOff/internal/broker/kafka"
	"github.com/BearBump/RollOff/internal/cache/rediscache"
	"github.com/BearBump/RollOff/internal/services/inventory"
	"github.com/BearBump/RollOff/internal/storage/pgrolloff"
)

type rollOffAPIApp struct {
	ctx      context.Context
	cancel   context.CancelFunc
	opts     rollOffAPIOpts
	svc      *inventory.Service
	consumer *kafka.Consumer
	closers  []func()
}

func mustBootstrapRollOffAPI() *rollOffAPIApp {
	cfgPath := os.Getenv("configPath")
	if cfgPath == "" {
		panic("configPath env var is required")
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		panic(fmt.Sprintf("ошибка парсинга конфига, %v", err))
	}

	httpAddr := cfg.RollOff.HTTPAddr
	if httpAddr == "" {
		httpAddr = ":8000"
	}
	consumerGroup := cfg.RollOff.KafkaConsumerGroup
	if consumerGroup == "" {
		// у каждой реплики своя группа: инвалидация нужна всем
		host, _ := os.Hostname()
		consumerGroup = "rolloff-api-" + host
	}
	topic := cfg.Kafka.ChangesTopicName
	if topic == "" {
		topic = "rolloff.changes"
	}
	cacheTTL := time.Duration(cfg.RollOff.ListCacheTTLSeconds) * time.Second
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Second
	}
	updatedBy := cfg.RollOff.DefaultUpdatedBy
	if updatedBy == "" {
		updatedBy = "api"
	}

	st := mustOpenPostgresWithRetry(cfg.Database.ConnString(), 60*time.Second)

	rc := rediscache.New(fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port))

	brokers := []string{fmt.Sprintf("%s:%d", cfg.Kafka.Host, cfg.Kafka.Port)}
	producer := kafka.NewProducer(brokers)
	consumer := kafka.NewConsumer(brokers, topic, consumerGroup)

	svc := inventory.New(st, rc, cacheTTL,
		inventory.WithEvents(producer, topic),
		inventory.WithDefaultUpdatedBy(updatedBy),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	return &rollOffAPIApp{
		ctx:    ctx,
		cancel: cancel,
		opts: rollOffAPIOpts{
			httpAddr:      httpAddr,
			swaggerPath:   os.Getenv("swaggerPath"),
			topic:         topic,
			consumerGroup: consumerGroup,
		},
		svc:      svc,
		consumer: consumer,
		closers: []func(){
			func() { _ = consumer.Close() },
			func() { _ = producer.Close() },
			func() { _ = rc.Close() },
			st.Close,
		},
	}
}

func mustOpenPostgresWithRetry(connString string, wait time.Duration) *pgrolloff.Storage {
	deadline := time.Now().Add(wait)
	var lastErr error
	for time.Now().Before(deadline) {
		st, err := pgrolloff.New(connString)
		if err == nil {
			return st
		}
		lastErr = err
		time.Sleep(1 * time.Second)
	}
	panic(fmt.Sprintf("postgres is not ready after %s: %v", wait, lastErr))
}

func (a *rollOffAPIApp) Close() {
	if a.cancel != nil {
		a.cancel()
	}
	for _, c := range a.closers {
		c()
	}
}

func (a *rollOffAPIApp) Run() error {
	return runRollOffAPI(a.ctx, a.opts, a.svc, a.consumer)
}
