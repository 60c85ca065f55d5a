package infra_redis_broker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-redis/redis"
)

const changedMessage = "changed"

// Broker carries store change notifications over Redis pub/sub, so sessions on
// other instances see writes made here.
type Broker struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

type Option func(*Broker)

func WithLogger(logger *slog.Logger) Option {
	return func(b *Broker) {
		b.logger = logger
	}
}

// WithPrefix namespaces channel names, e.g. per deployment.
func WithPrefix(prefix string) Option {
	return func(b *Broker) {
		b.prefix = prefix
	}
}

func New(client *redis.Client, opts ...Option) *Broker {
	b := &Broker{
		client: client,
		prefix: "movieparty:",
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Broker) channel(topic string) string {
	return b.prefix + topic
}

func (b *Broker) Publish(ctx context.Context, topic string) error {
	if err := b.client.WithContext(ctx).Publish(b.channel(topic), changedMessage).Err(); err != nil {
		return fmt.Errorf("redis publish %s: %w", topic, err)
	}
	return nil
}

// Subscribe waits for the subscription to be confirmed, then calls fn from a
// dedicated goroutine for every message until unsubscribed.
func (b *Broker) Subscribe(ctx context.Context, topic string, fn func()) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ps := b.client.Subscribe(b.channel(topic))
	if _, err := ps.Receive(); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("redis subscribe %s: %w", topic, err)
	}

	ch := ps.Channel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for range ch {
			fn()
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			if err := ps.Close(); err != nil {
				b.logger.Warn("redis unsubscribe failed", "topic", topic, "error", err)
			}
			<-done
		})
	}, nil
}
