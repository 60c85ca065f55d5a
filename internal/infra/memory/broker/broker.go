package infra_memory_broker

import (
	"context"
	"sync"
)

// Broker delivers notifications in-process. Publish calls every subscriber of
// the topic synchronously, outside the broker lock.
type Broker struct {
	mu     sync.Mutex
	nextID int
	topics map[string]map[int]func()
}

func New() *Broker {
	return &Broker{
		topics: make(map[string]map[int]func()),
	}
}

func (b *Broker) Publish(ctx context.Context, topic string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	subscribers := make([]func(), 0, len(b.topics[topic]))
	for _, fn := range b.topics[topic] {
		subscribers = append(subscribers, fn)
	}
	b.mu.Unlock()

	for _, fn := range subscribers {
		fn()
	}
	return nil
}

func (b *Broker) Subscribe(ctx context.Context, topic string, fn func()) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	if _, ok := b.topics[topic]; !ok {
		b.topics[topic] = make(map[int]func())
	}
	b.topics[topic][id] = fn

	var once sync.Once
	return func() {
		once.Do(func() { b.unsubscribe(topic, id) })
	}, nil
}

func (b *Broker) unsubscribe(topic string, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.topics[topic], id)
	if len(b.topics[topic]) == 0 {
		delete(b.topics, topic)
	}
}

// Subscribers is the number of live subscriptions on topic.
func (b *Broker) Subscribers(topic string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.topics[topic])
}
