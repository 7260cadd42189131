package queue

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// Broker is a registry of named queues sharing one redis client
type Broker struct {
	client *redis.Client
	prefix string

	mu     sync.Mutex
	queues map[string]*Queue
}

// NewBroker makes a broker, all queue keys are prefixed with prefix
func NewBroker(client *redis.Client, prefix string) *Broker {
	if prefix == "" {
		prefix = "newsdigest"
	}
	return &Broker{client: client, prefix: prefix, queues: map[string]*Queue{}}
}

// Register adds a queue. Registering the same name twice returns the existing queue.
func (b *Broker) Register(name string, opts Options) *Queue {
	b.mu.Lock()
	defer b.mu.Unlock()
	if q, ok := b.queues[name]; ok {
		return q
	}
	q := New(b.client, b.prefix, name, opts)
	b.queues[name] = q
	return q
}

// Queue returns a registered queue by name
func (b *Broker) Queue(name string) (*Queue, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	q, ok := b.queues[name]
	if !ok {
		return nil, fmt.Errorf("queue %q is not registered", name)
	}
	return q, nil
}

// Names returns sorted names of registered queues
func (b *Broker) Names() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	res := make([]string, 0, len(b.queues))
	for name := range b.queues {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

// Run drains all registered queues until ctx is canceled
func (b *Broker) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, name := range b.Names() {
		q, _ := b.Queue(name)
		g.Go(func() error { return q.Run(ctx) })
	}
	return g.Wait()
}

// Stats collects counters of all registered queues
func (b *Broker) Stats(ctx context.Context) (map[string]Stats, error) {
	res := map[string]Stats{}
	for _, name := range b.Names() {
		q, _ := b.Queue(name)
		st, err := q.Stats(ctx)
		if err != nil {
			return nil, err
		}
		res[name] = st
	}
	return res, nil
}

// Failed lists failed jobs of the named queue, most recent first
func (b *Broker) Failed(ctx context.Context, name string) ([]*Job, error) {
	q, err := b.Queue(name)
	if err != nil {
		return nil, err
	}
	return q.Failed(ctx)
}

// Ping checks redis connection
func (b *Broker) Ping(ctx context.Context) error {
	if err := b.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	return nil
}
