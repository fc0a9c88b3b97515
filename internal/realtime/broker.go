package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/go-redis/redis/v8"
)

const EventNewBooking = "new-booking"

type Event struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

type Subscription interface {
	Messages() <-chan []byte
	Close() error
}

// Broker fans booking events out to the restaurant's live channel.
type Broker interface {
	Publish(ctx context.Context, restaurantID string, ev Event) error
	Subscribe(ctx context.Context, restaurantID string) (Subscription, error)
}

func channelFor(restaurantID string) string {
	return fmt.Sprintf("restaurant:%s:bookings", restaurantID)
}

// ======================================================
// REDIS
// ======================================================

type RedisBroker struct {
	rdb *redis.Client
}

func NewRedisBroker(rdb *redis.Client) *RedisBroker {
	return &RedisBroker{rdb: rdb}
}

func (b *RedisBroker) Publish(ctx context.Context, restaurantID string, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, channelFor(restaurantID), payload).Err()
}

func (b *RedisBroker) Subscribe(ctx context.Context, restaurantID string) (Subscription, error) {
	ps := b.rdb.Subscribe(ctx, channelFor(restaurantID))
	// Wait for the subscription confirmation so no event published after
	// Subscribe returns is missed.
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, err
	}

	out := make(chan []byte, 16)
	go func() {
		defer close(out)
		for msg := range ps.Channel() {
			select {
			case out <- []byte(msg.Payload):
			default:
				log.Printf("realtime: slow subscriber on %s, dropping event", msg.Channel)
			}
		}
	}()
	return &redisSubscription{ps: ps, out: out}, nil
}

type redisSubscription struct {
	ps  *redis.PubSub
	out chan []byte
}

func (s *redisSubscription) Messages() <-chan []byte { return s.out }
func (s *redisSubscription) Close() error            { return s.ps.Close() }

// ======================================================
// IN-PROCESS
// ======================================================

// LocalBroker serves a single instance without redis.
type LocalBroker struct {
	mu   sync.Mutex
	subs map[string]map[*localSubscription]struct{}
}

func NewLocalBroker() *LocalBroker {
	return &LocalBroker{subs: map[string]map[*localSubscription]struct{}{}}
}

func (b *LocalBroker) Publish(_ context.Context, restaurantID string, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for s := range b.subs[restaurantID] {
		select {
		case s.out <- payload:
		default:
			log.Printf("realtime: slow subscriber on %s, dropping event", restaurantID)
		}
	}
	return nil
}

func (b *LocalBroker) Subscribe(_ context.Context, restaurantID string) (Subscription, error) {
	s := &localSubscription{
		broker:       b,
		restaurantID: restaurantID,
		out:          make(chan []byte, 16),
	}

	b.mu.Lock()
	if b.subs[restaurantID] == nil {
		b.subs[restaurantID] = map[*localSubscription]struct{}{}
	}
	b.subs[restaurantID][s] = struct{}{}
	b.mu.Unlock()

	return s, nil
}

type localSubscription struct {
	broker       *LocalBroker
	restaurantID string
	out          chan []byte
	once         sync.Once
}

func (s *localSubscription) Messages() <-chan []byte { return s.out }

func (s *localSubscription) Close() error {
	s.once.Do(func() {
		s.broker.mu.Lock()
		delete(s.broker.subs[s.restaurantID], s)
		if len(s.broker.subs[s.restaurantID]) == 0 {
			delete(s.broker.subs, s.restaurantID)
		}
		s.broker.mu.Unlock()
		close(s.out)
	})
	return nil
}

var (
	_ Broker = (*RedisBroker)(nil)
	_ Broker = (*LocalBroker)(nil)
)
