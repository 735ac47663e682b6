package storage

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"
)

// BreakerFailures is the number of consecutive Redis failures after which the
// breaker opens and writes are dropped without touching the network.
const BreakerFailures = 3

type redisReply struct {
	value string
	found bool
}

// RedisMedium stores values as plain Redis strings without expiry.
type RedisMedium struct {
	client  *redis.Client
	breaker *gobreaker.CircuitBreaker[redisReply]
}

func NewRedisMedium(client *redis.Client) *RedisMedium {
	return &RedisMedium{
		client: client,
		breaker: gobreaker.NewCircuitBreaker[redisReply](gobreaker.Settings{
			Name:        "redis-storage",
			MaxRequests: 1,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= BreakerFailures
			},
		}),
	}
}

func (r *RedisMedium) Get(ctx context.Context, key string) (string, bool, error) {
	reply, err := r.breaker.Execute(func() (redisReply, error) {
		data, err := r.client.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			return redisReply{}, nil
		}
		if err != nil {
			return redisReply{}, errors.Wrap(err, "redis get failed")
		}
		return redisReply{value: data, found: true}, nil
	})
	if err != nil {
		return "", false, err
	}
	return reply.value, reply.found, nil
}

func (r *RedisMedium) Set(ctx context.Context, key, value string) error {
	_, err := r.breaker.Execute(func() (redisReply, error) {
		if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
			return redisReply{}, errors.Wrap(err, "redis set failed")
		}
		return redisReply{}, nil
	})
	return err
}

// State exposes the breaker state for diagnostics.
func (r *RedisMedium) State() gobreaker.State {
	return r.breaker.State()
}
