package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const publishTimeout = 2 * time.Second

type RedisPublisher struct {
	client *redis.Client
	log    *zap.Logger
}

// NewRedisPublisher connects to url (redis://...) and pings it once.
func NewRedisPublisher(ctx context.Context, url string, log *zap.Logger) (*RedisPublisher, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &RedisPublisher{client: client, log: log.Named("events")}, nil
}

func (p *RedisPublisher) Publish(ctx context.Context, ev AvailabilityChanged) {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		p.log.Error("encode availability event", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := p.client.Publish(ctx, Channel(ev.CleanerID), payload).Err(); err != nil {
		p.log.Warn("publish availability event",
			zap.Stringer("cleaner_id", ev.CleanerID),
			zap.String("reason", string(ev.Reason)),
			zap.Error(err),
		)
	}
}

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
