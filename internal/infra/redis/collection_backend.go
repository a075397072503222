package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Options struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// NewClient connects and pings, retrying a few times while Redis starts up.
func NewClient(ctx context.Context, opts Options, logger *zap.Logger) (*goredis.Client, error) {
	log := logger.With(zap.String("addr", opts.Addr), zap.Int("db", opts.DB))

	rdb := goredis.NewClient(&goredis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	var err error
	for i := 0; i < 5; i++ {
		if err = rdb.Ping(ctx).Err(); err == nil {
			log.Info("redis_connected")
			return rdb, nil
		}
		log.Warn("redis_not_ready", zap.Int("retry", i+1), zap.Error(err))
		select {
		case <-ctx.Done():
			_ = rdb.Close()
			return nil, ctx.Err()
		case <-time.After(time.Second):
		}
	}
	_ = rdb.Close()
	return nil, fmt.Errorf("redis ping failed: %w", err)
}

// CollectionBackend stores each collection under "<prefix>:collection:<name>".
type CollectionBackend struct {
	client goredis.Cmdable
	prefix string
}

func NewCollectionBackend(client goredis.Cmdable, prefix string) *CollectionBackend {
	if prefix == "" {
		prefix = "ecoplay"
	}
	return &CollectionBackend{client: client, prefix: prefix}
}

func (b *CollectionBackend) Key(collection string) string {
	return fmt.Sprintf("%s:collection:%s", b.prefix, collection)
}

func (b *CollectionBackend) Get(ctx context.Context, collection string) ([]byte, bool, error) {
	data, err := b.client.Get(ctx, b.Key(collection)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", collection, err)
	}
	return data, true, nil
}

func (b *CollectionBackend) Put(ctx context.Context, collection string, data []byte) error {
	if err := b.client.Set(ctx, b.Key(collection), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", collection, err)
	}
	return nil
}

func (b *CollectionBackend) Delete(ctx context.Context, collection string) error {
	if err := b.client.Del(ctx, b.Key(collection)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", collection, err)
	}
	return nil
}
