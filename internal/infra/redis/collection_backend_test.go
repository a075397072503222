package redis

import (
	"context"
	"testing"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestCollectionBackend_Key(t *testing.T) {
	b := NewCollectionBackend(nil, "school42")
	require.Equal(t, "school42:collection:users", b.Key("users"))

	def := NewCollectionBackend(nil, "")
	require.Equal(t, "ecoplay:collection:watering_records", def.Key("watering_records"))
}

func TestCollectionBackend_UnreachableServer(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	defer client.Close()

	b := NewCollectionBackend(client, "test")
	_, _, err := b.Get(context.Background(), "users")
	require.Error(t, err)
	require.Contains(t, err.Error(), "redis get users")
}
