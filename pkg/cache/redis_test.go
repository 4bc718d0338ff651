package cache

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ghuser/beanbridge/pkg/config"
)

func newTestConfig(url string) *config.Config {
	return &config.Config{
		RedisURL: url,
	}
}

func TestNewRedisClient_InvalidURL(t *testing.T) {
	_, err := NewRedisClient(newTestConfig("not-a-valid-url"))
	if err == nil {
		t.Fatal("expected error for invalid URL, got nil")
	}
}

func TestNewRedisClient_UnreachableHost(t *testing.T) {
	_, err := NewRedisClient(newTestConfig("redis://localhost:19999"))
	if err == nil {
		t.Fatal("expected error when Redis is unreachable, got nil")
	}
}

// Integration tests — skipped unless REDIS_URL is set.
func TestRedisIntegration(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set; skipping integration tests")
	}

	newClient := func(t *testing.T) *RedisClient {
		t.Helper()
		rc, err := NewRedisClient(newTestConfig(redisURL))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		t.Cleanup(func() { _ = rc.Close() })
		return rc
	}

	t.Run("Ping_Success", func(t *testing.T) {
		rc := newClient(t)
		if err := rc.Ping(context.Background()); err != nil {
			t.Fatalf("Ping failed: %v", err)
		}
	})

	t.Run("RFQCache_RoundTrip", func(t *testing.T) {
		rc := newClient(t)
		c := NewRFQCache(rc)
		id := uuid.New()

		payload, _ := json.Marshal(map[string]string{"rfq_number": "RFQ-20240315-143005"})
		if err := c.Set(context.Background(), id, payload); err != nil {
			t.Fatalf("Set failed: %v", err)
		}

		got, err := c.Get(context.Background(), id)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if string(got) != string(payload) {
			t.Fatalf("payload mismatch: %s", got)
		}

		if err := c.Delete(context.Background(), id); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := c.Get(context.Background(), id); !errors.Is(err, redis.Nil) {
			t.Fatalf("expected redis.Nil after delete, got %v", err)
		}
	})

	t.Run("RFQCache_MissIsRedisNil", func(t *testing.T) {
		rc := newClient(t)
		c := NewRFQCache(rc)
		if _, err := c.Get(context.Background(), uuid.New()); !errors.Is(err, redis.Nil) {
			t.Fatalf("expected redis.Nil for unknown id, got %v", err)
		}
	})
}
