package redis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"freight-assignment-engine/internal/domain/model"
)

type fakeRedis struct {
	key    string
	value  []byte
	ttl    time.Duration
	setErr error
}

func (f *fakeRedis) Ping(ctx context.Context) error { return nil }
func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.key = key
	f.value = value.([]byte)
	f.ttl = expiration
	return nil
}
func (f *fakeRedis) Get(ctx context.Context, key string) (string, error) { return "", nil }
func (f *fakeRedis) Del(ctx context.Context, keys ...string) error       { return nil }
func (f *fakeRedis) Close() error                                        { return nil }

func TestSetDecisionKeyAndTTL(t *testing.T) {
	cli := &fakeRedis{}
	cache := NewDecisionCache(cli, time.Hour)

	d := &model.CachedDecision{
		OrderID:     "o1",
		ShipmentID:  "s1",
		OptimizedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Score:       5,
	}
	if err := cache.SetDecision(context.Background(), d); err != nil {
		t.Fatalf("SetDecision: %v", err)
	}

	if cli.key != "orders:o1:assignment" {
		t.Fatalf("key = %q, want orders:o1:assignment", cli.key)
	}
	if cli.ttl != time.Hour {
		t.Fatalf("ttl = %s, want 1h", cli.ttl)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(cli.value, &decoded); err != nil {
		t.Fatalf("value is not JSON: %v", err)
	}
	if decoded["shipmentId"] != "s1" {
		t.Fatalf("value = %s", cli.value)
	}
}

func TestSetDecisionPropagatesClientError(t *testing.T) {
	cli := &fakeRedis{setErr: errors.New("connection refused")}
	cache := NewDecisionCache(cli, time.Hour)

	err := cache.SetDecision(context.Background(), &model.CachedDecision{OrderID: "o1"})
	if err == nil {
		t.Fatal("expected the client error to surface to the caller (who swallows it)")
	}
}

func TestZeroTTLDefaultsToOneHour(t *testing.T) {
	cli := &fakeRedis{}
	cache := NewDecisionCache(cli, 0)
	_ = cache.SetDecision(context.Background(), &model.CachedDecision{OrderID: "o1"})
	if cli.ttl != time.Hour {
		t.Fatalf("ttl = %s, want default 1h", cli.ttl)
	}
}
