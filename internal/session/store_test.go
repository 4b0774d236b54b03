package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/Laulau4713/champion-engine/internal/level"
	"github.com/Laulau4713/champion-engine/internal/rng"
)

// #region helpers

func makeSnapshot(t *testing.T) *Snapshot {
	t.Helper()
	s := New(makeLevel(t, level.DifficultyEasy), makeModule(t), Options{RNG: rng.New(1)})
	s.EvaluateTurn(TurnInput{Text: "What challenges are you facing with onboarding?", Confidence: 0.9})
	return s.Snapshot()
}

func roundTrip(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()
	snap := makeSnapshot(t)

	if err := store.Save(ctx, snap); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Load(ctx, snap.ID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.ID != snap.ID || got.Gauge.Value != snap.Gauge.Value || got.MessageCount != snap.MessageCount {
		t.Fatalf("loaded snapshot differs: got %+v, want %+v", got, snap)
	}

	if err := store.Delete(ctx, snap.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, err = store.Load(ctx, snap.ID)
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("load after delete: err = %v, want NotFoundError", err)
	}
}

// #endregion helpers

// #region stores

func TestMemoryStoreRoundTrip(t *testing.T) {
	roundTrip(t, NewMemoryStore())
}

func TestRedisStoreRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	roundTrip(t, NewRedisStore(client))
}

func TestRedisStoreTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := NewRedisStore(client, RedisStoreConfig{TTL: time.Minute})
	ctx := context.Background()
	snap := makeSnapshot(t)
	if err := store.Save(ctx, snap); err != nil {
		t.Fatalf("save: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	_, err := store.Load(ctx, snap.ID)
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expired snapshot should be gone, err = %v", err)
	}
}

// #endregion stores
