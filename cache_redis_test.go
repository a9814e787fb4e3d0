package bucache

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	redisprovider "github.com/bulib/bucache/provider/redis"
)

func newRedisBackedCache(t *testing.T, mr *miniredis.Miniredis) Cache[[]string] {
	t.Helper()
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	p, err := redisprovider.New(redisprovider.Config{
		Client:        client,
		CloseClient:   true,
		RetryCooldown: 50 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("redis provider: %v", err)
	}
	cc, err := New[[]string](Options[[]string]{Remote: p, SweepInterval: -1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = cc.Close(context.Background()) })
	return cc
}

func TestRedisBackedWriteThrough(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	cc := newRedisBackedCache(t, mr)
	impl := mustImpl(t, cc)

	filters := Filters{"capacity_min": 4}
	want := []string{"mug-302", "mug-303"}
	if err := cc.SetRooms(ctx, "mug", want, filters, 0); err != nil {
		t.Fatalf("SetRooms: %v", err)
	}

	key, err := impl.Key(roomsNamespace("mug"), roomFilters("mug", filters))
	if err != nil {
		t.Fatalf("Key: %v", err)
	}
	if !mr.Exists(key) {
		t.Fatalf("entry missing from the shared tier")
	}
	if ttl := mr.TTL(key); ttl != 300*time.Second {
		t.Fatalf("shared tier ttl = %v, want the 300s rooms policy", ttl)
	}

	got, ok, err := cc.GetRooms(ctx, "mug", filters)
	if err != nil || !ok || !reflect.DeepEqual(got, want) {
		t.Fatalf("GetRooms: ok=%v err=%v got=%v", ok, err, got)
	}
}

// Two cache instances over the same server stand in for two replicas of the
// proxy. One replica's write must be visible to the other.
func TestRedisBackedSharedAcrossInstances(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	c1 := newRedisBackedCache(t, mr)
	c2 := newRedisBackedCache(t, mr)

	filters := Filters{"date": "2025-09-01"}
	want := []string{"09:00", "10:30"}
	if err := c1.SetBookings(ctx, want, filters, 0); err != nil {
		t.Fatalf("SetBookings: %v", err)
	}

	got, ok, err := c2.GetBookings(ctx, filters)
	if err != nil || !ok || !reflect.DeepEqual(got, want) {
		t.Fatalf("second instance GetBookings: ok=%v err=%v got=%v", ok, err, got)
	}
}

func TestRedisBackedScopedInvalidation(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	cc := newRedisBackedCache(t, mr)
	impl := mustImpl(t, cc)

	if err := cc.SetRooms(ctx, "mug", []string{"mug-302"}, nil, 0); err != nil {
		t.Fatalf("SetRooms mug: %v", err)
	}
	if err := cc.SetRooms(ctx, "par", []string{"par-101"}, nil, 0); err != nil {
		t.Fatalf("SetRooms par: %v", err)
	}
	if err := cc.SetFacilities(ctx, []string{"mugar"}, nil, 0); err != nil {
		t.Fatalf("SetFacilities: %v", err)
	}

	removed, err := cc.InvalidateRooms(ctx, "mug")
	if err != nil {
		t.Fatalf("InvalidateRooms: %v", err)
	}
	if removed != 2 {
		t.Fatalf("removed = %d, want 2 (one key, both tiers)", removed)
	}

	mugKey, err := impl.Key(roomsNamespace("mug"), roomFilters("mug", nil))
	if err != nil {
		t.Fatalf("Key: %v", err)
	}
	parKey, err := impl.Key(roomsNamespace("par"), roomFilters("par", nil))
	if err != nil {
		t.Fatalf("Key: %v", err)
	}
	if mr.Exists(mugKey) {
		t.Fatalf("mug entry survived on the shared tier")
	}
	if !mr.Exists(parKey) {
		t.Fatalf("par entry was deleted by a mug-scoped invalidation")
	}
	if _, ok, _ := cc.GetFacilities(ctx, nil); !ok {
		t.Fatalf("facilities entry should be untouched")
	}
}

func TestRedisBackedOutage(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	cc := newRedisBackedCache(t, mr)

	filters := Filters{"campus": "east"}
	want := []string{"mugar", "sci"}
	if err := cc.SetFacilities(ctx, want, filters, 0); err != nil {
		t.Fatalf("SetFacilities: %v", err)
	}

	mr.Close()

	// Reads ride out the outage on the local tier.
	got, ok, err := cc.GetFacilities(ctx, filters)
	if err != nil || !ok || !reflect.DeepEqual(got, want) {
		t.Fatalf("GetFacilities during outage: ok=%v err=%v got=%v", ok, err, got)
	}

	// Writes keep landing locally.
	if err := cc.SetBookings(ctx, []string{"09:00"}, nil, 0); err != nil {
		t.Fatalf("SetBookings during outage: %v", err)
	}
	if _, ok, err := cc.GetBookings(ctx, nil); err != nil || !ok {
		t.Fatalf("GetBookings during outage: ok=%v err=%v", ok, err)
	}

	st := cc.Stats(ctx)
	if st.Mode != ModeRemoteLocal {
		t.Fatalf("Mode = %q, want %q", st.Mode, ModeRemoteLocal)
	}
	if st.RemoteConnected || st.RemoteError == "" {
		t.Fatalf("stats should note the outage: %+v", st)
	}
	if st.LocalEntries != 2 {
		t.Fatalf("LocalEntries = %d, want 2", st.LocalEntries)
	}
}
