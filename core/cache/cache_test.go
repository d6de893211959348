package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestNewCache(t *testing.T) {
	c := NewCache()
	if c == nil {
		t.Fatal("NewCache returned nil")
	}
}

func TestGetInstance(t *testing.T) {
	inst := GetInstance()
	if inst == nil {
		t.Fatal("GetInstance returned nil")
	}
	if GetInstance() != inst {
		t.Error("GetInstance should return same instance")
	}
}

func TestSet_Get(t *testing.T) {
	c := GetInstance()
	key := "test-set-get"
	c.Set(key, "val", 0, nil)
	got, ok := c.Get(key)
	if !ok {
		t.Fatal("Get: want true")
	}
	if got != "val" {
		t.Errorf("Get = %v, want val", got)
	}
	c.Delete(key)
}

func TestGet_Missing(t *testing.T) {
	c := GetInstance()
	_, ok := c.Get("nonexistent-key-xyz")
	if ok {
		t.Error("Get missing key: want false")
	}
}

func TestGet_Expired(t *testing.T) {
	c := NewCache()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Set("ttl", "v", time.Minute, nil)
	if _, ok := c.Get("ttl"); !ok {
		t.Fatal("Get before expiry: want true")
	}
	now = now.Add(2 * time.Minute)
	if _, ok := c.Get("ttl"); ok {
		t.Error("Get after expiry: want false")
	}
}

func TestKey(t *testing.T) {
	if got := Key("catalog", "suggest", 42); got != "catalog|suggest|42" {
		t.Errorf("Key = %q, want catalog|suggest|42", got)
	}
}

func TestTagKey_DeleteByTag(t *testing.T) {
	c := NewCache()
	c.Set("tag-k1", "v1", 0, []string{"options"})
	c.Set("tag-k2", "v2", 0, []string{"options"})
	c.Set("tag-k3", "v3", 0, nil)

	c.DeleteByTag("options")
	if _, ok := c.Get("tag-k1"); ok {
		t.Error("DeleteByTag: tag-k1 should be gone")
	}
	if _, ok := c.Get("tag-k3"); !ok {
		t.Error("DeleteByTag: untagged tag-k3 should remain")
	}
	if _, ok := c.Get("tag-k2"); ok {
		t.Error("DeleteByTag: tag-k2 should be gone")
	}
	c.Set("tag-k1", "again", 0, nil)
	c.DeleteByTag("options")
	if _, ok := c.Get("tag-k1"); !ok {
		t.Error("DeleteByTag: key re-set without the tag should remain")
	}
}

func TestMemoryStore_JSONRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(NewCache(), "options")

	if err := SetJSON(ctx, s, "categories", []string{"Books", "Phones"}, time.Minute); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}
	var got []string
	if !GetJSON(ctx, s, "categories", &got) {
		t.Fatal("GetJSON: want hit")
	}
	if len(got) != 2 || got[0] != "Books" {
		t.Errorf("GetJSON = %v, want [Books Phones]", got)
	}

	s.Purge()
	if GetJSON(ctx, s, "categories", &got) {
		t.Error("GetJSON after Purge: want miss")
	}
}

func TestGetJSON_NilStore(t *testing.T) {
	var v []string
	if GetJSON(context.Background(), nil, "k", &v) {
		t.Error("GetJSON nil store: want miss")
	}
	if err := SetJSON(context.Background(), nil, "k", v, 0); err != nil {
		t.Errorf("SetJSON nil store: %v", err)
	}
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set, skipping redis store test")
	}
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not reachable at %s: %v", addr, err)
	}

	s := NewRedisStore(client, "storefront:test:")
	defer client.Del(ctx, "storefront:test:brands")

	if err := SetJSON(ctx, s, "brands", []string{"Acme"}, time.Minute); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}
	var got []string
	if !GetJSON(ctx, s, "brands", &got) || len(got) != 1 || got[0] != "Acme" {
		t.Errorf("GetJSON = %v, want [Acme]", got)
	}
}
