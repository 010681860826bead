package cache

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestKey_StableAndDistinct(t *testing.T) {
	a := Key("https://www.reddit.com/r/stocks/hot.json")
	b := Key("https://www.reddit.com/r/stocks/hot.json")
	c := Key("https://www.reddit.com/r/stocks/new.json")

	if a != b {
		t.Error("Expected identical URLs to produce identical keys")
	}
	if a == c {
		t.Error("Expected distinct URLs to produce distinct keys")
	}
	if !strings.HasPrefix(a, "sss:v1:") {
		t.Errorf("Expected versioned key prefix, got %q", a)
	}
}

func TestMemoryCache_RoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("Expected miss for absent key")
	}
	if err := c.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	val, found := c.Get("k")
	if !found || !bytes.Equal(val, []byte("v")) {
		t.Errorf("Expected hit with v, got %q found=%v", val, found)
	}
	if err := c.Delete("k"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("Expected miss after delete")
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if err := c.Set("k", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	time.Sleep(30 * time.Millisecond)
	if _, found := c.Get("k"); found {
		t.Error("Expected entry to expire")
	}
}

func TestDiskCache_RoundTrip(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	key := Key("https://www.reddit.com/r/stocks/hot.json")
	if err := c.Set(key, []byte("payload"), 0); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	val, found := c.Get(key)
	if !found || !bytes.Equal(val, []byte("payload")) {
		t.Errorf("Expected persisted payload, got %q found=%v", val, found)
	}

	if err := c.Delete(key); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, found := c.Get(key); found {
		t.Error("Expected miss after delete")
	}
	if err := c.Delete(key); err != nil {
		t.Errorf("Expected deleting an absent key to be a no-op, got %v", err)
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if err := c.Set("k", []byte("v"), -time.Second); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("Expected already-expired entry to miss")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Minute)

	if err := c.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// A fresh layered cache over the same directory has an empty memory
	// tier; the hit must come from disk and be promoted.
	fresh := NewLayeredCache(time.Minute, dir, time.Minute)
	val, found := fresh.Get("k")
	if !found || !bytes.Equal(val, []byte("v")) {
		t.Fatalf("Expected disk hit, got %q found=%v", val, found)
	}

	// Remove the disk tier; the promoted copy must still answer.
	if err := NewDiskCache(dir, time.Minute).Clear(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, found := fresh.Get("k"); !found {
		t.Error("Expected promoted memory copy to answer after disk clear")
	}
}
