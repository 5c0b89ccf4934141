package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestTokenBucket_BurstThenDeny(t *testing.T) {
	bucket := newTokenBucket(10, 1.0)

	for i := 0; i < 10; i++ {
		if !bucket.allow() {
			t.Fatalf("request %d within burst was denied", i+1)
		}
	}
	if bucket.allow() {
		t.Error("request past the burst was allowed")
	}
}

func TestTokenBucket_Refill(t *testing.T) {
	bucket := newTokenBucket(2, 1.0)
	bucket.allow()
	bucket.allow()

	time.Sleep(1100 * time.Millisecond)

	if !bucket.allow() {
		t.Error("request after refill was denied")
	}
	if bucket.allow() {
		t.Error("second request after a single-token refill was allowed")
	}
}

func TestTokenBucket_Status(t *testing.T) {
	bucket := newTokenBucket(10, 1.0)
	for i := 0; i < 4; i++ {
		bucket.allow()
	}

	remaining, resetTime := bucket.getStatus()
	if remaining != 6 {
		t.Errorf("remaining = %d, want 6", remaining)
	}
	if resetTime.Before(time.Now()) {
		t.Error("reset time is in the past")
	}
}

func TestLimiter_DefaultLimit(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  3,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	client := "203.0.113.7"
	for i := 0; i < 3; i++ {
		allowed, info := limiter.Allow(client, "/api/settings/twitter", "GET")
		if !allowed {
			t.Fatalf("request %d was denied", i+1)
		}
		if info.Remaining != 2-i {
			t.Errorf("remaining = %d, want %d", info.Remaining, 2-i)
		}
	}

	allowed, info := limiter.Allow(client, "/api/settings/twitter", "GET")
	if allowed {
		t.Error("request past the limit was allowed")
	}
	if info.RetryAfter <= 0 {
		t.Error("denied request carries no retry-after hint")
	}
}

func TestLimiter_GenerateEndpointTier(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/api/generate", Method: "POST", Limit: 5, Window: time.Hour, Burst: 5},
		},
	})
	defer limiter.Stop()

	client := "203.0.113.7"
	for i := 0; i < 5; i++ {
		allowed, info := limiter.Allow(client, "/api/generate", "POST")
		if !allowed {
			t.Fatalf("generate request %d was denied", i+1)
		}
		if info.Limit != 5 {
			t.Errorf("limit = %d, want the endpoint tier of 5", info.Limit)
		}
	}
	if allowed, _ := limiter.Allow(client, "/api/generate", "POST"); allowed {
		t.Error("generate request past the endpoint tier was allowed")
	}

	// The publish route is not configured here and falls back to the default.
	allowed, info := limiter.Allow(client, "/api/publish", "POST")
	if !allowed {
		t.Error("publish request under the default tier was denied")
	}
	if info.Limit != 1000 {
		t.Errorf("limit = %d, want the default of 1000", info.Limit)
	}
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false, DefaultLimit: 1})
	defer limiter.Stop()

	for i := 0; i < 20; i++ {
		if allowed, _ := limiter.Allow("203.0.113.7", "/api/generate", "POST"); !allowed {
			t.Fatalf("request %d was denied with limiting disabled", i+1)
		}
	}
}

func TestLimiter_WhitelistAndBlacklist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"10.0.0.1": true},
		Blacklist:     map[string]bool{"198.51.100.9": true},
	})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		if allowed, _ := limiter.Allow("10.0.0.1", "/api/generate", "POST"); !allowed {
			t.Fatalf("whitelisted request %d was denied", i+1)
		}
	}
	if allowed, _ := limiter.Allow("198.51.100.9", "/api/generate", "POST"); allowed {
		t.Error("blacklisted client was allowed")
	}
}

func TestLimiter_ConcurrentClients(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  50,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := limiter.Allow("203.0.113.7", "/api/publish", "POST"); allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowedCount != 50 {
		t.Errorf("allowed %d concurrent requests, want exactly 50", allowedCount)
	}
}

func TestLimiter_SeparateClientsSeparateBuckets(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		client := fmt.Sprintf("203.0.113.%d", i+1)
		if allowed, _ := limiter.Allow(client, "/api/generate", "POST"); !allowed {
			t.Errorf("first request from %s was denied", client)
		}
	}
}

func TestNewLimiter_NilConfigUsesDefaults(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	allowed, info := limiter.Allow("203.0.113.7", "/api/settings/twitter", "GET")
	if !allowed {
		t.Error("request under the default config was denied")
	}
	if info.Limit != 1000 {
		t.Errorf("limit = %d, want the default of 1000", info.Limit)
	}
}

func TestLimiter_HealthCheckIsExempt(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	for i := 0; i < 20; i++ {
		if allowed, _ := limiter.Allow("203.0.113.7", "/health", "GET"); !allowed {
			t.Fatalf("health check %d was rate limited", i+1)
		}
	}
}
