package ratelimit

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		Whitelist:     make(map[string]bool),
		Blacklist:     make(map[string]bool),
		EndpointConfigs: []EndpointConfig{
			{Path: "/resumes/analyze", Method: "POST", Limit: 5, Window: time.Hour, Burst: 2},
		},
	}
}

func TestLimiter_Burst(t *testing.T) {
	limiter := NewLimiter(testConfig())
	defer limiter.Stop()

	// Burst of 2 allows two immediate requests
	allowed, info := limiter.Allow("1.2.3.4", "/resumes/analyze", "POST")
	assert.True(t, allowed)
	assert.Equal(t, 5, info.Limit)

	allowed, _ = limiter.Allow("1.2.3.4", "/resumes/analyze", "POST")
	assert.True(t, allowed)

	allowed, info = limiter.Allow("1.2.3.4", "/resumes/analyze", "POST")
	assert.False(t, allowed)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestLimiter_PerClientBuckets(t *testing.T) {
	limiter := NewLimiter(testConfig())
	defer limiter.Stop()

	for i := 0; i < 2; i++ {
		allowed, _ := limiter.Allow("1.2.3.4", "/resumes/analyze", "POST")
		require.True(t, allowed)
	}
	allowed, _ := limiter.Allow("1.2.3.4", "/resumes/analyze", "POST")
	require.False(t, allowed)

	// A different client has its own bucket
	allowed, _ = limiter.Allow("5.6.7.8", "/resumes/analyze", "POST")
	assert.True(t, allowed)
}

func TestLimiter_Whitelist(t *testing.T) {
	cfg := testConfig()
	cfg.Whitelist["9.9.9.9"] = true
	limiter := NewLimiter(cfg)
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := limiter.Allow("9.9.9.9", "/resumes/analyze", "POST")
		assert.True(t, allowed)
	}
}

func TestLimiter_Blacklist(t *testing.T) {
	cfg := testConfig()
	cfg.Blacklist["6.6.6.6"] = true
	limiter := NewLimiter(cfg)
	defer limiter.Stop()

	allowed, _ := limiter.Allow("6.6.6.6", "/health", "GET")
	assert.False(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := limiter.Allow("1.2.3.4", "/resumes/analyze", "POST")
		require.True(t, allowed)
	}
}

func TestLimiter_DefaultLimit(t *testing.T) {
	cfg := testConfig()
	limiter := NewLimiter(cfg)
	defer limiter.Stop()

	// Unconfigured endpoint falls back to the default limit
	for i := 0; i < cfg.DefaultLimit; i++ {
		allowed, _ := limiter.Allow("1.2.3.4", "/resumes", "GET")
		require.True(t, allowed, fmt.Sprintf("request %d should be allowed", i))
	}
	allowed, _ := limiter.Allow("1.2.3.4", "/resumes", "GET")
	assert.False(t, allowed)
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/resumes/analyze", Method: "POST", Limit: 5},
		{Path: "/resumes/", Method: "POST", Limit: 50},
	}

	t.Run("health is unlimited", func(t *testing.T) {
		match := MatchEndpoint("/health", "GET", configs)
		require.NotNil(t, match)
		assert.Equal(t, 0, match.Limit)
	})

	t.Run("exact match wins", func(t *testing.T) {
		match := MatchEndpoint("/resumes/analyze", "POST", configs)
		require.NotNil(t, match)
		assert.Equal(t, 5, match.Limit)
	})

	t.Run("prefix match", func(t *testing.T) {
		match := MatchEndpoint("/resumes/abc/sessions", "POST", configs)
		require.NotNil(t, match)
		assert.Equal(t, 50, match.Limit)
	})

	t.Run("no match", func(t *testing.T) {
		assert.Nil(t, MatchEndpoint("/resumes", "GET", configs))
	})
}

func TestTokenBucket_Refill(t *testing.T) {
	// 100 tokens/second, capacity 1
	bucket := newTokenBucket(1, 100)

	require.True(t, bucket.allow())
	require.False(t, bucket.allow())

	time.Sleep(50 * time.Millisecond)
	assert.True(t, bucket.allow())
}
