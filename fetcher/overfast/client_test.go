package overfast

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"owqueue/internal/testutil"
	rediswrapper "owqueue/pkg/redis"
	"owqueue/pkg/ranks"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

const diamondSummary = `{
	"username": "Player",
	"competitive": {
		"pc": {
			"tank": {"division": "Diamond"},
			"support": {"division": "Gold"}
		}
	}
}`

// newTestClient builds a client against a test server, counting requests.
func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *testutil.MockClock, *int32) {
	t.Helper()

	var requestCount int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requestCount, 1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	mockClock := testutil.NewMockClock(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))
	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		Clock:   mockClock,
	})
	t.Cleanup(client.Close)

	return client, mockClock, &requestCount
}

func TestFetchPlayerRankSuccess(t *testing.T) {
	client, _, requestCount := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/players/Player-1234/summary", r.URL.Path)
		w.Write([]byte(diamondSummary))
	})

	// Both battletag formats resolve to the same lookup.
	assert.Equal(t, ranks.Diamond, client.FetchPlayerRank(context.Background(), "Player#1234"))
	assert.Equal(t, ranks.Diamond, client.FetchPlayerRank(context.Background(), "Player-1234"))
	assert.Equal(t, int32(2), atomic.LoadInt32(requestCount))
}

func TestFetchPlayerRankInvalidBattletag(t *testing.T) {
	client, _, requestCount := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(diamondSummary))
	})

	// No network call happens for an invalid battletag.
	assert.Equal(t, ranks.Unknown, client.FetchPlayerRank(context.Background(), "Bad"))
	assert.Equal(t, int32(0), atomic.LoadInt32(requestCount))
}

func TestFetchPlayerRankDegradesToUnknown(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "notfound",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
		},
		{
			name: "privateprofile",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"error": "Player profile is private"}`))
			},
		},
		{
			name: "servererror",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"error": "something broke"}`))
			},
		},
		{
			name: "unexpectedstatus",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
		},
		{
			name: "malformedbody",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json at all"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _, _ := newTestClient(t, tt.handler)
			assert.Equal(t, ranks.Unknown, client.FetchPlayerRank(context.Background(), "Player#1234"))
		})
	}
}

func TestFetchPlayerRankRateLimitRetry(t *testing.T) {
	var calls int32
	client, mockClock, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set("Retry-After", "2")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(diamondSummary))
	})

	rank := client.FetchPlayerRank(context.Background(), "Player#1234")

	assert.Equal(t, ranks.Diamond, rank)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.GreaterOrEqual(t, mockClock.TotalSlept(), 2*time.Second)
}

func TestFetchPlayerRankRateLimitRetryFails(t *testing.T) {
	var calls int32
	client, mockClock, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Retry-After", "2")
		w.WriteHeader(http.StatusTooManyRequests)
	})

	rank := client.FetchPlayerRank(context.Background(), "Player#1234")

	// Exactly one retry, then degrade to unknown.
	assert.Equal(t, ranks.Unknown, rank)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.GreaterOrEqual(t, mockClock.TotalSlept(), 2*time.Second)
}

func TestFetchPlayerRankRateLimitDefaultWait(t *testing.T) {
	client, mockClock, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	assert.Equal(t, ranks.Unknown, client.FetchPlayerRank(context.Background(), "Player#1234"))

	// Missing Retry-After falls back to one second.
	assert.Equal(t, time.Second, mockClock.TotalSlept())
}

func TestFetchManyRanks(t *testing.T) {
	client, mockClock, requestCount := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(diamondSummary))
	})

	results := client.FetchManyRanks(context.Background(), []string{"A#1", "B#2", "C#3"}, 100*time.Millisecond)

	assert.Equal(t, map[string]string{
		"A#1": ranks.Diamond,
		"B#2": ranks.Diamond,
		"C#3": ranks.Diamond,
	}, results)
	assert.Equal(t, int32(3), atomic.LoadInt32(requestCount))

	// One pause between each pair of requests.
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 100 * time.Millisecond}, mockClock.Slept)
}

func TestFetchPlayerRankUsesCache(t *testing.T) {
	var requestCount int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requestCount, 1)
		w.Write([]byte(diamondSummary))
	}))
	defer server.Close()

	mr := miniredis.RunT(t)
	cache := &rediswrapper.RedisClient{
		Client: goredis.NewClient(&goredis.Options{Addr: mr.Addr()}),
	}
	defer cache.Close()

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		Cache:   cache,
		Clock:   testutil.NewMockClock(time.Now()),
	})
	defer client.Close()

	// First fetch hits the API and fills the cache.
	assert.Equal(t, ranks.Diamond, client.FetchPlayerRank(context.Background(), "Player#1234"))
	assert.Equal(t, int32(1), atomic.LoadInt32(&requestCount))

	// Second fetch is served from the cache.
	assert.Equal(t, ranks.Diamond, client.FetchPlayerRank(context.Background(), "Player#1234"))
	assert.Equal(t, int32(1), atomic.LoadInt32(&requestCount))
}

func TestGetPlayerSummaryErrors(t *testing.T) {
	t.Run("notfound", func(t *testing.T) {
		client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		_, err := client.GetPlayerSummary(context.Background(), "Player-1234")
		assert.ErrorIs(t, err, ErrPlayerNotFound)
	})

	t.Run("private", func(t *testing.T) {
		client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"detail": "This profile is PRIVATE"}`))
		})

		_, err := client.GetPlayerSummary(context.Background(), "Player-1234")
		assert.ErrorIs(t, err, ErrPrivateProfile)
	})

	t.Run("ratelimited", func(t *testing.T) {
		client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", "3")
			w.WriteHeader(http.StatusTooManyRequests)
		})

		_, err := client.GetPlayerSummary(context.Background(), "Player-1234")

		var rateLimit *RateLimitError
		assert.ErrorAs(t, err, &rateLimit)
		assert.Equal(t, 3*time.Second, rateLimit.RetryAfter)
	})
}
