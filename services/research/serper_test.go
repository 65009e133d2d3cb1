package research

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSerperServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "serper-key", r.Header.Get("X-API-KEY"))

		var req serperRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "hotels in Lisbon", req.Q)
		assert.Equal(t, 5, req.Num)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"organic":[
			{"title":"Hotel Alfama","link":"https://www.booking.com/hotel/alfama","snippet":"From 90 USD","position":1},
			{"title":"Baixa Inn","link":"https://www.booking.com/hotel/baixa","snippet":"From 75 USD","position":2}
		]}`))
	}))
}

func TestSerperToolFormatsResults(t *testing.T) {
	var hits int32
	srv := newSerperServer(t, &hits)
	defer srv.Close()

	tool := NewSerperTool("serper-key", 5)
	tool.Endpoint = srv.URL

	out, err := tool.Call(context.Background(), `"hotels in Lisbon"`)
	require.NoError(t, err)

	assert.Contains(t, out, "Title: Hotel Alfama\nLink: https://www.booking.com/hotel/alfama\nSnippet: From 90 USD")
	assert.Contains(t, out, "Baixa Inn")
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestSerperToolUsesCache(t *testing.T) {
	var hits int32
	srv := newSerperServer(t, &hits)
	defer srv.Close()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	tool := NewSerperTool("serper-key", 5)
	tool.Endpoint = srv.URL
	tool.Cache = NewRedisCache(client, time.Hour)

	first, err := tool.Call(context.Background(), "hotels in Lisbon")
	require.NoError(t, err)
	second, err := tool.Call(context.Background(), "hotels in Lisbon")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	assert.Len(t, mr.Keys(), 1)
}

func TestSerperToolErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Unauthorized."}`, http.StatusForbidden)
	}))
	defer srv.Close()

	tool := NewSerperTool("bad-key", 5)
	tool.Endpoint = srv.URL
	_, err := tool.Call(context.Background(), "hotels")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")

	_, err = NewSerperTool("", 5).Call(context.Background(), "hotels")
	assert.ErrorIs(t, err, ErrNoSearchKey)

	out, err := tool.Call(context.Background(), "   ")
	require.NoError(t, err)
	assert.Contains(t, out, "empty")
}

func TestFormatSerperNoResults(t *testing.T) {
	out := formatSerper("nowhere", serperResponse{})
	assert.Contains(t, out, "No results found.")
}
