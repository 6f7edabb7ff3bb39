package aiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub-backend/internal/config"
)

func TestEnabled(t *testing.T) {
	assert.False(t, NewClient(config.AIConfig{}).Enabled())
	assert.True(t, NewClient(config.AIConfig{BaseURL: "http://localhost:1234"}).Enabled())

	var nilClient *Client
	assert.False(t, nilClient.Enabled())
}

func TestPostDisabledFailsWithoutRequest(t *testing.T) {
	err := NewClient(config.AIConfig{}).Post(context.Background(), "/v1/generate", map[string]string{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestPostSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/generate", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "hello", req["prompt"])

		json.NewEncoder(w).Encode(map[string]string{"result": "world"})
	}))
	defer server.Close()

	client := NewClient(config.AIConfig{BaseURL: server.URL, APIKey: "secret"})

	var out map[string]string
	err := client.Post(context.Background(), "/v1/generate", map[string]string{"prompt": "hello"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "world", out["result"])
}

func TestPostRetriesOnServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch calls.Add(1) {
		case 1:
			w.WriteHeader(http.StatusInternalServerError)
		case 2:
			w.WriteHeader(http.StatusTooManyRequests)
		default:
			json.NewEncoder(w).Encode(map[string]string{"result": "ok"})
		}
	}))
	defer server.Close()

	client := NewClient(config.AIConfig{BaseURL: server.URL, MaxRetries: 3})

	var out map[string]string
	err := client.Post(context.Background(), "/v1/generate", map[string]string{}, &out)
	require.NoError(t, err)
	assert.Equal(t, "ok", out["result"])
	assert.Equal(t, int32(3), calls.Load())
}

func TestPostFailsFastOnClientError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("bad prompt"))
	}))
	defer server.Close()

	client := NewClient(config.AIConfig{BaseURL: server.URL, MaxRetries: 3})

	err := client.Post(context.Background(), "/v1/generate", map[string]string{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
	assert.Contains(t, err.Error(), "bad prompt")
	assert.Equal(t, int32(1), calls.Load(), "4xx must not be retried")
}

func TestPostGivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(config.AIConfig{BaseURL: server.URL, MaxRetries: 2})

	err := client.Post(context.Background(), "/v1/generate", map[string]string{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 attempts")
	assert.Equal(t, int32(2), calls.Load())
}

func TestPostStopsWhenContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(config.AIConfig{BaseURL: server.URL, MaxRetries: 3})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := client.Post(ctx, "/v1/generate", map[string]string{}, nil)
	require.Error(t, err)
}
