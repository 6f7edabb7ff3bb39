package tracker

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub-backend/internal/config"
)

func TestLabelsFor(t *testing.T) {
	tests := []struct {
		name string
		item TodoItem
		want []string
	}{
		{
			"bare task",
			TodoItem{Status: "open"},
			[]string{"from:claude-code", "status:open", "type:task"},
		},
		{
			"subtask with every tag",
			TodoItem{Status: "in-progress", Phase: "2", Planning: "ST-41", Subtask: true},
			[]string{"from:claude-code", "phase:2", "planning:ST-41", "status:in-progress", "type:subtask"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LabelsFor(tt.item))
		})
	}
}

// fakeLabelServer is a minimal tracker label API. When rejectCreates is
// set, POST answers 409 as if another writer created the label first.
type fakeLabelServer struct {
	mu            sync.Mutex
	labels        []Label
	rejectCreates bool
	lists         int
	creates       int
}

func (f *fakeLabelServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/projects/p1/labels", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		switch r.Method {
		case http.MethodGet:
			f.lists++
			json.NewEncoder(w).Encode(f.labels)
		case http.MethodPost:
			f.creates++
			if f.rejectCreates {
				w.WriteHeader(http.StatusConflict)
				w.Write([]byte(`{"error":"label already exists"}`))
				return
			}
			var req struct {
				Name string `json:"name"`
			}
			json.NewDecoder(r.Body).Decode(&req)
			label := Label{ID: "l-" + req.Name, Name: req.Name}
			f.labels = append(f.labels, label)
			json.NewEncoder(w).Encode(label)
		}
	})
	return mux
}

func newLabelTestClient(t *testing.T, f *fakeLabelServer) *Client {
	t.Helper()
	server := httptest.NewServer(f.handler())
	t.Cleanup(server.Close)
	return NewClient(config.TrackerConfig{BaseURL: server.URL, APIToken: "tok", ProjectID: "p1"})
}

func TestLabelCacheWarmupAvoidsCreates(t *testing.T) {
	fake := &fakeLabelServer{labels: []Label{{ID: "l-1", Name: "status:open"}}}
	cache := NewLabelCache(newLabelTestClient(t, fake))

	require.NoError(t, cache.Warmup(context.Background()))

	label, err := cache.Ensure(context.Background(), "status:open")
	require.NoError(t, err)
	assert.Equal(t, "l-1", label.ID)
	assert.Equal(t, 0, fake.creates)
}

func TestLabelCacheCreatesMissing(t *testing.T) {
	fake := &fakeLabelServer{}
	cache := NewLabelCache(newLabelTestClient(t, fake))
	require.NoError(t, cache.Warmup(context.Background()))

	label, err := cache.Ensure(context.Background(), "phase:2")
	require.NoError(t, err)
	assert.Equal(t, "phase:2", label.Name)

	// Second ensure hits the cache
	_, err = cache.Ensure(context.Background(), "phase:2")
	require.NoError(t, err)
	assert.Equal(t, 1, fake.creates)
}

func TestLabelCacheRecoversLostCreateRace(t *testing.T) {
	// The winner's label exists server-side but not in our cache, so our
	// create is rejected and the re-list must find it
	fake := &fakeLabelServer{
		labels:        []Label{{ID: "l-winner", Name: "status:blocked"}},
		rejectCreates: true,
	}
	cache := NewLabelCache(newLabelTestClient(t, fake))

	label, err := cache.Ensure(context.Background(), "status:blocked")
	require.NoError(t, err)
	assert.Equal(t, "l-winner", label.ID)
	assert.Equal(t, 1, fake.lists)
}

func TestLabelCacheDuplicateWithoutWinnerFails(t *testing.T) {
	fake := &fakeLabelServer{rejectCreates: true}
	cache := NewLabelCache(newLabelTestClient(t, fake))

	_, err := cache.Ensure(context.Background(), "status:open")
	assert.Error(t, err)
}

func TestAPIErrorIsConflict(t *testing.T) {
	assert.True(t, (&APIError{Status: http.StatusConflict}).IsConflict())
	assert.True(t, (&APIError{Status: http.StatusUnprocessableEntity}).IsConflict())
	assert.False(t, (&APIError{Status: http.StatusBadRequest}).IsConflict())
	assert.False(t, (&APIError{Status: http.StatusInternalServerError}).IsConflict())
}
