package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	r := NewRegistry()
	r.Incr("http_requests_total")
	r.Incr("http_requests_total")
	r.Add("rows_written", 5)

	snap := r.Snapshot()
	assert.Equal(t, int64(2), snap.Counters["http_requests_total"])
	assert.Equal(t, int64(5), snap.Counters["rows_written"])
}

func TestObserveDurations(t *testing.T) {
	r := NewRegistry()
	r.Observe("db_query", 10*time.Millisecond)
	r.Observe("db_query", 30*time.Millisecond)

	snap := r.Snapshot()
	out, ok := snap.Durations["db_query"]
	require.True(t, ok)
	assert.Equal(t, int64(2), out.Count)
	assert.InDelta(t, 20, out.AvgMs, 0.01)
	assert.InDelta(t, 30, out.MaxMs, 0.01)
}

func TestReset(t *testing.T) {
	r := NewRegistry()
	r.Incr("a")
	r.Observe("b", time.Millisecond)

	r.Reset()
	snap := r.Snapshot()

	assert.Empty(t, snap.Counters)
	assert.Empty(t, snap.Durations)
}

func TestSnapshotIsCopy(t *testing.T) {
	r := NewRegistry()
	r.Incr("a")

	snap := r.Snapshot()
	snap.Counters["a"] = 999

	assert.Equal(t, int64(1), r.Snapshot().Counters["a"])
}

func TestPrometheusText(t *testing.T) {
	r := NewRegistry()
	r.Incr("http status 2xx")
	r.Observe("http_request", 5*time.Millisecond)

	text := r.PrometheusText()

	assert.Contains(t, text, "# TYPE app_uptime_seconds gauge\n")
	assert.Contains(t, text, "# TYPE http_status_2xx counter\nhttp_status_2xx 1\n")
	assert.Contains(t, text, "http_request_ms_count 1\n")
	assert.Contains(t, text, "http_request_ms_max 5.000000\n")
}

func TestConcurrentWrites(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Incr("hits")
			r.Observe("work", time.Millisecond)
		}()
	}
	wg.Wait()

	snap := r.Snapshot()
	assert.Equal(t, int64(50), snap.Counters["hits"])
	assert.Equal(t, int64(50), snap.Durations["work"].Count)
}
