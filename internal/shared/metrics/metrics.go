package metrics

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Registry is a process-local metrics store. Counters and latency
// accumulators are keyed by name; labels are pre-flattened into the key.
type Registry struct {
	mu        sync.RWMutex
	startedAt time.Time
	counters  map[string]int64
	durations map[string]*durationStat
}

type durationStat struct {
	Count   int64
	TotalMs float64
	MaxMs   float64
}

// Snapshot is the JSON shape served by GET /metrics
type Snapshot struct {
	UptimeSeconds float64                `json:"uptime_seconds"`
	Counters      map[string]int64       `json:"counters"`
	Durations     map[string]DurationOut `json:"durations"`
}

type DurationOut struct {
	Count int64   `json:"count"`
	AvgMs float64 `json:"avg_ms"`
	MaxMs float64 `json:"max_ms"`
}

func NewRegistry() *Registry {
	return &Registry{
		startedAt: time.Now(),
		counters:  make(map[string]int64),
		durations: make(map[string]*durationStat),
	}
}

func (r *Registry) Incr(name string) {
	r.Add(name, 1)
}

func (r *Registry) Add(name string, delta int64) {
	r.mu.Lock()
	r.counters[name] += delta
	r.mu.Unlock()
}

// Observe records one operation latency under the given name
func (r *Registry) Observe(name string, d time.Duration) {
	ms := float64(d.Microseconds()) / 1000

	r.mu.Lock()
	stat, ok := r.durations[name]
	if !ok {
		stat = &durationStat{}
		r.durations[name] = stat
	}
	stat.Count++
	stat.TotalMs += ms
	if ms > stat.MaxMs {
		stat.MaxMs = ms
	}
	r.mu.Unlock()
}

func (r *Registry) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap := Snapshot{
		UptimeSeconds: time.Since(r.startedAt).Seconds(),
		Counters:      make(map[string]int64, len(r.counters)),
		Durations:     make(map[string]DurationOut, len(r.durations)),
	}
	for k, v := range r.counters {
		snap.Counters[k] = v
	}
	for k, v := range r.durations {
		out := DurationOut{Count: v.Count, MaxMs: v.MaxMs}
		if v.Count > 0 {
			out.AvgMs = v.TotalMs / float64(v.Count)
		}
		snap.Durations[k] = out
	}
	return snap
}

// Reset zeroes every counter and accumulator but keeps the start time
func (r *Registry) Reset() {
	r.mu.Lock()
	r.counters = make(map[string]int64)
	r.durations = make(map[string]*durationStat)
	r.mu.Unlock()
}

// PrometheusText renders the registry in the text exposition format.
// Metric names are sanitized to [a-z0-9_].
func (r *Registry) PrometheusText() string {
	snap := r.Snapshot()

	var b strings.Builder
	b.WriteString("# TYPE app_uptime_seconds gauge\n")
	fmt.Fprintf(&b, "app_uptime_seconds %f\n", snap.UptimeSeconds)

	counterNames := make([]string, 0, len(snap.Counters))
	for name := range snap.Counters {
		counterNames = append(counterNames, name)
	}
	sort.Strings(counterNames)
	for _, name := range counterNames {
		safe := sanitizeMetricName(name)
		fmt.Fprintf(&b, "# TYPE %s counter\n", safe)
		fmt.Fprintf(&b, "%s %d\n", safe, snap.Counters[name])
	}

	durationNames := make([]string, 0, len(snap.Durations))
	for name := range snap.Durations {
		durationNames = append(durationNames, name)
	}
	sort.Strings(durationNames)
	for _, name := range durationNames {
		safe := sanitizeMetricName(name)
		out := snap.Durations[name]
		fmt.Fprintf(&b, "# TYPE %s_ms summary\n", safe)
		fmt.Fprintf(&b, "%s_ms_count %d\n", safe, out.Count)
		fmt.Fprintf(&b, "%s_ms_avg %f\n", safe, out.AvgMs)
		fmt.Fprintf(&b, "%s_ms_max %f\n", safe, out.MaxMs)
	}

	return b.String()
}

func sanitizeMetricName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
