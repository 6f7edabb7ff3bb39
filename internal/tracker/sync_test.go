package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub-backend/internal/aiclient"
	"stayhub-backend/internal/config"
)

// fakeTracker is an in-memory tracker API covering labels and issues
type fakeTracker struct {
	mu     sync.Mutex
	labels []Label
	issues map[string]Issue
	nextID int
}

func newFakeTracker() *fakeTracker {
	return &fakeTracker{issues: make(map[string]Issue)}
}

func (f *fakeTracker) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/projects/p1/labels", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(f.labels)
		case http.MethodPost:
			var req struct {
				Name string `json:"name"`
			}
			json.NewDecoder(r.Body).Decode(&req)
			for _, l := range f.labels {
				if l.Name == req.Name {
					w.WriteHeader(http.StatusConflict)
					return
				}
			}
			label := Label{ID: fmt.Sprintf("l-%d", len(f.labels)+1), Name: req.Name}
			f.labels = append(f.labels, label)
			json.NewEncoder(w).Encode(label)
		}
	})

	mux.HandleFunc("/projects/p1/issues", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		switch r.Method {
		case http.MethodGet:
			out := make([]Issue, 0, len(f.issues))
			for _, issue := range f.issues {
				out = append(out, issue)
			}
			json.NewEncoder(w).Encode(out)
		case http.MethodPost:
			var issue Issue
			json.NewDecoder(r.Body).Decode(&issue)
			f.nextID++
			issue.ID = fmt.Sprintf("i-%d", f.nextID)
			f.issues[issue.ID] = issue
			json.NewEncoder(w).Encode(issue)
		}
	})

	mux.HandleFunc("/projects/p1/issues/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		id := strings.TrimPrefix(r.URL.Path, "/projects/p1/issues/")
		switch r.Method {
		case http.MethodGet:
			issue, ok := f.issues[id]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			json.NewEncoder(w).Encode(issue)
		case http.MethodPut:
			var issue Issue
			json.NewDecoder(r.Body).Decode(&issue)
			issue.ID = id
			f.issues[id] = issue
			json.NewEncoder(w).Encode(issue)
		}
	})

	return mux
}

func (f *fakeTracker) byTitle(title string) (Issue, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, issue := range f.issues {
		if issue.Title == title {
			return issue, true
		}
	}
	return Issue{}, false
}

func (f *fakeTracker) setDescription(t *testing.T, title, description string) {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, issue := range f.issues {
		if issue.Title == title {
			issue.Description = description
			f.issues[id] = issue
			return
		}
	}
	t.Fatalf("no issue titled %q", title)
}

func newTestSyncer(t *testing.T, fake *fakeTracker) *Syncer {
	t.Helper()
	server := httptest.NewServer(fake.handler())
	t.Cleanup(server.Close)

	client := NewClient(config.TrackerConfig{BaseURL: server.URL, APIToken: "tok", ProjectID: "p1"})
	ai := aiclient.NewClient(config.AIConfig{}) // disabled, sync runs without analysis
	return NewSyncer(client, ai)
}

func TestSyncCreatesIssuesForNewTodos(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pool.go", `package pool

// TODO: bound the retry queue [status:in-progress] [phase:2]
// TODO: expose queue depth
`)

	fake := newFakeTracker()
	syncer := newTestSyncer(t, fake)

	result, err := syncer.Run(context.Background(), root, false)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Scanned)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 0, result.Updated)
	assert.Equal(t, 0, result.Resolved)

	issue, ok := fake.byTitle("bound the retry queue")
	require.True(t, ok)
	assert.Equal(t, "open", issue.State)
	assert.Equal(t, []string{"from:claude-code", "phase:2", "status:in-progress", "type:task"}, issue.Labels)
	assert.Contains(t, issue.Description, "`pool.go:3`")
	assert.True(t, strings.HasSuffix(issue.Description, DevNotesMarker+"\n"),
		"new issues carry an empty notes section")
}

func TestSyncSecondRunSkipsUnchanged(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pool.go", "// TODO: bound the retry queue\n")

	fake := newFakeTracker()

	_, err := newTestSyncer(t, fake).Run(context.Background(), root, false)
	require.NoError(t, err)

	result, err := newTestSyncer(t, fake).Run(context.Background(), root, false)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 0, result.Updated)
	assert.Equal(t, 1, result.Skipped)
}

func TestSyncUpdatePreservesDevNotes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pool.go", "// TODO: bound the retry queue [status:open]\n")

	fake := newFakeTracker()
	_, err := newTestSyncer(t, fake).Run(context.Background(), root, false)
	require.NoError(t, err)

	// A human writes under the seeded marker
	issue, ok := fake.byTitle("bound the retry queue")
	require.True(t, ok)
	fake.setDescription(t, issue.Title, issue.Description+"- talked to infra, cap at 10k\n\tkeep tabs intact\n")
	notes := DevNotesMarker + "\n- talked to infra, cap at 10k\n\tkeep tabs intact\n"

	// The TODO's status changes in source
	writeFile(t, root, "pool.go", "// TODO: bound the retry queue [status:in-progress]\n")

	result, err := newTestSyncer(t, fake).Run(context.Background(), root, false)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)

	updated, ok := fake.byTitle("bound the retry queue")
	require.True(t, ok)
	assert.Contains(t, updated.Description, "- **Status:** in-progress")
	assert.True(t, strings.HasSuffix(updated.Description, notes),
		"user notes must survive byte for byte")
	assert.Contains(t, updated.Labels, "status:in-progress")
}

func TestSyncClosesIssuesForVanishedTodos(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pool.go", "// TODO: bound the retry queue\n// TODO: expose queue depth\n")

	fake := newFakeTracker()
	_, err := newTestSyncer(t, fake).Run(context.Background(), root, false)
	require.NoError(t, err)

	// One TODO gets resolved and deleted from source
	writeFile(t, root, "pool.go", "// TODO: bound the retry queue\n")

	result, err := newTestSyncer(t, fake).Run(context.Background(), root, false)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Resolved)

	closed, ok := fake.byTitle("expose queue depth")
	require.True(t, ok)
	assert.Equal(t, "closed", closed.State)

	kept, ok := fake.byTitle("bound the retry queue")
	require.True(t, ok)
	assert.Equal(t, "open", kept.State)
}

func TestSyncReopensClosedIssueWhenTodoReturns(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pool.go", "// TODO: bound the retry queue\n")

	fake := newFakeTracker()
	_, err := newTestSyncer(t, fake).Run(context.Background(), root, false)
	require.NoError(t, err)

	issue, _ := fake.byTitle("bound the retry queue")
	issue.State = "closed"
	fake.mu.Lock()
	fake.issues[issue.ID] = issue
	fake.mu.Unlock()

	result, err := newTestSyncer(t, fake).Run(context.Background(), root, false)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)

	reopened, _ := fake.byTitle("bound the retry queue")
	assert.Equal(t, "open", reopened.State)
}

func TestSyncDryRunWritesNothing(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pool.go", "// TODO: bound the retry queue\n")

	fake := newFakeTracker()
	result, err := newTestSyncer(t, fake).Run(context.Background(), root, true)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Created)
	assert.Empty(t, fake.issues)
	assert.Empty(t, fake.labels)
}
