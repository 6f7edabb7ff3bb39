package tracker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, name, content string) {
	t.Helper()
	path := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestScanCollectsTodos(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", `package main

// TODO: implement retry logic [status:in-progress] [phase:2]
func main() {}

// TODO add request metrics
var _ = 0
`)
	writeFile(t, root, "schema.sql", "-- TODO: add index on host_id [planning:ST-41]\n")
	writeFile(t, root, "notes.txt", "// TODO: never picked up\n")
	writeFile(t, root, "node_modules/dep/index.js", "// TODO: not ours\n")

	items, err := NewScanner(root).Scan()
	require.NoError(t, err)
	require.Len(t, items, 3)

	byTitle := make(map[string]TodoItem, len(items))
	for _, item := range items {
		byTitle[item.Title] = item
	}

	retry := byTitle["implement retry logic"]
	assert.Equal(t, "main.go", retry.File)
	assert.Equal(t, 3, retry.Line)
	assert.Equal(t, "in-progress", retry.Status)
	assert.Equal(t, "2", retry.Phase)
	assert.False(t, retry.Subtask)

	metrics := byTitle["add request metrics"]
	assert.Equal(t, "open", metrics.Status)

	index := byTitle["add index on host_id"]
	assert.Equal(t, "schema.sql", index.File)
	assert.Equal(t, "ST-41", index.Planning)
}

func TestScanMarksIndentedSubtasks(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "worker.go", `package worker

// TODO: split media pipeline
  // TODO: extract resize step
  // TODO: extract upload step
// TODO: another top level item
`)

	items, err := NewScanner(root).Scan()
	require.NoError(t, err)
	require.Len(t, items, 4)

	assert.False(t, items[0].Subtask)
	assert.True(t, items[1].Subtask)
	assert.True(t, items[2].Subtask)
	assert.False(t, items[3].Subtask)
}

func TestScanSubtaskRunBreaksOnPlainLine(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "svc.py", `# TODO: parent item

  # TODO: indented but detached
`)

	items, err := NewScanner(root).Scan()
	require.NoError(t, err)
	require.Len(t, items, 2)

	// The blank line ends the comment run, so indentation alone does
	// not make a subtask
	assert.False(t, items[1].Subtask)
}

func TestParseTodoDefaults(t *testing.T) {
	item := parseTodo("ship it")
	assert.Equal(t, "ship it", item.Title)
	assert.Equal(t, "open", item.Status)
	assert.Empty(t, item.Phase)
	assert.Empty(t, item.Planning)
}

func TestParseTodoNormalizesStatus(t *testing.T) {
	item := parseTodo("fix flaky test [status:In_Progress]")
	assert.Equal(t, "fix flaky test", item.Title)
	assert.Equal(t, "in-progress", item.Status)
}
