package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildDescription(t *testing.T) {
	item := TodoItem{
		File:     "internal/worker/pool.go",
		Line:     42,
		Title:    "bound the retry queue",
		Status:   "in-progress",
		Phase:    "2",
		Planning: "ST-7",
	}

	desc := BuildDescription(item)
	assert.Contains(t, desc, "`internal/worker/pool.go:42`")
	assert.Contains(t, desc, "- **Status:** in-progress")
	assert.Contains(t, desc, "- **Phase:** 2")
	assert.Contains(t, desc, "- **Planning:** ST-7")
}

func TestBuildDescriptionOmitsEmptyTags(t *testing.T) {
	desc := BuildDescription(TodoItem{File: "a.go", Line: 1, Status: "open"})
	assert.NotContains(t, desc, "Phase")
	assert.NotContains(t, desc, "Planning")
}

func TestSplitDevNotes(t *testing.T) {
	stored := "generated half\n\n## DEV NOTES:\nkeep me\n  exactly\t as written\n"

	generated, notes := SplitDevNotes(stored)
	assert.Equal(t, "generated half\n\n", generated)
	assert.Equal(t, "## DEV NOTES:\nkeep me\n  exactly\t as written\n", notes)
}

func TestSplitDevNotesWithoutMarker(t *testing.T) {
	generated, notes := SplitDevNotes("just generated content")
	assert.Equal(t, "just generated content", generated)
	assert.Equal(t, "", notes)
}

func TestMergeDescriptionPreservesNotesByteForByte(t *testing.T) {
	notes := "## DEV NOTES:\n- [ ] checklist\n\ttabbed line\ntrailing spaces  \n"
	merged := MergeDescription("fresh generated\n\n\n", notes)

	assert.Equal(t, "fresh generated\n\n"+notes, merged)

	// A later regeneration must reproduce the same notes half
	_, roundTripped := SplitDevNotes(merged)
	assert.Equal(t, notes, roundTripped)
}

func TestMergeDescriptionWithoutNotes(t *testing.T) {
	assert.Equal(t, "generated\n", MergeDescription("generated\n", ""))
}
