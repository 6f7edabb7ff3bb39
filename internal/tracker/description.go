package tracker

import (
	"fmt"
	"strings"
)

// DevNotesMarker splits the generated description from user-maintained
// notes. Everything below the marker belongs to the user and survives
// every sync byte for byte.
const DevNotesMarker = "## DEV NOTES:"

// BuildDescription renders the generated part of an issue description
func BuildDescription(item TodoItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tracked from a TODO comment.\n\n")
	fmt.Fprintf(&b, "- **File:** `%s:%d`\n", item.File, item.Line)
	fmt.Fprintf(&b, "- **Status:** %s\n", item.Status)
	if item.Phase != "" {
		fmt.Fprintf(&b, "- **Phase:** %s\n", item.Phase)
	}
	if item.Planning != "" {
		fmt.Fprintf(&b, "- **Planning:** %s\n", item.Planning)
	}
	return b.String()
}

// SplitDevNotes separates a stored description into the generated part
// and the user's notes (marker included). The notes half is empty when
// no marker is present.
func SplitDevNotes(description string) (generated, notes string) {
	idx := strings.Index(description, DevNotesMarker)
	if idx < 0 {
		return description, ""
	}
	return description[:idx], description[idx:]
}

// MergeDescription combines freshly generated content with the
// preserved user notes. The generated half is trimmed before the
// marker is reattached so regeneration stays stable; the notes half is
// reattached untouched.
func MergeDescription(generated, notes string) string {
	if notes == "" {
		return generated
	}
	return strings.TrimRight(generated, "\n") + "\n\n" + notes
}
