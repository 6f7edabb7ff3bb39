package tracker

// TodoItem is one TODO comment lifted from the source tree
type TodoItem struct {
	File     string
	Line     int
	Title    string
	Status   string // kebab-case, defaults to "open"
	Phase    string // optional, numeric
	Planning string // optional planning code
	Subtask  bool   // nested under another TODO in the same block
}

// Issue is the tracker's issue shape
type Issue struct {
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Labels      []string `json:"labels"`
	State       string   `json:"state,omitempty"`
}

// Label is a tracker label
type Label struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
