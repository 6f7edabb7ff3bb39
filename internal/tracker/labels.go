package tracker

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"stayhub-backend/pkg/logger"
)

// SourceLabel marks every synced issue so the tool can find its own
// issues again without touching hand-filed ones
const SourceLabel = "from:claude-code"

// LabelsFor builds the exact label set for a TODO item:
// from:claude-code, status:<kebab>, type:task|subtask, plus phase and
// planning when present. Nothing else is ever attached.
func LabelsFor(item TodoItem) []string {
	labels := []string{
		SourceLabel,
		"status:" + item.Status,
	}
	if item.Phase != "" {
		labels = append(labels, "phase:"+item.Phase)
	}
	if item.Planning != "" {
		labels = append(labels, "planning:"+item.Planning)
	}
	if item.Subtask {
		labels = append(labels, "type:subtask")
	} else {
		labels = append(labels, "type:task")
	}

	sort.Strings(labels)
	return labels
}

// LabelCache keeps the tracker's label namespace in memory so a sync
// run does one list call up front instead of one lookup per issue
type LabelCache struct {
	client *Client

	mu     sync.Mutex
	byName map[string]Label
	log    zerolog.Logger
}

func NewLabelCache(client *Client) *LabelCache {
	return &LabelCache{
		client: client,
		byName: make(map[string]Label),
		log:    logger.With("tracker.labels"),
	}
}

// Warmup loads every existing label before the first ensure call
func (c *LabelCache) Warmup(ctx context.Context) error {
	labels, err := c.client.ListLabels(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	for _, label := range labels {
		c.byName[label.Name] = label
	}
	c.mu.Unlock()

	c.log.Info().Int("count", len(labels)).Msg("Label cache warmed up")
	return nil
}

// Ensure returns the label, creating it when missing. When another
// writer creates the same label between our check and our create, the
// tracker rejects the duplicate; that race is recovered by re-listing
// and taking the winner's label.
func (c *LabelCache) Ensure(ctx context.Context, name string) (Label, error) {
	c.mu.Lock()
	if label, ok := c.byName[name]; ok {
		c.mu.Unlock()
		return label, nil
	}
	c.mu.Unlock()

	label, err := c.client.CreateLabel(ctx, name)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.IsConflict() {
			return c.recoverDuplicate(ctx, name)
		}
		return Label{}, err
	}

	c.mu.Lock()
	c.byName[name] = label
	c.mu.Unlock()
	return label, nil
}

// recoverDuplicate handles the lost create race: someone else made the
// label first, so refresh the cache and return theirs
func (c *LabelCache) recoverDuplicate(ctx context.Context, name string) (Label, error) {
	c.log.Debug().Str("label", name).Msg("Duplicate label create, refreshing cache")

	labels, err := c.client.ListLabels(ctx)
	if err != nil {
		return Label{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, label := range labels {
		c.byName[label.Name] = label
	}

	if label, ok := c.byName[name]; ok {
		return label, nil
	}
	return Label{}, errors.New("label vanished after duplicate rejection: " + name)
}

// EnsureAll resolves a whole label set through the cache
func (c *LabelCache) EnsureAll(ctx context.Context, names []string) error {
	for _, name := range names {
		if _, err := c.Ensure(ctx, name); err != nil {
			return err
		}
	}
	return nil
}
