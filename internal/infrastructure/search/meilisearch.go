package search

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/meilisearch/meilisearch-go"
	"github.com/rs/zerolog/log"
)

// Index names, one per searchable entity
const (
	IndexAccommodations = "accommodations"
	IndexDestinations   = "destinations"
	IndexEvents         = "events"
	IndexPosts          = "posts"
)

// Client wraps the Meilisearch service manager. A nil *Client is a valid
// disabled instance; full-text search then falls back to SQL ILIKE.
type Client struct {
	client meilisearch.ServiceManager
}

// New returns nil when host is empty (search disabled)
func New(host, masterKey string) *Client {
	if host == "" {
		return nil
	}

	c := &Client{client: meilisearch.New(host, meilisearch.WithAPIKey(masterKey))}
	c.initIndexes()
	return c
}

func (c *Client) Enabled() bool {
	return c != nil && c.client != nil
}

func (c *Client) initIndexes() {
	sortable := []string{"created_at"}
	for _, index := range []string{IndexAccommodations, IndexDestinations, IndexEvents, IndexPosts} {
		if _, err := c.client.Index(index).UpdateSortableAttributes(&sortable); err != nil {
			log.Warn().Err(err).Str("index", index).Msg("[SEARCH] Failed to update sortable attributes")
		}
	}
}

// IndexDocument upserts one document; doc must carry an "id" field
func (c *Client) IndexDocument(index string, doc any) error {
	if !c.Enabled() {
		return nil
	}

	primaryKey := "id"
	if _, err := c.client.Index(index).AddDocuments([]any{doc}, &primaryKey); err != nil {
		return fmt.Errorf("failed to index document: %w", err)
	}
	return nil
}

// DeleteDocument removes one document from an index
func (c *Client) DeleteDocument(index, id string) error {
	if !c.Enabled() {
		return nil
	}

	if _, err := c.client.Index(index).DeleteDocument(id); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

// Search returns the matching document ids in relevance order
func (c *Client) Search(index, query string, limit int) ([]uuid.UUID, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("search is not configured")
	}

	resp, err := c.client.Index(index).Search(query, &meilisearch.SearchRequest{
		Limit: int64(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		// Hits are schemaless; round-trip through JSON to pull the id out
		raw, err := json.Marshal(hit)
		if err != nil {
			continue
		}
		var doc struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(raw, &doc); err != nil {
			continue
		}
		id, err := uuid.Parse(doc.ID)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	return ids, nil
}
