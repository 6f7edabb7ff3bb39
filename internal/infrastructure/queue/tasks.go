package queue

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Queue priorities
const (
	QueueHigh    = "high"
	QueueDefault = "default"
	QueueLow     = "low"
)

// Task types
const (
	TypeSearchReindex = "search:reindex"
	TypeRatingSweep   = "rating:sweep"
	TypeMediaCleanup  = "media:cleanup_orphans"
	TypeGenerateImage = "media:generate_image"
)

type SearchReindexPayload struct{}

type RatingSweepPayload struct{}

type MediaCleanupPayload struct{}

type GenerateImagePayload struct {
	AccommodationID uuid.UUID `json:"accommodation_id"`
	Prompt          string    `json:"prompt"`
}

// Client enqueues on-demand tasks from the API process
type Client struct {
	client *asynq.Client
}

func NewClient(redisAddr, password string, db int) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: password,
			DB:       db,
		}),
	}
}

func (c *Client) Enabled() bool {
	return c != nil && c.client != nil
}

// EnqueueGenerateImage schedules background image generation for a
// listing. Generation calls an external model and can take minutes.
func (c *Client) EnqueueGenerateImage(accommodationID uuid.UUID, prompt string) error {
	payload, err := json.Marshal(GenerateImagePayload{
		AccommodationID: accommodationID,
		Prompt:          prompt,
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(TypeGenerateImage, payload)
	_, err = c.client.Enqueue(task,
		asynq.Queue(QueueDefault),
		asynq.MaxRetry(3),
		asynq.Timeout(10*time.Minute),
	)
	return err
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
