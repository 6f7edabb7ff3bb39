package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	accommodationService "stayhub-backend/internal/domains/accommodation/service"
	destinationService "stayhub-backend/internal/domains/destination/service"
	eventService "stayhub-backend/internal/domains/event/service"
	postService "stayhub-backend/internal/domains/post/service"
	"stayhub-backend/internal/imagegen"
	"stayhub-backend/internal/infrastructure/queue"
	"stayhub-backend/internal/infrastructure/storage"
	"stayhub-backend/pkg/logger"
)

// accommodationMediaRoot is the object storage root that the cleanup
// job sweeps. Image generation writes under the same root.
const accommodationMediaRoot = "accommodations"

// MediaPrefix builds the object storage prefix owning a listing's
// generated images
func MediaPrefix(accommodationID uuid.UUID) string {
	return accommodationMediaRoot + "/" + accommodationID.String()
}

// ===== SEARCH REINDEX =====

type ReindexSearchHandler struct {
	destinations   *destinationService.Service
	accommodations *accommodationService.Service
	events         *eventService.Service
	posts          *postService.Service
	log            zerolog.Logger
}

func NewReindexSearchHandler(
	destinations *destinationService.Service,
	accommodations *accommodationService.Service,
	events *eventService.Service,
	posts *postService.Service,
) *ReindexSearchHandler {
	return &ReindexSearchHandler{
		destinations:   destinations,
		accommodations: accommodations,
		events:         events,
		posts:          posts,
		log:            logger.With("job.search_reindex"),
	}
}

func (h *ReindexSearchHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	steps := []struct {
		name string
		fn   func(context.Context) (int, error)
	}{
		{"destinations", h.destinations.ReindexSearch},
		{"accommodations", h.accommodations.ReindexSearch},
		{"events", h.events.ReindexSearch},
		{"posts", h.posts.ReindexSearch},
	}

	for _, step := range steps {
		indexed, err := step.fn(ctx)
		if err != nil {
			return fmt.Errorf("reindex %s: %w", step.name, err)
		}
		h.log.Info().Str("index", step.name).Int("documents", indexed).Msg("Reindex complete")
	}
	return nil
}

// ===== RATING SWEEP =====

type RatingSweepHandler struct {
	accommodations *accommodationService.Service
	log            zerolog.Logger
}

func NewRatingSweepHandler(accommodations *accommodationService.Service) *RatingSweepHandler {
	return &RatingSweepHandler{
		accommodations: accommodations,
		log:            logger.With("job.rating_sweep"),
	}
}

func (h *RatingSweepHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	refreshed, err := h.accommodations.RefreshAllRatings(ctx)
	if err != nil {
		return fmt.Errorf("rating sweep: %w", err)
	}
	h.log.Info().Int("refreshed", refreshed).Msg("Rating sweep complete")
	return nil
}

// ===== ORPHAN MEDIA CLEANUP =====

type MediaCleanupHandler struct {
	storage        *storage.MinIOStorage
	accommodations *accommodationService.Service
	log            zerolog.Logger
}

func NewMediaCleanupHandler(store *storage.MinIOStorage, accommodations *accommodationService.Service) *MediaCleanupHandler {
	return &MediaCleanupHandler{
		storage:        store,
		accommodations: accommodations,
		log:            logger.With("job.media_cleanup"),
	}
}

// ProcessTask deletes image sets whose owning listing no longer exists
// in any form. Soft-deleted listings keep their media so a restore
// brings the images back.
func (h *MediaCleanupHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	prefixes, err := h.storage.ListPrefixes(ctx, accommodationMediaRoot+"/")
	if err != nil {
		return fmt.Errorf("list media prefixes: %w", err)
	}

	removed := 0
	for _, prefix := range prefixes {
		id, ok := ownerIDFromPrefix(prefix)
		if !ok {
			h.log.Warn().Str("prefix", prefix).Msg("Skipping unrecognized media prefix")
			continue
		}

		exists, err := h.accommodations.Exists(ctx, id)
		if err != nil {
			return fmt.Errorf("check listing %s: %w", id, err)
		}
		if exists {
			continue
		}

		if err := h.storage.DeletePrefix(ctx, prefix); err != nil {
			return fmt.Errorf("delete orphan media %s: %w", prefix, err)
		}
		removed++
	}

	h.log.Info().Int("scanned", len(prefixes)).Int("removed", removed).Msg("Media cleanup complete")
	return nil
}

func ownerIDFromPrefix(prefix string) (uuid.UUID, bool) {
	trimmed := strings.TrimSuffix(strings.TrimPrefix(prefix, accommodationMediaRoot+"/"), "/")
	id, err := uuid.Parse(trimmed)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// ===== IMAGE GENERATION =====

type GenerateImageHandler struct {
	generator      *imagegen.Generator
	accommodations *accommodationService.Service
	log            zerolog.Logger
}

func NewGenerateImageHandler(generator *imagegen.Generator, accommodations *accommodationService.Service) *GenerateImageHandler {
	return &GenerateImageHandler{
		generator:      generator,
		accommodations: accommodations,
		log:            logger.With("job.generate_image"),
	}
}

func (h *GenerateImageHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload queue.GenerateImagePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}

	item, err := h.generator.Generate(ctx, MediaPrefix(payload.AccommodationID), payload.Prompt)
	if err != nil {
		return fmt.Errorf("generate image for %s: %w", payload.AccommodationID, err)
	}

	if err := h.accommodations.ApplyGeneratedImage(ctx, payload.AccommodationID, *item); err != nil {
		return fmt.Errorf("attach image to %s: %w", payload.AccommodationID, err)
	}

	h.log.Info().Str("accommodation_id", payload.AccommodationID.String()).Msg("Generated image attached")
	return nil
}
