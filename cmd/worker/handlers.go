package main

import (
	"github.com/hibiken/asynq"

	"stayhub-backend/internal/imagegen"
	"stayhub-backend/internal/infrastructure/queue"
	"stayhub-backend/internal/infrastructure/queue/handlers"
	"stayhub-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	reindexSearch *handlers.ReindexSearchHandler
	ratingSweep   *handlers.RatingSweepHandler
	mediaCleanup  *handlers.MediaCleanupHandler
	generateImage *handlers.GenerateImageHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	generator := imagegen.NewGenerator(c.AI, c.Storage)

	return &HandlerRegistry{
		reindexSearch: handlers.NewReindexSearchHandler(
			c.DestinationService,
			c.AccommodationService,
			c.EventService,
			c.PostService,
		),
		ratingSweep:   handlers.NewRatingSweepHandler(c.AccommodationService),
		mediaCleanup:  handlers.NewMediaCleanupHandler(c.Storage, c.AccommodationService),
		generateImage: handlers.NewGenerateImageHandler(generator, c.AccommodationService),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(queue.TypeSearchReindex, h.reindexSearch.ProcessTask)
	mux.HandleFunc(queue.TypeRatingSweep, h.ratingSweep.ProcessTask)
	mux.HandleFunc(queue.TypeMediaCleanup, h.mediaCleanup.ProcessTask)
	mux.HandleFunc(queue.TypeGenerateImage, h.generateImage.ProcessTask)
}
