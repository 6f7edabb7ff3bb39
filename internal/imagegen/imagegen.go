package imagegen

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"stayhub-backend/internal/aiclient"
	"stayhub-backend/internal/infrastructure/storage"
	"stayhub-backend/internal/shared/types"
	"stayhub-backend/pkg/logger"
)

// Generator produces marketing imagery for listings: prompt the AI
// provider, run the result through the resize pipeline and store every
// variant in object storage.
type Generator struct {
	ai        *aiclient.Client
	storage   *storage.MinIOStorage
	processor *storage.ImageProcessor
	log       zerolog.Logger
}

func NewGenerator(ai *aiclient.Client, store *storage.MinIOStorage) *Generator {
	return &Generator{
		ai:        ai,
		storage:   store,
		processor: storage.NewImageProcessor(),
		log:       logger.With("imagegen"),
	}
}

type generateRequest struct {
	Prompt string `json:"prompt"`
	Size   string `json:"size"`
}

type generateResponse struct {
	ImageBase64 string `json:"image_base64"`
}

// Generate creates one image and returns the media item pointing at
// the stored variants
func (g *Generator) Generate(ctx context.Context, entityPrefix, prompt string) (*types.MediaItem, error) {
	var resp generateResponse
	if err := g.ai.Post(ctx, "/v1/images/generate", generateRequest{Prompt: prompt, Size: "1024x1024"}, &resp); err != nil {
		return nil, fmt.Errorf("image generation failed: %w", err)
	}

	raw, err := base64.StdEncoding.DecodeString(resp.ImageBase64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode generated image: %w", err)
	}

	if err := g.processor.ValidateImage(raw); err != nil {
		return nil, fmt.Errorf("generated image rejected: %w", err)
	}

	variants, err := g.processor.ProcessImage(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to process generated image: %w", err)
	}

	imageID := uuid.New().String()
	urls := make(map[string]string, len(variants))
	for variant, data := range variants {
		objectName := fmt.Sprintf("%s/%s/%s.jpg", entityPrefix, imageID, variant)
		url, err := g.storage.Upload(ctx, objectName, data, "image/jpeg")
		if err != nil {
			return nil, fmt.Errorf("failed to store %s variant: %w", variant, err)
		}
		urls[variant] = url
	}

	g.log.Info().Str("prefix", entityPrefix).Str("image_id", imageID).Msg("Generated image stored")

	return &types.MediaItem{
		URL:      urls["large"],
		Kind:     "image",
		Alt:      prompt,
		Variants: urls,
	}, nil
}
