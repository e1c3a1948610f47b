package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/dskvich/image-generator/pkg/domain"
	"github.com/dskvich/image-generator/pkg/llm"
	"github.com/dskvich/image-generator/pkg/logger"
)

type imageDownloader interface {
	Download(ctx context.Context, url string) domain.DownloadResult
}

// ImageGenerator turns prompts into images saved on disk.
type ImageGenerator struct {
	api        llm.ImageGenerator
	downloader imageDownloader
	size       domain.ImageSize
	model      string
}

func NewImageGenerator(api llm.ImageGenerator, downloader imageDownloader, settings domain.Settings) *ImageGenerator {
	return &ImageGenerator{
		api:        api,
		downloader: downloader,
		size:       settings.ImageSize,
		model:      settings.Model,
	}
}

// Generate requests count images for prompt and downloads only the first one.
// All returned URLs are reported back. Errors never escape: they are carried
// in the result with an empty URL list.
func (g *ImageGenerator) Generate(ctx context.Context, prompt string, count int) domain.GenerateResult {
	if err := domain.ValidatePrompt(prompt); err != nil {
		return domain.GenerateResult{Err: err}
	}

	req := domain.ImageRequest{
		Prompt: prompt,
		Count:  domain.NormalizeCount(count),
		Size:   g.size,
		Model:  g.model,
	}

	start := time.Now()
	urls, err := g.api.GenerateImages(ctx, req)
	if err != nil {
		slog.ErrorContext(ctx, "Error generating image",
			"model", g.model,
			"duration_ms", time.Since(start).Milliseconds(),
			logger.Err(err),
		)
		return domain.GenerateResult{URLs: []string{}, Err: err}
	}

	slog.InfoContext(ctx, "Image generated",
		"model", g.model,
		"size", g.size,
		"count", len(urls),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	result := domain.GenerateResult{URLs: urls}
	if len(urls) == 0 {
		result.URLs = []string{}
		return result
	}

	download := g.downloader.Download(ctx, urls[0])
	result.Download = &download
	return result
}
