package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dskvich/image-generator/pkg/domain"
	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/packages/param"
	"github.com/samber/lo"
)

type client struct {
	api openai.Client
}

// NewClient creates an OpenAI images client. SDK retries are disabled:
// a failed request is reported to the caller as is.
func NewClient(token string, opts ...option.RequestOption) (*client, error) {
	if token == "" {
		return nil, errors.New("token cannot be empty")
	}

	reqOpts := append([]option.RequestOption{
		option.WithAPIKey(token),
		option.WithMaxRetries(0),
	}, opts...)

	return &client{
		api: openai.NewClient(reqOpts...),
	}, nil
}

// GenerateImages sends req unchanged; callers supply a validated prompt,
// a positive count, a size and a model.
func (c *client) GenerateImages(ctx context.Context, req domain.ImageRequest) ([]string, error) {
	params := openai.ImageGenerateParams{
		Prompt: req.Prompt,
		Model:  openai.ImageModel(req.Model),
		N:      param.NewOpt(int64(req.Count)),
		Size:   openai.ImageGenerateParamsSize(req.Size),
	}

	start := time.Now()
	resp, err := c.api.Images.Generate(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("generating image: %w", err)
	}

	urls := lo.FilterMap(resp.Data, func(img openai.Image, _ int) (string, bool) {
		return img.URL, img.URL != ""
	})

	slog.DebugContext(ctx, "images generated",
		"model", req.Model,
		"requested", req.Count,
		"returned", len(resp.Data),
		"with_url", len(urls),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return urls, nil
}
