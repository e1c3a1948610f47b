package llm

import (
	"context"

	"github.com/dskvich/image-generator/pkg/domain"
)

// ImageGenerator requests images from a remote model and returns their URLs.
type ImageGenerator interface {
	GenerateImages(ctx context.Context, req domain.ImageRequest) ([]string, error)
}
