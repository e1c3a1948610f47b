package downloader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/dskvich/image-generator/pkg/domain"
	"github.com/dskvich/image-generator/pkg/logger"
)

type imageSaver interface {
	Save(ctx context.Context, r io.Reader) (string, int64, error)
}

type Downloader struct {
	hc    *http.Client
	saver imageSaver
}

func New(hc *http.Client, saver imageSaver) *Downloader {
	if hc == nil {
		hc = &http.Client{}
	}
	return &Downloader{hc: hc, saver: saver}
}

// Download fetches url and saves the body when the server answers 200.
// Failures are reported in the result, never returned.
func (d *Downloader) Download(ctx context.Context, url string) domain.DownloadResult {
	result := domain.DownloadResult{URL: url}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		result.Err = fmt.Errorf("failed to create HTTP request: %w", err)
		return result
	}

	resp, err := d.hc.Do(req)
	if err != nil {
		result.Err = fmt.Errorf("HTTP request failed: %w", err)
		slog.WarnContext(ctx, "image download failed", logger.Err(result.Err))
		return result
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode
	if resp.StatusCode != http.StatusOK {
		result.Err = &domain.StatusError{StatusCode: resp.StatusCode}
		slog.WarnContext(ctx, "image download rejected", "status", resp.StatusCode)
		return result
	}

	path, n, err := d.saver.Save(ctx, resp.Body)
	result.Path = path
	result.Bytes = n
	if err != nil {
		result.Err = fmt.Errorf("saving image: %w", err)
		slog.WarnContext(ctx, "image save failed", "path", path, logger.Err(err))
		return result
	}

	slog.InfoContext(ctx, "Image saved", "path", path, "size", n)
	return result
}
