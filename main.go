package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v9"
	"github.com/dskvich/image-generator/pkg/config"
	"github.com/dskvich/image-generator/pkg/console"
	"github.com/dskvich/image-generator/pkg/downloader"
	"github.com/dskvich/image-generator/pkg/llm"
	"github.com/dskvich/image-generator/pkg/llm/openai"
	"github.com/dskvich/image-generator/pkg/logger"
	"github.com/dskvich/image-generator/pkg/network"
	"github.com/dskvich/image-generator/pkg/services"
	"github.com/dskvich/image-generator/pkg/storage"
	"github.com/openai/openai-go/v2/option"
	"github.com/samber/lo"
)

type Config struct {
	ConfigFile string `env:"IMAGE_GENERATOR_CONFIG"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
}

type apiFactory func(token string, opts ...option.RequestOption) (llm.ImageGenerator, error)

// processEnv holds the process boundaries setupSession builds on.
type processEnv struct {
	lookupEnv config.LookupFunc
	newAPI    apiFactory
	stdin     io.Reader
	stdout    io.Writer
}

func newOpenAIClient(token string, opts ...option.RequestOption) (llm.ImageGenerator, error) {
	c, err := openai.NewClient(token, opts...)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func main() {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "parsing env config: %v\n", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(logger.NewHandler(os.Stderr, logger.OptionsWithLevel(cfg.LogLevel))))

	console.PrintBanner(os.Stdout)

	session, err := setupSession(cfg, processEnv{
		lookupEnv: os.LookupEnv,
		newAPI:    newOpenAIClient,
		stdin:     os.Stdin,
		stdout:    os.Stdout,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing ImageGenerator: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := session.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("session stopped", logger.Err(err))
	}
	if ctx.Err() != nil {
		slog.Info("shutting down due to signal")
	}
}

// setupSession resolves settings before anything touches the network:
// a missing API key returns before the API client is created.
func setupSession(cfg Config, rt processEnv) (*console.Session, error) {
	path := lo.CoalesceOrEmpty(cfg.ConfigFile, config.DefaultPath)

	settings, err := config.Resolve(path, rt.lookupEnv, rt.stdout)
	if err != nil {
		return nil, err
	}

	fileStorage, err := storage.NewFileStorage(settings.DownloadPath)
	if err != nil {
		return nil, err
	}

	hc, err := network.NewHTTPClient(settings.Proxy)
	if err != nil {
		return nil, fmt.Errorf("creating http client: %w", err)
	}

	api, err := rt.newAPI(settings.APIKey, option.WithHTTPClient(hc))
	if err != nil {
		return nil, fmt.Errorf("creating open ai client: %w", err)
	}

	imageGenerator := services.NewImageGenerator(api, downloader.New(hc, fileStorage), *settings)

	slog.Info("image generator ready",
		"model", settings.Model,
		"size", settings.ImageSize,
		"download_path", fileStorage.Dir(),
	)

	return console.NewSession(rt.stdin, rt.stdout, imageGenerator), nil
}
