package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/dskvich/image-generator/pkg/domain"
	"github.com/dskvich/image-generator/pkg/logger"
	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "config.yaml"

var (
	ErrFileNotFound = errors.New("configuration file not found")
	ErrInvalidFile  = errors.New("invalid configuration file")
)

// LookupFunc reads a variable from the process environment.
type LookupFunc func(key string) (string, bool)

// File is the decoded YAML document. Only two-level lookups are supported.
type File map[string]any

// LoadFile reads the YAML file at path. An empty document yields an empty File.
func LoadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return File{}, fmt.Errorf("%w: '%s'", ErrFileNotFound, path)
		}
		return File{}, fmt.Errorf("reading config file: %w", err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return File{}, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}
	if doc == nil {
		return File{}, nil
	}

	m, ok := asMapping(doc)
	if !ok {
		return File{}, fmt.Errorf("%w: top-level document is not a mapping", ErrInvalidFile)
	}
	return File(m), nil
}

// Lookup returns the scalar value at section.key.
func (f File) Lookup(section, key string) (string, bool) {
	sec, ok := asMapping(f[section])
	if !ok {
		return "", false
	}
	v, ok := sec[key]
	if !ok || v == nil {
		return "", false
	}
	if _, nested := asMapping(v); nested {
		slog.Warn("ignoring non-scalar configuration value", "key", section+"."+key)
		return "", false
	}
	switch val := v.(type) {
	case string:
		return val, true
	case []any:
		slog.Warn("ignoring non-scalar configuration value", "key", section+"."+key)
		return "", false
	default:
		return fmt.Sprint(val), true
	}
}

func (f File) stringOr(section, key, fallback string) string {
	v, ok := f.Lookup(section, key)
	return lo.Ternary(ok && v != "", v, fallback)
}

// asMapping accepts both mapping shapes yaml.v3 produces: map[string]any
// when every key is a string, map[any]any otherwise.
func asMapping(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}

// Resolve builds Settings from the file at path and the environment.
// File problems are written to notice, logged, and the defaults used;
// a missing API key is fatal.
func Resolve(path string, lookupEnv LookupFunc, notice io.Writer) (*domain.Settings, error) {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	if notice == nil {
		notice = io.Discard
	}

	f, err := LoadFile(path)
	if err != nil {
		if errors.Is(err, ErrFileNotFound) {
			fmt.Fprintf(notice, "Configuration file '%s' not found. Using default values.\n", path)
			slog.Warn("configuration file not found, using default values", "path", path)
		} else {
			fmt.Fprintf(notice, "Error loading configuration file: %v\n", err)
			slog.Warn("error loading configuration file, using default values", "path", path, logger.Err(err))
		}
		f = File{}
	}

	s := domain.DefaultSettings()
	s.APIKeyEnvVar = f.stringOr("api", "key_env_var", s.APIKeyEnvVar)
	s.ImageSize = domain.ImageSize(f.stringOr("image_generation", "format", s.ImageSize.String()))
	s.Model = f.stringOr("image_generation", "model", s.Model)
	s.DownloadPath = f.stringOr("storage", "save_path", s.DownloadPath)
	s.Proxy = f.stringOr("network", "proxy", "")

	if !s.ImageSize.Known() {
		slog.Warn("unknown image size, passing it to the API as is", "format", s.ImageSize)
	}

	result := &multierror.Error{ErrorFormat: joinErrors}

	key, _ := lookupEnv(s.APIKeyEnvVar)
	if key == "" {
		result = multierror.Append(result, &domain.ConfigError{EnvVar: s.APIKeyEnvVar, Err: domain.ErrMissingKey})
	}
	s.APIKey = key

	if s.Proxy != "" {
		if err := validateProxy(s.Proxy); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}

	slog.Debug("settings resolved",
		"key_env_var", s.APIKeyEnvVar,
		"image_size", s.ImageSize,
		"model", s.Model,
		"download_path", s.DownloadPath,
	)

	return &s, nil
}

func joinErrors(errs []error) string {
	msgs := lo.Map(errs, func(err error, _ int) string {
		return err.Error()
	})
	return strings.Join(msgs, "; ")
}

func validateProxy(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parsing network.proxy: %w", err)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "socks5", "socks5h":
	default:
		return fmt.Errorf("network.proxy: unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("network.proxy: missing host in %q", raw)
	}
	return nil
}
