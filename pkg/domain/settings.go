package domain

const (
	DefaultAPIKeyEnvVar = "OPENAI_API_KEY"
	DefaultImageSize    = Size1024x1024
	DefaultModel        = DallE3Model
	DefaultDownloadPath = "downloads/images"
)

// Settings is the resolved configuration. It is built once at startup and
// only read afterwards.
type Settings struct {
	APIKeyEnvVar string
	APIKey       string
	ImageSize    ImageSize
	Model        string
	DownloadPath string
	Proxy        string
}

// DefaultSettings returns settings with every field except APIKey defaulted.
func DefaultSettings() Settings {
	return Settings{
		APIKeyEnvVar: DefaultAPIKeyEnvVar,
		ImageSize:    DefaultImageSize,
		Model:        DefaultModel,
		DownloadPath: DefaultDownloadPath,
	}
}
