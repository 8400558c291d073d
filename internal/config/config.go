package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Config captures the runtime configuration of the bridge.
type Config struct {
	Port     string `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`

	CompletionProvider string `mapstructure:"completion_provider"`

	GeminiAPIKey       string `mapstructure:"gemini_api_key"`
	GeminiBaseURL      string `mapstructure:"gemini_base_url"`
	GeminiEmailModel   string `mapstructure:"gemini_email_model"`
	GeminiCallModel    string `mapstructure:"gemini_call_model"`
	GeminiFlashModel   string `mapstructure:"gemini_flash_model"`
	GeminiDefaultModel string `mapstructure:"gemini_default_model"`

	OpenAIAPIKey  string `mapstructure:"openai_api_key"`
	OpenAIBaseURL string `mapstructure:"openai_base_url"`

	GoogleCredentialsFile string `mapstructure:"google_application_credentials"`
	SpeechEndpoint        string `mapstructure:"speech_endpoint"`

	UploadDir     string        `mapstructure:"upload_dir"`
	MaxUploadMB   int64         `mapstructure:"max_upload_mb"`
	RemoteTimeout time.Duration `mapstructure:"remote_timeout"`

	DatabaseURL string `mapstructure:"database_url"`
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Every key needs a default, otherwise AutomaticEnv is not consulted on Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("completion_provider", ProviderGemini)

	v.SetDefault("gemini_api_key", "")
	v.SetDefault("gemini_base_url", "https://generativelanguage.googleapis.com")
	v.SetDefault("gemini_email_model", "tunedModels/emails-tsko9gc7g2qk")
	v.SetDefault("gemini_call_model", "tunedModels/calls-6pmcy3jt5z2r")
	v.SetDefault("gemini_flash_model", "gemini-1.5-flash")
	v.SetDefault("gemini_default_model", "")

	v.SetDefault("openai_api_key", "")
	v.SetDefault("openai_base_url", "https://generativelanguage.googleapis.com/v1beta/openai")

	v.SetDefault("google_application_credentials", "")
	v.SetDefault("speech_endpoint", "")

	v.SetDefault("upload_dir", "uploads")
	v.SetDefault("max_upload_mb", 32)
	v.SetDefault("remote_timeout", 60*time.Second)

	v.SetDefault("database_url", "")
}

func (c *Config) normalize() {
	c.CompletionProvider = strings.ToLower(strings.TrimSpace(c.CompletionProvider))
	if strings.TrimSpace(c.GeminiDefaultModel) == "" {
		c.GeminiDefaultModel = c.GeminiFlashModel
	}
	c.GeminiBaseURL = strings.TrimSuffix(c.GeminiBaseURL, "/")
}

// Validate ensures the selected completion provider can authenticate.
func (c *Config) Validate() error {
	var missing []string

	switch c.CompletionProvider {
	case ProviderGemini:
		if c.GeminiAPIKey == "" && c.GoogleCredentialsFile == "" {
			missing = append(missing, "GEMINI_API_KEY or GOOGLE_APPLICATION_CREDENTIALS")
		}
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			missing = append(missing, "OPENAI_API_KEY")
		}
	default:
		return fmt.Errorf("unknown COMPLETION_PROVIDER %q", c.CompletionProvider)
	}

	if c.GeminiEmailModel == "" {
		missing = append(missing, "GEMINI_EMAIL_MODEL")
	}
	if c.GeminiCallModel == "" {
		missing = append(missing, "GEMINI_CALL_MODEL")
	}
	if c.GeminiFlashModel == "" {
		missing = append(missing, "GEMINI_FLASH_MODEL")
	}
	if c.UploadDir == "" {
		missing = append(missing, "UPLOAD_DIR")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be > 0")
	}
	return nil
}

// MaxUploadBytes is the request body limit for audio uploads.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

func (c *Config) Addr() string {
	return ":" + c.Port
}
