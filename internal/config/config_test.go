package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, ":8080", cfg.Addr())
	require.Equal(t, ProviderGemini, cfg.CompletionProvider)
	require.Equal(t, "gemini-1.5-flash", cfg.GeminiFlashModel)
	require.Equal(t, cfg.GeminiFlashModel, cfg.GeminiDefaultModel)
	require.Equal(t, "uploads", cfg.UploadDir)
	require.Equal(t, int64(32<<20), cfg.MaxUploadBytes())
	require.Equal(t, 60*time.Second, cfg.RemoteTimeout)
	require.Empty(t, cfg.DatabaseURL)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("COMPLETION_PROVIDER", "OpenAI")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("GEMINI_DEFAULT_MODEL", "gemini-2.0-flash")
	t.Setenv("GEMINI_BASE_URL", "http://localhost:1234/")
	t.Setenv("REMOTE_TIMEOUT", "5s")
	t.Setenv("MAX_UPLOAD_MB", "4")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, ProviderOpenAI, cfg.CompletionProvider)
	require.Equal(t, "gemini-2.0-flash", cfg.GeminiDefaultModel)
	require.Equal(t, "http://localhost:1234", cfg.GeminiBaseURL)
	require.Equal(t, 5*time.Second, cfg.RemoteTimeout)
	require.Equal(t, int64(4<<20), cfg.MaxUploadBytes())
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			CompletionProvider: ProviderGemini,
			GeminiAPIKey:       "k",
			GeminiEmailModel:   "e",
			GeminiCallModel:    "c",
			GeminiFlashModel:   "f",
			UploadDir:          "uploads",
			MaxUploadMB:        1,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "credentials file instead of key", mutate: func(c *Config) {
			c.GeminiAPIKey = ""
			c.GoogleCredentialsFile = "key.json"
		}},
		{name: "no gemini credentials", mutate: func(c *Config) { c.GeminiAPIKey = "" }, wantErr: "GEMINI_API_KEY"},
		{name: "openai without key", mutate: func(c *Config) { c.CompletionProvider = ProviderOpenAI }, wantErr: "OPENAI_API_KEY"},
		{name: "unknown provider", mutate: func(c *Config) { c.CompletionProvider = "bard" }, wantErr: "unknown COMPLETION_PROVIDER"},
		{name: "missing model", mutate: func(c *Config) { c.GeminiCallModel = "" }, wantErr: "GEMINI_CALL_MODEL"},
		{name: "bad upload limit", mutate: func(c *Config) { c.MaxUploadMB = 0 }, wantErr: "MAX_UPLOAD_MB"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
