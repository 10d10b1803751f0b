package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate_RequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid config",
			config: Config{
				SoundCloud: SoundCloudConfig{
					ClientID:     "test-client-id",
					ClientSecret: "test-client-secret",
					CallbackURL:  "https://app.example.com/callback",
				},
			},
			wantErr: false,
		},
		{
			name: "missing client id",
			config: Config{
				SoundCloud: SoundCloudConfig{
					ClientSecret: "test-client-secret",
				},
			},
			wantErr: true,
			errMsg:  "ClientID",
		},
		{
			name: "missing client secret",
			config: Config{
				SoundCloud: SoundCloudConfig{
					ClientID: "test-client-id",
				},
			},
			wantErr: true,
			errMsg:  "ClientSecret",
		},
		{
			name: "missing callback url is accepted",
			config: Config{
				SoundCloud: SoundCloudConfig{
					ClientID:     "test-client-id",
					ClientSecret: "test-client-secret",
				},
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()

			if tt.wantErr {
				require.Error(t, err, "expected validation to fail")
				assert.Contains(t, err.Error(), tt.errMsg,
					"error message should mention the problematic field")
			} else {
				assert.NoError(t, err, "expected validation to pass")
			}
		})
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "soundbox.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfigFile(t, `
soundcloud:
  client_id: file-id
  client_secret: file-secret
  callback_url: https://app.example.com/callback
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file-id", cfg.SoundCloud.ClientID)
	assert.Equal(t, "file-secret", cfg.SoundCloud.ClientSecret)
	assert.Equal(t, "https://app.example.com/callback", cfg.SoundCloud.CallbackURL)
	assert.Equal(t, "stdout", cfg.Logging.Output, "logging defaults applied")
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
soundcloud:
  client_id: file-id
  client_secret: file-secret
`)

	t.Setenv("SOUNDCLOUD_CLIENT_ID", "env-id")
	t.Setenv("SOUNDCLOUD_CALLBACK_URL", "https://env.example.com/callback")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-id", cfg.SoundCloud.ClientID)
	assert.Equal(t, "file-secret", cfg.SoundCloud.ClientSecret)
	assert.Equal(t, "https://env.example.com/callback", cfg.SoundCloud.CallbackURL)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_IncompleteCredentials(t *testing.T) {
	path := writeConfigFile(t, `
soundcloud:
  client_id: file-id
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ClientSecret")
}
