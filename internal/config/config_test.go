package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func TestLoadBrowserConfig_Defaults(t *testing.T) {
	cfg, err := LoadBrowserConfig(envMap(nil))

	require.NoError(t, err)
	assert.Equal(t, &BrowserConfig{
		BaseURL:  DefaultBaseURL,
		Engine:   "playwright",
		Name:     "chromium",
		Headless: true,
	}, cfg)
}

func TestLoadBrowserConfig(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		want    *BrowserConfig
		wantErr string
	}{
		{
			name: "rod with remote chrome",
			env: map[string]string{
				"BROWSER_ENGINE":    "rod",
				"ROD_CONTROL_URL":   "ws://127.0.0.1:9222/devtools/browser/abc",
				"BROWSER_HEADLESS":  "false",
				"BROWSER_SLOWMO_MS": "250",
				"ROD_STEALTH":       "true",
			},
			want: &BrowserConfig{
				BaseURL:    DefaultBaseURL,
				Engine:     "rod",
				Name:       "chromium",
				Headless:   false,
				SlowMo:     250 * time.Millisecond,
				ControlURL: "ws://127.0.0.1:9222/devtools/browser/abc",
				Stealth:    true,
			},
		},
		{
			name: "firefox on playwright",
			env:  map[string]string{"BROWSER_NAME": "firefox", "SAUCE_BASE_URL": "http://localhost:3000/"},
			want: &BrowserConfig{
				BaseURL:  "http://localhost:3000/",
				Engine:   "playwright",
				Name:     "firefox",
				Headless: true,
			},
		},
		{
			name:    "unknown engine",
			env:     map[string]string{"BROWSER_ENGINE": "selenium"},
			wantErr: "BROWSER_ENGINE",
		},
		{
			name:    "webkit on rod",
			env:     map[string]string{"BROWSER_ENGINE": "rod", "BROWSER_NAME": "webkit"},
			wantErr: "rod engine",
		},
		{
			name:    "unknown browser",
			env:     map[string]string{"BROWSER_NAME": "netscape"},
			wantErr: "BROWSER_NAME",
		},
		{
			name:    "bad headless",
			env:     map[string]string{"BROWSER_HEADLESS": "sometimes"},
			wantErr: "BROWSER_HEADLESS",
		},
		{
			name:    "bad stealth",
			env:     map[string]string{"BROWSER_ENGINE": "rod", "ROD_STEALTH": "maybe"},
			wantErr: "ROD_STEALTH",
		},
		{
			name:    "negative slowmo",
			env:     map[string]string{"BROWSER_SLOWMO_MS": "-5"},
			wantErr: "BROWSER_SLOWMO_MS",
		},
		{
			name:    "relative base url",
			env:     map[string]string{"SAUCE_BASE_URL": "saucedemo"},
			wantErr: "SAUCE_BASE_URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadBrowserConfig(envMap(tt.env))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg)
		})
	}
}

func TestLoadCredentials(t *testing.T) {
	creds := LoadCredentials(envMap(map[string]string{"SAUCE_LOCKED_USER": "someone_else"}))

	assert.Equal(t, "secret_sauce", creds.Password)
	assert.Equal(t, "standard_user", creds.StandardUser)
	assert.Equal(t, "someone_else", creds.LockedUser)
	assert.Equal(t, []string{"standard_user", "problem_user", "performance_glitch_user"}, creds.AllowedUsers())
}

func TestLoadLoggerConfig(t *testing.T) {
	cfg, err := LoadLoggerConfig(envMap(nil))
	require.NoError(t, err)
	assert.Equal(t, &LoggerConfig{Env: "dev", Level: "info"}, cfg)

	cfg, err = LoadLoggerConfig(envMap(map[string]string{"ENV": "ci", "LOG_LEVEL": "debug"}))
	require.NoError(t, err)
	assert.Equal(t, "ci", cfg.Env)
	assert.Equal(t, "debug", cfg.Level)

	_, err = LoadLoggerConfig(envMap(map[string]string{"LOG_LEVEL": "loud"}))
	assert.Error(t, err)
}
