package config

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// DefaultBaseURL is the public demo storefront
const DefaultBaseURL = "https://www.saucedemo.com/"

// BrowserConfig holds the storefront address and how to drive a browser against it
type BrowserConfig struct {
	BaseURL    string
	Engine     string
	Name       string
	Headless   bool
	SlowMo     time.Duration
	ControlURL string
	Stealth    bool
}

// LoadBrowserConfig loads browser configuration from environment variables
func LoadBrowserConfig(getenv func(string) string) (*BrowserConfig, error) {
	config := &BrowserConfig{
		BaseURL:    envOr(getenv, "SAUCE_BASE_URL", DefaultBaseURL),
		Engine:     envOr(getenv, "BROWSER_ENGINE", "playwright"),
		Name:       envOr(getenv, "BROWSER_NAME", "chromium"),
		Headless:   true,
		ControlURL: getenv("ROD_CONTROL_URL"),
	}

	if _, err := url.ParseRequestURI(config.BaseURL); err != nil {
		return nil, fmt.Errorf("SAUCE_BASE_URL is not a valid URL: %w", err)
	}

	switch config.Engine {
	case "playwright", "rod":
	default:
		return nil, fmt.Errorf("BROWSER_ENGINE must be playwright or rod, got %q", config.Engine)
	}

	switch config.Name {
	case "chromium":
	case "firefox", "webkit":
		if config.Engine == "rod" {
			return nil, fmt.Errorf("BROWSER_NAME %q is not supported by the rod engine", config.Name)
		}
	default:
		return nil, fmt.Errorf("BROWSER_NAME must be chromium, firefox or webkit, got %q", config.Name)
	}

	if v := getenv("BROWSER_HEADLESS"); v != "" {
		headless, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("BROWSER_HEADLESS must be a boolean: %w", err)
		}
		config.Headless = headless
	}

	if v := getenv("ROD_STEALTH"); v != "" {
		stealth, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("ROD_STEALTH must be a boolean: %w", err)
		}
		config.Stealth = stealth
	}

	if v := getenv("BROWSER_SLOWMO_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms < 0 {
			return nil, fmt.Errorf("BROWSER_SLOWMO_MS must be a non-negative integer, got %q", v)
		}
		config.SlowMo = time.Duration(ms) * time.Millisecond
	}

	return config, nil
}

func envOr(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}
