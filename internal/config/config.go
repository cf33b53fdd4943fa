/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.
// Unknown fields are preserved-by-ignore on unmarshal (yaml drops extras).

type BackendConfig struct {
	BaseURL     string `yaml:"base_url"`
	TimeoutMs   int    `yaml:"timeout_ms"`
	TLSInsecure bool   `yaml:"tls_insecure"`
	// Token is not stored on disk; it lives in the OS keychain.
}

type GeneralConfig struct {
	TelemetryOptIn bool   `yaml:"telemetry_opt_in"`
	Theme          string `yaml:"theme"` // "system" | "light" | "dark" (informational for now)
	EnableServer   bool   `yaml:"enable_server"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

// EditorConfig holds typing-surface preferences consumed by the editor
// controller and caret projection.
type EditorConfig struct {
	FontFamily  string  `yaml:"font_family"`
	FontSizePt  float32 `yaml:"font_size_pt"`
	LineSpacing float32 `yaml:"line_spacing"` // extra px added per line
	AutoFormat  bool    `yaml:"auto_format"`  // element auto-transitions on Enter
	LongPressMs int     `yaml:"long_press_ms"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	General       GeneralConfig `yaml:"general"`
	Backend       BackendConfig `yaml:"backend"`
	Logging       LoggingConfig `yaml:"logging"`
	Editor        EditorConfig  `yaml:"editor"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		General:       GeneralConfig{TelemetryOptIn: false, Theme: "system", EnableServer: false},
		Backend:       BackendConfig{BaseURL: "http://localhost:8080", TimeoutMs: 15000, TLSInsecure: false},
		Logging:       LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
		Editor:        EditorConfig{FontFamily: "Courier Prime", FontSizePt: 12, LineSpacing: 0, AutoFormat: true, LongPressMs: 500},
	}
}

// Env var names used as overrides.
const (
	EnvBackendURL       = "GSW_BACKEND_URL"
	EnvBackendTimeoutMs = "GSW_BACKEND_TIMEOUT_MS"
	EnvBackendTLSInsec  = "GSW_TLS_INSECURE"
	EnvTelemetryOptIn   = "GSW_TELEMETRY_OPT_IN"
	EnvEnableServer     = "GSW_ENABLE_SERVER"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "GSW_LOG_LEVEL"
	EnvLogFormat = "GSW_LOG_FORMAT"
	EnvLogSource = "GSW_LOG_SOURCE"
	EnvLogFile   = "GSW_LOG_FILE"
)

// Service/keys for OS keyring.
const (
	keyringService = "GoScreenWriter"
	keyringToken   = "backend_token"
)

// tokenStore abstracts keyring, so we can stub in tests.
var tokenStore TokenStore = &osKeyring{}

type TokenStore interface {
	Get(service, key string) (string, error)
	Set(service, key, value string) error
	Delete(service, key string) error
}

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "GoScreenWriter")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "GoScreenWriter")
	default: // linux and others
		base = filepath.Join(os.Getenv("HOME"), ".config", "goscreenwriter")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and merges environment overrides.
// It also loads the backend token from keyring (not kept inside the struct; returned separately).
func Load() (AppConfig, string, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, "", err
	}
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)
	// token from keyring
	tok, _ := tokenStore.Get(keyringService, keyringToken)
	return cfg, tok, nil
}

// Save writes the user config YAML and persists the token into the OS keyring (if non-empty).
func Save(cfg AppConfig, token string) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return err
	}
	if token != "" {
		if err := tokenStore.Set(keyringService, keyringToken, token); err != nil {
			return err
		}
	}
	return nil
}

// ClearToken removes the stored backend token from the OS keyring.
func ClearToken() error {
	return tokenStore.Delete(keyringService, keyringToken)
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if src.General.Theme != "" {
		dst.General.Theme = src.General.Theme
	}
	// booleans: copy directly from src (file) so user preferences persist
	dst.General.TelemetryOptIn = src.General.TelemetryOptIn
	dst.General.EnableServer = src.General.EnableServer
	if src.Backend.BaseURL != "" {
		dst.Backend.BaseURL = src.Backend.BaseURL
	}
	if src.Backend.TimeoutMs != 0 {
		dst.Backend.TimeoutMs = src.Backend.TimeoutMs
	}
	dst.Backend.TLSInsecure = src.Backend.TLSInsecure
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
	// editor
	if strings.TrimSpace(src.Editor.FontFamily) != "" {
		dst.Editor.FontFamily = strings.TrimSpace(src.Editor.FontFamily)
	}
	if src.Editor.FontSizePt > 0 {
		dst.Editor.FontSizePt = src.Editor.FontSizePt
	}
	if src.Editor.LineSpacing > 0 {
		dst.Editor.LineSpacing = src.Editor.LineSpacing
	}
	dst.Editor.AutoFormat = src.Editor.AutoFormat
	if src.Editor.LongPressMs > 0 {
		dst.Editor.LongPressMs = src.Editor.LongPressMs
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvBackendURL)); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvBackendTimeoutMs)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Backend.TimeoutMs = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvBackendTLSInsec)); v != "" {
		cfg.Backend.TLSInsecure = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvTelemetryOptIn)); v != "" {
		cfg.General.TelemetryOptIn = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvEnableServer)); v != "" {
		cfg.General.EnableServer = parseBool(v)
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

func parseBool(v string) bool {
	lv := strings.ToLower(v)
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	switch key {
	case "backend.base_url":
		if os.Getenv(EnvBackendURL) != "" {
			return EnvBackendURL, true
		}
	case "backend.timeout_ms":
		if os.Getenv(EnvBackendTimeoutMs) != "" {
			return EnvBackendTimeoutMs, true
		}
	case "backend.tls_insecure":
		if os.Getenv(EnvBackendTLSInsec) != "" {
			return EnvBackendTLSInsec, true
		}
	case "general.telemetry_opt_in":
		if os.Getenv(EnvTelemetryOptIn) != "" {
			return EnvTelemetryOptIn, true
		}
	case "general.enable_server":
		if os.Getenv(EnvEnableServer) != "" {
			return EnvEnableServer, true
		}
	case "logging.level":
		if os.Getenv(EnvLogLevel) != "" {
			return EnvLogLevel, true
		}
	case "logging.format":
		if os.Getenv(EnvLogFormat) != "" {
			return EnvLogFormat, true
		}
	case "logging.source":
		if os.Getenv(EnvLogSource) != "" {
			return EnvLogSource, true
		}
	case "logging.file":
		if os.Getenv(EnvLogFile) != "" {
			return EnvLogFile, true
		}
	}
	return "", false
}

// EffectiveTimeout returns the backend timeout as a duration-like milliseconds string for http.Client.
func (b BackendConfig) EffectiveTimeout() string {
	if b.TimeoutMs <= 0 {
		return fmt.Sprintf("%dms", Defaults().Backend.TimeoutMs)
	}
	return fmt.Sprintf("%dms", b.TimeoutMs)
}
