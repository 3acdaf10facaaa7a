package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SettingsFileName is the default settings file name
const SettingsFileName = "assistant-settings.json"

// AssistantSettings holds persisted user preferences
type AssistantSettings struct {
	DefaultModel string `json:"defaultModel,omitempty" yaml:"defaultModel,omitempty"`
	OpMode       bool   `json:"opMode,omitempty" yaml:"opMode,omitempty"`
}

// DefaultSettingsPath returns the settings file under the user config directory
func DefaultSettingsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(dir, "kiro-session", SettingsFileName), nil
}

// LoadAssistantSettings reads settings from path. JSON and YAML files both
// load. A missing or unreadable file yields zero settings.
func LoadAssistantSettings(path string) AssistantSettings {
	var settings AssistantSettings
	if path == "" {
		return settings
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			LogWarn("Failed to read settings: %v", err)
		}
		return settings
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		LogWarn("Ignoring settings: %v", &ParseError{Source: "settings", Key: path, Err: err})
		return AssistantSettings{}
	}
	return settings
}

// SaveAssistantSettings writes settings to path, as YAML for .yaml/.yml
// files and as indented JSON otherwise.
func SaveAssistantSettings(path string, settings AssistantSettings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(settings)
	default:
		data, err = json.MarshalIndent(settings, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// FallbackModel picks the model used when history carries none: an explicit
// override first, then the configured default.
func (s AssistantSettings) FallbackModel(override string) string {
	if model := strings.TrimSpace(override); model != "" {
		return model
	}
	return strings.TrimSpace(s.DefaultModel)
}
