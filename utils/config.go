package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"elroy/session"
)

// Config represents the application configuration.
type Config struct {
	UI       UIConfig       `json:"ui"`
	Behavior BehaviorConfig `json:"behavior"`
}

// UIConfig represents window and theme configuration.
type UIConfig struct {
	Theme        string `json:"theme"`
	FontSize     int    `json:"font_size"`
	WindowWidth  int    `json:"window_width"`
	WindowHeight int    `json:"window_height"`
}

// BehaviorConfig holds the startup defaults for the behavior settings.
// These seed the session at launch; runtime changes are not written back.
type BehaviorConfig struct {
	Tone           string `json:"tone"`
	Depth          string `json:"depth"`
	CitationMode   string `json:"citation_mode"`
	ExtractTables  bool   `json:"extract_tables"`
	DescribeImages bool   `json:"describe_images"`
	SystemPrompt   string `json:"system_prompt"`
}

// Settings converts the configured defaults into session settings,
// falling back to the built-in defaults for unknown values.
func (b BehaviorConfig) Settings() session.Settings {
	st := session.DefaultSettings()

	for _, tone := range session.Tones() {
		if string(tone) == b.Tone {
			st.Tone = tone
		}
	}
	for _, depth := range session.Depths() {
		if string(depth) == b.Depth {
			st.Depth = depth
		}
	}
	for _, mode := range session.CitationModes() {
		if string(mode) == b.CitationMode {
			st.CitationMode = mode
		}
	}
	st.ExtractTables = b.ExtractTables
	st.DescribeImages = b.DescribeImages
	if b.SystemPrompt != "" {
		st.SystemPrompt = b.SystemPrompt
	}

	return st
}

// LoadConfig loads configuration from file.
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// SaveConfig saves configuration to file.
func SaveConfig(configPath string, config *Config) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetConfigPath returns the default config path.
func GetConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "./config/default.json"
	}

	return filepath.Join(configDir, "elroy", "config.json")
}

// EnsureDefaultConfig creates a default config file if it doesn't exist.
func EnsureDefaultConfig() (string, error) {
	configPath := GetConfigPath()

	if _, err := os.Stat(configPath); err == nil {
		return configPath, nil
	}

	defaults := session.DefaultSettings()
	defaultConfig := &Config{
		UI: UIConfig{
			Theme:        "light",
			FontSize:     14,
			WindowWidth:  900,
			WindowHeight: 700,
		},
		Behavior: BehaviorConfig{
			Tone:           string(defaults.Tone),
			Depth:          string(defaults.Depth),
			CitationMode:   string(defaults.CitationMode),
			ExtractTables:  defaults.ExtractTables,
			DescribeImages: defaults.DescribeImages,
			SystemPrompt:   defaults.SystemPrompt,
		},
	}

	if err := SaveConfig(configPath, defaultConfig); err != nil {
		return "", err
	}

	return configPath, nil
}
