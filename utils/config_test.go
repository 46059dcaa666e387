package utils

import (
	"path/filepath"
	"testing"

	"elroy/session"
)

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	config := &Config{
		UI: UIConfig{
			Theme:        "dark",
			FontSize:     16,
			WindowWidth:  1024,
			WindowHeight: 768,
		},
		Behavior: BehaviorConfig{
			Tone:         "formal",
			Depth:        "detailed",
			CitationMode: "always",
			SystemPrompt: "custom",
		},
	}

	if err := SaveConfig(path, config); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if loaded.UI != config.UI {
		t.Errorf("UI config mismatch: %+v vs %+v", loaded.UI, config.UI)
	}
	if loaded.Behavior != config.Behavior {
		t.Errorf("behavior config mismatch: %+v vs %+v", loaded.Behavior, config.Behavior)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing config file should be an error")
	}
}

func TestBehaviorSettingsMapping(t *testing.T) {
	b := BehaviorConfig{
		Tone:           "friendly",
		Depth:          "concise",
		CitationMode:   "never",
		ExtractTables:  true,
		DescribeImages: false,
		SystemPrompt:   "be brief",
	}

	st := b.Settings()
	if st.Tone != session.ToneFriendly {
		t.Errorf("expected friendly tone, got %q", st.Tone)
	}
	if st.Depth != session.DepthConcise {
		t.Errorf("expected concise depth, got %q", st.Depth)
	}
	if st.CitationMode != session.CitationNever {
		t.Errorf("expected never citations, got %q", st.CitationMode)
	}
	if st.SystemPrompt != "be brief" {
		t.Errorf("expected custom prompt, got %q", st.SystemPrompt)
	}
}

func TestBehaviorSettingsFallsBackOnUnknownValues(t *testing.T) {
	b := BehaviorConfig{
		Tone:         "sarcastic",
		Depth:        "endless",
		CitationMode: "sometimes",
	}

	st := b.Settings()
	defaults := session.DefaultSettings()
	if st.Tone != defaults.Tone {
		t.Errorf("unknown tone should fall back to %q, got %q", defaults.Tone, st.Tone)
	}
	if st.Depth != defaults.Depth {
		t.Errorf("unknown depth should fall back to %q, got %q", defaults.Depth, st.Depth)
	}
	if st.CitationMode != defaults.CitationMode {
		t.Errorf("unknown citation mode should fall back to %q, got %q", defaults.CitationMode, st.CitationMode)
	}
}
