package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Settings are the GUI's persisted last-used choices.
type Settings struct {
	MapName    string `yaml:"map_name"`
	SourceMode string `yaml:"source_mode"`
	Source     string `yaml:"source"`
	TTSBackend string `yaml:"tts_backend"`
}

const (
	DefaultMapName    = "de_dust2"
	DefaultSourceMode = "mock"
	DefaultTTSBackend = "auto"
)

var (
	supportedSourceModes = map[string]struct{}{"mock": {}, "screen": {}, "stream": {}}
	supportedTTSBackends = map[string]struct{}{"auto": {}, "native": {}, "console": {}}
)

// DefaultSettings returns the settings used on first run.
func DefaultSettings() Settings {
	return Settings{
		MapName:    DefaultMapName,
		SourceMode: DefaultSourceMode,
		Source:     "",
		TTSBackend: DefaultTTSBackend,
	}
}

// SettingsStore reads/writes the app settings YAML file.
type SettingsStore struct {
	path string
}

// NewSettingsStore ensures the parent directory exists.
func NewSettingsStore(path string) (*SettingsStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("store: create settings dir: %w", err)
	}
	return &SettingsStore{path: path}, nil
}

// Path returns the settings file path.
func (s *SettingsStore) Path() string { return s.path }

// Load returns defaults when the file is absent; unknown modes and
// backends are normalized back to defaults.
func (s *SettingsStore) Load() (Settings, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return DefaultSettings(), fmt.Errorf("store: read settings: %w", err)
	}
	var raw Settings
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return DefaultSettings(), fmt.Errorf("store: parse settings: %w", err)
	}
	return normalizeSettings(raw), nil
}

// Save normalizes and writes the settings, returning the path written.
func (s *SettingsStore) Save(settings Settings) (string, error) {
	normalized := normalizeSettings(settings)
	data, err := yaml.Marshal(&normalized)
	if err != nil {
		return "", fmt.Errorf("store: encode settings: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return "", fmt.Errorf("store: write settings: %w", err)
	}
	return s.path, nil
}

func normalizeSettings(in Settings) Settings {
	out := Settings{
		MapName:    strings.TrimSpace(in.MapName),
		SourceMode: strings.ToLower(strings.TrimSpace(in.SourceMode)),
		Source:     strings.TrimSpace(in.Source),
		TTSBackend: strings.ToLower(strings.TrimSpace(in.TTSBackend)),
	}
	if out.MapName == "" {
		out.MapName = DefaultMapName
	}
	if _, ok := supportedSourceModes[out.SourceMode]; !ok {
		out.SourceMode = DefaultSourceMode
	}
	if _, ok := supportedTTSBackends[out.TTSBackend]; !ok {
		out.TTSBackend = DefaultTTSBackend
	}
	return out
}

// SourceModes lists the supported source mode selector values.
func SourceModes() []string { return []string{"mock", "screen", "stream"} }
