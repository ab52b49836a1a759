package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"mondaymadness/internal/core/model"
	"mondaymadness/internal/ui/preferences"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlPreset struct {
	WorkMillis  int64     `yaml:"work_ms"`
	RestMillis  int64     `yaml:"rest_ms"`
	Repetitions int       `yaml:"repetitions"`
	SavedAt     time.Time `yaml:"saved_at,omitempty"`
}

type yamlShare struct {
	ID       string    `yaml:"id"`
	URL      string    `yaml:"url"`
	SharedAt time.Time `yaml:"shared_at"`
}

type yamlSettings struct {
	Preset   *yamlPreset `yaml:"preset,omitempty"`
	MusicDir string      `yaml:"music_dir,omitempty"`
	Language string      `yaml:"language,omitempty"`
	Shares   []yamlShare `yaml:"shares,omitempty"`
}

// Store persists settings, the last preset and received shares in a single
// YAML document.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore returns a store backed by the user's config directory.
func NewStore(appName string) (*Store, error) {
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return nil, err
	}
	return NewStoreAt(configPath), nil
}

// NewStoreAt returns a store backed by the given file.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Path returns the settings file location.
func (store *Store) Path() string {
	return store.path
}

// LoadSettings reads user preferences from YAML.
// If the config file does not exist, default settings are returned.
func (store *Store) LoadSettings() (preferences.Settings, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	settings := preferences.DefaultSettings()
	fileData, err := store.readLocked()
	if err != nil {
		return settings, err
	}
	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML. Stored shares are kept.
func (store *Store) SaveSettings(settings preferences.Settings) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	fileData, err := store.readLocked()
	if err != nil {
		return err
	}
	fileData.Preset = presetToYaml(settings.Preset)
	fileData.MusicDir = settings.MusicDir
	fileData.Language = settings.Language
	return store.writeLocked(fileData)
}

// SaveOptions writes the music folder and language. The stored preset and
// shares are left untouched.
func (store *Store) SaveOptions(settings preferences.Settings) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	fileData, err := store.readLocked()
	if err != nil {
		return err
	}
	fileData.MusicDir = settings.MusicDir
	fileData.Language = settings.Language
	return store.writeLocked(fileData)
}

// LoadPreset returns the last saved preset, or the default one.
func (store *Store) LoadPreset() (model.Preset, error) {
	settings, err := store.LoadSettings()
	return settings.Preset, err
}

// SavePreset stores preset as the most recently used one.
func (store *Store) SavePreset(preset model.Preset) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	fileData, err := store.readLocked()
	if err != nil {
		return err
	}
	if preset.SavedAt.IsZero() {
		preset.SavedAt = time.Now()
	}
	fileData.Preset = presetToYaml(preset)
	return store.writeLocked(fileData)
}

// RecordShare saves url as a share received at the given time. A URL that
// was shared before only gets its timestamp bumped; created reports whether
// a new record was added.
func (store *Store) RecordShare(url string, at time.Time) (share model.Share, created bool, err error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return model.Share{}, false, fmt.Errorf("%w: empty share url", model.ErrInvalidArgument)
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	fileData, err := store.readLocked()
	if err != nil {
		return model.Share{}, false, err
	}

	index := -1
	for i, existing := range fileData.Shares {
		if existing.URL == url {
			index = i
			break
		}
	}
	if index >= 0 {
		fileData.Shares[index].SharedAt = at
	} else {
		fileData.Shares = append(fileData.Shares, yamlShare{
			ID:       uuid.NewString(),
			URL:      url,
			SharedAt: at,
		})
		index = len(fileData.Shares) - 1
		created = true
	}

	if err := store.writeLocked(fileData); err != nil {
		return model.Share{}, false, err
	}
	return shareFromYaml(fileData.Shares[index]), created, nil
}

// Shares returns every stored share, most recent first.
func (store *Store) Shares() ([]model.Share, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	fileData, err := store.readLocked()
	if err != nil {
		return nil, err
	}
	shares := make([]model.Share, 0, len(fileData.Shares))
	for _, item := range fileData.Shares {
		shares = append(shares, shareFromYaml(item))
	}
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].SharedAt.After(shares[j].SharedAt)
	})
	return shares, nil
}

func (store *Store) readLocked() (yamlSettings, error) {
	var fileData yamlSettings
	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileData, nil
		}
		return fileData, fmt.Errorf("read settings file: %w", err)
	}
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return fileData, fmt.Errorf("parse settings yaml: %w", err)
	}
	return fileData, nil
}

func (store *Store) writeLocked(fileData yamlSettings) error {
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(store.path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}

func resolveConfigPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.Preset != nil {
		settings.Preset = presetFromYaml(*fileData.Preset, settings.Preset)
	}
	settings.MusicDir = fileData.MusicDir
	settings.Language = fileData.Language
}

// presetFromYaml keeps fallback values for fields the file leaves unset.
// Range checks are left to the interval sequence.
func presetFromYaml(fileData yamlPreset, fallback model.Preset) model.Preset {
	preset := fallback
	if fileData.WorkMillis != 0 {
		preset.Work = time.Duration(fileData.WorkMillis) * time.Millisecond
	}
	preset.Rest = time.Duration(fileData.RestMillis) * time.Millisecond
	if fileData.Repetitions != 0 {
		preset.Repetitions = fileData.Repetitions
	}
	preset.SavedAt = fileData.SavedAt
	return preset
}

func presetToYaml(preset model.Preset) *yamlPreset {
	return &yamlPreset{
		WorkMillis:  preset.Work.Milliseconds(),
		RestMillis:  preset.Rest.Milliseconds(),
		Repetitions: preset.Repetitions,
		SavedAt:     preset.SavedAt,
	}
}

func shareFromYaml(item yamlShare) model.Share {
	return model.Share{
		ID:       item.ID,
		URL:      item.URL,
		SharedAt: item.SharedAt,
	}
}
