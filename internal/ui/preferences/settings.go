package preferences

import (
	"mondaymadness/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	Preset   model.Preset
	MusicDir string
	Language string
}

// DefaultSettings returns default settings for Monday Madness.
func DefaultSettings() Settings {
	return Settings{
		Preset: model.DefaultPreset(),
	}
}
