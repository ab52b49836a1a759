package model

import "time"

// Preset is the last work/rest/repetitions triple the user configured.
type Preset struct {
	Work        time.Duration
	Rest        time.Duration
	Repetitions int
	SavedAt     time.Time
}

// DefaultPreset returns the preset used before the user saved one.
func DefaultPreset() Preset {
	return Preset{
		Work:        30 * time.Second,
		Rest:        30 * time.Second,
		Repetitions: 8,
	}
}

// Share is a validated link someone shared with the app.
type Share struct {
	ID       string
	URL      string
	SharedAt time.Time
}
