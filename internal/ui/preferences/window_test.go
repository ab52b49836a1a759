package preferences

import (
	"testing"
	"time"

	"mondaymadness/internal/core/model"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePreset(t *testing.T) {
	preset, err := ParsePreset(" 45 ", "15", "6")
	require.NoError(t, err)
	assert.Equal(t, model.Preset{Work: 45 * time.Second, Rest: 15 * time.Second, Repetitions: 6}, preset)

	single, err := ParsePreset("90", "0", "1")
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), single.Rest)
}

func TestParsePresetAcceptsLimits(t *testing.T) {
	preset, err := ParsePreset("86400", "86400", "999")
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, preset.Work)
	assert.Equal(t, 999, preset.Repetitions)
}

func TestParsePresetRejects(t *testing.T) {
	cases := map[string][3]string{
		"letters":             {"abc", "10", "1"},
		"negative rest":       {"10", "-5", "1"},
		"zero work":           {"0", "10", "1"},
		"zero repetitions":    {"10", "10", "0"},
		"no rest with repeat": {"10", "0", "3"},
		"decimal":             {"10.5", "10", "1"},
		"huge repetitions":    {"10", "10", "10000000000"},
		"work over a day":     {"86401", "10", "1"},
		"rest overflowing":    {"10", "9223372037", "2"},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParsePreset(input[0], input[1], input[2])
			assert.ErrorIs(t, err, model.ErrInvalidArgument)
		})
	}
}

func TestSaveHandsValidatedSettingsToCallback(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	var saved []Settings
	prefs := New(app, DefaultSettings(), func(settings Settings) error {
		saved = append(saved, settings)
		return nil
	})

	assert.Equal(t, "30", prefs.work.Text)
	assert.Equal(t, "8", prefs.reps.Text)

	prefs.work.SetText("20")
	prefs.rest.SetText("10")
	prefs.reps.SetText("4")
	prefs.musicDir.SetText(" /music ")
	prefs.handleSave()

	require.Len(t, saved, 1)
	assert.Equal(t, 20*time.Second, saved[0].Preset.Work)
	assert.Equal(t, 10*time.Second, saved[0].Preset.Rest)
	assert.Equal(t, 4, saved[0].Preset.Repetitions)
	assert.Equal(t, "/music", saved[0].MusicDir)

	prefs.reps.SetText("0")
	prefs.handleSave()
	assert.Len(t, saved, 1)
}
