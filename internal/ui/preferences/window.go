package preferences

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"mondaymadness/internal/core/interval"
	"mondaymadness/internal/core/model"
	"mondaymadness/internal/i18n"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window   fyne.Window
	settings Settings
	onSave   func(Settings) error
	work     *widget.Entry
	rest     *widget.Entry
	reps     *widget.Entry
	musicDir *widget.Entry
}

// New creates a preferences window. onSave receives settings whose preset
// already passed interval validation; an error it returns is shown to the
// user and keeps the window open.
func New(app fyne.App, settings Settings, onSave func(Settings) error) *Window {
	window := app.NewWindow("Monday Madness – " + i18n.T("Preferences"))

	prefs := &Window{
		window:   window,
		settings: settings,
		onSave:   onSave,
		work:     widget.NewEntry(),
		rest:     widget.NewEntry(),
		reps:     widget.NewEntry(),
		musicDir: widget.NewEntry(),
	}
	prefs.fill(settings)

	browse := widget.NewButton("…", func() {
		dialog.ShowFolderOpen(func(folder fyne.ListableURI, err error) {
			if err != nil || folder == nil {
				return
			}
			prefs.musicDir.SetText(folder.Path())
		}, window)
	})

	form := container.NewVBox(
		widget.NewForm(
			widget.NewFormItem(i18n.T("Work (seconds)"), prefs.work),
			widget.NewFormItem(i18n.T("Rest (seconds)"), prefs.rest),
			widget.NewFormItem(i18n.T("Repetitions"), prefs.reps),
			widget.NewFormItem(i18n.T("Music folder"), container.NewBorder(nil, nil, nil, browse, prefs.musicDir)),
		),
	)

	saveButton := widget.NewButton(i18n.T("Save"), prefs.handleSave)
	cancelButton := widget.NewButton(i18n.T("Cancel"), func() {
		prefs.fill(prefs.settings)
		window.Hide()
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.SetCloseIntercept(window.Hide)
	window.Resize(fyne.NewSize(420, 260))

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.fill(settings)
}

func (prefs *Window) fill(settings Settings) {
	prefs.work.SetText(formatSeconds(settings.Preset.Work))
	prefs.rest.SetText(formatSeconds(settings.Preset.Rest))
	prefs.reps.SetText(strconv.Itoa(settings.Preset.Repetitions))
	prefs.musicDir.SetText(settings.MusicDir)
}

func (prefs *Window) handleSave() {
	preset, err := ParsePreset(prefs.work.Text, prefs.rest.Text, prefs.reps.Text)
	if err != nil {
		dialog.ShowError(err, prefs.window)
		return
	}

	settings := prefs.settings
	settings.Preset = preset
	settings.MusicDir = strings.TrimSpace(prefs.musicDir.Text)

	if prefs.onSave != nil {
		if err := prefs.onSave(settings); err != nil {
			dialog.ShowError(err, prefs.window)
			return
		}
	}
	prefs.settings = settings
	prefs.window.Hide()
}

// maxSeconds bounds a single interval to one day.
const maxSeconds = 24 * 60 * 60

// ParsePreset turns form input into a preset and rejects anything the
// interval sequence would refuse.
func ParsePreset(work, rest, reps string) (model.Preset, error) {
	workSeconds, err := parseNonNegativeInt(work, maxSeconds)
	if err != nil {
		return model.Preset{}, fmt.Errorf("work: %w", err)
	}
	restSeconds, err := parseNonNegativeInt(rest, maxSeconds)
	if err != nil {
		return model.Preset{}, fmt.Errorf("rest: %w", err)
	}
	repetitions, err := parseNonNegativeInt(reps, interval.MaxRepetitions)
	if err != nil {
		return model.Preset{}, fmt.Errorf("repetitions: %w", err)
	}

	preset := model.Preset{
		Work:        time.Duration(workSeconds) * time.Second,
		Rest:        time.Duration(restSeconds) * time.Second,
		Repetitions: repetitions,
	}
	if _, err := interval.New(preset.Work, preset.Rest, preset.Repetitions); err != nil {
		return model.Preset{}, err
	}
	return preset, nil
}

func parseNonNegativeInt(value string, limit int) (int, error) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a whole number", model.ErrInvalidArgument, value)
	}
	if parsed < 0 {
		return 0, fmt.Errorf("%w: %d is negative", model.ErrInvalidArgument, parsed)
	}
	if parsed > limit {
		return 0, fmt.Errorf("%w: %d is larger than %d", model.ErrInvalidArgument, parsed, limit)
	}
	return parsed, nil
}

func formatSeconds(duration time.Duration) string {
	return strconv.Itoa(int(duration / time.Second))
}
