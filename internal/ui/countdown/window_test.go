package countdown

import (
	"errors"
	"image/color"
	"testing"

	"mondaymadness/internal/core/interval"
	"mondaymadness/internal/i18n"
	"mondaymadness/internal/session"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
)

type fakeDriver struct {
	snapshot  session.Snapshot
	frames    int
	toggles   int
	resets    int
	toggleErr error
}

func (driver *fakeDriver) Frame() session.Snapshot {
	driver.frames++
	return driver.snapshot
}

func (driver *fakeDriver) Toggle() error {
	driver.toggles++
	if driver.toggleErr != nil {
		return driver.toggleErr
	}
	driver.snapshot.Running = !driver.snapshot.Running
	driver.snapshot.Started = true
	return nil
}

func (driver *fakeDriver) Reset() error {
	driver.resets++
	driver.snapshot = session.Snapshot{Kind: interval.Work, Fraction: 1, Text: "30.0", Repetition: 1, Repetitions: 8}
	return nil
}

func TestRingPixelGeometry(t *testing.T) {
	lit := color.NRGBA{R: 1, G: 2, B: 3, A: 255}

	// Centre and corners are outside the ring.
	assert.Equal(t, color.Transparent, ringPixel(50, 50, 100, 100, 1, lit))
	assert.Equal(t, color.Transparent, ringPixel(0, 0, 100, 100, 1, lit))
	assert.Equal(t, color.Transparent, ringPixel(1, 1, 0, 0, 1, lit))

	// Just right of twelve o'clock is lit as soon as anything remains.
	assert.Equal(t, lit, ringPixel(51, 2, 100, 100, 0.5, lit))
	// Three o'clock is lit at half, dark at a fifth.
	assert.Equal(t, lit, ringPixel(97, 50, 100, 100, 0.5, lit))
	assert.Equal(t, trackColor, ringPixel(97, 50, 100, 100, 0.2, lit))
	// Nine o'clock needs more than three quarters.
	assert.Equal(t, trackColor, ringPixel(2, 50, 100, 100, 0.5, lit))
	assert.Equal(t, lit, ringPixel(2, 50, 100, 100, 0.9, lit))
	// Nothing is lit once the interval is over.
	assert.Equal(t, trackColor, ringPixel(97, 50, 100, 100, 0, lit))
}

func TestKindColor(t *testing.T) {
	assert.Equal(t, idleColor, kindColor(interval.Work, false))
	assert.Equal(t, workColor, kindColor(interval.Work, true))
	assert.Equal(t, restColor, kindColor(interval.Rest, true))
}

func TestCaption(t *testing.T) {
	i18n.SetLang("en")

	assert.Equal(t, "Ready · 8×", Caption(session.Snapshot{Repetitions: 8}))
	assert.Equal(t, "Work 2/8", Caption(session.Snapshot{Started: true, Kind: interval.Work, Repetition: 2, Repetitions: 8}))
	assert.Equal(t, "Rest 3/4", Caption(session.Snapshot{Started: true, Kind: interval.Rest, Repetition: 3, Repetitions: 4}))
}

func TestWindowRendersDriverState(t *testing.T) {
	i18n.SetLang("en")
	app := test.NewApp()
	defer app.Quit()

	driver := &fakeDriver{snapshot: session.Snapshot{Kind: interval.Work, Fraction: 1, Text: "30.0", Repetition: 1, Repetitions: 8}}
	view := New(app, driver)

	var changes []session.Snapshot
	view.SetOnChange(func(snapshot session.Snapshot) { changes = append(changes, snapshot) })

	assert.Equal(t, "30.0", view.readout.Text)
	assert.Equal(t, "Start", view.toggleButton.Text)

	test.Tap(view.toggleButton)
	assert.Equal(t, 1, driver.toggles)
	assert.Equal(t, "Pause", view.toggleButton.Text)
	assert.Equal(t, "Work 1/8", view.caption.Text)
	assert.Len(t, changes, 1)
	assert.True(t, view.Snapshot().Running)

	driver.snapshot.Text = "12.3"
	view.render()
	assert.Equal(t, "12.3", view.readout.Text)
	assert.Len(t, changes, 1)

	test.Tap(view.resetButton)
	assert.Equal(t, 1, driver.resets)
	assert.Equal(t, "Start", view.toggleButton.Text)
	assert.Equal(t, "Ready · 8×", view.caption.Text)
}

func TestToggleErrorKeepsWindowUsable(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	driver := &fakeDriver{toggleErr: errors.New("finished")}
	view := New(app, driver)

	view.Toggle()
	assert.Equal(t, 1, driver.toggles)
	assert.False(t, view.Snapshot().Running)
}
