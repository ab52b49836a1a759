package countdown

import (
	"fmt"
	"image/color"
	"log"
	"time"

	"mondaymadness/internal/core/interval"
	"mondaymadness/internal/i18n"
	"mondaymadness/internal/session"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Driver is the workout controller the window renders and controls.
type Driver interface {
	Frame() session.Snapshot
	Toggle() error
	Reset() error
}

// Window shows the countdown ring and the start/pause controls.
type Window struct {
	window       fyne.Window
	driver       Driver
	ring         *canvas.Raster
	readout      *canvas.Text
	caption      *canvas.Text
	toggleButton *widget.Button
	resetButton  *widget.Button
	animation    *fyne.Animation
	looping      bool
	snapshot     session.Snapshot
	onChange     func(session.Snapshot)
}

// New creates the countdown window.
func New(app fyne.App, driver Driver) *Window {
	window := app.NewWindow("Monday Madness")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	view := &Window{
		window: window,
		driver: driver,
	}

	view.ring = canvas.NewRasterWithPixels(func(x, y, w, h int) color.Color {
		return ringPixel(x, y, w, h, view.snapshot.Fraction, kindColor(view.snapshot.Kind, view.snapshot.Started))
	})

	view.readout = canvas.NewText("0.0", theme.Color(theme.ColorNameForeground))
	view.readout.Alignment = fyne.TextAlignCenter
	view.readout.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	view.readout.TextSize = 42

	view.caption = canvas.NewText("", theme.Color(theme.ColorNameForeground))
	view.caption.Alignment = fyne.TextAlignCenter
	view.caption.TextSize = 18

	view.toggleButton = widget.NewButtonWithIcon(i18n.T("Start"), theme.MediaPlayIcon(), view.Toggle)
	view.resetButton = widget.NewButtonWithIcon(i18n.T("Reset"), theme.MediaReplayIcon(), view.Reset)

	dial := container.New(&dialLayout{}, view.ring, view.readout, view.caption)
	buttons := container.NewGridWithColumns(2, view.toggleButton, view.resetButton)
	window.SetContent(container.NewBorder(nil, buttons, nil, nil, dial))
	window.Resize(fyne.NewSize(360, 420))

	view.animation = fyne.NewAnimation(time.Second, func(float32) {
		view.render()
	})
	view.animation.Curve = fyne.AnimationLinear
	view.animation.RepeatCount = fyne.AnimationRepeatForever

	view.render()
	return view
}

// SetOnChange registers a callback fired after every frame whose running
// state or interval changed.
func (view *Window) SetOnChange(handler func(session.Snapshot)) {
	view.onChange = handler
}

// SetCloseIntercept forwards window close requests.
func (view *Window) SetCloseIntercept(handler func()) {
	view.window.SetCloseIntercept(handler)
}

// Show displays the window and starts the frame loop.
func (view *Window) Show() {
	view.window.Show()
	if !view.looping {
		view.animation.Start()
		view.looping = true
	}
}

// Hide hides the window. The workout keeps running.
func (view *Window) Hide() {
	view.window.Hide()
}

// Stop halts the frame loop.
func (view *Window) Stop() {
	view.animation.Stop()
	view.looping = false
}

// Toggle starts or pauses the workout.
func (view *Window) Toggle() {
	if err := view.driver.Toggle(); err != nil {
		log.Printf("toggle workout: %v", err)
	}
	view.render()
}

// Reset discards the workout and prepares a fresh one.
func (view *Window) Reset() {
	if err := view.driver.Reset(); err != nil {
		log.Printf("reset workout: %v", err)
	}
	view.render()
}

// Snapshot returns the last rendered frame.
func (view *Window) Snapshot() session.Snapshot {
	return view.snapshot
}

func (view *Window) render() {
	previous := view.snapshot
	view.snapshot = view.driver.Frame()
	current := view.snapshot

	if current.Text != previous.Text {
		view.readout.Text = current.Text
		view.readout.Refresh()
	}
	if current.Fraction != previous.Fraction || current.Kind != previous.Kind || current.Started != previous.Started {
		view.ring.Refresh()
	}

	caption := Caption(current)
	if caption != view.caption.Text {
		view.caption.Text = caption
		view.caption.Refresh()
	}

	if current.Running {
		view.toggleButton.SetText(i18n.T("Pause"))
		view.toggleButton.SetIcon(theme.MediaPauseIcon())
	} else {
		view.toggleButton.SetText(i18n.T("Start"))
		view.toggleButton.SetIcon(theme.MediaPlayIcon())
	}

	if view.onChange != nil && (current.Running != previous.Running || current.Kind != previous.Kind ||
		current.Repetition != previous.Repetition || current.Started != previous.Started) {
		view.onChange(current)
	}
}

// Caption describes the current interval, e.g. "Work 2/8".
func Caption(snapshot session.Snapshot) string {
	if !snapshot.Started {
		return fmt.Sprintf("%s · %d×", i18n.T("Ready"), snapshot.Repetitions)
	}
	label := i18n.T("Work")
	if snapshot.Kind == interval.Rest {
		label = i18n.T("Rest")
	}
	return fmt.Sprintf("%s %d/%d", label, snapshot.Repetition, snapshot.Repetitions)
}

type dialLayout struct{}

func (layout *dialLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 3 {
		return
	}
	ring := objects[0]
	readout := objects[1]
	caption := objects[2]

	pad := theme.Padding() * 2
	captionSize := caption.MinSize()
	side := size.Height - captionSize.Height - pad*3
	if size.Width-pad*2 < side {
		side = size.Width - pad*2
	}
	if side < 0 {
		side = 0
	}

	ringX := (size.Width - side) / 2
	ring.Move(fyne.NewPos(ringX, pad))
	ring.Resize(fyne.NewSize(side, side))

	readoutSize := readout.MinSize()
	readout.Move(fyne.NewPos(ringX, pad+(side-readoutSize.Height)/2))
	readout.Resize(fyne.NewSize(side, readoutSize.Height))

	caption.Move(fyne.NewPos(0, pad*2+side))
	caption.Resize(fyne.NewSize(size.Width, captionSize.Height))
}

func (layout *dialLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) < 3 {
		return fyne.NewSize(0, 0)
	}
	readoutSize := objects[1].MinSize()
	captionSize := objects[2].MinSize()
	side := readoutSize.Width * 1.6
	width := side
	if captionSize.Width > width {
		width = captionSize.Width
	}
	return fyne.NewSize(width, side+captionSize.Height+theme.Padding()*6)
}
