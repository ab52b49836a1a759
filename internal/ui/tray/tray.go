package tray

import (
	"fmt"

	"mondaymadness/internal/i18n"

	"fyne.io/fyne/v2"
)

// MenuHost shows a tray menu. desktop.App satisfies it.
type MenuHost interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnToggle      func()
	OnReset       func()
	OnPreferences func()
	OnAddShare    func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app         MenuHost
	statusItem  *fyne.MenuItem
	toggleItem  *fyne.MenuItem
	callbacks   Callbacks
	running     bool
	statusLabel string
}

// New creates a tray manager with the provided callbacks. app may be nil when
// the platform has no tray; the manager then only tracks state.
func New(app MenuHost, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:         app,
		callbacks:   callbacks,
		statusLabel: i18n.T("Ready"),
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.toggleItem = fyne.NewMenuItem(i18n.T("Start"), invoke(&manager.callbacks.OnToggle))

	manager.refreshStatus()
	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.refreshStatus()
}

// SetRunning flips the start/pause entry.
func (manager *Manager) SetRunning(running bool) {
	manager.running = running
	if running {
		manager.toggleItem.Label = i18n.T("Pause")
	} else {
		manager.toggleItem.Label = i18n.T("Start")
	}
	manager.refreshMenu()
}

// Menu builds the current tray menu.
func (manager *Manager) Menu() *fyne.Menu {
	return fyne.NewMenu("Monday Madness",
		manager.statusItem,
		fyne.NewMenuItem(i18n.T("Show timer"), invoke(&manager.callbacks.OnShow)),
		manager.toggleItem,
		fyne.NewMenuItem(i18n.T("Reset"), invoke(&manager.callbacks.OnReset)),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(i18n.T("Add shared link"), invoke(&manager.callbacks.OnAddShare)),
		fyne.NewMenuItem(i18n.T("Preferences"), invoke(&manager.callbacks.OnPreferences)),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(i18n.T("Quit"), invoke(&manager.callbacks.OnQuit)),
	)
}

func (manager *Manager) refreshStatus() {
	status := manager.statusLabel
	if manager.running {
		status = fmt.Sprintf("%s ▶", status)
	}
	manager.statusItem.Label = status
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.Menu())
	}
}

func invoke(handler *func()) func() {
	return func() {
		if *handler != nil {
			(*handler)()
		}
	}
}
