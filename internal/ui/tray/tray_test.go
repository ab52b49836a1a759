package tray

import (
	"testing"

	"mondaymadness/internal/i18n"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTray struct {
	menus []*fyne.Menu
}

func (tray *fakeTray) SetSystemTrayMenu(menu *fyne.Menu) { tray.menus = append(tray.menus, menu) }

func itemByLabel(menu *fyne.Menu, label string) *fyne.MenuItem {
	for _, item := range menu.Items {
		if item.Label == label {
			return item
		}
	}
	return nil
}

func TestMenuDispatchesCallbacks(t *testing.T) {
	i18n.SetLang("en")
	var calls []string
	desk := &fakeTray{}
	manager := New(desk, Callbacks{
		OnToggle:   func() { calls = append(calls, "toggle") },
		OnReset:    func() { calls = append(calls, "reset") },
		OnAddShare: func() { calls = append(calls, "share") },
		OnQuit:     func() { calls = append(calls, "quit") },
	})
	require.NotEmpty(t, desk.menus)

	menu := manager.Menu()
	itemByLabel(menu, "Start").Action()
	itemByLabel(menu, "Reset").Action()
	itemByLabel(menu, "Add shared link").Action()
	itemByLabel(menu, "Quit").Action()
	itemByLabel(menu, "Preferences").Action()

	assert.Equal(t, []string{"toggle", "reset", "share", "quit"}, calls)
}

func TestStatusAndRunningLabels(t *testing.T) {
	i18n.SetLang("en")
	manager := New(nil, Callbacks{})
	assert.Equal(t, "Ready", manager.statusItem.Label)
	assert.True(t, manager.statusItem.Disabled)

	manager.SetRunning(true)
	manager.SetStatus("Work 1/8")
	assert.Equal(t, "Work 1/8 ▶", manager.statusItem.Label)
	assert.NotNil(t, itemByLabel(manager.Menu(), "Pause"))

	manager.SetRunning(false)
	manager.SetStatus("Rest 1/8")
	assert.Equal(t, "Rest 1/8", manager.statusItem.Label)
	assert.NotNil(t, itemByLabel(manager.Menu(), "Start"))
}
