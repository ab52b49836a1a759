package main

import (
	"fmt"
	"log"
	"time"

	"mondaymadness/internal/audio"
	"mondaymadness/internal/core/model"
	"mondaymadness/internal/core/timer"
	"mondaymadness/internal/i18n"
	"mondaymadness/internal/platform"
	"mondaymadness/internal/session"
	"mondaymadness/internal/share"
	"mondaymadness/internal/storage"
	"mondaymadness/internal/ui/countdown"
	"mondaymadness/internal/ui/preferences"
	"mondaymadness/internal/ui/tray"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
)

const appName = "MondayMadness"

func main() {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		log.Printf("single instance: %v", err)
		if err := platform.Activate(appName); err != nil {
			log.Printf("single instance: %v", err)
		}
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := app.NewWithID("com.mondaymadness.app")
	fyneApp.SetIcon(theme.MediaPlayIcon())

	store, err := storage.NewStore(appName)
	if err != nil {
		log.Printf("settings store: %v", err)
		return
	}
	settings, err := store.LoadSettings()
	if err != nil {
		log.Printf("load settings: %v", err)
	}
	i18n.Detect(settings.Language)

	player := audio.NewBeepPlayer(nil, nil)
	loadMusic(player, settings.MusicDir)

	controller, err := session.New(store, player, timer.NewSystemClock())
	if err != nil {
		log.Printf("session: %v", err)
		return
	}
	settings.Preset = controller.Preset()

	timerWindow := countdown.New(fyneApp, controller)

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) error {
		if err := savePreferences(controller, store, updated); err != nil {
			return err
		}
		if updated.MusicDir != settings.MusicDir {
			loadMusic(player, updated.MusicDir)
		}
		settings = updated
		return nil
	})

	quit := func() {
		timerWindow.Stop()
		controller.Close()
		fyneApp.Quit()
	}

	var trayManager *tray.Manager
	desktopApp, hasTray := fyneApp.(desktop.App)
	var trayHost tray.MenuHost
	if hasTray {
		trayHost = desktopApp
	}
	trayManager = tray.New(trayHost, tray.Callbacks{
		OnShow:        timerWindow.Show,
		OnToggle:      timerWindow.Toggle,
		OnReset:       timerWindow.Reset,
		OnPreferences: prefsWindow.Show,
		OnAddShare: func() {
			addShare(fyneApp, store)
		},
		OnQuit: quit,
	})

	timerWindow.SetOnChange(func(snapshot session.Snapshot) {
		trayManager.SetRunning(snapshot.Running)
		trayManager.SetStatus(countdown.Caption(snapshot))
		if hasTray {
			if snapshot.Running {
				desktopApp.SetSystemTrayIcon(theme.MediaPlayIcon())
			} else {
				desktopApp.SetSystemTrayIcon(theme.MediaPauseIcon())
			}
		}
	})

	if hasTray {
		desktopApp.SetSystemTrayIcon(theme.MediaPauseIcon())
		timerWindow.SetCloseIntercept(timerWindow.Hide)
	} else {
		log.Printf("system tray unsupported on this platform")
		timerWindow.SetCloseIntercept(quit)
	}

	go guard.Serve(func() {
		fyne.Do(timerWindow.Show)
	})

	timerWindow.Show()
	fyneApp.Run()
}

type presetApplier interface {
	Apply(preset model.Preset) error
}

type optionsSaver interface {
	SaveOptions(settings preferences.Settings) error
}

// savePreferences applies the preset, which also persists it, and then
// stores the remaining options. A rejected preset writes nothing.
func savePreferences(applier presetApplier, saver optionsSaver, updated preferences.Settings) error {
	if err := applier.Apply(updated.Preset); err != nil {
		return err
	}
	if err := saver.SaveOptions(updated); err != nil {
		return fmt.Errorf("save options: %w", err)
	}
	return nil
}

func loadMusic(player *audio.BeepPlayer, dir string) {
	if dir == "" {
		player.Load(nil, nil)
		return
	}
	tracks, format, err := audio.LoadPlaylist(dir)
	if err != nil {
		log.Printf("music: %v", err)
		player.Load(nil, nil)
		return
	}
	out, err := audio.NewSpeakerOutput(format)
	if err != nil {
		log.Printf("music: speaker: %v", err)
		player.Load(nil, nil)
		return
	}
	log.Printf("music: loaded %d tracks from %s", len(tracks), dir)
	player.Load(tracks, out)
}

func addShare(fyneApp fyne.App, store *storage.Store) {
	text := fyneApp.Clipboard().Content()
	link, err := share.Extract(text)
	if err != nil {
		log.Printf("share: %v", err)
		notify(fyneApp, i18n.T("Add shared link"), err.Error())
		return
	}
	saved, created, err := store.RecordShare(link, time.Now())
	if err != nil {
		log.Printf("share: record %s: %v", link, err)
		notify(fyneApp, i18n.T("Add shared link"), err.Error())
		return
	}
	if created {
		log.Printf("share: stored %s as %s", saved.URL, saved.ID)
	} else {
		log.Printf("share: %s already stored", saved.URL)
	}
	notify(fyneApp, i18n.T("Add shared link"), saved.URL)
}

func notify(fyneApp fyne.App, title, content string) {
	fyneApp.SendNotification(fyne.NewNotification(title, content))
}
