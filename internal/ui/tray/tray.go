package tray

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"

	"pigstimer/internal/core/timer"
	"pigstimer/internal/ui/display"
)

// Host is the part of desktop.App the tray needs.
type Host interface {
	SetSystemTrayMenu(menu *fyne.Menu)
	SetSystemTrayIcon(icon fyne.Resource)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnStart           func()
	OnPause           func()
	OnResume          func()
	OnStop            func()
	OnToggleDirection func()
	OnShowWindow      func()
	OnQuit            func()
}

// Icons are the tray icons per activity.
type Icons struct {
	Active fyne.Resource
	Idle   fyne.Resource
}

// Manager mirrors the timer in the system tray. It implements timer.Presenter.
type Manager struct {
	host          Host
	callbacks     Callbacks
	icons         Icons
	menu          *fyne.Menu
	statusItem    *fyne.MenuItem
	startItem     *fyne.MenuItem
	pauseItem     *fyne.MenuItem
	stopItem      *fyne.MenuItem
	directionItem *fyne.MenuItem
	state         timer.State
	direction     timer.Direction
	remaining     string
}

var _ timer.Presenter = (*Manager)(nil)

// New creates a tray manager with the provided callbacks.
func New(host Host, icons Icons, callbacks Callbacks) *Manager {
	manager := &Manager{
		host:      host,
		callbacks: callbacks,
		icons:     icons,
		state:     timer.StateStopped,
		direction: timer.Clockwise,
		remaining: display.NoValue,
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true

	manager.startItem = fyne.NewMenuItem("Start", func() { invoke(manager.callbacks.OnStart) })
	manager.pauseItem = fyne.NewMenuItem("Pause", manager.handlePauseToggle)
	manager.stopItem = fyne.NewMenuItem("Stop", func() { invoke(manager.callbacks.OnStop) })
	manager.directionItem = fyne.NewMenuItem("Reverse direction", func() { invoke(manager.callbacks.OnToggleDirection) })

	show := fyne.NewMenuItem("Show window", func() { invoke(manager.callbacks.OnShowWindow) })
	quit := fyne.NewMenuItem("Quit", func() { invoke(manager.callbacks.OnQuit) })
	quit.IsQuit = true

	manager.menu = fyne.NewMenu("Pigs Timer",
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		manager.startItem,
		manager.pauseItem,
		manager.stopItem,
		manager.directionItem,
		fyne.NewMenuItemSeparator(),
		show,
		quit,
	)

	manager.applyStateUnsafe()
	manager.refreshStatusUnsafe()
	if host != nil {
		host.SetSystemTrayMenu(manager.menu)
		manager.applyIconUnsafe()
	}
	return manager
}

// Menu returns the tray menu.
func (manager *Manager) Menu() *fyne.Menu {
	return manager.menu
}

// SetState implements timer.Presenter.
func (manager *Manager) SetState(state timer.State) {
	fyne.Do(func() {
		manager.state = state
		manager.applyStateUnsafe()
		manager.applyIconUnsafe()
		manager.refreshStatusUnsafe()
		manager.refreshMenu()
	})
}

// SetDirection implements timer.Presenter.
func (manager *Manager) SetDirection(direction timer.Direction) {
	fyne.Do(func() {
		manager.direction = direction
		manager.refreshStatusUnsafe()
		manager.refreshMenu()
	})
}

// DisplayRemaining implements timer.Presenter. The menu is only rebuilt when
// the shown text changes.
func (manager *Manager) DisplayRemaining(remaining time.Duration, ok bool) {
	text := display.FormatDuration(remaining, ok)
	fyne.Do(func() {
		if text == manager.remaining {
			return
		}
		manager.remaining = text
		manager.refreshStatusUnsafe()
		manager.refreshMenu()
	})
}

// DisplayTotal implements timer.Presenter.
func (manager *Manager) DisplayTotal(time.Duration, bool) {}

// AppendHistory implements timer.Presenter.
func (manager *Manager) AppendHistory(time.Duration) {}

// PlayNotificationSound implements timer.Presenter; the window owns the sound.
func (manager *Manager) PlayNotificationSound() {}

func (manager *Manager) handlePauseToggle() {
	switch manager.state {
	case timer.StateRunning:
		invoke(manager.callbacks.OnPause)
	case timer.StatePaused:
		invoke(manager.callbacks.OnResume)
	}
}

func (manager *Manager) applyStateUnsafe() {
	running := manager.state == timer.StateRunning
	paused := manager.state == timer.StatePaused

	manager.startItem.Disabled = running || paused
	manager.pauseItem.Disabled = !running && !paused
	manager.stopItem.Disabled = !running && !paused
	manager.directionItem.Disabled = running
	if paused {
		manager.pauseItem.Label = "Resume"
	} else {
		manager.pauseItem.Label = "Pause"
	}
}

func (manager *Manager) applyIconUnsafe() {
	if manager.host == nil {
		return
	}
	icon := manager.icons.Idle
	if manager.state == timer.StateRunning {
		icon = manager.icons.Active
	}
	if icon != nil {
		manager.host.SetSystemTrayIcon(icon)
	}
}

func (manager *Manager) refreshStatusUnsafe() {
	manager.statusItem.Label = statusLine(manager.state, manager.direction, manager.remaining)
}

func (manager *Manager) refreshMenu() {
	manager.menu.Refresh()
}

func statusLine(state timer.State, direction timer.Direction, remaining string) string {
	switch state {
	case timer.StateRunning:
		return fmt.Sprintf("Running: %s left (%s)", remaining, direction)
	case timer.StatePaused:
		return fmt.Sprintf("Paused: %s left (%s)", remaining, direction)
	default:
		return fmt.Sprintf("Stopped (%s)", direction)
	}
}

func invoke(action func()) {
	if action != nil {
		action()
	}
}
