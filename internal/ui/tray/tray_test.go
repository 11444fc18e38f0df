package tray

import (
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pigstimer/internal/core/timer"
)

type fakeHost struct {
	menu  *fyne.Menu
	icons []fyne.Resource
}

func (host *fakeHost) SetSystemTrayMenu(menu *fyne.Menu) {
	host.menu = menu
}

func (host *fakeHost) SetSystemTrayIcon(icon fyne.Resource) {
	host.icons = append(host.icons, icon)
}

var (
	activeIcon = fyne.NewStaticResource("active.png", []byte{1})
	idleIcon   = fyne.NewStaticResource("idle.png", []byte{2})
)

func newTestManager(t *testing.T, callbacks Callbacks) (*Manager, *fakeHost) {
	t.Helper()
	test.NewTempApp(t)
	host := &fakeHost{}
	manager := New(host, Icons{Active: activeIcon, Idle: idleIcon}, callbacks)
	return manager, host
}

func TestNew_InstallsMenu(t *testing.T) {
	manager, host := newTestManager(t, Callbacks{})

	require.NotNil(t, host.menu)
	assert.Same(t, manager.Menu(), host.menu)
	assert.Equal(t, "Stopped (clockwise)", manager.statusItem.Label)
	assert.False(t, manager.startItem.Disabled)
	assert.True(t, manager.pauseItem.Disabled)
	assert.True(t, manager.stopItem.Disabled)
	assert.Equal(t, []fyne.Resource{idleIcon}, host.icons)
}

func TestManager_MirrorsState(t *testing.T) {
	manager, host := newTestManager(t, Callbacks{})

	manager.SetState(timer.StateRunning)
	manager.DisplayRemaining(4*time.Minute+12*time.Second, true)
	assert.Equal(t, "Running: 04:12 left (clockwise)", manager.statusItem.Label)
	assert.True(t, manager.startItem.Disabled)
	assert.True(t, manager.directionItem.Disabled)
	assert.Same(t, activeIcon, host.icons[len(host.icons)-1])

	manager.SetState(timer.StatePaused)
	manager.SetDirection(timer.Anticlockwise)
	assert.Equal(t, "Paused: 04:12 left (anticlockwise)", manager.statusItem.Label)
	assert.Equal(t, "Resume", manager.pauseItem.Label)
	assert.False(t, manager.directionItem.Disabled)

	manager.SetState(timer.StateStopped)
	manager.DisplayRemaining(0, false)
	assert.Equal(t, "Stopped (anticlockwise)", manager.statusItem.Label)
	assert.Equal(t, "-", manager.remaining)
	assert.Equal(t, "Pause", manager.pauseItem.Label)
}

func TestManager_PauseItemDispatchesByState(t *testing.T) {
	var calls []string
	manager, _ := newTestManager(t, Callbacks{
		OnPause:  func() { calls = append(calls, "pause") },
		OnResume: func() { calls = append(calls, "resume") },
	})

	manager.SetState(timer.StateRunning)
	manager.pauseItem.Action()
	manager.SetState(timer.StatePaused)
	manager.pauseItem.Action()

	assert.Equal(t, []string{"pause", "resume"}, calls)
}
