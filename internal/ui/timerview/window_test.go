package timerview

import (
	"errors"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"

	"pigstimer/internal/core/timer"
)

type stubNotifier struct {
	err   error
	plays int
}

func (notifier *stubNotifier) PlayAsync(done func(error)) {
	notifier.plays++
	done(notifier.err)
}

func newTestWindow(t *testing.T, notifier Notifier, actions Actions) *Window {
	t.Helper()
	app := test.NewTempApp(t)
	return New(app, "Pigs Timer", nil, notifier, actions)
}

func TestNew_BuildsWithoutFormOrNotifier(t *testing.T) {
	view := New(test.NewTempApp(t), "Pigs Timer", nil, nil, Actions{})

	assert.Equal(t, "-", view.remainingLabel.Text)
	assert.Equal(t, "Total: -", view.totalLabel.Text)
	assert.Equal(t, "History: -", view.historyLabel.Text)
	assert.NotPanics(t, view.PlayNotificationSound)
}

func TestWindow_ButtonsFollowState(t *testing.T) {
	view := newTestWindow(t, nil, Actions{})

	assert.False(t, view.startButton.Disabled())
	assert.True(t, view.pauseButton.Disabled())
	assert.True(t, view.stopButton.Disabled())

	view.SetState(timer.StateRunning)
	assert.True(t, view.startButton.Disabled())
	assert.False(t, view.pauseButton.Disabled())
	assert.Equal(t, "Pause", view.pauseButton.Text)

	view.SetState(timer.StatePaused)
	assert.Equal(t, "Resume", view.pauseButton.Text)
	assert.False(t, view.stopButton.Disabled())
}

func TestWindow_PauseButtonDispatchesByState(t *testing.T) {
	var calls []string
	view := newTestWindow(t, nil, Actions{
		OnPause:  func() { calls = append(calls, "pause") },
		OnResume: func() { calls = append(calls, "resume") },
	})

	view.SetState(timer.StateRunning)
	test.Tap(view.pauseButton)
	view.SetState(timer.StatePaused)
	test.Tap(view.pauseButton)

	assert.Equal(t, []string{"pause", "resume"}, calls)
}

func TestWindow_DialTapTogglesDirection(t *testing.T) {
	toggles := 0
	view := newTestWindow(t, nil, Actions{OnToggleDirection: func() { toggles++ }})

	test.Tap(view.dial)

	assert.Equal(t, 1, toggles)
}

func TestWindow_Labels(t *testing.T) {
	view := newTestWindow(t, nil, Actions{})

	view.DisplayTotal(5*time.Minute, true)
	view.DisplayRemaining(90*time.Second, true)
	assert.Equal(t, "Total: 05:00", view.totalLabel.Text)
	assert.Equal(t, "01:30", view.remainingLabel.Text)

	view.DisplayRemaining(0, false)
	view.DisplayTotal(0, false)
	assert.Equal(t, "-", view.remainingLabel.Text)
	assert.Equal(t, "Total: -", view.totalLabel.Text)

	view.AppendHistory(time.Minute)
	view.AppendHistory(3 * time.Minute)
	assert.Equal(t, "History: 2 intervals, mean 02:00", view.historyLabel.Text)
	assert.Equal(t, 2, view.historyList.Length())
}

func TestWindow_SoundFailureShowsWarning(t *testing.T) {
	notifier := &stubNotifier{err: errors.New("no audio device")}
	view := newTestWindow(t, notifier, Actions{})

	view.PlayNotificationSound()
	assert.True(t, view.warning.Visible())
	assert.Contains(t, view.warning.Text, "no audio device")

	notifier.err = nil
	view.PlayNotificationSound()
	assert.False(t, view.warning.Visible())
	assert.Equal(t, 2, notifier.plays)
}
