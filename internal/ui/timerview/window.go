package timerview

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"pigstimer/internal/core/timer"
	"pigstimer/internal/ui/display"
)

// Notifier plays the expiry sound off the UI thread and reports the outcome.
type Notifier interface {
	PlayAsync(done func(error))
}

// Actions defines the handlers behind the window controls.
type Actions struct {
	OnStart           func()
	OnPause           func()
	OnResume          func()
	OnStop            func()
	OnToggleDirection func()
}

// Window is the main timer window. It implements timer.Presenter; every
// update is marshalled onto the fyne thread.
type Window struct {
	window         fyne.Window
	actions        Actions
	notifier       Notifier
	dial           *Dial
	remainingLabel *canvas.Text
	totalLabel     *widget.Label
	historyLabel   *widget.Label
	historyList    *widget.List
	startButton    *widget.Button
	pauseButton    *widget.Button
	stopButton     *widget.Button
	warning        *widget.Label
	state          timer.State
	total          time.Duration
	hasTotal       bool
	history        timer.History
}

var _ timer.Presenter = (*Window)(nil)

// New creates the timer window. form is placed above the dial and may be nil.
func New(app fyne.App, title string, form fyne.CanvasObject, notifier Notifier, actions Actions) *Window {
	window := app.NewWindow(title)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	view := &Window{
		window:   window,
		actions:  actions,
		notifier: notifier,
		state:    timer.StateStopped,
	}

	view.dial = NewDial(func() {
		if view.actions.OnToggleDirection != nil {
			view.actions.OnToggleDirection()
		}
	})

	view.remainingLabel = canvas.NewText(display.NoValue, color.NRGBA{R: 196, G: 94, B: 112, A: 255})
	view.remainingLabel.Alignment = fyne.TextAlignCenter
	view.remainingLabel.TextStyle = fyne.TextStyle{Bold: true}
	view.remainingLabel.TextSize = 36

	view.totalLabel = widget.NewLabelWithStyle("Total: "+display.NoValue, fyne.TextAlignCenter, fyne.TextStyle{})
	view.historyLabel = widget.NewLabel(historySummary(timer.Summary{}))
	view.historyList = widget.NewList(
		func() int { return view.history.Len() },
		func() fyne.CanvasObject { return widget.NewLabel("00:00") },
		func(id widget.ListItemID, object fyne.CanvasObject) {
			object.(*widget.Label).SetText(display.FormatDuration(view.history.At(id), true))
		},
	)

	view.startButton = widget.NewButton("Start", func() { view.invoke(view.actions.OnStart) })
	view.pauseButton = widget.NewButton("Pause", view.handlePauseToggle)
	view.stopButton = widget.NewButton("Stop", func() { view.invoke(view.actions.OnStop) })

	view.warning = widget.NewLabel("")
	view.warning.Importance = widget.WarningImportance
	view.warning.Wrapping = fyne.TextWrapWord
	view.warning.Hide()

	top := container.NewVBox()
	if form != nil {
		top.Add(form)
		top.Add(widget.NewSeparator())
	}
	top.Add(container.NewCenter(view.dial))
	top.Add(view.remainingLabel)
	top.Add(view.totalLabel)
	top.Add(container.NewGridWithColumns(3, view.startButton, view.pauseButton, view.stopButton))
	top.Add(view.warning)
	top.Add(view.historyLabel)

	window.SetContent(container.NewBorder(top, nil, nil, nil, view.historyList))
	window.Resize(fyne.NewSize(360, 640))

	view.applyStateUnsafe()
	return view
}

// Show displays the window.
func (view *Window) Show() {
	view.window.Show()
	view.window.RequestFocus()
}

// Hide hides the window without closing the app.
func (view *Window) Hide() {
	view.window.Hide()
}

// SetCloseIntercept overrides what closing the window does.
func (view *Window) SetCloseIntercept(callback func()) {
	view.window.SetCloseIntercept(callback)
}

// SetState implements timer.Presenter.
func (view *Window) SetState(state timer.State) {
	fyne.Do(func() {
		view.state = state
		if state == timer.StateStopped {
			view.dial.SetProgress(0, false)
		}
		view.applyStateUnsafe()
	})
}

// SetDirection implements timer.Presenter.
func (view *Window) SetDirection(direction timer.Direction) {
	fyne.Do(func() {
		view.dial.SetDirection(direction)
	})
}

// DisplayRemaining implements timer.Presenter.
func (view *Window) DisplayRemaining(remaining time.Duration, ok bool) {
	fyne.Do(func() {
		view.remainingLabel.Text = display.FormatDuration(remaining, ok)
		view.remainingLabel.Refresh()
		if ok && view.hasTotal {
			view.dial.SetProgress(elapsedFraction(view.total, remaining), view.state == timer.StateRunning)
		}
	})
}

// DisplayTotal implements timer.Presenter.
func (view *Window) DisplayTotal(total time.Duration, ok bool) {
	fyne.Do(func() {
		view.total = total
		view.hasTotal = ok
		view.totalLabel.SetText("Total: " + display.FormatDuration(total, ok))
	})
}

// AppendHistory implements timer.Presenter.
func (view *Window) AppendHistory(duration time.Duration) {
	fyne.Do(func() {
		view.history.Append(duration)
		view.historyLabel.SetText(historySummary(view.history.Summary()))
		view.historyList.Refresh()
		view.historyList.ScrollToBottom()
	})
}

// PlayNotificationSound implements timer.Presenter.
func (view *Window) PlayNotificationSound() {
	if view.notifier == nil {
		return
	}
	view.notifier.PlayAsync(func(err error) {
		fyne.Do(func() {
			view.setWarningUnsafe(err)
		})
	})
}

func (view *Window) handlePauseToggle() {
	switch view.state {
	case timer.StateRunning:
		view.invoke(view.actions.OnPause)
	case timer.StatePaused:
		view.invoke(view.actions.OnResume)
	}
}

func (view *Window) invoke(action func()) {
	if action != nil {
		action()
	}
}

func (view *Window) setWarningUnsafe(err error) {
	if err == nil {
		view.warning.SetText("")
		view.warning.Hide()
		return
	}
	view.warning.SetText("Could not play the notification sound: " + err.Error())
	view.warning.Show()
}

func (view *Window) applyStateUnsafe() {
	controls := controlsFor(view.state)
	setEnabled(view.startButton, controls.start)
	setEnabled(view.pauseButton, controls.pause)
	setEnabled(view.stopButton, controls.stop)
	view.pauseButton.SetText(controls.pauseLabel)
}

type controlState struct {
	start      bool
	pause      bool
	stop       bool
	pauseLabel string
}

func controlsFor(state timer.State) controlState {
	switch state {
	case timer.StateRunning:
		return controlState{pause: true, stop: true, pauseLabel: "Pause"}
	case timer.StatePaused:
		return controlState{pause: true, stop: true, pauseLabel: "Resume"}
	default:
		return controlState{start: true, pauseLabel: "Pause"}
	}
}

func setEnabled(button *widget.Button, enabled bool) {
	if enabled {
		button.Enable()
		return
	}
	button.Disable()
}
