package timer

import "time"

// State represents the current Controller mode.
type State string

const (
	StateStopped State = "stopped"
	StateRunning State = "running"
	StatePaused  State = "paused"
)

// Direction is the sweep direction of the dial.
type Direction string

const (
	Clockwise     Direction = "clockwise"
	Anticlockwise Direction = "anticlockwise"
)

// Reversed returns the opposite direction.
func (direction Direction) Reversed() Direction {
	if direction == Anticlockwise {
		return Clockwise
	}
	return Anticlockwise
}

// ParseDirection maps a config value onto a Direction, defaulting to Clockwise.
func ParseDirection(value string) Direction {
	if Direction(value) == Anticlockwise {
		return Anticlockwise
	}
	return Clockwise
}

// Presenter receives the visible consequences of state transitions.
type Presenter interface {
	SetState(state State)
	SetDirection(direction Direction)
	DisplayRemaining(remaining time.Duration, ok bool)
	DisplayTotal(total time.Duration, ok bool)
	AppendHistory(duration time.Duration)
	PlayNotificationSound()
}

// WakeLock keeps the device awake while the timer runs.
type WakeLock interface {
	Acquire() error
	Release() error
}

// MultiPresenter fans every call out to several presenters in order.
type MultiPresenter []Presenter

func (presenters MultiPresenter) SetState(state State) {
	for _, presenter := range presenters {
		presenter.SetState(state)
	}
}

func (presenters MultiPresenter) SetDirection(direction Direction) {
	for _, presenter := range presenters {
		presenter.SetDirection(direction)
	}
}

func (presenters MultiPresenter) DisplayRemaining(remaining time.Duration, ok bool) {
	for _, presenter := range presenters {
		presenter.DisplayRemaining(remaining, ok)
	}
}

func (presenters MultiPresenter) DisplayTotal(total time.Duration, ok bool) {
	for _, presenter := range presenters {
		presenter.DisplayTotal(total, ok)
	}
}

func (presenters MultiPresenter) AppendHistory(duration time.Duration) {
	for _, presenter := range presenters {
		presenter.AppendHistory(duration)
	}
}

// PlayNotificationSound is forwarded only to the first presenter so a sound plays once.
func (presenters MultiPresenter) PlayNotificationSound() {
	if len(presenters) > 0 {
		presenters[0].PlayNotificationSound()
	}
}

type noopWakeLock struct{}

func (noopWakeLock) Acquire() error { return nil }
func (noopWakeLock) Release() error { return nil }
