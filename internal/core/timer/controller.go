package timer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/looplab/fsm"
	"github.com/rs/zerolog"

	"pigstimer/internal/core/distribution"
)

const (
	eventStart   = "start"
	eventPause   = "pause"
	eventResume  = "resume"
	eventStop    = "stop"
	eventExpire  = "expire"
	eventReverse = "reverse"
)

// DefaultRefreshInterval is how often the remaining time is republished.
const DefaultRefreshInterval = 100 * time.Millisecond

// Sampler draws the length of the next countdown.
type Sampler interface {
	Duration(params distribution.Parameters) time.Duration
}

// Options contains runtime options for Controller.
type Options struct {
	Clock           Clock
	RefreshInterval time.Duration
	Direction       Direction
	Logger          zerolog.Logger
}

// Controller is the countdown state machine.
//
// Every exported method holds the controller lock for its whole duration, so
// user actions, refresh ticks and expiry callbacks never interleave.
type Controller struct {
	mu         sync.Mutex
	machine    *fsm.FSM
	options    Options
	logger     zerolog.Logger
	params     distribution.Parameters
	sampler    Sampler
	presenter  Presenter
	wakeLock   WakeLock
	history    History
	direction  Direction
	total      time.Duration
	remaining  time.Duration
	endTime    time.Time
	expiry     Stopper
	generation uint64
}

// New creates a stopped Controller and publishes its initial state.
func New(params distribution.Parameters, sampler Sampler, presenter Presenter, wakeLock WakeLock, options Options) *Controller {
	if options.Clock == nil {
		options.Clock = RealClock{}
	}
	if options.RefreshInterval <= 0 {
		options.RefreshInterval = DefaultRefreshInterval
	}
	if options.Direction != Anticlockwise {
		options.Direction = Clockwise
	}
	if wakeLock == nil {
		wakeLock = noopWakeLock{}
	}

	controller := &Controller{
		machine:   newMachine(),
		options:   options,
		logger:    options.Logger.With().Str("component", "timer").Logger(),
		params:    params,
		sampler:   sampler,
		presenter: presenter,
		wakeLock:  wakeLock,
		direction: options.Direction,
	}

	presenter.SetState(StateStopped)
	presenter.SetDirection(controller.direction)
	presenter.DisplayRemaining(0, false)
	presenter.DisplayTotal(0, false)
	return controller
}

func newMachine() *fsm.FSM {
	stopped := string(StateStopped)
	running := string(StateRunning)
	paused := string(StatePaused)
	return fsm.NewFSM(
		stopped,
		fsm.Events{
			{Name: eventStart, Src: []string{stopped}, Dst: running},
			{Name: eventPause, Src: []string{running}, Dst: paused},
			{Name: eventResume, Src: []string{paused}, Dst: running},
			{Name: eventStop, Src: []string{running, paused}, Dst: stopped},
			{Name: eventExpire, Src: []string{running}, Dst: running},
			{Name: eventReverse, Src: []string{stopped}, Dst: stopped},
			{Name: eventReverse, Src: []string{paused}, Dst: paused},
		},
		fsm.Callbacks{},
	)
}

// SetParameters replaces the distribution used from the next sample onwards.
func (controller *Controller) SetParameters(params distribution.Parameters) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.params = params
	controller.logger.Debug().
		Float64("location", params.Location).
		Float64("scale", params.Scale).
		Float64("shape", params.Shape).
		Msg("parameters updated")
}

// Start samples a new duration and begins counting down.
func (controller *Controller) Start() {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if !controller.fireLocked(eventStart) {
		return
	}
	controller.beginIntervalLocked()
	controller.acquireWakeLockLocked()
	controller.presenter.SetState(StateRunning)
}

// Pause freezes the countdown and keeps the remainder for Resume.
func (controller *Controller) Pause() {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if !controller.fireLocked(eventPause) {
		return
	}
	controller.cancelExpiryLocked()
	remaining := controller.endTime.Sub(controller.options.Clock.Now())
	if remaining < 0 {
		remaining = 0
	}
	controller.remaining = remaining
	controller.endTime = time.Time{}
	controller.releaseWakeLockLocked()
	controller.presenter.SetState(StatePaused)
	controller.logger.Debug().Dur("remaining", remaining).Msg("paused")
}

// Resume continues a paused countdown with the retained remainder.
func (controller *Controller) Resume() {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if !controller.fireLocked(eventResume) {
		return
	}
	controller.scheduleLocked(controller.remaining)
	controller.remaining = 0
	controller.acquireWakeLockLocked()
	controller.presenter.SetState(StateRunning)
}

// Stop abandons the current countdown.
func (controller *Controller) Stop() {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if !controller.fireLocked(eventStop) {
		return
	}
	controller.cancelExpiryLocked()
	controller.endTime = time.Time{}
	controller.remaining = 0
	controller.total = 0
	controller.releaseWakeLockLocked()
	controller.presenter.DisplayTotal(0, false)
	controller.presenter.DisplayRemaining(0, false)
	controller.presenter.SetState(StateStopped)
}

// ToggleDirection flips the direction while stopped or paused and reports whether it did.
func (controller *Controller) ToggleDirection() bool {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if !controller.fireLocked(eventReverse) {
		return false
	}
	controller.reverseLocked()
	return true
}

// Refresh publishes the remaining time for the current state.
func (controller *Controller) Refresh() {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	switch State(controller.machine.Current()) {
	case StateRunning:
		remaining := controller.endTime.Sub(controller.options.Clock.Now())
		if remaining < 0 {
			remaining = 0
		}
		controller.presenter.DisplayRemaining(remaining, true)
	case StateStopped:
		controller.presenter.DisplayRemaining(0, false)
	}
}

// Run refreshes the display every RefreshInterval until ctx is done.
func (controller *Controller) Run(ctx context.Context) {
	ticker := time.NewTicker(controller.options.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			controller.Refresh()
		}
	}
}

// Close cancels any pending expiry and releases the wake lock.
func (controller *Controller) Close() {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.cancelExpiryLocked()
	if controller.machine.Is(string(StateRunning)) {
		controller.releaseWakeLockLocked()
	}
}

// State returns the current state.
func (controller *Controller) State() State {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return State(controller.machine.Current())
}

// Direction returns the current direction.
func (controller *Controller) Direction() Direction {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.direction
}

// EndTime returns when the running countdown expires.
func (controller *Controller) EndTime() (time.Time, bool) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if !controller.machine.Is(string(StateRunning)) {
		return time.Time{}, false
	}
	return controller.endTime, true
}

// Remaining returns the time left, frozen while paused.
func (controller *Controller) Remaining() (time.Duration, bool) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	switch State(controller.machine.Current()) {
	case StateRunning:
		remaining := controller.endTime.Sub(controller.options.Clock.Now())
		if remaining < 0 {
			remaining = 0
		}
		return remaining, true
	case StatePaused:
		return controller.remaining, true
	default:
		return 0, false
	}
}

// Total returns the full length of the current countdown.
func (controller *Controller) Total() (time.Duration, bool) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if controller.machine.Is(string(StateStopped)) {
		return 0, false
	}
	return controller.total, true
}

// History returns the log of started countdowns.
func (controller *Controller) History() *History {
	return &controller.history
}

func (controller *Controller) expire(generation uint64) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if generation != controller.generation {
		return
	}
	if !controller.fireLocked(eventExpire) {
		return
	}
	controller.expiry = nil
	controller.logger.Info().Dur("duration", controller.total).Msg("countdown expired")
	controller.presenter.PlayNotificationSound()
	controller.reverseLocked()
	controller.beginIntervalLocked()
}

func (controller *Controller) fireLocked(event string) bool {
	err := controller.machine.Event(context.Background(), event)
	if err == nil {
		return true
	}
	var noTransition fsm.NoTransitionError
	if errors.As(err, &noTransition) {
		return true
	}
	controller.logger.Debug().
		Str("event", event).
		Str("state", controller.machine.Current()).
		Err(err).
		Msg("transition ignored")
	return false
}

func (controller *Controller) beginIntervalLocked() {
	duration := controller.sampler.Duration(controller.params)
	controller.total = duration
	controller.scheduleLocked(duration)
	controller.history.Append(duration)
	controller.presenter.DisplayTotal(duration, true)
	controller.presenter.AppendHistory(duration)
	controller.logger.Info().Dur("duration", duration).Str("direction", string(controller.direction)).Msg("countdown started")
}

func (controller *Controller) scheduleLocked(duration time.Duration) {
	controller.cancelExpiryLocked()
	generation := controller.generation
	controller.endTime = controller.options.Clock.Now().Add(duration)
	controller.expiry = controller.options.Clock.AfterFunc(duration, func() {
		controller.expire(generation)
	})
}

func (controller *Controller) cancelExpiryLocked() {
	if controller.expiry != nil {
		controller.expiry.Stop()
		controller.expiry = nil
	}
	controller.generation++
}

func (controller *Controller) reverseLocked() {
	controller.direction = controller.direction.Reversed()
	controller.presenter.SetDirection(controller.direction)
}

func (controller *Controller) acquireWakeLockLocked() {
	if err := controller.wakeLock.Acquire(); err != nil {
		controller.logger.Warn().Err(err).Msg("acquire wake lock")
	}
}

func (controller *Controller) releaseWakeLockLocked() {
	if err := controller.wakeLock.Release(); err != nil {
		controller.logger.Warn().Err(err).Msg("release wake lock")
	}
}
