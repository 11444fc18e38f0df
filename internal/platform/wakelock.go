package platform

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// ErrWakeLockUnsupported indicates the system offers no way to stay awake.
var ErrWakeLockUnsupported = errors.New("wake lock unsupported")

const wakeLockReason = "countdown running"

type inhibitor interface {
	inhibit(reason string) error
	uninhibit() error
}

// WakeLock keeps the display awake while held.
//
// Acquire and Release are idempotent. Once the backend reports
// ErrWakeLockUnsupported the lock turns into a no-op.
type WakeLock struct {
	mu       sync.Mutex
	backend  inhibitor
	logger   zerolog.Logger
	held     bool
	disabled bool
}

// NewWakeLock returns a wake lock backed by the platform-specific inhibitor.
func NewWakeLock(appName string, logger zerolog.Logger) *WakeLock {
	return newWakeLock(newInhibitor(appName), logger)
}

func newWakeLock(backend inhibitor, logger zerolog.Logger) *WakeLock {
	return &WakeLock{
		backend: backend,
		logger:  logger.With().Str("component", "wakelock").Logger(),
	}
}

// Acquire asks the system to keep the display on.
func (lock *WakeLock) Acquire() error {
	lock.mu.Lock()
	defer lock.mu.Unlock()
	if lock.held || lock.disabled {
		return nil
	}
	if err := lock.backend.inhibit(wakeLockReason); err != nil {
		if errors.Is(err, ErrWakeLockUnsupported) {
			lock.disabled = true
		}
		return fmt.Errorf("acquire wake lock: %w", err)
	}
	lock.held = true
	lock.logger.Debug().Msg("wake lock acquired")
	return nil
}

// Release allows the system to sleep again.
func (lock *WakeLock) Release() error {
	lock.mu.Lock()
	defer lock.mu.Unlock()
	if !lock.held {
		return nil
	}
	if err := lock.backend.uninhibit(); err != nil {
		return fmt.Errorf("release wake lock: %w", err)
	}
	lock.held = false
	lock.logger.Debug().Msg("wake lock released")
	return nil
}

// Held reports whether the lock is currently held.
func (lock *WakeLock) Held() bool {
	lock.mu.Lock()
	defer lock.mu.Unlock()
	return lock.held
}
