package platform

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInhibitor struct {
	inhibits   int
	uninhibits int
	reason     string
	err        error
}

func (inh *fakeInhibitor) inhibit(reason string) error {
	inh.inhibits++
	inh.reason = reason
	return inh.err
}

func (inh *fakeInhibitor) uninhibit() error {
	inh.uninhibits++
	return nil
}

func TestWakeLock_Idempotent(t *testing.T) {
	backend := &fakeInhibitor{}
	lock := newWakeLock(backend, zerolog.Nop())

	require.NoError(t, lock.Acquire())
	require.NoError(t, lock.Acquire())
	assert.True(t, lock.Held())
	assert.Equal(t, 1, backend.inhibits)
	assert.Equal(t, wakeLockReason, backend.reason)

	require.NoError(t, lock.Release())
	require.NoError(t, lock.Release())
	assert.False(t, lock.Held())
	assert.Equal(t, 1, backend.uninhibits)
}

func TestWakeLock_ReleaseWithoutAcquire(t *testing.T) {
	backend := &fakeInhibitor{}
	lock := newWakeLock(backend, zerolog.Nop())

	require.NoError(t, lock.Release())
	assert.Equal(t, 0, backend.uninhibits)
}

func TestWakeLock_FailedAcquireIsRetried(t *testing.T) {
	backend := &fakeInhibitor{err: errors.New("bus timeout")}
	lock := newWakeLock(backend, zerolog.Nop())

	assert.Error(t, lock.Acquire())
	assert.False(t, lock.Held())

	backend.err = nil
	require.NoError(t, lock.Acquire())
	assert.True(t, lock.Held())
	assert.Equal(t, 2, backend.inhibits)
}

func TestWakeLock_UnsupportedDisablesLock(t *testing.T) {
	backend := &fakeInhibitor{err: ErrWakeLockUnsupported}
	lock := newWakeLock(backend, zerolog.Nop())

	err := lock.Acquire()
	assert.ErrorIs(t, err, ErrWakeLockUnsupported)

	assert.NoError(t, lock.Acquire())
	assert.NoError(t, lock.Release())
	assert.Equal(t, 1, backend.inhibits)
	assert.Equal(t, 0, backend.uninhibits)
}
