//go:build windows

package platform

import (
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sys/windows"
)

const (
	esContinuous      = 0x80000000
	esSystemRequired  = 0x00000001
	esDisplayRequired = 0x00000002
)

// executionStateInhibitor owns one locked OS thread, since
// SetThreadExecutionState applies to the calling thread only.
type executionStateInhibitor struct {
	once     sync.Once
	requests chan executionRequest
}

type executionRequest struct {
	flags  uint32
	result chan error
}

func newInhibitor(string) inhibitor {
	return &executionStateInhibitor{requests: make(chan executionRequest)}
}

func (inh *executionStateInhibitor) inhibit(string) error {
	return inh.set(esContinuous | esSystemRequired | esDisplayRequired)
}

func (inh *executionStateInhibitor) uninhibit() error {
	return inh.set(esContinuous)
}

func (inh *executionStateInhibitor) set(flags uint32) error {
	inh.once.Do(inh.start)
	result := make(chan error, 1)
	inh.requests <- executionRequest{flags: flags, result: result}
	return <-result
}

func (inh *executionStateInhibitor) start() {
	go func() {
		runtime.LockOSThread()
		kernel32 := windows.NewLazySystemDLL("kernel32.dll")
		setThreadExecutionState := kernel32.NewProc("SetThreadExecutionState")
		for request := range inh.requests {
			previous, _, err := setThreadExecutionState.Call(uintptr(request.flags))
			if previous == 0 {
				request.result <- fmt.Errorf("set thread execution state: %w", err)
				continue
			}
			request.result <- nil
		}
	}()
}
