package platform

import (
	"bufio"
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"sync"
	"time"
)

// ErrAlreadyRunning indicates another timer window is already open.
var ErrAlreadyRunning = errors.New("timer already running")

const (
	minInstancePort = 20000
	maxInstancePort = 39999

	activateMessage   = "activate\n"
	activationTimeout = 2 * time.Second
)

// InstanceGuard holds the single-instance lock for the process lifetime.
// Later launches ask the holder to raise its window instead of starting.
type InstanceGuard struct {
	mu       sync.Mutex
	listener net.Listener
}

// AcquireSingleInstance binds a localhost port derived from appName.
//
// When the port is taken, the running instance is asked to activate and
// ErrAlreadyRunning is returned.
func AcquireSingleInstance(appName string) (*InstanceGuard, error) {
	address := instanceAddress(appName)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		if notifyErr := requestActivation(address); notifyErr != nil {
			return nil, fmt.Errorf("%w: %s in use: %v", ErrAlreadyRunning, address, notifyErr)
		}
		return nil, fmt.Errorf("%w: %s in use", ErrAlreadyRunning, address)
	}
	return &InstanceGuard{listener: listener}, nil
}

// OnActivate runs handler on its own goroutine whenever a later launch asks
// this instance to activate. Serving stops on Release.
func (guard *InstanceGuard) OnActivate(handler func()) {
	guard.mu.Lock()
	listener := guard.listener
	guard.mu.Unlock()
	if listener == nil || handler == nil {
		return
	}
	go serveActivations(listener, handler)
}

// Release frees the lock. It is safe on a nil guard.
func (guard *InstanceGuard) Release() error {
	if guard == nil {
		return nil
	}
	guard.mu.Lock()
	defer guard.mu.Unlock()
	if guard.listener == nil {
		return nil
	}
	err := guard.listener.Close()
	guard.listener = nil
	return err
}

// Address returns the bound address.
func (guard *InstanceGuard) Address() string {
	if guard == nil {
		return ""
	}
	guard.mu.Lock()
	defer guard.mu.Unlock()
	if guard.listener == nil {
		return ""
	}
	return guard.listener.Addr().String()
}

func serveActivations(listener net.Listener, handler func()) {
	for {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		if readActivation(conn) {
			handler()
		}
	}
}

func readActivation(conn net.Conn) bool {
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(activationTimeout))
	line, err := bufio.NewReader(conn).ReadString('\n')
	return err == nil && line == activateMessage
}

func requestActivation(address string) error {
	conn, err := net.DialTimeout("tcp", address, activationTimeout)
	if err != nil {
		return fmt.Errorf("dial running instance: %w", err)
	}
	defer conn.Close()
	_ = conn.SetWriteDeadline(time.Now().Add(activationTimeout))
	if _, err := conn.Write([]byte(activateMessage)); err != nil {
		return fmt.Errorf("send activation: %w", err)
	}
	return nil
}

func instanceAddress(appName string) string {
	return fmt.Sprintf("127.0.0.1:%d", instancePort(appName))
}

func instancePort(appName string) int {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	span := uint32(maxInstancePort - minInstancePort + 1)
	return minInstancePort + int(hash.Sum32()%span)
}
