//go:build linux

package platform

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	screenSaverService                 = "org.freedesktop.ScreenSaver"
	screenSaverPath    dbus.ObjectPath = "/org/freedesktop/ScreenSaver"
)

type screenSaverInhibitor struct {
	appName string
	conn    *dbus.Conn
	cookie  uint32
}

func newInhibitor(appName string) inhibitor {
	return &screenSaverInhibitor{appName: appName}
}

func (inh *screenSaverInhibitor) inhibit(reason string) error {
	if inh.conn == nil {
		conn, err := dbus.ConnectSessionBus()
		if err != nil {
			return fmt.Errorf("connect session bus: %w: %v", ErrWakeLockUnsupported, err)
		}
		inh.conn = conn
	}

	var cookie uint32
	call := inh.conn.Object(screenSaverService, screenSaverPath).Call(screenSaverService+".Inhibit", 0, inh.appName, reason)
	if err := call.Store(&cookie); err != nil {
		return fmt.Errorf("screensaver inhibit: %w", err)
	}
	inh.cookie = cookie
	return nil
}

func (inh *screenSaverInhibitor) uninhibit() error {
	if inh.conn == nil {
		return nil
	}
	call := inh.conn.Object(screenSaverService, screenSaverPath).Call(screenSaverService+".UnInhibit", 0, inh.cookie)
	if call.Err != nil {
		return fmt.Errorf("screensaver uninhibit: %w", call.Err)
	}
	inh.cookie = 0
	return nil
}
