//go:build darwin

package platform

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

type caffeinateInhibitor struct {
	cmd *exec.Cmd
}

func newInhibitor(string) inhibitor {
	return &caffeinateInhibitor{}
}

func (inh *caffeinateInhibitor) inhibit(string) error {
	path, err := exec.LookPath("caffeinate")
	if err != nil {
		return fmt.Errorf("find caffeinate: %w: %v", ErrWakeLockUnsupported, err)
	}
	cmd := exec.Command(path, "-d", "-i", "-w", strconv.Itoa(os.Getpid()))
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start caffeinate: %w", err)
	}
	inh.cmd = cmd
	return nil
}

func (inh *caffeinateInhibitor) uninhibit() error {
	if inh.cmd == nil || inh.cmd.Process == nil {
		return nil
	}
	if err := inh.cmd.Process.Kill(); err != nil {
		return fmt.Errorf("stop caffeinate: %w", err)
	}
	_ = inh.cmd.Wait()
	inh.cmd = nil
	return nil
}
