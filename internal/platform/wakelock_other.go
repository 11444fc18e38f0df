//go:build !linux && !windows && !darwin

package platform

type unsupportedInhibitor struct{}

func newInhibitor(string) inhibitor {
	return unsupportedInhibitor{}
}

func (unsupportedInhibitor) inhibit(string) error {
	return ErrWakeLockUnsupported
}

func (unsupportedInhibitor) uninhibit() error {
	return nil
}
