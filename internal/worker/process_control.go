package worker

import "syscall"

// osProcessControl signals a real OS process by PID and detects the
// stopped state via a blocking wait4(WUNTRACED).
type osProcessControl struct {
	pid int
}

func (p *osProcessControl) Signal(sig syscall.Signal) error {
	return syscall.Kill(p.pid, sig)
}

// WaitStopped blocks until the process is reported stopped, retrying on
// EINTR and on wakeups that report neither "stopped" nor "exited".
func (p *osProcessControl) WaitStopped() error {
	var status syscall.WaitStatus
	for {
		_, err := syscall.Wait4(p.pid, &status, syscall.WUNTRACED, nil)
		if err == syscall.EINTR {
			continue
		}
		if err != nil {
			return err
		}
		if status.Stopped() {
			return nil
		}
		if status.Exited() || status.Signaled() {
			return errProcessGone
		}
		// Spurious wakeup (e.g. WIFCONTINUED from a stray SIGCONT): retry.
	}
}
