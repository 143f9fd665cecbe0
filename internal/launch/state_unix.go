//go:build !windows

package launch

import (
	"os"
	"syscall"
)

// signalAlive probes a process with signal 0
func signalAlive(proc *os.Process) bool {
	return proc.Signal(syscall.Signal(0)) == nil
}
