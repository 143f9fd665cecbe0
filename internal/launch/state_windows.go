//go:build windows

package launch

import "os"

// signalAlive is best-effort on Windows: FindProcess already fails for
// dead PIDs, so a successful lookup is treated as alive.
func signalAlive(proc *os.Process) bool {
	return proc != nil
}
