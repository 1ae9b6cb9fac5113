package lock

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofrs/flock"
)

var (
	// ErrLockHeld is returned when another process already holds the instance lock.
	ErrLockHeld = fmt.Errorf("instance lock held by another process")
	// ErrNilLock is returned when a nil lock handle is provided to ReleaseLock.
	ErrNilLock = fmt.Errorf("nil lock handle")
)

// InstanceLock represents a handle to the OS-level lock a running server
// holds for its port.
type InstanceLock struct {
	Port    int
	PIDPath string
	flock   *flock.Flock
}

// LockManager hands out per-port instance locks. The locks are advisory:
// they never prevent a bind, they only let a failed instance name the
// process already serving the port.
type LockManager struct {
	dir string
}

// NewLockManager initializes a LockManager keeping its files in dir.
// An empty dir means os.TempDir().
func NewLockManager(dir string) *LockManager {
	if dir == "" {
		dir = os.TempDir()
	}
	return &LockManager{dir: dir}
}

func (lm *LockManager) lockPath(port int) string {
	return filepath.Join(lm.dir, fmt.Sprintf("portfolio-server-%d.lock", port))
}

func (lm *LockManager) pidPath(port int) string {
	return filepath.Join(lm.dir, fmt.Sprintf("portfolio-server-%d.pid", port))
}

// AcquireInstanceLock takes the exclusive lock for port without waiting and
// records the current PID next to it.
func (lm *LockManager) AcquireInstanceLock(port int) (*InstanceLock, error) {
	fileLock := flock.New(lm.lockPath(port))
	locked, err := fileLock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("error acquiring instance lock for port %d: %w", port, err)
	}
	if !locked {
		return nil, ErrLockHeld
	}

	pidPath := lm.pidPath(port)
	if err := os.WriteFile(pidPath, []byte(strconv.Itoa(os.Getpid())), 0644); err != nil {
		_ = fileLock.Unlock()
		return nil, fmt.Errorf("failed to record pid in %s: %w", pidPath, err)
	}

	return &InstanceLock{Port: port, PIDPath: pidPath, flock: fileLock}, nil
}

// ReleaseLock releases the given lock and removes its PID record.
func (lm *LockManager) ReleaseLock(lock *InstanceLock) error {
	if lock == nil {
		return ErrNilLock
	}
	if err := os.Remove(lock.PIDPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove pid file %s: %w", lock.PIDPath, err)
	}
	if lock.flock != nil {
		if err := lock.flock.Unlock(); err != nil {
			return fmt.Errorf("failed to release instance lock for port %d: %w", lock.Port, err)
		}
	}
	return nil
}

// Holder reports whether a live instance holds the lock for port, and its
// PID when one was recorded (0 otherwise).
func (lm *LockManager) Holder(port int) (pid int, held bool) {
	probe := flock.New(lm.lockPath(port))
	locked, err := probe.TryLock()
	if err != nil {
		return 0, false
	}
	if locked {
		_ = probe.Unlock()
		return 0, false
	}

	raw, err := os.ReadFile(lm.pidPath(port))
	if err != nil {
		return 0, true
	}
	pid, err = strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil {
		return 0, true
	}
	return pid, true
}
