package fs

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/atomic"
	"golang.org/x/sys/unix"
)

// Real implements [FS] on the host filesystem.
type Real struct{}

// NewReal returns a new [Real] filesystem.
func NewReal() *Real {
	return &Real{}
}

// A passthrough wrapper for [os.ReadFile].
func (*Real) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFileAtomic writes through [atomic.WriteFile] and then applies perm,
// since the temp file is created with the process umask.
func (*Real) WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return err
	}

	return os.Chmod(path, perm)
}

// A passthrough wrapper for [os.ReadDir].
func (*Real) ReadDir(path string) ([]os.DirEntry, error) {
	return os.ReadDir(path)
}

// A passthrough wrapper for [os.MkdirAll].
func (*Real) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// --- Locking ---

const (
	lockTimeout = 2 * time.Second
	lockPerms   = 0o644
	dirPerms    = 0o755
	locksDir    = ".locks"
)

// realLock holds an exclusive flock on an open lock file.
type realLock struct {
	path string
	file *os.File
}

// Close removes the lock file while still holding the lock, then unlocks.
func (l *realLock) Close() error {
	if l.file == nil {
		return nil
	}

	removeErr := os.Remove(l.path)
	if errors.Is(removeErr, os.ErrNotExist) {
		removeErr = nil
	}

	unlockErr := unix.Flock(int(l.file.Fd()), unix.LOCK_UN)
	closeErr := l.file.Close()
	l.file = nil

	return errors.Join(removeErr, unlockErr, closeErr)
}

func (*Real) Lock(path string) (Locker, error) {
	dir := filepath.Join(filepath.Dir(path), locksDir)
	lockPath := filepath.Join(dir, filepath.Base(path)+".lock")

	deadline := time.Now().Add(lockTimeout)

	for {
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("lock %s: %w", lockPath, os.ErrDeadlineExceeded)
		}

		if err := os.MkdirAll(dir, dirPerms); err != nil {
			return nil, err
		}

		file, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, lockPerms)
		if err != nil {
			return nil, err
		}

		var openStat unix.Stat_t
		if err := unix.Fstat(int(file.Fd()), &openStat); err != nil {
			_ = file.Close()

			return nil, fmt.Errorf("fstat lock file: %w", err)
		}

		acquired, err := tryFlock(file)
		if err != nil {
			_ = file.Close()

			return nil, err
		}

		if !acquired {
			_ = file.Close()

			time.Sleep(10 * time.Millisecond)

			continue
		}

		// The holder before us removes the file on release; if the path now
		// names a different inode, our lock guards nothing.
		var pathStat unix.Stat_t
		if err := unix.Stat(lockPath, &pathStat); err != nil || pathStat.Ino != openStat.Ino {
			_ = unix.Flock(int(file.Fd()), unix.LOCK_UN)
			_ = file.Close()

			continue
		}

		return &realLock{path: lockPath, file: file}, nil
	}
}

// tryFlock takes a non-blocking exclusive lock, retrying on EINTR.
func tryFlock(file *os.File) (bool, error) {
	for {
		err := unix.Flock(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB)
		switch {
		case err == nil:
			return true, nil
		case errors.Is(err, unix.EINTR):
			continue
		case errors.Is(err, unix.EWOULDBLOCK):
			return false, nil
		default:
			return false, fmt.Errorf("flock: %w", err)
		}
	}
}

// Compile-time interface check.
var _ FS = (*Real)(nil)
