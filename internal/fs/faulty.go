package fs

import (
	iofs "io/fs"
	"os"
	"sync"
	"syscall"
)

// FaultyConfig selects which operations [Faulty] fails.
type FaultyConfig struct {
	// WritesBeforeFailure is how many WriteFileAtomic calls succeed before
	// every later call fails with ENOSPC. Negative disables write faults.
	WritesBeforeFailure int

	// FailMkdir makes MkdirAll fail with EACCES.
	FailMkdir bool

	// FailLock makes Lock fail with EAGAIN.
	FailLock bool
}

// Faulty wraps an [FS] and fails operations as configured. Failures are
// deterministic; injected errors are *fs.PathError values holding a
// syscall.Errno, wrapped in [InjectedError].
type Faulty struct {
	fs     FS
	config FaultyConfig

	mu     sync.Mutex
	writes int
}

// NewFaulty wraps fsys.
func NewFaulty(fsys FS, config FaultyConfig) *Faulty {
	return &Faulty{fs: fsys, config: config}
}

// Writes returns how many WriteFileAtomic calls were attempted.
func (f *Faulty) Writes() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.writes
}

func (f *Faulty) ReadFile(path string) ([]byte, error) {
	return f.fs.ReadFile(path)
}

func (f *Faulty) WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	f.mu.Lock()
	n := f.writes
	f.writes++
	f.mu.Unlock()

	if f.config.WritesBeforeFailure >= 0 && n >= f.config.WritesBeforeFailure {
		return inject(&iofs.PathError{Op: "write", Path: path, Err: syscall.ENOSPC})
	}

	return f.fs.WriteFileAtomic(path, data, perm)
}

func (f *Faulty) ReadDir(path string) ([]os.DirEntry, error) {
	return f.fs.ReadDir(path)
}

func (f *Faulty) MkdirAll(path string, perm os.FileMode) error {
	if f.config.FailMkdir {
		return inject(&iofs.PathError{Op: "mkdir", Path: path, Err: syscall.EACCES})
	}

	return f.fs.MkdirAll(path, perm)
}

func (f *Faulty) Lock(path string) (Locker, error) {
	if f.config.FailLock {
		return nil, inject(&iofs.PathError{Op: "lock", Path: path, Err: syscall.EAGAIN})
	}

	return f.fs.Lock(path)
}

// Compile-time interface check.
var _ FS = (*Faulty)(nil)
