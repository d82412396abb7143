// Package fs is the filesystem seam used by the fixture writer.
//
// [Real] is the production implementation. [Faulty] wraps another [FS] and
// fails chosen operations so error paths can be tested without a broken disk.
package fs

import "os"

// FS is the set of filesystem operations the generator needs.
type FS interface {
	// ReadFile reads a whole file. See [os.ReadFile].
	ReadFile(path string) ([]byte, error)

	// WriteFileAtomic replaces path with data via a temp file and rename, so
	// readers never observe a partially written file.
	WriteFileAtomic(path string, data []byte, perm os.FileMode) error

	// ReadDir lists a directory sorted by name. See [os.ReadDir].
	ReadDir(path string) ([]os.DirEntry, error)

	// MkdirAll creates a directory and its parents. See [os.MkdirAll].
	MkdirAll(path string, perm os.FileMode) error

	// Lock acquires an exclusive advisory lock named after path. The lock
	// file lives in a ".locks" directory next to path. Blocks up to a fixed
	// timeout, then fails with [os.ErrDeadlineExceeded].
	Lock(path string) (Locker, error)
}

// Locker is a held lock. Close releases it.
type Locker interface {
	Close() error
}
