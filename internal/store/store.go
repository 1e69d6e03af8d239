// Package store persists named tables as CSV files on local disk, with
// an optional remote mirror. The local file is the durability contract;
// the mirror is best-effort and any remote failure degrades the store to
// local-only operation without surfacing an error to callers.
package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrRemoteNotFound is returned by a Remote when no file with the
// requested name exists in the mirror folder.
var ErrRemoteNotFound = errors.New("store: not found in remote folder")

// Remote is a file-hosting mirror holding one file per table name
// inside a fixed folder.
type Remote interface {
	// Fetch downloads the full content of the named file.
	// Returns ErrRemoteNotFound when no such file exists.
	Fetch(ctx context.Context, name string) ([]byte, error)
	// Put replaces the named file in place, creating it when absent.
	Put(ctx context.Context, name string, data []byte) error
}

// Store maps logical table names to durable bytes.
type Store struct {
	dir    string
	remote Remote // nil when remote mode is not configured

	degraded bool
	lastErr  error
}

// New creates a store rooted at dir. Pass a nil remote to run
// local-only; the decision is made once by the caller from its
// credential config.
func New(dir string, remote Remote) *Store {
	return &Store{dir: dir, remote: remote}
}

// RemoteEnabled reports whether a remote mirror was configured.
func (s *Store) RemoteEnabled() bool { return s.remote != nil }

// Degraded reports whether the most recent remote call failed and the
// store fell back to local-only operation.
func (s *Store) Degraded() bool { return s.degraded }

// LastRemoteError returns the error behind the degraded flag, or nil.
func (s *Store) LastRemoteError() error { return s.lastErr }

// Load reads the named table, preferring the remote copy when a mirror
// is configured. A successful remote read refreshes the local file so
// the fallback copy stays current. Every remote failure, including a
// malformed payload, silently degrades to the local path. A table that
// exists nowhere is an empty dataset, not an error.
func (s *Store) Load(ctx context.Context, name string) (Table, error) {
	if s.remote != nil {
		data, err := s.remote.Fetch(ctx, fileName(name))
		if err == nil {
			if t, perr := Parse(data); perr == nil {
				s.clearDegraded()
				// Refresh the local cache; a failed refresh must not
				// mask the data we already hold.
				_ = s.writeLocal(name, data)
				return t, nil
			} else {
				err = perr
			}
		}
		s.noteRemoteFailure(err)
	}

	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Table{}, nil
		}
		return Table{}, fmt.Errorf("reading table %s: %w", name, err)
	}
	return Parse(data)
}

// Save writes the full table, overwriting the local file entirely. The
// local write is the one operation allowed to fail loudly; the remote
// upsert afterwards is best-effort.
func (s *Store) Save(ctx context.Context, name string, t Table) error {
	data, err := t.Marshal()
	if err != nil {
		return fmt.Errorf("encoding table %s: %w", name, err)
	}

	if err := s.writeLocal(name, data); err != nil {
		return fmt.Errorf("writing table %s: %w", name, err)
	}

	if s.remote != nil {
		if err := s.remote.Put(ctx, fileName(name), data); err != nil {
			s.noteRemoteFailure(err)
		} else {
			s.clearDegraded()
		}
	}
	return nil
}

// LocalPath returns the on-disk location of the named table.
func (s *Store) LocalPath(name string) string { return s.path(name) }

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, fileName(name))
}

func (s *Store) writeLocal(name string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return err
	}
	return os.WriteFile(s.path(name), data, 0o600)
}

func (s *Store) noteRemoteFailure(err error) {
	s.degraded = true
	s.lastErr = err
}

func (s *Store) clearDegraded() {
	s.degraded = false
	s.lastErr = nil
}

func fileName(name string) string { return name + ".csv" }
