// Package backup keeps a one-deep rollback copy of a tracked file across an
// in-place rewrite. Each tracked path has exactly two states: NoBackup and
// BackedUp. The backup lives at <path>.bak and the store holds an explicit
// per-path record; it never scans directories to discover backups.
package backup

import (
	"errors"
	"fmt"
	"os"
)

// Suffix is appended to a tracked path to address its backup.
const Suffix = ".bak"

var (
	ErrRead     = errors.New("read failed")
	ErrWrite    = errors.New("write failed")
	ErrNoBackup = errors.New("no backup captured")
)

// Store tracks single-generation backups for a set of files.
type Store struct {
	backups map[string]string // tracked path -> backup path
}

// NewStore creates an empty backup store.
func NewStore() *Store {
	return &Store{backups: make(map[string]string)}
}

// BackupPath returns the on-disk location of a path's backup.
func BackupPath(path string) string {
	return path + Suffix
}

// Capture copies the current content of path to its backup location and
// records the backup. An existing backup is overwritten; only one
// generation is ever retained. Callers treat a Capture failure as a
// warning, not a blocker.
func (s *Store) Capture(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRead, err)
	}
	bak := BackupPath(path)
	if err := os.WriteFile(bak, content, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	s.backups[path] = bak
	return nil
}

// Track registers a previously captured backup for path, for callers in a
// fresh process. Returns false when no backup file exists.
func (s *Store) Track(path string) bool {
	bak := BackupPath(path)
	if _, err := os.Stat(bak); err != nil {
		return false
	}
	s.backups[path] = bak
	return true
}

// HasBackup reports whether path is in the BackedUp state.
func (s *Store) HasBackup(path string) bool {
	_, ok := s.backups[path]
	return ok
}

// Contents returns the live content of a tracked path.
func (s *Store) Contents(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRead, err)
	}
	return string(data), nil
}

// Original returns the backed-up (pre-optimization) content of path.
func (s *Store) Original(path string) (string, error) {
	bak, ok := s.backups[path]
	if !ok {
		return "", ErrNoBackup
	}
	data, err := os.ReadFile(bak)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRead, err)
	}
	return string(data), nil
}

// RestoreOriginal writes the backup's content over the live path and
// returns the content it displaced, so the caller can reinstate it.
// The backup itself is untouched. Every RestoreOriginal whose displaced
// content is still wanted MUST be paired with exactly one
// ReinstateOptimized before the caller returns, even on error paths.
func (s *Store) RestoreOriginal(path string) (string, error) {
	displaced, err := s.Contents(path)
	if err != nil {
		return "", err
	}
	original, err := s.Original(path)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(original), 0o644); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return displaced, nil
}

// ReinstateOptimized writes content back over the live path, undoing a
// temporary RestoreOriginal.
func (s *Store) ReinstateOptimized(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}
