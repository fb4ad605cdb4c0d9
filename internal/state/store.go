package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/danieljhkim/slotwise/internal/fsops"
	"github.com/danieljhkim/slotwise/internal/hash"
)

const fileExt = ".json"

// ErrConflict indicates the timetable file changed on disk after it was loaded.
var ErrConflict = errors.New("timetable changed on disk since it was loaded")

// absent records that a timetable did not exist when it was loaded.
const absent = ""

// StateStore persists timetables by name.
type StateStore interface {
	// Load loads the timetable with the given name.
	// Returns os.ErrNotExist if it has never been saved.
	Load(name string) (*Timetable, error)

	// Save saves the timetable atomically.
	Save(name string, t *Timetable) error

	// Delete deletes the timetable file.
	Delete(name string) error

	// List returns the names of saved timetables, sorted.
	List() ([]string, error)
}

// FileStateStore implements StateStore using JSON files on disk.
//
// Save refuses to overwrite a file that changed since this store last
// loaded or saved it. Saving a name that was never loaded is unchecked.
type FileStateStore struct {
	fs     fsops.FS
	dir    string
	hasher hash.Hasher

	mu   sync.Mutex
	seen map[string]string
}

// NewFileStateStore creates a new FileStateStore rooted at dir.
func NewFileStateStore(fs fsops.FS, dir string) *FileStateStore {
	return &FileStateStore{
		fs:     fs,
		dir:    dir,
		hasher: hash.NewSHA256Hasher(),
		seen:   make(map[string]string),
	}
}

func (s *FileStateStore) remember(name, fingerprint string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen[name] = fingerprint
}

// checkUnchanged compares the file on disk with what was last seen.
func (s *FileStateStore) checkUnchanged(name, path string) error {
	s.mu.Lock()
	want, ok := s.seen[name]
	s.mu.Unlock()
	if !ok {
		return nil
	}

	got := absent
	data, err := s.fs.ReadFile(path)
	switch {
	case err == nil:
		got = s.hasher.Sum(data)
	case !os.IsNotExist(err):
		return fmt.Errorf("failed to read timetable: %w", err)
	}
	if got != want {
		return fmt.Errorf("%w: %q", ErrConflict, name)
	}
	return nil
}

func (s *FileStateStore) path(name string) (string, error) {
	if err := s.fs.ValidateIdentifier(name); err != nil {
		return "", fmt.Errorf("invalid timetable name: %w", err)
	}
	return filepath.Join(s.dir, name+fileExt), nil
}

// Load loads the timetable with the given name.
func (s *FileStateStore) Load(name string) (*Timetable, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.remember(name, absent)
			return nil, os.ErrNotExist
		}
		return nil, fmt.Errorf("failed to read timetable: %w", err)
	}

	var t Timetable
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to unmarshal timetable %q: %w", name, err)
	}
	if t.Name == "" {
		t.Name = name
	}
	if err := t.Check(); err != nil {
		return nil, err
	}
	s.remember(name, s.hasher.Sum(data))
	return &t, nil
}

// Save saves the timetable atomically. It returns ErrConflict when the
// file changed since it was loaded.
func (s *FileStateStore) Save(name string, t *Timetable) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	if err := s.checkUnchanged(name, path); err != nil {
		return err
	}
	if t.Version == 0 {
		t.Version = SchemaVersion
	}

	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal timetable: %w", err)
	}
	if err := s.fs.AtomicWrite(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write timetable: %w", err)
	}
	s.remember(name, s.hasher.Sum(data))
	return nil
}

// Delete deletes the timetable file. Deleting a missing timetable is not
// an error.
func (s *FileStateStore) Delete(name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(path); err != nil {
		return fmt.Errorf("failed to delete timetable: %w", err)
	}
	s.remember(name, absent)
	return nil
}

// List returns the names of saved timetables, sorted.
func (s *FileStateStore) List() ([]string, error) {
	names, err := s.fs.List(s.dir, fileExt)
	if err != nil {
		return nil, fmt.Errorf("failed to list timetables: %w", err)
	}
	return names, nil
}
