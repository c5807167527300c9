// Package filekv is a storage.KV kept in a single JSON object file.
package filekv

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Store keeps every key in one JSON file, read on open and rewritten on Set.
type Store struct {
	path   string
	values map[string]string
}

// CorruptSuffix is appended to a storage file that could not be parsed.
const CorruptSuffix = ".corrupt"

// Open loads the file at path. A missing file is an empty store; its
// directory is created on first write. A file that is not a JSON object is
// moved aside to path+CorruptSuffix and the store starts empty.
// A nil log discards the warning.
func Open(path string, log *logrus.Entry) (*Store, error) {
	s := &Store{path: path, values: map[string]string{}}

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}
	if len(b) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(b, &s.values); err != nil {
		s.values = map[string]string{}
		s.quarantine(err, log)
		return s, nil
	}
	if s.values == nil {
		s.values = map[string]string{}
	}
	return s, nil
}

func (s *Store) quarantine(cause error, log *logrus.Entry) {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = logrus.NewEntry(l)
	}
	entry := log.WithError(cause).WithField("path", s.path)

	moved := s.path + CorruptSuffix
	if err := os.Rename(s.path, moved); err != nil {
		entry.WithField("rename_error", err.Error()).Warn("storage file is unreadable, starting empty")
		return
	}
	entry.WithField("moved_to", moved).Warn("storage file is unreadable, moved aside and starting empty")
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Get implements storage.KV.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	v, ok := s.values[key]
	return v, ok, nil
}

// Set implements storage.KV.
func (s *Store) Set(ctx context.Context, key, value string) error {
	prev, had := s.values[key]
	s.values[key] = value
	if err := s.flush(); err != nil {
		if had {
			s.values[key] = prev
		} else {
			delete(s.values, key)
		}
		return err
	}
	return nil
}

// Close implements storage.KV.
func (s *Store) Close() error { return nil }

// flush writes the map to a temp file in the same directory and renames it
// over the target.
func (s *Store) flush() error {
	b, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, s.path)
}
