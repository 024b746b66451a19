package store

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// JSONStore is a disk cache for JSON payloads keyed by relative path.
// Staleness is judged by the modification time of the last successful
// write; content is never hashed.
type JSONStore struct {
	Root string // e.g. "data/cache"
}

func NewJSONStore(root string) *JSONStore {
	return &JSONStore{Root: root}
}

func (s *JSONStore) Path(rel string) string {
	return filepath.Join(s.Root, rel)
}

func (s *JSONStore) Exists(rel string) bool {
	_, err := os.Stat(s.Path(rel))
	return err == nil
}

// Age returns the wall-clock age of the entry's last write.
func (s *JSONStore) Age(rel string) (time.Duration, error) {
	info, err := os.Stat(s.Path(rel))
	if err != nil {
		return 0, err
	}
	return time.Since(info.ModTime()), nil
}

// Fresh reports whether the entry exists and its age is within ttl.
func (s *JSONStore) Fresh(rel string, ttl time.Duration) bool {
	age, err := s.Age(rel)
	if err != nil {
		return false
	}
	return age <= ttl
}

// WriteRaw stores body under rel, re-indenting valid JSON when pretty is
// set. The write goes to a temp file in the target directory first and is
// renamed into place so a reader never sees a torn entry.
func (s *JSONStore) WriteRaw(rel string, body []byte, pretty bool) error {
	path := s.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	if pretty {
		var v any
		if err := json.Unmarshal(body, &v); err == nil {
			buf := &bytes.Buffer{}
			enc := json.NewEncoder(buf)
			enc.SetIndent("", "  ")
			_ = enc.Encode(v)
			body = buf.Bytes()
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (s *JSONStore) ReadRaw(rel string) ([]byte, error) {
	return os.ReadFile(s.Path(rel))
}
