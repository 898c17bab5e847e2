package changelog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// History is an ordered list of records, newest first.
type History []Record

// Prepend adds r at the front. A nil record is ignored.
func (h History) Prepend(r *Record) History {
	if r == nil {
		return h
	}
	out := make(History, 0, len(h)+1)
	out = append(out, *r)
	return append(out, h...)
}

// ReadHistory reads a JSON history file. A missing file is an empty history.
func ReadHistory(path string) (History, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return History{}, nil
		}
		return nil, err
	}

	var h History
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("decode changelog %s: %w", path, err)
	}
	if h == nil {
		h = History{}
	}
	return h, nil
}

// WriteHistory writes h as indented JSON, replacing the file atomically.
func WriteHistory(path string, h History) error {
	if h == nil {
		h = History{}
	}
	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".changelog-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Append reads the history at path, prepends r and writes it back. It does
// nothing when r is nil.
func Append(path string, r *Record) error {
	if r == nil {
		return nil
	}
	h, err := ReadHistory(path)
	if err != nil {
		return err
	}
	return WriteHistory(path, h.Prepend(r))
}
