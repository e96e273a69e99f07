package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/idilsaglam/taskman/internal/model"
	"github.com/idilsaglam/taskman/internal/store"
)

// JSON-backed storage. Single file, human-readable, portable.
// No locking; the file is read once at startup and written once at exit.

// DefaultFileName is used when no data file is configured.
const DefaultFileName = "tasks.json"

// ErrMissingKey is returned by Load when a record lacks one of its keys.
var ErrMissingKey = errors.New("missing key")

// record is one raw array element. Keys are looked up exactly;
// encoding/json struct decoding would also accept "Name" or "NAME".
type record map[string]json.RawMessage

// field returns the string stored under key.
func (r record) field(i int, key string) (string, error) {
	raw, ok := r[key]
	if !ok {
		return "", fmt.Errorf("task %d: %w %q", i, ErrMissingKey, key)
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", fmt.Errorf("task %d: key %q: %w", i, key, err)
	}
	return v, nil
}

func (r record) task(i int) (t model.Task, err error) {
	if t.Name, err = r.field(i, "name"); err != nil {
		return model.Task{}, err
	}
	if t.Description, err = r.field(i, "description"); err != nil {
		return model.Task{}, err
	}
	if t.Deadline, err = r.field(i, "deadline"); err != nil {
		return model.Task{}, err
	}
	return t, nil
}

// Load reads the task list at path. found is false when the file cannot be
// opened, which callers treat as "no prior data". A malformed file fails the
// whole load; no partial list is returned.
func Load(path string) (tasks []model.Task, found bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false, nil
	}
	defer f.Close()

	var recs []record
	if err := json.NewDecoder(f).Decode(&recs); err != nil {
		return nil, true, fmt.Errorf("json decode: %w", err)
	}
	tasks = make([]model.Task, 0, len(recs))
	for i, r := range recs {
		t, err := r.task(i)
		if err != nil {
			return nil, true, err
		}
		tasks = append(tasks, t)
	}
	return tasks, true, nil
}

// Save writes tasks to path as an indented JSON array. written is false when
// path cannot be opened for writing; that case is not an error.
func Save(path string, tasks []model.Task) (written bool, err error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	b, err := json.MarshalIndent(tasks, "", "    ")
	if err != nil {
		return false, fmt.Errorf("json marshal: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return false, nil
	}
	if _, err := f.Write(append(b, '\n')); err != nil {
		f.Close()
		return false, fmt.Errorf("write file: %w", err)
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("close file: %w", err)
	}
	return true, nil
}

// LoadInto replaces the content of s with the tasks stored at path.
// s is left untouched when the file is missing or malformed.
func LoadInto(s *store.Store, path string) (found bool, err error) {
	tasks, found, err := Load(path)
	if err != nil || !found {
		return found, err
	}
	s.Replace(tasks)
	return true, nil
}

// SaveFrom writes the content of s to path.
func SaveFrom(s *store.Store, path string) (written bool, err error) {
	return Save(path, s.List())
}
