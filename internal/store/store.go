// Package store persists the editor buffers and the task mirror as flat files
// in the data directory.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/peterbourgon/diskv/v3"
	"github.com/tonhe/opsdeck/internal/tasks"
)

// File keys, which are also the file names on disk.
const (
	NotesKey = "notes.txt"
	TodoKey  = "todo.txt"
	LogsKey  = "logs.txt"
	TasksKey = "tasks.json"
)

// Store reads and writes flat files under a single directory.
type Store struct {
	d    *diskv.Diskv
	base string
}

func flatTransform(string) []string { return []string{} }

// Open returns a Store rooted at dir. The directory is created on first
// write.
func Open(dir string) *Store {
	return &Store{
		d: diskv.New(diskv.Options{
			BasePath:     dir,
			Transform:    flatTransform,
			CacheSizeMax: 1024 * 1024,
		}),
		base: dir,
	}
}

// Dir returns the directory the store writes to.
func (s *Store) Dir() string {
	return s.base
}

// LoadBuffer returns the stored text for key, or "" if the file is missing.
func (s *Store) LoadBuffer(key string) (string, error) {
	b, err := s.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("reading %s: %w", key, err)
	}
	return string(b), nil
}

// SaveBuffer writes text under key.
func (s *Store) SaveBuffer(key, text string) error {
	if err := s.d.Write(key, []byte(text)); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// LoadTasks reads the task mirror. A missing file yields no tasks.
func (s *Store) LoadTasks() ([]tasks.Task, error) {
	b, err := s.d.Read(TasksKey)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", TasksKey, err)
	}
	var list []tasks.Task
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", TasksKey, err)
	}
	return list, nil
}

// SaveTasks rewrites the task mirror.
func (s *Store) SaveTasks(list []tasks.Task) error {
	if list == nil {
		list = []tasks.Task{}
	}
	b, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding tasks: %w", err)
	}
	if err := s.d.Write(TasksKey, b); err != nil {
		return fmt.Errorf("writing %s: %w", TasksKey, err)
	}
	return nil
}

// SeedTodo renders list as Todo buffer text. It is used when todo.txt is
// empty but the mirror still holds tasks.
func SeedTodo(list []tasks.Task) string {
	var sb strings.Builder
	for _, t := range list {
		sb.WriteString(tasks.Render(t))
	}
	return sb.String()
}
