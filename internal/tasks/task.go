// Package tasks holds the task model and its durable store.
package tasks

import (
	"errors"
	"strings"
)

// ErrEmptyText is returned when task text is blank after trimming
var ErrEmptyText = errors.New("task text is empty")

// ErrEmptyID is returned for a task without an id
var ErrEmptyID = errors.New("task id is empty")

// Task is a single to-do entry
type Task struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// New builds a task from user input. The text is trimmed; blank text is rejected.
func New(id, raw string) (Task, error) {
	t := Task{ID: id, Text: NormalizeText(raw)}
	if err := t.Validate(); err != nil {
		return Task{}, err
	}
	return t, nil
}

// NormalizeText trims surrounding whitespace from user input
func NormalizeText(raw string) string {
	return strings.TrimSpace(raw)
}

// Validate checks the per-task invariants
func (t Task) Validate() error {
	if t.ID == "" {
		return ErrEmptyID
	}
	if t.Text == "" {
		return ErrEmptyText
	}
	return nil
}
