// Package tasklist owns the in-memory task list and keeps it in step with
// the task store.
package tasklist

import (
	"errors"
	"slices"

	"github.com/rs/zerolog"

	"github.com/pdxmph/chores-tui/internal/ids"
	"github.com/pdxmph/chores-tui/internal/logging"
	"github.com/pdxmph/chores-tui/internal/tasks"
)

// ErrNoUniqueID is logged when the generator keeps returning ids already in use
var ErrNoUniqueID = errors.New("could not generate a unique task id")

// maxIDAttempts bounds regeneration when a fresh id collides with a live task
const maxIDAttempts = 8

// Controller mediates between user actions and the task store.
// It is driven from a single goroutine (the UI loop); persistence runs on a
// background writer so the caller never waits on storage.
type Controller struct {
	store  tasks.Store
	ids    ids.Generator
	log    zerolog.Logger
	writer *writer
	closed bool

	tasks []tasks.Task
	input string
}

// Option configures a Controller
type Option func(*Controller)

// WithLogger sets the logger used for storage failures
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) { c.log = logger }
}

// WithIDGenerator replaces the default xid generator
func WithIDGenerator(g ids.Generator) Option {
	return func(c *Controller) { c.ids = g }
}

// New creates a controller with an empty list. Call Load to hydrate it.
func New(store tasks.Store, opts ...Option) *Controller {
	c := &Controller{
		store: store,
		ids:   ids.XID{},
		log:   logging.Nop(),
		tasks: []tasks.Task{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.writer = newWriter(64)
	return c
}

// Load replaces the in-memory list with the stored one. Read failures are
// logged; the list keeps whatever the store could recover (empty on corrupt data).
func (c *Controller) Load() {
	loaded, err := c.store.Load()
	switch {
	case errors.Is(err, tasks.ErrInvalidEntries):
		c.log.Warn().Err(err).Int("kept", len(loaded)).Msg("dropped invalid stored tasks")
	case err != nil:
		c.log.Error().Err(err).Msg("loading tasks")
	}
	if loaded == nil {
		loaded = []tasks.Task{}
	}
	c.tasks = loaded
	c.log.Debug().Int("count", len(c.tasks)).Msg("loaded tasks")
}

// AddTask appends a task built from raw and persists the new list.
// Blank input is ignored and leaves the input text as it was.
func (c *Controller) AddTask(raw string) {
	text := tasks.NormalizeText(raw)
	if text == "" {
		return
	}

	id, err := c.newID()
	if err != nil {
		c.log.Error().Err(err).Msg("generating task id")
		return
	}

	task, err := tasks.New(id, text)
	if err != nil {
		c.log.Error().Err(err).Msg("building task")
		return
	}

	c.tasks = append(slices.Clip(c.tasks), task)
	c.saveAll()
	c.input = ""
}

// RemoveTask drops the task with id and persists the result.
// An unknown id changes nothing and writes nothing.
func (c *Controller) RemoveTask(id string) {
	idx := c.indexOf(id)
	if idx < 0 {
		return
	}
	c.tasks = slices.Delete(slices.Clone(c.tasks), idx, idx+1)
	c.saveAll()
}

// ClearAll empties the list and removes the storage slot
func (c *Controller) ClearAll() {
	c.tasks = []tasks.Task{}
	c.persist("clear", func() error { return c.store.Clear() })
}

// SetInputText updates the pending input buffer. Nothing is persisted.
func (c *Controller) SetInputText(text string) {
	c.input = text
}

// InputText returns the pending input buffer
func (c *Controller) InputText() string {
	return c.input
}

// Tasks returns a snapshot of the list in display order
func (c *Controller) Tasks() []tasks.Task {
	return slices.Clone(c.tasks)
}

// Len returns the number of tasks
func (c *Controller) Len() int {
	return len(c.tasks)
}

// Flush blocks until every scheduled write has finished
func (c *Controller) Flush() {
	c.writer.flush()
}

// Close flushes pending writes and stops the background writer.
// Later mutations persist synchronously.
func (c *Controller) Close() {
	c.writer.close()
	c.closed = true
}

func (c *Controller) saveAll() {
	// The snapshot is never mutated again: every change builds a new slice.
	snapshot := slices.Clip(c.tasks)
	c.persist("save", func() error { return c.store.SaveAll(snapshot) })
}

func (c *Controller) persist(op string, fn func() error) {
	run := func() {
		if err := fn(); err != nil {
			c.log.Error().Err(err).Str("op", op).Msg("persisting tasks")
		}
	}
	if c.closed {
		run()
		return
	}
	c.writer.submit(run)
}

func (c *Controller) indexOf(id string) int {
	return slices.IndexFunc(c.tasks, func(t tasks.Task) bool { return t.ID == id })
}

func (c *Controller) newID() (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := c.ids.NewID()
		if id != "" && c.indexOf(id) < 0 {
			return id, nil
		}
		c.log.Warn().Str("id", id).Msg("regenerating colliding task id")
	}
	return "", ErrNoUniqueID
}
