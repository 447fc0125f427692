package tasks

import (
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
)

// ErrCorrupt is returned when the stored value cannot be decoded at all
var ErrCorrupt = errors.New("stored task list is corrupt")

// ErrInvalidEntries is returned when some decoded tasks were dropped
var ErrInvalidEntries = errors.New("stored task list has invalid entries")

var codec = sonic.ConfigStd

// Encode serializes tasks as a JSON array of {"id","text"} records
func Encode(list []Task) (string, error) {
	if list == nil {
		list = []Task{}
	}
	s, err := codec.MarshalToString(list)
	if err != nil {
		return "", fmt.Errorf("encoding task list: %w", err)
	}
	return s, nil
}

// Decode parses a stored task list. Entries with a blank id or text, and
// repeats of an id already seen, are dropped; the rest are returned along
// with an ErrInvalidEntries error.
func Decode(raw string) ([]Task, error) {
	var decoded []Task
	if err := codec.UnmarshalFromString(raw, &decoded); err != nil {
		return []Task{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	list := make([]Task, 0, len(decoded))
	seen := make(map[string]bool, len(decoded))
	dropped := 0
	for _, t := range decoded {
		t.Text = NormalizeText(t.Text)
		if t.Validate() != nil || seen[t.ID] {
			dropped++
			continue
		}
		seen[t.ID] = true
		list = append(list, t)
	}

	if dropped > 0 {
		return list, fmt.Errorf("%w: dropped %d of %d", ErrInvalidEntries, dropped, len(decoded))
	}
	return list, nil
}
