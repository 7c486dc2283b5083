package storage

import (
	"errors"

	"gradebook/internal/model"
)

// ErrCorruptData marks a backing store whose contents could not be
// parsed. Callers degrade to an empty gradebook and warn; load is
// never fatal.
var ErrCorruptData = errors.New("saved records are unreadable")

// SnapshotStore loads and saves the whole gradebook. Load is called
// once at startup, Save once on explicit exit.
type SnapshotStore interface {
	Load() (model.Snapshot, error)
	Save(model.Snapshot) error
}
