package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"gradebook/internal/model"
)

// FileStore persists the gradebook as pretty-printed JSON in a single
// local file, fully overwritten on every save.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the backing file. A missing file yields an empty
// snapshot with no error; an unparsable file yields an empty snapshot
// plus ErrCorruptData for the caller to surface as a warning.
func (s *FileStore) Load() (model.Snapshot, error) {
	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return model.Snapshot{}, nil
	}
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return model.Snapshot{}, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	if snap == nil {
		snap = model.Snapshot{}
	}
	return snap, nil
}

// Save overwrites the backing file with the whole snapshot. Keys are
// sorted by the encoder, values indented for human readability.
func (s *FileStore) Save(snap model.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path, data, 0644)
}
