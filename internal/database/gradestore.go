package database

import (
	"fmt"

	"gradebook/internal/model"
	"gradebook/internal/storage"
	"gorm.io/gorm"
)

// GradeStore persists gradebook snapshots in a grade_records table.
// It satisfies storage.SnapshotStore next to the JSON file backend.
type GradeStore struct {
	db *gorm.DB
}

func NewGradeStore(db *gorm.DB) *GradeStore {
	return &GradeStore{db: db}
}

// Load reads every grade row into a snapshot. Students that were saved
// without grades are represented by a row with an empty subject so
// they survive the round trip.
func (s *GradeStore) Load() (model.Snapshot, error) {
	var records []model.GradeRecord
	if err := s.db.Find(&records).Error; err != nil {
		return model.Snapshot{}, fmt.Errorf("%w: %v", storage.ErrCorruptData, err)
	}
	snap := model.Snapshot{}
	for _, r := range records {
		if _, exists := snap[r.StudentName]; !exists {
			snap[r.StudentName] = map[string]float64{}
		}
		if r.Subject != "" {
			snap[r.StudentName][r.Subject] = r.Score
		}
	}
	return snap, nil
}

// Save replaces the table contents with the snapshot in one
// transaction.
func (s *GradeStore) Save(snap model.Snapshot) error {
	records := make([]model.GradeRecord, 0, len(snap))
	for name, grades := range snap {
		if len(grades) == 0 {
			records = append(records, model.GradeRecord{StudentName: name})
			continue
		}
		for subject, score := range grades {
			records = append(records, model.GradeRecord{
				StudentName: name,
				Subject:     subject,
				Score:       score,
			})
		}
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.GradeRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.Create(&records).Error
	})
}
