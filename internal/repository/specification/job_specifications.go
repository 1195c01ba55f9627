package specification

import "gorm.io/gorm"

// ByThoughtID filters jobs (or moods) by their owning thought.
type ByThoughtID struct {
	ThoughtID int64
}

func (s ByThoughtID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("thought_id = ?", s.ThoughtID)
}

// StepIs filters jobs by step discriminator.
type StepIs struct {
	Step string
}

func (s StepIs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("step = ?", s.Step)
}

// StatusIs filters jobs by lifecycle status.
type StatusIs struct {
	Status string
}

func (s StatusIs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}
