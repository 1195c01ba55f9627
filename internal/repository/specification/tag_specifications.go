package specification

import (
	"time"

	"gorm.io/gorm"
)

// ByName filters tags by exact, case-sensitive name.
type ByName struct {
	Name string
}

func (s ByName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("name = ?", s.Name)
}

// ByNames filters tags by a set of exact names.
type ByNames struct {
	Names []string
}

func (s ByNames) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("name IN ?", s.Names)
}

// TagKeysetBefore pages tag listings ordered by (last_used_at DESC, id DESC).
// Never-used tags sort with last_used_at treated as the epoch so they land
// at the end of the listing deterministically.
type TagKeysetBefore struct {
	LastUsedAt time.Time
	ID         int64
}

func (s TagKeysetBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("(COALESCE(last_used_at, to_timestamp(0)), id) < (?, ?)", s.LastUsedAt, s.ID)
}

// OrderByLastUsedKeyset orders by the tag listing sort key.
type OrderByLastUsedKeyset struct{}

func (s OrderByLastUsedKeyset) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("COALESCE(last_used_at, to_timestamp(0)) DESC, id DESC")
}
