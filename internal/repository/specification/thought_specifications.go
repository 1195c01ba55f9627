package specification

import (
	"time"

	"gorm.io/gorm"
)

// KeysetBefore selects the page strictly after the cursor position in
// (created_at DESC, id DESC) order. The row comparison keeps pages stable
// even when many rows share one created_at.
type KeysetBefore struct {
	CreatedAt time.Time
	ID        int64
}

func (s KeysetBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("(created_at, id) < (?, ?)", s.CreatedAt, s.ID)
}

// OrderByCreatedKeyset orders by the keyset sort key for thought listings.
type OrderByCreatedKeyset struct{}

func (s OrderByCreatedKeyset) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC, id DESC")
}

// CreatedWithin filters to a half-open UTC range [Start, End).
type CreatedWithin struct {
	Start time.Time
	End   time.Time
}

func (s CreatedWithin) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at >= ? AND created_at < ?", s.Start, s.End)
}

// HasAllTags keeps only thoughts associated with every one of the given tag
// names (intersection, not union). Tag names match only within the owner's
// namespace; a same-named tag under another uid never matches.
type HasAllTags struct {
	Uid   string
	Names []string
}

func (s HasAllTags) Apply(db *gorm.DB) *gorm.DB {
	sub := db.Session(&gorm.Session{NewDB: true}).
		Table("thought_tags").
		Select("thought_tags.thought_id").
		Joins("JOIN tags ON tags.id = thought_tags.tag_id").
		Where("tags.uid = ? AND tags.name IN ?", s.Uid, s.Names).
		Group("thought_tags.thought_id").
		Having("COUNT(DISTINCT tags.name) = ?", len(s.Names))
	return db.Where("thoughts.id IN (?)", sub)
}
