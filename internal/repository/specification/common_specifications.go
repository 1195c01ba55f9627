package specification

import (
	"gorm.io/gorm"
)

// ByID filters by primary id
type ByID struct {
	ID int64
}

func (s ByID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

// OwnedBy scopes every read and write to the owning uid. Lookups by primary
// id still carry this to keep tenants from reading each other's rows.
type OwnedBy struct {
	Uid string
}

func (s OwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("uid = ?", s.Uid)
}

// Limit caps the number of rows returned
type Limit struct {
	N int
}

func (s Limit) Apply(db *gorm.DB) *gorm.DB {
	return db.Limit(s.N)
}
