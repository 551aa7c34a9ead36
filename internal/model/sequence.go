package model

// NumberSequence backs the tenant-scoped document number generator. One row
// per (company, kind, year); Value is bumped with a single atomic UPDATE so
// concurrent creators never observe the same number. Rows are never deleted,
// so numbers are never reused even after document soft deletion.
type NumberSequence struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	CompanyID uint   `json:"company_id" gorm:"uniqueIndex:idx_sequence_scope;not null"`
	Kind      string `json:"kind" gorm:"type:varchar(50);uniqueIndex:idx_sequence_scope;not null"`
	Year      int    `json:"year" gorm:"uniqueIndex:idx_sequence_scope;not null"`
	Value     int64  `json:"value" gorm:"not null"`
}
