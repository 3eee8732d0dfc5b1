package model

// Prescription represents a resident's prescription header.
type Prescription struct {
	ResidentID string `gorm:"primaryKey;size:64"`

	// Associations
	Items []PrescriptionItem `gorm:"foreignKey:ResidentID;references:ResidentID"`
}

// PrescriptionItem is one medicine annotation; Seq preserves insertion
// order, AtMin is minutes since midnight.
type PrescriptionItem struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	ResidentID string `gorm:"index;size:64;not null"`
	Seq        int    `gorm:"not null"`
	Medicine   string `gorm:"size:128;not null"`
	Dose       string `gorm:"size:64;not null"`
	AtMin      int    `gorm:"not null"`
}
