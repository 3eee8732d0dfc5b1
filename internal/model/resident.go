package model

// Resident represents a resident row in a persisted snapshot.
type Resident struct {
	ID               string `gorm:"primaryKey;size:64"`
	Name             string `gorm:"size:128;not null"`
	Gender           string `gorm:"size:1;not null"`
	MedicalCondition string `gorm:"size:256"`
	Seq              int    `gorm:"not null"`
}
