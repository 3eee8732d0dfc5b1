package model

// Shift represents one roster assignment. Seq preserves global
// assignment order; Start/End are minutes since midnight.
type Shift struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	StaffID  string `gorm:"index;size:64;not null"`
	Seq      int    `gorm:"not null"`
	Day      int    `gorm:"not null"`
	StartMin int    `gorm:"not null"`
	EndMin   int    `gorm:"not null"`
}

// DoctorPresence flags whether a doctor is present on a day of week
// (time.Weekday numbering).
type DoctorPresence struct {
	Day     int  `gorm:"primaryKey"`
	Present bool `gorm:"not null"`
}
