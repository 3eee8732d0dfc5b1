package model

import "time"

// AuditEntry represents one append-only audit log row.
type AuditEntry struct {
	ID      int64     `gorm:"primaryKey;autoIncrement"`
	StaffID string    `gorm:"size:64;not null"`
	Action  string    `gorm:"size:512;not null"`
	At      time.Time `gorm:"not null"`
}
