package model

import "time"

// PushSubscription holds the information for a browser push
// subscription interested in bed-availability notices.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`

	// Associations
	Beds []*Bed `gorm:"many2many:subscription_bed_mapping;"`
}
