package model

import "time"

// Ward represents a ward row in a persisted snapshot. Seq preserves
// insertion order across save/load cycles.
type Ward struct {
	ID        string `gorm:"primaryKey;size:64"`
	Name      string `gorm:"size:128;not null"`
	Seq       int    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Associations
	Rooms []Room `gorm:"foreignKey:WardID"`
}

// Room represents a room row within a ward.
type Room struct {
	ID     string `gorm:"primaryKey;size:64"`
	WardID string `gorm:"index;not null"`
	Seq    int    `gorm:"not null"`

	// Associations
	Beds []Bed `gorm:"foreignKey:RoomID"`
}

// Bed represents a bed row; ResidentID is nil while the bed is vacant.
type Bed struct {
	ID         string  `gorm:"primaryKey;size:64"`
	RoomID     string  `gorm:"index;not null"`
	Seq        int     `gorm:"not null"`
	ResidentID *string `gorm:"size:64"`
}
