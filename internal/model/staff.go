package model

// Staff represents a staff row in a persisted snapshot.
type Staff struct {
	ID       string `gorm:"primaryKey;size:64"`
	Name     string `gorm:"size:128;not null"`
	Gender   string `gorm:"size:1;not null"`
	Username string `gorm:"size:64"`
	Password string `gorm:"size:128"`
	Role     string `gorm:"size:16;not null"`
	Seq      int    `gorm:"not null"`
}
