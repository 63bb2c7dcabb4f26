package user

import (
	"time"
)

// User represents a user account in the system.
type User struct {
	ID           string `gorm:"primaryKey;type:text"`
	Username     string `gorm:"uniqueIndex;not null;type:text"`
	PasswordHash string `gorm:"not null;type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for the User entity.
func (User) TableName() string {
	return "users"
}

// Claims represents a validated token identity.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}
