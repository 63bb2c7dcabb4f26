package tracker

import (
	"time"
)

// Project represents a project owned by a single user.
type Project struct {
	ID          string `gorm:"primaryKey;type:text"`
	UserID      string `gorm:"index;not null;type:text"`
	Title       string `gorm:"size:100;not null"`
	Description string `gorm:"size:500"`
	CreatedAt   time.Time
	Tasks       []Task `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProjectID"`
}

// TableName returns the table name for the Project entity.
func (Project) TableName() string {
	return "projects"
}

// Task represents a unit of work inside a project.
type Task struct {
	ID          string `gorm:"primaryKey;type:text"`
	ProjectID   string `gorm:"index;not null;type:text"`
	Title       string `gorm:"not null"`
	DueDate     *time.Time
	IsCompleted bool `gorm:"not null;default:false"`
	CreatedAt   time.Time
}

// TableName returns the table name for the Task entity.
func (Task) TableName() string {
	return "tasks"
}
