package models

import (
	"time"
)

// DefaultEvent is the event name used when a request does not name one.
const DefaultEvent = "Hackathon"

type Project struct {
	ProjectID   int        `gorm:"primaryKey;column:project_id" json:"project_id"`
	Name        string     `gorm:"column:name" json:"name"`
	Description string     `gorm:"column:description" json:"description"`
	Year        int        `gorm:"column:year" json:"year"`
	Event       string     `gorm:"column:event;default:Hackathon" json:"event"`
	Track       string     `gorm:"column:track" json:"track"`
	DevpostURL  string     `gorm:"column:devpost_url" json:"devpost_url"`
	CreateAt    *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt    *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt    *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Scores []Score `gorm:"foreignKey:ProjectID" json:"scores,omitempty"`
}

func (Project) TableName() string {
	return "projects"
}
