package models

import (
	"time"
)

type Judge struct {
	JudgeID int        `gorm:"primaryKey;column:judge_id" json:"judge_id"`
	UserID  int        `gorm:"column:user_id;unique" json:"user_id"`
	Tracks  StringList `gorm:"column:tracks;type:json" json:"tracks"`
	// Access code is issued once at creation and never rotated. Used marks
	// the code consumed after a successful attach.
	AccessCode     string     `gorm:"column:access_code;unique" json:"-"`
	AccessCodeUsed bool       `gorm:"column:access_code_used" json:"access_code_used"`
	CreateAt       *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt       *time.Time `gorm:"column:update_at" json:"update_at"`

	// Relations
	User   User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Scores []Score `gorm:"foreignKey:JudgeID" json:"scores,omitempty"`
}

func (Judge) TableName() string {
	return "judges"
}
