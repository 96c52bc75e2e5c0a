package models

import (
	"time"
)

// Application status values. PENDING applications are moved to ACCEPTED,
// WAITLISTED or REJECTED by an admin; only the applicant can then move an
// ACCEPTED application to CONFIRMED or DECLINED, and both are terminal.
const (
	StatusPending    = "PENDING"
	StatusAccepted   = "ACCEPTED"
	StatusWaitlisted = "WAITLISTED"
	StatusRejected   = "REJECTED"
	StatusConfirmed  = "CONFIRMED"
	StatusDeclined   = "DECLINED"
)

type Application struct {
	ApplicationID   int    `gorm:"primaryKey;column:application_id" json:"application_id"`
	UserID          int    `gorm:"column:user_id;uniqueIndex:idx_user_year" json:"user_id"`
	ApplicationYear int    `gorm:"column:application_year;uniqueIndex:idx_user_year" json:"application_year"`
	Status          string `gorm:"column:status;default:PENDING" json:"status"`

	Gender         string `gorm:"column:gender" json:"gender"`
	Pronouns       string `gorm:"column:pronouns" json:"pronouns"`
	Age            int    `gorm:"column:age" json:"age"`
	Ethnicity      string `gorm:"column:ethnicity" json:"ethnicity"`
	GradYear       int    `gorm:"column:grad_year" json:"grad_year"`
	PhoneNumber    string `gorm:"column:phone_number" json:"phone_number"`
	School         string `gorm:"column:school" json:"school"`
	City           string `gorm:"column:city" json:"city"`
	State          string `gorm:"column:state" json:"state"`
	Country        string `gorm:"column:country" json:"country"`
	EducationLevel string `gorm:"column:education_level" json:"education_level"`
	Major          string `gorm:"column:major" json:"major"`
	Diet           string `gorm:"column:diet" json:"diet"`
	ShirtSize      string `gorm:"column:shirt_size" json:"shirt_size"`
	Sleep          bool   `gorm:"column:sleep" json:"sleep"`
	Github         string `gorm:"column:github" json:"github"`
	Linkedin       string `gorm:"column:linkedin" json:"linkedin"`
	Portfolio      string `gorm:"column:portfolio" json:"portfolio"`
	WhyEssay       string `gorm:"column:why_essay" json:"why_essay"`

	// Blob path inside the resume store, never a direct URL. Use the
	// resume URL endpoint to mint a temporary signed link.
	ResumePath *string `gorm:"column:resume_path" json:"resume_path,omitempty"`

	CreateAt *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Application) TableName() string {
	return "applications"
}

// IsDecided reports whether an admin has already moved the application out
// of PENDING.
func (a *Application) IsDecided() bool {
	return a.Status != StatusPending
}

// IsTerminal reports whether the applicant has already confirmed or declined.
func (a *Application) IsTerminal() bool {
	return a.Status == StatusConfirmed || a.Status == StatusDeclined
}
