package models

import (
	"time"
)

// JudgingCriteria is the weighted criteria set for one (year, event).
// The criteria map is immutable once created; there is no partial update.
type JudgingCriteria struct {
	CriteriaID int         `gorm:"primaryKey;column:criteria_id" json:"criteria_id"`
	Year       int         `gorm:"column:year;uniqueIndex:idx_year_event" json:"year"`
	Event      string      `gorm:"column:event;uniqueIndex:idx_year_event" json:"event"`
	Criteria   CriteriaMap `gorm:"column:criteria;type:json" json:"criteria"`
	CreateAt   *time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt   *time.Time  `gorm:"column:update_at" json:"update_at"`
}

func (JudgingCriteria) TableName() string {
	return "judging_criteria"
}

// Names returns the criterion names of the set.
func (c *JudgingCriteria) Names() []string {
	names := make([]string, 0, len(c.Criteria))
	for name := range c.Criteria {
		names = append(names, name)
	}
	return names
}

// WeightedTotal computes sum(value * weight) over every criterion in the
// set. Callers must have validated that values covers exactly the set.
func (c *JudgingCriteria) WeightedTotal(values FloatMap) float64 {
	total := 0.0
	for name, criterion := range c.Criteria {
		total += values[name] * criterion.Weight
	}
	return total
}

// Score is one judge's evaluation of one project. The (judge, project) pair
// is unique; updates rewrite the same row.
type Score struct {
	ScoreID    int        `gorm:"primaryKey;column:score_id" json:"score_id"`
	JudgeID    int        `gorm:"column:judge_id;uniqueIndex:idx_judge_project" json:"judge_id"`
	ProjectID  int        `gorm:"column:project_id;uniqueIndex:idx_judge_project" json:"project_id"`
	ScoreData  FloatMap   `gorm:"column:score_data;type:json" json:"score_data"`
	TotalScore float64    `gorm:"column:total_score" json:"total_score"`
	CreateAt   *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt   *time.Time `gorm:"column:update_at" json:"update_at"`

	// Relations
	Judge   Judge   `gorm:"foreignKey:JudgeID" json:"judge,omitempty"`
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}

func (Score) TableName() string {
	return "scores"
}
