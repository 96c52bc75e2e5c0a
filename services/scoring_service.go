package services

import (
	"errors"
	"log"
	"sort"
	"time"

	"hackathon-portal-api/config"
	"hackathon-portal-api/models"

	"gorm.io/gorm"
)

// Score values must stay within this inclusive range.
const (
	MinScoreValue = 0.0
	MaxScoreValue = 10.0
)

// ScoringService validates and persists judge scores against the criteria
// registry and computes weighted totals. Validation always completes before
// any write.
type ScoringService struct {
	db       *gorm.DB
	criteria *CriteriaService
	judges   *JudgeService
}

func NewScoringService(db *gorm.DB, criteria *CriteriaService, judges *JudgeService) *ScoringService {
	if db == nil {
		db = config.DB
	}
	if criteria == nil {
		criteria = NewCriteriaService(db)
	}
	if judges == nil {
		judges = NewJudgeService(db)
	}
	return &ScoringService{db: db, criteria: criteria, judges: judges}
}

// SubmitResult couples the persisted score with its weighted total.
type SubmitResult struct {
	Score      *models.Score
	TotalScore float64
}

// Submit records the judge's first score for a project. A second submit for
// the same (judge, project) pair is a conflict and leaves the first intact.
func (s *ScoringService) Submit(actor Actor, projectID int, scoreData models.FloatMap) (*SubmitResult, error) {
	judge, err := s.judges.JudgeByUser(actor.UserID)
	if err != nil {
		return nil, err
	}

	project, err := s.loadProject(projectID)
	if err != nil {
		return nil, err
	}

	set, err := s.criteriaFor(project)
	if err != nil {
		return nil, err
	}
	if err := validateScoreData(set, scoreData); err != nil {
		return nil, err
	}
	total := set.WeightedTotal(scoreData)

	var count int64
	if err := s.db.Model(&models.Score{}).
		Where("judge_id = ? AND project_id = ?", judge.JudgeID, projectID).
		Count(&count).Error; err != nil {
		return nil, DependencyFailure("Failed to check existing score", err)
	}
	if count > 0 {
		return nil, ConflictError("You have already scored this project").
			WithDetail("reason", "ALREADY_SUBMITTED")
	}

	now := time.Now()
	score := models.Score{
		JudgeID:    judge.JudgeID,
		ProjectID:  projectID,
		ScoreData:  scoreData,
		TotalScore: total,
		CreateAt:   &now,
		UpdateAt:   &now,
	}
	if err := s.db.Create(&score).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ConflictError("You have already scored this project").
				WithDetail("reason", "ALREADY_SUBMITTED")
		}
		return nil, DependencyFailure("Failed to create score", err)
	}

	log.Printf("Score %d submitted by judge %d for project %d (total %.2f)", score.ScoreID, judge.JudgeID, projectID, total)
	return &SubmitResult{Score: &score, TotalScore: total}, nil
}

// Update rewrites an existing score through the same validation pipeline,
// resolving the criteria via the score's project, and recomputes the total.
func (s *ScoringService) Update(actor Actor, scoreID int, scoreData models.FloatMap) (*SubmitResult, error) {
	judge, err := s.judges.JudgeByUser(actor.UserID)
	if err != nil {
		return nil, err
	}

	score, err := s.loadScore(scoreID)
	if err != nil {
		return nil, err
	}
	if score.JudgeID != judge.JudgeID {
		return nil, ForbiddenError("You are not authorized to access this resource")
	}

	project, err := s.loadProject(score.ProjectID)
	if err != nil {
		return nil, err
	}

	set, err := s.criteriaFor(project)
	if err != nil {
		return nil, err
	}
	if err := validateScoreData(set, scoreData); err != nil {
		return nil, err
	}
	total := set.WeightedTotal(scoreData)

	now := time.Now()
	if err := s.db.Model(score).Updates(map[string]interface{}{
		"score_data":  scoreData,
		"total_score": total,
		"update_at":   now,
	}).Error; err != nil {
		return nil, DependencyFailure("Failed to update score", err)
	}
	score.ScoreData = scoreData
	score.TotalScore = total
	score.UpdateAt = &now

	log.Printf("Score %d updated by judge %d (total %.2f)", scoreID, judge.JudgeID, total)
	return &SubmitResult{Score: score, TotalScore: total}, nil
}

// GetByJudge lists the requesting judge's own scores.
func (s *ScoringService) GetByJudge(actor Actor) ([]models.Score, error) {
	judge, err := s.judges.JudgeByUser(actor.UserID)
	if err != nil {
		return nil, err
	}

	var scores []models.Score
	if err := s.db.Where("judge_id = ?", judge.JudgeID).Find(&scores).Error; err != nil {
		return nil, DependencyFailure("Failed to fetch scores", err)
	}
	return scores, nil
}

// GetByID returns a single score, readable by its judge or an admin.
func (s *ScoringService) GetByID(actor Actor, scoreID int) (*models.Score, error) {
	score, err := s.loadScore(scoreID)
	if err != nil {
		return nil, err
	}
	if actor.IsAdmin() {
		return score, nil
	}

	judge, err := s.judges.JudgeByUser(actor.UserID)
	if err != nil {
		return nil, err
	}
	if score.JudgeID != judge.JudgeID {
		return nil, ForbiddenError("You are not authorized to access this resource")
	}
	return score, nil
}

// ProjectScoreSummary aggregates every judge's score for one project.
type ProjectScoreSummary struct {
	Scores         []models.Score `json:"scores"`
	AverageScore   float64        `json:"averageScore"`
	NumberOfJudges int            `json:"numberOfJudges"`
}

// ProjectScores returns all scores for a project plus the average total,
// admin only.
func (s *ScoringService) ProjectScores(actor Actor, projectID int) (*ProjectScoreSummary, error) {
	if !actor.IsAdmin() {
		return nil, ForbiddenError("Not authorized to view all scores")
	}

	var scores []models.Score
	if err := s.db.Preload("Judge").Preload("Judge.User").
		Where("project_id = ?", projectID).
		Find(&scores).Error; err != nil {
		return nil, DependencyFailure("Failed to fetch scores", err)
	}

	average := 0.0
	if len(scores) > 0 {
		total := 0.0
		for _, score := range scores {
			total += score.TotalScore
		}
		average = total / float64(len(scores))
	}

	return &ProjectScoreSummary{
		Scores:         scores,
		AverageScore:   average,
		NumberOfJudges: len(scores),
	}, nil
}

// ProjectToJudge is a project plus whether the requesting judge has already
// scored it.
type ProjectToJudge struct {
	models.Project
	Scored bool `json:"scored"`
}

// ProjectsToJudge lists the year's projects on the judge's tracks, marking
// the ones already scored.
func (s *ScoringService) ProjectsToJudge(actor Actor, year int) ([]ProjectToJudge, error) {
	judge, err := s.judges.JudgeByUser(actor.UserID)
	if err != nil {
		return nil, err
	}
	if year == 0 {
		year = time.Now().Year()
	}

	query := s.db.Where("year = ? AND delete_at IS NULL", year)
	if len(judge.Tracks) > 0 && !containsAll(judge.Tracks) {
		query = query.Where("track IN ?", []string(judge.Tracks))
	}

	var projects []models.Project
	if err := query.Find(&projects).Error; err != nil {
		return nil, DependencyFailure("Failed to fetch projects", err)
	}

	var scores []models.Score
	if err := s.db.Where("judge_id = ?", judge.JudgeID).Find(&scores).Error; err != nil {
		return nil, DependencyFailure("Failed to fetch scores", err)
	}
	scored := make(map[int]bool, len(scores))
	for _, score := range scores {
		scored[score.ProjectID] = true
	}

	result := make([]ProjectToJudge, 0, len(projects))
	for _, project := range projects {
		result = append(result, ProjectToJudge{Project: project, Scored: scored[project.ProjectID]})
	}
	return result, nil
}

func (s *ScoringService) criteriaFor(project *models.Project) (*models.JudgingCriteria, error) {
	set, err := s.criteria.Get(project.Year, project.Event)
	if err != nil {
		if svcErr, ok := AsServiceError(err); ok && svcErr.Kind == KindNotFound {
			return nil, NotFoundError("Judging criteria not set for this year").
				WithDetail("reason", "CRITERIA_NOT_SET")
		}
		return nil, err
	}
	return set, nil
}

func (s *ScoringService) loadProject(projectID int) (*models.Project, error) {
	var project models.Project
	if err := s.db.Where("project_id = ? AND delete_at IS NULL", projectID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("Project not found")
		}
		return nil, DependencyFailure("Failed to fetch project", err)
	}
	return &project, nil
}

func (s *ScoringService) loadScore(scoreID int) (*models.Score, error) {
	var score models.Score
	if err := s.db.Where("score_id = ?", scoreID).First(&score).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("Score not found")
		}
		return nil, DependencyFailure("Failed to fetch score", err)
	}
	return &score, nil
}

// validateScoreData checks that the submitted keys match the criteria set
// exactly and every value lies within [0,10]. All shape problems are
// reported before any range problem so a client can fix the payload in one
// round trip.
func validateScoreData(set *models.JudgingCriteria, scoreData models.FloatMap) error {
	if len(scoreData) == 0 {
		return ValidationError("scoreData must not be empty").
			WithDetail("requiredCriteria", sortedNames(set))
	}

	var invalid []string
	for name := range scoreData {
		if _, ok := set.Criteria[name]; !ok {
			invalid = append(invalid, name)
		}
	}
	var missing []string
	for name := range set.Criteria {
		if _, ok := scoreData[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(invalid) > 0 || len(missing) > 0 {
		sort.Strings(invalid)
		sort.Strings(missing)
		return ValidationError("Score data does not match the judging criteria").
			WithDetail("invalidCriteria", invalid).
			WithDetail("missingCriteria", missing).
			WithDetail("validCriteria", sortedNames(set))
	}

	for name, value := range scoreData {
		if value < MinScoreValue || value > MaxScoreValue {
			return ValidationError("Score value out of range, must be between 0 and 10").
				WithDetail("criterion", name)
		}
	}
	return nil
}

func sortedNames(set *models.JudgingCriteria) []string {
	names := set.Names()
	sort.Strings(names)
	return names
}

func containsAll(tracks models.StringList) bool {
	for _, track := range tracks {
		if track == "all" {
			return true
		}
	}
	return false
}
