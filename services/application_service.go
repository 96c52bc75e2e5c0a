package services

import (
	"context"
	"errors"
	"log"
	"mime/multipart"
	"strings"
	"time"

	"hackathon-portal-api/config"
	"hackathon-portal-api/models"
	"hackathon-portal-api/utils"

	"gorm.io/gorm"
)

// ApplicationService owns the application state machine and the resume
// upload saga. Blob uploads always happen before the relational write so a
// stored row never references a blob that does not exist; compensating
// deletes are best-effort and only logged.
type ApplicationService struct {
	db      *gorm.DB
	storage *ResumeStorage
}

func NewApplicationService(db *gorm.DB, storage *ResumeStorage) *ApplicationService {
	if db == nil {
		db = config.DB
	}
	if storage == nil {
		storage = NewResumeStorage()
	}
	return &ApplicationService{db: db, storage: storage}
}

// ApplicationInput carries the applicant-editable fields.
type ApplicationInput struct {
	ApplicationYear int    `json:"application_year" form:"application_year"`
	Gender          string `json:"gender" form:"gender"`
	Pronouns        string `json:"pronouns" form:"pronouns"`
	Age             int    `json:"age" form:"age"`
	Ethnicity       string `json:"ethnicity" form:"ethnicity"`
	GradYear        int    `json:"grad_year" form:"grad_year"`
	PhoneNumber     string `json:"phone_number" form:"phone_number"`
	School          string `json:"school" form:"school"`
	City            string `json:"city" form:"city"`
	State           string `json:"state" form:"state"`
	Country         string `json:"country" form:"country"`
	EducationLevel  string `json:"education_level" form:"education_level"`
	Major           string `json:"major" form:"major"`
	Diet            string `json:"diet" form:"diet"`
	ShirtSize       string `json:"shirt_size" form:"shirt_size"`
	Sleep           bool   `json:"sleep" form:"sleep"`
	Github          string `json:"github" form:"github"`
	Linkedin        string `json:"linkedin" form:"linkedin"`
	Portfolio       string `json:"portfolio" form:"portfolio"`
	WhyEssay        string `json:"why_essay" form:"why_essay"`

	// Status is never writable through Create/Update; a non-empty value is
	// rejected so clients cannot smuggle state transitions in.
	Status string `json:"status" form:"status"`
}

// Create registers a new application for the current year, with an optional
// resume file.
func (s *ApplicationService) Create(ctx context.Context, actor Actor, input ApplicationInput, file *multipart.FileHeader) (*models.Application, error) {
	currentYear := time.Now().Year()
	if input.ApplicationYear != currentYear {
		return nil, ValidationError("Invalid application year").
			WithDetail("expected_year", currentYear)
	}
	if input.Status != "" {
		return nil, ValidationError("Status cannot be set on an application")
	}

	var count int64
	if err := s.db.Model(&models.Application{}).
		Where("user_id = ? AND application_year = ? AND delete_at IS NULL", actor.UserID, input.ApplicationYear).
		Count(&count).Error; err != nil {
		return nil, DependencyFailure("Failed to check existing applications", err)
	}
	if count > 0 {
		return nil, ConflictError("User already has an application for this year")
	}

	resumePath, err := s.uploadResume(ctx, file)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	application := models.Application{
		UserID:          actor.UserID,
		ApplicationYear: input.ApplicationYear,
		Status:          models.StatusPending,
		ResumePath:      resumePath,
		CreateAt:        &now,
		UpdateAt:        &now,
	}
	applyInput(&application, input)

	if err := s.db.Create(&application).Error; err != nil {
		// The row never made it in, so the uploaded blob is orphaned.
		// Compensate; a failed delete is tolerated and only logged.
		s.deleteBlobBestEffort(ctx, resumePath, "create rollback")

		if isDuplicateKey(err) {
			return nil, ConflictError("User already has an application for this year")
		}
		return nil, DependencyFailure("Failed to create application", err)
	}

	log.Printf("Application %d created by user %d for year %d", application.ApplicationID, actor.UserID, application.ApplicationYear)
	return &application, nil
}

// UpdateInput carries optional field changes; nil pointers leave the stored
// value untouched.
type UpdateInput struct {
	Gender         *string `json:"gender" form:"gender"`
	Pronouns       *string `json:"pronouns" form:"pronouns"`
	Age            *int    `json:"age" form:"age"`
	Ethnicity      *string `json:"ethnicity" form:"ethnicity"`
	GradYear       *int    `json:"grad_year" form:"grad_year"`
	PhoneNumber    *string `json:"phone_number" form:"phone_number"`
	School         *string `json:"school" form:"school"`
	City           *string `json:"city" form:"city"`
	State          *string `json:"state" form:"state"`
	Country        *string `json:"country" form:"country"`
	EducationLevel *string `json:"education_level" form:"education_level"`
	Major          *string `json:"major" form:"major"`
	Diet           *string `json:"diet" form:"diet"`
	ShirtSize      *string `json:"shirt_size" form:"shirt_size"`
	Sleep          *bool   `json:"sleep" form:"sleep"`
	Github         *string `json:"github" form:"github"`
	Linkedin       *string `json:"linkedin" form:"linkedin"`
	Portfolio      *string `json:"portfolio" form:"portfolio"`
	WhyEssay       *string `json:"why_essay" form:"why_essay"`

	Status          *string `json:"status" form:"status"`
	ApplicationYear *int    `json:"application_year" form:"application_year"`
}

// Update edits an owned application. A replacement resume is uploaded before
// the row is rewritten; the old blob is only deleted after the update commits.
func (s *ApplicationService) Update(ctx context.Context, actor Actor, applicationID int, input UpdateInput, file *multipart.FileHeader) (*models.Application, error) {
	application, err := s.load(applicationID)
	if err != nil {
		return nil, err
	}
	if application.UserID != actor.UserID {
		return nil, ForbiddenError("You are not authorized to access this resource")
	}
	if input.Status != nil {
		return nil, ValidationError("Status cannot be changed here; use the confirm endpoint")
	}
	if input.ApplicationYear != nil && *input.ApplicationYear != application.ApplicationYear {
		return nil, ValidationError("Application year cannot be changed")
	}

	newPath, err := s.uploadResume(ctx, file)
	if err != nil {
		return nil, err
	}

	oldPath := application.ResumePath
	if newPath != nil {
		application.ResumePath = newPath
	}
	applyUpdate(application, input)
	now := time.Now()
	application.UpdateAt = &now

	if err := s.db.Save(application).Error; err != nil {
		// Roll back the fresh upload and keep the old blob referenced.
		s.deleteBlobBestEffort(ctx, newPath, "update rollback")
		return nil, DependencyFailure("Failed to update application", err)
	}

	// Update committed; the previous blob is now unreferenced.
	if newPath != nil && oldPath != nil {
		s.deleteBlobBestEffort(ctx, oldPath, "replaced resume cleanup")
	}

	log.Printf("Application %d updated by user %d", application.ApplicationID, actor.UserID)
	return application, nil
}

// ConfirmOrDecline applies the applicant's final decision. Only ACCEPTED
// applications can move, and both outcomes are terminal.
func (s *ApplicationService) ConfirmOrDecline(actor Actor, applicationID int, decision string) (*models.Application, error) {
	if decision != models.StatusConfirmed && decision != models.StatusDeclined {
		return nil, ValidationError("Decision must be CONFIRMED or DECLINED")
	}

	application, err := s.load(applicationID)
	if err != nil {
		return nil, err
	}
	if application.UserID != actor.UserID {
		return nil, ForbiddenError("You are not authorized to access this resource")
	}
	if application.Status != models.StatusAccepted {
		return nil, InvalidStateTransitionError("Only accepted applications can be confirmed or declined").
			WithDetail("current_status", application.Status)
	}

	now := time.Now()
	if err := s.db.Model(application).
		Updates(map[string]interface{}{"status": decision, "update_at": now}).Error; err != nil {
		return nil, DependencyFailure("Failed to update application status", err)
	}
	application.Status = decision
	application.UpdateAt = &now

	log.Printf("Application %d moved to %s by user %d", applicationID, decision, actor.UserID)
	return application, nil
}

// Get returns an application readable by its owner or an admin.
func (s *ApplicationService) Get(actor Actor, applicationID int) (*models.Application, error) {
	application, err := s.load(applicationID)
	if err != nil {
		return nil, err
	}
	if application.UserID != actor.UserID && !actor.IsAdmin() {
		return nil, ForbiddenError("You are not authorized to access this resource")
	}
	return application, nil
}

// ListByUser returns the actor's own applications, newest year first.
func (s *ApplicationService) ListByUser(actor Actor) ([]models.Application, error) {
	var applications []models.Application
	if err := s.db.
		Where("user_id = ? AND delete_at IS NULL", actor.UserID).
		Order("application_year DESC").
		Find(&applications).Error; err != nil {
		return nil, DependencyFailure("Failed to fetch applications", err)
	}
	return applications, nil
}

// Signed resume links default to 15 minutes and are capped at an hour.
const (
	defaultResumeURLMinutes = 15
	maxResumeURLMinutes     = 60
)

// TemporaryResumeURL mints a signed link to the stored resume, readable by
// the owner or an admin.
func (s *ApplicationService) TemporaryResumeURL(actor Actor, applicationID, ttlMinutes int) (*TemporaryURL, error) {
	if ttlMinutes <= 0 {
		ttlMinutes = defaultResumeURLMinutes
	}
	if ttlMinutes > maxResumeURLMinutes {
		ttlMinutes = maxResumeURLMinutes
	}

	application, err := s.load(applicationID)
	if err != nil {
		return nil, err
	}
	if application.UserID != actor.UserID && !actor.IsAdmin() {
		return nil, ForbiddenError("You are not authorized to access this resource")
	}
	if application.ResumePath == nil || *application.ResumePath == "" {
		return nil, NotFoundError("No resume attached to this application")
	}

	return s.storage.SignTemporaryURL(*application.ResumePath, time.Duration(ttlMinutes)*time.Minute)
}

// AdminSetStatus applies the admin decision on a pending application.
func (s *ApplicationService) AdminSetStatus(actor Actor, applicationID int, status string) (*models.Application, error) {
	if !actor.IsAdmin() {
		return nil, ForbiddenError("Admin access required")
	}
	switch status {
	case models.StatusAccepted, models.StatusWaitlisted, models.StatusRejected:
	default:
		return nil, ValidationError("Status must be ACCEPTED, WAITLISTED or REJECTED")
	}

	application, err := s.load(applicationID)
	if err != nil {
		return nil, err
	}
	if application.IsTerminal() {
		return nil, InvalidStateTransitionError("Application has already been confirmed or declined").
			WithDetail("current_status", application.Status)
	}

	now := time.Now()
	if err := s.db.Model(application).
		Updates(map[string]interface{}{"status": status, "update_at": now}).Error; err != nil {
		return nil, DependencyFailure("Failed to update application status", err)
	}
	application.Status = status
	application.UpdateAt = &now

	log.Printf("Application %d moved to %s by admin %d", applicationID, status, actor.UserID)
	return application, nil
}

// AdminDelete removes an application outright. The unique (user, year) index
// spans every row, so the row is hard-deleted to free the slot for a
// re-application; the resume blob is removed best-effort afterwards.
func (s *ApplicationService) AdminDelete(ctx context.Context, actor Actor, applicationID int) error {
	if !actor.IsAdmin() {
		return ForbiddenError("Admin access required")
	}

	application, err := s.load(applicationID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(&models.Application{}, "application_id = ?", applicationID).Error; err != nil {
		return DependencyFailure("Failed to delete application", err)
	}

	s.deleteBlobBestEffort(ctx, application.ResumePath, "application delete cleanup")

	log.Printf("Application %d deleted by admin %d", applicationID, actor.UserID)
	return nil
}

func (s *ApplicationService) load(applicationID int) (*models.Application, error) {
	var application models.Application
	if err := s.db.
		Where("application_id = ? AND delete_at IS NULL", applicationID).
		First(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("Application not found")
		}
		return nil, DependencyFailure("Failed to fetch application", err)
	}
	return &application, nil
}

// uploadResume validates and uploads an optional multipart file, returning
// the stored blob path or nil when no file was supplied.
func (s *ApplicationService) uploadResume(ctx context.Context, file *multipart.FileHeader) (*string, error) {
	if file == nil {
		return nil, nil
	}
	if ok, reason := utils.ValidateResumeFile(file); !ok {
		return nil, ValidationError(reason)
	}

	src, err := file.Open()
	if err != nil {
		return nil, ValidationError("Unable to read uploaded file")
	}
	defer src.Close()

	blobPath, err := s.storage.Upload(ctx, file.Filename, file.Header.Get("Content-Type"), src)
	if err != nil {
		return nil, err
	}
	return &blobPath, nil
}

func (s *ApplicationService) deleteBlobBestEffort(ctx context.Context, blobPath *string, reason string) {
	if blobPath == nil || *blobPath == "" {
		return
	}
	if err := s.storage.Delete(ctx, *blobPath); err != nil {
		log.Printf("Warning: %s: could not delete blob %s: %v", reason, *blobPath, err)
	}
}

func applyInput(application *models.Application, input ApplicationInput) {
	application.Gender = input.Gender
	application.Pronouns = input.Pronouns
	application.Age = input.Age
	application.Ethnicity = input.Ethnicity
	application.GradYear = input.GradYear
	application.PhoneNumber = input.PhoneNumber
	application.School = input.School
	application.City = input.City
	application.State = input.State
	application.Country = input.Country
	application.EducationLevel = input.EducationLevel
	application.Major = input.Major
	application.Diet = input.Diet
	application.ShirtSize = input.ShirtSize
	application.Sleep = input.Sleep
	application.Github = input.Github
	application.Linkedin = input.Linkedin
	application.Portfolio = input.Portfolio
	application.WhyEssay = input.WhyEssay
}

func applyUpdate(application *models.Application, input UpdateInput) {
	if input.Gender != nil {
		application.Gender = *input.Gender
	}
	if input.Pronouns != nil {
		application.Pronouns = *input.Pronouns
	}
	if input.Age != nil {
		application.Age = *input.Age
	}
	if input.Ethnicity != nil {
		application.Ethnicity = *input.Ethnicity
	}
	if input.GradYear != nil {
		application.GradYear = *input.GradYear
	}
	if input.PhoneNumber != nil {
		application.PhoneNumber = *input.PhoneNumber
	}
	if input.School != nil {
		application.School = *input.School
	}
	if input.City != nil {
		application.City = *input.City
	}
	if input.State != nil {
		application.State = *input.State
	}
	if input.Country != nil {
		application.Country = *input.Country
	}
	if input.EducationLevel != nil {
		application.EducationLevel = *input.EducationLevel
	}
	if input.Major != nil {
		application.Major = *input.Major
	}
	if input.Diet != nil {
		application.Diet = *input.Diet
	}
	if input.ShirtSize != nil {
		application.ShirtSize = *input.ShirtSize
	}
	if input.Sleep != nil {
		application.Sleep = *input.Sleep
	}
	if input.Github != nil {
		application.Github = *input.Github
	}
	if input.Linkedin != nil {
		application.Linkedin = *input.Linkedin
	}
	if input.Portfolio != nil {
		application.Portfolio = *input.Portfolio
	}
	if input.WhyEssay != nil {
		application.WhyEssay = *input.WhyEssay
	}
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// MySQL 1062 without gorm error translation enabled.
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}
