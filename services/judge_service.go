package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"hackathon-portal-api/config"
	"hackathon-portal-api/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var errAccessCodeConsumed = errors.New("access code already consumed")

// JudgeService creates judge records and reconciles them to real users via
// single-use access codes.
type JudgeService struct {
	db *gorm.DB
}

func NewJudgeService(db *gorm.DB) *JudgeService {
	if db == nil {
		db = config.DB
	}
	return &JudgeService{db: db}
}

type CreateJudgeInput struct {
	UserID      *int     `json:"userId"`
	Tracks      []string `json:"tracks"`
	NotifyEmail string   `json:"notifyEmail"`
}

// CreateJudgeResult carries the created judge plus, for placeholder judges,
// the access code to hand out.
type CreateJudgeResult struct {
	Judge      *models.Judge
	AccessCode string
}

// CreateJudge registers a judge. With a userId the judge binds to that user
// directly; without one a placeholder user is created so the row satisfies
// its FK until somebody claims it with the access code.
func (s *JudgeService) CreateJudge(actor Actor, input CreateJudgeInput) (*CreateJudgeResult, error) {
	if !actor.IsAdmin() {
		return nil, ForbiddenError("You are not authorized to create a judge")
	}

	accessCode := newAccessCode()
	tracks := input.Tracks
	if len(tracks) == 0 {
		tracks = []string{"all"}
	}

	if input.UserID != nil {
		return s.createBoundJudge(*input.UserID, accessCode, tracks)
	}
	return s.createPlaceholderJudge(accessCode, tracks, input.NotifyEmail)
}

func (s *JudgeService) createBoundJudge(userID int, accessCode string, tracks []string) (*CreateJudgeResult, error) {
	var user models.User
	if err := s.db.Where("user_id = ? AND delete_at IS NULL", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("User not found")
		}
		return nil, DependencyFailure("Failed to fetch user", err)
	}

	now := time.Now()
	judge := models.Judge{
		UserID:     userID,
		Tracks:     tracks,
		AccessCode: accessCode,
		CreateAt:   &now,
		UpdateAt:   &now,
	}
	if err := s.db.Create(&judge).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ConflictError("User is already a judge")
		}
		return nil, DependencyFailure("Failed to create judge", err)
	}
	judge.User = user

	log.Printf("Judge %d created for user %d", judge.JudgeID, userID)
	return &CreateJudgeResult{Judge: &judge}, nil
}

func (s *JudgeService) createPlaceholderJudge(accessCode string, tracks []string, notifyEmail string) (*CreateJudgeResult, error) {
	// Placeholder accounts never log in; the password is random and hashed
	// only so the column is not a usable credential.
	hashed, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return nil, DependencyFailure("Failed to create placeholder credentials", err)
	}

	now := time.Now()
	var judge models.Judge
	err = s.db.Transaction(func(tx *gorm.DB) error {
		user := models.User{
			Email:         fmt.Sprintf("judge-%s@placeholder.invalid", accessCode),
			FirstName:     "Judge",
			LastName:      strings.ToUpper(accessCode),
			Password:      string(hashed),
			Role:          models.RoleUser,
			IsPlaceholder: true,
			CreateAt:      &now,
			UpdateAt:      &now,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		judge = models.Judge{
			UserID:     user.UserID,
			Tracks:     tracks,
			AccessCode: accessCode,
			CreateAt:   &now,
			UpdateAt:   &now,
		}
		if err := tx.Create(&judge).Error; err != nil {
			return err
		}
		judge.User = user
		return nil
	})
	if err != nil {
		return nil, DependencyFailure("Failed to create judge with placeholder user", err)
	}

	// Out-of-band code distribution is advisory; a mail failure never fails
	// the create.
	if notifyEmail != "" {
		body := fmt.Sprintf("<p>You have been invited to judge. Your access code is <b>%s</b>.</p>", accessCode)
		if err := config.SendMail([]string{notifyEmail}, "Judge access code", body); err != nil {
			log.Printf("Warning: could not email access code to %s: %v", notifyEmail, err)
		}
	}

	log.Printf("Judge %d created with placeholder user %d", judge.JudgeID, judge.UserID)
	return &CreateJudgeResult{Judge: &judge, AccessCode: accessCode}, nil
}

// AttachJudgeToUser repoints the judge at the requesting user. The repoint
// and code consumption commit together; deleting a leftover placeholder user
// afterwards is best-effort and never unwinds the attach.
func (s *JudgeService) AttachJudgeToUser(actor Actor, accessCode string, targetUserID int) (*models.Judge, error) {
	if accessCode == "" || targetUserID == 0 {
		return nil, ValidationError("access_code and userId are required")
	}
	if actor.UserID != targetUserID {
		log.Printf("Attempted unauthorized judge attach to user %d by user %d", targetUserID, actor.UserID)
		return nil, ForbiddenError("You are not authorized to access this resource")
	}

	var judge models.Judge
	if err := s.db.Preload("User").Where("access_code = ?", accessCode).First(&judge).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("Judge not found")
		}
		return nil, DependencyFailure("Failed to fetch judge", err)
	}
	if judge.AccessCodeUsed {
		return nil, ConflictError("Access code has already been used")
	}

	var target models.User
	if err := s.db.Where("user_id = ? AND delete_at IS NULL", targetUserID).First(&target).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("User not found")
		}
		return nil, DependencyFailure("Failed to fetch user", err)
	}

	placeholderID := 0
	if judge.User.IsPlaceholder {
		placeholderID = judge.UserID
	}

	now := time.Now()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Conditioned on the unconsumed code so two concurrent attaches
		// cannot both win; the loser sees zero rows updated.
		result := tx.Model(&models.Judge{}).
			Where("judge_id = ? AND access_code_used = ?", judge.JudgeID, false).
			Updates(map[string]interface{}{
				"user_id":          targetUserID,
				"access_code_used": true,
				"update_at":        now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errAccessCodeConsumed
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errAccessCodeConsumed) {
			return nil, ConflictError("Access code has already been used")
		}
		if isDuplicateKey(err) {
			return nil, ConflictError("User is already attached to a judge")
		}
		return nil, DependencyFailure("Failed to attach judge to user", err)
	}

	// Advisory cleanup after the commit: the judge no longer references the
	// placeholder, so a failed delete only leaves a dangling account.
	if placeholderID != 0 {
		if err := s.db.Delete(&models.User{}, "user_id = ?", placeholderID).Error; err != nil {
			log.Printf("Warning: could not delete placeholder user %d: %v", placeholderID, err)
		}
	}

	judge.UserID = targetUserID
	judge.AccessCodeUsed = true
	judge.UpdateAt = &now
	judge.User = target

	log.Printf("Judge %d attached to user %d", judge.JudgeID, targetUserID)
	return &judge, nil
}

// JudgeByUser resolves the judge record bound to a user, if any.
func (s *JudgeService) JudgeByUser(userID int) (*models.Judge, error) {
	var judge models.Judge
	if err := s.db.Where("user_id = ?", userID).First(&judge).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ForbiddenError("You are not authorized to judge projects")
		}
		return nil, DependencyFailure("Failed to fetch judge", err)
	}
	return &judge, nil
}

func newAccessCode() string {
	// First uuid group: 8 hex chars, unique enough under the DB's unique
	// index which remains the arbiter.
	return strings.Split(uuid.NewString(), "-")[0]
}
