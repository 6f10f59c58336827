package services

import (
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/amey40375/getshiny-mobile-care/models"
)

// MitraRegistration is an applicant's registration data.
type MitraRegistration struct {
	Name         string `json:"name"`
	Address      string `json:"address"`
	WhatsApp     string `json:"whatsapp"`
	Email        string `json:"email"`
	WorkLocation string `json:"work_location"`
}

// MitraService owns mitra applications and their accept/reject workflow.
// It also answers the eligibility question the order lifecycle depends on.
type MitraService struct {
	db *gorm.DB
}

// NewMitraService creates a MitraService.
func NewMitraService(db *gorm.DB) *MitraService {
	return &MitraService{db: db}
}

// Register creates a PENDING application for an account. Each account may
// apply exactly once; REJECTED applications have no resubmission path.
func (s *MitraService) Register(userID string, input MitraRegistration) (*models.MitraProfile, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Address = strings.TrimSpace(input.Address)
	input.WhatsApp = strings.TrimSpace(input.WhatsApp)
	input.Email = strings.TrimSpace(input.Email)
	input.WorkLocation = strings.TrimSpace(input.WorkLocation)

	switch {
	case input.Name == "":
		return nil, &ValidationError{Message: "name is required"}
	case input.Address == "":
		return nil, &ValidationError{Message: "address is required"}
	case input.WhatsApp == "":
		return nil, &ValidationError{Message: "WhatsApp number is required"}
	case input.Email == "":
		return nil, &ValidationError{Message: "email is required"}
	case input.WorkLocation == "":
		return nil, &ValidationError{Message: "work location is required"}
	}

	profile := models.MitraProfile{
		UserID:       userID,
		Name:         input.Name,
		Address:      input.Address,
		WhatsApp:     input.WhatsApp,
		Email:        input.Email,
		WorkLocation: input.WorkLocation,
		Status:       models.ApplicationPending,
	}
	if err := s.db.Create(&profile).Error; err != nil {
		// Works with both PostgreSQL and SQLite constraint messages.
		if strings.Contains(strings.ToLower(err.Error()), "unique") ||
			strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			return nil, &DuplicateError{Message: "this account already has a mitra application"}
		}
		return nil, fmt.Errorf("failed to create mitra application: %w", err)
	}

	log.WithFields(log.Fields{"application_id": profile.ID, "user_id": userID}).
		Info("mitra application registered")
	return &profile, nil
}

// Decide records an administrator's accept/reject decision. Only PENDING
// applications can be decided; re-deciding is reported as a conflict and
// leaves the stored status unchanged.
func (s *MitraService) Decide(applicationID string, decision models.ApplicationStatus) (*models.MitraProfile, error) {
	if decision != models.ApplicationAccepted && decision != models.ApplicationRejected {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid decision %q", string(decision))}
	}

	res := s.db.Model(&models.MitraProfile{}).
		Where("id = ? AND status = ?", applicationID, models.ApplicationPending).
		Update("status", decision)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to decide mitra application: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		var existing models.MitraProfile
		if err := s.db.First(&existing, "id = ?", applicationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &NotFoundError{Resource: "mitra application"}
			}
			return nil, fmt.Errorf("failed to load mitra application: %w", err)
		}
		return nil, &ConflictError{Message: fmt.Sprintf("application was already decided as %s", existing.Status)}
	}

	var profile models.MitraProfile
	if err := s.db.First(&profile, "id = ?", applicationID).Error; err != nil {
		return nil, fmt.Errorf("failed to load mitra application: %w", err)
	}

	log.WithFields(log.Fields{"application_id": applicationID, "decision": decision}).
		Info("mitra application decided")
	return &profile, nil
}

// ListByStatus returns applications, optionally filtered by status, most
// recently created first.
func (s *MitraService) ListByStatus(status *models.ApplicationStatus) ([]models.MitraProfile, error) {
	query := s.db.Order("created_at DESC")
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	var profiles []models.MitraProfile
	if err := query.Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("failed to list mitra applications: %w", err)
	}
	return profiles, nil
}

// GetByUserID loads the application belonging to an account.
func (s *MitraService) GetByUserID(userID string) (*models.MitraProfile, error) {
	var profile models.MitraProfile
	if err := s.db.First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "mitra application"}
		}
		return nil, fmt.Errorf("failed to load mitra application: %w", err)
	}
	return &profile, nil
}

// IsEligiblePartner reports whether an account has an ACCEPTED application.
// The order lifecycle uses this as its authorization check for claim and
// advance.
func (s *MitraService) IsEligiblePartner(userID string) (bool, error) {
	var count int64
	err := s.db.Model(&models.MitraProfile{}).
		Where("user_id = ? AND status = ?", userID, models.ApplicationAccepted).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check mitra eligibility: %w", err)
	}
	return count > 0, nil
}

// AttachDocument stores the S3 key of an applicant's identity document on
// their own application.
func (s *MitraService) AttachDocument(userID, s3Key string) (*models.MitraProfile, error) {
	res := s.db.Model(&models.MitraProfile{}).
		Where("user_id = ?", userID).
		Update("ktp_key", s3Key)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to attach document: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, &NotFoundError{Resource: "mitra application"}
	}
	return s.GetByUserID(userID)
}
