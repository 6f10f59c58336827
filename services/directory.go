package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/amey40375/getshiny-mobile-care/models"
)

// Directory is the single authoritative lookup for routing identities.
// The prototype reinvented "find the admin to message" in several places
// with ad hoc fallbacks; every consumer now goes through here.
type Directory struct {
	db *gorm.DB
}

// NewDirectory creates a Directory.
func NewDirectory(db *gorm.DB) *Directory {
	return &Directory{db: db}
}

// AdminID returns the account id of the administrator. There is one admin
// account per tenant; the oldest admin profile wins if the data ever holds
// more than one.
func (d *Directory) AdminID() (string, error) {
	var profile models.Profile
	err := d.db.Where("role = ?", models.RoleAdmin).
		Order("created_at ASC").
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", &NotFoundError{Resource: "administrator"}
		}
		return "", fmt.Errorf("failed to look up administrator: %w", err)
	}
	return profile.AccountID, nil
}

// ProfileByAccountID loads the profile for an account identity.
func (d *Directory) ProfileByAccountID(accountID string) (*models.Profile, error) {
	var profile models.Profile
	if err := d.db.First(&profile, "account_id = ?", accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "profile"}
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return &profile, nil
}
