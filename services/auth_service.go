package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/itz-me-mohammed/CalTrack/models"
	"github.com/itz-me-mohammed/CalTrack/utils"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService { return &AuthService{db: db} }

// Register creates the profile row. DisplayName falls back to the local part
// of the email, matching the app's signup behavior.
func (s *AuthService) Register(email, password, displayName string) (*models.User, error) {
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	if displayName == "" {
		displayName = strings.SplitN(email, "@", 2)[0]
	}

	user := models.User{
		Email:       email,
		Password:    hashed,
		DisplayName: displayName,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate checks the password and issues a signed token.
func (s *AuthService) Authenticate(email, password string) (string, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return "", ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return "", ErrInvalidCredentials
	}
	return utils.GenerateJWT(user.ID, user.Email)
}

func (s *AuthService) FindUserByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile changes the display name and bumps updated_at.
func (s *AuthService) UpdateProfile(id uuid.UUID, displayName string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	user.DisplayName = displayName
	user.UpdatedAt = time.Now()
	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
