package services

import (
	"context"
	"errors"
	"time"

	"jamaluki-backend/models"
	"jamaluki-backend/store"
	"jamaluki-backend/utils"

	"github.com/sirupsen/logrus"
)

type RegisterInput struct {
	Username           string      `json:"username" validate:"required,min=3,max=50"`
	Password           string      `json:"password" validate:"required,min=6"`
	ConfirmPassword    string      `json:"confirmPassword" validate:"required,eqfield=Password"`
	FullName           string      `json:"fullName" validate:"required"`
	Phone              string      `json:"phone" validate:"required,phone"`
	Email              string      `json:"email" validate:"omitempty,email"`
	UserType           models.Role `json:"userType" validate:"required,oneof=customer salon_owner"`
	IsPrivacyFocused   bool        `json:"isPrivacyFocused"`
	PrefersFemaleStaff bool        `json:"prefersFemaleStaff"`
	PreferredLanguage  string      `json:"preferredLanguage" validate:"omitempty,oneof=ar en"`
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthService registers users and issues tokens for them.
type AuthService struct {
	store     store.Store
	jwtSecret string
	jwtExpiry time.Duration
}

func NewAuthService(s store.Store, jwtSecret string, jwtExpiry time.Duration) *AuthService {
	return &AuthService{store: s, jwtSecret: jwtSecret, jwtExpiry: jwtExpiry}
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, string, error) {
	if err := utils.ValidateStruct(input, "Invalid registration"); err != nil {
		return nil, "", err
	}

	if _, err := s.store.GetUserByUsername(ctx, input.Username); err == nil {
		return nil, "", utils.NewConflictError("Username already taken")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, "", utils.NewInternalError("Failed to check username", err)
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, "", utils.NewInternalError("Failed to hash password", err)
	}

	language := input.PreferredLanguage
	if language == "" {
		language = "ar"
	}
	user := &models.User{
		Username:           input.Username,
		Password:           hashed,
		FullName:           input.FullName,
		Phone:              input.Phone,
		Email:              input.Email,
		UserType:           input.UserType,
		IsPrivacyFocused:   input.IsPrivacyFocused,
		PrefersFemaleStaff: input.PrefersFemaleStaff,
		PreferredLanguage:  language,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, "", utils.NewConflictError("Username already taken")
		}
		return nil, "", utils.NewInternalError("Failed to create user", err)
	}

	token, err := s.issue(user)
	if err != nil {
		return nil, "", err
	}

	logrus.WithFields(logrus.Fields{"user_id": user.ID, "role": user.UserType}).Info("User registered")
	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*models.User, string, error) {
	if err := utils.ValidateStruct(input, "Invalid login"); err != nil {
		return nil, "", err
	}

	user, err := s.store.GetUserByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", utils.NewUnauthenticatedError("Invalid username or password")
		}
		return nil, "", utils.NewInternalError("Failed to load user", err)
	}
	if !utils.CheckPasswordHash(input.Password, user.Password) {
		return nil, "", utils.NewUnauthenticatedError("Invalid username or password")
	}

	token, err := s.issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Me returns the caller's own user record.
func (s *AuthService) Me(ctx context.Context, caller models.Caller) (*models.User, error) {
	if err := requireAuth(caller); err != nil {
		return nil, err
	}
	user, err := s.store.GetUser(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, utils.NewUnauthenticatedError("User no longer exists")
		}
		return nil, utils.NewInternalError("Failed to load user", err)
	}
	return user, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, patch models.UserPatch, caller models.Caller) (*models.User, error) {
	if err := requireAuth(caller); err != nil {
		return nil, err
	}
	if err := utils.ValidateStruct(patch, "Invalid profile"); err != nil {
		return nil, err
	}
	user, err := s.store.UpdateUser(ctx, caller.UserID, patch)
	if err != nil {
		return nil, lookupError(err, "User")
	}
	return user, nil
}

// TokenTTL is how long issued tokens stay valid.
func (s *AuthService) TokenTTL() time.Duration {
	return s.jwtExpiry
}

func (s *AuthService) issue(user *models.User) (string, error) {
	token, err := utils.GenerateToken(s.jwtSecret, s.jwtExpiry, user.ID, user.UserType)
	if err != nil {
		return "", utils.NewInternalError("Failed to generate token", err)
	}
	return token, nil
}
