package usecase

import (
	"context"
	"strings"
	"time"

	"gmrportal/internal/domain/entity"
	"gmrportal/internal/domain/repository"
	"gmrportal/internal/infrastructure/firebase"
	"gmrportal/pkg/errors"
	"gmrportal/pkg/logger"
)

type AuthUseCase struct {
	profileRepo repository.ProfileRepository
	identity    IdentityProvider
}

func NewAuthUseCase(profileRepo repository.ProfileRepository, identity IdentityProvider) *AuthUseCase {
	return &AuthUseCase{
		profileRepo: profileRepo,
		identity:    identity,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

type AuthResult struct {
	Profile      *entity.Profile `json:"profile"`
	Token        string          `json:"token"`
	RefreshToken string          `json:"refresh_token"`
	ExpiresIn    int             `json:"expires_in"`
}

// Register creates the identity and the client profile. A failed profile
// write removes the identity again so the email can be reused.
func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	uid, err := uc.identity.CreateUser(ctx, email, input.Password, input.Name)
	if err != nil {
		if firebase.IsEmailTaken(err) {
			return nil, errors.Conflict("Email already in use")
		}
		return nil, errors.Internal("Failed to create user in authentication provider", err)
	}

	now := time.Now()
	profile := &entity.Profile{
		UserID:    uid,
		Name:      strings.TrimSpace(input.Name),
		Email:     email,
		Phone:     strings.TrimSpace(input.Phone),
		Role:      entity.RoleClient,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.profileRepo.Create(ctx, profile); err != nil {
		if delErr := uc.identity.DeleteUser(ctx, uid); delErr != nil {
			logger.Error("Failed to roll back identity %s after profile error: %v", uid, delErr)
		}
		return nil, errors.Internal("Failed to create user profile", err)
	}

	tokens, err := uc.identity.SignInWithEmailPassword(ctx, email, input.Password)
	if err != nil {
		return nil, errors.Internal("Failed to generate authentication token", err)
	}

	return &AuthResult{
		Profile:      profile,
		Token:        tokens.IDToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
	}, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	tokens, err := uc.identity.SignInWithEmailPassword(ctx, strings.ToLower(strings.TrimSpace(email)), password)
	if err != nil {
		logger.Warn("Login failed: %v", err)
		return nil, errors.Unauthorized("Invalid email or password", err)
	}

	profile, err := uc.profileRepo.GetByUserID(ctx, tokens.UID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		Profile:      profile,
		Token:        tokens.IDToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
	}, nil
}

func (uc *AuthUseCase) RefreshToken(ctx context.Context, refreshToken string) (*AuthResult, error) {
	tokens, err := uc.identity.RefreshIDToken(ctx, refreshToken)
	if err != nil {
		return nil, errors.Unauthorized("Invalid refresh token", err)
	}

	return &AuthResult{
		Token:        tokens.IDToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
	}, nil
}

func (uc *AuthUseCase) Me(ctx context.Context, uid string) (*entity.Profile, error) {
	if uid == "" {
		return nil, errors.Unauthorized("Please sign in to continue", nil)
	}
	return uc.profileRepo.GetByUserID(ctx, uid)
}

// CheckIdentityProvider is used by the health endpoint.
func (uc *AuthUseCase) CheckIdentityProvider(ctx context.Context) error {
	return uc.identity.TestConnection(ctx)
}
