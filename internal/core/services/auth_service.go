package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/adapters/persistence/repositories"
	"libraryhub/internal/config"
	"libraryhub/internal/core/domain"
	"libraryhub/internal/pkg/imagestore"
	"libraryhub/internal/pkg/jwt"
	"libraryhub/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthService handles registration, login and token lifecycle
type AuthService struct {
	userRepo         repositories.UserRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	uploader         imagestore.Uploader
	cfg              *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	uploader imagestore.Uploader,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		uploader:         uploader,
		cfg:              cfg,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	DOB      string `json:"dob" validate:"required"`
	Gender   string `json:"gender" validate:"required"`
	Address  string `json:"address" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Role     string `json:"role"`
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LoginOutput represents a successful authentication
type LoginOutput struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"-"`
	TokenType    string      `json:"token_type"`
	Role         domain.Role `json:"role"`
	Name         string      `json:"name"`
	ProfileImage *string     `json:"profile_image"`
}

// Register registers a new user. An unrecognized role is coerced to
// the default rather than rejected. A supplied profile image is
// uploaded before the user is stored; upload failure aborts the
// whole registration.
func (s *AuthService) Register(ctx context.Context, input *RegisterInput, imageData []byte) (domain.Role, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return "", err
	}
	if exists {
		return "", domain.ErrUserAlreadyExists
	}

	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return "", err
	}

	role := domain.ParseRole(input.Role)

	var profileImage *string
	if len(imageData) > 0 {
		url, err := s.uploader.Upload(imageData, "profile_"+input.Email)
		if err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrImageUpload, err)
		}
		profileImage = &url
	}

	user := &models.User{
		Name:         input.Name,
		Email:        input.Email,
		Password:     hashedPassword,
		DOB:          input.DOB,
		Gender:       input.Gender,
		Address:      input.Address,
		Phone:        input.Phone,
		Role:         role,
		ProfileImage: profileImage,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", err
	}

	log.Printf("✅ User registered: %s (role: %s)", user.Email, user.Role)
	return role, nil
}

// Login authenticates a user. The ban check runs before password
// verification, so a banned account's password is never checked.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if user.IsBanned {
		reason := "No reason provided"
		if user.BanReason != nil {
			reason = *user.BanReason
		}
		return nil, fmt.Errorf("%w. Reason: %s", domain.ErrUserBanned, reason)
	}

	if !password.Verify(input.Password, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	tokens, err := s.generateTokens(user)
	if err != nil {
		return nil, err
	}

	if err := s.storeRefreshToken(ctx, user.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	log.Printf("✅ User logged in: %s", user.Email)

	return &LoginOutput{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		TokenType:    "bearer",
		Role:         user.Role,
		Name:         user.Name,
		ProfileImage: user.ProfileImage,
	}, nil
}

// Refresh rotates the refresh token and issues a new access token
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginOutput, error) {
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.cfg.JWT.RefreshSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	tokenHash := password.HashToken(refreshToken)

	storedToken, err := s.refreshTokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}

	if storedToken.IsExpired() {
		return nil, domain.ErrTokenExpired
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	if user.IsBanned {
		return nil, domain.ErrUserBanned
	}

	// Token rotation: the presented token is good for one refresh only
	if err := s.refreshTokenRepo.Revoke(ctx, storedToken.ID); err != nil {
		return nil, err
	}

	tokens, err := s.generateTokens(user)
	if err != nil {
		return nil, err
	}

	if err := s.storeRefreshToken(ctx, user.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	return &LoginOutput{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		TokenType:    "bearer",
		Role:         user.Role,
		Name:         user.Name,
		ProfileImage: user.ProfileImage,
	}, nil
}

// Logout revokes the refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	tokenHash := password.HashToken(refreshToken)
	return s.refreshTokenRepo.RevokeByTokenHash(ctx, tokenHash)
}

// ValidateAccessToken validates an access token
func (s *AuthService) ValidateAccessToken(accessToken string) (*jwt.Claims, error) {
	return jwt.ValidateAccessToken(accessToken, s.cfg.JWT.Secret)
}

// generateTokens generates access and refresh tokens
func (s *AuthService) generateTokens(user *models.User) (*TokenPair, error) {
	accessToken, err := jwt.GenerateAccessToken(
		user.ID,
		user.Email,
		user.Name,
		user.Role.String(),
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	tokenID := uuid.New().String()

	refreshToken, err := jwt.GenerateRefreshToken(
		user.ID,
		tokenID,
		s.cfg.JWT.RefreshSecret,
		s.cfg.JWT.RefreshTokenDays,
	)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// storeRefreshToken stores a refresh token in the database
func (s *AuthService) storeRefreshToken(ctx context.Context, userID uint, refreshToken string) error {
	token := &models.RefreshToken{
		UserID:    userID,
		TokenHash: password.HashToken(refreshToken),
		ExpiresAt: jwt.GetExpiryTime(s.cfg.JWT.RefreshTokenDays),
	}

	return s.refreshTokenRepo.Create(ctx, token)
}
