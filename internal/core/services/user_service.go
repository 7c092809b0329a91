package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/adapters/persistence/repositories"
	"libraryhub/internal/core/domain"
	"libraryhub/internal/pkg/imagestore"

	"gorm.io/gorm"
)

// UserService handles profile and user administration
type UserService struct {
	userRepo repositories.UserRepository
	uploader imagestore.Uploader
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, uploader imagestore.Uploader) *UserService {
	return &UserService{
		userRepo: userRepo,
		uploader: uploader,
	}
}

// UpdateProfileInput represents a partial profile update.
// Nil fields are left untouched.
type UpdateProfileInput struct {
	Name    *string `json:"name"`
	DOB     *string `json:"dob"`
	Gender  *string `json:"gender"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
}

// ListUsersOutput represents list users output
type ListUsersOutput struct {
	Users []*models.UserResponse `json:"users"`
	Total int64                  `json:"total"`
}

// GetProfile gets a profile by email
func (s *UserService) GetProfile(ctx context.Context, email string) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user.ToResponse(), nil
}

// UpdateProfile applies a partial profile update; only supplied fields
// are written. A supplied image follows the registration upload contract.
func (s *UserService) UpdateProfile(ctx context.Context, email string, input *UpdateProfileInput, imageData []byte) error {
	if _, err := s.userRepo.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	fields := map[string]interface{}{}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.DOB != nil {
		fields["dob"] = *input.DOB
	}
	if input.Gender != nil {
		fields["gender"] = *input.Gender
	}
	if input.Address != nil {
		fields["address"] = *input.Address
	}
	if input.Phone != nil {
		fields["phone"] = *input.Phone
	}

	if len(imageData) > 0 {
		url, err := s.uploader.Upload(imageData, "profile_"+email)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrImageUpload, err)
		}
		fields["profile_image"] = url
	}

	return s.userRepo.UpdateFields(ctx, email, fields)
}

// UpdateProfileImage replaces the profile image and returns the new URL
func (s *UserService) UpdateProfileImage(ctx context.Context, email string, imageData []byte) (string, error) {
	if _, err := s.userRepo.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrUserNotFound
		}
		return "", err
	}

	url, err := s.uploader.Upload(imageData, "profile_"+email)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrImageUpload, err)
	}

	if err := s.userRepo.UpdateFields(ctx, email, map[string]interface{}{
		"profile_image": url,
	}); err != nil {
		return "", err
	}

	return url, nil
}

// ListUsers lists all users (admin)
func (s *UserService) ListUsers(ctx context.Context, offset, limit int) (*ListUsersOutput, error) {
	users, total, err := s.userRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}

	return &ListUsersOutput{Users: responses, Total: total}, nil
}

// GetUserByID gets a user by ID (admin)
func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user.ToResponse(), nil
}

// BanUser bans a user with a reason. Admin accounts cannot be banned.
func (s *UserService) BanUser(ctx context.Context, id uint, reason string) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	if user.Role.IsAdmin() {
		return domain.ErrCannotBanAdmin
	}

	now := time.Now()
	user.IsBanned = true
	user.BanReason = &reason
	user.BannedAt = &now

	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	log.Printf("🚫 User banned: %s (reason: %s)", user.Email, reason)
	return nil
}

// UnbanUser lifts a ban and clears the reason and timestamp
func (s *UserService) UnbanUser(ctx context.Context, id uint) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	return s.userRepo.UpdateFields(ctx, user.Email, map[string]interface{}{
		"is_banned":  false,
		"ban_reason": nil,
		"banned_at":  nil,
	})
}
