package handlers

import (
	"errors"
	"strconv"

	"libraryhub/internal/adapters/http/middleware"
	"libraryhub/internal/core/domain"
	"libraryhub/internal/core/services"
	"libraryhub/internal/pkg/pagination"
	"libraryhub/internal/pkg/response"
	"libraryhub/internal/pkg/validate"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles profile and user administration endpoints
type UserHandler struct {
	userService *services.UserService
	validator   *validate.Validator
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService, validator *validate.Validator) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator,
	}
}

// BanRequest represents a ban request body
type BanRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// Me returns the current user's profile
// @Summary Get current user profile
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /auth/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	profile, err := h.userService.GetProfile(c.Context(), claims.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to get profile")
	}

	return response.Success(c, "Profile retrieved successfully", profile)
}

// UpdateProfile applies a partial profile update with an optional image
// @Summary Update own profile
// @Tags Auth
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /auth/profile [put]
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	input := &services.UpdateProfileInput{}
	if v := c.FormValue("name"); v != "" {
		input.Name = &v
	}
	if v := c.FormValue("dob"); v != "" {
		input.DOB = &v
	}
	if v := c.FormValue("gender"); v != "" {
		input.Gender = &v
	}
	if v := c.FormValue("address"); v != "" {
		input.Address = &v
	}
	if v := c.FormValue("phone"); v != "" {
		input.Phone = &v
	}

	imageData, err := readFormFile(c, "profile_image")
	if err != nil {
		return response.BadRequest(c, "Invalid profile image")
	}

	if err := h.userService.UpdateProfile(c.Context(), claims.Email, input, imageData); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, domain.ErrImageUpload):
			return response.InternalServerError(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to update profile")
		}
	}

	return response.Success(c, "Profile updated successfully", nil)
}

// UpdateProfileImage replaces the profile image only
// @Summary Update profile image
// @Tags Auth
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /auth/profile/image [put]
func (h *UserHandler) UpdateProfileImage(c *fiber.Ctx) error {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	imageData, err := readFormFile(c, "profile_image")
	if err != nil || len(imageData) == 0 {
		return response.BadRequest(c, "Profile image is required")
	}

	url, err := h.userService.UpdateProfileImage(c.Context(), claims.Email, imageData)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		default:
			return response.InternalServerError(c, err.Error())
		}
	}

	return response.Success(c, "Profile image updated successfully", fiber.Map{
		"profile_image": url,
	})
}

// ListUsers lists all users (admin only)
// @Summary List all users
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /auth/users [get]
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	result, err := h.userService.ListUsers(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list users")
	}

	return response.Success(c, "Users retrieved successfully", fiber.Map{
		"users": result.Users,
		"meta":  pagination.GetMeta(params, result.Total),
	})
}

// GetUser gets a user by ID (admin only)
// @Summary Get user by ID
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /auth/users/{id} [get]
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	user, err := h.userService.GetUserByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to get user")
	}

	return response.Success(c, "User retrieved successfully", user)
}

// BanUser bans a user (admin only)
// @Summary Ban a user
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param body body BanRequest true "Ban reason"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /auth/users/{id}/ban [post]
func (h *UserHandler) BanUser(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	var req BanRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.Struct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	if err := h.userService.BanUser(c.Context(), id, req.Reason); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, domain.ErrCannotBanAdmin):
			return response.BadRequest(c, "Cannot ban admin users")
		default:
			return response.InternalServerError(c, "Failed to ban user")
		}
	}

	return response.Success(c, "User banned successfully", fiber.Map{
		"reason": req.Reason,
	})
}

// UnbanUser lifts a ban (admin only)
// @Summary Unban a user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /auth/users/{id}/unban [post]
func (h *UserHandler) UnbanUser(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	if err := h.userService.UnbanUser(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to unban user")
	}

	return response.Success(c, "User unbanned successfully", nil)
}

// parseIDParam parses the :id path parameter
func parseIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
