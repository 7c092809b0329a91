package services

import (
	"context"
	"errors"
	"testing"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/config"
	"libraryhub/internal/core/domain"
	"libraryhub/internal/pkg/jwt"
	"libraryhub/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  60,
			RefreshTokenDays: 7,
		},
	}
}

func newTestAuthService() (*AuthService, *fakeUserRepo, *fakeRefreshTokenRepo, *fakeUploader) {
	userRepo := newFakeUserRepo()
	tokenRepo := newFakeRefreshTokenRepo()
	uploader := newFakeUploader()
	svc := NewAuthService(userRepo, tokenRepo, uploader, testConfig())
	return svc, userRepo, tokenRepo, uploader
}

func registerInput(email string) *RegisterInput {
	return &RegisterInput{
		Name:     "Alice Reader",
		Email:    email,
		Password: "secret-pass-123",
		DOB:      "1990-01-01",
		Gender:   "female",
		Address:  "1 Library Lane",
		Phone:    "0812345678",
		Role:     "user",
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("stores hashed password", func(t *testing.T) {
		svc, userRepo, _, _ := newTestAuthService()

		role, err := svc.Register(ctx, registerInput("alice@test.com"), nil)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleUser, role)

		user, err := userRepo.GetByEmail(ctx, "alice@test.com")
		require.NoError(t, err)
		assert.NotEqual(t, "secret-pass-123", user.Password)
		assert.True(t, password.Verify("secret-pass-123", user.Password))
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		svc, _, _, _ := newTestAuthService()

		_, err := svc.Register(ctx, registerInput("alice@test.com"), nil)
		require.NoError(t, err)

		_, err = svc.Register(ctx, registerInput("alice@test.com"), nil)
		assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
	})

	t.Run("unknown role coerced to user", func(t *testing.T) {
		svc, userRepo, _, _ := newTestAuthService()

		input := registerInput("bob@test.com")
		input.Role = "superuser"

		role, err := svc.Register(ctx, input, nil)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleUser, role)

		user, _ := userRepo.GetByEmail(ctx, "bob@test.com")
		assert.Equal(t, domain.RoleUser, user.Role)
	})

	t.Run("admin role preserved", func(t *testing.T) {
		svc, _, _, _ := newTestAuthService()

		input := registerInput("root@test.com")
		input.Role = "admin"

		role, err := svc.Register(ctx, input, nil)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, role)
	})

	t.Run("profile image uploaded under email key", func(t *testing.T) {
		svc, userRepo, _, uploader := newTestAuthService()

		_, err := svc.Register(ctx, registerInput("carol@test.com"), []byte("jpeg-bytes"))
		require.NoError(t, err)

		assert.Contains(t, uploader.uploads, "profile_carol@test.com")

		user, _ := userRepo.GetByEmail(ctx, "carol@test.com")
		require.NotNil(t, user.ProfileImage)
		assert.Contains(t, *user.ProfileImage, "profile_carol@test.com")
	})

	t.Run("upload failure aborts registration", func(t *testing.T) {
		svc, userRepo, _, uploader := newTestAuthService()
		uploader.err = errors.New("image host down")

		_, err := svc.Register(ctx, registerInput("dave@test.com"), []byte("jpeg-bytes"))
		assert.ErrorIs(t, err, domain.ErrImageUpload)

		_, err = userRepo.GetByEmail(ctx, "dave@test.com")
		assert.Error(t, err)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*AuthService, *fakeUserRepo) {
		svc, userRepo, _, _ := newTestAuthService()
		_, err := svc.Register(ctx, registerInput("alice@test.com"), nil)
		require.NoError(t, err)
		return svc, userRepo
	}

	t.Run("success returns bearer token with claims", func(t *testing.T) {
		svc, _ := setup(t)

		out, err := svc.Login(ctx, &LoginInput{Email: "alice@test.com", Password: "secret-pass-123"})
		require.NoError(t, err)
		assert.Equal(t, "bearer", out.TokenType)
		assert.Equal(t, domain.RoleUser, out.Role)
		assert.Equal(t, "Alice Reader", out.Name)
		assert.NotEmpty(t, out.RefreshToken)

		claims, err := jwt.ValidateAccessToken(out.AccessToken, "test-secret")
		require.NoError(t, err)
		assert.Equal(t, "alice@test.com", claims.Email)
		assert.Equal(t, "Alice Reader", claims.Name)
		assert.Equal(t, "user", claims.Role)
	})

	t.Run("unknown email rejected", func(t *testing.T) {
		svc, _ := setup(t)

		_, err := svc.Login(ctx, &LoginInput{Email: "nobody@test.com", Password: "whatever-pass"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		svc, _ := setup(t)

		_, err := svc.Login(ctx, &LoginInput{Email: "alice@test.com", Password: "wrong-pass-123"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("banned account blocked even with correct password", func(t *testing.T) {
		svc, userRepo := setup(t)

		user, _ := userRepo.GetByEmail(ctx, "alice@test.com")
		reason := "Overdue fines unpaid"
		user.IsBanned = true
		user.BanReason = &reason

		_, err := svc.Login(ctx, &LoginInput{Email: "alice@test.com", Password: "secret-pass-123"})
		require.ErrorIs(t, err, domain.ErrUserBanned)
		assert.Contains(t, err.Error(), "Reason: Overdue fines unpaid")
	})

	t.Run("ban without reason reports default", func(t *testing.T) {
		svc, userRepo := setup(t)

		user, _ := userRepo.GetByEmail(ctx, "alice@test.com")
		user.IsBanned = true
		user.BanReason = nil

		_, err := svc.Login(ctx, &LoginInput{Email: "alice@test.com", Password: "secret-pass-123"})
		require.ErrorIs(t, err, domain.ErrUserBanned)
		assert.Contains(t, err.Error(), "No reason provided")
	})
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()

	login := func(t *testing.T, svc *AuthService) *LoginOutput {
		out, err := svc.Login(ctx, &LoginInput{Email: "alice@test.com", Password: "secret-pass-123"})
		require.NoError(t, err)
		return out
	}

	t.Run("valid token rotates", func(t *testing.T) {
		svc, _, _, _ := newTestAuthService()
		_, err := svc.Register(ctx, registerInput("alice@test.com"), nil)
		require.NoError(t, err)
		out := login(t, svc)

		refreshed, err := svc.Refresh(ctx, out.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)

		// The presented token was revoked on use
		_, err = svc.Refresh(ctx, out.RefreshToken)
		assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		svc, _, _, _ := newTestAuthService()

		_, err := svc.Refresh(ctx, "not-a-jwt")
		assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	})

	t.Run("banned user cannot refresh", func(t *testing.T) {
		svc, userRepo, _, _ := newTestAuthService()
		_, err := svc.Register(ctx, registerInput("alice@test.com"), nil)
		require.NoError(t, err)
		out := login(t, svc)

		user, _ := userRepo.GetByEmail(ctx, "alice@test.com")
		user.IsBanned = true

		_, err = svc.Refresh(ctx, out.RefreshToken)
		assert.ErrorIs(t, err, domain.ErrUserBanned)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()

	svc, _, tokenRepo, _ := newTestAuthService()
	_, err := svc.Register(ctx, registerInput("alice@test.com"), nil)
	require.NoError(t, err)

	out, err := svc.Login(ctx, &LoginInput{Email: "alice@test.com", Password: "secret-pass-123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, out.RefreshToken))

	_, err = tokenRepo.GetByTokenHash(ctx, password.HashToken(out.RefreshToken))
	assert.Error(t, err)
}

func TestStoredRefreshTokenIsHashed(t *testing.T) {
	ctx := context.Background()

	svc, _, tokenRepo, _ := newTestAuthService()
	_, err := svc.Register(ctx, registerInput("alice@test.com"), nil)
	require.NoError(t, err)

	out, err := svc.Login(ctx, &LoginInput{Email: "alice@test.com", Password: "secret-pass-123"})
	require.NoError(t, err)

	for _, token := range tokenRepo.tokens {
		assert.NotEqual(t, out.RefreshToken, token.TokenHash)
	}
}

func TestUserResponseOmitsPassword(t *testing.T) {
	user := &models.User{
		ID:       1,
		Name:     "Alice",
		Email:    "alice@test.com",
		Password: "$2a$12$hash",
		Role:     domain.RoleUser,
	}

	resp := user.ToResponse()
	assert.Equal(t, "alice@test.com", resp.Email)
	// UserResponse has no password field at all; nothing to leak.
	assert.Equal(t, user.Name, resp.Name)
}
