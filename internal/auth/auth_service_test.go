package auth_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"resto-ops/internal/auth"
	autherrors "resto-ops/internal/auth/errors"
	authMock "resto-ops/internal/auth/mock"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func testUser(t *testing.T, password string) *auth.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	return &auth.User{
		ID:           uuid.New(),
		RestaurantID: uuid.New(),
		FirstName:    "Claire",
		LastName:     "Moreau",
		Email:        "claire@resto.example",
		Password:     string(hashed),
		Role:         "Manager",
		IsActive:     true,
	}
}

func signedRefreshToken(t *testing.T, user *auth.User, expiresIn time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":       user.ID.String(),
		"restaurant_id": user.RestaurantID.String(),
		"role":          user.Role,
		"name":          user.DisplayName(),
		"exp":           time.Now().Add(expiresIn).Unix(),
	})
	signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	require.NoError(t, err)
	return signed
}

func TestService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	ctrl := gomock.NewController(t)
	repo := authMock.NewMockRepository(ctrl)
	service := auth.NewService(repo)
	ctx := context.Background()

	password := "motdepasse123"
	user := testUser(t, password)

	t.Run("success issues both tokens", func(t *testing.T) {
		repo.EXPECT().GetByEmail(ctx, user.Email).Return(user, nil)

		access, refresh, resp, err := service.Login(ctx, user.Email, password)

		require.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		assert.Equal(t, user.Email, resp.Email)
		assert.Equal(t, user.RestaurantID.String(), resp.RestaurantID)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo.EXPECT().GetByEmail(ctx, user.Email).Return(user, nil)

		_, _, _, err := service.Login(ctx, user.Email, "pas-le-bon")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		repo.EXPECT().
			GetByEmail(ctx, "nobody@resto.example").
			Return(nil, errors.New("record not found"))

		_, _, _, err := service.Login(ctx, "nobody@resto.example", password)
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}

func TestService_RefreshToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	ctrl := gomock.NewController(t)
	repo := authMock.NewMockRepository(ctrl)
	service := auth.NewService(repo)
	ctx := context.Background()

	user := testUser(t, "motdepasse123")

	t.Run("valid token rotates the pair", func(t *testing.T) {
		repo.EXPECT().GetByID(ctx, user.ID).Return(user, nil)

		refresh := signedRefreshToken(t, user, time.Hour)
		access, newRefresh, resp, err := service.RefreshToken(ctx, refresh)

		require.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, newRefresh)
		assert.Equal(t, user.ID.String(), resp.ID)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		refresh := signedRefreshToken(t, user, -time.Minute)

		_, _, _, err := service.RefreshToken(ctx, refresh)
		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": user.ID.String(),
			"exp":     time.Now().Add(time.Hour).Unix(),
		})
		signed, err := forged.SignedString([]byte("someone-elses-secret"))
		require.NoError(t, err)

		_, _, _, err = service.RefreshToken(ctx, signed)
		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		_, _, _, err := service.RefreshToken(ctx, "pas.un.jwt")
		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})
}

func TestService_GetMe(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := authMock.NewMockRepository(ctrl)
	service := auth.NewService(repo)
	ctx := context.Background()

	t.Run("invalid id", func(t *testing.T) {
		_, err := service.GetMe(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, autherrors.ErrInvalidUserID)
	})

	t.Run("unknown user", func(t *testing.T) {
		id := uuid.New()
		repo.EXPECT().GetByID(ctx, id).Return(nil, errors.New("record not found"))

		_, err := service.GetMe(ctx, id.String())
		assert.ErrorIs(t, err, autherrors.ErrUserNotFound)
	})
}

func TestService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := authMock.NewMockRepository(ctrl)
	service := auth.NewService(repo)
	ctx := context.Background()

	t.Run("unknown role is rejected before any write", func(t *testing.T) {
		_, err := service.Register(ctx, auth.RegisterRequest{
			Email:        "new@resto.example",
			Password:     "motdepasse123",
			FirstName:    "Nora",
			LastName:     "Petit",
			Role:         "Superviseur",
			RestaurantID: uuid.NewString(),
		})
		assert.ErrorIs(t, err, autherrors.ErrInvalidRole)
	})

	t.Run("stores a hashed password", func(t *testing.T) {
		var created *auth.User
		repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, u *auth.User) error {
				created = u
				return nil
			})

		resp, err := service.Register(ctx, auth.RegisterRequest{
			Email:        "new@resto.example",
			Password:     "motdepasse123",
			FirstName:    "Nora",
			LastName:     "Petit",
			Role:         "TeamMember",
			RestaurantID: uuid.NewString(),
		})

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.NotEqual(t, "motdepasse123", created.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("motdepasse123")))
		assert.Equal(t, "new@resto.example", resp.Email)
	})
}
