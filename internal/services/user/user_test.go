package user_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/car-rental/internal/lib/password"
	"github.com/magabrotheeeer/car-rental/internal/models"
	"github.com/magabrotheeeer/car-rental/internal/services/user"
	"github.com/magabrotheeeer/car-rental/internal/storage/repository"
)

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) CreateUser(ctx context.Context, u models.User) (int, error) {
	args := m.Called(ctx, u)
	return args.Int(0), args.Error(1)
}

func (m *UserRepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) ListUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestUserService_Register(t *testing.T) {
	tests := []struct {
		name       string
		req        models.RegisterRequest
		setupMocks func(r *UserRepoMock)
		wantErr    error
	}{
		{
			name: "successful registration stores hash",
			req: models.RegisterRequest{
				Name: "Alice", Email: "alice@example.com", Password: "password123",
			},
			setupMocks: func(r *UserRepoMock) {
				r.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
					// в хранилище уходит bcrypt-хэш, а не исходный пароль
					return u.Email == "alice@example.com" &&
						u.PasswordHash != "password123" &&
						password.CompareHash(u.PasswordHash, "password123") == nil
				})).Return(1, nil).Once()
			},
		},
		{
			name: "duplicate email",
			req: models.RegisterRequest{
				Name: "Alice", Email: "alice@example.com", Password: "password123",
			},
			setupMocks: func(r *UserRepoMock) {
				r.On("CreateUser", mock.Anything, mock.Anything).
					Return(0, fmt.Errorf("storage.CreateUser: %w", repository.ErrEmailTaken)).Once()
			},
			wantErr: repository.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			svc := user.NewUserService(repo, newTestLogger())

			tt.setupMocks(repo)

			err := svc.Register(context.Background(), tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestUserService_Login(t *testing.T) {
	rawPassword := "correctpassword"

	hashedPassword, err := password.GetHash(rawPassword)
	require.NoError(t, err)

	testUser := &models.User{
		ID:           3,
		Name:         "Bob",
		Email:        "bob@example.com",
		PasswordHash: hashedPassword,
	}

	tests := []struct {
		name       string
		req        models.LoginRequest
		setupMocks func(r *UserRepoMock)
		wantUser   *models.User
		wantErr    error
	}{
		{
			name: "successful login",
			req:  models.LoginRequest{Email: "bob@example.com", Password: rawPassword},
			setupMocks: func(r *UserRepoMock) {
				r.On("GetUserByEmail", mock.Anything, "bob@example.com").
					Return(testUser, nil).Once()
			},
			wantUser: &models.User{ID: 3, Name: "Bob", Email: "bob@example.com"},
		},
		{
			name: "wrong password",
			req:  models.LoginRequest{Email: "bob@example.com", Password: "wrongpassword"},
			setupMocks: func(r *UserRepoMock) {
				r.On("GetUserByEmail", mock.Anything, "bob@example.com").
					Return(testUser, nil).Once()
			},
			wantErr: user.ErrInvalidCredentials,
		},
		{
			name: "unknown email looks the same as wrong password",
			req:  models.LoginRequest{Email: "nobody@example.com", Password: rawPassword},
			setupMocks: func(r *UserRepoMock) {
				r.On("GetUserByEmail", mock.Anything, "nobody@example.com").
					Return(nil, fmt.Errorf("storage.GetUserByEmail: %w", repository.ErrUserNotFound)).Once()
			},
			wantErr: user.ErrInvalidCredentials,
		},
		{
			name: "storage error passes through",
			req:  models.LoginRequest{Email: "bob@example.com", Password: rawPassword},
			setupMocks: func(r *UserRepoMock) {
				r.On("GetUserByEmail", mock.Anything, "bob@example.com").
					Return(nil, errors.New("db error")).Once()
			},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			svc := user.NewUserService(repo, newTestLogger())

			tt.setupMocks(repo)

			got, err := svc.Login(context.Background(), tt.req)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantUser != nil:
				require.NoError(t, err)
				// хэш пароля наружу не отдается
				assert.Equal(t, tt.wantUser, got)
			default:
				assert.Error(t, err)
				assert.NotErrorIs(t, err, user.ErrInvalidCredentials)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestUserService_List(t *testing.T) {
	repo := new(UserRepoMock)
	svc := user.NewUserService(repo, newTestLogger())

	expected := []*models.User{
		{ID: 1, Name: "Alice", Email: "alice@example.com"},
		{ID: 2, Name: "Bob", Email: "bob@example.com"},
	}
	repo.On("ListUsers", mock.Anything).Return(expected, nil).Once()

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, expected, got)

	repo.AssertExpectations(t)
}
