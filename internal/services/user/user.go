// Package user содержит бизнес-логику работы с пользователями:
// регистрацию с хешированием пароля, проверку учетных данных и выдачу списка.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/car-rental/internal/lib/password"
	"github.com/magabrotheeeer/car-rental/internal/models"
	"github.com/magabrotheeeer/car-rental/internal/storage/repository"
)

// ErrInvalidCredentials возвращается при неверной паре email/пароль.
// Неизвестный email и неверный пароль наружу неразличимы.
var ErrInvalidCredentials = errors.New("invalid email or password")

// UserRepository определяет методы для работы с пользователями в хранилище.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его ID.
	CreateUser(ctx context.Context, user models.User) (int, error)
	// GetUserByEmail возвращает пользователя по email или ошибку, если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// ListUsers возвращает список всех пользователей.
	ListUsers(ctx context.Context) ([]*models.User, error)
}

// UserService реализует бизнес-логику работы с пользователями.
type UserService struct {
	repo UserRepository
	log  *slog.Logger
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(repo UserRepository, log *slog.Logger) *UserService {
	return &UserService{
		repo: repo,
		log:  log,
	}
}

// Register создает нового пользователя, сохраняя bcrypt-хэш пароля.
// ID созданной записи наружу не отдается.
func (s *UserService) Register(ctx context.Context, req models.RegisterRequest) error {
	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return err
	}
	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashed,
	}

	id, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		return err
	}

	s.log.Info("registered new user", slog.Int("id", id))
	return nil
}

// Login проверяет учетные данные и возвращает пользователя без хэша пароля.
func (s *UserService) Login(ctx context.Context, req models.LoginRequest) (*models.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := password.CompareHash(user.PasswordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &models.User{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}, nil
}

// List возвращает список всех пользователей.
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	result, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return result, nil
}
