// Package car содержит бизнес-логику управления автопарком, включая кеширование
// карточек автомобилей в Redis.
package car

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/car-rental/internal/models"
)

// cacheTTL время жизни карточки автомобиля в кеше.
const cacheTTL = time.Hour

// CarRepository определяет методы для работы с автомобилями в хранилище.
type CarRepository interface {
	// CreateCar добавляет новый автомобиль и возвращает его ID.
	CreateCar(ctx context.Context, car models.Car) (int, error)
	// ReadCar возвращает автомобиль по ID.
	ReadCar(ctx context.Context, id int) (*models.Car, error)
	// UpdateCar обновляет данные автомобиля по ID.
	UpdateCar(ctx context.Context, car models.Car, id int) (int, error)
	// RemoveCar удаляет автомобиль по ID и возвращает количество удалённых записей.
	RemoveCar(ctx context.Context, id int) (int, error)
	// ListCars возвращает список всех автомобилей.
	ListCars(ctx context.Context) ([]*models.Car, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// CarService реализует бизнес-логику работы с автопарком, включая кеширование.
type CarService struct {
	repo  CarRepository
	cache Cache
	log   *slog.Logger
}

// NewCarService создает новый экземпляр CarService.
func NewCarService(repo CarRepository, cache Cache, log *slog.Logger) *CarService {
	return &CarService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// CacheKey возвращает ключ кеша для автомобиля с данным ID.
func CacheKey(id int) string {
	return fmt.Sprintf("car:%d", id)
}

// Create добавляет новый автомобиль и возвращает его ID.
// Статус выставляется хранилищем (available).
func (s *CarService) Create(ctx context.Context, req models.CreateCarRequest) (int, error) {
	car := models.Car{
		Brand:       req.Brand,
		Model:       req.Model,
		Year:        req.Year,
		PricePerDay: req.PricePerDay,
	}

	id, err := s.repo.CreateCar(ctx, car)
	if err != nil {
		return 0, err
	}

	s.log.Info("created new car", slog.Int("id", id))
	return id, nil
}

// Read возвращает автомобиль по ID, используя кеш или репозиторий.
func (s *CarService) Read(ctx context.Context, id int) (*models.Car, error) {
	var result *models.Car
	cacheKey := CacheKey(id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read car from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found && result != nil {
		return result, nil
	}

	result, err = s.repo.ReadCar(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, result, cacheTTL); err != nil {
		s.log.Warn("failed to cache car", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// Update полностью перезаписывает данные автомобиля и инвалидирует кеш.
// Возвращает количество изменённых строк.
func (s *CarService) Update(ctx context.Context, id int, req models.UpdateCarRequest) (int, error) {
	car := models.Car{
		Brand:       req.Brand,
		Model:       req.Model,
		Year:        req.Year,
		PricePerDay: req.PricePerDay,
		Status:      req.Status,
	}

	count, err := s.repo.UpdateCar(ctx, car, id)
	if err != nil {
		return 0, err
	}

	cacheKey := CacheKey(id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove car from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return count, nil
}

// Remove удаляет автомобиль по ID и инвалидирует кеш.
// Возвращает количество удалённых строк.
func (s *CarService) Remove(ctx context.Context, id int) (int, error) {
	cacheKey := CacheKey(id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove car from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}

	count, err := s.repo.RemoveCar(ctx, id)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// List возвращает список всех автомобилей.
func (s *CarService) List(ctx context.Context) ([]*models.Car, error) {
	return s.repo.ListCars(ctx)
}
