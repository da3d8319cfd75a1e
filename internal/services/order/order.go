// Package order содержит бизнес-логику оформления аренды: проверку дат,
// атомарное бронирование автомобиля и публикацию события о созданном заказе.
package order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/car-rental/internal/lib/days"
	"github.com/magabrotheeeer/car-rental/internal/models"
	carservice "github.com/magabrotheeeer/car-rental/internal/services/car"
)

// dateLayout формат дат аренды в JSON-запросах.
const dateLayout = "2006-01-02"

// ErrInvalidDates возвращается, если даты не парсятся или период аренды
// составляет меньше одного целого дня.
var ErrInvalidDates = errors.New("invalid rental dates")

// OrderRepository определяет методы для работы с заказами в хранилище.
type OrderRepository interface {
	// RentCar атомарно проверяет доступность автомобиля, создает заказ
	// и помечает автомобиль как rented. Возвращает ID заказа и стоимость.
	RentCar(ctx context.Context, carID, userID int, startDate, endDate time.Time, rentalDays int) (int, float64, error)
	// UpdateOrderStatus меняет статус заказа и возвращает количество изменённых записей.
	UpdateOrderStatus(ctx context.Context, id int, status string) (int, error)
	// ListOrders возвращает заказы, объединённые с данными автомобиля и пользователя.
	ListOrders(ctx context.Context) ([]*models.OrderInfo, error)
}

// EventPublisher описывает публикацию событий о заказах.
type EventPublisher interface {
	Publish(routingKey string, message any) error
}

// Cache описывает инвалидацию кеша автомобилей.
type Cache interface {
	Invalidate(key string) error
}

// OrderService реализует бизнес-логику оформления и сопровождения аренды.
type OrderService struct {
	repo      OrderRepository
	cache     Cache
	publisher EventPublisher
	log       *slog.Logger
}

// NewOrderService создает новый экземпляр OrderService.
func NewOrderService(repo OrderRepository, cache Cache, publisher EventPublisher, log *slog.Logger) *OrderService {
	return &OrderService{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		log:       log,
	}
}

// CountDays считает длительность аренды в целых днях по строковым датам запроса.
// Возвращает ErrInvalidDates, если даты не парсятся или период не положительный.
func CountDays(startDate, endDate string) (time.Time, time.Time, int, error) {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return time.Time{}, time.Time{}, 0, fmt.Errorf("%w: %v", ErrInvalidDates, err)
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return time.Time{}, time.Time{}, 0, fmt.Errorf("%w: %v", ErrInvalidDates, err)
	}

	rentalDays := days.Count(start, end)
	if rentalDays <= 0 {
		return time.Time{}, time.Time{}, 0, ErrInvalidDates
	}
	return start, end, rentalDays, nil
}

// Create оформляет аренду автомобиля и возвращает ID созданного заказа.
//
// Проверка доступности и смена статуса автомобиля выполняются в одной
// транзакции хранилища, поэтому двойное бронирование исключено. После
// успешного оформления публикуется событие OrderCreated; неудачная
// публикация только логируется.
func (s *OrderService) Create(ctx context.Context, req models.CreateOrderRequest) (int, float64, error) {
	start, end, rentalDays, err := CountDays(req.StartDate, req.EndDate)
	if err != nil {
		return 0, 0, err
	}

	orderID, totalPrice, err := s.repo.RentCar(ctx, req.CarID, req.UserID, start, end, rentalDays)
	if err != nil {
		return 0, 0, err
	}

	s.log.Info("created new order",
		slog.Int("order_id", orderID),
		slog.Int("car_id", req.CarID),
		slog.Float64("total_price", totalPrice))

	cacheKey := carservice.CacheKey(req.CarID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove car from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}

	event := models.OrderCreatedEvent{
		EventID:    uuid.New().String(),
		OrderID:    orderID,
		CarID:      req.CarID,
		UserID:     req.UserID,
		StartDate:  start,
		EndDate:    end,
		TotalPrice: totalPrice,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.publisher.Publish("created", event); err != nil {
		s.log.Warn("failed to publish order created event",
			slog.Int("order_id", orderID), slog.Any("err", err))
	}

	return orderID, totalPrice, nil
}

// UpdateStatus меняет статус заказа и возвращает количество изменённых строк.
// Статус автомобиля при завершении или отмене заказа не меняется.
func (s *OrderService) UpdateStatus(ctx context.Context, id int, status string) (int, error) {
	return s.repo.UpdateOrderStatus(ctx, id, status)
}

// List возвращает заказы, объединённые с данными автомобиля и пользователя.
func (s *OrderService) List(ctx context.Context) ([]*models.OrderInfo, error) {
	return s.repo.ListOrders(ctx)
}
