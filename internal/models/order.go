package models

import "time"

// Статусы заказа. Переходы между статусами не ограничиваются:
// любой из трех принимается из любого предыдущего.
const (
	OrderStatusActive    = "active"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Order представляет заказ аренды автомобиля.
type Order struct {
	ID         int       `json:"id"`          // Уникальный идентификатор заказа
	CarID      int       `json:"car_id"`      // Арендуемый автомобиль
	UserID     int       `json:"user_id"`     // Арендатор
	StartDate  time.Time `json:"start_date"`  // Дата начала аренды
	EndDate    time.Time `json:"end_date"`    // Дата окончания аренды
	TotalPrice float64   `json:"total_price"` // Итоговая стоимость, считается при создании
	Status     string    `json:"status"`      // active, completed или cancelled
}

// OrderInfo представляет заказ, объединённый с данными автомобиля и пользователя.
// Используется для выдачи списка заказов.
type OrderInfo struct {
	ID          int       `json:"id"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	TotalPrice  float64   `json:"total_price"`
	Status      string    `json:"status"`
	Brand       string    `json:"brand"`
	Model       string    `json:"model"`
	PricePerDay float64   `json:"price_per_day"`
	UserName    string    `json:"user_name"`
	UserEmail   string    `json:"user_email"`
}

// CreateOrderRequest используется для приёма данных нового заказа из JSON-запроса.
// Даты приходят в виде строк формата 2006-01-02, чтобы их можно было
// валидировать и парсить вручную.
type CreateOrderRequest struct {
	CarID     int    `json:"car_id" validate:"required"`
	UserID    int    `json:"user_id" validate:"required"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}

// UpdateOrderStatusRequest используется для смены статуса заказа.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active completed cancelled"`
}

// OrderCreatedEvent публикуется в RabbitMQ после успешного оформления аренды.
type OrderCreatedEvent struct {
	EventID    string    `json:"event_id"`
	OrderID    int       `json:"order_id"`
	CarID      int       `json:"car_id"`
	UserID     int       `json:"user_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	TotalPrice float64   `json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
}
