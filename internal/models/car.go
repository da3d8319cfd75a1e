package models

// Статусы автомобиля. Закрытое множество: любое другое значение
// отклоняется на этапе валидации запроса.
const (
	CarStatusAvailable = "available"
	CarStatusRented    = "rented"
)

// Car представляет автомобиль автопарка.
type Car struct {
	ID          int     `json:"id"`            // Уникальный идентификатор автомобиля
	Brand       string  `json:"brand"`         // Марка
	Model       string  `json:"model"`         // Модель
	Year        int     `json:"year"`          // Год выпуска
	PricePerDay float64 `json:"price_per_day"` // Цена аренды за сутки
	Status      string  `json:"status"`        // available или rented
}

// CreateCarRequest используется для приёма данных нового автомобиля из JSON-запроса.
// Статус не принимается: при создании он всегда available (выставляется схемой).
type CreateCarRequest struct {
	Brand       string  `json:"brand" validate:"required"`
	Model       string  `json:"model" validate:"required"`
	Year        int     `json:"year" validate:"required,gt=1900"`
	PricePerDay float64 `json:"price_per_day" validate:"required,gt=0"`
}

// UpdateCarRequest используется для полного обновления автомобиля.
type UpdateCarRequest struct {
	Brand       string  `json:"brand" validate:"required"`
	Model       string  `json:"model" validate:"required"`
	Year        int     `json:"year" validate:"required,gt=1900"`
	PricePerDay float64 `json:"price_per_day" validate:"required,gt=0"`
	Status      string  `json:"status" validate:"required,oneof=available rented"`
}
