// Package models содержит доменную модель пользователя сервиса проката,
// включающую данные учётной записи и хэш пароля.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID           int    `json:"id"`    // Уникальный идентификатор пользователя
	Name         string `json:"name"`  // Имя пользователя
	Email        string `json:"email"` // Электронная почта (уникальная)
	PasswordHash string `json:"-"`     // Хэш пароля пользователя, наружу не отдается
}

// RegisterRequest используется для приёма данных регистрации из JSON-запроса.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest используется для приёма данных входа из JSON-запроса.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
