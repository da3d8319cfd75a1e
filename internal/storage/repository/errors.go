package repository

import "errors"

// Сторожевые ошибки хранилища. Обработчики сопоставляют их
// с HTTP-статусами через errors.Is.
var (
	// ErrUserNotFound возвращается, когда пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken возвращается при нарушении уникальности email.
	ErrEmailTaken = errors.New("email already exists")
	// ErrCarNotFound возвращается, когда автомобиль не найден.
	ErrCarNotFound = errors.New("car not found")
	// ErrCarUnavailable возвращается при попытке арендовать занятый автомобиль.
	ErrCarUnavailable = errors.New("car is already rented")
)
