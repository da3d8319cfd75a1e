// Package health реализует служебные обработчики: приветственный корневой
// маршрут и проверочный /api/test.
package health

import (
	"net/http"

	"github.com/go-chi/render"
)

// Welcome обрабатывает GET / и возвращает приветственный ответ
// со списком основных групп маршрутов.
func Welcome(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]any{
		"message":   "Car rental API is running",
		"endpoints": []string{"/api/cars", "/api/users", "/api/orders"},
	})
}

// Test обрабатывает GET /api/test.
func Test(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"message": "Backend works"})
}
