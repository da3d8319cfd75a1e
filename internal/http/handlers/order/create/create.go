// Package create реализует HTTP-обработчик оформления аренды автомобиля.
//
// Handler принимает JSON-запрос с ID автомобиля, ID пользователя и датами
// аренды, валидирует их и вызывает бизнес-логику оформления. Проверка
// доступности автомобиля и смена его статуса атомарны, поэтому из двух
// конкурентных запросов на один автомобиль успешен не более чем один.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/car-rental/internal/http/response"
	"github.com/magabrotheeeer/car-rental/internal/lib/sl"
	"github.com/magabrotheeeer/car-rental/internal/models"
	orderservice "github.com/magabrotheeeer/car-rental/internal/services/order"
	"github.com/magabrotheeeer/car-rental/internal/storage/repository"
)

// Handler управляет HTTP-запросами на оформление аренды.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики оформления аренды
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания заказа.
type Service interface {
	Create(ctx context.Context, req models.CreateOrderRequest) (int, float64, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Арендовать автомобиль
// @Description Создает заказ аренды и помечает автомобиль как rented.
// @Tags Orders
// @Accept  json
// @Produce  json
// @Param request body models.CreateOrderRequest true "Данные нового заказа"
// @Success 201 {object} response.Response "Заказ создан"
// @Failure 400 {object} response.ErrorResponse "Некорректные данные или автомобиль занят"
// @Failure 404 {object} response.ErrorResponse "Автомобиль не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /orders [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.order.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	orderID, totalPrice, err := h.service.Create(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, orderservice.ErrInvalidDates):
			log.Error("invalid rental dates", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid rental dates"))
		case errors.Is(err, repository.ErrCarNotFound):
			log.Error("car not found", slog.Int("car_id", req.CarID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("car not found"))
		case errors.Is(err, repository.ErrCarUnavailable):
			log.Error("car is already rented", slog.Int("car_id", req.CarID))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("car is already rented"))
		default:
			log.Error("failed to create order", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not create order"))
		}
		return
	}

	log.Info("success to create order",
		slog.Int("order_id", orderID), slog.Float64("total_price", totalPrice))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData("Car rented successfully", map[string]any{
		"order_id": orderID,
	}))
}
