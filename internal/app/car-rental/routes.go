// Package carrental предоставляет маршруты для основного приложения.
package carrental

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/car-rental/internal/config"
	carcreate "github.com/magabrotheeeer/car-rental/internal/http/handlers/car/create"
	carlist "github.com/magabrotheeeer/car-rental/internal/http/handlers/car/list"
	carread "github.com/magabrotheeeer/car-rental/internal/http/handlers/car/read"
	carremove "github.com/magabrotheeeer/car-rental/internal/http/handlers/car/remove"
	carupdate "github.com/magabrotheeeer/car-rental/internal/http/handlers/car/update"
	"github.com/magabrotheeeer/car-rental/internal/http/handlers/health"
	ordercreate "github.com/magabrotheeeer/car-rental/internal/http/handlers/order/create"
	orderlist "github.com/magabrotheeeer/car-rental/internal/http/handlers/order/list"
	orderstatus "github.com/magabrotheeeer/car-rental/internal/http/handlers/order/updatestatus"
	userlist "github.com/magabrotheeeer/car-rental/internal/http/handlers/user/list"
	userlogin "github.com/magabrotheeeer/car-rental/internal/http/handlers/user/login"
	userregister "github.com/magabrotheeeer/car-rental/internal/http/handlers/user/register"
	"github.com/magabrotheeeer/car-rental/internal/http/middlewarectx"
	carservice "github.com/magabrotheeeer/car-rental/internal/services/car"
	orderservice "github.com/magabrotheeeer/car-rental/internal/services/order"
	userservice "github.com/magabrotheeeer/car-rental/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config,
	userService *userservice.UserService, carService *carservice.CarService,
	orderService *orderservice.OrderService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.CORSAllowedOrigin},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Use(middlewarectx.RateLimitMiddleware(logger))

	r.Get("/", health.Welcome)

	r.Route("/api", func(r chi.Router) {
		r.Get("/test", health.Test)

		r.Route("/users", func(r chi.Router) {
			r.Post("/register", userregister.New(logger, userService).ServeHTTP)
			r.Post("/login", userlogin.New(logger, userService).ServeHTTP)
			r.Get("/", userlist.New(logger, userService).ServeHTTP)
		})

		r.Route("/cars", func(r chi.Router) {
			r.Get("/", carlist.New(logger, carService).ServeHTTP)
			r.Post("/", carcreate.New(logger, carService).ServeHTTP)
			r.Get("/{id}", carread.New(logger, carService).ServeHTTP)
			r.Put("/{id}", carupdate.New(logger, carService).ServeHTTP)
			r.Delete("/{id}", carremove.New(logger, carService).ServeHTTP)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", orderlist.New(logger, orderService).ServeHTTP)
			r.Post("/", ordercreate.New(logger, orderService).ServeHTTP)
			r.Put("/{id}/status", orderstatus.New(logger, orderService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
