package handler

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"fsanano/go-orders/internal/database"
	"fsanano/go-orders/internal/errs"
	"fsanano/go-orders/internal/metrics"
	"fsanano/go-orders/internal/model"
	"fsanano/go-orders/internal/service"
)

const healthTimeout = 2 * time.Second

type Services struct {
	Users  *service.UserService
	Orders *service.OrderService
	Offers *service.OfferService
}

type Handler struct {
	router  *chi.Mux
	db      *gorm.DB
	metrics *metrics.Metrics
}

// NewHandler builds the router. m may be nil, in which case /metrics is not
// served.
func NewHandler(db *gorm.DB, svc Services, log zerolog.Logger, m *metrics.Metrics) *Handler {
	router := chi.NewRouter()

	compressor := middleware.NewCompressor(5, "application/json", "text/plain", "application/openmetrics-text")
	compressor.SetEncoder("br", func(w io.Writer, level int) io.Writer {
		return brotli.NewWriterLevel(w, level)
	})

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(log))
	if m != nil {
		router.Use(m.Middleware)
	}
	router.Use(recoverer)
	router.Use(compressor.Handler)

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, errs.NewNotFoundError("Resource not found"))
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, errs.NewMethodNotAllowedError())
	})

	h := &Handler{
		router:  router,
		db:      db,
		metrics: m,
	}

	h.registerRoutes(svc)
	return h
}

func (h *Handler) registerRoutes(svc Services) {
	h.router.Route("/v1", func(r chi.Router) {
		r.Get("/health", h.HealthCheck)
	})

	if h.metrics != nil {
		h.router.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	}

	users := &resource[model.User, service.UserInput, *service.UserInput]{
		svc: svc.Users,
		msg: messages{
			created: "Пользователь успешно добавлен",
			updated: "Пользователь успешно обновлен",
			deleted: "Пользователь успешно удален",
		},
	}
	orders := &resource[model.Order, service.OrderInput, *service.OrderInput]{
		svc: svc.Orders,
		msg: messages{
			created: "Заказ добавлен",
			updated: "Заказ успешно обновлен",
			deleted: "Заказ успешно удален",
		},
	}
	offers := &resource[model.OfferView, service.OfferInput, *service.OfferInput]{
		svc: svc.Offers,
		msg: messages{
			created: "Оффер успешно добавлен",
			updated: "Оффер успешно обновлен",
			deleted: "Оффер успешно удален",
		},
	}

	h.router.Route("/users", users.routes)
	h.router.Route("/orders", orders.routes)
	h.router.Route("/offers", offers.routes)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// HealthCheck reports 503 when the database does not answer a ping.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := database.Ping(ctx, h.db); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("health check failed")
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable", Database: "down"})
		return
	}

	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Database: "up"})
}
