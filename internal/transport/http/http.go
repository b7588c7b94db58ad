package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"

	"github.com/workhub/workplace-backend/internal/service/models/identity"
	"github.com/workhub/workplace-backend/internal/service/services/bookingsvc"
	"github.com/workhub/workplace-backend/internal/service/services/catalogsvc"
	"github.com/workhub/workplace-backend/internal/service/services/configsvc"
	"github.com/workhub/workplace-backend/internal/service/services/favoritesvc"
	"github.com/workhub/workplace-backend/internal/service/services/ordersvc"
	"github.com/workhub/workplace-backend/internal/transport/http/middleware/auth"
	"github.com/workhub/workplace-backend/internal/transport/http/v1/bookings"
	"github.com/workhub/workplace-backend/internal/transport/http/v1/configuration"
	"github.com/workhub/workplace-backend/internal/transport/http/v1/favorites"
	"github.com/workhub/workplace-backend/internal/transport/http/v1/getorder"
	"github.com/workhub/workplace-backend/internal/transport/http/v1/listorders"
	"github.com/workhub/workplace-backend/internal/transport/http/v1/menu"
	"github.com/workhub/workplace-backend/internal/transport/http/v1/placeorder"
	"github.com/workhub/workplace-backend/internal/transport/http/v1/rooms"
	"github.com/workhub/workplace-backend/internal/transport/http/v1/updateorderstatus"
	"github.com/workhub/workplace-backend/pkg/http/middleware/trace"
	"github.com/workhub/workplace-backend/pkg/logger"
)

type HTTPTransport struct {
	server      *http.Server
	router      *chi.Mux
	orderSvc    *ordersvc.OrderService
	catalogSvc  *catalogsvc.CatalogService
	bookingSvc  *bookingsvc.BookingService
	favoriteSvc *favoritesvc.FavoriteService
	configSvc   *configsvc.ConfigService
}

func NewHTTPTransport(
	orderSvc *ordersvc.OrderService,
	catalogSvc *catalogsvc.CatalogService,
	bookingSvc *bookingsvc.BookingService,
	favoriteSvc *favoritesvc.FavoriteService,
	configSvc *configsvc.ConfigService,
) *HTTPTransport {
	router := newRouter()
	server := newServer(router)

	return &HTTPTransport{
		server:      server,
		router:      router,
		orderSvc:    orderSvc,
		catalogSvc:  catalogSvc,
		bookingSvc:  bookingSvc,
		favoriteSvc: favoriteSvc,
		configSvc:   configSvc,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/api", func(r chi.Router) {
		r.Use(auth.Middleware())

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", h.placeOrder)
			r.Get("/", h.listOrders)
			r.Get("/{id}", h.getOrder)
			r.With(auth.RequireRole(identity.RoleStaff)).Patch("/{id}/status", h.updateOrderStatus)
		})

		r.Route("/menu", func(r chi.Router) {
			r.Get("/", h.listMenu)
			r.Get("/{id}", h.getMenuItem)
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireRole(identity.RoleStaff))
				r.Post("/", h.createMenuItem)
				r.Put("/{id}", h.updateMenuItem)
				r.Delete("/{id}", h.deleteMenuItem)
			})
		})

		r.Route("/rooms", func(r chi.Router) {
			r.Get("/", h.searchRooms)
			r.Get("/{id}", h.getRoom)
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireRole(identity.RoleStaff))
				r.Post("/", h.createRoom)
				r.Put("/{id}", h.updateRoom)
				r.Delete("/{id}", h.deleteRoom)
			})
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Post("/", h.createBooking)
			r.Get("/", h.listBookings)
			r.Delete("/{id}", h.deleteBooking)
		})

		r.Route("/favorites", func(r chi.Router) {
			r.Get("/", h.listFavorites)
			r.Post("/", h.createFavorite)
			r.Put("/{id}", h.updateFavorite)
			r.Delete("/{id}", h.deleteFavorite)
		})

		r.Route("/config", func(r chi.Router) {
			r.Get("/", h.listConfig)
			r.Get("/{key}", h.getConfig)
			r.With(auth.RequireRole(identity.RoleStaff)).Put("/{key}", h.setConfig)
		})
	})
}

func (h *HTTPTransport) placeOrder(w http.ResponseWriter, r *http.Request) {
	placeorder.PlaceOrder(w, r, h.orderSvc)
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.orderSvc)
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	getorder.GetOrder(w, r, h.orderSvc)
}

func (h *HTTPTransport) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	updateorderstatus.UpdateOrderStatus(w, r, h.orderSvc)
}

func (h *HTTPTransport) listMenu(w http.ResponseWriter, r *http.Request) {
	menu.List(w, r, h.catalogSvc)
}

func (h *HTTPTransport) getMenuItem(w http.ResponseWriter, r *http.Request) {
	menu.Get(w, r, h.catalogSvc)
}

func (h *HTTPTransport) createMenuItem(w http.ResponseWriter, r *http.Request) {
	menu.Create(w, r, h.catalogSvc)
}

func (h *HTTPTransport) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	menu.Update(w, r, h.catalogSvc)
}

func (h *HTTPTransport) deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	menu.Delete(w, r, h.catalogSvc)
}

func (h *HTTPTransport) searchRooms(w http.ResponseWriter, r *http.Request) {
	rooms.Search(w, r, h.bookingSvc)
}

func (h *HTTPTransport) getRoom(w http.ResponseWriter, r *http.Request) {
	rooms.Get(w, r, h.bookingSvc)
}

func (h *HTTPTransport) createRoom(w http.ResponseWriter, r *http.Request) {
	rooms.Create(w, r, h.bookingSvc)
}

func (h *HTTPTransport) updateRoom(w http.ResponseWriter, r *http.Request) {
	rooms.Update(w, r, h.bookingSvc)
}

func (h *HTTPTransport) deleteRoom(w http.ResponseWriter, r *http.Request) {
	rooms.Delete(w, r, h.bookingSvc)
}

func (h *HTTPTransport) createBooking(w http.ResponseWriter, r *http.Request) {
	bookings.Create(w, r, h.bookingSvc)
}

func (h *HTTPTransport) listBookings(w http.ResponseWriter, r *http.Request) {
	bookings.List(w, r, h.bookingSvc)
}

func (h *HTTPTransport) deleteBooking(w http.ResponseWriter, r *http.Request) {
	bookings.Delete(w, r, h.bookingSvc)
}

func (h *HTTPTransport) listFavorites(w http.ResponseWriter, r *http.Request) {
	favorites.List(w, r, h.favoriteSvc)
}

func (h *HTTPTransport) createFavorite(w http.ResponseWriter, r *http.Request) {
	favorites.Create(w, r, h.favoriteSvc)
}

func (h *HTTPTransport) updateFavorite(w http.ResponseWriter, r *http.Request) {
	favorites.Update(w, r, h.favoriteSvc)
}

func (h *HTTPTransport) deleteFavorite(w http.ResponseWriter, r *http.Request) {
	favorites.Delete(w, r, h.favoriteSvc)
}

func (h *HTTPTransport) listConfig(w http.ResponseWriter, r *http.Request) {
	configuration.List(w, r, h.configSvc)
}

func (h *HTTPTransport) getConfig(w http.ResponseWriter, r *http.Request) {
	configuration.Get(w, r, h.configSvc)
}

func (h *HTTPTransport) setConfig(w http.ResponseWriter, r *http.Request) {
	configuration.Set(w, r, h.configSvc)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(trace.NewTraceMiddleware)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
