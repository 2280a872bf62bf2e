package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fieldopshq/fieldops-backend/api/controllers"
	"github.com/fieldopshq/fieldops-backend/api/middleware"
	"github.com/fieldopshq/fieldops-backend/internal/auth"
	"github.com/fieldopshq/fieldops-backend/internal/customers"
	"github.com/fieldopshq/fieldops-backend/internal/inventory"
	"github.com/fieldopshq/fieldops-backend/internal/orders"
	"github.com/fieldopshq/fieldops-backend/internal/salesreps"
	"github.com/fieldopshq/fieldops-backend/internal/techassign"
	"github.com/fieldopshq/fieldops-backend/internal/technicians"
	"github.com/fieldopshq/fieldops-backend/internal/users"
	"github.com/fieldopshq/fieldops-backend/pkg/config"
	"github.com/fieldopshq/fieldops-backend/pkg/db"
	"github.com/fieldopshq/fieldops-backend/pkg/logger"
	"github.com/fieldopshq/fieldops-backend/pkg/metrics"
	"github.com/fieldopshq/fieldops-backend/pkg/redis"
)

// Services bundles every domain service the router mounts.
type Services struct {
	Auth        auth.Service
	Users       users.Service
	Inventory   inventory.Service
	TechAssign  techassign.Service
	Orders      orders.Service
	Customers   customers.Service
	Technicians technicians.Service
	SalesReps   salesreps.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)
	if httpMetrics != nil {
		r.Use(httpMetrics.Middleware)
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUsernameLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterUsernameLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, redisClient, logg))
	})

	if httpMetrics != nil {
		r.Method(http.MethodGet, "/metrics", httpMetrics.Handler())
	}

	r.Route("/api/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(svcs.Auth, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).Post("/register", controllers.AuthRegister(svcs.Auth, logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", controllers.InventoryList(svcs.Inventory, logg))
			r.Post("/", controllers.InventoryCreate(svcs.Inventory, logg))
			r.Get("/{sku}", controllers.InventoryGet(svcs.Inventory, logg))
			r.Put("/{sku}", controllers.InventoryUpdate(svcs.Inventory, logg))
			r.Delete("/{sku}", controllers.InventoryDelete(svcs.Inventory, logg))
		})

		r.Route("/techinventory", func(r chi.Router) {
			r.Get("/", controllers.TechInventoryList(svcs.TechAssign, logg))
			r.Post("/", controllers.TechInventoryAssign(svcs.TechAssign, logg))
			r.Get("/{techId}", controllers.TechInventoryListByTechnician(svcs.TechAssign, logg))
			r.Put("/{sku}/{techId}", controllers.TechInventoryAdjust(svcs.TechAssign, logg))
			r.Delete("/{sku}/{techId}", controllers.TechInventoryRelease(svcs.TechAssign, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrdersList(svcs.Orders, logg))
			r.Post("/", controllers.OrdersCreate(svcs.Orders, logg))
			r.Get("/{id}", controllers.OrdersGet(svcs.Orders, logg))
			r.Put("/{id}", controllers.OrdersUpdate(svcs.Orders, logg))
			r.Delete("/{id}", controllers.OrdersDelete(svcs.Orders, logg))
			r.Get("/{id}/items", controllers.OrdersItems(svcs.Orders, logg))
			r.Put("/{id}/complete", controllers.OrdersComplete(svcs.Orders, logg))
		})

		r.Route("/orderitems", func(r chi.Router) {
			r.Get("/", controllers.OrderItemsList(svcs.Orders, logg))
			r.Post("/", controllers.OrderItemsAdd(svcs.Orders, logg))
			r.Put("/{orderId}/{sku}", controllers.OrderItemsAdjust(svcs.Orders, logg))
			r.Put("/{orderId}/{sku}/used", controllers.OrderItemsMarkUsed(svcs.Orders, logg))
			r.Delete("/{orderId}/{sku}", controllers.OrderItemsRemove(svcs.Orders, logg))
			r.Delete("/{orderId}", controllers.OrderItemsRemoveAll(svcs.Orders, logg))
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", controllers.CustomersList(svcs.Customers, logg))
			r.Post("/", controllers.CustomersCreate(svcs.Customers, logg))
			r.Get("/{id}", controllers.CustomersGet(svcs.Customers, logg))
			r.Put("/{id}", controllers.CustomersUpdate(svcs.Customers, logg))
			r.Delete("/{id}", controllers.CustomersDelete(svcs.Customers, logg))
		})

		r.Route("/technicians", func(r chi.Router) {
			r.Get("/", controllers.TechniciansList(svcs.Technicians, logg))
			r.Post("/", controllers.TechniciansCreate(svcs.Technicians, logg))
			r.Get("/{id}", controllers.TechniciansGet(svcs.Technicians, logg))
			r.Put("/{id}", controllers.TechniciansUpdate(svcs.Technicians, logg))
			r.Delete("/{id}", controllers.TechniciansDelete(svcs.Technicians, logg))
		})

		r.Route("/salesreps", func(r chi.Router) {
			r.Get("/", controllers.SalesRepsList(svcs.SalesReps, logg))
			r.Post("/", controllers.SalesRepsCreate(svcs.SalesReps, logg))
			r.Get("/{id}", controllers.SalesRepsGet(svcs.SalesReps, logg))
			r.Put("/{id}", controllers.SalesRepsUpdate(svcs.SalesReps, logg))
			r.Delete("/{id}", controllers.SalesRepsDelete(svcs.SalesReps, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.RequireAdmin(logg))
			r.Get("/", controllers.UsersList(svcs.Users, logg))
			r.Post("/", controllers.UsersCreate(svcs.Users, logg))
			r.Get("/{id}", controllers.UsersGet(svcs.Users, logg))
			r.Put("/{id}", controllers.UsersUpdate(svcs.Users, logg))
			r.Delete("/{id}", controllers.UsersDelete(svcs.Users, logg))
		})
	})

	return r
}
