package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"sazon/internal/config"
	"sazon/internal/database"
	"sazon/internal/handler"
	"sazon/internal/mw"
	"sazon/internal/service"
	"sazon/internal/session"
)

func main() {
	cfg := config.New()

	db, err := database.NewDB(cfg.DatabaseURI)
	if err != nil {
		slog.Error("failed to connect to DB", "error", err)
		os.Exit(1)
	}
	defer database.CloseDB(db)

	if err := database.InitSchema(db); err != nil {
		slog.Error("failed to init DB schema", "error", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		slog.Error("failed to create upload dir", "error", err)
		os.Exit(1)
	}

	// Services
	authSvc := service.NewAuthService(db)
	menuSvc := service.NewMenuService(db)
	orderSvc := service.NewOrderService(db)
	reportSvc := service.NewReportService(db)
	expenseSvc := service.NewExpenseService(db)
	siteSvc := service.NewSiteConfigService(db)
	carts := session.NewStore()

	if err := authSvc.EnsureAdmin(context.Background(), cfg.AdminUser, cfg.AdminPassword); err != nil {
		slog.Error("failed to bootstrap admin user", "error", err)
		os.Exit(1)
	}

	// Router
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Public routes
	r.Get("/", handler.IndexHandler(siteSvc))
	r.Get("/api/menu", handler.MenuHandler(menuSvc))
	r.Get("/api/cart", handler.ViewCartHandler(carts))
	r.Post("/api/cart/items/{id}", handler.AddToCartHandler(menuSvc, carts))
	r.Post("/api/checkout", handler.CheckoutHandler(orderSvc, carts))
	r.Post("/api/login", handler.LoginHandler(authSvc, cfg.JWTSecret))

	r.Handle("/static/uploads/*", http.StripPrefix("/static/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))

	// Admin routes
	r.Group(func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.JWTSecret))
		r.Use(mw.RequireAdmin)

		r.Get("/api/admin/dashboard", handler.DashboardHandler(reportSvc))

		r.Get("/api/admin/menu", handler.ListMenuAdminHandler(menuSvc))
		r.Post("/api/admin/menu", handler.SaveMenuItemHandler(menuSvc, cfg.UploadDir))
		r.Post("/api/admin/menu/{id}/deactivate", handler.DeactivateMenuItemHandler(menuSvc))
		r.Post("/api/admin/menu/{id}/reactivate", handler.ReactivateMenuItemHandler(menuSvc))

		r.Get("/api/admin/orders", handler.ListOrdersHandler(orderSvc))
		r.Post("/api/admin/orders/{id}/status", handler.UpdateOrderStatusHandler(orderSvc))

		r.Get("/api/admin/expenses", handler.ListExpensesHandler(expenseSvc))
		r.Post("/api/admin/expenses", handler.CreateExpenseHandler(expenseSvc))

		r.Get("/api/admin/site-config", handler.GetSiteConfigHandler(siteSvc))
		r.Post("/api/admin/site-config", handler.UpdateSiteConfigHandler(siteSvc, cfg.UploadDir))
	})

	srv := &http.Server{
		Addr:         cfg.RunAddress,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	slog.Info("starting server", "addr", cfg.RunAddress)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-quit
	slog.Info("shutting down...")

	ctxShut, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()

	if err := srv.Shutdown(ctxShut); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}

	slog.Info("server stopped")
}
