package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"sueldos/internal/auth"
	"sueldos/internal/db"
	"sueldos/internal/domain/audit"
	"sueldos/internal/domain/company"
	"sueldos/internal/domain/employee"
	"sueldos/internal/domain/settlement"
	"sueldos/internal/platform/config"
	"sueldos/internal/platform/metrics"
	"sueldos/internal/transport/http/api"
	"sueldos/internal/transport/http/middleware"

	audithandler "sueldos/internal/transport/http/handlers/audit"
	authhandler "sueldos/internal/transport/http/handlers/auth"
	companyhandler "sueldos/internal/transport/http/handlers/company"
	employeehandler "sueldos/internal/transport/http/handlers/employee"
	settlementhandler "sueldos/internal/transport/http/handlers/settlement"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	collector := metrics.New()
	auditSvc := audit.New(pool)
	companySvc := company.NewService(pool)
	employeeSvc := employee.NewService(pool)
	settlementSvc := settlement.NewService(settlement.NewStore(pool))

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recover)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(pool, cfg.JWTSecret)
		r.Post("/auth/login", authHandler.HandleLogin)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser)

			r.Get("/auth/me", authHandler.HandleMe)

			companyHandler := companyhandler.NewHandler(companySvc, auditSvc)
			r.Route("/companies", func(r chi.Router) {
				r.Get("/", companyHandler.HandleList)
				r.Post("/", companyHandler.HandleCreate)
				r.Get("/{id}", companyHandler.HandleGet)
				r.Put("/{id}", companyHandler.HandleUpdate)
				r.Delete("/{id}", companyHandler.HandleDelete)
			})

			employeeHandler := employeehandler.NewHandler(employeeSvc, auditSvc)
			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.HandleList)
				r.Post("/", employeeHandler.HandleCreate)
				r.Get("/{id}", employeeHandler.HandleGet)
				r.Put("/{id}", employeeHandler.HandleUpdate)
				r.Delete("/{id}", employeeHandler.HandleDelete)
			})

			settlementHandler := settlementhandler.NewHandler(settlementSvc, auditSvc)
			r.Route("/settlements", func(r chi.Router) {
				r.Get("/", settlementHandler.HandleList)
				r.Post("/", settlementHandler.HandleCreate)
				r.Get("/{id}", settlementHandler.HandleGet)
				r.Put("/{id}", settlementHandler.HandleUpdate)
				r.Delete("/{id}", settlementHandler.HandleDelete)
				r.Post("/{id}/save", settlementHandler.HandleSave)
				r.Post("/{id}/remunerative-items", settlementHandler.HandleAddRemunerativeItem)
				r.Post("/{id}/non-remunerative-items", settlementHandler.HandleAddNonRemunerativeItem)
				r.Post("/{id}/deductions", settlementHandler.HandleAddDeductionItem)
				r.Patch("/{id}/items/{itemId}", settlementHandler.HandleUpdateItem)
				r.Delete("/{id}/items/{itemId}", settlementHandler.HandleRemoveItem)
				r.Get("/{id}/recibo", settlementHandler.HandleRecibo)
			})

			auditHandler := audithandler.NewHandler(auditSvc)
			r.With(middleware.RequireRole(auth.RoleAdmin)).Get("/audit", auditHandler.HandleList)
		})
	})

	log.Printf("sueldos server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
