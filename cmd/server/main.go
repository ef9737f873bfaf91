package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"pharma-backend/internal/auth"
	"pharma-backend/internal/backup"
	"pharma-backend/internal/cache"
	"pharma-backend/internal/config"
	"pharma-backend/internal/database"
	"pharma-backend/internal/db"
	"pharma-backend/internal/handlers"
	"pharma-backend/internal/health"
	h "pharma-backend/internal/http"
	"pharma-backend/internal/middleware"
	"pharma-backend/internal/monitoring"
	"pharma-backend/internal/notify"
	"pharma-backend/internal/repositories"
	"pharma-backend/internal/services"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	pool := db.Connect(cfg)
	defer pool.Close()

	// Redis cache is optional, login falls back to bcrypt only
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (login will use bcrypt only)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	// Run database migrations
	migrator := database.NewMigrator(pool)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	healthChecker := health.NewHealthChecker(pool)

	// Ops dashboard on its own port
	go monitoring.NewServer(pool, cfg.Server.MonitoringPort).Start()

	// Scheduled pg_dump uploads, disabled unless configured
	if cfg.Backup.Enabled {
		go backup.NewScheduler(cfg).Run()
	}

	jwtManager := auth.NewJWTManager(cfg)

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	pharmacyRepo := repositories.NewPharmacyRepository(pool)
	doctorRepo := repositories.NewDoctorRepository(pool)
	supplierRepo := repositories.NewSupplierRepository(pool)
	medicamentRepo := repositories.NewMedicamentRepository(pool)
	demandeRepo := repositories.NewDemandeRepository(pool)
	notificationRepo := repositories.NewNotificationRepository(pool)
	ordonnanceRepo := repositories.NewOrdonnanceRepository(pool)

	// Live notification feed for supplier dashboards
	hub := notify.NewHub()
	go hub.Run()

	// Services
	userService := services.NewUserService(userRepo, jwtManager)
	pharmacyService := services.NewPharmacyService(pharmacyRepo, userRepo)
	doctorService := services.NewDoctorService(doctorRepo)
	supplierService := services.NewSupplierService(supplierRepo)
	medicamentService := services.NewMedicamentService(medicamentRepo)
	demandeService := services.NewDemandeService(demandeRepo, medicamentService, hub)
	notificationService := services.NewNotificationService(notificationRepo, hub)
	ordonnanceService := services.NewOrdonnanceService(ordonnanceRepo)
	totpService := services.NewTOTPService(userRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, totpService, jwtManager)
	userHandler := handlers.NewUserHandler(userService)
	pharmacyHandler := handlers.NewPharmacyHandler(pharmacyService)
	doctorHandler := handlers.NewDoctorHandler(doctorService)
	supplierHandler := handlers.NewSupplierHandler(supplierService)
	medicamentHandler := handlers.NewMedicamentHandler(medicamentService)
	demandeHandler := handlers.NewDemandeHandler(demandeService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	ordonnanceHandler := handlers.NewOrdonnanceHandler(ordonnanceService)
	totpHandler := handlers.NewTOTPHandler(totpService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	router := h.NewRouter(
		authHandler,
		userHandler,
		pharmacyHandler,
		doctorHandler,
		supplierHandler,
		medicamentHandler,
		demandeHandler,
		notificationHandler,
		ordonnanceHandler,
		totpHandler,
		healthHandler,
		hub,
		authMiddleware,
	)

	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
