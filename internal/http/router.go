package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pharma-backend/internal/handlers"
	"pharma-backend/internal/middleware"
	"pharma-backend/internal/notify"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	pharmacyHandler *handlers.PharmacyHandler,
	doctorHandler *handlers.DoctorHandler,
	supplierHandler *handlers.SupplierHandler,
	medicamentHandler *handlers.MedicamentHandler,
	demandeHandler *handlers.DemandeHandler,
	notificationHandler *handlers.NotificationHandler,
	ordonnanceHandler *handlers.OrdonnanceHandler,
	totpHandler *handlers.TOTPHandler,
	healthHandler *handlers.HealthHandler,
	hub *notify.Hub,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public routes - Authentication
	r.HandleFunc("/api/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/login/2fa", authHandler.VerifyTwoFactor).Methods("POST")
	// Legacy login alias kept for older front ends
	r.HandleFunc("/api/users/login", authHandler.Login).Methods("POST")

	// Health and metrics
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// WebSocket supplier feed. Browsers cannot set an Authorization
	// header on the upgrade request, so this stays outside the auth
	// subrouters.
	r.HandleFunc("/api/notifications/ws", hub.HandleWS)

	// Admin - Pharmacies
	pharmaciesAPI := r.PathPrefix("/api/admin/pharmacies").Subrouter()
	pharmaciesAPI.Use(authMiddleware.RequireAdmin)
	pharmaciesAPI.HandleFunc("", pharmacyHandler.ListPharmacies).Methods("GET")
	pharmaciesAPI.HandleFunc("", pharmacyHandler.CreatePharmacy).Methods("POST")
	pharmaciesAPI.HandleFunc("/{id}", pharmacyHandler.GetPharmacy).Methods("GET")
	pharmaciesAPI.HandleFunc("/{id}", pharmacyHandler.UpdatePharmacy).Methods("PUT")
	pharmaciesAPI.HandleFunc("/{id}", pharmacyHandler.DeletePharmacy).Methods("DELETE")
	pharmaciesAPI.HandleFunc("/{id}/deactivate", pharmacyHandler.Deactivate).Methods("PUT")
	pharmaciesAPI.HandleFunc("/{id}/change-password", pharmacyHandler.ChangePassword).Methods("PUT")

	// Admin - 2FA management
	twoFactorAPI := r.PathPrefix("/api/admin/2fa").Subrouter()
	twoFactorAPI.Use(authMiddleware.RequireAdmin)
	twoFactorAPI.HandleFunc("/setup", totpHandler.Setup).Methods("POST")
	twoFactorAPI.HandleFunc("/verify", totpHandler.Verify).Methods("POST")
	twoFactorAPI.HandleFunc("/disable", totpHandler.Disable).Methods("POST")

	// Admin - Login accounts
	usersAPI := r.PathPrefix("/api/users").Subrouter()
	usersAPI.Use(authMiddleware.RequireAdmin)
	usersAPI.HandleFunc("", userHandler.ListUsers).Methods("GET")
	usersAPI.HandleFunc("", userHandler.CreateUser).Methods("POST")
	usersAPI.HandleFunc("/{id}", userHandler.GetUser).Methods("GET")
	usersAPI.HandleFunc("/{id}", userHandler.UpdateUser).Methods("PUT")
	usersAPI.HandleFunc("/{id}", userHandler.DeleteUser).Methods("DELETE")
	usersAPI.HandleFunc("/{id}/change-password", userHandler.ChangePassword).Methods("PUT")
	usersAPI.HandleFunc("/{id}/status", userHandler.UpdateStatus).Methods("PUT")

	// Doctors
	doctorsAPI := r.PathPrefix("/api/doctors").Subrouter()
	doctorsAPI.Use(authMiddleware.Authenticate)
	doctorsAPI.HandleFunc("", doctorHandler.ListDoctors).Methods("GET")
	doctorsAPI.HandleFunc("", doctorHandler.CreateDoctor).Methods("POST")
	doctorsAPI.HandleFunc("/{id}", doctorHandler.GetDoctor).Methods("GET")
	doctorsAPI.HandleFunc("/{id}", doctorHandler.UpdateDoctor).Methods("PUT")
	doctorsAPI.HandleFunc("/{id}", doctorHandler.DeleteDoctor).Methods("DELETE")
	doctorsAPI.HandleFunc("/{id}/change-password", doctorHandler.ChangePassword).Methods("PUT")
	doctorsAPI.HandleFunc("/{id}/status", doctorHandler.UpdateStatus).Methods("PUT")

	// Suppliers
	suppliersAPI := r.PathPrefix("/api/suppliers").Subrouter()
	suppliersAPI.Use(authMiddleware.Authenticate)
	suppliersAPI.HandleFunc("", supplierHandler.ListSuppliers).Methods("GET")
	suppliersAPI.HandleFunc("", supplierHandler.CreateSupplier).Methods("POST")
	suppliersAPI.HandleFunc("/{id}", supplierHandler.GetSupplier).Methods("GET")
	suppliersAPI.HandleFunc("/{id}", supplierHandler.UpdateSupplier).Methods("PUT")
	suppliersAPI.HandleFunc("/{id}", supplierHandler.DeleteSupplier).Methods("DELETE")
	suppliersAPI.HandleFunc("/{id}/change-password", supplierHandler.ChangePassword).Methods("PUT")
	suppliersAPI.HandleFunc("/{id}/status", supplierHandler.UpdateStatus).Methods("PUT")

	// Medicaments (stock)
	medicamentsAPI := r.PathPrefix("/api/medicaments").Subrouter()
	medicamentsAPI.Use(authMiddleware.Authenticate)
	medicamentsAPI.HandleFunc("", medicamentHandler.ListMedicaments).Methods("GET")
	medicamentsAPI.HandleFunc("", medicamentHandler.CreateMedicament).Methods("POST")
	medicamentsAPI.HandleFunc("/{id}/quantite", medicamentHandler.SetQuantity).Methods("PUT")

	// Demandes (restock requests)
	demandesAPI := r.PathPrefix("/api/demandes").Subrouter()
	demandesAPI.Use(authMiddleware.Authenticate)
	demandesAPI.HandleFunc("/create", demandeHandler.CreateDemande).Methods("POST")
	demandesAPI.HandleFunc("/pharmacie/{id}", demandeHandler.ListByPharmacy).Methods("GET")
	demandesAPI.HandleFunc("/{id}/status", demandeHandler.UpdateStatus).Methods("PUT")

	// Notifications
	notificationsAPI := r.PathPrefix("/api/notifications").Subrouter()
	notificationsAPI.Use(authMiddleware.Authenticate)
	notificationsAPI.HandleFunc("", notificationHandler.ListNotifications).Methods("GET")
	notificationsAPI.HandleFunc("", notificationHandler.CreateNotification).Methods("POST")
	notificationsAPI.HandleFunc("/fournisseur/{id}", notificationHandler.ListBySupplier).Methods("GET")
	notificationsAPI.HandleFunc("/update-status/{id}", notificationHandler.UpdateStatus).Methods("PUT")

	// Ordonnances (prescriptions)
	ordonnancesAPI := r.PathPrefix("/api/ordonnances").Subrouter()
	ordonnancesAPI.Use(authMiddleware.Authenticate)
	ordonnancesAPI.HandleFunc("", ordonnanceHandler.ListOrdonnances).Methods("GET")
	ordonnancesAPI.HandleFunc("", ordonnanceHandler.CreateOrdonnance).Methods("POST")
	ordonnancesAPI.HandleFunc("/{id}", ordonnanceHandler.GetOrdonnance).Methods("GET")
	ordonnancesAPI.HandleFunc("/{id}", ordonnanceHandler.UpdateOrdonnance).Methods("PUT")
	ordonnancesAPI.HandleFunc("/{id}", ordonnanceHandler.DeleteOrdonnance).Methods("DELETE")
	ordonnancesAPI.HandleFunc("/{id}/status", ordonnanceHandler.UpdateStatus).Methods("PUT")
	ordonnancesAPI.HandleFunc("/{id}/pdf", ordonnanceHandler.DownloadPDF).Methods("GET")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "route introuvable"}`))
	})

	return r
}
