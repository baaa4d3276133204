package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"carrental/internal/api"
	"carrental/internal/auth"
	"carrental/internal/db"
	"carrental/internal/repository"
	"carrental/internal/service"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	database, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := database.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	if err := db.CreateTables(database); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	reservationRepo := repository.NewReservationRepository(database)
	vehicleRepo := repository.NewVehicleRepository(database)
	customerRepo := repository.NewCustomerRepository(database)
	maintenanceRepo := repository.NewMaintenanceRepository(database)
	financeRepo := repository.NewFinanceRepository(database)
	adminAuthRepo := repository.NewAdminAuthRepository(database)
	jobRepo := repository.NewJobRepository(database)

	sender := service.NewSenderService()
	bookingSvc := service.NewBookingService(reservationRepo, sender)
	reservationSvc := service.NewReservationService(reservationRepo, customerRepo, vehicleRepo, sender)
	vehicleSvc := service.NewVehicleService(vehicleRepo)
	customerSvc := service.NewCustomerService(customerRepo)
	maintenanceSvc := service.NewMaintenanceService(maintenanceRepo, vehicleRepo)
	financeSvc := service.NewFinanceService(financeRepo)
	adminAuthSvc := service.NewAdminAuthService(adminAuthRepo)
	jobSvc := service.NewJobService(jobRepo)

	reservationHandler := api.NewReservationHandler(bookingSvc, reservationSvc)
	vehicleHandler := api.NewVehicleHandler(vehicleSvc)
	customerHandler := api.NewCustomerHandler(customerSvc)
	maintenanceHandler := api.NewMaintenanceHandler(maintenanceSvc)
	financeHandler := api.NewFinanceHandler(financeSvc)
	adminAuthHandler := api.NewAdminAuthHandler(adminAuthSvc)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/reservations", reservationHandler.CreateReservation).Methods("POST")
	r.HandleFunc("/api/reservations/{id}", reservationHandler.GetReservation).Methods("GET")
	r.HandleFunc("/api/reservations/{id}", reservationHandler.CancelReservation).Methods("DELETE")
	r.HandleFunc("/admin/login", adminAuthHandler.Login).Methods("POST")

	// Back-office endpoints (protected)
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.AdminAuthMiddleware)
	admin.HandleFunc("/register", adminAuthHandler.CreateAdmin).Methods("POST")
	admin.HandleFunc("/reservations", reservationHandler.ListReservations).Methods("GET")
	admin.HandleFunc("/reservations/{id}/status", reservationHandler.UpdateReservationStatus).Methods("PUT")
	admin.HandleFunc("/vehicles", vehicleHandler.ListVehicles).Methods("GET")
	admin.HandleFunc("/vehicles", vehicleHandler.CreateVehicle).Methods("POST")
	admin.HandleFunc("/vehicles/{id}", vehicleHandler.GetVehicle).Methods("GET")
	admin.HandleFunc("/vehicles/{id}", vehicleHandler.UpdateVehicle).Methods("PUT")
	admin.HandleFunc("/vehicles/{id}", vehicleHandler.DeleteVehicle).Methods("DELETE")
	admin.HandleFunc("/customers", customerHandler.ListCustomers).Methods("GET")
	admin.HandleFunc("/customers", customerHandler.CreateCustomer).Methods("POST")
	admin.HandleFunc("/customers/{id}", customerHandler.GetCustomer).Methods("GET")
	admin.HandleFunc("/customers/{id}", customerHandler.UpdateCustomer).Methods("PUT")
	admin.HandleFunc("/customers/{id}", customerHandler.DeleteCustomer).Methods("DELETE")
	admin.HandleFunc("/maintenance", maintenanceHandler.ListRecords).Methods("GET")
	admin.HandleFunc("/maintenance", maintenanceHandler.CreateRecord).Methods("POST")
	admin.HandleFunc("/maintenance/{id}", maintenanceHandler.GetRecord).Methods("GET")
	admin.HandleFunc("/maintenance/{id}", maintenanceHandler.UpdateRecord).Methods("PUT")
	admin.HandleFunc("/maintenance/{id}", maintenanceHandler.DeleteRecord).Methods("DELETE")
	admin.HandleFunc("/transactions", financeHandler.ListTransactions).Methods("GET")
	admin.HandleFunc("/transactions", financeHandler.CreateTransaction).Methods("POST")
	admin.HandleFunc("/transactions/{id}", financeHandler.GetTransaction).Methods("GET")
	admin.HandleFunc("/transactions/{id}", financeHandler.UpdateTransaction).Methods("PUT")
	admin.HandleFunc("/transactions/{id}", financeHandler.DeleteTransaction).Methods("DELETE")

	startJobs(jobSvc)

	corsHandler := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler(r)))
}

func startJobs(jobSvc *service.JobService) {
	pendingTTL := 24 * time.Hour
	if hours := os.Getenv("PENDING_TTL_HOURS"); hours != "" {
		if parsed, err := strconv.Atoi(hours); err == nil && parsed > 0 {
			pendingTTL = time.Duration(parsed) * time.Hour
		}
	}

	c := cron.New()
	c.AddFunc("@every 5m", func() {
		if err := jobSvc.ActivateDueReservations(); err != nil {
			log.Printf("%v", err)
		}
		if err := jobSvc.CompleteFinishedReservations(); err != nil {
			log.Printf("%v", err)
		}
		if err := jobSvc.CancelStalePendingReservations(time.Now().UTC().Add(-pendingTTL)); err != nil {
			log.Printf("%v", err)
		}
		if err := jobSvc.SyncVehicleStatuses(); err != nil {
			log.Printf("%v", err)
		}
	})
	c.Start()
}
