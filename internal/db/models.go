package db

import "time"

const (
	VehicleAvailable   = "available"
	VehicleRented      = "rented"
	VehicleMaintenance = "maintenance"
)

const (
	CustomerActive   = "active"
	CustomerInactive = "inactive"
)

const (
	MaintenanceScheduled  = "scheduled"
	MaintenanceInProgress = "in_progress"
	MaintenanceCompleted  = "completed"
	MaintenanceCancelled  = "cancelled"
)

const (
	TransactionPending   = "pending"
	TransactionCompleted = "completed"
	TransactionCancelled = "cancelled"
)

type Vehicle struct {
	ID           string    `json:"id"`
	Make         string    `json:"make"`
	Model        string    `json:"model"`
	Year         int       `json:"year"`
	LicensePlate string    `json:"license_plate"`
	DailyRate    float64   `json:"daily_rate"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Customer struct {
	ID            string     `json:"id"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	DateOfBirth   *time.Time `json:"date_of_birth,omitempty"`
	LicenseNumber string     `json:"license_number"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type Reservation struct {
	ID          string            `json:"id"`
	CustomerID  string            `json:"customer_id"`
	VehicleID   string            `json:"vehicle_id"`
	PickupAt    time.Time         `json:"pickup_at"`
	ReturnAt    time.Time         `json:"return_at"`
	TotalAmount float64           `json:"total_amount"`
	Status      ReservationStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type MaintenanceRecord struct {
	ID            string     `json:"id"`
	VehicleID     string     `json:"vehicle_id"`
	ServiceType   string     `json:"service_type"`
	Description   string     `json:"description"`
	ScheduledDate time.Time  `json:"scheduled_date"`
	CompletedDate *time.Time `json:"completed_date,omitempty"`
	EstimatedCost float64    `json:"estimated_cost"`
	ActualCost    *float64   `json:"actual_cost,omitempty"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type FinancialTransaction struct {
	ID              string    `json:"id"`
	PaymentType     string    `json:"payment_type"`
	CustomerID      *string   `json:"customer_id,omitempty"`
	Amount          float64   `json:"amount"`
	Description     string    `json:"description"`
	TransactionDate time.Time `json:"transaction_date"`
	PaymentMethod   string    `json:"payment_method"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
