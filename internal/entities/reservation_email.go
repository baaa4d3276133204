package entities

// ReservationEmailData carries the fields rendered into booking notifications.
type ReservationEmailData struct {
	CustomerName    string
	ReservationID   string
	VehicleName     string
	LicensePlate    string
	PickupFormatted string
	ReturnFormatted string
	TotalAmount     float64
	Status          string
}

// NotificationTarget identifies who receives a booking notification.
type NotificationTarget struct {
	Email string
	Phone string
}
