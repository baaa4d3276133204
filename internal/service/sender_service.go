package service

import (
	"fmt"
	"log"

	"carrental/internal/db"
	"carrental/internal/entities"
)

type SenderService struct {
}

func NewSenderService() *SenderService {
	return &SenderService{}
}

// SendReservationNotifications emails and texts the customer about the current
// state of their reservation. Delivery runs in the background; failures are
// logged and never surface to the booking flow.
func (s *SenderService) SendReservationNotifications(reservation db.Reservation, customer db.Customer, vehicle db.Vehicle) {
	data := entities.ReservationEmailData{
		CustomerName:    customer.FirstName + " " + customer.LastName,
		ReservationID:   reservation.ID,
		VehicleName:     vehicle.Make + " " + vehicle.Model,
		LicensePlate:    vehicle.LicensePlate,
		PickupFormatted: reservation.PickupAt.Format("02 Jan 2006 15:04 MST"),
		ReturnFormatted: reservation.ReturnAt.Format("02 Jan 2006 15:04 MST"),
		TotalAmount:     reservation.TotalAmount,
		Status:          string(reservation.Status),
	}

	subject := fmt.Sprintf("Your rental reservation is %s - Ref: %s", data.Status, data.ReservationID)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour reservation is %s.\n\n"+
			"Reservation Details:\n"+
			"Reference: %s\n"+
			"Vehicle: %s (Plate: %s)\n"+
			"Pickup: %s\n"+
			"Return: %s\n"+
			"Total: %.2f\n\n"+
			"Thank you for renting with us.",
		data.CustomerName, data.Status, data.ReservationID, data.VehicleName, data.LicensePlate,
		data.PickupFormatted, data.ReturnFormatted, data.TotalAmount,
	)

	smsMessage := fmt.Sprintf("Rental: reservation %s is %s.\nPickup: %s.\nDetails in your email.",
		data.ReservationID, data.Status, reservation.PickupAt.Format("02/01 15:04"))

	target := entities.NotificationTarget{Email: customer.Email, Phone: customer.Phone}

	go func() {
		if err := SendEmailWithSendGrid(target.Email, data.CustomerName, subject, body); err != nil {
			log.Printf("Failed to send reservation email for %s: %v", data.ReservationID, err)
		}
		if target.Phone == "" {
			return
		}
		if err := SendSMS(target.Phone, smsMessage); err != nil {
			log.Printf("Failed to send reservation SMS for %s: %v", data.ReservationID, err)
		}
	}()
}
