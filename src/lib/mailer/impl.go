package mailer

import (
	"fmt"
	"jcr/src/lib"
	"log"
	"os"
)

func sender() (string, string) {
	from := os.Getenv("SMTP_FROM")
	return from, "Jain Car Rentals"
}

// SendAsync delivers in the background. A failed send is logged and never
// fails the booking operation that triggered it.
func SendAsync(input *lib.SendMailInput) {
	go func() {
		if err := lib.SendMail(input); err != nil {
			log.Printf("Failed to send mail '%s' to %v: %s\n", input.Subject, input.To, err.Error())
		}
	}()
}

func SendBookingConfirmation(to, customerName, bookingID, carName, startDate, endDate string) {
	if to == "" {
		return
	}
	from, fromName := sender()
	body := fmt.Sprintf(
		"Dear %s,\n\nYour booking %s for %s from %s to %s has been confirmed. We look forward to serving you.\n\nThank you,\nJain Car Rentals",
		customerName, bookingID, carName, startDate, endDate,
	)
	SendAsync(&lib.SendMailInput{
		From:     from,
		FromName: fromName,
		To:       []string{to},
		Subject:  "Booking Confirmed",
		Body:     body,
	})
}

func SendBookingRejection(to, customerName, bookingID, carName, startDate, endDate string) {
	if to == "" {
		return
	}
	from, fromName := sender()
	body := fmt.Sprintf(
		"Dear %s,\n\nWe are sorry to inform you that your booking %s for %s from %s to %s could not be accepted. Any amount paid will be refunded.\n\nThank you,\nJain Car Rentals",
		customerName, bookingID, carName, startDate, endDate,
	)
	SendAsync(&lib.SendMailInput{
		From:     from,
		FromName: fromName,
		To:       []string{to},
		Subject:  "Booking Update",
		Body:     body,
	})
}
