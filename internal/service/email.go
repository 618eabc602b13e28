package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"drivesync-backend/internal/domain"
	"drivesync-backend/internal/logger"
)

type sendGridEmailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

// NewSendGridEmailService returns an EmailService backed by SendGrid.
// With an empty API key every send becomes a logged no-op, which keeps
// local development working without credentials.
func NewSendGridEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &sendGridEmailService{apiKey: apiKey, fromEmail: fromEmail, fromName: fromName}
}

func (s *sendGridEmailService) SendBookingReceipt(ctx context.Context, user *domain.User, rental *domain.Rental, car *domain.Car, payment *domain.Payment) error {
	subject := fmt.Sprintf("Booking confirmed: %s", car.Name)
	body := fmt.Sprintf(
		"Hi %s,\n\nYour booking is confirmed.\n\nCar: %s\nFrom: %s\nTo: %s\nHours: %d\nTotal: %s\nPayment reference: %s\n\nThank you for riding with us.",
		user.Name, car.Name,
		rental.StartTime.Format("Jan 2, 2006 3:04 PM"),
		rental.EndTime.Format("Jan 2, 2006 3:04 PM"),
		rental.HoursRented,
		formatCents(rental.TotalCostCents),
		payment.Reference,
	)
	return s.send(ctx, user, subject, body)
}

func (s *sendGridEmailService) SendChangeRequestDecision(ctx context.Context, user *domain.User, request *domain.CarChangeRequest, approved bool) error {
	var subject, body string
	if approved {
		subject = "Car change request approved"
		body = fmt.Sprintf("Hi %s,\n\nYour request to change the car on rental #%d was approved. Your rental now uses the car you requested.", user.Name, request.RentalID)
	} else {
		subject = "Car change request rejected"
		body = fmt.Sprintf("Hi %s,\n\nYour request to change the car on rental #%d was rejected. Your rental keeps its current car.", user.Name, request.RentalID)
	}
	return s.send(ctx, user, subject, body)
}

func (s *sendGridEmailService) send(_ context.Context, user *domain.User, subject, body string) error {
	if s.apiKey == "" || user.Email == "" {
		logger.Debug("email skipped", "user_id", user.ID, "subject", subject)
		return nil
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(user.Name, user.Email)
	message := mail.NewSingleEmail(from, subject, to, body, "")

	client := sendgrid.NewSendClient(s.apiKey)
	resp, err := client.Send(message)
	if err != nil {
		logger.Warn("email send failed", "user_id", user.ID, "subject", subject, "error", err)
		return err
	}
	if resp.StatusCode >= 400 {
		logger.Warn("email rejected", "user_id", user.ID, "subject", subject, "status", resp.StatusCode)
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	logger.Debug("email sent", "user_id", user.ID, "subject", subject)
	return nil
}

func formatCents(cents int32) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
