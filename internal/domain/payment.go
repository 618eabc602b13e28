package domain

import "time"

// Payment records a charge against a rental. One row is written when the
// booking is confirmed; the reference is shown on the customer receipt.
type Payment struct {
	ID          int32     `json:"id"`
	RentalID    int32     `json:"rental_id"`
	Reference   string    `json:"reference"`
	AmountCents int32     `json:"amount_cents"`
	PaymentTime time.Time `json:"payment_time"`
}
