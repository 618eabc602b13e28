package domain

import "time"

type RentalStatus string

const (
	RentalStatusActive    RentalStatus = "Active"
	RentalStatusCompleted RentalStatus = "Completed"
	RentalStatusCancelled RentalStatus = "Cancelled"
)

type RentalMode string

const (
	RentalModePickup   RentalMode = "Pickup"
	RentalModeDelivery RentalMode = "Delivery"
)

type Rental struct {
	ID               int32      `json:"id"`
	UserID           int32      `json:"user_id"`
	CarID            int32      `json:"car_id"`
	StartTime        time.Time  `json:"start_time"`
	EndTime          time.Time  `json:"end_time"`
	HoursRented      int32      `json:"hours_rented"`
	Mode             RentalMode `json:"mode"`
	DeliveryLocation string     `json:"delivery_location,omitempty"`
	DeliveryFeeCents int32      `json:"delivery_fee_cents"`
	// Price snapshot captured at booking time. Timing edits recompute
	// hours_rented but never this field.
	TotalCostCents int32        `json:"total_cost_cents"`
	Status         RentalStatus `json:"status"`
	CreatedOn      time.Time    `json:"created_on"`
	UpdatedOn      time.Time    `json:"updated_on"`
}
