package domain

import "time"

type CarStatus string

const (
	CarStatusAvailable   CarStatus = "Available"
	CarStatusInUse       CarStatus = "In Use"
	CarStatusMaintenance CarStatus = "Maintenance"
)

func ValidCarStatus(s CarStatus) bool {
	switch s {
	case CarStatusAvailable, CarStatusInUse, CarStatusMaintenance:
		return true
	}
	return false
}

type Car struct {
	ID              int32     `json:"id"`
	Name            string    `json:"name"`
	HourlyRateCents int32     `json:"hourly_rate_cents"`
	Condition       string    `json:"condition"`
	Status          CarStatus `json:"status"`
	ImageURL        string    `json:"image_url,omitempty"`
	CreatedOn       time.Time `json:"created_on"`
}
