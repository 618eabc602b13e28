package domain

import "time"

type ChangeRequestStatus string

const (
	ChangeRequestStatusPending  ChangeRequestStatus = "Pending"
	ChangeRequestStatusApproved ChangeRequestStatus = "Approved"
	ChangeRequestStatusRejected ChangeRequestStatus = "Rejected"
)

// CarChangeRequest asks to swap the car on an active rental. The rental is
// untouched until an admin approves; rejection leaves it unchanged.
type CarChangeRequest struct {
	ID        int32               `json:"id"`
	UserID    int32               `json:"user_id"`
	RentalID  int32               `json:"rental_id"`
	OldCarID  int32               `json:"old_car_id"`
	NewCarID  int32               `json:"new_car_id"`
	Status    ChangeRequestStatus `json:"status"`
	CreatedOn time.Time           `json:"created_on"`
	UpdatedOn time.Time           `json:"updated_on"`
}

// ChangeRequestSummary is the admin review queue row, joined with the
// requester and both car names.
type ChangeRequestSummary struct {
	RequestID  int32     `json:"request_id"`
	Username   string    `json:"username"`
	RentalID   int32     `json:"rental_id"`
	OldCarID   int32     `json:"old_car_id"`
	OldCarName string    `json:"old_car_name"`
	NewCarID   int32     `json:"new_car_id"`
	NewCarName string    `json:"new_car_name"`
	CreatedOn  time.Time `json:"created_on"`
}
