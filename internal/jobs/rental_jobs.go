package jobs

import (
	"context"
	"time"

	"drivesync-backend/internal/domain"
	"drivesync-backend/internal/logger"
)

// CompleteOverdueRentals completes rentals whose end time has passed and
// frees their cars. Pending change requests on those rentals are rejected,
// mirroring what a manual completion does.
func (jr *JobRunner) CompleteOverdueRentals() {
	jr.runWithRecovery("CompleteOverdueRentals", func() {
		ctx := context.Background()
		now := time.Now()

		tx, err := jr.db.BeginTx(ctx, nil)
		if err != nil {
			logger.Error("Failed to begin transaction", "error", err)
			return
		}
		defer tx.Rollback()

		rows, err := tx.QueryContext(ctx, `
			UPDATE rentals
			SET status = $1,
			    updated_on = $2
			WHERE status = $3
			  AND end_time < $2
			RETURNING id, user_id, car_id
		`, domain.RentalStatusCompleted, now, domain.RentalStatusActive)
		if err != nil {
			logger.Error("Failed to complete overdue rentals", "error", err)
			return
		}

		type overdue struct {
			RentalID int32
			UserID   int32
			CarID    int32
		}
		var completed []overdue
		for rows.Next() {
			var o overdue
			if err := rows.Scan(&o.RentalID, &o.UserID, &o.CarID); err != nil {
				logger.Error("Failed to scan overdue rental", "error", err)
				rows.Close()
				return
			}
			completed = append(completed, o)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			logger.Error("Error iterating overdue rentals", "error", err)
			return
		}
		rows.Close()

		for _, o := range completed {
			if _, err := tx.ExecContext(ctx,
				`UPDATE cars SET status=$1 WHERE id=$2`,
				domain.CarStatusAvailable, o.CarID); err != nil {
				logger.Error("Failed to free car", "car_id", o.CarID, "error", err)
				return
			}
			if _, err := tx.ExecContext(ctx,
				`UPDATE car_change_requests SET status=$1, updated_on=$2 WHERE rental_id=$3 AND status=$4`,
				domain.ChangeRequestStatusRejected, now, o.RentalID, domain.ChangeRequestStatusPending); err != nil {
				logger.Error("Failed to reject pending change request", "rental_id", o.RentalID, "error", err)
				return
			}
		}

		if err := tx.Commit(); err != nil {
			logger.Error("Failed to commit overdue completion", "error", err)
			return
		}

		logger.Info("Completed overdue rentals", "count", len(completed))
		for _, o := range completed {
			logger.Debug("Completed overdue rental",
				"rental_id", o.RentalID,
				"user_id", o.UserID,
				"car_id", o.CarID)
		}
	})
}
