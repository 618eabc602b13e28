package jobs

import (
	"database/sql"

	"drivesync-backend/internal/config"
	"drivesync-backend/internal/logger"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	db     *sql.DB
	config *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(db *sql.DB, cfg *config.Config) *JobRunner {
	return &JobRunner{
		db:     db,
		config: cfg,
	}
}

// Config exposes the loaded configuration to the scheduler
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllJobs runs every job once (for manual execution)
func (jr *JobRunner) RunAllJobs() {
	jr.CompleteOverdueRentals()
}
