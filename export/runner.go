package export

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dripapps/canva-connect/canva"
	errs "github.com/dripapps/canva-connect/internal/errors"
)

// State of one export operation. Every run ends in Succeeded, Failed, or
// TimedOut; the polling budget guarantees it cannot hang.
type State string

const (
	StateCreated   State = "created"
	StatePolling   State = "polling"
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
	StateTimedOut  State = "timed_out"
)

// JobAPI is the slice of the Canva client the runner needs.
type JobAPI interface {
	CreateExport(ctx context.Context, accessToken, designID string) (string, error)
	GetExport(ctx context.Context, accessToken, jobID string) (*canva.ExportJob, error)
}

// Result describes where an export operation ended up. State is always a
// terminal state; DownloadURL is set only for StateSucceeded.
type Result struct {
	State       State
	JobID       string
	DownloadURL string
	Attempts    int
}

// Runner converts a design id into a download URL by creating a remote
// export job and polling it to a terminal state. A Runner carries no
// per-operation state, so one instance serves concurrent imports.
type Runner struct {
	api         JobAPI
	clock       Clock
	interval    time.Duration
	maxAttempts int
}

func NewRunner(api JobAPI, interval time.Duration, maxAttempts int) *Runner {
	return &Runner{
		api:         api,
		clock:       NewRealClock(),
		interval:    interval,
		maxAttempts: maxAttempts,
	}
}

// WithClock swaps the wall clock, primarily for tests.
func (r *Runner) WithClock(clock Clock) *Runner {
	r.clock = clock
	return r
}

// Run blocks until the export reaches a terminal state and returns the
// download URL on success. Expect it to take a few seconds for real designs.
func (r *Runner) Run(ctx context.Context, accessToken, designID string) (Result, error) {
	jobID, err := r.api.CreateExport(ctx, accessToken, designID)
	if err != nil {
		return Result{State: StateFailed}, fmt.Errorf("export.Run create job for design %q: %w", designID, err)
	}
	log.Info().Str("design_id", designID).Str("job_id", jobID).Msg("Export job created")

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		job, err := r.api.GetExport(ctx, accessToken, jobID)
		if err != nil {
			return Result{State: StateFailed, JobID: jobID, Attempts: attempt},
				fmt.Errorf("export.Run poll job %q (attempt %d): %w", jobID, attempt, err)
		}

		if job == nil {
			log.Warn().Str("job_id", jobID).Int("attempt", attempt).Msg("Export status response missing job, retrying")
			if err := r.clock.Sleep(ctx, r.interval); err != nil {
				return Result{State: StateFailed, JobID: jobID, Attempts: attempt},
					fmt.Errorf("export.Run job %q: %w", jobID, err)
			}
			continue
		}

		log.Info().Str("job_id", jobID).Str("status", job.Status).Int("attempt", attempt).Msg("Export job status")

		switch job.Status {
		case canva.ExportStatusSuccess:
			url, ok := downloadURL(job)
			if !ok {
				return Result{State: StateFailed, JobID: jobID, Attempts: attempt},
					fmt.Errorf("export.Run job %q completed but no download URL: %w", jobID, errs.ErrContractViolation)
			}
			return Result{State: StateSucceeded, JobID: jobID, DownloadURL: url, Attempts: attempt}, nil

		case canva.ExportStatusFailed:
			message := "unknown error"
			if job.Error != nil && job.Error.Message != "" {
				message = job.Error.Message
			}
			return Result{State: StateFailed, JobID: jobID, Attempts: attempt},
				fmt.Errorf("export.Run job %q: %w: %s", jobID, errs.ErrExportFailed, message)

		default:
			// in_progress, or a status this service does not recognise.
			if err := r.clock.Sleep(ctx, r.interval); err != nil {
				return Result{State: StateFailed, JobID: jobID, Attempts: attempt},
					fmt.Errorf("export.Run job %q: %w", jobID, err)
			}
		}
	}

	log.Error().Str("design_id", designID).Str("job_id", jobID).Int("attempts", r.maxAttempts).Msg("Export job timed out")
	return Result{State: StateTimedOut, JobID: jobID, Attempts: r.maxAttempts},
		fmt.Errorf("export.Run job %q: %w after %d attempts", jobID, errs.ErrExportTimeout, r.maxAttempts)
}

// downloadURL picks the first URL, preferring result.downloadUrls and
// falling back to the top-level urls field.
func downloadURL(job *canva.ExportJob) (string, bool) {
	if job.Result != nil && len(job.Result.DownloadURLs) > 0 {
		return job.Result.DownloadURLs[0], true
	}
	if len(job.URLs) > 0 {
		return job.URLs[0], true
	}
	return "", false
}
