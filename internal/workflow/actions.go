// Package workflow drives jobs through the business pipeline. Each action
// validates the job's current state, performs its side effects (email,
// timers, invoice math), and executes exactly one status transition
// through the coordinator so every change lands locally first and syncs
// on the usual debounce.
package workflow

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/babithbhoop/sparklespace/internal/domain"
	"github.com/babithbhoop/sparklespace/internal/notify"
	"github.com/babithbhoop/sparklespace/internal/sync"
)

// Sender is the slice of the mailer the workflow uses.
type Sender interface {
	Configured() bool
	Send(ctx context.Context, msg notify.Message) error
}

// Actions bundles the pipeline operations.
type Actions struct {
	coord  *sync.Coordinator
	mailer Sender
	logger *slog.Logger
}

// New creates the action set.
func New(coord *sync.Coordinator, mailer Sender, logger *slog.Logger) *Actions {
	return &Actions{coord: coord, mailer: mailer, logger: logger}
}

func (a *Actions) rate() float64 {
	rate := a.coord.Settings().HourlyRate
	if rate <= 0 {
		rate = domain.DefaultHourlyRate
	}
	return rate
}

// SendAssessment mails the estimate and moves the job to estimate-sent.
// Re-sending from estimate-sent is allowed and does not re-transition.
func (a *Actions) SendAssessment(ctx context.Context, jobID string) error {
	job, err := a.coord.Job(jobID)
	if err != nil {
		return err
	}
	if job.ClientEmail == "" {
		return domain.NewValidationError("clientEmail", "client email is required to send an estimate")
	}
	if job.Status != domain.StatusEstimateSent {
		if !domain.CanTransition(job.Status, domain.StatusEstimateSent) {
			return &domain.TransitionError{From: job.Status, To: domain.StatusEstimateSent}
		}
	}

	msg, err := notify.AssessmentMessage(job, a.rate())
	if err != nil {
		return err
	}
	if err := a.mailer.Send(ctx, msg); err != nil {
		return err
	}

	now := time.Now().UTC()
	return a.coord.UpdateJob(jobID, func(j *domain.Job) error {
		if j.Status != domain.StatusEstimateSent {
			if err := j.Transition(domain.StatusEstimateSent); err != nil {
				return err
			}
		}
		j.EstimateSentAt = &now
		return nil
	})
}

// MarkEstimateApproved records the client's approval.
func (a *Actions) MarkEstimateApproved(jobID string) error {
	now := time.Now().UTC()
	return a.coord.UpdateJob(jobID, func(j *domain.Job) error {
		if err := j.Transition(domain.StatusEstimateApproved); err != nil {
			return err
		}
		j.EstimateApprovedAt = &now
		return nil
	})
}

// SendSchedule mails the proposed schedule and moves to schedule-sent.
func (a *Actions) SendSchedule(ctx context.Context, jobID string) error {
	job, err := a.coord.Job(jobID)
	if err != nil {
		return err
	}
	if job.ClientEmail == "" {
		return domain.NewValidationError("clientEmail", "client email is required to send a schedule")
	}
	dated := 0
	for _, d := range job.ScheduleDays {
		if d.Date != "" {
			dated++
		}
	}
	if dated == 0 {
		return domain.NewValidationError("scheduleDays", "at least one schedule day with a date is required")
	}
	if !domain.CanTransition(job.Status, domain.StatusScheduleSent) {
		return &domain.TransitionError{From: job.Status, To: domain.StatusScheduleSent}
	}

	msg, err := notify.ScheduleMessage(job)
	if err != nil {
		return err
	}
	if err := a.mailer.Send(ctx, msg); err != nil {
		return err
	}

	now := time.Now().UTC()
	return a.coord.UpdateJob(jobID, func(j *domain.Job) error {
		if err := j.Transition(domain.StatusScheduleSent); err != nil {
			return err
		}
		j.ScheduleSentAt = &now
		return nil
	})
}

// ReopenSchedule pulls a sent schedule back for editing.
func (a *Actions) ReopenSchedule(jobID string) error {
	return a.coord.UpdateJob(jobID, func(j *domain.Job) error {
		return j.Transition(domain.StatusEstimateApproved)
	})
}

// ConfirmSchedule mails the booking confirmation and moves to scheduled.
func (a *Actions) ConfirmSchedule(ctx context.Context, jobID string) error {
	job, err := a.coord.Job(jobID)
	if err != nil {
		return err
	}
	if !domain.CanTransition(job.Status, domain.StatusScheduled) {
		return &domain.TransitionError{From: job.Status, To: domain.StatusScheduled}
	}

	if job.ClientEmail != "" && a.mailer.Configured() {
		msg, err := notify.ConfirmationMessage(job)
		if err != nil {
			return err
		}
		if err := a.mailer.Send(ctx, msg); err != nil {
			a.logger.Warn("Confirmation email failed, booking stands",
				slog.String("job_id", jobID),
				slog.String("error", err.Error()),
			)
		}
	}

	now := time.Now().UTC()
	return a.coord.UpdateJob(jobID, func(j *domain.Job) error {
		if err := j.Transition(domain.StatusScheduled); err != nil {
			return err
		}
		j.ScheduleAcceptedAt = &now
		return nil
	})
}

// StartTimer begins on-site work and records the start instant.
func (a *Actions) StartTimer(jobID string) error {
	now := time.Now().UTC()
	return a.coord.UpdateJob(jobID, func(j *domain.Job) error {
		if err := j.Transition(domain.StatusInProgress); err != nil {
			return err
		}
		j.ActualStartTime = &now
		j.ActualEndTime = nil
		j.ActualHours = nil
		return nil
	})
}

// StopTimer ends on-site work, deriving actual hours from the timer when
// it ran, rounded to a tenth.
func (a *Actions) StopTimer(jobID string) error {
	now := time.Now().UTC()
	return a.coord.UpdateJob(jobID, func(j *domain.Job) error {
		if err := j.Transition(domain.StatusCompleted); err != nil {
			return err
		}
		j.ActualEndTime = &now
		if j.ActualStartTime != nil {
			hours := now.Sub(*j.ActualStartTime).Hours()
			hours = math.Round(hours*10) / 10
			j.ActualHours = &hours
		}
		return nil
	})
}

// SetActualHours overrides the timed hours by hand.
func (a *Actions) SetActualHours(jobID string, hours float64) error {
	if hours < 0 {
		return domain.NewValidationError("actualHours", "hours cannot be negative")
	}
	return a.coord.UpdateJob(jobID, func(j *domain.Job) error {
		rounded := math.Round(hours*10) / 10
		j.ActualHours = &rounded
		return nil
	})
}

// GenerateInvoice computes the final bill from actual hours when present,
// estimated hours otherwise, applying discount then tax, and moves to
// invoiced.
func (a *Actions) GenerateInvoice(jobID string) error {
	rate := a.rate()
	return a.coord.UpdateJob(jobID, func(j *domain.Job) error {
		if err := j.Transition(domain.StatusInvoiced); err != nil {
			return err
		}
		hours := j.TotalHours()
		if j.ActualHours != nil {
			hours = *j.ActualHours
		}
		subtotal := domain.HoursCost(hours, rate)
		amount := domain.Cents(domain.EstimateTotal(subtotal, j.DiscountType, j.DiscountValue, j.PaymentMethod))
		j.InvoiceAmount = &amount
		return nil
	})
}

// MarkPaid records payment of the invoiced amount.
func (a *Actions) MarkPaid(jobID string) error {
	now := time.Now().UTC()
	return a.coord.UpdateJob(jobID, func(j *domain.Job) error {
		if err := j.Transition(domain.StatusPaid); err != nil {
			return err
		}
		if j.InvoiceAmount != nil {
			final := *j.InvoiceAmount
			j.FinalAmount = &final
		}
		j.PaidAt = &now
		return nil
	})
}

// SaveFeedback attaches the client's rating to a paid job.
func (a *Actions) SaveFeedback(jobID string, rating int, text string) error {
	if rating < 1 || rating > 5 {
		return domain.NewValidationError("rating", "rating must be between 1 and 5")
	}
	return a.coord.UpdateJob(jobID, func(j *domain.Job) error {
		if j.Status != domain.StatusPaid {
			return domain.NewValidationError("status", "feedback can only be saved for paid jobs")
		}
		j.Feedback = &domain.Feedback{Rating: rating, Text: text, Date: time.Now().UTC()}
		return nil
	})
}
