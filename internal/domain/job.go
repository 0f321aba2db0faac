package domain

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
)

// ScheduleDay is one calendar day of allocated work for a job.
type ScheduleDay struct {
	ID        string  `json:"id"`
	Date      string  `json:"date"`      // YYYY-MM-DD
	StartTime string  `json:"startTime"` // HH:MM
	Hours     float64 `json:"hours"`
}

// NewScheduleDay creates an empty day starting at the default morning slot.
func NewScheduleDay() ScheduleDay {
	return ScheduleDay{ID: uuid.New().String(), StartTime: "09:00"}
}

// Feedback is the client's rating of a finished job.
type Feedback struct {
	Rating int       `json:"rating"`
	Text   string    `json:"text,omitempty"`
	Date   time.Time `json:"date"`
}

// Job is one client engagement: contact details, the spaces to organize,
// the agreed schedule, and the money trail from estimate to payment.
//
// ID is the stable client-generated identity and the only key the API
// layer uses. RemoteID is the row id assigned by the remote store on first
// insert; it persists with the local blob so the binding survives a
// restart, and the upload path strips it from the wire payload.
type Job struct {
	ID       string `json:"id"`
	RemoteID string `json:"remoteId,omitempty"`

	ClientName    string `json:"clientName"`
	ClientPhone   string `json:"clientPhone,omitempty"`
	ClientEmail   string `json:"clientEmail,omitempty"`
	ClientAddress string `json:"clientAddress,omitempty"`
	Notes         string `json:"notes,omitempty"`

	Spaces []Space `json:"spaces"`

	PreferredDays  []string      `json:"preferredDays,omitempty"`
	PreferredTimes []string      `json:"preferredTimes,omitempty"`
	BlockedDays    []string      `json:"blockedDays,omitempty"`
	ScheduleDays   []ScheduleDay `json:"scheduleDays"`

	// Legacy single-value schedule mirror: always the earliest day.
	ScheduledDate string `json:"scheduledDate,omitempty"`
	ScheduledTime string `json:"scheduledTime,omitempty"`

	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`

	PaymentMethod string  `json:"paymentMethod"`
	DiscountType  string  `json:"discountType"` // none, percent, dollar
	DiscountValue float64 `json:"discountValue"`

	EstimatedHours float64 `json:"estimatedHours"`
	EstimatedCost  float64 `json:"estimatedCost"`
	TotalEstimate  float64 `json:"totalEstimate"`

	ActualStartTime *time.Time `json:"actualStartTime,omitempty"`
	ActualEndTime   *time.Time `json:"actualEndTime,omitempty"`
	ActualHours     *float64   `json:"actualHours,omitempty"`

	InvoiceAmount *float64 `json:"invoiceAmount,omitempty"`
	FinalAmount   *float64 `json:"finalAmount,omitempty"`

	EstimateSentAt     *time.Time `json:"estimateSentAt,omitempty"`
	EstimateApprovedAt *time.Time `json:"estimateApprovedAt,omitempty"`
	ScheduleSentAt     *time.Time `json:"scheduleSentAt,omitempty"`
	ScheduleAcceptedAt *time.Time `json:"scheduleAcceptedAt,omitempty"`
	PaidAt             *time.Time `json:"paidAt,omitempty"`

	Feedback *Feedback `json:"feedback,omitempty"`
}

// NewJob creates a job in the assessment state with one default space.
func NewJob() Job {
	return Job{
		ID:            uuid.New().String(),
		Spaces:        []Space{NewSpace()},
		ScheduleDays:  []ScheduleDay{},
		Status:        StatusAssessment,
		CreatedAt:     time.Now().UTC(),
		PaymentMethod: "cash",
		DiscountType:  DiscountNone,
	}
}

// TotalHours sums the effective hours over all spaces.
func (j *Job) TotalHours() float64 {
	var total float64
	for i := range j.Spaces {
		total += j.Spaces[i].EffectiveHours()
	}
	return math.Round(total*10) / 10
}

// Normalize sorts the schedule by date, drops undated days, mirrors the
// earliest day into the legacy single-value fields, and refreshes the
// hour/cost rollups from the spaces.
func (j *Job) Normalize(hourlyRate float64) {
	days := j.ScheduleDays[:0]
	for _, d := range j.ScheduleDays {
		if d.Date != "" {
			days = append(days, d)
		}
	}
	sort.SliceStable(days, func(a, b int) bool { return days[a].Date < days[b].Date })
	j.ScheduleDays = days

	if len(days) > 0 {
		j.ScheduledDate = days[0].Date
		j.ScheduledTime = days[0].StartTime
	} else {
		j.ScheduledDate = ""
		j.ScheduledTime = ""
	}

	j.EstimatedHours = j.TotalHours()
	j.EstimatedCost = Cents(HoursCost(j.EstimatedHours, hourlyRate))
	j.TotalEstimate = Cents(EstimateTotal(HoursCost(j.EstimatedHours, hourlyRate), j.DiscountType, j.DiscountValue, j.PaymentMethod))
}

// ScheduledHours sums the hours allocated across all schedule days.
func (j *Job) ScheduledHours() float64 {
	var total float64
	for _, d := range j.ScheduleDays {
		total += d.Hours
	}
	return total
}

// Transition moves the job to a new status, enforcing the workflow order.
func (j *Job) Transition(to Status) error {
	if !CanTransition(j.Status, to) {
		return &TransitionError{From: j.Status, To: to}
	}
	j.Status = to
	return nil
}

// Space returns a pointer to the space with the given id, or nil.
func (j *Job) Space(id string) *Space {
	for i := range j.Spaces {
		if j.Spaces[i].ID == id {
			return &j.Spaces[i]
		}
	}
	return nil
}

// RemoveSpace deletes a space, refusing to drop the last one.
func (j *Job) RemoveSpace(id string) error {
	if len(j.Spaces) <= 1 {
		return ErrLastSpace
	}
	for i := range j.Spaces {
		if j.Spaces[i].ID == id {
			j.Spaces = append(j.Spaces[:i], j.Spaces[i+1:]...)
			return nil
		}
	}
	return ErrSpaceNotFound
}
