package domain

// Status is the workflow state of a Job.
type Status string

const (
	StatusAssessment       Status = "assessment"
	StatusEstimateSent     Status = "estimate-sent"
	StatusEstimateApproved Status = "estimate-approved"
	StatusScheduleSent     Status = "schedule-sent"
	StatusScheduled        Status = "scheduled"
	StatusInProgress       Status = "in-progress"
	StatusCompleted        Status = "completed"
	StatusInvoiced         Status = "invoiced"
	StatusPaid             Status = "paid"
)

// Statuses lists all workflow states in order.
var Statuses = []Status{
	StatusAssessment,
	StatusEstimateSent,
	StatusEstimateApproved,
	StatusScheduleSent,
	StatusScheduled,
	StatusInProgress,
	StatusCompleted,
	StatusInvoiced,
	StatusPaid,
}

// transitions holds the allowed single-step state changes. schedule-sent
// may fall back to estimate-approved so the schedule can be edited and
// re-sent.
var transitions = map[Status][]Status{
	StatusAssessment:       {StatusEstimateSent},
	StatusEstimateSent:     {StatusEstimateApproved},
	StatusEstimateApproved: {StatusScheduleSent},
	StatusScheduleSent:     {StatusScheduled, StatusEstimateApproved},
	StatusScheduled:        {StatusInProgress},
	StatusInProgress:       {StatusCompleted},
	StatusCompleted:        {StatusInvoiced},
	StatusInvoiced:         {StatusPaid},
	StatusPaid:             {},
}

// Valid reports whether s is a known workflow state.
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition reports whether a job may move from one status to another
// in a single workflow action.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Active reports whether the status represents work that is not yet done.
func (s Status) Active() bool {
	switch s {
	case StatusAssessment, StatusEstimateSent, StatusEstimateApproved,
		StatusScheduleSent, StatusScheduled, StatusInProgress:
		return true
	}
	return false
}
