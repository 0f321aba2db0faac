package domain

import "time"

// Settings is the process-wide configuration singleton: billing rate plus
// the credentials for the payment and email integrations.
type Settings struct {
	HourlyRate      float64 `json:"hourlyRate"`
	StripeKey       string  `json:"stripeKey,omitempty"`
	EmailServiceID  string  `json:"emailjsServiceId,omitempty"`
	EmailTemplateID string  `json:"emailjsTemplateId,omitempty"`
	EmailPublicKey  string  `json:"emailjsPublicKey,omitempty"`
}

// DefaultSettings returns the settings of a fresh install.
func DefaultSettings() Settings {
	return Settings{HourlyRate: DefaultHourlyRate}
}

// Merge overlays remote settings onto s. Keys present remotely (non-zero)
// always win; keys the remote copy lacks keep their local value, so
// locally-entered unsynced values survive a pull of an older remote row.
func (s Settings) Merge(remote Settings) Settings {
	out := s
	if remote.HourlyRate != 0 {
		out.HourlyRate = remote.HourlyRate
	}
	if remote.StripeKey != "" {
		out.StripeKey = remote.StripeKey
	}
	if remote.EmailServiceID != "" {
		out.EmailServiceID = remote.EmailServiceID
	}
	if remote.EmailTemplateID != "" {
		out.EmailTemplateID = remote.EmailTemplateID
	}
	if remote.EmailPublicKey != "" {
		out.EmailPublicKey = remote.EmailPublicKey
	}
	return out
}

// Document is the entire in-memory application state: every job plus the
// settings singleton. It is the unit of local persistence and the source
// the sync layer pushes from.
type Document struct {
	Jobs     []Job    `json:"jobs"`
	Settings Settings `json:"settings"`
}

// NewDocument returns an empty document with default settings.
func NewDocument() Document {
	return Document{Jobs: []Job{}, Settings: DefaultSettings()}
}

// Job returns a pointer to the job with the given local id, or nil.
func (d *Document) Job(id string) *Job {
	for i := range d.Jobs {
		if d.Jobs[i].ID == id {
			return &d.Jobs[i]
		}
	}
	return nil
}

// RemoveJob deletes the job with the given local id and reports whether
// it was present.
func (d *Document) RemoveJob(id string) bool {
	for i := range d.Jobs {
		if d.Jobs[i].ID == id {
			d.Jobs = append(d.Jobs[:i], d.Jobs[i+1:]...)
			return true
		}
	}
	return false
}

// Clone deep-copies the document so a sync push can work on a snapshot
// while mutations continue on the live copy.
func (d *Document) Clone() Document {
	out := Document{Jobs: make([]Job, len(d.Jobs)), Settings: d.Settings}
	for i := range d.Jobs {
		out.Jobs[i] = cloneJob(d.Jobs[i])
	}
	return out
}

func cloneJob(j Job) Job {
	out := j
	out.Spaces = make([]Space, len(j.Spaces))
	for i, s := range j.Spaces {
		cs := s
		cs.BeforePhotos = append([]Photo(nil), s.BeforePhotos...)
		cs.AfterPhotos = append([]Photo(nil), s.AfterPhotos...)
		out.Spaces[i] = cs
	}
	out.ScheduleDays = append([]ScheduleDay(nil), j.ScheduleDays...)
	out.PreferredDays = append([]string(nil), j.PreferredDays...)
	out.PreferredTimes = append([]string(nil), j.PreferredTimes...)
	out.BlockedDays = append([]string(nil), j.BlockedDays...)
	out.ActualStartTime = cloneTime(j.ActualStartTime)
	out.ActualEndTime = cloneTime(j.ActualEndTime)
	out.ActualHours = cloneFloat(j.ActualHours)
	out.InvoiceAmount = cloneFloat(j.InvoiceAmount)
	out.FinalAmount = cloneFloat(j.FinalAmount)
	out.EstimateSentAt = cloneTime(j.EstimateSentAt)
	out.EstimateApprovedAt = cloneTime(j.EstimateApprovedAt)
	out.ScheduleSentAt = cloneTime(j.ScheduleSentAt)
	out.ScheduleAcceptedAt = cloneTime(j.ScheduleAcceptedAt)
	out.PaidAt = cloneTime(j.PaidAt)
	if j.Feedback != nil {
		fb := *j.Feedback
		out.Feedback = &fb
	}
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	c := *f
	return &c
}
