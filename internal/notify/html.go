package notify

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/babithbhoop/sparklespace/internal/domain"
)

// Email is the generic shape every outbound body renders from.
type Email struct {
	Greeting string
	Sections []Section
	CTA      string
	Footer   string
}

// Section is one titled block of the body.
type Section struct {
	Title string
	Lines []string
}

var bodyTemplate = template.Must(template.New("email").Parse(`<div style="font-family:Arial,Helvetica,sans-serif;max-width:600px;margin:0 auto;color:#333">
<div style="background:#7c5cbf;color:#fff;padding:16px 24px;border-radius:8px 8px 0 0">
<h2 style="margin:0">SparkleSpace Organizing</h2>
</div>
<div style="padding:24px;border:1px solid #e2e2e2;border-top:none;border-radius:0 0 8px 8px">
<p>{{.Greeting}}</p>
{{range .Sections}}<h3 style="color:#7c5cbf;margin-bottom:4px">{{.Title}}</h3>
{{range .Lines}}<p style="margin:4px 0">{{.}}</p>
{{end}}{{end}}{{if .CTA}}<p style="margin-top:16px"><strong>{{.CTA}}</strong></p>
{{end}}<p style="margin-top:24px;color:#888;font-size:13px">{{.Footer}}</p>
</div>
</div>`))

// BuildHTML renders the branded body. Field values are escaped by the
// template engine, so client-entered text is safe to interpolate.
func BuildHTML(e Email) (string, error) {
	if e.Footer == "" {
		e.Footer = "SparkleSpace Organizing · Making room for what matters"
	}
	var sb strings.Builder
	if err := bodyTemplate.Execute(&sb, e); err != nil {
		return "", fmt.Errorf("notify: render email body: %w", err)
	}
	return sb.String(), nil
}

// AssessmentMessage builds the estimate email sent after the in-home
// assessment.
func AssessmentMessage(job domain.Job, hourlyRate float64) (Message, error) {
	spaceLines := make([]string, 0, len(job.Spaces))
	for _, sp := range job.Spaces {
		spaceLines = append(spaceLines, fmt.Sprintf("%s (%s, %s clutter): %.1f hours",
			sp.SpaceType, sp.Size, sp.ClutterLevel, sp.EffectiveHours()))
	}
	total := job.TotalHours()
	cost := domain.Cents(domain.HoursCost(total, hourlyRate))

	body, err := BuildHTML(Email{
		Greeting: fmt.Sprintf("Hi %s, thank you for walking us through your home! Here is your organizing estimate.", firstName(job.ClientName)),
		Sections: []Section{
			{Title: "Your spaces", Lines: spaceLines},
			{Title: "Estimate", Lines: []string{
				fmt.Sprintf("Total estimated time: %.1f hours", total),
				fmt.Sprintf("Estimated cost: $%.2f", cost),
			}},
		},
		CTA: "Reply to this email to approve your estimate and we will get you on the calendar.",
	})
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:       job.ClientEmail,
		Subject:  "Your SparkleSpace organizing estimate",
		HTMLBody: body,
	}, nil
}

// ScheduleMessage builds the proposed-schedule email.
func ScheduleMessage(job domain.Job) (Message, error) {
	dayLines := make([]string, 0, len(job.ScheduleDays))
	for i, day := range job.ScheduleDays {
		dayLines = append(dayLines, fmt.Sprintf("Day %d of %d: %s at %s (%.1f hours)",
			i+1, len(job.ScheduleDays), formatDate(day.Date), day.StartTime, day.Hours))
	}

	body, err := BuildHTML(Email{
		Greeting: fmt.Sprintf("Hi %s, here is the schedule we put together for your sessions.", firstName(job.ClientName)),
		Sections: []Section{
			{Title: "Proposed schedule", Lines: dayLines},
		},
		CTA: "Reply to confirm these dates work for you, or let us know what to adjust.",
	})
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:       job.ClientEmail,
		Subject:  "Your SparkleSpace session schedule",
		HTMLBody: body,
	}, nil
}

// ConfirmationMessage builds the booked-and-confirmed email.
func ConfirmationMessage(job domain.Job) (Message, error) {
	dayLines := make([]string, 0, len(job.ScheduleDays))
	for _, day := range job.ScheduleDays {
		dayLines = append(dayLines, fmt.Sprintf("%s at %s", formatDate(day.Date), day.StartTime))
	}
	if len(dayLines) == 0 && job.ScheduledDate != "" {
		dayLines = append(dayLines, fmt.Sprintf("%s at %s", formatDate(job.ScheduledDate), job.ScheduledTime))
	}

	body, err := BuildHTML(Email{
		Greeting: fmt.Sprintf("Hi %s, you are all booked! We can't wait to transform your space.", firstName(job.ClientName)),
		Sections: []Section{
			{Title: "Confirmed sessions", Lines: dayLines},
			{Title: "Before we arrive", Lines: []string{
				"No prep needed on your end, that's our job.",
				"A calendar invite is attached so the sessions land on your calendar.",
			}},
		},
	})
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:       job.ClientEmail,
		Subject:  "You're booked with SparkleSpace!",
		HTMLBody: body,
	}, nil
}

func firstName(full string) string {
	full = strings.TrimSpace(full)
	if full == "" {
		return "there"
	}
	if i := strings.IndexByte(full, ' '); i > 0 {
		return full[:i]
	}
	return full
}

func formatDate(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("Monday, January 2, 2006")
}
