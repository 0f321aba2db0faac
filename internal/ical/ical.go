// Package ical renders confirmed schedules as iCalendar files that import
// cleanly into Google Calendar, Apple Calendar, and Outlook.
package ical

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/babithbhoop/sparklespace/internal/domain"
)

const (
	prodID = "-//SparkleSpace//Job Scheduler//EN"
	crlf   = "\r\n"
)

// Generate renders one VEVENT per dated schedule day. Jobs carrying only
// the legacy single date get one event. UIDs are derived from the job id
// and day index so re-importing an updated file replaces events instead
// of duplicating them.
func Generate(job domain.Job) string {
	days := job.ScheduleDays
	if len(days) == 0 && job.ScheduledDate != "" {
		legacy := domain.ScheduleDay{
			Date:      job.ScheduledDate,
			StartTime: job.ScheduledTime,
			Hours:     job.TotalHours(),
		}
		days = []domain.ScheduleDay{legacy}
	}

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + prodID,
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
	}

	dated := 0
	for _, day := range days {
		if day.Date != "" {
			dated++
		}
	}

	seq := 0
	for _, day := range days {
		if day.Date == "" {
			continue
		}
		seq++
		lines = append(lines, eventLines(job, day, seq, dated)...)
	}

	lines = append(lines, "END:VCALENDAR")
	return strings.Join(lines, crlf) + crlf
}

func eventLines(job domain.Job, day domain.ScheduleDay, index, total int) []string {
	start := day.StartTime
	if start == "" {
		start = "09:00"
	}
	startHour := parseHour(start)
	endHour := startHour + int(math.Ceil(day.Hours))
	if endHour > 23 {
		endHour = 23
	}

	date := strings.ReplaceAll(day.Date, "-", "")
	summary := fmt.Sprintf("SparkleSpace: %s", job.ClientName)
	if total > 1 {
		summary = fmt.Sprintf("%s (Day %d/%d)", summary, index, total)
	}

	spaces := make([]string, 0, len(job.Spaces))
	for _, sp := range job.Spaces {
		spaces = append(spaces, sp.SpaceType)
	}
	description := fmt.Sprintf("Organizing session for %s. Spaces: %s. Planned: %.1f hours.",
		job.ClientName, strings.Join(spaces, ", "), day.Hours)

	// UID day indexes are zero-based; the human-facing summary counts
	// from one.
	ev := []string{
		"BEGIN:VEVENT",
		fmt.Sprintf("UID:%s-day%d@sparklespace", job.ID, index-1),
		"DTSTAMP:" + time.Now().UTC().Format("20060102T150405Z"),
		fmt.Sprintf("DTSTART:%sT%02d%s00", date, startHour, parseMinute(start)),
		fmt.Sprintf("DTEND:%sT%02d%s00", date, endHour, parseMinute(start)),
		"SUMMARY:" + escape(summary),
		"DESCRIPTION:" + escape(description),
	}
	if job.ClientAddress != "" {
		ev = append(ev, "LOCATION:"+escape(job.ClientAddress))
	}
	ev = append(ev, "STATUS:CONFIRMED", "END:VEVENT")
	return ev
}

func parseHour(hhmm string) int {
	var h, m int
	if _, err := fmt.Sscanf(hhmm, "%d:%d", &h, &m); err != nil || h < 0 || h > 23 {
		return 9
	}
	return h
}

func parseMinute(hhmm string) string {
	var h, m int
	if _, err := fmt.Sscanf(hhmm, "%d:%d", &h, &m); err != nil || m < 0 || m > 59 {
		return "00"
	}
	return fmt.Sprintf("%02d", m)
}

// escape applies RFC 5545 text escaping.
func escape(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		";", `\;`,
		",", `\,`,
		"\n", `\n`,
	)
	return r.Replace(s)
}
