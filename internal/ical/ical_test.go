package ical

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babithbhoop/sparklespace/internal/domain"
)

func multiDayJob() domain.Job {
	job := domain.NewJob()
	job.ID = "job-abc"
	job.ClientName = "Mei Tanaka"
	job.ClientAddress = "12 Cedar Lane, Olympia, WA"
	job.Spaces[0].SpaceType = "Garage Organization"
	day1 := domain.NewScheduleDay()
	day1.Date = "2026-09-01"
	day1.StartTime = "09:00"
	day1.Hours = 4
	day2 := domain.NewScheduleDay()
	day2.Date = "2026-09-03"
	day2.StartTime = "13:30"
	day2.Hours = 2.5
	job.ScheduleDays = []domain.ScheduleDay{day1, day2}
	return job
}

func TestGenerateMultiDay(t *testing.T) {
	out := Generate(multiDayJob())

	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR\r\n"))
	assert.True(t, strings.HasSuffix(out, "END:VCALENDAR\r\n"))
	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))

	assert.Contains(t, out, "UID:job-abc-day0@sparklespace")
	assert.Contains(t, out, "UID:job-abc-day1@sparklespace")
	assert.Contains(t, out, "DTSTART:20260901T090000")
	assert.Contains(t, out, "DTEND:20260901T130000")
	// 13:30 + ceil(2.5) = 16:30
	assert.Contains(t, out, "DTSTART:20260903T133000")
	assert.Contains(t, out, "DTEND:20260903T163000")
	assert.Contains(t, out, "SUMMARY:SparkleSpace: Mei Tanaka (Day 1/2)")
	assert.Contains(t, out, `LOCATION:12 Cedar Lane\, Olympia\, WA`)
}

func TestGenerateDeterministicUIDs(t *testing.T) {
	job := multiDayJob()
	first := Generate(job)
	second := Generate(job)
	for _, uid := range []string{"UID:job-abc-day0@sparklespace", "UID:job-abc-day1@sparklespace"} {
		assert.Contains(t, first, uid)
		assert.Contains(t, second, uid)
	}
}

func TestGenerateCapsEndAtElevenPM(t *testing.T) {
	job := multiDayJob()
	job.ScheduleDays = job.ScheduleDays[:1]
	job.ScheduleDays[0].StartTime = "20:00"
	job.ScheduleDays[0].Hours = 6

	out := Generate(job)
	assert.Contains(t, out, "DTEND:20260901T230000")
}

func TestGenerateLegacySingleDate(t *testing.T) {
	job := domain.NewJob()
	job.ID = "job-legacy"
	job.ClientName = "Ray"
	job.ScheduleDays = nil
	job.ScheduledDate = "2026-09-05"
	job.ScheduledTime = "10:00"

	out := Generate(job)
	require.Equal(t, 1, strings.Count(out, "BEGIN:VEVENT"))
	assert.Contains(t, out, "UID:job-legacy-day0@sparklespace")
	assert.Contains(t, out, "DTSTART:20260905T100000")
	assert.Contains(t, out, "SUMMARY:SparkleSpace: Ray\r\n")
}

func TestGenerateSkipsUndatedDays(t *testing.T) {
	job := multiDayJob()
	undated := domain.NewScheduleDay()
	job.ScheduleDays = append(job.ScheduleDays, undated)

	out := Generate(job)
	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))
	assert.Contains(t, out, "(Day 1/2)")
}
