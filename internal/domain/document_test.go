package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsMerge(t *testing.T) {
	tests := []struct {
		name   string
		local  Settings
		remote Settings
		want   Settings
	}{
		{
			name:   "remote keys override, local-only keys survive",
			local:  Settings{HourlyRate: 22, StripeKey: "pk_x"},
			remote: Settings{HourlyRate: 25},
			want:   Settings{HourlyRate: 25, StripeKey: "pk_x"},
		},
		{
			name:   "empty remote changes nothing",
			local:  Settings{HourlyRate: 30, EmailServiceID: "svc_1"},
			remote: Settings{},
			want:   Settings{HourlyRate: 30, EmailServiceID: "svc_1"},
		},
		{
			name:   "remote email credentials replace local",
			local:  Settings{HourlyRate: 22, EmailServiceID: "old"},
			remote: Settings{EmailServiceID: "new", EmailTemplateID: "tpl", EmailPublicKey: "key"},
			want:   Settings{HourlyRate: 22, EmailServiceID: "new", EmailTemplateID: "tpl", EmailPublicKey: "key"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.local.Merge(tt.remote))
		})
	}
}

func TestDocumentJobHelpers(t *testing.T) {
	doc := NewDocument()
	j := NewJob()
	j.ClientName = "Sarah Johnson"
	doc.Jobs = append(doc.Jobs, j)

	found := doc.Job(j.ID)
	require.NotNil(t, found)
	assert.Equal(t, "Sarah Johnson", found.ClientName)

	assert.Nil(t, doc.Job("missing"))

	assert.True(t, doc.RemoveJob(j.ID))
	assert.Empty(t, doc.Jobs)
	assert.False(t, doc.RemoveJob(j.ID))
}

func TestDocumentClone(t *testing.T) {
	doc := NewDocument()
	j := NewJob()
	j.ClientName = "Original"
	j.ScheduleDays = []ScheduleDay{{ID: "d1", Date: "2026-03-01", StartTime: "09:00", Hours: 4}}
	doc.Jobs = append(doc.Jobs, j)

	snap := doc.Clone()
	snap.Jobs[0].ClientName = "Changed"
	snap.Jobs[0].Spaces[0].Notes = "changed"
	snap.Jobs[0].ScheduleDays[0].Hours = 99

	assert.Equal(t, "Original", doc.Jobs[0].ClientName)
	assert.Empty(t, doc.Jobs[0].Spaces[0].Notes)
	assert.InDelta(t, 4, doc.Jobs[0].ScheduleDays[0].Hours, 1e-9)
}

func TestJobNormalize(t *testing.T) {
	j := NewJob()
	j.Spaces[0].SpaceType = "Garage Organization"
	j.Spaces[0].Size = "large"
	j.Spaces[0].ClutterLevel = "heavy"
	j.ScheduleDays = []ScheduleDay{
		{ID: "b", Date: "2026-03-05", StartTime: "13:00", Hours: 5},
		{ID: "undated", Hours: 2},
		{ID: "a", Date: "2026-03-02", StartTime: "09:00", Hours: 6.7},
	}

	j.Normalize(22)

	// Undated days dropped, remainder sorted, earliest mirrored to the
	// legacy fields.
	require.Len(t, j.ScheduleDays, 2)
	assert.Equal(t, "a", j.ScheduleDays[0].ID)
	assert.Equal(t, "2026-03-02", j.ScheduledDate)
	assert.Equal(t, "09:00", j.ScheduledTime)

	assert.InDelta(t, 11.7, j.EstimatedHours, 1e-9)
	assert.InDelta(t, 257.4, j.EstimatedCost, 1e-9)
	assert.InDelta(t, 257.4, j.TotalEstimate, 1e-9) // cash, no discount
}

func TestJobRemoveSpace(t *testing.T) {
	j := NewJob()
	assert.ErrorIs(t, j.RemoveSpace(j.Spaces[0].ID), ErrLastSpace)

	second := NewSpace()
	j.Spaces = append(j.Spaces, second)
	require.NoError(t, j.RemoveSpace(second.ID))
	assert.Len(t, j.Spaces, 1)

	j.Spaces = append(j.Spaces, NewSpace())
	assert.ErrorIs(t, j.RemoveSpace("missing"), ErrSpaceNotFound)
}
