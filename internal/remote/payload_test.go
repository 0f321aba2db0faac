package remote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babithbhoop/sparklespace/internal/domain"
)

func TestJobPayloadRoundTrip(t *testing.T) {
	job := domain.NewJob()
	job.ClientName = "Sarah Johnson"
	job.RemoteID = "row-9"
	job.Spaces[0].SetManualHours(4.5)

	data, err := encodeJobPayload(job)
	require.NoError(t, err)

	got, err := decodeJobPayload(data)
	require.NoError(t, err)

	assert.Equal(t, job.ID, got.ID)
	assert.Equal(t, "Sarah Johnson", got.ClientName)
	assert.Equal(t, domain.SpaceHours{Value: 4.5, Manual: true}, got.Spaces[0].Hours)
	assert.Empty(t, got.RemoteID, "remote id is row bookkeeping, never part of the payload")
}

func TestDecodeLegacyJobPayload(t *testing.T) {
	// A version-0 row: bare job object, numeric estimatedHours, manual
	// override as a side-channel boolean.
	legacy := `{
		"id": "abc123xyz",
		"clientName": "Maple Ridge",
		"status": "scheduled",
		"spaces": [
			{"id": "s1", "spaceType": "Garage Organization", "size": "large", "clutterLevel": "heavy", "estimatedHours": 11.7},
			{"id": "s2", "spaceType": "Custom", "size": "medium", "clutterLevel": "moderate", "estimatedHours": 8, "_manualOverride": true}
		],
		"scheduleDays": []
	}`

	job, err := decodeJobPayload(legacy)
	require.NoError(t, err)

	assert.Equal(t, "abc123xyz", job.ID)
	assert.Equal(t, domain.StatusScheduled, job.Status)
	require.Len(t, job.Spaces, 2)
	assert.Equal(t, domain.SpaceHours{Value: 11.7, Manual: false}, job.Spaces[0].Hours)
	assert.Equal(t, domain.SpaceHours{Value: 8, Manual: true}, job.Spaces[1].Hours)
}

func TestDecodeJobPayloadMalformed(t *testing.T) {
	_, err := decodeJobPayload("{not json")
	assert.Error(t, err)
}

func TestSanitizeForUpload(t *testing.T) {
	job := domain.NewJob()
	job.RemoteID = "row-7"
	job.Spaces[0].BeforePhotos = []domain.Photo{
		{ID: "p1", URL: "data:image/jpeg;base64,AAAA"},
		{ID: "p2", URL: "data:image/jpeg;base64,BBBB", DriveURL: "https://drive.example/p2"},
	}
	job.Spaces[0].AfterPhotos = []domain.Photo{
		{ID: "p3", URL: "data:image/jpeg;base64,CCCC"},
	}

	clean := sanitizeForUpload(job)

	// The row key carries the remote id; the payload never does.
	assert.Empty(t, clean.RemoteID)
	data, err := encodeJobPayload(clean)
	require.NoError(t, err)
	assert.NotContains(t, data, "remoteId")

	assert.Equal(t, LocalPhotoSentinel, clean.Spaces[0].BeforePhotos[0].URL)
	assert.Equal(t, "https://drive.example/p2", clean.Spaces[0].BeforePhotos[1].URL)
	assert.Equal(t, LocalPhotoSentinel, clean.Spaces[0].AfterPhotos[0].URL)

	// Input untouched.
	assert.Equal(t, "data:image/jpeg;base64,AAAA", job.Spaces[0].BeforePhotos[0].URL)
}
