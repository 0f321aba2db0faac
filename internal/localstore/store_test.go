package localstore

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babithbhoop/sparklespace/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return s
}

func TestDocumentRoundTrip(t *testing.T) {
	s := newTestStore(t)

	doc := domain.NewDocument()
	job := domain.NewJob()
	job.ClientName = "Sarah Johnson"
	job.ClientEmail = "sarah@email.com"
	job.RemoteID = "row-42"
	job.Spaces[0].SetManualHours(4.5)
	job.ScheduleDays = []domain.ScheduleDay{{ID: "d1", Date: "2026-03-02", StartTime: "09:00", Hours: 4.5}}
	doc.Jobs = append(doc.Jobs, job)
	doc.Settings.HourlyRate = 28
	doc.Settings.StripeKey = "pk_test"

	s.SaveDocument(doc)
	got := s.LoadDocument()

	// CreatedAt survives JSON with equal wall-clock value; compare via
	// normalized copies.
	require.Len(t, got.Jobs, 1)
	assert.True(t, got.Jobs[0].CreatedAt.Equal(job.CreatedAt))
	got.Jobs[0].CreatedAt = job.CreatedAt
	assert.Equal(t, "row-42", got.Jobs[0].RemoteID)
	assert.Equal(t, doc.Jobs, got.Jobs)
	assert.Equal(t, doc.Settings, got.Settings)
}

func TestLoadDocumentMissingFile(t *testing.T) {
	s := newTestStore(t)

	doc := s.LoadDocument()

	assert.Empty(t, doc.Jobs)
	assert.NotNil(t, doc.Jobs)
	assert.InDelta(t, domain.DefaultHourlyRate, doc.Settings.HourlyRate, 1e-9)
}

func TestLoadDocumentCorruptJSON(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, documentFile), []byte("{not json"), 0o644))

	doc := s.LoadDocument()
	assert.Empty(t, doc.Jobs)
	assert.InDelta(t, domain.DefaultHourlyRate, doc.Settings.HourlyRate, 1e-9)
}

func TestSaveDocumentSwallowsFaults(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	// Turn the target path into a directory so the rename fails.
	require.NoError(t, os.MkdirAll(filepath.Join(dir, documentFile), 0o755))

	assert.NotPanics(t, func() { s.SaveDocument(domain.NewDocument()) })
}

func TestCredentialsLifecycle(t *testing.T) {
	s := newTestStore(t)

	assert.False(t, s.LoadCredentials().Configured())

	creds := Credentials{URL: "https://demo.example.co", AnonKey: "anon-key"}
	require.NoError(t, s.SaveCredentials(creds))
	got := s.LoadCredentials()
	assert.Equal(t, creds, got)
	assert.True(t, got.Configured())

	require.NoError(t, s.ClearCredentials())
	assert.False(t, s.LoadCredentials().Configured())

	// Clearing twice is fine.
	require.NoError(t, s.ClearCredentials())
}

func TestDriveFolderRoundTrip(t *testing.T) {
	s := newTestStore(t)

	assert.Equal(t, DriveFolder{}, s.LoadDriveFolder())

	f := DriveFolder{FolderID: "abc123", FolderURL: "https://drive.example/folders/abc123"}
	require.NoError(t, s.SaveDriveFolder(f))
	assert.Equal(t, f, s.LoadDriveFolder())
}
