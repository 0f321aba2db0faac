// Package localstore persists the application document and the auxiliary
// credential blobs on the local disk. It is the always-available cache the
// UI reads from: loads never fail (corrupt or missing state degrades to a
// fresh document) and saves are best-effort.
package localstore

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/babithbhoop/sparklespace/internal/domain"
)

const (
	documentFile    = "document.json"
	credentialsFile = "remote_credentials.json"
	driveFolderFile = "drive_folder.json"
)

// Credentials is the locally persisted remote-store configuration.
type Credentials struct {
	URL     string `json:"url"`
	AnonKey string `json:"anonKey"`
}

// Configured reports whether both halves of the credential pair are set.
func (c Credentials) Configured() bool {
	return c.URL != "" && c.AnonKey != ""
}

// DriveFolder is the reference to the external photo-storage folder.
type DriveFolder struct {
	FolderID  string `json:"folderId"`
	FolderURL string `json:"folderUrl"`
}

// Store reads and writes the persisted state blobs under one directory.
// All operations are synchronous; callers never see storage faults on the
// document path.
type Store struct {
	dir    string
	logger *slog.Logger
}

// New creates a store rooted at dir, creating the directory if needed.
func New(dir string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir, logger: logger}, nil
}

// LoadDocument reads the persisted document. A missing file, corrupt JSON,
// or any other read fault yields a fresh empty document; the caller can
// always proceed.
func (s *Store) LoadDocument() domain.Document {
	var doc domain.Document
	if err := s.read(documentFile, &doc); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("Stored document unreadable, starting fresh",
				slog.String("error", err.Error()),
			)
		}
		return domain.NewDocument()
	}
	if doc.Jobs == nil {
		doc.Jobs = []domain.Job{}
	}
	if doc.Settings.HourlyRate == 0 {
		doc.Settings.HourlyRate = domain.DefaultHourlyRate
	}
	return doc
}

// SaveDocument writes the document. Faults are logged and swallowed: the
// local file is a cache, not a source of truth the caller must defend.
func (s *Store) SaveDocument(doc domain.Document) {
	if err := s.write(documentFile, doc); err != nil {
		s.logger.Warn("Failed to persist document",
			slog.String("error", err.Error()),
		)
	}
}

// LoadCredentials reads the remote credentials, or returns zero values if
// none were stored.
func (s *Store) LoadCredentials() Credentials {
	var c Credentials
	if err := s.read(credentialsFile, &c); err != nil {
		return Credentials{}
	}
	return c
}

// SaveCredentials persists the remote credentials.
func (s *Store) SaveCredentials(c Credentials) error {
	return s.write(credentialsFile, c)
}

// ClearCredentials removes the stored remote credentials.
func (s *Store) ClearCredentials() error {
	err := os.Remove(filepath.Join(s.dir, credentialsFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// LoadDriveFolder reads the external photo-folder reference.
func (s *Store) LoadDriveFolder() DriveFolder {
	var f DriveFolder
	if err := s.read(driveFolderFile, &f); err != nil {
		return DriveFolder{}
	}
	return f
}

// SaveDriveFolder persists the external photo-folder reference.
func (s *Store) SaveDriveFolder(f DriveFolder) error {
	return s.write(driveFolderFile, f)
}

func (s *Store) read(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// write serializes v and replaces the blob atomically so a crash mid-write
// never leaves a truncated file behind.
func (s *Store) write(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
