package remote

import (
	"encoding/json"
	"fmt"

	"github.com/babithbhoop/sparklespace/internal/domain"
)

// jobSchemaVersion is the current version of the job wire payload. Rows
// written before versioning carry a bare job object and decode through the
// legacy path.
const jobSchemaVersion = 1

// LocalPhotoSentinel marks a photo whose image data exists only on the
// device that captured it.
const LocalPhotoSentinel = "[local]"

// jobPayload is the versioned envelope stored in the jobs.data column.
type jobPayload struct {
	SchemaVersion int        `json:"schema_version"`
	Job           domain.Job `json:"job"`
}

// encodeJobPayload serializes a job for the data column.
func encodeJobPayload(job domain.Job) (string, error) {
	data, err := json.Marshal(jobPayload{SchemaVersion: jobSchemaVersion, Job: job})
	if err != nil {
		return "", fmt.Errorf("encode job payload: %w", err)
	}
	return string(data), nil
}

// decodeJobPayload reads a data column value, migrating legacy rows that
// predate the schema envelope.
func decodeJobPayload(data string) (domain.Job, error) {
	var envelope jobPayload
	if err := json.Unmarshal([]byte(data), &envelope); err == nil && envelope.SchemaVersion >= 1 {
		return envelope.Job, nil
	}
	return migrateLegacyJob(data)
}

// legacySpaceFlags carries the pre-versioning manual-override side channel.
type legacySpaceFlags struct {
	Spaces []struct {
		ID             string `json:"id"`
		ManualOverride bool   `json:"_manualOverride"`
	} `json:"spaces"`
}

// migrateLegacyJob decodes a version-0 row: a bare job object whose spaces
// store estimatedHours as a number alongside an _manualOverride flag.
func migrateLegacyJob(data string) (domain.Job, error) {
	var job domain.Job
	if err := json.Unmarshal([]byte(data), &job); err != nil {
		return domain.Job{}, fmt.Errorf("decode legacy job payload: %w", err)
	}

	var flags legacySpaceFlags
	if err := json.Unmarshal([]byte(data), &flags); err == nil {
		for _, f := range flags.Spaces {
			if !f.ManualOverride {
				continue
			}
			if sp := job.Space(f.ID); sp != nil {
				sp.Hours.Manual = true
			}
		}
	}

	return job, nil
}

// sanitizeForUpload prepares a job for transmission: the remote row id is
// dropped (the row key carries it), and raw photo payloads are stripped
// down to references, the uploaded drive URL when one exists, otherwise
// the local-only sentinel. Embedding image data would blow past
// reasonable row sizes.
func sanitizeForUpload(job domain.Job) domain.Job {
	out := job
	out.RemoteID = ""
	out.Spaces = make([]domain.Space, len(job.Spaces))
	for i, s := range job.Spaces {
		cs := s
		cs.BeforePhotos = sanitizePhotos(s.BeforePhotos)
		cs.AfterPhotos = sanitizePhotos(s.AfterPhotos)
		out.Spaces[i] = cs
	}
	return out
}

func sanitizePhotos(photos []domain.Photo) []domain.Photo {
	out := make([]domain.Photo, len(photos))
	for i, p := range photos {
		cp := p
		if cp.DriveURL != "" {
			cp.URL = cp.DriveURL
		} else {
			cp.URL = LocalPhotoSentinel
		}
		out[i] = cp
	}
	return out
}
