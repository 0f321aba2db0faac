package handler

import (
	"context"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/babithbhoop/sparklespace/internal/api/dto"
	"github.com/babithbhoop/sparklespace/internal/domain"
	"github.com/babithbhoop/sparklespace/internal/localstore"
	"github.com/babithbhoop/sparklespace/internal/remote"
	"github.com/babithbhoop/sparklespace/internal/sync"
)

// PhotoHandler attaches photo metadata to job spaces.
type PhotoHandler struct {
	logger    *slog.Logger
	coord     *sync.Coordinator
	store     *localstore.Store
	newRemote func(cfg remote.Config) *remote.Client
}

// NewPhotoHandler creates a new PhotoHandler instance.
func NewPhotoHandler(deps *Dependencies) *PhotoHandler {
	return &PhotoHandler{
		logger:    deps.Logger,
		coord:     deps.Coordinator,
		store:     deps.Store,
		newRemote: deps.NewRemote,
	}
}

// AddPhoto handles POST /api/v1/jobs/:job_id/spaces/:space_id/photos
// Stores the photo metadata on the space and, when the photo already has
// a drive URL, writes a best-effort audit row to the remote store.
func (h *PhotoHandler) AddPhoto(c *gin.Context) {
	var req dto.PhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	jobID := c.Param("job_id")
	spaceID := c.Param("space_id")

	photo := domain.Photo{
		ID:                  uuid.New().String(),
		URL:                 req.URL,
		Timestamp:           time.Now().UTC(),
		OriginalName:        req.OriginalName,
		DescriptiveFilename: req.DescriptiveFilename,
		DriveURL:            req.DriveURL,
	}

	err := h.coord.UpdateJob(jobID, func(j *domain.Job) error {
		sp := j.Space(spaceID)
		if sp == nil {
			return domain.ErrSpaceNotFound
		}
		if photo.DescriptiveFilename == "" {
			photo.DescriptiveFilename = descriptiveFilename(j.ClientName, sp.SpaceType, req.Type, req.OriginalName, photo.Timestamp)
		}
		if req.Type == "after" {
			sp.AfterPhotos = append(sp.AfterPhotos, photo)
		} else {
			sp.BeforePhotos = append(sp.BeforePhotos, photo)
		}
		return nil
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if photo.DriveURL != "" {
		go h.auditPhoto(jobID, spaceID, req.Type, photo)
	}

	c.JSON(http.StatusCreated, photo)
}

// DeletePhoto handles DELETE /api/v1/jobs/:job_id/spaces/:space_id/photos/:photo_id
func (h *PhotoHandler) DeletePhoto(c *gin.Context) {
	jobID := c.Param("job_id")
	spaceID := c.Param("space_id")
	photoID := c.Param("photo_id")

	err := h.coord.UpdateJob(jobID, func(j *domain.Job) error {
		sp := j.Space(spaceID)
		if sp == nil {
			return domain.ErrSpaceNotFound
		}
		sp.BeforePhotos = removePhoto(sp.BeforePhotos, photoID)
		sp.AfterPhotos = removePhoto(sp.AfterPhotos, photoID)
		return nil
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// auditPhoto writes the photo_refs row. Fire and forget: a failed audit
// never blocks the photo save.
func (h *PhotoHandler) auditPhoto(jobID, spaceID, photoType string, photo domain.Photo) {
	creds := h.store.LoadCredentials()
	client := h.newRemote(remote.Config{URL: creds.URL, AnonKey: creds.AnonKey})
	if !client.Configured() {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ref := remote.PhotoRef{
		JobID:     jobID,
		SpaceID:   spaceID,
		PhotoType: photoType,
		Filename:  photo.DescriptiveFilename,
		DriveURL:  photo.DriveURL,
	}
	if err := client.SavePhotoRef(ctx, ref); err != nil {
		h.logger.Warn("Photo audit write failed",
			slog.String("job_id", jobID),
			slog.String("error", err.Error()),
		)
	}
}

// descriptiveFilename builds SparkleSpace_{client}_{space}_{type}_{ts}{ext}
// with non-alphanumeric runs collapsed to single underscores.
func descriptiveFilename(client, space, photoType, originalName string, ts time.Time) string {
	if client == "" {
		client = "Client"
	}
	if space == "" {
		space = "Space"
	}
	if photoType != "after" {
		photoType = "before"
	}
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = ".jpg"
	}
	parts := []string{"SparkleSpace", slugify(client), slugify(space), photoType, ts.Format("20060102-150405")}
	return strings.Join(parts, "_") + ext
}

func slugify(s string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastUnderscore = false
		case !lastUnderscore && b.Len() > 0:
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

func removePhoto(photos []domain.Photo, id string) []domain.Photo {
	out := photos[:0]
	for _, p := range photos {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}
