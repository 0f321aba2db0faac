package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/babithbhoop/sparklespace/internal/api/dto"
	"github.com/babithbhoop/sparklespace/internal/localstore"
	"github.com/babithbhoop/sparklespace/internal/remote"
	"github.com/babithbhoop/sparklespace/internal/sync"
)

// SyncHandler handles connectivity and credential requests.
type SyncHandler struct {
	logger    *slog.Logger
	coord     *sync.Coordinator
	store     *localstore.Store
	newRemote func(cfg remote.Config) *remote.Client
}

// NewSyncHandler creates a new SyncHandler instance.
func NewSyncHandler(deps *Dependencies) *SyncHandler {
	return &SyncHandler{
		logger:    deps.Logger,
		coord:     deps.Coordinator,
		store:     deps.Store,
		newRemote: deps.NewRemote,
	}
}

// Status handles GET /api/v1/sync/status
func (h *SyncHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.coord.Status())
}

// Force handles POST /api/v1/sync/force
// Unlike the startup pull, a failure here goes back to the caller.
func (h *SyncHandler) Force(c *gin.Context) {
	if err := h.coord.Refresh(c.Request.Context()); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, h.coord.Status())
}

// TestConnection handles POST /api/v1/sync/test-connection
// Credentials in the body are probed without being saved; an empty body
// probes the stored credentials.
func (h *SyncHandler) TestConnection(c *gin.Context) {
	var req dto.CredentialsRequest
	cfg := remote.Config{}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		cfg = remote.Config{URL: req.URL, AnonKey: req.AnonKey}
	} else {
		creds := h.store.LoadCredentials()
		cfg = remote.Config{URL: creds.URL, AnonKey: creds.AnonKey}
	}

	client := h.newRemote(cfg)
	c.JSON(http.StatusOK, client.TestConnection(c.Request.Context()))
}

// UpdateCredentials handles PUT /api/v1/sync/credentials
// Saves the credentials, swaps the live client, and pulls immediately so
// the caller learns right away whether they work.
func (h *SyncHandler) UpdateCredentials(c *gin.Context) {
	var req dto.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.store.SaveCredentials(localstore.Credentials{URL: req.URL, AnonKey: req.AnonKey}); err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.coord.SetRemote(h.newRemote(remote.Config{URL: req.URL, AnonKey: req.AnonKey}))

	if err := h.coord.Refresh(c.Request.Context()); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("Remote credentials updated", slog.String("url", req.URL))
	c.JSON(http.StatusOK, h.coord.Status())
}

// GetDriveFolder handles GET /api/v1/sync/drive-folder
func (h *SyncHandler) GetDriveFolder(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.LoadDriveFolder())
}

// SetDriveFolder handles PUT /api/v1/sync/drive-folder
func (h *SyncHandler) SetDriveFolder(c *gin.Context) {
	var req dto.DriveFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	folder := localstore.DriveFolder{FolderID: req.FolderID, FolderURL: req.FolderURL}
	if err := h.store.SaveDriveFolder(folder); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, folder)
}

// ClearCredentials handles DELETE /api/v1/sync/credentials
func (h *SyncHandler) ClearCredentials(c *gin.Context) {
	if err := h.store.ClearCredentials(); err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.coord.SetRemote(h.newRemote(remote.Config{}))
	h.logger.Info("Remote credentials cleared")
	c.Status(http.StatusNoContent)
}
