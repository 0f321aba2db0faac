package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/babithbhoop/sparklespace/internal/domain"
	"github.com/babithbhoop/sparklespace/internal/localstore"
	"github.com/babithbhoop/sparklespace/internal/notify"
	"github.com/babithbhoop/sparklespace/internal/remote"
	"github.com/babithbhoop/sparklespace/internal/sync"
	"github.com/babithbhoop/sparklespace/internal/workflow"
)

// Dependencies holds all dependencies needed by handlers.
type Dependencies struct {
	Logger      *slog.Logger
	Coordinator *sync.Coordinator
	Actions     *workflow.Actions
	Store       *localstore.Store
	// NewRemote builds a remote client from credentials, letting the
	// sync handler swap the connection at runtime.
	NewRemote func(cfg remote.Config) *remote.Client
}

// respondError maps domain errors to HTTP status codes.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	var verr *domain.ValidationError
	var terr *domain.TransitionError
	var rerr *remote.RequestError
	var serr *notify.SendError

	switch {
	case errors.Is(err, domain.ErrJobNotFound), errors.Is(err, domain.ErrSpaceNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &verr), errors.Is(err, domain.ErrLastSpace):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.As(err, &terr):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, remote.ErrNotConfigured), errors.Is(err, notify.ErrNotConfigured):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &rerr), errors.As(err, &serr):
		logger.Error("Upstream request failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		logger.Error("Request failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
