package api

import (
	"errors"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"

	"carehome-backend/internal/facility"
	"carehome-backend/internal/notification"
	"carehome-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	core    *facility.CareHome
	store   store.Store
	webpush *webpush.Options
	pool    *notification.WorkerPool
}

// NewHandler creates a new API handler. The worker pool may be nil
// when push is not configured.
func NewHandler(core *facility.CareHome, s store.Store, webpushOptions *webpush.Options, pool *notification.WorkerPool) *Handler {
	return &Handler{
		core:    core,
		store:   s,
		webpush: webpushOptions,
		pool:    pool,
	}
}

// respondError maps core failures onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var cerr *facility.ComplianceError
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, facility.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, facility.ErrAlreadyOccupied), errors.Is(err, facility.ErrNotOccupied):
		status = http.StatusConflict
	case errors.Is(err, facility.ErrUnauthorized), errors.Is(err, facility.ErrNotOnDuty):
		status = http.StatusForbidden
	case errors.As(err, &cerr):
		status = http.StatusConflict
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
