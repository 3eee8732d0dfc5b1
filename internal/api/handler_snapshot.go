package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PostSnapshot handles POST /api/snapshot: persist the current
// facility state.
func (h *Handler) PostSnapshot(c *gin.Context) {
	if err := h.store.SaveSnapshot(c.Request.Context(), h.core.Snapshot()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": true})
}

// PostRestore handles POST /api/snapshot/restore: replace the in-memory
// state with the last persisted snapshot.
func (h *Handler) PostRestore(c *gin.Context) {
	st, found, err := h.store.LoadSnapshot(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "no snapshot available"})
		return
	}
	if err := h.core.Restore(st); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"restored": true})
}
