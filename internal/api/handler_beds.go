package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type assignRequest struct {
	StaffID    string `json:"staff_id" binding:"required"`
	ResidentID string `json:"resident_id" binding:"required"`
}

// PostAssign handles POST /api/beds/{bed_id}/assign.
func (h *Handler) PostAssign(c *gin.Context) {
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.core.AssignResidentToBed(req.StaffID, req.ResidentID, c.Param("bed_id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type moveRequest struct {
	StaffID   string `json:"staff_id" binding:"required"`
	FromBedID string `json:"from_bed_id" binding:"required"`
	ToBedID   string `json:"to_bed_id" binding:"required"`
}

// PostMove handles POST /api/beds/move. A successful move vacates the
// source bed, so its subscribers are notified.
func (h *Handler) PostMove(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.core.MoveResident(req.StaffID, req.FromBedID, req.ToBedID); err != nil {
		respondError(c, err)
		return
	}
	if h.pool != nil {
		h.pool.Dispatch(req.FromBedID)
	}
	c.Status(http.StatusNoContent)
}
