package api

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"

	"carehome-backend/internal/facility"
)

type postResidentRequest struct {
	ID               string `json:"id"`
	Name             string `json:"name" binding:"required"`
	Gender           string `json:"gender" binding:"required,oneof=M F"`
	MedicalCondition string `json:"medical_condition"`
}

// PostResident handles POST /api/residents. An id is generated when
// the request does not supply one.
func (h *Handler) PostResident(c *gin.Context) {
	var req postResidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := req.ID
	if id == "" {
		id = newResidentID()
	}
	resident := facility.Resident{
		ID:               id,
		Name:             req.Name,
		Gender:           facility.Gender(req.Gender),
		MedicalCondition: req.MedicalCondition,
	}
	h.core.AddResident(resident)
	c.JSON(http.StatusCreated, resident)
}

// GetResidents handles GET /api/residents.
func (h *Handler) GetResidents(c *gin.Context) {
	c.JSON(http.StatusOK, h.core.Residents())
}

// GetResidentDetails handles GET /api/beds/{bed_id}/resident. The
// acting staff id travels as a query parameter; the access is
// authorized and audited by the core.
func (h *Handler) GetResidentDetails(c *gin.Context) {
	staffID := c.Query("staff_id")
	if staffID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "staff_id is required"})
		return
	}

	resident, err := h.core.ViewResidentDetails(staffID, c.Param("bed_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resident)
}

func newResidentID() string {
	buf := make([]byte, 3)
	rand.Read(buf)
	return "R" + hex.EncodeToString(buf)
}
