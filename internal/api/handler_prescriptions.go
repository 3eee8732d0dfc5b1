package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carehome-backend/internal/facility"
)

type prescriptionItemRequest struct {
	Medicine string `json:"medicine" binding:"required"`
	Dose     string `json:"dose" binding:"required"`
	At       string `json:"at" binding:"required"`
}

func (r prescriptionItemRequest) toItem() (facility.PrescriptionItem, error) {
	at, err := facility.ParseTimeOfDay(r.At)
	if err != nil {
		return facility.PrescriptionItem{}, err
	}
	return facility.PrescriptionItem{Medicine: r.Medicine, Dose: r.Dose, At: at}, nil
}

type attachPrescriptionRequest struct {
	StaffID string                    `json:"staff_id" binding:"required"`
	Items   []prescriptionItemRequest `json:"items"`
}

// PostAttachPrescription handles POST /api/beds/{bed_id}/prescription.
// Re-attaching replaces the occupant's existing prescription.
func (h *Handler) PostAttachPrescription(c *gin.Context) {
	var req attachPrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items := make([]facility.PrescriptionItem, 0, len(req.Items))
	for _, ir := range req.Items {
		item, err := ir.toItem()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		items = append(items, item)
	}

	if err := h.core.AttachPrescription(req.StaffID, c.Param("bed_id"), items); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

// GetPrescription handles GET /api/residents/{resident_id}/prescription.
func (h *Handler) GetPrescription(c *gin.Context) {
	p, err := h.core.PrescriptionFor(c.Param("resident_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

type updatePrescriptionRequest struct {
	StaffID string                  `json:"staff_id" binding:"required"`
	Item    prescriptionItemRequest `json:"item" binding:"required"`
}

// PostPrescriptionItem handles
// POST /api/residents/{resident_id}/prescription/items: it adds a
// medicine to the prescription, or replaces the annotation of one
// already listed.
func (h *Handler) PostPrescriptionItem(c *gin.Context) {
	var req updatePrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := req.Item.toItem()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.core.UpdatePrescription(req.StaffID, c.Param("resident_id"), item); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type administerRequest struct {
	StaffID  string `json:"staff_id" binding:"required"`
	Medicine string `json:"medicine" binding:"required"`
	Dose     string `json:"dose" binding:"required"`
}

// PostAdministration handles
// POST /api/residents/{resident_id}/prescription/administrations. The
// administration is recorded in the audit log only.
func (h *Handler) PostAdministration(c *gin.Context) {
	var req administerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.core.AdministerPrescription(req.StaffID, c.Param("resident_id"), req.Medicine, req.Dose); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
