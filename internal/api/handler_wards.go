package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetWards handles GET /api/wards: the full ward -> room -> bed
// listing with current occupancy.
func (h *Handler) GetWards(c *gin.Context) {
	c.JSON(http.StatusOK, h.core.Wards())
}
