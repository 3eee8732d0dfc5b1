package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetLogs handles GET /api/logs: the audit log in append order.
func (h *Handler) GetLogs(c *gin.Context) {
	c.JSON(http.StatusOK, h.core.Logs())
}
