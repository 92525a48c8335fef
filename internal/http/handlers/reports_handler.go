package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/reports/revenue
func (h *Handlers) GetRevenueReport(c *gin.Context) {
	c.JSON(http.StatusOK, h.Reports.Revenue())
}

// GET /api/reports/occupancy
func (h *Handlers) GetOccupancyReport(c *gin.Context) {
	c.JSON(http.StatusOK, h.Reports.Occupancy())
}
