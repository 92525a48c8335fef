package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// GET /api/buses
func (h *Handlers) ListBuses(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"buses": h.Ledger.ListBuses()})
}

// GET /api/buses/search?source=&destination=
func (h *Handlers) SearchBuses(c *gin.Context) {
	source := strings.TrimSpace(c.Query("source"))
	destination := strings.TrimSpace(c.Query("destination"))
	if source == "" || destination == "" {
		respondError(c, http.StatusBadRequest, "validation_error", "source and destination are required", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"buses": h.Ledger.SearchBuses(source, destination)})
}

// GET /api/buses/:id
func (h *Handlers) GetBus(c *gin.Context) {
	bus, err := h.Ledger.GetBus(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, bus)
}
