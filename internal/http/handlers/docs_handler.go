package handlers

import (
	"net/http"

	"busreservation/internal/http/middleware"
	"busreservation/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/bookings/:id/e-ticket returns the booking's e-ticket (inline).
func (h *Handlers) GetBookingETicket(c *gin.Context) {
	svc := services.DocsService{
		Ledger:    h.Ledger,
		RequestID: middleware.GetRequestID(c),
	}
	pdfBytes, filename, err := svc.GenerateETicket(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
