package handlers

import (
	"net/http"

	portssvc "github.com/openlandreg/land_registry_app/internal/core/ports/services"
	"github.com/openlandreg/land_registry_app/internal/dto"

	"github.com/gin-gonic/gin"
)

// slotHandler exposes verification-appointment availability.
type slotHandler struct {
	slotService portssvc.SlotSvcFacade
}

func newSlotHandler(ss portssvc.SlotSvcFacade) *slotHandler {
	return &slotHandler{slotService: ss}
}

// registerSlotRoutes registers slot availability routes.
func registerSlotRoutes(rg *gin.RouterGroup, slotService portssvc.SlotSvcFacade) {
	h := newSlotHandler(slotService)
	rg.GET("/slots", h.listSlots)
}

// listSlots godoc
// @Summary List open appointment slots
// @Description Returns the next open verification-appointment days for a reviewer. Availability is advisory; occupancy is re-checked when the appointment is booked.
// @Tags slots
// @Produce  json
// @Param   reviewerID query string true "Reviewer (officer) ID"
// @Success 200 {object} dto.ListSlotsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /slots [get]
func (h *slotHandler) listSlots(c *gin.Context) {
	reviewerID := c.Query("reviewerID")
	if reviewerID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "reviewerID query parameter is required"})
		return
	}

	slots, err := h.slotService.ListAvailableSlots(c.Request.Context(), reviewerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListSlotsResponse(reviewerID, slots))
}
