package slot

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CamiloTriana75/ProyectoElden/internal/api"
	"github.com/CamiloTriana75/ProyectoElden/internal/facility"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// @Summary      Create a slot definition
// @Description  Admin-only: add a bookable window to a facility, either recurring (allDays) or for one date
// @Tags         admin,slots
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        facilityID path string true "Facility ID"
// @Param        request body slot.CreateSlotRequest true "Slot payload"
// @Success      201 {object} slot.SlotDefinition
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /admin/facilities/{facilityID}/slots [post]
func (h *Handler) CreateSlot(c *gin.Context) {
	var req CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	s, err := h.service.CreateSlot(c.Request.Context(), c.Param("facilityID"), req)
	if err != nil {
		h.respond(c, err, "Failed to create slot")
		return
	}

	c.JSON(http.StatusCreated, s)
}

// @Summary      List slot definitions of a facility
// @Tags         admin,slots
// @Produce      json
// @Security     BearerAuth
// @Param        facilityID path string true "Facility ID"
// @Param        date query string false "Only definitions that apply to this date (YYYY-MM-DD)"
// @Param        active query bool false "Only active definitions"
// @Success      200 {array} slot.SlotDefinition
// @Failure      400 {object} api.ErrorResponse
// @Router       /admin/facilities/{facilityID}/slots [get]
func (h *Handler) ListSlots(c *gin.Context) {
	f := Filter{
		FacilityID: c.Param("facilityID"),
		Date:       c.Query("date"),
		ActiveOnly: c.Query("active") == "true",
	}
	if f.Date != "" && !ValidDate(f.Date) {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "date must be YYYY-MM-DD"})
		return
	}

	slots, err := h.service.ListSlots(c.Request.Context(), f)
	if err != nil {
		h.respond(c, err, "Failed to fetch slots")
		return
	}

	c.JSON(http.StatusOK, slots)
}

// @Summary      Update a slot definition
// @Tags         admin,slots
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        slotID path string true "Slot ID"
// @Param        request body slot.Patch true "Fields to change"
// @Success      200 {object} slot.SlotDefinition
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /admin/slots/{slotID} [patch]
func (h *Handler) UpdateSlot(c *gin.Context) {
	var p Patch
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	s, err := h.service.UpdateSlot(c.Request.Context(), c.Param("slotID"), p)
	if err != nil {
		h.respond(c, err, "Failed to update slot")
		return
	}

	c.JSON(http.StatusOK, s)
}

// @Summary      Delete a slot definition
// @Tags         admin,slots
// @Security     BearerAuth
// @Param        slotID path string true "Slot ID"
// @Success      204
// @Failure      404 {object} api.ErrorResponse
// @Router       /admin/slots/{slotID} [delete]
func (h *Handler) DeleteSlot(c *gin.Context) {
	if err := h.service.DeleteSlot(c.Request.Context(), c.Param("slotID")); err != nil {
		h.respond(c, err, "Failed to delete slot")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) respond(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrSlotInvalid):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrSlotNotFound), errors.Is(err, facility.ErrFacilityNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrSlotDuplicate), errors.Is(err, ErrSlotModified):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
	default:
		api.RespondError(c, err, fallback)
	}
}
