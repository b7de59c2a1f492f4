package availability

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CamiloTriana75/ProyectoElden/internal/api"
	"github.com/CamiloTriana75/ProyectoElden/internal/facility"
)

// Diagnoser reports slot counts for administrators.
type Diagnoser interface {
	Diagnose(ctx context.Context, facilityID, date string) (*Diagnostics, error)
}

type Handler struct {
	source    Source
	diagnoser Diagnoser
}

func NewHandler(source Source, diagnoser Diagnoser) *Handler {
	return &Handler{
		source:    source,
		diagnoser: diagnoser,
	}
}

// @Summary      Facility availability for a date
// @Description  Active slot definitions that apply to the date. Slots overlapped by a confirmed reservation are returned with isAvailable=false.
// @Tags         facilities
// @Produce      json
// @Security     BearerAuth
// @Param        facilityID path string true "Facility ID"
// @Param        date query string true "Date (YYYY-MM-DD)"
// @Success      200 {array} availability.SlotAvailability
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      503 {object} api.ErrorResponse
// @Router       /facilities/{facilityID}/availability [get]
func (h *Handler) GetAvailability(c *gin.Context) {
	items, err := h.source.Resolve(c.Request.Context(), c.Param("facilityID"), c.Query("date"))
	if err != nil {
		respond(c, err, "Failed to resolve availability")
		return
	}

	c.JSON(http.StatusOK, items)
}

// @Summary      Availability diagnostics
// @Description  Staff-only: configured, available and reserved slot counts for a facility and date
// @Tags         staff
// @Produce      json
// @Security     BearerAuth
// @Param        facilityID path string true "Facility ID"
// @Param        date query string true "Date (YYYY-MM-DD)"
// @Success      200 {object} availability.Diagnostics
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /staff/facilities/{facilityID}/diagnostics [get]
func (h *Handler) GetDiagnostics(c *gin.Context) {
	d, err := h.diagnoser.Diagnose(c.Request.Context(), c.Param("facilityID"), c.Query("date"))
	if err != nil {
		respond(c, err, "Failed to diagnose availability")
		return
	}

	c.JSON(http.StatusOK, d)
}

func respond(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidDate):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, facility.ErrFacilityNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
	default:
		api.RespondError(c, err, fallback)
	}
}
