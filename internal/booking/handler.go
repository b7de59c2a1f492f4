package booking

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CamiloTriana75/ProyectoElden/internal/api"
	"github.com/CamiloTriana75/ProyectoElden/internal/auth"
	"github.com/CamiloTriana75/ProyectoElden/internal/facility"
	"github.com/CamiloTriana75/ProyectoElden/internal/reservation"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// CreateReservation godoc
// @Summary      Request a reservation
// @Description  Validates the window against live availability and business hours, then stores a pending reservation.
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body booking.CreateReservationRequest true "Booking attempt"
// @Success      201 {object} reservation.Reservation
// @Failure      400 {object} booking.ValidationErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      422 {object} api.ErrorResponse
// @Failure      503 {object} api.ErrorResponse
// @Router       /reservations [post]
func (h *Handler) CreateReservation(c *gin.Context) {
	actor, ok := auth.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var body CreateReservationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	res, err := h.service.CreateReservation(c.Request.Context(), Request{
		RequesterID: actor.ID,
		FacilityID:  body.FacilityID,
		Date:        body.Date,
		SlotID:      body.SlotID,
		StartTime:   body.StartTime,
		EndTime:     body.EndTime,
	})
	if err != nil {
		respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func respond(c *gin.Context, err error) {
	var missing *MissingDataError
	switch {
	case errors.As(err, &missing):
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{Error: ErrMissingData.Error(), Details: missing.Fields})
	case errors.Is(err, ErrOutsideBusinessHours):
		c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, facility.ErrFacilityNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
	default:
		reservation.Respond(c, err, "Failed to create reservation")
	}
}
