package reservation

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CamiloTriana75/ProyectoElden/internal/api"
	"github.com/CamiloTriana75/ProyectoElden/internal/auth"
)

type Handler struct {
	manager Manager
}

func NewHandler(manager Manager) *Handler {
	return &Handler{
		manager: manager,
	}
}

// @Summary      List my reservations
// @Tags         reservations
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} reservation.Reservation
// @Failure      401 {object} api.ErrorResponse
// @Failure      503 {object} api.ErrorResponse
// @Router       /reservations/me [get]
func (h *Handler) ListMine(c *gin.Context) {
	actor, ok := auth.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	list, err := h.manager.ListForRequester(c.Request.Context(), actor.ID)
	if err != nil {
		Respond(c, err, "Failed to fetch reservations")
		return
	}

	c.JSON(http.StatusOK, list)
}

// @Summary      Get a reservation
// @Description  Visible to its requester and to staff
// @Tags         reservations
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Reservation ID"
// @Success      200 {object} reservation.Reservation
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /reservations/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	actor, ok := auth.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	res, err := h.manager.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		Respond(c, err, "Failed to fetch reservation")
		return
	}

	c.JSON(http.StatusOK, res)
}

// @Summary      Cancel a reservation
// @Description  Requesters may cancel their own pending or confirmed reservations
// @Tags         reservations
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Reservation ID"
// @Success      200 {object} reservation.Reservation
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /reservations/{id}/cancel [post]
func (h *Handler) Cancel(c *gin.Context) {
	actor, ok := auth.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	res, err := h.manager.Cancel(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		Respond(c, err, "Failed to cancel reservation")
		return
	}

	c.JSON(http.StatusOK, res)
}

// @Summary      List reservations
// @Description  Staff-only: filter by facility, date and status
// @Tags         staff
// @Produce      json
// @Security     BearerAuth
// @Param        facilityId query string false "Facility ID"
// @Param        date query string false "Date (YYYY-MM-DD)"
// @Param        status query string false "pending, confirmed or cancelled"
// @Success      200 {array} reservation.Reservation
// @Failure      400 {object} api.ErrorResponse
// @Router       /staff/reservations [get]
func (h *Handler) List(c *gin.Context) {
	f := Filter{
		FacilityID: c.Query("facilityId"),
		Date:       c.Query("date"),
	}
	if s := c.Query("status"); s != "" {
		st, err := ParseStatus(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		f.Status = st
	}

	list, err := h.manager.List(c.Request.Context(), f)
	if err != nil {
		Respond(c, err, "Failed to fetch reservations")
		return
	}

	c.JSON(http.StatusOK, list)
}

// @Summary      Change reservation status
// @Description  Staff-only: confirm or reject a reservation. Confirming consumes its slot definition.
// @Tags         staff
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Reservation ID"
// @Param        request body reservation.UpdateStatusRequest true "Target status"
// @Success      200 {object} reservation.Reservation
// @Failure      400 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /staff/reservations/{id}/status [patch]
func (h *Handler) UpdateStatus(c *gin.Context) {
	actor, ok := auth.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	to, err := ParseStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	res, err := h.manager.UpdateStatus(c.Request.Context(), actor, c.Param("id"), to)
	if err != nil {
		Respond(c, err, "Failed to update reservation")
		return
	}

	c.JSON(http.StatusOK, res)
}

// @Summary      Delete a reservation record
// @Tags         admin
// @Security     BearerAuth
// @Param        id path string true "Reservation ID"
// @Success      204
// @Failure      404 {object} api.ErrorResponse
// @Router       /admin/reservations/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	if err := h.manager.Delete(c.Request.Context(), c.Param("id")); err != nil {
		Respond(c, err, "Failed to delete reservation")
		return
	}

	c.Status(http.StatusNoContent)
}

// Respond maps reservation errors to HTTP statuses.
func Respond(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrForbidden):
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrReservationNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrSlotDefinitionNotFoundOnConfirm),
		errors.Is(err, ErrSlotUnavailable),
		errors.Is(err, ErrDuplicateReservation),
		errors.Is(err, ErrApprovalStale):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
	default:
		api.RespondError(c, err, fallback)
	}
}
