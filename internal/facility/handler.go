package facility

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CamiloTriana75/ProyectoElden/internal/api"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// @Summary      Create a facility
// @Description  Admin-only: register a bookable sports facility
// @Tags         admin,facilities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body facility.CreateFacilityRequest true "Facility payload"
// @Success      201 {object} facility.Facility
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      503 {object} api.ErrorResponse
// @Router       /admin/facilities [post]
func (h *Handler) CreateFacility(c *gin.Context) {
	var req CreateFacilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	f, err := h.service.CreateFacility(c.Request.Context(), req)
	if err != nil {
		api.RespondError(c, err, "Failed to create facility")
		return
	}

	c.JSON(http.StatusCreated, f)
}

// @Summary      List facilities
// @Tags         facilities
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} facility.Facility
// @Failure      401 {object} api.ErrorResponse
// @Failure      503 {object} api.ErrorResponse
// @Router       /facilities [get]
func (h *Handler) ListFacilities(c *gin.Context) {
	facilities, err := h.service.GetAllFacilities(c.Request.Context())
	if err != nil {
		api.RespondError(c, err, "Failed to fetch facilities")
		return
	}

	c.JSON(http.StatusOK, facilities)
}

// @Summary      Get a facility
// @Tags         facilities
// @Produce      json
// @Security     BearerAuth
// @Param        facilityID path string true "Facility ID"
// @Success      200 {object} facility.Facility
// @Failure      404 {object} api.ErrorResponse
// @Router       /facilities/{facilityID} [get]
func (h *Handler) GetFacility(c *gin.Context) {
	f, err := h.service.GetFacilityByID(c.Request.Context(), c.Param("facilityID"))
	if errors.Is(err, ErrFacilityNotFound) {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		api.RespondError(c, err, "Failed to fetch facility")
		return
	}

	c.JSON(http.StatusOK, f)
}
