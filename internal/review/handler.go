package review

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/CamiloTriana75/ProyectoElden/internal/api"
)

// Lister is the read side of the review queue.
type Lister interface {
	List(ctx context.Context, limit int64) ([]Inconsistency, error)
	Len(ctx context.Context) (int64, error)
}

type Handler struct {
	queue Lister
}

func NewHandler(queue Lister) *Handler {
	return &Handler{queue: queue}
}

type ListResponse struct {
	Total int64           `json:"total" example:"2"`
	Items []Inconsistency `json:"items"`
}

// @Summary      List flagged scheduling inconsistencies
// @Description  Admin-only: confirmations whose slot definition matched zero or several records
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Maximum entries" default(50)
// @Success      200 {object} review.ListResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      503 {object} api.ErrorResponse
// @Router       /admin/inconsistencies [get]
func (h *Handler) List(c *gin.Context) {
	limit := int64(50)
	if v := c.Query("limit"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	total, err := h.queue.Len(c.Request.Context())
	if err != nil {
		api.RespondError(c, err, "Failed to read review queue")
		return
	}

	items, err := h.queue.List(c.Request.Context(), limit)
	if err != nil {
		api.RespondError(c, err, "Failed to read review queue")
		return
	}

	c.JSON(http.StatusOK, ListResponse{Total: total, Items: items})
}
