package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/majikku/community-api/internal/core/service"
)

// RosterProvider is the slice of the roster service the handler needs.
type RosterProvider interface {
	Staff(ctx context.Context) ([]service.StaffMember, error)
}

// StaffHandler serves the public staff roster page data.
type StaffHandler struct {
	roster RosterProvider
}

func NewStaffHandler(roster RosterProvider) *StaffHandler {
	return &StaffHandler{roster: roster}
}

// List handles GET /v1/staff.
//
// @Summary      List staff members
// @Tags         staff
// @Produce      json
// @Success      200  {array}   service.StaffMember
// @Failure      502  {object}  map[string]string
// @Router       /v1/staff [get]
func (h *StaffHandler) List(c echo.Context) error {
	roster, err := h.roster.Staff(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, roster)
}
