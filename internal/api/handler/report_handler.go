package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/majikku/community-api/internal/core/ports"
)

// ReportSubmitter is the slice of the report service the handler needs.
type ReportSubmitter interface {
	SubmitApplication(ctx context.Context, report ports.ApplicationReport) error
	SubmitAppeal(ctx context.Context, report ports.AppealReport) error
}

// ReportHandler handles moderation report intake: staff applications and ban
// appeals. Both are open to any authenticated member.
type ReportHandler struct {
	service ReportSubmitter
}

func NewReportHandler(service ReportSubmitter) *ReportHandler {
	return &ReportHandler{service: service}
}

type applicationRequest struct {
	Team         string            `json:"team" validate:"required,max=100"`
	HytaleName   string            `json:"hytale_name" validate:"max=100"`
	Age          string            `json:"age" validate:"max=20"`
	Timezone     string            `json:"timezone" validate:"max=100"`
	Availability string            `json:"availability" validate:"max=500"`
	Answers      map[string]string `json:"answers"`
}

type appealRequest struct {
	Reason  string `json:"reason" validate:"required"`
	Apology string `json:"apology" validate:"required"`
}

type reportResponse struct {
	Success bool `json:"success"`
}

// Application handles POST /v1/reports/application.
//
// @Summary      Submit a staff application
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      applicationRequest  true  "Application"
// @Success      200   {object}  reportResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /v1/reports/application [post]
func (h *ReportHandler) Application(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req applicationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := h.service.SubmitApplication(c.Request().Context(), ports.ApplicationReport{
		Actor:        actor,
		Team:         req.Team,
		HytaleName:   req.HytaleName,
		Age:          req.Age,
		Timezone:     req.Timezone,
		Availability: req.Availability,
		Answers:      req.Answers,
	}); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reportResponse{Success: true})
}

// Appeal handles POST /v1/reports/appeal.
//
// @Summary      Submit a ban appeal
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      appealRequest  true  "Appeal"
// @Success      200   {object}  reportResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /v1/reports/appeal [post]
func (h *ReportHandler) Appeal(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req appealRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := h.service.SubmitAppeal(c.Request().Context(), ports.AppealReport{
		Actor:   actor,
		Reason:  req.Reason,
		Apology: req.Apology,
	}); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reportResponse{Success: true})
}
