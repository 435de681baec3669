package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/majikku/community-api/internal/core/ports"
)

// WikiHandler handles HTTP requests for wiki pages and the submission queue.
type WikiHandler struct {
	service ports.WikiService
}

func NewWikiHandler(service ports.WikiService) *WikiHandler {
	return &WikiHandler{service: service}
}

// --- Request / Response types ---

type writePageRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	Category string `json:"category" validate:"required,max=200"`
	Content  string `json:"content" validate:"required"`
}

type writePageResponse struct {
	Published    bool   `json:"published"`
	SubmissionID *int64 `json:"submission_id,omitempty"`
}

type reviewRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approve approve_edited deny"`
	Title    string `json:"title,omitempty"`
	Category string `json:"category,omitempty"`
	Content  string `json:"content,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// List handles GET /v1/wiki.
//
// @Summary      List published wiki pages
// @Tags         wiki
// @Produce      json
// @Success      200  {array}  domain.WikiPage
// @Router       /v1/wiki [get]
func (h *WikiHandler) List(c echo.Context) error {
	pages, err := h.service.ListPages(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pages)
}

// Get handles GET /v1/wiki/:slug.
//
// @Summary      Get a wiki page
// @Tags         wiki
// @Produce      json
// @Param        slug  path      string  true  "Page slug"
// @Success      200   {object}  domain.WikiPage
// @Failure      404   {object}  map[string]string
// @Router       /v1/wiki/{slug} [get]
func (h *WikiHandler) Get(c echo.Context) error {
	page, err := h.service.GetPage(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Write handles PUT /v1/wiki/:slug — create or edit a page. Bypass-eligible
// actors publish directly; editors get a queued submission.
//
// @Summary      Create or edit a wiki page
// @Tags         wiki
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        slug  path      string            true  "Page slug"
// @Param        body  body      writePageRequest  true  "Page content"
// @Success      200   {object}  writePageResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/wiki/{slug} [put]
func (h *WikiHandler) Write(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req writePageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	result, err := h.service.CreateOrEditPage(c.Request().Context(), ports.WikiWriteInput{
		Actor:    actor,
		Slug:     c.Param("slug"),
		Title:    req.Title,
		Category: req.Category,
		Content:  req.Content,
	})
	if err != nil {
		return err
	}

	resp := writePageResponse{Published: result.Published}
	if !result.Published {
		resp.SubmissionID = &result.SubmissionID
	}
	return c.JSON(http.StatusOK, resp)
}

// Delete handles DELETE /v1/wiki/:slug.
//
// @Summary      Delete a wiki page
// @Tags         wiki
// @Security     BearerAuth
// @Param        slug  path  string  true  "Page slug"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/wiki/{slug} [delete]
func (h *WikiHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.service.DeletePage(c.Request().Context(), actor, c.Param("slug")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListPending handles GET /v1/wiki/submissions.
//
// @Summary      List pending wiki submissions
// @Tags         wiki
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.WikiSubmission
// @Router       /v1/wiki/submissions [get]
func (h *WikiHandler) ListPending(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	subs, err := h.service.ListPending(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, subs)
}

// GetSubmission handles GET /v1/wiki/submissions/:id. Returns the submitted
// draft, not the live page, so reviewers edit from the proposed content.
//
// @Summary      Get a wiki submission
// @Tags         wiki
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      int  true  "Submission id"
// @Success      200  {object}  domain.WikiSubmission
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/wiki/submissions/{id} [get]
func (h *WikiHandler) GetSubmission(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := submissionID(c)
	if err != nil {
		return err
	}
	sub, err := h.service.GetSubmission(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sub)
}

// Review handles POST /v1/wiki/submissions/:id/review.
//
// @Summary      Approve or deny a wiki submission
// @Tags         wiki
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int            true  "Submission id"
// @Param        body  body      reviewRequest  true  "Decision"
// @Success      200   {object}  domain.WikiSubmission
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/wiki/submissions/{id}/review [post]
func (h *WikiHandler) Review(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := submissionID(c)
	if err != nil {
		return err
	}

	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	var decision ports.ReviewDecision
	switch req.Decision {
	case "approve":
		decision = ports.DecisionApprove
	case "approve_edited":
		decision = ports.DecisionApproveEdited
	case "deny":
		decision = ports.DecisionDeny
		if req.Reason == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "reason is required to deny"})
		}
	}

	sub, err := h.service.Review(c.Request().Context(), ports.ReviewInput{
		Actor:        actor,
		SubmissionID: id,
		Decision:     decision,
		Overrides: ports.ReviewOverrides{
			Title:    req.Title,
			Category: req.Category,
			Content:  req.Content,
		},
		Reason: req.Reason,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sub)
}

func submissionID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid submission id")
	}
	return id, nil
}
