package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/majikku/community-api/internal/core/domain"
	"github.com/majikku/community-api/internal/core/ports"
)

// AnnouncementHandler handles HTTP requests for announcements.
type AnnouncementHandler struct {
	service ports.AnnouncementService
}

func NewAnnouncementHandler(service ports.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{service: service}
}

type postAnnouncementRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	Content  string `json:"content" validate:"required"`
	Category string `json:"category" validate:"required,oneof=NEWS EVENT LORE"`
}

type editAnnouncementRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
}

// List handles GET /v1/announcements.
//
// @Summary      List announcements
// @Tags         announcements
// @Produce      json
// @Param        category  query    string  false  "Filter by category (NEWS, EVENT, LORE)"
// @Success      200       {array}  domain.AnnouncementPost
// @Failure      400       {object} map[string]string
// @Router       /v1/announcements [get]
func (h *AnnouncementHandler) List(c echo.Context) error {
	var category domain.AnnouncementCategory
	if raw := c.QueryParam("category"); raw != "" {
		parsed, ok := domain.ParseAnnouncementCategory(raw)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid category"})
		}
		category = parsed
	}

	posts, err := h.service.List(c.Request().Context(), category)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// Get handles GET /v1/announcements/:id.
//
// @Summary      Get an announcement
// @Tags         announcements
// @Produce      json
// @Param        id  path      string  true  "Announcement id"
// @Success      200  {object}  domain.AnnouncementPost
// @Failure      404  {object}  map[string]string
// @Router       /v1/announcements/{id} [get]
func (h *AnnouncementHandler) Get(c echo.Context) error {
	post, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// Post handles POST /v1/announcements.
//
// @Summary      Post an announcement
// @Tags         announcements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      postAnnouncementRequest  true  "Announcement"
// @Success      201   {object}  domain.AnnouncementPost
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/announcements [post]
func (h *AnnouncementHandler) Post(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req postAnnouncementRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	category, _ := domain.ParseAnnouncementCategory(req.Category)
	post, err := h.service.Post(c.Request().Context(), ports.PostAnnouncementInput{
		Actor:    actor,
		Title:    req.Title,
		Content:  req.Content,
		Category: category,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, post)
}

// Edit handles PUT /v1/announcements/:id.
//
// @Summary      Edit an announcement
// @Tags         announcements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                   true  "Announcement id"
// @Param        body  body      editAnnouncementRequest  true  "New content"
// @Success      200   {object}  domain.AnnouncementPost
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/announcements/{id} [put]
func (h *AnnouncementHandler) Edit(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req editAnnouncementRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	post, err := h.service.Edit(c.Request().Context(), actor, c.Param("id"), req.Title, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// Delete handles DELETE /v1/announcements/:id.
//
// @Summary      Delete an announcement
// @Tags         announcements
// @Security     BearerAuth
// @Param        id  path  string  true  "Announcement id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/announcements/{id} [delete]
func (h *AnnouncementHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
