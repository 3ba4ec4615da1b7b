package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	h "campusevents/internal/delivery/http/helpers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"
)

// CreateAnnouncementRequest is the request body for POST /announcements.
type CreateAnnouncementRequest struct {
	Title    string `json:"title" validate:"required"`
	Message  string `json:"message" validate:"required"`
	Priority string `json:"priority" validate:"omitempty,oneof=normal high urgent"`
}

// AnnouncementSuccessResponse is the success response envelope for POST /announcements (202).
type AnnouncementSuccessResponse struct {
	Data  *domain.AnnouncementResult `json:"data"`
	Error *h.APIError                `json:"error"`
}

type AnnouncementController struct {
	Logger  *slog.Logger
	Service domain.AnnouncementService
}

func NewAnnouncementController(logger *slog.Logger, svc domain.AnnouncementService) *AnnouncementController {
	return &AnnouncementController{
		Logger:  logger,
		Service: svc,
	}
}

// Create godoc
// @Summary Send an announcement
// @Description Admin only. Renders the announcement email and sends it to every configured recipient. Failed recipients are listed in the result.
// @Tags announcements
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param body body CreateAnnouncementRequest true "Announcement"
// @Success 202 {object} controllers.AnnouncementSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /announcements [post]
func (c *AnnouncementController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAnnouncementRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	a := &domain.Announcement{Title: req.Title, Message: req.Message, Priority: req.Priority}
	if p := middleware.PrincipalFromContext(r.Context()); p != nil {
		a.Author = p.Name
	}
	result, err := c.Service.Send(r.Context(), a)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteInternalError(w)
		return
	}
	h.WriteJSONSuccess(w, http.StatusAccepted, result)
}
