package controllers

import (
	"net/http"

	h "campusevents/internal/delivery/http/helpers"
	"campusevents/internal/domain"
)

type HealthController struct {
	Service domain.EventService
}

func NewHealthController(svc domain.EventService) *HealthController {
	return &HealthController{Service: svc}
}

// Health godoc
// @Summary Service health
// @Description Reports the event store status. A degraded store (unreadable backing file or database) answers 503 with the status as data.
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains state, driver and last_error"
// @Failure 503 {object} helpers.APIResponse "data contains state, driver and last_error"
// @Router /health [get]
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	st := c.Service.StoreStatus(r.Context())
	if st.State == domain.StoreDegraded {
		h.WriteJSONResponse(w, http.StatusServiceUnavailable, h.APIResponse{
			Data:  st,
			Error: &h.APIError{Code: h.ErrCodeServiceUnavailable, Message: "event store degraded"},
		})
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, st)
}
