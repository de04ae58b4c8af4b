package handler

import (
	"net/http"
	"strconv"

	"github.com/stpnv0/EventMarket/internal/domain"
	"github.com/stpnv0/EventMarket/internal/handler/dto"
	"github.com/wb-go/wbf/ginext"
)

func (h *Handler) ListNotifications(c *ginext.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	notifications, err := h.feed.ListNotifications(c.Request.Context(), actor)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MapSlice(notifications, dto.ToNotificationResponse))
}

func (h *Handler) MarkNotificationRead(c *ginext.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	n, err := h.feed.MarkRead(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToNotificationResponse(n))
}

// ListActivities accepts optional entityType, entityId and limit query
// parameters.
func (h *Handler) ListActivities(c *ginext.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var filter domain.ActivityFilter
	if v := c.Query("entityType"); v != "" {
		et := domain.EntityType(v)
		filter.EntityType = &et
	}
	if v := c.Query("entityId"); v != "" {
		filter.EntityID = &v
	}
	if v := c.Query("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil {
			filter.Limit = limit
		}
	}

	activities, err := h.feed.ListActivities(c.Request.Context(), actor, filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MapSlice(activities, dto.ToActivityResponse))
}
