package handler

import (
	"fmt"
	"net/http"

	"github.com/stpnv0/EventMarket/internal/domain"
	"github.com/stpnv0/EventMarket/internal/handler/dto"
	"github.com/wb-go/wbf/ginext"
)

func (h *Handler) CreateEvent(c *ginext.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req dto.CreateEventRequest
	if !h.bindJSON(c, &req) {
		return
	}

	eventDate, err := dto.ParseTime("eventDate", req.EventDate)
	if err != nil {
		h.handleError(c, err)
		return
	}
	input := domain.CreateEventInput{
		Name:         req.Name,
		Description:  req.Description,
		EventDate:    eventDate,
		Location:     req.Location,
		LocationType: req.LocationType,
		AudienceSize: req.AudienceSize,
		Budget:       float64(req.Budget),
	}
	if req.EndDate != "" {
		endDate, err := dto.ParseTime("endDate", req.EndDate)
		if err != nil {
			h.handleError(c, err)
			return
		}
		input.EndDate = &endDate
	}

	event, _, err := h.events.CreateEvent(c.Request.Context(), actor, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEventResponse(event))
}

func (h *Handler) ListEvents(c *ginext.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	events, err := h.events.ListEvents(c.Request.Context(), actor)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MapSlice(events, dto.ToEventResponse))
}

func (h *Handler) GetEvent(c *ginext.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	event, err := h.events.GetEvent(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *Handler) TransitionEvent(c *ginext.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req dto.StatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	next, valid := domain.ParseEventStatus(req.Status)
	if !valid {
		h.handleError(c, fmt.Errorf("%w: unknown event status %q", domain.ErrValidation, req.Status))
		return
	}

	event, _, err := h.events.TransitionEvent(c.Request.Context(), actor, c.Param("id"), next)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *Handler) DeleteEvent(c *ginext.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	if _, err := h.events.DeleteEvent(c.Request.Context(), actor, c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
