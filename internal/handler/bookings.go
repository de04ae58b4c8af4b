package handler

import (
	"fmt"
	"net/http"

	"github.com/stpnv0/EventMarket/internal/domain"
	"github.com/stpnv0/EventMarket/internal/handler/dto"
	"github.com/wb-go/wbf/ginext"
)

func (h *Handler) CreateBooking(c *ginext.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req dto.CreateBookingRequest
	if !h.bindJSON(c, &req) {
		return
	}
	startTime, err := dto.ParseTime("startTime", req.StartTime)
	if err != nil {
		h.handleError(c, err)
		return
	}

	booking, _, err := h.bookings.Book(c.Request.Context(), actor, domain.CreateBookingInput{
		EventID:   req.EventID,
		ServiceID: req.ServiceID,
		StartTime: startTime,
		Notes:     req.Notes,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *Handler) ResolveBooking(c *ginext.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	status, ok := h.bindBookingStatus(c)
	if !ok {
		return
	}

	booking, _, err := h.bookings.Resolve(c.Request.Context(), actor, c.Param("id"), status)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *Handler) AdministerBooking(c *ginext.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	status, ok := h.bindBookingStatus(c)
	if !ok {
		return
	}

	booking, _, err := h.bookings.Administer(c.Request.Context(), actor, c.Param("id"), status)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *Handler) bindBookingStatus(c *ginext.Context) (domain.BookingStatus, bool) {
	var req dto.StatusRequest
	if !h.bindJSON(c, &req) {
		return "", false
	}
	status, valid := domain.ParseBookingStatus(req.Status)
	if !valid {
		h.handleError(c, fmt.Errorf("%w: unknown booking status %q", domain.ErrValidation, req.Status))
		return "", false
	}
	return status, true
}

func (h *Handler) ListCustomerBookings(c *ginext.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	bookings, err := h.bookings.ListByCustomer(c.Request.Context(), actor)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MapSlice(bookings, dto.ToBookingResponse))
}

func (h *Handler) ListProviderBookings(c *ginext.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	bookings, err := h.bookings.ListByProvider(c.Request.Context(), actor)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MapSlice(bookings, dto.ToBookingResponse))
}
