package handler

import (
	"net/http"

	"github.com/stpnv0/EventMarket/internal/domain"
	"github.com/stpnv0/EventMarket/internal/handler/dto"
	"github.com/wb-go/wbf/ginext"
)

func (h *Handler) ListServices(c *ginext.Context) {
	services, err := h.catalog.ListAvailable(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MapSlice(services, dto.ToServiceResponse))
}

func (h *Handler) ListProviderServices(c *ginext.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	services, err := h.catalog.ListByProvider(c.Request.Context(), actor)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MapSlice(services, dto.ToServiceResponse))
}

func (h *Handler) CreateService(c *ginext.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req dto.ServiceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	svc, err := h.catalog.Create(c.Request.Context(), actor, toServiceInput(req))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToServiceResponse(svc))
}

func (h *Handler) UpdateService(c *ginext.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req dto.ServiceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	svc, err := h.catalog.Update(c.Request.Context(), actor, c.Param("id"), toServiceInput(req))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToServiceResponse(svc))
}

func toServiceInput(req dto.ServiceRequest) domain.ServiceInput {
	return domain.ServiceInput{
		Title:     req.Title,
		Type:      req.Type,
		BasePrice: req.BasePrice.Float(),
		Available: req.Available,
	}
}
