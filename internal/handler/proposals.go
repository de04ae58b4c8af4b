package handler

import (
	"fmt"
	"net/http"

	"github.com/stpnv0/EventMarket/internal/domain"
	"github.com/stpnv0/EventMarket/internal/handler/dto"
	"github.com/wb-go/wbf/ginext"
)

func (h *Handler) CreateProposal(c *ginext.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req dto.CreateProposalRequest
	if !h.bindJSON(c, &req) {
		return
	}
	items, err := dto.ParseProposalItems(req.Items)
	if err != nil {
		h.handleError(c, err)
		return
	}

	proposal, _, err := h.proposals.CreateProposal(c.Request.Context(), actor, c.Param("id"), domain.ProposalInput{
		Title:       req.Title,
		Description: req.Description,
		Items:       items,
		TotalPrice:  req.TotalPrice.Float(),
		ValidUntil:  req.ValidUntil,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProposalResponse(proposal))
}

func (h *Handler) ListProposals(c *ginext.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	proposals, err := h.proposals.ListProposals(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MapSlice(proposals, dto.ToProposalResponse))
}

func (h *Handler) GetProposal(c *ginext.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	proposal, err := h.proposals.GetProposal(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProposalResponse(proposal))
}

// PatchProposal is a customer decision when the body carries a status and
// a staff edit otherwise.
func (h *Handler) PatchProposal(c *ginext.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req dto.PatchProposalRequest
	if !h.bindJSON(c, &req) {
		return
	}

	var (
		proposal *domain.Proposal
		err      error
	)
	if req.IsDecision() {
		decision := domain.ProposalDecision(*req.Status)
		if _, valid := decision.Status(); !valid {
			h.handleError(c, fmt.Errorf("%w: status must be accepted or rejected", domain.ErrValidation))
			return
		}
		proposal, _, err = h.proposals.ResolveProposal(c.Request.Context(), actor, c.Param("id"), decision, req.Feedback)
	} else {
		patch := domain.ProposalPatch{
			Title:       req.Title,
			Description: req.Description,
			TotalPrice:  req.TotalPrice.Float(),
			ValidUntil:  req.ValidUntil,
		}
		if len(req.Items) > 0 {
			items, perr := dto.ParseProposalItems(req.Items)
			if perr != nil {
				h.handleError(c, perr)
				return
			}
			patch.Items = &items
		}
		proposal, _, err = h.proposals.UpdateProposal(c.Request.Context(), actor, c.Param("id"), patch)
	}
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProposalResponse(proposal))
}

func (h *Handler) SendProposal(c *ginext.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	proposal, _, err := h.proposals.SendProposal(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProposalResponse(proposal))
}
