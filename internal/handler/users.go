package handler

import (
	"fmt"
	"net/http"

	"github.com/stpnv0/EventMarket/internal/domain"
	"github.com/stpnv0/EventMarket/internal/handler/dto"
	"github.com/wb-go/wbf/ginext"
)

// Register creates the account and opens a session for it right away.
func (h *Handler) Register(c *ginext.Context) {
	var req dto.RegisterUserRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.users.Register(c.Request.Context(), domain.RegisterUserInput{
		Email:          req.Email,
		Name:           req.Name,
		Role:           domain.Role(req.Role),
		TelegramChatID: req.TelegramChatID,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	token, err := h.sessions.Issue(user.ID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, token, int(h.sessions.TTL().Seconds()), "/", "", h.secureCookie, true)

	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

func (h *Handler) Me(c *ginext.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), actor.ID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func (h *Handler) SetUserStatus(c *ginext.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req dto.StatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	status, valid := domain.ParseUserStatus(req.Status)
	if !valid {
		h.handleError(c, fmt.Errorf("%w: unknown user status %q", domain.ErrValidation, req.Status))
		return
	}

	user, err := h.users.SetStatus(c.Request.Context(), actor, c.Param("id"), status)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
