package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/stpnv0/EventMarket/internal/domain"
	"github.com/stpnv0/EventMarket/internal/handler/dto"
	"github.com/stpnv0/EventMarket/internal/middleware"
	"github.com/wb-go/wbf/ginext"
)

type EventSvc interface {
	CreateEvent(ctx context.Context, actor domain.Actor, input domain.CreateEventInput) (*domain.Event, domain.Effects, error)
	TransitionEvent(ctx context.Context, actor domain.Actor, id string, next domain.EventStatus) (*domain.Event, domain.Effects, error)
	GetEvent(ctx context.Context, actor domain.Actor, id string) (*domain.Event, error)
	ListEvents(ctx context.Context, actor domain.Actor) ([]*domain.Event, error)
	DeleteEvent(ctx context.Context, actor domain.Actor, id string) (domain.Effects, error)
}

type ProposalSvc interface {
	CreateProposal(ctx context.Context, actor domain.Actor, eventID string, input domain.ProposalInput) (*domain.Proposal, domain.Effects, error)
	UpdateProposal(ctx context.Context, actor domain.Actor, id string, patch domain.ProposalPatch) (*domain.Proposal, domain.Effects, error)
	SendProposal(ctx context.Context, actor domain.Actor, id string) (*domain.Proposal, domain.Effects, error)
	ResolveProposal(ctx context.Context, actor domain.Actor, id string, decision domain.ProposalDecision, feedback *string) (*domain.Proposal, domain.Effects, error)
	GetProposal(ctx context.Context, actor domain.Actor, id string) (*domain.Proposal, error)
	ListProposals(ctx context.Context, actor domain.Actor, eventID string) ([]*domain.Proposal, error)
}

type BookingSvc interface {
	Book(ctx context.Context, actor domain.Actor, input domain.CreateBookingInput) (*domain.Booking, domain.Effects, error)
	Resolve(ctx context.Context, actor domain.Actor, id string, decision domain.BookingStatus) (*domain.Booking, domain.Effects, error)
	Administer(ctx context.Context, actor domain.Actor, id string, next domain.BookingStatus) (*domain.Booking, domain.Effects, error)
	ListByCustomer(ctx context.Context, actor domain.Actor) ([]*domain.Booking, error)
	ListByProvider(ctx context.Context, actor domain.Actor) ([]*domain.Booking, error)
}

type CatalogSvc interface {
	Create(ctx context.Context, actor domain.Actor, input domain.ServiceInput) (*domain.Service, error)
	Update(ctx context.Context, actor domain.Actor, id string, input domain.ServiceInput) (*domain.Service, error)
	ListAvailable(ctx context.Context) ([]*domain.Service, error)
	ListByProvider(ctx context.Context, actor domain.Actor) ([]*domain.Service, error)
}

type UserSvc interface {
	Register(ctx context.Context, input domain.RegisterUserInput) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	SetStatus(ctx context.Context, actor domain.Actor, userID string, next domain.UserStatus) (*domain.User, error)
}

type FeedSvc interface {
	ListNotifications(ctx context.Context, actor domain.Actor) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, actor domain.Actor, id string) (*domain.Notification, error)
	ListActivities(ctx context.Context, actor domain.Actor, filter domain.ActivityFilter) ([]*domain.Activity, error)
}

type SessionIssuer interface {
	Issue(userID string) (string, error)
	TTL() time.Duration
}

type Services struct {
	Events    EventSvc
	Proposals ProposalSvc
	Bookings  BookingSvc
	Catalog   CatalogSvc
	Users     UserSvc
	Feed      FeedSvc
}

type Handler struct {
	events    EventSvc
	proposals ProposalSvc
	bookings  BookingSvc
	catalog   CatalogSvc
	users     UserSvc
	feed      FeedSvc

	sessions     SessionIssuer
	cookieName   string
	secureCookie bool
}

func NewHandler(svc Services, sessions SessionIssuer, cookieName string, secureCookie bool) *Handler {
	return &Handler{
		events:       svc.Events,
		proposals:    svc.Proposals,
		bookings:     svc.Bookings,
		catalog:      svc.Catalog,
		users:        svc.Users,
		feed:         svc.Feed,
		sessions:     sessions,
		cookieName:   cookieName,
		secureCookie: secureCookie,
	}
}

// actor is always present behind the auth middleware; a miss means the
// route was registered outside the authenticated group.
func (h *Handler) actor(c *ginext.Context) (domain.Actor, bool) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		h.handleError(c, domain.ErrUnauthenticated)
	}
	return actor, ok
}

func (h *Handler) bindJSON(c *ginext.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.Set("error", err.Error())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return false
	}
	return true
}

func (h *Handler) handleError(c *ginext.Context, err error) {
	c.Set("error", err.Error())

	switch {
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: domain.ErrUnauthenticated.Error()})

	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: domain.ErrForbidden.Error()})

	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrEventNotFound),
		errors.Is(err, domain.ErrProposalNotFound),
		errors.Is(err, domain.ErrServiceNotFound),
		errors.Is(err, domain.ErrBookingNotFound),
		errors.Is(err, domain.ErrNotificationNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrInvalidState),
		errors.Is(err, domain.ErrEmailTaken):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}
}
