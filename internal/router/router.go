package router

import (
	"net/http"

	"github.com/wb-go/wbf/ginext"
)

type Handler interface {
	Register(c *ginext.Context)
	Me(c *ginext.Context)
	SetUserStatus(c *ginext.Context)

	CreateEvent(c *ginext.Context)
	ListEvents(c *ginext.Context)
	GetEvent(c *ginext.Context)
	TransitionEvent(c *ginext.Context)
	DeleteEvent(c *ginext.Context)

	CreateProposal(c *ginext.Context)
	ListProposals(c *ginext.Context)
	GetProposal(c *ginext.Context)
	PatchProposal(c *ginext.Context)
	SendProposal(c *ginext.Context)

	ListServices(c *ginext.Context)
	ListProviderServices(c *ginext.Context)
	CreateService(c *ginext.Context)
	UpdateService(c *ginext.Context)

	CreateBooking(c *ginext.Context)
	ListCustomerBookings(c *ginext.Context)
	ResolveBooking(c *ginext.Context)
	ListProviderBookings(c *ginext.Context)
	AdministerBooking(c *ginext.Context)

	ListNotifications(c *ginext.Context)
	MarkNotificationRead(c *ginext.Context)
	ListActivities(c *ginext.Context)
}

// InitRouter mounts the API. Registration and the service catalogue are
// public; everything else sits behind auth.
func InitRouter(mode string, h Handler, auth ginext.HandlerFunc, mw ...ginext.HandlerFunc) *ginext.Engine {
	router := ginext.New(mode)
	router.Use(mw...)

	public := router.Group("/api")
	{
		public.POST("/users", h.Register)
		public.GET("/services", h.ListServices)
	}

	api := router.Group("/api", auth)
	{
		api.GET("/me", h.Me)

		// Events
		api.POST("/events", h.CreateEvent)
		api.GET("/events", h.ListEvents)
		api.GET("/events/:id", h.GetEvent)
		api.PATCH("/events/:id/status", h.TransitionEvent)
		api.DELETE("/events/:id", h.DeleteEvent)

		// Proposals
		api.POST("/events/:id/proposals", h.CreateProposal)
		api.GET("/events/:id/proposals", h.ListProposals)
		api.GET("/proposals/:id", h.GetProposal)
		api.PATCH("/proposals/:id", h.PatchProposal)
		api.POST("/proposals/:id/send", h.SendProposal)

		// Customer
		api.POST("/customer/bookings", h.CreateBooking)
		api.GET("/customer/bookings", h.ListCustomerBookings)

		// Provider
		api.GET("/providers/services", h.ListProviderServices)
		api.POST("/providers/services", h.CreateService)
		api.PATCH("/providers/services/:id", h.UpdateService)
		api.GET("/providers/bookings", h.ListProviderBookings)
		api.PATCH("/providers/bookings/:id/status", h.ResolveBooking)

		// Admin
		api.PATCH("/admin/users/:id/status", h.SetUserStatus)
		api.PATCH("/admin/bookings/:id/status", h.AdministerBooking)
		api.GET("/admin/activities", h.ListActivities)

		// Notifications
		api.GET("/notifications", h.ListNotifications)
		api.PATCH("/notifications/:id", h.MarkNotificationRead)
	}

	router.GET("/health", func(c *ginext.Context) {
		c.JSON(http.StatusOK, ginext.H{"status": "ok"})
	})

	return router
}
