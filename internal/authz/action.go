package authz

// Action names an operation an actor asks to perform on a resource.
type Action string

const (
	ActionCreateEvent   Action = "event:create"
	ActionViewEvent     Action = "event:view"
	ActionAdvanceEvent  Action = "event:advance"
	ActionCancelEvent   Action = "event:cancel"
	ActionDeleteEvent   Action = "event:delete"
	ActionListAllEvents Action = "event:list_all"

	ActionCreateProposal  Action = "proposal:create"
	ActionEditProposal    Action = "proposal:edit"
	ActionSendProposal    Action = "proposal:send"
	ActionResolveProposal Action = "proposal:resolve"
	ActionViewProposal    Action = "proposal:view"

	ActionCreateBooking     Action = "booking:create"
	ActionResolveBooking    Action = "booking:resolve"
	ActionAdministerBooking Action = "booking:administer"

	ActionCreateService Action = "service:create"
	ActionEditService   Action = "service:edit"

	ActionReadNotification Action = "notification:read"
	ActionViewActivity     Action = "activity:view"
	ActionManageUsers      Action = "user:manage"
)
