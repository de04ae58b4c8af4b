package domain

// Effects is the outbox produced by a successful workflow transition.
// The caller hands it to a dispatcher; emission failures never undo the
// transition that produced them.
type Effects struct {
	Notifications []Notification
	Activities    []Activity
}

func (e *Effects) Notify(n Notification) {
	e.Notifications = append(e.Notifications, n)
}

func (e *Effects) Record(a Activity) {
	e.Activities = append(e.Activities, a)
}

func (e *Effects) Merge(other Effects) {
	e.Notifications = append(e.Notifications, other.Notifications...)
	e.Activities = append(e.Activities, other.Activities...)
}

func (e Effects) IsEmpty() bool {
	return len(e.Notifications) == 0 && len(e.Activities) == 0
}
