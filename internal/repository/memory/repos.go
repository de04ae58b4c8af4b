package memory

import (
	"context"
	"time"

	"github.com/stpnv0/EventMarket/internal/domain"
)

type UserRepo struct{ s *Store }

func (r *UserRepo) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepo) GetByLegacyProfileID(_ context.Context, profileID string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.LegacyProfileID != nil && *u.LegacyProfileID == profileID {
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepo) UpdateStatus(_ context.Context, id string, from, to domain.UserStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	if u.Status != from {
		return domain.ErrInvalidTransition
	}
	u.Status = to
	r.s.users[id] = u
	return nil
}

type EventRepo struct{ s *Store }

func (r *EventRepo) Create(_ context.Context, e *domain.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.events[e.ID] = *e
	return nil
}

func (r *EventRepo) GetByID(_ context.Context, id string) (*domain.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	return &e, nil
}

func (r *EventRepo) List(ctx context.Context) ([]*domain.Event, error) {
	return r.filter(func(*domain.Event) bool { return true }), nil
}

func (r *EventRepo) ListByCustomer(_ context.Context, customerID string) ([]*domain.Event, error) {
	return r.filter(func(e *domain.Event) bool { return e.CustomerID == customerID }), nil
}

func (r *EventRepo) filter(keep func(*domain.Event) bool) []*domain.Event {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	res := make([]*domain.Event, 0)
	for _, e := range r.s.events {
		if keep(&e) {
			e := e
			res = append(res, &e)
		}
	}
	sortByCreated(res, func(e *domain.Event) int64 { return e.EventDate.UnixNano() })
	return res
}

func (r *EventRepo) UpdateStatus(_ context.Context, id string, from, to domain.EventStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.events[id]
	if !ok {
		return domain.ErrEventNotFound
	}
	if e.Status != from {
		return domain.ErrInvalidTransition
	}
	e.Status = to
	e.UpdatedAt = time.Now().UTC()
	r.s.events[id] = e
	return nil
}

func (r *EventRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.events[id]; !ok {
		return domain.ErrEventNotFound
	}
	delete(r.s.events, id)
	for pid, p := range r.s.proposals {
		if p.EventID == id {
			delete(r.s.proposals, pid)
		}
	}
	for bid, b := range r.s.bookings {
		if b.EventID == id {
			delete(r.s.bookings, bid)
		}
	}
	return nil
}

type ProposalRepo struct{ s *Store }

func (r *ProposalRepo) Create(_ context.Context, p *domain.Proposal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.events[p.EventID]; !ok {
		return domain.ErrEventNotFound
	}
	r.s.proposals[p.ID] = cloneProposal(*p)
	return nil
}

func (r *ProposalRepo) GetByID(_ context.Context, id string) (*domain.Proposal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.proposals[id]
	if !ok {
		return nil, domain.ErrProposalNotFound
	}
	p = cloneProposal(p)
	return &p, nil
}

func (r *ProposalRepo) ListByEvent(_ context.Context, eventID string) ([]*domain.Proposal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	res := make([]*domain.Proposal, 0)
	for _, p := range r.s.proposals {
		if p.EventID == eventID {
			p = cloneProposal(p)
			res = append(res, &p)
		}
	}
	sortByCreated(res, func(p *domain.Proposal) int64 { return p.CreatedAt.UnixNano() })
	return res, nil
}

func (r *ProposalRepo) Update(_ context.Context, p *domain.Proposal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.proposals[p.ID]
	if !ok {
		return domain.ErrProposalNotFound
	}
	if cur.Status != p.Status {
		return domain.ErrInvalidTransition
	}
	cur.Title = p.Title
	cur.Description = p.Description
	cur.Items = p.Items
	cur.TotalPrice = p.TotalPrice
	cur.ValidUntil = p.ValidUntil
	cur.UpdatedAt = p.UpdatedAt
	r.s.proposals[p.ID] = cloneProposal(cur)
	return nil
}

func (r *ProposalRepo) UpdateStatus(_ context.Context, id string, from, to domain.ProposalStatus, feedback *string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.proposals[id]
	if !ok {
		return domain.ErrProposalNotFound
	}
	if p.Status != from {
		return domain.ErrInvalidTransition
	}
	p.Status = to
	p.UpdatedAt = time.Now().UTC()
	if feedback != nil {
		fb := *feedback
		p.Feedback = &fb
	}
	r.s.proposals[id] = p
	return nil
}

func cloneProposal(p domain.Proposal) domain.Proposal {
	items := make([]domain.ProposalItem, len(p.Items))
	copy(items, p.Items)
	p.Items = items
	return p
}

type ServiceRepo struct{ s *Store }

func (r *ServiceRepo) Create(_ context.Context, svc *domain.Service) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.services[svc.ID] = *svc
	return nil
}

func (r *ServiceRepo) GetByID(_ context.Context, id string) (*domain.Service, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	svc, ok := r.s.services[id]
	if !ok {
		return nil, domain.ErrServiceNotFound
	}
	return &svc, nil
}

func (r *ServiceRepo) Update(_ context.Context, svc *domain.Service) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.services[svc.ID]; !ok {
		return domain.ErrServiceNotFound
	}
	r.s.services[svc.ID] = *svc
	return nil
}

func (r *ServiceRepo) ListAvailable(_ context.Context) ([]*domain.Service, error) {
	return r.filter(func(s *domain.Service) bool { return s.Available }), nil
}

func (r *ServiceRepo) ListByProvider(_ context.Context, providerID string) ([]*domain.Service, error) {
	return r.filter(func(s *domain.Service) bool { return s.ProviderID == providerID }), nil
}

func (r *ServiceRepo) filter(keep func(*domain.Service) bool) []*domain.Service {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	res := make([]*domain.Service, 0)
	for _, svc := range r.s.services {
		if keep(&svc) {
			svc := svc
			res = append(res, &svc)
		}
	}
	sortByCreated(res, func(s *domain.Service) int64 { return s.CreatedAt.UnixNano() })
	return res
}

type BookingRepo struct{ s *Store }

func (r *BookingRepo) Create(_ context.Context, b *domain.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.events[b.EventID]; !ok {
		return domain.ErrEventNotFound
	}
	if _, ok := r.s.services[b.ServiceID]; !ok {
		return domain.ErrServiceNotFound
	}
	r.s.bookings[b.ID] = *b
	return nil
}

func (r *BookingRepo) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	return &b, nil
}

func (r *BookingRepo) UpdateStatus(_ context.Context, id string, from, to domain.BookingStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return domain.ErrBookingNotFound
	}
	if b.Status != from {
		return domain.ErrInvalidTransition
	}
	b.Status = to
	b.UpdatedAt = time.Now().UTC()
	r.s.bookings[id] = b
	return nil
}

func (r *BookingRepo) ListByEvent(_ context.Context, eventID string) ([]*domain.Booking, error) {
	return r.filter(func(b *domain.Booking) bool { return b.EventID == eventID }), nil
}

func (r *BookingRepo) ListByCustomer(_ context.Context, customerID string) ([]*domain.Booking, error) {
	return r.filter(func(b *domain.Booking) bool { return b.CustomerID == customerID }), nil
}

func (r *BookingRepo) ListByProvider(_ context.Context, providerID string) ([]*domain.Booking, error) {
	return r.filter(func(b *domain.Booking) bool { return b.ProviderID == providerID }), nil
}

func (r *BookingRepo) filter(keep func(*domain.Booking) bool) []*domain.Booking {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	res := make([]*domain.Booking, 0)
	for _, b := range r.s.bookings {
		if keep(&b) {
			b := b
			res = append(res, &b)
		}
	}
	sortByCreated(res, func(b *domain.Booking) int64 { return b.CreatedAt.UnixNano() })
	return res
}

type NotificationRepo struct{ s *Store }

func (r *NotificationRepo) Create(_ context.Context, n *domain.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.notifications[n.ID] = *n
	return nil
}

func (r *NotificationRepo) GetByID(_ context.Context, id string) (*domain.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n, ok := r.s.notifications[id]
	if !ok {
		return nil, domain.ErrNotificationNotFound
	}
	return &n, nil
}

func (r *NotificationRepo) ListByUser(_ context.Context, userID string) ([]*domain.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	res := make([]*domain.Notification, 0)
	for _, n := range r.s.notifications {
		if n.UserID == userID {
			n := n
			res = append(res, &n)
		}
	}
	sortByCreated(res, func(n *domain.Notification) int64 { return n.CreatedAt.UnixNano() })
	return res, nil
}

func (r *NotificationRepo) MarkRead(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.notifications[id]
	if !ok {
		return domain.ErrNotificationNotFound
	}
	n.IsRead = true
	r.s.notifications[id] = n
	return nil
}

type ActivityRepo struct{ s *Store }

func (r *ActivityRepo) Create(_ context.Context, a *domain.Activity) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.activities = append(r.s.activities, *a)
	return nil
}

func (r *ActivityRepo) List(_ context.Context, filter domain.ActivityFilter) ([]*domain.Activity, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	res := make([]*domain.Activity, 0)
	for i := len(r.s.activities) - 1; i >= 0; i-- {
		a := r.s.activities[i]
		if filter.EntityType != nil && a.EntityType != *filter.EntityType {
			continue
		}
		if filter.EntityID != nil && a.EntityID != *filter.EntityID {
			continue
		}
		res = append(res, &a)
		if filter.Limit > 0 && len(res) == filter.Limit {
			break
		}
	}
	return res, nil
}
