// Package memory is a process-local implementation of the repository
// ports. It keeps the same compare-and-set contract as the Postgres
// repositories and is used for local runs and tests.
package memory

import (
	"sort"
	"sync"

	"github.com/stpnv0/EventMarket/internal/domain"
)

// Store holds every entity table behind one lock, which makes each
// single write atomic like a database row update.
type Store struct {
	mu            sync.RWMutex
	users         map[string]domain.User
	events        map[string]domain.Event
	proposals     map[string]domain.Proposal
	services      map[string]domain.Service
	bookings      map[string]domain.Booking
	notifications map[string]domain.Notification
	activities    []domain.Activity
}

func NewStore() *Store {
	return &Store{
		users:         make(map[string]domain.User),
		events:        make(map[string]domain.Event),
		proposals:     make(map[string]domain.Proposal),
		services:      make(map[string]domain.Service),
		bookings:      make(map[string]domain.Booking),
		notifications: make(map[string]domain.Notification),
	}
}

func (s *Store) Users() *UserRepo                 { return &UserRepo{s} }
func (s *Store) Events() *EventRepo               { return &EventRepo{s} }
func (s *Store) Proposals() *ProposalRepo         { return &ProposalRepo{s} }
func (s *Store) Services() *ServiceRepo           { return &ServiceRepo{s} }
func (s *Store) Bookings() *BookingRepo           { return &BookingRepo{s} }
func (s *Store) Notifications() *NotificationRepo { return &NotificationRepo{s} }
func (s *Store) Activities() *ActivityRepo        { return &ActivityRepo{s} }

func sortByCreated[T any](items []*T, created func(*T) int64) {
	sort.SliceStable(items, func(i, j int) bool {
		return created(items[i]) > created(items[j])
	})
}
