package service

import (
	"context"
	"testing"

	"github.com/stpnv0/EventMarket/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingService_PriceSnapshotAndDecline(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	event := f.createEvent(t)
	svc := f.createService(t, 350.00)

	booking, effects, err := f.bookings.Book(ctx, f.customer, domain.CreateBookingInput{
		EventID:   event.ID,
		ServiceID: svc.ID,
		StartTime: event.EventDate,
		Notes:     " bring extra speakers ",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusPending, booking.Status)
	assert.InDelta(t, 350.00, booking.AgreePrice, 1e-9)
	assert.Equal(t, svc.ProviderID, booking.ProviderID)
	assert.Equal(t, "bring extra speakers", booking.SpecialInstructions)
	require.Len(t, effects.Notifications, 1)
	assert.Equal(t, domain.NotificationBookingReceived, effects.Notifications[0].Type)
	assert.Equal(t, f.provider.ID, effects.Notifications[0].UserID)

	_, err = f.catalog.Update(ctx, f.provider, svc.ID, domain.ServiceInput{BasePrice: floatPtr(500)})
	require.NoError(t, err)

	stored, err := f.store.Bookings().GetByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.InDelta(t, 350.00, stored.AgreePrice, 1e-9, "agreed price is frozen at booking time")

	declined, _, err := f.bookings.Resolve(ctx, f.provider, booking.ID, domain.BookingStatusDeclined)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusDeclined, declined.Status)
	assert.Equal(t, 1, countType(f.notificationsOf(t, f.customer.ID), domain.NotificationBookingDeclined))

	_, _, err = f.bookings.Resolve(ctx, f.provider, booking.ID, domain.BookingStatusDeclined)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestBookingService_Book_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	event := f.createEvent(t)
	svc := f.createService(t, 100)
	hidden := f.createService(t, 100)
	_, err := f.catalog.Update(ctx, f.provider, hidden.ID, domain.ServiceInput{Available: boolPtr(false)})
	require.NoError(t, err)

	tests := []struct {
		name    string
		actor   domain.Actor
		input   domain.CreateBookingInput
		wantErr error
	}{
		{
			name:    "missing ids",
			actor:   f.customer,
			input:   domain.CreateBookingInput{StartTime: event.EventDate},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "missing start time",
			actor:   f.customer,
			input:   domain.CreateBookingInput{EventID: event.ID, ServiceID: svc.ID},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "unknown event",
			actor:   f.customer,
			input:   domain.CreateBookingInput{EventID: "missing", ServiceID: svc.ID, StartTime: event.EventDate},
			wantErr: domain.ErrEventNotFound,
		},
		{
			name:    "someone else's event",
			actor:   f.stranger,
			input:   domain.CreateBookingInput{EventID: event.ID, ServiceID: svc.ID, StartTime: event.EventDate},
			wantErr: domain.ErrForbidden,
		},
		{
			name:    "unknown service",
			actor:   f.customer,
			input:   domain.CreateBookingInput{EventID: event.ID, ServiceID: "missing", StartTime: event.EventDate},
			wantErr: domain.ErrServiceNotFound,
		},
		{
			name:    "unavailable service",
			actor:   f.customer,
			input:   domain.CreateBookingInput{EventID: event.ID, ServiceID: hidden.ID, StartTime: event.EventDate},
			wantErr: domain.ErrInvalidState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := f.bookings.Book(ctx, tt.actor, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBookingService_Resolve_OnlyOwningProvider(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	event := f.createEvent(t)
	svc := f.createService(t, 100)
	booking, _, err := f.bookings.Book(ctx, f.customer, domain.CreateBookingInput{
		EventID: event.ID, ServiceID: svc.ID, StartTime: event.EventDate,
	})
	require.NoError(t, err)

	for _, actor := range []domain.Actor{f.rival, f.customer, f.admin} {
		_, _, err = f.bookings.Resolve(ctx, actor, booking.ID, domain.BookingStatusConfirmed)
		assert.ErrorIs(t, err, domain.ErrForbidden, actor.ID)
	}

	_, _, err = f.bookings.Resolve(ctx, f.provider, booking.ID, domain.BookingStatusCompleted)
	assert.ErrorIs(t, err, domain.ErrValidation)

	confirmed, effects, err := f.bookings.Resolve(ctx, f.provider, booking.ID, domain.BookingStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusConfirmed, confirmed.Status)
	require.Len(t, effects.Notifications, 1)
	assert.Equal(t, domain.NotificationBookingConfirmed, effects.Notifications[0].Type)
	assert.Equal(t, f.customer.ID, effects.Notifications[0].UserID)
}

func TestBookingService_Administer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	event := f.createEvent(t)
	svc := f.createService(t, 100)
	booking, _, err := f.bookings.Book(ctx, f.customer, domain.CreateBookingInput{
		EventID: event.ID, ServiceID: svc.ID, StartTime: event.EventDate,
	})
	require.NoError(t, err)

	_, _, err = f.bookings.Administer(ctx, f.customer, booking.ID, domain.BookingStatusCancelled)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, _, err = f.bookings.Administer(ctx, f.admin, booking.ID, domain.BookingStatusCompleted)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, _, err = f.bookings.Administer(ctx, f.admin, booking.ID, domain.BookingStatusConfirmed)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, _, err = f.bookings.Resolve(ctx, f.provider, booking.ID, domain.BookingStatusConfirmed)
	require.NoError(t, err)

	completed, _, err := f.bookings.Administer(ctx, f.employee, booking.ID, domain.BookingStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCompleted, completed.Status)

	_, _, err = f.bookings.Administer(ctx, f.admin, booking.ID, domain.BookingStatusCancelled)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestBookingService_AdminCancelNotifiesBothSides(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	event := f.createEvent(t)
	svc := f.createService(t, 100)
	booking, _, err := f.bookings.Book(ctx, f.customer, domain.CreateBookingInput{
		EventID: event.ID, ServiceID: svc.ID, StartTime: event.EventDate,
	})
	require.NoError(t, err)

	_, effects, err := f.bookings.Administer(ctx, f.admin, booking.ID, domain.BookingStatusCancelled)
	require.NoError(t, err)

	recipients := make([]string, 0, len(effects.Notifications))
	for _, n := range effects.Notifications {
		assert.Equal(t, domain.NotificationBookingCancelled, n.Type)
		recipients = append(recipients, n.UserID)
	}
	assert.ElementsMatch(t, []string{f.customer.ID, f.provider.ID}, recipients)
}

func TestBookingService_Lists(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	event := f.createEvent(t)
	svc := f.createService(t, 100)
	_, _, err := f.bookings.Book(ctx, f.customer, domain.CreateBookingInput{
		EventID: event.ID, ServiceID: svc.ID, StartTime: event.EventDate,
	})
	require.NoError(t, err)

	mine, err := f.bookings.ListByCustomer(ctx, f.customer)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := f.bookings.ListByProvider(ctx, f.provider)
	require.NoError(t, err)
	assert.Len(t, theirs, 1)

	none, err := f.bookings.ListByProvider(ctx, f.rival)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = f.bookings.ListByCustomer(ctx, f.provider)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.bookings.ListByProvider(ctx, f.customer)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func boolPtr(b bool) *bool { return &b }
