package service

import (
	"context"
	"testing"

	"github.com/stpnv0/EventMarket/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_Create(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	title := "Photo booth"

	_, err := f.catalog.Create(ctx, f.customer, domain.ServiceInput{Title: &title, BasePrice: floatPtr(10)})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.catalog.Create(ctx, f.provider, domain.ServiceInput{Title: &title, BasePrice: floatPtr(-1)})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.catalog.Create(ctx, f.provider, domain.ServiceInput{BasePrice: floatPtr(10)})
	assert.ErrorIs(t, err, domain.ErrValidation)

	svc, err := f.catalog.Create(ctx, f.provider, domain.ServiceInput{Title: &title, BasePrice: floatPtr(199.999)})
	require.NoError(t, err)
	assert.True(t, svc.Available)
	assert.Equal(t, f.provider.ID, svc.ProviderID)
	assert.InDelta(t, 200.00, svc.BasePrice, 1e-9)
}

func TestCatalogService_Update(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := f.createService(t, 100)

	_, err := f.catalog.Update(ctx, f.rival, svc.ID, domain.ServiceInput{BasePrice: floatPtr(1)})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.catalog.Update(ctx, f.provider, "missing", domain.ServiceInput{})
	assert.ErrorIs(t, err, domain.ErrServiceNotFound)

	empty := " "
	_, err = f.catalog.Update(ctx, f.provider, svc.ID, domain.ServiceInput{Title: &empty})
	assert.ErrorIs(t, err, domain.ErrValidation)

	updated, err := f.catalog.Update(ctx, f.provider, svc.ID, domain.ServiceInput{BasePrice: floatPtr(120), Available: boolPtr(false)})
	require.NoError(t, err)
	assert.InDelta(t, 120.0, updated.BasePrice, 1e-9)
	assert.False(t, updated.Available)
	assert.Equal(t, "DJ set", updated.Title)
}

func TestCatalogService_Lists(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	visible := f.createService(t, 100)
	hidden := f.createService(t, 200)
	_, err := f.catalog.Update(ctx, f.provider, hidden.ID, domain.ServiceInput{Available: boolPtr(false)})
	require.NoError(t, err)

	available, err := f.catalog.ListAvailable(ctx)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, visible.ID, available[0].ID)

	own, err := f.catalog.ListByProvider(ctx, f.provider)
	require.NoError(t, err)
	assert.Len(t, own, 2)

	_, err = f.catalog.ListByProvider(ctx, f.customer)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
