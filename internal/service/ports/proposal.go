package ports

import (
	"context"

	"github.com/stpnv0/EventMarket/internal/domain"
)

type ProposalRepo interface {
	Create(ctx context.Context, p *domain.Proposal) error
	GetByID(ctx context.Context, id string) (*domain.Proposal, error)
	ListByEvent(ctx context.Context, eventID string) ([]*domain.Proposal, error)
	// Update rewrites the editable body of p while its status is still p.Status.
	Update(ctx context.Context, p *domain.Proposal) error
	UpdateStatus(ctx context.Context, id string, from, to domain.ProposalStatus, feedback *string) error
}
