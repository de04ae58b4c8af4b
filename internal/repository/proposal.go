package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/stpnv0/EventMarket/internal/domain"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"
)

type ProposalRepository struct {
	db       *dbpg.DB
	strategy retry.Strategy
}

func NewProposalRepo(db *dbpg.DB) *ProposalRepository {
	return &ProposalRepository{db: db, strategy: defaultStrategy()}
}

const proposalColumns = `id, event_id, admin_id, title, description, items, total_price,
		valid_until, status, feedback, created_at, updated_at`

func scanProposal(row rowScanner) (*domain.Proposal, error) {
	var (
		p     domain.Proposal
		items []byte
	)
	if err := row.Scan(
		&p.ID, &p.EventID, &p.AdminID, &p.Title, &p.Description, &items, &p.TotalPrice,
		&p.ValidUntil, &p.Status, &p.Feedback, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &p.Items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	if p.Items == nil {
		p.Items = []domain.ProposalItem{}
	}
	return &p, nil
}

func encodeItems(items []domain.ProposalItem) ([]byte, error) {
	if items == nil {
		items = []domain.ProposalItem{}
	}
	return json.Marshal(items)
}

func (r *ProposalRepository) Create(ctx context.Context, p *domain.Proposal) error {
	items, err := encodeItems(p.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}

	query := `INSERT INTO proposals (` + proposalColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = r.db.ExecWithRetry(ctx, r.strategy, query,
		p.ID, p.EventID, p.AdminID, p.Title, p.Description, items, p.TotalPrice,
		p.ValidUntil, p.Status, p.Feedback, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert proposal: %w", err)
	}

	return nil
}

func (r *ProposalRepository) GetByID(ctx context.Context, id string) (*domain.Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM proposals WHERE id = $1`
	row, err := r.db.QueryRowWithRetry(ctx, r.strategy, query, id)
	if err != nil {
		return nil, fmt.Errorf("get proposal: %w", err)
	}

	p, err := scanProposal(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProposalNotFound
		}
		return nil, fmt.Errorf("scan proposal: %w", err)
	}

	return p, nil
}

func (r *ProposalRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.Proposal, error) {
	query := `SELECT ` + proposalColumns + `
              FROM proposals
              WHERE event_id = $1
              ORDER BY created_at DESC`

	rows, err := r.db.QueryWithRetry(ctx, r.strategy, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("list proposals by event: %w", err)
	}
	defer rows.Close()

	res := make([]*domain.Proposal, 0)
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan proposal: %w", err)
		}
		res = append(res, p)
	}

	return res, rows.Err()
}

// Update rewrites the body only while the stored status matches p.Status.
func (r *ProposalRepository) Update(ctx context.Context, p *domain.Proposal) error {
	items, err := encodeItems(p.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}

	query := `UPDATE proposals
			  SET title = $1, description = $2, items = $3, total_price = $4,
			      valid_until = $5, updated_at = $6
			  WHERE id = $7 AND status = $8`
	res, err := r.db.Master.ExecContext(ctx, query,
		p.Title, p.Description, items, p.TotalPrice, p.ValidUntil, p.UpdatedAt, p.ID, p.Status,
	)
	if err != nil {
		return fmt.Errorf("update proposal: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("proposal rows affected: %w", err)
	}
	if rows == 0 {
		if _, err = r.GetByID(ctx, p.ID); err != nil {
			return err
		}
		return domain.ErrInvalidTransition
	}
	return nil
}

func (r *ProposalRepository) UpdateStatus(
	ctx context.Context,
	id string,
	from, to domain.ProposalStatus,
	feedback *string,
) error {
	if feedback == nil {
		return compareAndSetStatus(ctx, r.db, "proposals", id, string(from), string(to), domain.ErrProposalNotFound)
	}

	query := `UPDATE proposals SET status = $1, feedback = $2, updated_at = now()
			  WHERE id = $3 AND status = $4`
	res, err := r.db.Master.ExecContext(ctx, query, to, *feedback, id, from)
	if err != nil {
		return fmt.Errorf("update proposal status: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("proposal rows affected: %w", err)
	}
	if rows == 0 {
		if _, err = r.GetByID(ctx, id); err != nil {
			return err
		}
		return domain.ErrInvalidTransition
	}
	return nil
}
