package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/stpnv0/EventMarket/internal/domain"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"
)

type ServiceRepository struct {
	db       *dbpg.DB
	strategy retry.Strategy
}

func NewServiceRepo(db *dbpg.DB) *ServiceRepository {
	return &ServiceRepository{db: db, strategy: defaultStrategy()}
}

const serviceColumns = `id, provider_id, title, type, base_price, available, created_at, updated_at`

func scanService(row rowScanner) (*domain.Service, error) {
	var s domain.Service
	err := row.Scan(&s.ID, &s.ProviderID, &s.Title, &s.Type, &s.BasePrice, &s.Available, &s.CreatedAt, &s.UpdatedAt)
	return &s, err
}

func (r *ServiceRepository) Create(ctx context.Context, s *domain.Service) error {
	query := `INSERT INTO services (` + serviceColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecWithRetry(ctx, r.strategy, query,
		s.ID, s.ProviderID, s.Title, s.Type, s.BasePrice, s.Available, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert service: %w", err)
	}
	return nil
}

func (r *ServiceRepository) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = $1`
	row, err := r.db.QueryRowWithRetry(ctx, r.strategy, query, id)
	if err != nil {
		return nil, fmt.Errorf("get service: %w", err)
	}

	s, err := scanService(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrServiceNotFound
		}
		return nil, fmt.Errorf("scan service: %w", err)
	}
	return s, nil
}

func (r *ServiceRepository) Update(ctx context.Context, s *domain.Service) error {
	query := `UPDATE services
			  SET title = $1, type = $2, base_price = $3, available = $4, updated_at = $5
			  WHERE id = $6`
	res, err := r.db.ExecWithRetry(ctx, r.strategy, query,
		s.Title, s.Type, s.BasePrice, s.Available, s.UpdatedAt, s.ID,
	)
	if err != nil {
		return fmt.Errorf("update service: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("service rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrServiceNotFound
	}
	return nil
}

func (r *ServiceRepository) ListAvailable(ctx context.Context) ([]*domain.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE available ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *ServiceRepository) ListByProvider(ctx context.Context, providerID string) ([]*domain.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE provider_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, providerID)
}

func (r *ServiceRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Service, error) {
	rows, err := r.db.QueryWithRetry(ctx, r.strategy, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	res := make([]*domain.Service, 0)
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		res = append(res, s)
	}
	return res, rows.Err()
}
