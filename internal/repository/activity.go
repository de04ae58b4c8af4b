package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/stpnv0/EventMarket/internal/domain"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"
)

// ActivityRepository is append-only: there is no update or delete.
type ActivityRepository struct {
	db       *dbpg.DB
	strategy retry.Strategy
}

func NewActivityRepo(db *dbpg.DB) *ActivityRepository {
	return &ActivityRepository{db: db, strategy: defaultStrategy()}
}

func (r *ActivityRepository) Create(ctx context.Context, a *domain.Activity) error {
	query := `INSERT INTO activities (id, actor_user_id, activity_type, description, entity_id, entity_type, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  ON CONFLICT (id) DO NOTHING`
	_, err := r.db.ExecWithRetry(ctx, r.strategy, query,
		a.ID, a.ActorUserID, a.ActivityType, a.Description, a.EntityID, a.EntityType, a.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

func (r *ActivityRepository) List(ctx context.Context, filter domain.ActivityFilter) ([]*domain.Activity, error) {
	var (
		where []string
		args  []any
	)
	if filter.EntityType != nil {
		args = append(args, *filter.EntityType)
		where = append(where, fmt.Sprintf("entity_type = $%d", len(args)))
	}
	if filter.EntityID != nil {
		args = append(args, *filter.EntityID)
		where = append(where, fmt.Sprintf("entity_id = $%d", len(args)))
	}

	query := `SELECT id, actor_user_id, activity_type, description, entity_id, entity_type, created_at
			  FROM activities`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))

	rows, err := r.db.QueryWithRetry(ctx, r.strategy, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	res := make([]*domain.Activity, 0)
	for rows.Next() {
		var a domain.Activity
		if err = rows.Scan(
			&a.ID, &a.ActorUserID, &a.ActivityType, &a.Description,
			&a.EntityID, &a.EntityType, &a.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		res = append(res, &a)
	}
	return res, rows.Err()
}
