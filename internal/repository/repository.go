package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/stpnv0/EventMarket/internal/domain"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"
)

const uniqueViolation = "23505"

func defaultStrategy() retry.Strategy {
	return retry.Strategy{
		Attempts: 3,
		Delay:    500 * time.Millisecond,
		Backoff:  2,
	}
}

// compareAndSetStatus moves a row from one status to another and reports
// domain.ErrInvalidTransition if the row no longer holds from. It is not
// retried: a lost acknowledgement must not turn into a second write.
func compareAndSetStatus(
	ctx context.Context,
	db *dbpg.DB,
	table, id, from, to string,
	notFound error,
) error {
	query := fmt.Sprintf(`UPDATE %s SET status = $1, updated_at = now()
			  WHERE id = $2 AND status = $3`, table)
	res, err := db.Master.ExecContext(ctx, query, to, id, from)
	if err != nil {
		return fmt.Errorf("update %s status: %w", table, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", table, err)
	}
	if rows > 0 {
		return nil
	}

	// Определяем причину: строки нет или статус уже сменился
	var exists bool
	checkQuery := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE id = $1)`, table)
	if err = db.Master.QueryRowContext(ctx, checkQuery, id).Scan(&exists); err != nil {
		return fmt.Errorf("check %s: %w", table, err)
	}
	if !exists {
		return notFound
	}
	return domain.ErrInvalidTransition
}
