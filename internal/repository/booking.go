package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/stpnv0/EventMarket/internal/domain"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"
)

const foreignKeyViolation = "23503"

type BookingRepository struct {
	db       *dbpg.DB
	strategy retry.Strategy
}

func NewBookingRepo(db *dbpg.DB) *BookingRepository {
	return &BookingRepository{db: db, strategy: defaultStrategy()}
}

const bookingColumns = `id, event_id, service_id, provider_id, customer_id, start_time, status,
		agree_price, special_instructions, created_at, updated_at`

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	err := row.Scan(
		&b.ID, &b.EventID, &b.ServiceID, &b.ProviderID, &b.CustomerID, &b.StartTime, &b.Status,
		&b.AgreePrice, &b.SpecialInstructions, &b.CreatedAt, &b.UpdatedAt,
	)
	return &b, err
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `INSERT INTO bookings (` + bookingColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.ExecWithRetry(ctx, r.strategy, query,
		b.ID, b.EventID, b.ServiceID, b.ProviderID, b.CustomerID, b.StartTime, b.Status,
		b.AgreePrice, b.SpecialInstructions, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		// Событие могли удалить между проверкой и вставкой
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return domain.ErrEventNotFound
		}
		return fmt.Errorf("insert booking: %w", err)
	}

	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	row, err := r.db.QueryRowWithRetry(ctx, r.strategy, query, id)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}

	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("scan booking: %w", err)
	}

	return b, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus) error {
	return compareAndSetStatus(ctx, r.db, "bookings", id, string(from), string(to), domain.ErrBookingNotFound)
}

func (r *BookingRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE event_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, eventID)
}

func (r *BookingRepository) ListByCustomer(ctx context.Context, customerID string) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE customer_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, customerID)
}

// ListByProvider shows active bookings first, newest first within a group.
func (r *BookingRepository) ListByProvider(ctx context.Context, providerID string) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + `
              FROM bookings
              WHERE provider_id = $1
              ORDER BY (status = ANY($2)) DESC, created_at DESC`
	return r.list(ctx, query, providerID, pq.Array(domain.ActiveStatuses))
}

func (r *BookingRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Booking, error) {
	rows, err := r.db.QueryWithRetry(ctx, r.strategy, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	res := make([]*domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		res = append(res, b)
	}

	return res, rows.Err()
}
