package assignmentrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/giquina/armora-sub001/internal/domain/booking"
)

const uniqueViolation = "23505"

// PostgresRepository persists confirmed assignments in Postgres. The tier and
// final fee are stored as columns for reporting; the snapshot and quote are
// kept as JSON so they read back exactly as confirmed.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Save inserts a confirmed assignment.
func (r *PostgresRepository) Save(ctx context.Context, a booking.Assignment) error {
	snapshot, err := json.Marshal(a.Snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	quote, err := json.Marshal(a.Quote)
	if err != nil {
		return fmt.Errorf("encode quote: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO assignments (id, session_id, owner, tier_id, final_fee, payment_token, snapshot, quote, confirmed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, a.ID, a.SessionID, a.Owner, string(a.Quote.TierID), a.Quote.FinalFee, a.PaymentToken, snapshot, quote, a.ConfirmedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %v", booking.ErrAssignmentExists, err)
	}
	return err
}

// FindBySession returns the assignment confirmed for a session, if any.
func (r *PostgresRepository) FindBySession(ctx context.Context, sessionID uuid.UUID) (booking.Assignment, bool, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, session_id, owner, payment_token, snapshot, quote, confirmed_at
		FROM assignments
		WHERE session_id = $1
	`, sessionID)
	a, err := scanAssignment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return booking.Assignment{}, false, nil
	}
	if err != nil {
		return booking.Assignment{}, false, err
	}
	return a, true, nil
}

// ListByOwner returns the newest assignments first.
func (r *PostgresRepository) ListByOwner(ctx context.Context, owner string, limit int) ([]booking.Assignment, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, session_id, owner, payment_token, snapshot, quote, confirmed_at
		FROM assignments
		WHERE owner = $1
		ORDER BY confirmed_at DESC
		LIMIT $2
	`, owner, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []booking.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAssignment(row rowScanner) (booking.Assignment, error) {
	var (
		a         booking.Assignment
		snapshot  []byte
		quote     []byte
		confirmed time.Time
	)
	if err := row.Scan(&a.ID, &a.SessionID, &a.Owner, &a.PaymentToken, &snapshot, &quote, &confirmed); err != nil {
		return booking.Assignment{}, err
	}
	if err := json.Unmarshal(snapshot, &a.Snapshot); err != nil {
		return booking.Assignment{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if err := json.Unmarshal(quote, &a.Quote); err != nil {
		return booking.Assignment{}, fmt.Errorf("decode quote: %w", err)
	}
	a.ConfirmedAt = confirmed.UTC()
	return a, nil
}

var _ booking.AssignmentRepository = (*PostgresRepository)(nil)
