package userrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/giquina/armora-sub001/internal/domain/auth"
	"github.com/giquina/armora-sub001/pkg/util"
)

const uniqueViolation = "23505"

// PostgresRepository persists accounts in Postgres.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create inserts a new account row.
func (r *PostgresRepository) Create(ctx context.Context, email, displayName, passwordHash string) (auth.User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, display_name, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, email, display_name, password_hash, reward_unlocked_at, created_at
	`, email, displayName, passwordHash)
	user, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return auth.User{}, auth.ErrEmailExists
		}
		return auth.User{}, err
	}
	return user, nil
}

// GetByEmail fetches an account by email.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (auth.User, bool, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, display_name, password_hash, reward_unlocked_at, created_at
		FROM users
		WHERE email = $1
	`, email)
	return scanOptional(row)
}

// GetByID fetches by primary key.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (auth.User, bool, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, display_name, password_hash, reward_unlocked_at, created_at
		FROM users
		WHERE id = $1
	`, id)
	return scanOptional(row)
}

// UnlockReward stamps the reward once and returns the updated account.
func (r *PostgresRepository) UnlockReward(ctx context.Context, id int64, at time.Time) (auth.User, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE users
		SET reward_unlocked_at = COALESCE(reward_unlocked_at, $2)
		WHERE id = $1
		RETURNING id, email, display_name, password_hash, reward_unlocked_at, created_at
	`, id, at)
	user, found, err := scanOptional(row)
	if err != nil {
		return auth.User{}, err
	}
	if !found {
		return auth.User{}, auth.ErrUserNotFound
	}
	return user, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOptional(row rowScanner) (auth.User, bool, error) {
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.User{}, false, nil
		}
		return auth.User{}, false, err
	}
	return user, true, nil
}

func scanUser(row rowScanner) (auth.User, error) {
	var (
		user     auth.User
		unlocked *time.Time
		created  time.Time
	)
	if err := row.Scan(&user.ID, &user.Email, &user.DisplayName, &user.PasswordHash, &unlocked, &created); err != nil {
		return auth.User{}, err
	}
	user.RewardUnlockedAt = util.UTCPtr(unlocked)
	user.CreatedAt = created.UTC()
	return user, nil
}

var _ auth.Repository = (*PostgresRepository)(nil)
