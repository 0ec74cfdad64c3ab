package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/localboost/internal/dbx"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// pgUniqueViolation is SQLSTATE unique_violation.
const pgUniqueViolation = "23505"

const userColumns = `id, email, phone, password_hash, name, google_id, created_at`

// SQLRepository works with both pgx and modernc sqlite: both accept $N
// placeholders.
type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Create(ctx context.Context, user *User) (*User, error) {
	query :=
		`INSERT INTO users (` + userColumns + `)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.Phone, user.PasswordHash, user.Name, user.GoogleID, user.CreatedAt.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *SQLRepository) GetByID(ctx context.Context, id string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *SQLRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.getOne(ctx, query, email)
}

func (r *SQLRepository) GetByGoogleIDOrEmail(ctx context.Context, googleID, email string) (*User, error) {
	query :=
		`SELECT ` + userColumns + ` FROM users
		 WHERE google_id = $1 OR email = $2
		 ORDER BY CASE WHEN google_id = $1 THEN 0 ELSE 1 END
		 LIMIT 1`
	return r.getOne(ctx, query, googleID, email)
}

func (r *SQLRepository) LinkGoogleID(ctx context.Context, userID, googleID string) error {
	query := `UPDATE users SET google_id = $1 WHERE id = $2`

	res, err := r.db.ExecContext(ctx, query, googleID, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLRepository) getOne(ctx context.Context, query string, args ...any) (*User, error) {
	var (
		u                           User
		phone, hash, name, googleID sql.NullString
	)

	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&u.ID, &u.Email, &phone, &hash, &name, &googleID, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	u.Phone = nullable(phone)
	u.PasswordHash = nullable(hash)
	u.Name = nullable(name)
	u.GoogleID = nullable(googleID)
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}

func nullable(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}
