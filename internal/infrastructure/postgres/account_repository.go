package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fixlocal/fixlocal-api/internal/domain/entity"
	"github.com/fixlocal/fixlocal-api/internal/domain/repository"
)

// uniqueViolation is the Postgres SQLSTATE for unique constraint errors.
const uniqueViolation = "23505"

func isDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

const accountColumns = `id, name, email, password_hash, COALESCE(google_id, ''), role, business_name, services_offered, avatar_url, created_at, updated_at`

func scanAccount(row pgx.Row, a *entity.Account) error {
	return row.Scan(&a.ID, &a.Name, &a.Email, &a.Password, &a.GoogleID, &a.Role,
		&a.BusinessName, &a.ServicesOffered, &a.AvatarURL, &a.CreatedAt, &a.UpdatedAt)
}

func (r *AccountRepository) Create(ctx context.Context, a *entity.Account) error {
	if a.ServicesOffered == nil {
		a.ServicesOffered = []string{}
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO accounts (name, email, password_hash, google_id, role, business_name, services_offered, avatar_url)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, a.Name, a.Email, a.Password, a.GoogleID, a.Role, a.BusinessName, a.ServicesOffered, a.AvatarURL)

	if err := row.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if isDuplicate(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	a := &entity.Account{}
	row := r.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	if err := scanAccount(row, a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	a := &entity.Account{}
	row := r.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email)
	if err := scanAccount(row, a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *AccountRepository) ListProviders(ctx context.Context) ([]entity.Account, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE role = 'provider'
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Account
	for rows.Next() {
		var a entity.Account
		if err := scanAccount(rows, &a); err != nil {
			return nil, err
		}
		a.Password = "" // provider listings never carry the hash
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AccountRepository) Update(ctx context.Context, a *entity.Account) error {
	a.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE accounts
		SET name = $1, business_name = $2, services_offered = $3, avatar_url = $4, updated_at = $5
		WHERE id = $6
	`, a.Name, a.BusinessName, a.ServicesOffered, a.AvatarURL, a.UpdatedAt, a.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
