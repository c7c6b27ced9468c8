package auth

import (
	"context"
	"errors"
	"time"

	"github.com/bohdan-kov/Obsessed-sub003/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrAccountNotFound = errors.New("account not found")

type Account struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

type AccountsRepo struct {
	db *pgxpool.Pool
}

func NewAccountsRepo(db *pgxpool.Pool) *AccountsRepo {
	return &AccountsRepo{
		db: db,
	}
}

func (r *AccountsRepo) GetByUsername(ctx context.Context, username string) (_ *Account, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.accounts.getbyusername")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var account Account
	err = r.db.QueryRow(ctx, `
		SELECT id, username, password_hash, created_at
		FROM owner_account
		WHERE username = $1;
	`, username).Scan(&account.ID, &account.Username, &account.PasswordHash, &account.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *AccountsRepo) Add(ctx context.Context, account Account) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.accounts.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = r.db.Exec(ctx, `
		INSERT INTO owner_account (id, username, password_hash, created_at)
		VALUES ($1, $2, $3, $4);
	`, account.ID, account.Username, account.PasswordHash, account.CreatedAt)
	return err
}
