package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emberhall/bazaar/internal/domain"
	"github.com/emberhall/bazaar/internal/repository"
)

// AccountRepository implements repository.Account for PostgreSQL
type AccountRepository struct {
	db *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: db}
}

// GetAccount retrieves an account without locking
func (r *AccountRepository) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	return getAccount(ctx, r.db, accountID, false)
}

var _ repository.Account = (*AccountRepository)(nil)
