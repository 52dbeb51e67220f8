package repository

import (
	"context"

	"github.com/emberhall/bazaar/internal/domain"
)

// Account defines the read-only interface for balance lookups
type Account interface {
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)
}
