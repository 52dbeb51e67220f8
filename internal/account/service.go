// Package account exposes read-only balance lookups
package account

import (
	"context"
	"fmt"

	"github.com/emberhall/bazaar/internal/domain"
	"github.com/emberhall/bazaar/internal/logger"
	"github.com/emberhall/bazaar/internal/repository"
)

// Service defines the interface for account queries
type Service interface {
	GetBalance(ctx context.Context, accountID string) (*domain.Account, error)
}

type service struct {
	repo repository.Account
}

// NewService creates a new account service
func NewService(repo repository.Account) Service {
	return &service{repo: repo}
}

// GetBalance returns the account's available and held coin balances
func (s *service) GetBalance(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.repo.GetAccount(ctx, accountID)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to get account", "error", err)
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, accountID)
	}
	return account, nil
}
