package repository

import (
	"context"
	"fmt"

	"github.com/emberhall/bazaar/internal/domain"
	"github.com/emberhall/bazaar/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error
func SafeRollback(ctx context.Context, tx Tx) {
	if err := tx.Rollback(ctx); err != nil {
		// Check for common "closed" errors to avoid noise
		if err.Error() != domain.ErrMsgTxClosed {
			logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
		}
	}
}

// LockAccountPair locks two account rows in a stable order so concurrent
// transactions touching the same accounts cannot deadlock.
func LockAccountPair(ctx context.Context, tx Tx, a, b string) (acctA, acctB *domain.Account, err error) {
	first, second := a, b
	if b < a {
		first, second = b, a
	}

	firstAcct, err := tx.GetAccountForUpdate(ctx, first)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get account %s: %w", first, err)
	}
	secondAcct, err := tx.GetAccountForUpdate(ctx, second)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get account %s: %w", second, err)
	}

	if first == a {
		return firstAcct, secondAcct, nil
	}
	return secondAcct, firstAcct, nil
}
