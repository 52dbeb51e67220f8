// Package ledger implements the atomic balance primitives for accounts.
// Every function mutates an Account value that the caller has read inside
// its enclosing transaction; the caller persists the account and commits.
// Matching hold + release/capture pairs net to zero on coins_hold, and no
// operation can push either balance negative.
package ledger

import (
	"fmt"

	"github.com/emberhall/bazaar/internal/domain"
)

// Pay deducts amount from the account's available coins
func Pay(account *domain.Account, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("%w: negative amount %d", domain.ErrInvalidInput, amount)
	}
	if account.Coins < amount {
		return fmt.Errorf("%w: have %d, need %d", domain.ErrInsufficientFunds, account.Coins, amount)
	}
	account.Coins -= amount
	return nil
}

// Refund credits amount to the account's available coins
func Refund(account *domain.Account, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("%w: negative amount %d", domain.ErrInvalidInput, amount)
	}
	account.Coins += amount
	return nil
}

// Hold moves amount from available coins into the hold balance, earmarking
// it for an outstanding top bid.
func Hold(account *domain.Account, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("%w: negative amount %d", domain.ErrInvalidInput, amount)
	}
	if account.Coins < amount {
		return fmt.Errorf("%w: have %d, need %d", domain.ErrInsufficientFunds, account.Coins, amount)
	}
	account.Coins -= amount
	account.CoinsHold += amount
	return nil
}

// Release moves amount back from the hold balance into available coins.
// A short hold balance means a prior operation broke the escrow invariant.
func Release(account *domain.Account, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("%w: negative amount %d", domain.ErrInvalidInput, amount)
	}
	if account.CoinsHold < amount {
		return fmt.Errorf("%w: release %d exceeds hold %d on account %s",
			domain.ErrLedgerInconsistent, amount, account.CoinsHold, account.ID)
	}
	account.CoinsHold -= amount
	account.Coins += amount
	return nil
}

// Capture converts amount of the hold balance into an actual deduction.
// The funds leave this account; the seller payout is a separate Refund.
func Capture(account *domain.Account, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("%w: negative amount %d", domain.ErrInvalidInput, amount)
	}
	if account.CoinsHold < amount {
		return fmt.Errorf("%w: capture %d exceeds hold %d on account %s",
			domain.ErrLedgerInconsistent, amount, account.CoinsHold, account.ID)
	}
	account.CoinsHold -= amount
	return nil
}
