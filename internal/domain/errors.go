package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Lookup errors
	ErrMsgAccountNotFound = "account not found"
	ErrMsgItemNotFound    = "item not found"
	ErrMsgListingNotFound = "listing not found"
	ErrMsgAuctionNotFound = "auction not found"

	// Authorization errors
	ErrMsgUnauthenticated = "unauthenticated"
	ErrMsgNotOwner        = "not the owner"

	// Trade errors
	ErrMsgAlreadyFinalized = "already finalized"
	ErrMsgSelfTrade        = "cannot trade with yourself"
	ErrMsgInvalidPrice     = "price outside allowed range"
	ErrMsgNotSellable      = "item is not sellable"
	ErrMsgQuotaExceeded    = "daily listing quota exceeded"

	// Auction errors
	ErrMsgBidTooLow        = "bid too low"
	ErrMsgAuctionClosed    = "auction is closed"
	ErrMsgAuctionStillOpen = "auction is still open"

	// Ledger errors
	ErrMsgInsufficientFunds  = "insufficient funds"
	ErrMsgLedgerInconsistent = "ledger inconsistent"

	// Validation errors
	ErrMsgInvalidInput = "invalid input"

	// Database/System errors
	ErrMsgTxClosed = "tx is closed"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Lookup errors
	ErrAccountNotFound = errors.New(ErrMsgAccountNotFound)
	ErrItemNotFound    = errors.New(ErrMsgItemNotFound)
	ErrListingNotFound = errors.New(ErrMsgListingNotFound)
	ErrAuctionNotFound = errors.New(ErrMsgAuctionNotFound)

	// Authorization errors
	ErrUnauthenticated = errors.New(ErrMsgUnauthenticated)
	ErrNotOwner        = errors.New(ErrMsgNotOwner)

	// Trade errors
	ErrAlreadyFinalized = errors.New(ErrMsgAlreadyFinalized)
	ErrSelfTrade        = errors.New(ErrMsgSelfTrade)
	ErrInvalidPrice     = errors.New(ErrMsgInvalidPrice)
	ErrNotSellable      = errors.New(ErrMsgNotSellable)
	ErrQuotaExceeded    = errors.New(ErrMsgQuotaExceeded)

	// Auction errors
	ErrBidTooLow        = errors.New(ErrMsgBidTooLow)
	ErrAuctionClosed    = errors.New(ErrMsgAuctionClosed)
	ErrAuctionStillOpen = errors.New(ErrMsgAuctionStillOpen)

	// Ledger errors
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)

	// ErrLedgerInconsistent indicates a broken escrow invariant. It is never
	// expected during correct operation; operators should alert on it.
	ErrLedgerInconsistent = errors.New(ErrMsgLedgerInconsistent)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
