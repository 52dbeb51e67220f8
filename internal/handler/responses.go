package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/emberhall/bazaar/internal/domain"
	"github.com/emberhall/bazaar/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Encode to a pooled buffer first; headers are already sent if
	// encoding fails, so all we can do is log.
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed service call and writes the mapped
// user-facing error response
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	logger.FromContext(r.Context()).Error("Failed to "+opName, "error", err)
	status, userMsg := mapServiceErrorToUserMessage(err)
	respondError(w, status, userMsg)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	ErrMsgUnauthenticatedError = "Authentication required"
	ErrMsgNotOwnerError        = "You don't own that"

	ErrMsgAccountNotFoundError = "Account not found"
	ErrMsgItemNotFoundError    = "You don't have that item"
	ErrMsgListingNotFoundError = "Listing not found"
	ErrMsgAuctionNotFoundError = "Auction not found"

	ErrMsgAlreadyFinalizedError = "That sale is already closed"
	ErrMsgSelfTradeError        = "You can't buy from yourself"
	ErrMsgInvalidPriceError     = "Price is outside the allowed range for that item"
	ErrMsgNotSellableError      = "Item is not sellable"
	ErrMsgQuotaExceededError    = "Daily listing limit reached. Try again tomorrow"
	ErrMsgBidTooLowError        = "Bid is too low"
	ErrMsgAuctionClosedError    = "Bidding has ended on that auction"
	ErrMsgAuctionStillOpenError = "Auction hasn't ended yet"
	ErrMsgNotEnoughMoneyError   = "Not enough coins"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP
// responses with appropriate status codes.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, ErrMsgUnauthenticatedError
	case errors.Is(err, domain.ErrNotOwner):
		return http.StatusForbidden, ErrMsgNotOwnerError
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, ErrMsgAccountNotFoundError
	case errors.Is(err, domain.ErrListingNotFound):
		return http.StatusNotFound, ErrMsgListingNotFoundError
	case errors.Is(err, domain.ErrAuctionNotFound):
		return http.StatusNotFound, ErrMsgAuctionNotFoundError
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusBadRequest, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrAlreadyFinalized):
		return http.StatusConflict, ErrMsgAlreadyFinalizedError
	case errors.Is(err, domain.ErrSelfTrade):
		return http.StatusBadRequest, ErrMsgSelfTradeError
	case errors.Is(err, domain.ErrInvalidPrice):
		return http.StatusBadRequest, ErrMsgInvalidPriceError
	case errors.Is(err, domain.ErrNotSellable):
		return http.StatusBadRequest, ErrMsgNotSellableError
	case errors.Is(err, domain.ErrQuotaExceeded):
		return http.StatusTooManyRequests, ErrMsgQuotaExceededError
	case errors.Is(err, domain.ErrBidTooLow):
		return http.StatusBadRequest, ErrMsgBidTooLowError
	case errors.Is(err, domain.ErrAuctionClosed):
		return http.StatusConflict, ErrMsgAuctionClosedError
	case errors.Is(err, domain.ErrAuctionStillOpen):
		return http.StatusConflict, ErrMsgAuctionStillOpenError
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, ErrMsgNotEnoughMoneyError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestSummary
	case errors.Is(err, domain.ErrLedgerInconsistent):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
