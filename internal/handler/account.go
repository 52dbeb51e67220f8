package handler

import (
	"net/http"

	"github.com/emberhall/bazaar/internal/account"
	"github.com/emberhall/bazaar/internal/identity"
)

// AccountHandler serves account balance queries
type AccountHandler struct {
	service account.Service
}

func NewAccountHandler(service account.Service) *AccountHandler {
	return &AccountHandler{service: service}
}

// BalanceResponse reports available and held coin balances
type BalanceResponse struct {
	AccountID string `json:"account_id"`
	Coins     int64  `json:"coins"`
	CoinsHold int64  `json:"coins_hold"`
}

// HandleGetBalance returns the caller's coin balances
func (h *AccountHandler) HandleGetBalance(w http.ResponseWriter, r *http.Request) {
	caller, err := identity.CallerFromContext(r.Context())
	if err != nil {
		respondServiceError(w, r, "get balance", err)
		return
	}

	acct, err := h.service.GetBalance(r.Context(), caller)
	if err != nil {
		respondServiceError(w, r, "get balance", err)
		return
	}

	respondJSON(w, http.StatusOK, BalanceResponse{
		AccountID: acct.ID,
		Coins:     acct.Coins,
		CoinsHold: acct.CoinsHold,
	})
}
