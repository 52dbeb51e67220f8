package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/emberhall/bazaar/internal/identity"
	"github.com/emberhall/bazaar/internal/trade"
)

// TradeHandler serves the fixed-price listing endpoints
type TradeHandler struct {
	service trade.Service
}

func NewTradeHandler(service trade.Service) *TradeHandler {
	return &TradeHandler{service: service}
}

type CreateListingRequest struct {
	ItemID string `json:"item_id" validate:"required"`
	Price  int64  `json:"price" validate:"required,gt=0"`
}

type CreateListingResponse struct {
	ListingID uuid.UUID `json:"listing_id"`
}

// HandleCreateListing creates a fixed-price listing from the caller's inventory
// @Summary Create listing
// @Tags trade
// @Accept json
// @Produce json
// @Success 201 {object} CreateListingResponse
// @Router /api/v1/trade/create [post]
func (h *TradeHandler) HandleCreateListing(w http.ResponseWriter, r *http.Request) {
	caller, err := identity.CallerFromContext(r.Context())
	if err != nil {
		respondServiceError(w, r, "create listing", err)
		return
	}

	var req CreateListingRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create listing"); err != nil {
		return
	}

	listingID, err := h.service.CreateListing(r.Context(), caller, req.ItemID, req.Price)
	if err != nil {
		respondServiceError(w, r, "create listing", err)
		return
	}

	respondJSON(w, http.StatusCreated, CreateListingResponse{ListingID: listingID})
}

type CancelListingRequest struct {
	ListingID uuid.UUID `json:"listing_id" validate:"required"`
}

// HandleCancelListing cancels the caller's active listing and returns the item
func (h *TradeHandler) HandleCancelListing(w http.ResponseWriter, r *http.Request) {
	caller, err := identity.CallerFromContext(r.Context())
	if err != nil {
		respondServiceError(w, r, "cancel listing", err)
		return
	}

	var req CancelListingRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Cancel listing"); err != nil {
		return
	}

	if err := h.service.CancelListing(r.Context(), caller, req.ListingID); err != nil {
		respondServiceError(w, r, "cancel listing", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgListingCancelledSuccess})
}

type BuyRequest struct {
	ListingID uuid.UUID `json:"listing_id" validate:"required"`
}

// HandleBuy purchases an active listing at its asking price
func (h *TradeHandler) HandleBuy(w http.ResponseWriter, r *http.Request) {
	caller, err := identity.CallerFromContext(r.Context())
	if err != nil {
		respondServiceError(w, r, "buy listing", err)
		return
	}

	var req BuyRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Buy listing"); err != nil {
		return
	}

	if err := h.service.Buy(r.Context(), caller, req.ListingID); err != nil {
		respondServiceError(w, r, "buy listing", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgPurchaseSuccess})
}

// HandleListPublic returns the public feed of active listings
func (h *TradeHandler) HandleListPublic(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.ListPublic(r.Context())
	if err != nil {
		respondServiceError(w, r, "list listings", err)
		return
	}

	respondJSON(w, http.StatusOK, rows)
}

// HandleListMine returns all of the caller's listings
func (h *TradeHandler) HandleListMine(w http.ResponseWriter, r *http.Request) {
	caller, err := identity.CallerFromContext(r.Context())
	if err != nil {
		respondServiceError(w, r, "list own listings", err)
		return
	}

	rows, err := h.service.ListMine(r.Context(), caller)
	if err != nil {
		respondServiceError(w, r, "list own listings", err)
		return
	}

	respondJSON(w, http.StatusOK, rows)
}

// HandleGetListing returns a single listing by id
func (h *TradeHandler) HandleGetListing(w http.ResponseWriter, r *http.Request) {
	listingID, ok := listingIDParam(w, r)
	if !ok {
		return
	}

	listing, err := h.service.GetListing(r.Context(), listingID)
	if err != nil {
		respondServiceError(w, r, "get listing", err)
		return
	}

	respondJSON(w, http.StatusOK, listing)
}

func listingIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr, ok := GetQueryParam(r, w, "id")
	if !ok {
		return uuid.Nil, false
	}
	listingID, err := uuid.Parse(idStr)
	if err != nil {
		http.Error(w, ErrMsgInvalidListingID, http.StatusBadRequest)
		return uuid.Nil, false
	}
	return listingID, true
}
