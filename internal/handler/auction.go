package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/emberhall/bazaar/internal/auction"
	"github.com/emberhall/bazaar/internal/domain"
	"github.com/emberhall/bazaar/internal/identity"
)

// AuctionHandler serves the auction endpoints
type AuctionHandler struct {
	service auction.Service
}

func NewAuctionHandler(service auction.Service) *AuctionHandler {
	return &AuctionHandler{service: service}
}

type CreateAuctionRequest struct {
	ItemID          string `json:"item_id" validate:"required"`
	Kind            string `json:"kind" validate:"required,oneof=normal special"`
	MinBid          int64  `json:"min_bid" validate:"required,gt=0"`
	// Durations below the auction minimum are floored by the service
	DurationMinutes int `json:"duration_minutes"`
}

type CreateAuctionResponse struct {
	AuctionID uuid.UUID `json:"auction_id"`
}

// HandleCreateAuction opens a timed auction for an item from the caller's inventory
func (h *AuctionHandler) HandleCreateAuction(w http.ResponseWriter, r *http.Request) {
	caller, err := identity.CallerFromContext(r.Context())
	if err != nil {
		respondServiceError(w, r, "create auction", err)
		return
	}

	var req CreateAuctionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create auction"); err != nil {
		return
	}

	auctionID, err := h.service.CreateAuction(r.Context(), caller, req.ItemID,
		domain.AuctionKind(req.Kind), req.MinBid, req.DurationMinutes)
	if err != nil {
		respondServiceError(w, r, "create auction", err)
		return
	}

	respondJSON(w, http.StatusCreated, CreateAuctionResponse{AuctionID: auctionID})
}

type BidRequest struct {
	AuctionID uuid.UUID `json:"auction_id" validate:"required"`
	Amount    int64     `json:"amount" validate:"required,gt=0"`
}

// HandleBid places a bid on an open auction
func (h *AuctionHandler) HandleBid(w http.ResponseWriter, r *http.Request) {
	caller, err := identity.CallerFromContext(r.Context())
	if err != nil {
		respondServiceError(w, r, "place bid", err)
		return
	}

	var req BidRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Place bid"); err != nil {
		return
	}

	if err := h.service.Bid(r.Context(), caller, req.AuctionID, req.Amount); err != nil {
		respondServiceError(w, r, "place bid", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgBidAcceptedSuccess})
}

type SettleAuctionRequest struct {
	AuctionID uuid.UUID `json:"auction_id" validate:"required"`
}

// HandleSettle finalizes an ended auction. Seller only.
func (h *AuctionHandler) HandleSettle(w http.ResponseWriter, r *http.Request) {
	caller, err := identity.CallerFromContext(r.Context())
	if err != nil {
		respondServiceError(w, r, "settle auction", err)
		return
	}

	var req SettleAuctionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Settle auction"); err != nil {
		return
	}

	if err := h.service.Settle(r.Context(), caller, req.AuctionID); err != nil {
		respondServiceError(w, r, "settle auction", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgAuctionSettledSuccess})
}

// HandleListPublic returns active auctions, optionally filtered by kind
func (h *AuctionHandler) HandleListPublic(w http.ResponseWriter, r *http.Request) {
	// The feed itself is public but redaction depends on who is asking
	caller, err := identity.CallerFromContext(r.Context())
	if err != nil {
		respondServiceError(w, r, "list auctions", err)
		return
	}

	var kind *domain.AuctionKind
	if kindStr := GetOptionalQueryParam(r, "kind", ""); kindStr != "" {
		k := domain.AuctionKind(kindStr)
		if k != domain.AuctionNormal && k != domain.AuctionSpecial {
			http.Error(w, ErrMsgInvalidKindFilter, http.StatusBadRequest)
			return
		}
		kind = &k
	}

	rows, err := h.service.ListPublic(r.Context(), caller, kind)
	if err != nil {
		respondServiceError(w, r, "list auctions", err)
		return
	}

	respondJSON(w, http.StatusOK, rows)
}

// HandleListMine returns all of the caller's auctions
func (h *AuctionHandler) HandleListMine(w http.ResponseWriter, r *http.Request) {
	caller, err := identity.CallerFromContext(r.Context())
	if err != nil {
		respondServiceError(w, r, "list own auctions", err)
		return
	}

	rows, err := h.service.ListMine(r.Context(), caller)
	if err != nil {
		respondServiceError(w, r, "list own auctions", err)
		return
	}

	respondJSON(w, http.StatusOK, rows)
}

// HandleListMyBids returns auctions the caller has bid on
func (h *AuctionHandler) HandleListMyBids(w http.ResponseWriter, r *http.Request) {
	caller, err := identity.CallerFromContext(r.Context())
	if err != nil {
		respondServiceError(w, r, "list own bids", err)
		return
	}

	rows, err := h.service.ListMyBids(r.Context(), caller)
	if err != nil {
		respondServiceError(w, r, "list own bids", err)
		return
	}

	respondJSON(w, http.StatusOK, rows)
}

// AuctionDetailResponse is an auction with its bid history
type AuctionDetailResponse struct {
	Auction *domain.Auction    `json:"auction"`
	Bids    []domain.BidRecord `json:"bids"`
}

// HandleGetAuction returns a single auction with its bid history
func (h *AuctionHandler) HandleGetAuction(w http.ResponseWriter, r *http.Request) {
	caller, err := identity.CallerFromContext(r.Context())
	if err != nil {
		respondServiceError(w, r, "get auction", err)
		return
	}

	auctionID, ok := auctionIDParam(w, r)
	if !ok {
		return
	}

	auctionDetail, err := h.service.GetAuction(r.Context(), caller, auctionID)
	if err != nil {
		respondServiceError(w, r, "get auction", err)
		return
	}

	bids, err := h.service.ListBids(r.Context(), auctionID)
	if err != nil {
		respondServiceError(w, r, "get auction", err)
		return
	}

	respondJSON(w, http.StatusOK, AuctionDetailResponse{Auction: auctionDetail, Bids: bids})
}

func auctionIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr, ok := GetQueryParam(r, w, "id")
	if !ok {
		return uuid.Nil, false
	}
	auctionID, err := uuid.Parse(idStr)
	if err != nil {
		http.Error(w, ErrMsgInvalidAuctionID, http.StatusBadRequest)
		return uuid.Nil, false
	}
	return auctionID, true
}
