package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/emberhall/bazaar/internal/domain"
)

// MockAuctionService implements auction.Service for testing
type MockAuctionService struct {
	mock.Mock
}

func (m *MockAuctionService) CreateAuction(ctx context.Context, seller, itemID string, kind domain.AuctionKind, minBid int64, durationMinutes int) (uuid.UUID, error) {
	args := m.Called(ctx, seller, itemID, kind, minBid, durationMinutes)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockAuctionService) Bid(ctx context.Context, caller string, auctionID uuid.UUID, amount int64) error {
	args := m.Called(ctx, caller, auctionID, amount)
	return args.Error(0)
}

func (m *MockAuctionService) Settle(ctx context.Context, caller string, auctionID uuid.UUID) error {
	args := m.Called(ctx, caller, auctionID)
	return args.Error(0)
}

func (m *MockAuctionService) ListPublic(ctx context.Context, viewer string, kind *domain.AuctionKind) ([]domain.AuctionSummary, error) {
	args := m.Called(ctx, viewer, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuctionSummary), args.Error(1)
}

func (m *MockAuctionService) ListMine(ctx context.Context, caller string) ([]domain.AuctionSummary, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuctionSummary), args.Error(1)
}

func (m *MockAuctionService) ListMyBids(ctx context.Context, caller string) ([]domain.AuctionSummary, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuctionSummary), args.Error(1)
}

func (m *MockAuctionService) GetAuction(ctx context.Context, viewer string, auctionID uuid.UUID) (*domain.Auction, error) {
	args := m.Called(ctx, viewer, auctionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Auction), args.Error(1)
}

func (m *MockAuctionService) ListBids(ctx context.Context, auctionID uuid.UUID) ([]domain.BidRecord, error) {
	args := m.Called(ctx, auctionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BidRecord), args.Error(1)
}

func TestHandleCreateAuction(t *testing.T) {
	auctionID := uuid.MustParse("00000000-0000-0000-0000-000000000002")

	tests := []struct {
		name           string
		caller         string
		reqBody        interface{}
		setupMock      func(*MockAuctionService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Unauthenticated",
			caller:         "",
			reqBody:        CreateAuctionRequest{ItemID: "itm-1", Kind: "normal", MinBid: 20, DurationMinutes: 60},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Bad kind",
			caller:         "seller-1",
			reqBody:        CreateAuctionRequest{ItemID: "itm-1", Kind: "mystery", MinBid: 20, DurationMinutes: 60},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Must be one of",
		},
		{
			// short durations reach the service, which floors them
			name:    "Short duration accepted",
			caller:  "seller-1",
			reqBody: CreateAuctionRequest{ItemID: "itm-1", Kind: "normal", MinBid: 20, DurationMinutes: 10},
			setupMock: func(m *MockAuctionService) {
				m.On("CreateAuction", mock.Anything, "seller-1", "itm-1", domain.AuctionNormal, int64(20), 10).
					Return(auctionID, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:    "Success",
			caller:  "seller-1",
			reqBody: CreateAuctionRequest{ItemID: "itm-1", Kind: "special", MinBid: 20, DurationMinutes: 60},
			setupMock: func(m *MockAuctionService) {
				m.On("CreateAuction", mock.Anything, "seller-1", "itm-1", domain.AuctionSpecial, int64(20), 60).
					Return(auctionID, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"auction_id":"00000000-0000-0000-0000-000000000002"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockAuctionService{}
			if tt.setupMock != nil {
				tt.setupMock(svc)
			}
			handler := NewAuctionHandler(svc)

			body, _ := json.Marshal(tt.reqBody)
			req := authedRequest("POST", "/api/v1/auction/create", body, tt.caller)
			rec := httptest.NewRecorder()

			handler.HandleCreateAuction(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, rec.Body.String(), tt.expectedBody)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestHandleBid(t *testing.T) {
	auctionID := uuid.New()

	tests := []struct {
		name           string
		reqBody        BidRequest
		setupMock      func(*MockAuctionService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "Bid too low",
			reqBody: BidRequest{AuctionID: auctionID, Amount: 5},
			setupMock: func(m *MockAuctionService) {
				m.On("Bid", mock.Anything, "bidder-1", auctionID, int64(5)).Return(domain.ErrBidTooLow)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgBidTooLowError,
		},
		{
			name:    "Bidding ended",
			reqBody: BidRequest{AuctionID: auctionID, Amount: 100},
			setupMock: func(m *MockAuctionService) {
				m.On("Bid", mock.Anything, "bidder-1", auctionID, int64(100)).Return(domain.ErrAuctionClosed)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   ErrMsgAuctionClosedError,
		},
		{
			name:    "Success",
			reqBody: BidRequest{AuctionID: auctionID, Amount: 100},
			setupMock: func(m *MockAuctionService) {
				m.On("Bid", mock.Anything, "bidder-1", auctionID, int64(100)).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   MsgBidAcceptedSuccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockAuctionService{}
			if tt.setupMock != nil {
				tt.setupMock(svc)
			}
			handler := NewAuctionHandler(svc)

			body, _ := json.Marshal(tt.reqBody)
			req := authedRequest("POST", "/api/v1/auction/bid", body, "bidder-1")
			rec := httptest.NewRecorder()

			handler.HandleBid(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandleSettle(t *testing.T) {
	auctionID := uuid.New()

	tests := []struct {
		name           string
		caller         string
		reqBody        SettleAuctionRequest
		setupMock      func(*MockAuctionService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Missing auction id",
			caller:         "seller-1",
			reqBody:        SettleAuctionRequest{},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "This field is required",
		},
		{
			name:    "Not the seller",
			caller:  "intruder",
			reqBody: SettleAuctionRequest{AuctionID: auctionID},
			setupMock: func(m *MockAuctionService) {
				m.On("Settle", mock.Anything, "intruder", auctionID).Return(domain.ErrNotOwner)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   ErrMsgNotOwnerError,
		},
		{
			name:    "Still open",
			caller:  "seller-1",
			reqBody: SettleAuctionRequest{AuctionID: auctionID},
			setupMock: func(m *MockAuctionService) {
				m.On("Settle", mock.Anything, "seller-1", auctionID).Return(domain.ErrAuctionStillOpen)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   ErrMsgAuctionStillOpenError,
		},
		{
			name:    "Success",
			caller:  "seller-1",
			reqBody: SettleAuctionRequest{AuctionID: auctionID},
			setupMock: func(m *MockAuctionService) {
				m.On("Settle", mock.Anything, "seller-1", auctionID).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   MsgAuctionSettledSuccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockAuctionService{}
			if tt.setupMock != nil {
				tt.setupMock(svc)
			}
			handler := NewAuctionHandler(svc)

			body, _ := json.Marshal(tt.reqBody)
			req := authedRequest("POST", "/api/v1/auction/settle", body, tt.caller)
			rec := httptest.NewRecorder()

			handler.HandleSettle(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandleListPublic_KindFilter(t *testing.T) {
	svc := &MockAuctionService{}
	handler := NewAuctionHandler(svc)

	special := domain.AuctionSpecial
	svc.On("ListPublic", mock.Anything, "viewer-1", &special).Return([]domain.AuctionSummary{
		{ID: uuid.New(), Kind: domain.AuctionSpecial, MinBid: 20},
	}, nil)

	req := authedRequest("GET", "/api/v1/auction/list?kind=special", nil, "viewer-1")
	rec := httptest.NewRecorder()

	handler.HandleListPublic(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandleListPublic_RejectsUnknownKind(t *testing.T) {
	svc := &MockAuctionService{}
	handler := NewAuctionHandler(svc)

	req := authedRequest("GET", "/api/v1/auction/list?kind=mystery", nil, "viewer-1")
	rec := httptest.NewRecorder()

	handler.HandleListPublic(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "ListPublic", mock.Anything, mock.Anything, mock.Anything)
}
