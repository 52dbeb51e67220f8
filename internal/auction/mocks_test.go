package auction

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/emberhall/bazaar/internal/domain"
	"github.com/emberhall/bazaar/internal/repository"
)

// MockRepository implements repository.Auction for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetAuction(ctx context.Context, auctionID uuid.UUID) (*domain.Auction, error) {
	args := m.Called(ctx, auctionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Auction), args.Error(1)
}

func (m *MockRepository) ListActiveAuctions(ctx context.Context, kind *domain.AuctionKind) ([]domain.Auction, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Auction), args.Error(1)
}

func (m *MockRepository) ListAuctionsBySeller(ctx context.Context, seller string) ([]domain.Auction, error) {
	args := m.Called(ctx, seller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Auction), args.Error(1)
}

func (m *MockRepository) ListAuctionsByBidder(ctx context.Context, bidder string) ([]domain.Auction, error) {
	args := m.Called(ctx, bidder)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Auction), args.Error(1)
}

func (m *MockRepository) ListBids(ctx context.Context, auctionID uuid.UUID) ([]domain.BidRecord, error) {
	args := m.Called(ctx, auctionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BidRecord), args.Error(1)
}

func (m *MockRepository) BeginTx(ctx context.Context) (repository.AuctionTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.AuctionTx), args.Error(1)
}

// MockTx implements repository.AuctionTx for testing
type MockTx struct {
	mock.Mock
}

func (m *MockTx) GetAccountForUpdate(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockTx) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockTx) GetInventoryForUpdate(ctx context.Context, ownerID string) (*domain.Inventory, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Inventory), args.Error(1)
}

func (m *MockTx) UpdateInventory(ctx context.Context, ownerID string, inventory domain.Inventory) error {
	args := m.Called(ctx, ownerID, inventory)
	return args.Error(0)
}

func (m *MockTx) GetAuctionForUpdate(ctx context.Context, auctionID uuid.UUID) (*domain.Auction, error) {
	args := m.Called(ctx, auctionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Auction), args.Error(1)
}

func (m *MockTx) InsertAuction(ctx context.Context, auction domain.Auction) error {
	args := m.Called(ctx, auction)
	return args.Error(0)
}

func (m *MockTx) UpdateAuction(ctx context.Context, auction domain.Auction) error {
	args := m.Called(ctx, auction)
	return args.Error(0)
}

func (m *MockTx) InsertBid(ctx context.Context, bid domain.BidRecord) error {
	args := m.Called(ctx, bid)
	return args.Error(0)
}

func (m *MockTx) GetEquipmentForUpdate(ctx context.Context, ownerID string) ([]domain.Equipment, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Equipment), args.Error(1)
}

func (m *MockTx) UpdateEquipment(ctx context.Context, equipment domain.Equipment) error {
	args := m.Called(ctx, equipment)
	return args.Error(0)
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Ensure MockTx implements repository.AuctionTx
var _ repository.AuctionTx = (*MockTx)(nil)

// MockNotifier implements Notifier for testing
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Outbid(ctx context.Context, bidder string, auctionID uuid.UUID, newAmount int64) {
	m.Called(ctx, bidder, auctionID, newAmount)
}

func (m *MockNotifier) AuctionSettled(ctx context.Context, seller, winner string, auctionID uuid.UUID, amount int64) {
	m.Called(ctx, seller, winner, auctionID, amount)
}
