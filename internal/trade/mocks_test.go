package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/emberhall/bazaar/internal/domain"
	"github.com/emberhall/bazaar/internal/repository"
)

// MockRepository implements repository.Trade for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetListing(ctx context.Context, listingID uuid.UUID) (*domain.Listing, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockRepository) ListActiveListings(ctx context.Context) ([]domain.Listing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Listing), args.Error(1)
}

func (m *MockRepository) ListListingsBySeller(ctx context.Context, seller string) ([]domain.Listing, error) {
	args := m.Called(ctx, seller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Listing), args.Error(1)
}

func (m *MockRepository) BeginTx(ctx context.Context) (repository.TradeTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.TradeTx), args.Error(1)
}

// MockTx implements repository.TradeTx for testing
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

func (m *MockTx) GetListingForUpdate(ctx context.Context, listingID uuid.UUID) (*domain.Listing, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockTx) InsertListing(ctx context.Context, listing domain.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *MockTx) UpdateListing(ctx context.Context, listing domain.Listing) error {
	args := m.Called(ctx, listing)
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

// Ensure MockTx implements repository.TradeTx
var _ repository.TradeTx = (*MockTx)(nil)

// MockQuota implements QuotaCounter for testing
type MockQuota struct {
	mock.Mock
}

func (m *MockQuota) Increment(ctx context.Context, seller string, day time.Time) (int64, error) {
	args := m.Called(ctx, seller, day)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuota) Decrement(ctx context.Context, seller string, day time.Time) error {
	args := m.Called(ctx, seller, day)
	return args.Error(0)
}

// MockNotifier implements Notifier for testing
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) ListingSold(ctx context.Context, seller string, listingID uuid.UUID, itemName string, price int64) {
	m.Called(ctx, seller, listingID, itemName, price)
}
