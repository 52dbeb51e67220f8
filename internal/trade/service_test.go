package trade

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/emberhall/bazaar/internal/domain"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

// Test fixtures

func newTestService(repo *MockRepository, quota *MockQuota, notifier Notifier) *service {
	svc := NewService(repo, quota, notifier).(*service)
	svc.now = func() time.Time { return testNow }
	return svc
}

func rareItem(id string) domain.Item {
	// Non-consumable rare: base price 10, window [5, 15]
	return domain.Item{ID: id, Name: "Iron Saber", Rarity: domain.RarityRare}
}

func sellerInventory(items ...domain.Item) *domain.Inventory {
	return &domain.Inventory{Items: items}
}

func activeListing(seller string, price int64) *domain.Listing {
	return &domain.Listing{
		ID:        uuid.New(),
		Status:    domain.ListingActive,
		Seller:    seller,
		Price:     price,
		Item:      rareItem("itm-1"),
		CreatedAt: testNow.Add(-time.Hour),
	}
}

func expectTxLifecycle(repo *MockRepository, tx *MockTx) {
	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("Rollback", mock.Anything).Return(nil)
}

// CreateListing

func TestCreateListing_Success(t *testing.T) {
	repo := &MockRepository{}
	quota := &MockQuota{}
	tx := &MockTx{}
	svc := newTestService(repo, quota, nil)
	ctx := context.Background()

	quota.On("Increment", ctx, "seller-1", testNow).Return(int64(1), nil)
	expectTxLifecycle(repo, tx)
	tx.On("GetInventoryForUpdate", ctx, "seller-1").Return(sellerInventory(rareItem("itm-1")), nil)
	tx.On("GetEquipmentForUpdate", ctx, "seller-1").Return([]domain.Equipment{}, nil)
	tx.On("InsertListing", ctx, mock.MatchedBy(func(l domain.Listing) bool {
		return l.Status == domain.ListingActive && l.Seller == "seller-1" &&
			l.Price == 12 && l.Item.ID == "itm-1"
	})).Return(nil)
	tx.On("UpdateInventory", ctx, "seller-1", mock.MatchedBy(func(inv domain.Inventory) bool {
		return len(inv.Items) == 0
	})).Return(nil)
	tx.On("Commit", ctx).Return(nil)

	listingID, err := svc.CreateListing(ctx, "seller-1", "itm-1", 12)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, listingID)
	repo.AssertExpectations(t)
	tx.AssertExpectations(t)
	quota.AssertExpectations(t)
}

func TestCreateListing_PriceWindowBounds(t *testing.T) {
	// base 10 => window [5, 15]
	tests := []struct {
		name    string
		price   int64
		wantErr error
	}{
		{"lower bound accepted", 5, nil},
		{"upper bound accepted", 15, nil},
		{"inside accepted", 12, nil},
		{"below rejected", 4, domain.ErrInvalidPrice},
		{"above rejected", 16, domain.ErrInvalidPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockRepository{}
			quota := &MockQuota{}
			tx := &MockTx{}
			svc := newTestService(repo, quota, nil)
			ctx := context.Background()

			quota.On("Increment", ctx, "seller-1", testNow).Return(int64(1), nil)
			expectTxLifecycle(repo, tx)
			tx.On("GetInventoryForUpdate", ctx, "seller-1").Return(sellerInventory(rareItem("itm-1")), nil)
			tx.On("GetEquipmentForUpdate", ctx, "seller-1").Return([]domain.Equipment{}, nil)
			if tt.wantErr == nil {
				tx.On("InsertListing", ctx, mock.Anything).Return(nil)
				tx.On("UpdateInventory", ctx, "seller-1", mock.Anything).Return(nil)
				tx.On("Commit", ctx).Return(nil)
			} else {
				quota.On("Decrement", ctx, "seller-1", testNow).Return(nil)
			}

			_, err := svc.CreateListing(ctx, "seller-1", "itm-1", tt.price)

			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestCreateListing_NotSellable(t *testing.T) {
	repo := &MockRepository{}
	quota := &MockQuota{}
	tx := &MockTx{}
	svc := newTestService(repo, quota, nil)
	ctx := context.Background()

	// Rarity missing from the price table prices at 0
	junk := domain.Item{ID: "itm-junk", Name: "Pebble", Rarity: domain.Rarity("???")}
	quota.On("Increment", ctx, "seller-1", testNow).Return(int64(1), nil)
	quota.On("Decrement", ctx, "seller-1", testNow).Return(nil)
	expectTxLifecycle(repo, tx)
	tx.On("GetInventoryForUpdate", ctx, "seller-1").Return(sellerInventory(junk), nil)
	tx.On("GetEquipmentForUpdate", ctx, "seller-1").Return([]domain.Equipment{}, nil)

	_, err := svc.CreateListing(ctx, "seller-1", "itm-junk", 1)

	assert.ErrorIs(t, err, domain.ErrNotSellable)
	quota.AssertExpectations(t)
}

func TestCreateListing_QuotaExceeded(t *testing.T) {
	repo := &MockRepository{}
	quota := &MockQuota{}
	svc := newTestService(repo, quota, nil)
	ctx := context.Background()

	quota.On("Increment", ctx, "seller-1", testNow).Return(int64(domain.MaxDailyListings+1), nil)

	_, err := svc.CreateListing(ctx, "seller-1", "itm-1", 12)

	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)
	repo.AssertNotCalled(t, "BeginTx", mock.Anything)
}

func TestCreateListing_ItemNotFound_ReturnsQuotaSlot(t *testing.T) {
	repo := &MockRepository{}
	quota := &MockQuota{}
	tx := &MockTx{}
	svc := newTestService(repo, quota, nil)
	ctx := context.Background()

	quota.On("Increment", ctx, "seller-1", testNow).Return(int64(1), nil)
	quota.On("Decrement", ctx, "seller-1", testNow).Return(nil)
	expectTxLifecycle(repo, tx)
	tx.On("GetInventoryForUpdate", ctx, "seller-1").Return(sellerInventory(), nil)
	tx.On("GetEquipmentForUpdate", ctx, "seller-1").Return([]domain.Equipment{}, nil)

	_, err := svc.CreateListing(ctx, "seller-1", "itm-1", 12)

	assert.ErrorIs(t, err, domain.ErrItemNotFound)
	quota.AssertCalled(t, "Decrement", ctx, "seller-1", testNow)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateListing_UnequipsListedItem(t *testing.T) {
	repo := &MockRepository{}
	quota := &MockQuota{}
	tx := &MockTx{}
	svc := newTestService(repo, quota, nil)
	ctx := context.Background()

	equipment := []domain.Equipment{
		{OwnerID: "seller-1", CharacterID: "char-1", Equipped: []domain.ItemRef{"itm-1", "itm-2"}},
	}
	quota.On("Increment", ctx, "seller-1", testNow).Return(int64(1), nil)
	expectTxLifecycle(repo, tx)
	tx.On("GetInventoryForUpdate", ctx, "seller-1").Return(sellerInventory(rareItem("itm-1")), nil)
	tx.On("GetEquipmentForUpdate", ctx, "seller-1").Return(equipment, nil)
	tx.On("InsertListing", ctx, mock.Anything).Return(nil)
	tx.On("UpdateInventory", ctx, "seller-1", mock.Anything).Return(nil)
	tx.On("UpdateEquipment", ctx, mock.MatchedBy(func(eq domain.Equipment) bool {
		return len(eq.Equipped) == 1 && eq.Equipped[0] == "itm-2"
	})).Return(nil)
	tx.On("Commit", ctx).Return(nil)

	_, err := svc.CreateListing(ctx, "seller-1", "itm-1", 12)

	require.NoError(t, err)
	tx.AssertExpectations(t)
}

// CancelListing

func TestCancelListing_Success(t *testing.T) {
	repo := &MockRepository{}
	tx := &MockTx{}
	svc := newTestService(repo, &MockQuota{}, nil)
	ctx := context.Background()

	listing := activeListing("seller-1", 12)
	expectTxLifecycle(repo, tx)
	tx.On("GetListingForUpdate", ctx, listing.ID).Return(listing, nil)
	tx.On("GetInventoryForUpdate", ctx, "seller-1").Return(sellerInventory(), nil)
	tx.On("UpdateInventory", ctx, "seller-1", mock.MatchedBy(func(inv domain.Inventory) bool {
		return len(inv.Items) == 1 && inv.Items[0].ID == "itm-1"
	})).Return(nil)
	tx.On("UpdateListing", ctx, mock.MatchedBy(func(l domain.Listing) bool {
		return l.Status == domain.ListingCancelled && l.ClosedAt != nil
	})).Return(nil)
	tx.On("Commit", ctx).Return(nil)

	err := svc.CancelListing(ctx, "seller-1", listing.ID)

	require.NoError(t, err)
	tx.AssertExpectations(t)
}

func TestCancelListing_NotOwner(t *testing.T) {
	repo := &MockRepository{}
	tx := &MockTx{}
	svc := newTestService(repo, &MockQuota{}, nil)
	ctx := context.Background()

	listing := activeListing("seller-1", 12)
	expectTxLifecycle(repo, tx)
	tx.On("GetListingForUpdate", ctx, listing.ID).Return(listing, nil)

	err := svc.CancelListing(ctx, "intruder", listing.ID)

	assert.ErrorIs(t, err, domain.ErrNotOwner)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCancelListing_AlreadyFinalized(t *testing.T) {
	repo := &MockRepository{}
	tx := &MockTx{}
	svc := newTestService(repo, &MockQuota{}, nil)
	ctx := context.Background()

	listing := activeListing("seller-1", 12)
	listing.Status = domain.ListingSold
	expectTxLifecycle(repo, tx)
	tx.On("GetListingForUpdate", ctx, listing.ID).Return(listing, nil)

	err := svc.CancelListing(ctx, "seller-1", listing.ID)

	assert.ErrorIs(t, err, domain.ErrAlreadyFinalized)
}

func TestCancelListing_NotFound(t *testing.T) {
	repo := &MockRepository{}
	tx := &MockTx{}
	svc := newTestService(repo, &MockQuota{}, nil)
	ctx := context.Background()

	listingID := uuid.New()
	expectTxLifecycle(repo, tx)
	tx.On("GetListingForUpdate", ctx, listingID).Return(nil, nil)

	err := svc.CancelListing(ctx, "seller-1", listingID)

	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}

// Buy

func TestBuy_Success(t *testing.T) {
	repo := &MockRepository{}
	tx := &MockTx{}
	notifier := &MockNotifier{}
	svc := newTestService(repo, &MockQuota{}, notifier)
	ctx := context.Background()

	listing := activeListing("seller-1", 12)
	buyer := &domain.Account{ID: "buyer-1", Coins: 50}
	sellerAcct := &domain.Account{ID: "seller-1", Coins: 5}

	expectTxLifecycle(repo, tx)
	tx.On("GetListingForUpdate", ctx, listing.ID).Return(listing, nil)
	tx.On("GetAccountForUpdate", ctx, "buyer-1").Return(buyer, nil)
	tx.On("GetAccountForUpdate", ctx, "seller-1").Return(sellerAcct, nil)
	tx.On("UpdateAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.ID == "buyer-1" && a.Coins == 38
	})).Return(nil)
	tx.On("UpdateAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.ID == "seller-1" && a.Coins == 17
	})).Return(nil)
	tx.On("GetInventoryForUpdate", ctx, "buyer-1").Return(sellerInventory(), nil)
	tx.On("UpdateInventory", ctx, "buyer-1", mock.MatchedBy(func(inv domain.Inventory) bool {
		return len(inv.Items) == 1 && inv.Items[0].ID == "itm-1"
	})).Return(nil)
	tx.On("UpdateListing", ctx, mock.MatchedBy(func(l domain.Listing) bool {
		return l.Status == domain.ListingSold && l.Buyer != nil && *l.Buyer == "buyer-1"
	})).Return(nil)
	tx.On("Commit", ctx).Return(nil)
	notifier.On("ListingSold", ctx, "seller-1", listing.ID, "Iron Saber", int64(12)).Return()

	err := svc.Buy(ctx, "buyer-1", listing.ID)

	require.NoError(t, err)
	tx.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestBuy_SelfTrade(t *testing.T) {
	repo := &MockRepository{}
	tx := &MockTx{}
	svc := newTestService(repo, &MockQuota{}, nil)
	ctx := context.Background()

	listing := activeListing("seller-1", 12)
	expectTxLifecycle(repo, tx)
	tx.On("GetListingForUpdate", ctx, listing.ID).Return(listing, nil)

	err := svc.Buy(ctx, "seller-1", listing.ID)

	assert.ErrorIs(t, err, domain.ErrSelfTrade)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestBuy_InsufficientFunds(t *testing.T) {
	repo := &MockRepository{}
	tx := &MockTx{}
	svc := newTestService(repo, &MockQuota{}, nil)
	ctx := context.Background()

	listing := activeListing("seller-1", 12)
	buyer := &domain.Account{ID: "buyer-1", Coins: 11}
	sellerAcct := &domain.Account{ID: "seller-1", Coins: 0}

	expectTxLifecycle(repo, tx)
	tx.On("GetListingForUpdate", ctx, listing.ID).Return(listing, nil)
	tx.On("GetAccountForUpdate", ctx, "buyer-1").Return(buyer, nil)
	tx.On("GetAccountForUpdate", ctx, "seller-1").Return(sellerAcct, nil)

	err := svc.Buy(ctx, "buyer-1", listing.ID)

	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	tx.AssertNotCalled(t, "UpdateAccount", mock.Anything, mock.Anything)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestBuy_AlreadyFinalized(t *testing.T) {
	repo := &MockRepository{}
	tx := &MockTx{}
	svc := newTestService(repo, &MockQuota{}, nil)
	ctx := context.Background()

	listing := activeListing("seller-1", 12)
	listing.Status = domain.ListingCancelled
	expectTxLifecycle(repo, tx)
	tx.On("GetListingForUpdate", ctx, listing.ID).Return(listing, nil)

	err := svc.Buy(ctx, "buyer-1", listing.ID)

	assert.ErrorIs(t, err, domain.ErrAlreadyFinalized)
}

// Queries

func TestListPublic_CachesFeed(t *testing.T) {
	repo := &MockRepository{}
	svc := newTestService(repo, &MockQuota{}, nil)
	ctx := context.Background()

	listing := activeListing("seller-1", 12)
	repo.On("ListActiveListings", ctx).Return([]domain.Listing{*listing}, nil).Once()

	first, err := svc.ListPublic(ctx)
	require.NoError(t, err)
	second, err := svc.ListPublic(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "Iron Saber", first[0].ItemName)
	repo.AssertExpectations(t) // repo hit exactly once
}

func TestGetListing_NotFound(t *testing.T) {
	repo := &MockRepository{}
	svc := newTestService(repo, &MockQuota{}, nil)
	ctx := context.Background()

	listingID := uuid.New()
	repo.On("GetListing", ctx, listingID).Return(nil, nil)

	_, err := svc.GetListing(ctx, listingID)

	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}
