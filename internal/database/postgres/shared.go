// Package postgres implements the repository interfaces against PostgreSQL.
// Row-level FOR UPDATE locks serialize concurrent operations on the same
// account, inventory, listing, or auction.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/emberhall/bazaar/internal/domain"
)

// dbtx is the subset of pgx satisfied by both *pgxpool.Pool and pgx.Tx,
// so shared query helpers work inside and outside transactions.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ---- Account helpers ----

func getAccount(ctx context.Context, db dbtx, accountID string, forUpdate bool) (*domain.Account, error) {
	query := `SELECT account_id, coins, coins_hold FROM accounts WHERE account_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var acct domain.Account
	err := db.QueryRow(ctx, query, accountID).Scan(&acct.ID, &acct.Coins, &acct.CoinsHold)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &acct, nil
}

func updateAccount(ctx context.Context, db dbtx, account domain.Account) error {
	_, err := db.Exec(ctx,
		`UPDATE accounts SET coins = $2, coins_hold = $3 WHERE account_id = $1`,
		account.ID, account.Coins, account.CoinsHold)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	return nil
}

// ---- Inventory helpers ----

func getInventory(ctx context.Context, db dbtx, ownerID string, forUpdate bool) (*domain.Inventory, error) {
	query := `SELECT items, last_update FROM inventories WHERE owner_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var itemsData []byte
	var inv domain.Inventory
	err := db.QueryRow(ctx, query, ownerID).Scan(&itemsData, &inv.LastUpdate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// A missing row is an empty inventory
			return &domain.Inventory{Items: []domain.Item{}}, nil
		}
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}

	if err := json.Unmarshal(itemsData, &inv.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal inventory: %w", err)
	}
	if inv.Items == nil {
		inv.Items = []domain.Item{}
	}
	return &inv, nil
}

func updateInventory(ctx context.Context, db dbtx, ownerID string, inventory domain.Inventory) error {
	itemsJSON, err := json.Marshal(inventory.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal inventory: %w", err)
	}

	_, err = db.Exec(ctx, `
		INSERT INTO inventories (owner_id, items, last_update)
		VALUES ($1, $2, $3)
		ON CONFLICT (owner_id) DO UPDATE SET items = $2, last_update = $3`,
		ownerID, itemsJSON, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to update inventory: %w", err)
	}
	return nil
}

// ---- Equipment helpers ----

func getEquipmentForUpdate(ctx context.Context, db dbtx, ownerID string) ([]domain.Equipment, error) {
	rows, err := db.Query(ctx,
		`SELECT owner_id, character_id, equipped FROM equipment WHERE owner_id = $1 FOR UPDATE`,
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get equipment: %w", err)
	}
	defer rows.Close()

	var result []domain.Equipment
	for rows.Next() {
		var eq domain.Equipment
		var equippedData []byte
		if err := rows.Scan(&eq.OwnerID, &eq.CharacterID, &equippedData); err != nil {
			return nil, fmt.Errorf("failed to scan equipment row: %w", err)
		}
		if err := json.Unmarshal(equippedData, &eq.Equipped); err != nil {
			return nil, fmt.Errorf("failed to unmarshal equipment: %w", err)
		}
		result = append(result, eq)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read equipment rows: %w", err)
	}
	if result == nil {
		result = []domain.Equipment{}
	}
	return result, nil
}

func updateEquipment(ctx context.Context, db dbtx, equipment domain.Equipment) error {
	equippedJSON, err := json.Marshal(equipment.Equipped)
	if err != nil {
		return fmt.Errorf("failed to marshal equipment: %w", err)
	}

	_, err = db.Exec(ctx,
		`UPDATE equipment SET equipped = $3 WHERE owner_id = $1 AND character_id = $2`,
		equipment.OwnerID, equipment.CharacterID, equippedJSON)
	if err != nil {
		return fmt.Errorf("failed to update equipment: %w", err)
	}
	return nil
}

// ---- Item snapshot helpers ----

func marshalItem(item domain.Item) ([]byte, error) {
	data, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal item: %w", err)
	}
	return data, nil
}

func unmarshalItem(data []byte) (domain.Item, error) {
	var item domain.Item
	if err := json.Unmarshal(data, &item); err != nil {
		return item, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return item, nil
}
