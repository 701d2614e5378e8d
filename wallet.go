package sdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Wallet is the platform-side balance backing a player's AI usage.
type Wallet struct {
	PlayerID     uuid.UUID `json:"player_id"`
	BalanceCents int64     `json:"balance_cents"`
	Currency     string    `json:"currency"`
	Frozen       bool      `json:"frozen"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// WalletLedgerEntry is a single credit or debit in the wallet history.
type WalletLedgerEntry struct {
	ID          uuid.UUID `json:"id"`
	AmountCents int64     `json:"amount_cents"`
	Reason      string    `json:"reason"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// MaxWalletHistoryLimit caps ledger pagination.
const MaxWalletHistoryLimit int32 = 100

// WalletHistoryOptions controls ledger pagination.
type WalletHistoryOptions struct {
	Limit  int32
	Offset int32
}

type walletResponse struct {
	Wallet Wallet `json:"wallet"`
}

type walletLedgerResponse struct {
	Entries []WalletLedgerEntry `json:"entries"`
}

// WalletClient provides read access to player wallets. Charging and top-ups
// happen on the platform side; this client only observes.
type WalletClient struct {
	client *Client
}

func (c *WalletClient) ensureInitialized() error {
	if c == nil || c.client == nil {
		return fmt.Errorf("sdk: wallet client not initialized")
	}
	return nil
}

// Get returns the wallet snapshot for a player.
func (c *WalletClient) Get(ctx context.Context, playerID uuid.UUID) (Wallet, error) {
	if err := c.ensureInitialized(); err != nil {
		return Wallet{}, err
	}
	if playerID == uuid.Nil {
		return Wallet{}, fmt.Errorf("sdk: player_id is required")
	}
	path := "/players/" + playerID.String() + "/wallet"
	var payload walletResponse
	if err := c.client.sendAndDecode(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return Wallet{}, err
	}
	return payload.Wallet, nil
}

// History returns the wallet's ledger entries, newest first.
func (c *WalletClient) History(ctx context.Context, playerID uuid.UUID, opts WalletHistoryOptions) ([]WalletLedgerEntry, error) {
	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}
	if playerID == uuid.Nil {
		return nil, fmt.Errorf("sdk: player_id is required")
	}
	if opts.Limit < 0 || opts.Offset < 0 {
		return nil, fmt.Errorf("sdk: limit and offset must be non-negative")
	}
	if opts.Limit > MaxWalletHistoryLimit {
		return nil, fmt.Errorf("sdk: limit exceeds maximum (%d)", MaxWalletHistoryLimit)
	}
	params := url.Values{}
	if opts.Limit > 0 {
		params.Set("limit", strconv.FormatInt(int64(opts.Limit), 10))
	}
	if opts.Offset > 0 {
		params.Set("offset", strconv.FormatInt(int64(opts.Offset), 10))
	}
	path := "/players/" + playerID.String() + "/wallet/history"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}
	var payload walletLedgerResponse
	if err := c.client.sendAndDecode(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Entries, nil
}
