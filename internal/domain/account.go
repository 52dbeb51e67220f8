package domain

// Account holds a player's currency balances. Coins is the available
// balance; CoinsHold is the sum of the account's currently-winning bid
// amounts across all still-active auctions. Both are always >= 0.
type Account struct {
	ID        string `json:"account_id"`
	Coins     int64  `json:"coins"`
	CoinsHold int64  `json:"coins_hold"`
}
