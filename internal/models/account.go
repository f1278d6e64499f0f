package models

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Account is a watched address. It carries no key material; balances
// are cached display state fetched by the blockchain client.
type Account struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Address       string         `json:"address"`
	CreatedAt     time.Time      `json:"created_at"`
	CachedBalance *CachedBalance `json:"-"`
	LastSync      time.Time      `json:"last_sync"`
}

type CachedBalance struct {
	VET         *big.Int
	VTHO        *big.Int
	LastUpdated time.Time
}

func NewAccount(name, address string) (*Account, error) {
	address = strings.TrimSpace(address)
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("invalid address: %s", address)
	}

	return &Account{
		ID:        generateID(),
		Name:      strings.TrimSpace(name),
		Address:   common.HexToAddress(address).Hex(),
		CreatedAt: time.Now(),
	}, nil
}

func generateID() string {
	return "account_" + time.Now().Format("20060102150405.000000")
}

func (a *Account) SetBalance(vetBalance, vthoBalance *big.Int) {
	a.CachedBalance = &CachedBalance{
		VET:         new(big.Int).Set(vetBalance),
		VTHO:        new(big.Int).Set(vthoBalance),
		LastUpdated: time.Now(),
	}
	a.LastSync = time.Now()
}

func (a *Account) GetDisplayBalance() (string, string) {
	if a.CachedBalance == nil {
		return "0", "0"
	}

	// Convert from wei to VET/VTHO (divide by 10^18)
	vetWei := new(big.Float).SetInt(a.CachedBalance.VET)
	vthoWei := new(big.Float).SetInt(a.CachedBalance.VTHO)

	divisor := new(big.Float).SetFloat64(1e18)

	vetBalance := new(big.Float).Quo(vetWei, divisor)
	vthoBalance := new(big.Float).Quo(vthoWei, divisor)

	return fmt.Sprintf("%.4f", vetBalance), fmt.Sprintf("%.4f", vthoBalance)
}

func (a *Account) NeedsBalanceRefresh() bool {
	if a.CachedBalance == nil {
		return true
	}
	return time.Since(a.CachedBalance.LastUpdated) > 30*time.Second
}

func (a *Account) GetBalanceAge() time.Duration {
	if a.CachedBalance == nil {
		return time.Duration(0)
	}
	return time.Since(a.CachedBalance.LastUpdated)
}

func (a *Account) ClearBalance() {
	a.CachedBalance = nil
}
