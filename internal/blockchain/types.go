package blockchain

import (
	"math/big"
	"sync"
	"time"
)

type Network string

const (
	MainNet Network = "mainnet"
	TestNet Network = "testnet"
)

type Config struct {
	Network    Network
	NodeURL    string
	Timeout    time.Duration
	RetryCount int
	RetryDelay time.Duration
	CacheTTL   time.Duration
}

// Balance is a point-in-time VET/VTHO reading. Values are in wei.
type Balance struct {
	VET         *big.Int
	VTHO        *big.Int
	LastUpdated time.Time
}

// BalanceCache holds recent balance readings keyed by lowercased
// address. Get and Set copy, so callers can never mutate an entry
// another caller holds.
type BalanceCache struct {
	balances    map[string]*Balance
	mu          sync.RWMutex
	ttl         time.Duration
	stopCleanup chan struct{}
}

type ErrorType string

const (
	ErrNetworkConnection ErrorType = "network_connection"
	ErrInvalidAddress    ErrorType = "invalid_address"
	ErrNodeUnavailable   ErrorType = "node_unavailable"
	ErrRateLimited       ErrorType = "rate_limited"
	ErrTimeout           ErrorType = "timeout"
)

type ChainError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ChainError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ChainError) Unwrap() error {
	return e.Cause
}

type NetworkStatus struct {
	Connected   bool
	NodeURL     string
	LastChecked time.Time
	BlockHeight uint64
	NetworkID   string
}
