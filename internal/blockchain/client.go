package blockchain

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/darrenvechain/thorgo/thorest"
	"github.com/ethereum/go-ethereum/common"
)

type Client struct {
	thorClient *thorest.Client
	config     Config
	cache      *BalanceCache
	logger     *log.Logger
	mu         sync.RWMutex
	status     NetworkStatus
}

const (
	DefaultMainnetURL = "https://mainnet.veblocks.net"
	DefaultTestnetURL = "https://testnet.veblocks.net"
	DefaultTimeout    = 30 * time.Second
	DefaultRetryCount = 3
	DefaultRetryDelay = 2 * time.Second
	DefaultCacheTTL   = 30 * time.Second

	cacheCleanupInterval = 5 * time.Minute
)

func NewClient(config Config, logger *log.Logger) (*Client, error) {
	config, err := applyDefaults(config)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = log.New(io.Discard)
	}

	c := &Client{
		thorClient: thorest.NewClientFromURL(config.NodeURL),
		config:     config,
		cache:      NewBalanceCache(config.CacheTTL),
		logger:     logger,
		status: NetworkStatus{
			NodeURL:     config.NodeURL,
			Connected:   false,
			LastChecked: time.Now(),
		},
	}

	c.cache.StartCleanupRoutine(cacheCleanupInterval)

	if err := c.checkConnection(); err != nil {
		c.cache.StopCleanupRoutine()
		return nil, err
	}

	return c, nil
}

func applyDefaults(config Config) (Config, error) {
	if config.NodeURL == "" {
		switch config.Network {
		case MainNet:
			config.NodeURL = DefaultMainnetURL
		case TestNet:
			config.NodeURL = DefaultTestnetURL
		default:
			return Config{}, fmt.Errorf("unknown network: %s", config.Network)
		}
	}

	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.RetryCount == 0 {
		config.RetryCount = DefaultRetryCount
	}
	if config.RetryDelay == 0 {
		config.RetryDelay = DefaultRetryDelay
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = DefaultCacheTTL
	}

	return config, nil
}

func (c *Client) checkConnection() error {
	best, err := c.thorClient.BestBlock()
	if err != nil {
		c.updateStatus(false, 0, "")
		return NewNetworkError("failed to connect to VeChain network", err)
	}

	c.updateStatus(true, uint64(best.Number), best.ID.String())
	c.logger.Info("connected to VeChain node", "url", c.config.NodeURL, "block", best.Number)
	return nil
}

func (c *Client) updateStatus(connected bool, blockHeight uint64, networkID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.status.Connected = connected
	c.status.BlockHeight = blockHeight
	c.status.NetworkID = networkID
	c.status.LastChecked = time.Now()
}

func (c *Client) GetStatus() NetworkStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.status
}

// GetBalance returns the cached balance when fresh, otherwise fetches
// from the network and caches the result.
func (c *Client) GetBalance(address string) (*Balance, error) {
	if cached, found := c.cache.Get(address); found {
		return cached, nil
	}

	balance, err := c.fetchBalanceFromNetwork(address)
	if err != nil {
		return nil, err
	}

	c.cache.Set(address, balance)
	return balance, nil
}

func (c *Client) fetchBalanceFromNetwork(address string) (*Balance, error) {
	var lastErr error

	for attempt := 0; attempt < c.config.RetryCount; attempt++ {
		if attempt > 0 {
			time.Sleep(c.config.RetryDelay * time.Duration(attempt))
			c.logger.Debug("retrying balance fetch", "address", address, "attempt", attempt)
		}

		balance, err := c.doFetchBalance(address)
		if err == nil {
			return balance, nil
		}

		lastErr = err
		if chainErr := ClassifyError(err); chainErr != nil && !chainErr.IsRetryable() {
			break
		}
	}

	c.logger.Warn("balance fetch failed", "address", address, "err", lastErr)
	return nil, ClassifyError(lastErr)
}

// doFetchBalance reads VET and VTHO in one account call.
func (c *Client) doFetchBalance(address string) (*Balance, error) {
	account, err := c.thorClient.Account(common.HexToAddress(address))
	if err != nil {
		return nil, NewNetworkError("failed to fetch account", err)
	}

	return &Balance{
		VET:         account.Balance.ToInt(),
		VTHO:        account.Energy.ToInt(),
		LastUpdated: time.Now(),
	}, nil
}

// RefreshBalance bypasses the cache and fetches a fresh reading.
func (c *Client) RefreshBalance(address string) (*Balance, error) {
	c.cache.Invalidate(address)
	return c.GetBalance(address)
}

func (c *Client) GetCachedBalance(address string) (*Balance, bool) {
	return c.cache.Get(address)
}

func (c *Client) InvalidateCache(address string) {
	c.cache.Invalidate(address)
}

func (c *Client) Close() error {
	c.cache.StopCleanupRoutine()
	return nil
}
