package blockchain

import (
	"math/big"
	"testing"
	"time"
)

func testBalance() *Balance {
	return &Balance{
		VET:         big.NewInt(1000000000000000000),
		VTHO:        big.NewInt(500000000000000000),
		LastUpdated: time.Now(),
	}
}

func TestNewBalanceCache(t *testing.T) {
	ttl := 30 * time.Second
	cache := NewBalanceCache(ttl)

	if cache == nil {
		t.Fatal("Cache is nil")
	}

	if cache.ttl != ttl {
		t.Errorf("Expected TTL %v, got %v", ttl, cache.ttl)
	}

	if cache.balances == nil {
		t.Error("Balances map should be initialized")
	}
}

func TestCacheSetAndGet(t *testing.T) {
	cache := NewBalanceCache(30 * time.Second)
	address := "0x1234567890123456789012345678901234567890"
	balance := testBalance()

	_, found := cache.Get(address)
	if found {
		t.Error("Expected cache miss for new address")
	}

	cache.Set(address, balance)

	cachedBalance, found := cache.Get(address)
	if !found {
		t.Error("Expected cache hit after setting")
	}

	if cachedBalance.VET.Cmp(balance.VET) != 0 {
		t.Errorf("Expected VET %s, got %s", balance.VET.String(), cachedBalance.VET.String())
	}

	if cachedBalance.VTHO.Cmp(balance.VTHO) != 0 {
		t.Errorf("Expected VTHO %s, got %s", balance.VTHO.String(), cachedBalance.VTHO.String())
	}
}

func TestCacheFoldsAddressCase(t *testing.T) {
	cache := NewBalanceCache(30 * time.Second)
	lower := "0xfb6916095ca1df60bb79ce92ce3ea74c37c5d359"
	checksummed := "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"

	cache.Set(lower, testBalance())

	_, found := cache.Get(checksummed)
	if !found {
		t.Error("Expected cache hit for checksummed form of cached address")
	}

	if cache.Size() != 1 {
		t.Errorf("Expected size 1, got %d", cache.Size())
	}

	cache.Set(checksummed, testBalance())
	if cache.Size() != 1 {
		t.Errorf("Expected both casings to share one entry, got size %d", cache.Size())
	}
}

func TestCacheReturnsCopies(t *testing.T) {
	cache := NewBalanceCache(30 * time.Second)
	address := "0x1234567890123456789012345678901234567890"
	balance := testBalance()

	cache.Set(address, balance)

	// Mutating the original must not reach the cached entry.
	balance.VET.SetInt64(0)

	first, found := cache.Get(address)
	if !found {
		t.Fatal("Expected cache hit")
	}
	if first.VET.Cmp(big.NewInt(1000000000000000000)) != 0 {
		t.Errorf("Expected cached VET unchanged, got %s", first.VET.String())
	}

	// Mutating a returned copy must not reach the cached entry either.
	first.VET.SetInt64(42)

	second, found := cache.Get(address)
	if !found {
		t.Fatal("Expected cache hit")
	}
	if second.VET.Cmp(big.NewInt(1000000000000000000)) != 0 {
		t.Errorf("Expected cached VET unchanged after mutating a copy, got %s", second.VET.String())
	}
}

func TestCacheExpiration(t *testing.T) {
	cache := NewBalanceCache(100 * time.Millisecond)
	address := "0x1234567890123456789012345678901234567890"

	cache.Set(address, testBalance())

	_, found := cache.Get(address)
	if !found {
		t.Error("Expected cache hit immediately after setting")
	}

	time.Sleep(150 * time.Millisecond)

	_, found = cache.Get(address)
	if found {
		t.Error("Expected cache miss after expiration")
	}
}

func TestCacheInvalidate(t *testing.T) {
	cache := NewBalanceCache(30 * time.Second)
	address := "0x1234567890123456789012345678901234567890"

	cache.Set(address, testBalance())

	_, found := cache.Get(address)
	if !found {
		t.Error("Expected cache hit after setting")
	}

	cache.Invalidate(address)

	_, found = cache.Get(address)
	if found {
		t.Error("Expected cache miss after invalidation")
	}
}

func TestCacheClear(t *testing.T) {
	cache := NewBalanceCache(30 * time.Second)

	addresses := []string{
		"0x1234567890123456789012345678901234567890",
		"0x0987654321098765432109876543210987654321",
		"0x1111111111111111111111111111111111111111",
	}

	for _, addr := range addresses {
		cache.Set(addr, testBalance())
	}

	for _, addr := range addresses {
		_, found := cache.Get(addr)
		if !found {
			t.Errorf("Expected cache hit for address %s", addr)
		}
	}

	cache.Clear()

	for _, addr := range addresses {
		_, found := cache.Get(addr)
		if found {
			t.Errorf("Expected cache miss for address %s after clear", addr)
		}
	}
}

func TestCacheSize(t *testing.T) {
	cache := NewBalanceCache(30 * time.Second)

	if cache.Size() != 0 {
		t.Errorf("Expected size 0 for empty cache, got %d", cache.Size())
	}

	addresses := []string{
		"0x1234567890123456789012345678901234567890",
		"0x0987654321098765432109876543210987654321",
	}

	for i, addr := range addresses {
		cache.Set(addr, testBalance())
		expectedSize := i + 1
		if cache.Size() != expectedSize {
			t.Errorf("Expected size %d after adding %d entries, got %d", expectedSize, expectedSize, cache.Size())
		}
	}
}

func TestCacheIsExpired(t *testing.T) {
	cache := NewBalanceCache(100 * time.Millisecond)
	address := "0x1234567890123456789012345678901234567890"

	if !cache.IsExpired(address) {
		t.Error("Expected expired for non-existent entry")
	}

	cache.Set(address, testBalance())

	if cache.IsExpired(address) {
		t.Error("Expected not expired immediately after setting")
	}

	time.Sleep(150 * time.Millisecond)

	if !cache.IsExpired(address) {
		t.Error("Expected expired after TTL")
	}
}

func TestCacheCleanup(t *testing.T) {
	cache := NewBalanceCache(100 * time.Millisecond)

	cache.Set("addr1", testBalance())
	cache.Set("addr2", testBalance())
	cache.Set("addr3", testBalance())

	if cache.Size() != 3 {
		t.Errorf("Expected size 3, got %d", cache.Size())
	}

	time.Sleep(150 * time.Millisecond)

	cache.Cleanup()

	if cache.Size() != 0 {
		t.Errorf("Expected size 0 after cleanup, got %d", cache.Size())
	}
}

func TestCacheStopCleanupRoutine(t *testing.T) {
	cache := NewBalanceCache(time.Second)

	cache.StartCleanupRoutine(10 * time.Millisecond)
	cache.StopCleanupRoutine()

	// A second stop is a no-op rather than a panic.
	cache.StopCleanupRoutine()
}
