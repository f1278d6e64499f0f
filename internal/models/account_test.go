package models

import (
	"math/big"
	"testing"
	"time"
)

func TestAccountSetBalance(t *testing.T) {
	account := &Account{
		ID:      "test-account",
		Name:    "Test Account",
		Address: "0x1234567890123456789012345678901234567890",
	}

	vetBalance := big.NewInt(1000000000000000000) // 1 VET in wei
	vthoBalance := big.NewInt(500000000000000000) // 0.5 VTHO in wei

	account.SetBalance(vetBalance, vthoBalance)

	if account.CachedBalance == nil {
		t.Fatal("CachedBalance should not be nil after SetBalance")
	}

	if account.CachedBalance.VET.Cmp(vetBalance) != 0 {
		t.Errorf("Expected VET balance %s, got %s", vetBalance.String(), account.CachedBalance.VET.String())
	}

	if account.CachedBalance.VTHO.Cmp(vthoBalance) != 0 {
		t.Errorf("Expected VTHO balance %s, got %s", vthoBalance.String(), account.CachedBalance.VTHO.String())
	}

	if account.LastSync.IsZero() {
		t.Error("LastSync should be set after SetBalance")
	}

	if account.CachedBalance.LastUpdated.IsZero() {
		t.Error("LastUpdated should be set after SetBalance")
	}

	// Mutating the input must not reach the cached copy
	vetBalance.SetInt64(0)
	if account.CachedBalance.VET.Cmp(big.NewInt(1000000000000000000)) != 0 {
		t.Error("CachedBalance.VET should be a copy of the input")
	}
}

func TestAccountGetDisplayBalance(t *testing.T) {
	account := &Account{
		ID:      "test-account",
		Name:    "Test Account",
		Address: "0x1234567890123456789012345678901234567890",
	}

	// Test with no balance set
	vetDisplay, vthoDisplay := account.GetDisplayBalance()
	if vetDisplay != "0" {
		t.Errorf("Expected VET display '0', got '%s'", vetDisplay)
	}
	if vthoDisplay != "0" {
		t.Errorf("Expected VTHO display '0', got '%s'", vthoDisplay)
	}

	// Test with balance set
	vetBalance := big.NewInt(1000000000000000000) // 1 VET in wei
	vthoBalance := big.NewInt(500000000000000000) // 0.5 VTHO in wei

	account.SetBalance(vetBalance, vthoBalance)

	vetDisplay, vthoDisplay = account.GetDisplayBalance()
	if vetDisplay != "1.0000" {
		t.Errorf("Expected VET display '1.0000', got '%s'", vetDisplay)
	}
	if vthoDisplay != "0.5000" {
		t.Errorf("Expected VTHO display '0.5000', got '%s'", vthoDisplay)
	}

	// Test with larger amounts
	vetBalance = big.NewInt(0).Mul(big.NewInt(12345), big.NewInt(1000000000000000000)) // 12345 VET
	vthoBalance = big.NewInt(0).Mul(big.NewInt(6789), big.NewInt(1000000000000000000)) // 6789 VTHO

	account.SetBalance(vetBalance, vthoBalance)

	vetDisplay, vthoDisplay = account.GetDisplayBalance()
	if vetDisplay != "12345.0000" {
		t.Errorf("Expected VET display '12345.0000', got '%s'", vetDisplay)
	}
	if vthoDisplay != "6789.0000" {
		t.Errorf("Expected VTHO display '6789.0000', got '%s'", vthoDisplay)
	}
}

func TestAccountNeedsBalanceRefresh(t *testing.T) {
	account := &Account{
		ID:      "test-account",
		Name:    "Test Account",
		Address: "0x1234567890123456789012345678901234567890",
	}

	// Test with no balance set
	if !account.NeedsBalanceRefresh() {
		t.Error("Expected account to need balance refresh when no balance is set")
	}

	// Test with fresh balance
	vetBalance := big.NewInt(1000000000000000000)
	vthoBalance := big.NewInt(500000000000000000)
	account.SetBalance(vetBalance, vthoBalance)

	if account.NeedsBalanceRefresh() {
		t.Error("Expected account to not need balance refresh when balance is fresh")
	}

	// Test with old balance
	account.CachedBalance.LastUpdated = time.Now().Add(-31 * time.Second) // 31 seconds ago

	if !account.NeedsBalanceRefresh() {
		t.Error("Expected account to need balance refresh when balance is old")
	}
}

func TestAccountGetBalanceAge(t *testing.T) {
	account := &Account{
		ID:      "test-account",
		Name:    "Test Account",
		Address: "0x1234567890123456789012345678901234567890",
	}

	// Test with no balance set
	age := account.GetBalanceAge()
	if age != 0 {
		t.Errorf("Expected balance age 0 when no balance is set, got %v", age)
	}

	// Test with balance set
	vetBalance := big.NewInt(1000000000000000000)
	vthoBalance := big.NewInt(500000000000000000)
	account.SetBalance(vetBalance, vthoBalance)

	age = account.GetBalanceAge()
	if age < 0 {
		t.Errorf("Expected positive balance age, got %v", age)
	}

	if age > 1*time.Second {
		t.Errorf("Expected balance age to be very small (just set), got %v", age)
	}

	// Test with old balance
	oldTime := time.Now().Add(-5 * time.Minute)
	account.CachedBalance.LastUpdated = oldTime

	age = account.GetBalanceAge()

	// Allow for some variance in timing (should be around 5 minutes)
	if age < 4*time.Minute || age > 6*time.Minute {
		t.Errorf("Expected balance age around 5 minutes, got %v", age)
	}
}

func TestAccountClearBalance(t *testing.T) {
	account := &Account{
		ID:      "test-account",
		Name:    "Test Account",
		Address: "0x1234567890123456789012345678901234567890",
	}

	// Set balance first
	vetBalance := big.NewInt(1000000000000000000)
	vthoBalance := big.NewInt(500000000000000000)
	account.SetBalance(vetBalance, vthoBalance)

	if account.CachedBalance == nil {
		t.Fatal("CachedBalance should not be nil after SetBalance")
	}

	// Clear balance
	account.ClearBalance()

	if account.CachedBalance != nil {
		t.Error("CachedBalance should be nil after ClearBalance")
	}

	// Test that GetDisplayBalance returns "0" after clearing
	vetDisplay, vthoDisplay := account.GetDisplayBalance()
	if vetDisplay != "0" {
		t.Errorf("Expected VET display '0' after clear, got '%s'", vetDisplay)
	}
	if vthoDisplay != "0" {
		t.Errorf("Expected VTHO display '0' after clear, got '%s'", vthoDisplay)
	}
}

func TestNewAccount(t *testing.T) {
	address := "0x1234567890123456789012345678901234567890"
	name := "Test Account"

	account, err := NewAccount(name, address)
	if err != nil {
		t.Fatalf("Failed to create account: %v", err)
	}

	if account.Name != name {
		t.Errorf("Expected account name '%s', got '%s'", name, account.Name)
	}

	if account.Address == "" {
		t.Error("Account address should not be empty")
	}

	if account.ID == "" {
		t.Error("Account ID should not be empty")
	}

	if account.CreatedAt.IsZero() {
		t.Error("Account CreatedAt should not be zero")
	}

	// Test that CachedBalance is initially nil
	if account.CachedBalance != nil {
		t.Error("CachedBalance should be nil for new account")
	}

	// Test that LastSync is initially zero
	if !account.LastSync.IsZero() {
		t.Error("LastSync should be zero for new account")
	}
}

func TestNewAccountInvalidAddress(t *testing.T) {
	_, err := NewAccount("Bad", "not-an-address")
	if err == nil {
		t.Error("Expected error for invalid address, got nil")
	}

	_, err = NewAccount("Short", "0x1234")
	if err == nil {
		t.Error("Expected error for short address, got nil")
	}
}

func TestNewAccountChecksumsAddress(t *testing.T) {
	lower := "0xfb6916095ca1df60bb79ce92ce3ea74c37c5d359"

	account, err := NewAccount("Checksum", lower)
	if err != nil {
		t.Fatalf("Failed to create account: %v", err)
	}

	if account.Address != "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359" {
		t.Errorf("Expected checksummed address, got '%s'", account.Address)
	}
}

func TestGenerateID(t *testing.T) {
	id1 := generateID()
	time.Sleep(2 * time.Millisecond)
	id2 := generateID()

	if id1 == "" {
		t.Error("Generated ID should not be empty")
	}

	if id2 == "" {
		t.Error("Generated ID should not be empty")
	}

	if id1 == id2 {
		t.Error("Generated IDs should be different")
	}
}
