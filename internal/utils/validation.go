package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ValidateAccountName validates account name format
func ValidateAccountName(name string) []string {
	var issues []string

	name = strings.TrimSpace(name)
	if len(name) == 0 {
		issues = append(issues, "Account name cannot be empty")
		return issues
	}

	if len(name) < 3 {
		issues = append(issues, "Account name must be at least 3 characters long")
	}

	if len(name) > 50 {
		issues = append(issues, "Account name must be less than 50 characters")
	}

	// Check for valid characters (alphanumeric, spaces, hyphens, underscores)
	validName := regexp.MustCompile(`^[a-zA-Z0-9\s\-_]+$`)
	if !validName.MatchString(name) {
		issues = append(issues, "Account name can only contain letters, numbers, spaces, hyphens, and underscores")
	}

	return issues
}

// ValidateVeChainAddress validates a VeChain address format and checksum
func ValidateVeChainAddress(address string) error {
	address = strings.TrimSpace(address)

	// Check if empty
	if address == "" {
		return fmt.Errorf("address cannot be empty")
	}

	// Check if it starts with 0x
	if !strings.HasPrefix(address, "0x") {
		return fmt.Errorf("address must start with 0x")
	}

	// Check length (0x + 40 hex characters = 42 total)
	if len(address) != 42 {
		return fmt.Errorf("address must be exactly 42 characters long")
	}

	// Check if it contains only valid hex characters
	hexPattern := regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)
	if !hexPattern.MatchString(address) {
		return fmt.Errorf("address contains invalid characters")
	}

	// Check if it's not the zero address
	if address == "0x0000000000000000000000000000000000000000" {
		return fmt.Errorf("cannot use the zero address")
	}

	// Validate checksum using ethereum common package
	if !common.IsHexAddress(address) {
		return fmt.Errorf("invalid address format")
	}

	return nil
}
