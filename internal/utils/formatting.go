package utils

import (
	"fmt"
	"math/big"
	"strings"
	"time"
)

// FormatAddress truncates an address for display purposes
func FormatAddress(address string, prefixLen, suffixLen int) string {
	if len(address) <= prefixLen+suffixLen {
		return address
	}

	return address[:prefixLen] + "..." + address[len(address)-suffixLen:]
}

// FormatAddressWithName formats an address with an optional name
func FormatAddressWithName(address, name string) string {
	if name != "" {
		return fmt.Sprintf("%s (%s)", name, FormatAddress(address, 6, 4))
	}
	return FormatAddress(address, 10, 8)
}

// FormatAmount converts a wei amount to a decimal string
func FormatAmount(amount *big.Int, decimals int) string {
	if amount == nil {
		return "0"
	}

	value := new(big.Float).SetInt(amount)
	divisor := new(big.Float).SetFloat64(1e18)
	value.Quo(value, divisor)

	format := fmt.Sprintf("%%.%df", decimals)
	return fmt.Sprintf(format, value)
}

// FormatBalanceWithCommas formats a balance with comma separators
func FormatBalanceWithCommas(amount *big.Int, symbol string, decimals int) string {
	if amount == nil {
		return fmt.Sprintf("0 %s", symbol)
	}

	formatted := FormatAmount(amount, decimals)
	parts := strings.Split(formatted, ".")

	// Add commas to integer part
	intPart := parts[0]
	if len(intPart) > 3 {
		var result strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				result.WriteString(",")
			}
			result.WriteRune(digit)
		}
		intPart = result.String()
	}

	// Reconstruct with decimal part if exists
	if len(parts) > 1 {
		formatted = intPart + "." + parts[1]
	} else {
		formatted = intPart
	}

	return fmt.Sprintf("%s %s", formatted, symbol)
}

// FormatDuration formats a duration in a human-readable way
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	} else if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	} else if d < 24*time.Hour {
		return fmt.Sprintf("%dh", int(d.Hours()))
	} else {
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}

// TruncateString truncates a string to a maximum length with ellipsis
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}

	if maxLen <= 3 {
		return s[:maxLen]
	}

	return s[:maxLen-3] + "..."
}
