package blockchain

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"
)

func NewChainError(errType ErrorType, message string, cause error) *ChainError {
	return &ChainError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

func NewNetworkError(message string, cause error) *ChainError {
	return NewChainError(ErrNetworkConnection, message, cause)
}

func NewInvalidAddressError(address string) *ChainError {
	return NewChainError(ErrInvalidAddress, fmt.Sprintf("invalid address: %s", address), nil)
}

func NewTimeoutError(operation string, timeout time.Duration) *ChainError {
	return NewChainError(ErrTimeout,
		fmt.Sprintf("operation %s timed out after %v", operation, timeout), nil)
}

func NewNodeUnavailableError(nodeURL string, cause error) *ChainError {
	return NewChainError(ErrNodeUnavailable,
		fmt.Sprintf("node unavailable: %s", nodeURL), cause)
}

func NewRateLimitedError(retryAfter time.Duration) *ChainError {
	return NewChainError(ErrRateLimited,
		fmt.Sprintf("rate limited, retry after %v", retryAfter), nil)
}

// ClassifyError maps an arbitrary error onto the ChainError taxonomy.
// Thor node errors arrive as plain strings, so classification is by
// substring.
func ClassifyError(err error) *ChainError {
	if err == nil {
		return nil
	}

	var chainErr *ChainError
	if errors.As(err, &chainErr) {
		return chainErr
	}

	errStr := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded"):
		return NewTimeoutError("network request", 30*time.Second)
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "no such host"):
		return NewNetworkError("connection failed", err)
	case strings.Contains(errStr, "invalid address") || strings.Contains(errStr, "bad address"):
		return NewChainError(ErrInvalidAddress, "invalid address format", err)
	case strings.Contains(errStr, "rate limit") || strings.Contains(errStr, "too many requests"):
		return NewRateLimitedError(time.Minute)
	default:
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return NewTimeoutError("network operation", 30*time.Second)
		}
		return NewNetworkError("unknown network error", err)
	}
}

func (e *ChainError) IsRetryable() bool {
	switch e.Type {
	case ErrNetworkConnection, ErrNodeUnavailable, ErrTimeout, ErrRateLimited:
		return true
	default:
		return false
	}
}

func (e *ChainError) UserMessage() string {
	switch e.Type {
	case ErrNetworkConnection:
		return "Network connection failed. Please check your internet connection."
	case ErrInvalidAddress:
		return "Invalid VeChain address format."
	case ErrNodeUnavailable:
		return "VeChain network is temporarily unavailable."
	case ErrRateLimited:
		return "Too many requests. Please wait a moment and try again."
	case ErrTimeout:
		return "Request timed out. Please try again."
	default:
		return "An unexpected error occurred."
	}
}
