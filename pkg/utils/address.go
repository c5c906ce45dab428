package utils

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ChecksumAddress normalizes a hex address to its EIP-55 checksummed form.
func ChecksumAddress(addr string) (string, error) {
	if !common.IsHexAddress(addr) {
		return "", fmt.Errorf("invalid address: %q", addr)
	}
	return common.HexToAddress(addr).Hex(), nil
}

// IsChecksumAddress reports whether addr is a well-formed 20-byte hex address.
func IsChecksumAddress(addr string) bool {
	return common.IsHexAddress(addr)
}

// CanonicalPair orders two checksummed addresses into the canonical
// (token0, token1) form used as the pair key: token0 < token1 by lowercase
// hex comparison. The third return reports whether a was token0.
func CanonicalPair(a, b string) (string, string, bool) {
	if strings.ToLower(a) <= strings.ToLower(b) {
		return a, b, true
	}
	return b, a, false
}
