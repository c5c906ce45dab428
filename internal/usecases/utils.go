package usecases

import (
	"math/big"

	"aqua-maker.backend/pkg/utils"
)

// expiry values above this are taken to be unix milliseconds. The strategy
// service is not explicit about units; this mirrors its observed behavior
// (asOfMs + ttlSec*1000).
const expiryMillisThreshold = int64(1_000_000_000_000)

var bpsDenominator = big.NewInt(10000)

// normalizeExpiry coerces an intent expiry to unix seconds, clamped to >= 0
func normalizeExpiry(expiry int64) int64 {
	if expiry > expiryMillisThreshold {
		expiry = expiry / 1000
	}
	if expiry < 0 {
		return 0
	}
	return expiry
}

// grossUpForExecutorFee computes the amount the maker must sign so the
// taker still nets netOut after the executor skims feeBps. The invariant:
// floor(gross * (10000-fb) / 10000) >= netOut for any skim up to fb bps.
func grossUpForExecutorFee(netOut *big.Int, feeBps int) *big.Int {
	fb := feeBps
	if fb < 0 {
		fb = 0
	}
	if fb > 9999 {
		fb = 9999
	}
	if fb == 0 || netOut.Sign() == 0 {
		return new(big.Int).Set(netOut)
	}
	num := new(big.Int).Mul(netOut, bpsDenominator)
	den := new(big.Int).Sub(bpsDenominator, big.NewInt(int64(fb)))
	return utils.CeilDiv(num, den)
}
