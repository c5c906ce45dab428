package signing

import (
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

// EIP-712 domain constants. These must byte-match the executor contract's
// domain separator or every fill reverts.
const (
	DomainName    = "AquaQuoteExecutor"
	DomainVersion = "1"
	PrimaryType   = "Quote"
)

// QuotePayload carries the typed-data message fields in contract order
type QuotePayload struct {
	ChainID      int
	Executor     string
	Maker        string
	TokenIn      string
	TokenOut     string
	AmountIn     *big.Int
	AmountOut    *big.Int
	StrategyHash string
	Nonce        *big.Int
	Expiry       *big.Int
}

// quoteTypes returns the typed-data schema. Field order is load-bearing:
// it defines the Quote type hash the executor verifies against.
func quoteTypes() apitypes.Types {
	return apitypes.Types{
		"EIP712Domain": {
			{Name: "name", Type: "string"},
			{Name: "version", Type: "string"},
			{Name: "chainId", Type: "uint256"},
			{Name: "verifyingContract", Type: "address"},
		},
		"Quote": {
			{Name: "maker", Type: "address"},
			{Name: "tokenIn", Type: "address"},
			{Name: "tokenOut", Type: "address"},
			{Name: "amountIn", Type: "uint256"},
			{Name: "amountOut", Type: "uint256"},
			{Name: "strategyHash", Type: "bytes32"},
			{Name: "nonce", Type: "uint256"},
			{Name: "expiry", Type: "uint256"},
		},
	}
}

// BuildTypedData assembles the full EIP-712 object for a quote
func BuildTypedData(p *QuotePayload) apitypes.TypedData {
	return apitypes.TypedData{
		Types:       quoteTypes(),
		PrimaryType: PrimaryType,
		Domain: apitypes.TypedDataDomain{
			Name:              DomainName,
			Version:           DomainVersion,
			ChainId:           math.NewHexOrDecimal256(int64(p.ChainID)),
			VerifyingContract: p.Executor,
		},
		Message: apitypes.TypedDataMessage{
			"maker":        p.Maker,
			"tokenIn":      p.TokenIn,
			"tokenOut":     p.TokenOut,
			"amountIn":     p.AmountIn.String(),
			"amountOut":    p.AmountOut.String(),
			"strategyHash": p.StrategyHash,
			"nonce":        p.Nonce.String(),
			"expiry":       p.Expiry.String(),
		},
	}
}

// Signer signs quote typed data with one chain's maker key
type Signer struct {
	key *ecdsa.PrivateKey
}

// NewSigner creates a signer around the chain's maker key
func NewSigner(key *ecdsa.PrivateKey) *Signer {
	return &Signer{key: key}
}

// Sign produces the 65-byte secp256k1 signature over the domain-separated
// typed-data hash, plus the typed data itself as JSON.
func (s *Signer) Sign(p *QuotePayload) (json.RawMessage, string, error) {
	typedData := BuildTypedData(p)

	hash, _, err := apitypes.TypedDataAndHash(typedData)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash typed data: %w", err)
	}

	sig, err := crypto.Sign(hash, s.key)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign quote: %w", err)
	}
	// Contracts expect v in {27, 28}
	sig[64] += 27

	raw, err := json.Marshal(typedData)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal typed data: %w", err)
	}
	return raw, hexutil.Encode(sig), nil
}
