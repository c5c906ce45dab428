package usecases

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

const fillMethodSig = "fill((address,address,address,uint256,uint256,bytes32,uint256,uint256),bytes,uint256)"

// fillQuote mirrors the executor's Quote struct. Field order must match the
// tuple in fillMethodSig.
type fillQuote struct {
	Maker        common.Address
	TokenIn      common.Address
	TokenOut     common.Address
	AmountIn     *big.Int
	AmountOut    *big.Int
	StrategyHash [32]byte
	Nonce        *big.Int
	Expiry       *big.Int
}

// buildFillCalldata ABI-encodes the executor fill() call for a signed
// quote: the quote tuple, the maker signature, and the minimum net output
// the taker will accept after the executor fee skim.
func buildFillCalldata(q *fillQuote, signature string, minNetOut *big.Int) (string, error) {
	quoteType, err := abi.NewType("tuple", "", []abi.ArgumentMarshaling{
		{Name: "maker", Type: "address"},
		{Name: "tokenIn", Type: "address"},
		{Name: "tokenOut", Type: "address"},
		{Name: "amountIn", Type: "uint256"},
		{Name: "amountOut", Type: "uint256"},
		{Name: "strategyHash", Type: "bytes32"},
		{Name: "nonce", Type: "uint256"},
		{Name: "expiry", Type: "uint256"},
	})
	if err != nil {
		return "", fmt.Errorf("failed to build quote tuple type: %w", err)
	}
	bytesType, err := abi.NewType("bytes", "", nil)
	if err != nil {
		return "", fmt.Errorf("failed to build bytes type: %w", err)
	}
	uint256Type, err := abi.NewType("uint256", "", nil)
	if err != nil {
		return "", fmt.Errorf("failed to build uint256 type: %w", err)
	}

	sigBytes, err := hexutil.Decode(signature)
	if err != nil {
		return "", fmt.Errorf("failed to decode signature: %w", err)
	}

	args := abi.Arguments{
		{Type: quoteType},
		{Type: bytesType},
		{Type: uint256Type},
	}
	packed, err := args.Pack(q, sigBytes, minNetOut)
	if err != nil {
		return "", fmt.Errorf("failed to pack fill arguments: %w", err)
	}

	selector := crypto.Keccak256([]byte(fillMethodSig))[:4]
	return hexutil.Encode(append(selector, packed...)), nil
}
