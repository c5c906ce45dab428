package blockchain

import (
	"bytes"
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

var dialEVMClient = ethclient.Dial

// ERC-20 view selectors
var (
	decimalsSelector = common.Hex2Bytes("313ce567") // decimals()
	symbolSelector   = common.Hex2Bytes("95d89b41") // symbol()
)

// EVMClient provides the JSON-RPC reads the quote pipeline needs
type EVMClient struct {
	client *ethclient.Client
	rpcURL string
	// testCallView allows deterministic unit tests without network sockets.
	testCallView func(ctx context.Context, to string, data []byte) ([]byte, error)
}

// NewEVMClient creates a new EVM client
func NewEVMClient(rpcURL string) (*EVMClient, error) {
	client, err := dialEVMClient(rpcURL)
	if err != nil {
		return nil, err
	}
	return &EVMClient{client: client, rpcURL: rpcURL}, nil
}

// NewEVMClientWithCallView creates an EVM client that uses an injected
// CallView implementation. Intended for unit tests.
func NewEVMClientWithCallView(callViewFn func(ctx context.Context, to string, data []byte) ([]byte, error)) *EVMClient {
	return &EVMClient{testCallView: callViewFn}
}

// CallView executes a read-only contract call
func (c *EVMClient) CallView(ctx context.Context, to string, data []byte) ([]byte, error) {
	if c.testCallView != nil {
		return c.testCallView(ctx, to, data)
	}
	addr := common.HexToAddress(to)
	msg := ethereum.CallMsg{
		To:   &addr,
		Data: data,
	}
	return c.client.CallContract(ctx, msg, nil)
}

// TokenDecimals reads decimals() from an ERC-20 token
func (c *EVMClient) TokenDecimals(ctx context.Context, token string) (uint8, error) {
	result, err := c.CallView(ctx, token, decimalsSelector)
	if err != nil {
		return 0, err
	}
	if len(result) == 0 {
		return 0, fmt.Errorf("empty decimals() result from %s", token)
	}
	v := new(big.Int).SetBytes(result)
	if !v.IsUint64() || v.Uint64() > 255 {
		return 0, fmt.Errorf("decimals() out of range from %s: %s", token, v)
	}
	return uint8(v.Uint64()), nil
}

// TokenSymbol reads symbol() from an ERC-20 token. Both the modern string
// return and the legacy bytes32 form are accepted.
func (c *EVMClient) TokenSymbol(ctx context.Context, token string) (string, error) {
	result, err := c.CallView(ctx, token, symbolSelector)
	if err != nil {
		return "", err
	}
	if len(result) == 0 {
		return "", fmt.Errorf("empty symbol() result from %s", token)
	}

	stringType, _ := abi.NewType("string", "", nil)
	args := abi.Arguments{{Type: stringType}}
	if decoded, err := args.Unpack(result); err == nil && len(decoded) == 1 {
		if s, ok := decoded[0].(string); ok {
			return s, nil
		}
	}

	// Legacy tokens return a right-padded bytes32
	if len(result) == 32 {
		return string(bytes.TrimRight(result, "\x00")), nil
	}
	return "", fmt.Errorf("undecodable symbol() result from %s", token)
}

// Close closes the client connection
func (c *EVMClient) Close() {
	if c.client != nil {
		c.client.Close()
	}
}
