package repositories

import "context"

// NonceAllocator hands out the per-(chain, maker) quote nonce. Allocate
// returns the current next nonce as a decimal string and increments it,
// strictly serialized per key: no duplicates, no reordering. An allocated
// nonce is spent whether or not the caller's request succeeds downstream.
type NonceAllocator interface {
	Allocate(ctx context.Context, chainID int, maker string) (string, error)
	Peek(ctx context.Context, chainID int, maker string) (string, error)
}
