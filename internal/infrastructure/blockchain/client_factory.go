package blockchain

import (
	"fmt"
	"sync"
)

// ClientFactory caches one EVM client per chain. Initialization is
// single-flight per chain id; reads are concurrent.
type ClientFactory struct {
	clients map[int]*EVMClient
	mu      sync.RWMutex
}

// NewClientFactory creates a new client factory
func NewClientFactory() *ClientFactory {
	return &ClientFactory{
		clients: make(map[int]*EVMClient),
	}
}

// GetClient returns the cached EVM client for the chain, dialing rpcURL on
// first use.
func (f *ClientFactory) GetClient(chainID int, rpcURL string) (*EVMClient, error) {
	f.mu.RLock()
	client, ok := f.clients[chainID]
	f.mu.RUnlock()
	if ok {
		return client, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	// Double check
	if client, ok := f.clients[chainID]; ok {
		return client, nil
	}

	newClient, err := NewEVMClient(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create EVM client for chain %d: %w", chainID, err)
	}

	f.clients[chainID] = newClient
	return newClient, nil
}

// RegisterClient injects/overrides the cached client for a chain.
// Useful for deterministic unit tests.
func (f *ClientFactory) RegisterClient(chainID int, client *EVMClient) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clients[chainID] = client
}
