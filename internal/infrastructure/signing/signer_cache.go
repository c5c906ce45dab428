package signing

import (
	"crypto/ecdsa"
	"sync"
)

// SignerCache holds one signer per chain. Key material is immutable once
// loaded; initialization is single-flight per chain id.
type SignerCache struct {
	signers map[int]*Signer
	mu      sync.RWMutex
}

// NewSignerCache creates an empty signer cache
func NewSignerCache() *SignerCache {
	return &SignerCache{
		signers: make(map[int]*Signer),
	}
}

// For returns the signer for the chain, creating it from key on first use
func (c *SignerCache) For(chainID int, key *ecdsa.PrivateKey) *Signer {
	c.mu.RLock()
	s, ok := c.signers[chainID]
	c.mu.RUnlock()
	if ok {
		return s
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double check
	if s, ok := c.signers[chainID]; ok {
		return s
	}
	s = NewSigner(key)
	c.signers[chainID] = s
	return s
}
