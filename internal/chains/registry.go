package chains

import (
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"

	domainerrors "aqua-maker.backend/internal/domain/errors"
	"aqua-maker.backend/pkg/utils"
)

// fileEntry is one chain in the chains JSON file, keyed by chain id
type fileEntry struct {
	Name           string `json:"name"`
	RPCURL         string `json:"rpcUrl"`
	Aqua           string `json:"aqua"`
	Executor       string `json:"executor"`
	SigningKeyEnv  string `json:"signingKeyEnv,omitempty"`
	ExecutorFeeBps *int   `json:"executorFeeBps,omitempty"`
}

// Chain is a fully resolved chain record. The signing key stays unexported
// so it never serializes.
type Chain struct {
	ChainID         int    `json:"chainId"`
	Name            string `json:"name"`
	RPCURL          string `json:"rpcUrl"`
	ExecutorAddress string `json:"executor"`
	AquaAddress     string `json:"aqua"`
	MakerAddress    string `json:"maker"`
	PricingURL      string `json:"-"`
	StrategyURL     string `json:"-"`
	ExecutorFeeBps  int    `json:"executorFeeBps"`

	signingKey *ecdsa.PrivateKey
}

// SigningKey returns the chain's maker key
func (c *Chain) SigningKey() *ecdsa.PrivateKey {
	return c.signingKey
}

// Info is a Chain with secrets stripped, safe to list over HTTP
type Info struct {
	ChainID         int    `json:"chainId"`
	Name            string `json:"name"`
	ExecutorAddress string `json:"executor"`
	AquaAddress     string `json:"aqua"`
	MakerAddress    string `json:"maker"`
	ExecutorFeeBps  int    `json:"executorFeeBps"`
}

// Registry holds the resolved per-chain configuration, immutable after
// Load.
type Registry struct {
	chains map[int]*Chain
}

// Load reads the chains JSON file and resolves each entry's signing key
// from the environment. The maker address is derived from the key.
func Load(path, pricingURL, strategyURL string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chains config %s: %w", path, err)
	}

	var entries map[string]fileEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse chains config %s: %w", path, err)
	}

	reg := &Registry{chains: make(map[int]*Chain, len(entries))}
	for key, entry := range entries {
		chainID, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("invalid chain id %q in chains config", key)
		}

		executor, err := utils.ChecksumAddress(entry.Executor)
		if err != nil {
			return nil, fmt.Errorf("chain %d: bad executor address: %w", chainID, err)
		}
		aqua, err := utils.ChecksumAddress(entry.Aqua)
		if err != nil {
			return nil, fmt.Errorf("chain %d: bad aqua address: %w", chainID, err)
		}

		keyEnv := entry.SigningKeyEnv
		if keyEnv == "" {
			keyEnv = "SIGNING_KEY_" + key
		}
		secret := os.Getenv(keyEnv)
		if secret == "" {
			return nil, fmt.Errorf("chain %d: signing key env %s is not set", chainID, keyEnv)
		}
		signingKey, err := crypto.HexToECDSA(strings.TrimPrefix(secret, "0x"))
		if err != nil {
			return nil, fmt.Errorf("chain %d: invalid signing key in %s: %w", chainID, keyEnv, err)
		}

		feeBps := 0
		if entry.ExecutorFeeBps != nil {
			feeBps = *entry.ExecutorFeeBps
		}
		if feeBps < 0 {
			feeBps = 0
		}
		if feeBps > 9999 {
			feeBps = 9999
		}

		reg.chains[chainID] = &Chain{
			ChainID:         chainID,
			Name:            entry.Name,
			RPCURL:          entry.RPCURL,
			ExecutorAddress: executor,
			AquaAddress:     aqua,
			MakerAddress:    crypto.PubkeyToAddress(signingKey.PublicKey).Hex(),
			PricingURL:      pricingURL,
			StrategyURL:     strategyURL,
			ExecutorFeeBps:  feeBps,
			signingKey:      signingKey,
		}
	}

	return reg, nil
}

// Get returns the resolved chain record for chainID
func (r *Registry) Get(chainID int) (*Chain, error) {
	c, ok := r.chains[chainID]
	if !ok {
		return nil, domainerrors.ChainNotSupported(fmt.Sprintf("chain %d is not supported", chainID))
	}
	return c, nil
}

// List returns all configured chains with secrets stripped, ordered by id
func (r *Registry) List() []Info {
	infos := make([]Info, 0, len(r.chains))
	for _, c := range r.chains {
		infos = append(infos, Info{
			ChainID:         c.ChainID,
			Name:            c.Name,
			ExecutorAddress: c.ExecutorAddress,
			AquaAddress:     c.AquaAddress,
			MakerAddress:    c.MakerAddress,
			ExecutorFeeBps:  c.ExecutorFeeBps,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ChainID < infos[j].ChainID })
	return infos
}
