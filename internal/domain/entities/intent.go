package entities

import (
	"encoding/json"

	"github.com/google/uuid"
)

// StrategyRef identifies a strategy version and its on-chain hash
type StrategyRef struct {
	ID      string `json:"id"`
	Version int    `json:"version"`
	Hash    string `json:"hash"`
}

// IntentRequest is the payload POSTed to the strategy service
type IntentRequest struct {
	ChainID         int              `json:"chainId"`
	Maker           string           `json:"maker"`
	Executor        string           `json:"executor"`
	Taker           string           `json:"taker"`
	SellToken       string           `json:"sellToken"`
	BuyToken        string           `json:"buyToken"`
	SellAmount      string           `json:"sellAmount"`
	Recipient       string           `json:"recipient"`
	PricingSnapshot *PricingSnapshot `json:"pricingSnapshot"`
	Strategy        IntentStrategy   `json:"strategy"`
}

// IntentStrategy carries the active strategy into the intent request
type IntentStrategy struct {
	ID      uuid.UUID       `json:"id"`
	Version int             `json:"version"`
	Hash    string          `json:"hash"`
	Params  json.RawMessage `json:"params"`
}

// IntentPricing is the pricing echo attached to an intent response
type IntentPricing struct {
	AsOfMs          FlexInt64  `json:"asOfMs"`
	ConfidenceScore float64    `json:"confidenceScore"`
	Stale           bool       `json:"stale"`
	SourcesUsed     StringList `json:"sourcesUsed"`
}

// StrategyIntent is the strategy service's quote decision. Expiry is a
// pointer so an explicit 0 can be told apart from an absent field.
type StrategyIntent struct {
	Decision  string         `json:"decision,omitempty"`
	Strategy  StrategyRef    `json:"strategy"`
	BuyAmount FlexString     `json:"buyAmount"`
	FeeBps    int            `json:"feeBps"`
	FeeAmount FlexString     `json:"feeAmount"`
	Expiry    *FlexInt64     `json:"expiry"`
	Pricing   *IntentPricing `json:"pricing,omitempty"`
}
