package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// QuoteStatus is the lifecycle state of a persisted quote. The issuance
// flow only ever writes ISSUED; fills happen on-chain.
type QuoteStatus string

const (
	QuoteStatusIssued QuoteStatus = "ISSUED"
)

// Quote is the persisted record of a signed firm quote, immutable after
// insert.
type Quote struct {
	ID                uuid.UUID       `json:"quoteId"`
	ChainID           int             `json:"chainId"`
	Maker             string          `json:"maker"`
	Taker             string          `json:"taker"`
	Recipient         string          `json:"recipient"`
	Executor          string          `json:"executor"`
	StrategyID        string          `json:"strategyId"`
	StrategyVersion   int             `json:"strategyVersion"`
	StrategyHash      string          `json:"strategyHash"`
	SellToken         string          `json:"sellToken"`
	BuyToken          string          `json:"buyToken"`
	SellAmount        string          `json:"sellAmount"`
	BuyAmount         string          `json:"buyAmount"` // net, after executor fee skim
	FeeBps            int             `json:"feeBps"`
	FeeAmount         string          `json:"feeAmount"`
	Nonce             string          `json:"nonce"`
	Expiry            int64           `json:"expiry"`
	TypedData         json.RawMessage `json:"typedData"`
	Signature         string          `json:"signature"`
	TxTo              string          `json:"txTo"`
	TxData            string          `json:"txData"`
	TxValue           string          `json:"txValue"`
	Status            QuoteStatus     `json:"status"`
	RejectCode        null.String     `json:"rejectCode,omitempty"`
	PricingAsOfMs     int64           `json:"pricingAsOfMs"`
	PricingConfidence float64         `json:"pricingConfidence"`
	PricingStale      bool            `json:"pricingStale"`
	PricingSources    []string        `json:"pricingSources"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// PriceRequest asks for an indicative price
type PriceRequest struct {
	ChainID    int    `json:"chainId"`
	SellToken  string `json:"sellToken"`
	BuyToken   string `json:"buyToken"`
	SellAmount string `json:"sellAmount"`
}

// PriceResponse is the indicative price answer; no signature, no nonce
type PriceResponse struct {
	ChainID         int              `json:"chainId"`
	SellToken       string           `json:"sellToken"`
	BuyToken        string           `json:"buyToken"`
	SellAmount      string           `json:"sellAmount"`
	BuyAmount       string           `json:"buyAmount"`
	PricingSnapshot *PricingSnapshot `json:"pricingSnapshot"`
}

// QuoteRequest asks for a firm signed quote
type QuoteRequest struct {
	ChainID    int    `json:"chainId"`
	SellToken  string `json:"sellToken"`
	BuyToken   string `json:"buyToken"`
	SellAmount string `json:"sellAmount"`
	Taker      string `json:"taker"`
	Recipient  string `json:"recipient,omitempty"`
}

// TxPayload is the ready-to-submit executor call
type TxPayload struct {
	To    string `json:"to"`
	Data  string `json:"data"`
	Value string `json:"value"`
}

// QuoteResponse is the firm quote returned to the taker
type QuoteResponse struct {
	QuoteID    uuid.UUID       `json:"quoteId"`
	ChainID    int             `json:"chainId"`
	Maker      string          `json:"maker"`
	Taker      string          `json:"taker"`
	Recipient  string          `json:"recipient"`
	Executor   string          `json:"executor"`
	Strategy   StrategyRef     `json:"strategy"`
	SellToken  string          `json:"sellToken"`
	BuyToken   string          `json:"buyToken"`
	SellAmount string          `json:"sellAmount"`
	BuyAmount  string          `json:"buyAmount"` // net
	FeeBps     int             `json:"feeBps"`
	FeeAmount  string          `json:"feeAmount"`
	Expiry     int64           `json:"expiry"`
	Nonce      string          `json:"nonce"`
	TypedData  json.RawMessage `json:"typedData"`
	Signature  string          `json:"signature"`
	Tx         TxPayload       `json:"tx"`
	Pricing    PricingSummary  `json:"pricing"`
}
