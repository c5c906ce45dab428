package entities

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FlexString is a string that also accepts a bare JSON number. The pricing
// and strategy services are loose about whether raw amounts and prices are
// quoted, so every numeric-ish field on their payloads uses this type.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*f = ""
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string { return string(f) }

// FlexInt64 accepts a JSON number or a numeric string. Fractional values
// are floored; NaN and infinities are rejected.
type FlexInt64 int64

func (f *FlexInt64) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*f = 0
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		trimmed = strings.TrimSpace(s)
	}
	if v, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		*f = FlexInt64(v)
		return nil
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return fmt.Errorf("not a number: %q", trimmed)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("non-finite number: %q", trimmed)
	}
	*f = FlexInt64(int64(math.Floor(v)))
	return nil
}

// StringList accepts a JSON array of strings, a scalar string, or null.
// The strategy agent emits sourcesUsed and reasonCodes as scalars.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*l = nil
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*l = items
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*l = nil
		return nil
	}
	*l = []string{s}
	return nil
}

// Provenance identifies the venue a depth point was sampled from
type Provenance struct {
	Venue   string `json:"venue"`
	FeeTier *int   `json:"feeTier,omitempty"`
}

// ProvenanceList accepts an array of provenance objects, a single object,
// a scalar venue string, or null.
type ProvenanceList []Provenance

func (p *ProvenanceList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		*p = ProvenanceList{}
		return nil
	}
	switch trimmed[0] {
	case '[':
		var items []Provenance
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		if items == nil {
			items = []Provenance{}
		}
		*p = items
		return nil
	case '{':
		var one Provenance
		if err := json.Unmarshal(data, &one); err != nil {
			return err
		}
		*p = ProvenanceList{one}
		return nil
	default:
		var venue string
		if err := json.Unmarshal(data, &venue); err != nil {
			return err
		}
		*p = ProvenanceList{{Venue: venue}}
		return nil
	}
}

// DepthPoint is one sample on the cumulative depth curve
type DepthPoint struct {
	AmountInRaw  FlexString     `json:"amountInRaw"`
	AmountOutRaw FlexString     `json:"amountOutRaw"`
	Price        FlexString     `json:"price"`
	ImpactBps    float64        `json:"impactBps"`
	Provenance   ProvenanceList `json:"provenance"`
}

// PricingSnapshot is the depth response returned by the pricing service
type PricingSnapshot struct {
	AsOfMs          FlexInt64    `json:"asOfMs"`
	BlockNumber     *uint64      `json:"blockNumber,omitempty"`
	MidPrice        FlexString   `json:"midPrice"`
	DepthPoints     []DepthPoint `json:"depthPoints"`
	SourcesUsed     StringList   `json:"sourcesUsed"`
	LatencyMs       FlexInt64    `json:"latencyMs"`
	ConfidenceScore float64      `json:"confidenceScore"`
	Stale           bool         `json:"stale"`
	ReasonCodes     StringList   `json:"reasonCodes"`
}

// PricingSummary is the subset of a snapshot persisted with a quote and
// echoed in quote responses
type PricingSummary struct {
	AsOfMs          int64    `json:"asOfMs"`
	ConfidenceScore float64  `json:"confidenceScore"`
	Stale           bool     `json:"stale"`
	SourcesUsed     []string `json:"sourcesUsed"`
}
