package entities

// ChainMetadata is the per-chain quoting snapshot served to takers:
// addresses, pause state, the active strategy, and the maker's next nonce.
type ChainMetadata struct {
	ChainID        int          `json:"chainId"`
	Name           string       `json:"name"`
	Maker          string       `json:"maker"`
	Executor       string       `json:"executor"`
	Aqua           string       `json:"aqua"`
	ExecutorFeeBps int          `json:"executorFeeBps"`
	Paused         bool         `json:"paused"`
	ActiveStrategy *StrategyRef `json:"activeStrategy,omitempty"`
	NextNonce      string       `json:"nextNonce"`
}
