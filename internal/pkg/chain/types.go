package chain

import "strings"

// Receipt is the subset of an EVM transaction receipt the verifier needs:
// execution status plus the ordered event logs the transaction emitted.
type Receipt struct {
	Status string `json:"status"`
	Logs   []Log  `json:"logs"`
}

// Succeeded reports whether the transaction executed without reverting.
func (r *Receipt) Succeeded() bool {
	return strings.EqualFold(strings.TrimSpace(r.Status), "0x1")
}

// Log is one emitted contract event: the emitting contract address, up to
// four 32-byte indexed topics, and the ABI-encoded non-indexed data.
type Log struct {
	Address string   `json:"address"`
	Topics  []string `json:"topics"`
	Data    string   `json:"data"`
}
