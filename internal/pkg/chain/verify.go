package chain

import (
	"fmt"
	"math/big"
	"strings"
)

// TransferEventTopic is keccak256("Transfer(address,address,uint256)"),
// topic0 of every ERC-20 Transfer log.
const TransferEventTopic = "0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"

// TransferFilter describes the one payment we accept: a transfer of the
// given token, optionally restricted to one destination wallet, with an
// amount inside [MinAmount, MaxAmount] smallest units.
type TransferFilter struct {
	TokenContract string
	Wallet        string
	MinAmount     int64
	MaxAmount     int64
	Decimals      int64
}

// Result is the outcome of interpreting a receipt. Amount is in whole token
// units (dollars for a 6-decimal stablecoin) and only set when Valid.
type Result struct {
	Valid  bool
	Amount float64
	Reason string
}

// VerifyTransfer scans the receipt's logs in emission order for the first
// ERC-20 Transfer of the filtered token to the filtered wallet. That first
// qualifying log decides the outcome: under-band and over-band amounts are
// rejected with explicit reasons, later logs are never consulted.
func VerifyTransfer(rcpt *Receipt, filter TransferFilter) Result {
	for _, lg := range rcpt.Logs {
		if !strings.EqualFold(strings.TrimSpace(lg.Address), filter.TokenContract) {
			continue
		}
		if len(lg.Topics) < 3 || !strings.EqualFold(lg.Topics[0], TransferEventTopic) {
			continue
		}
		if filter.Wallet != "" && !strings.EqualFold(topicAddress(lg.Topics[2]), filter.Wallet) {
			continue
		}

		amount, ok := parseAmount(lg.Data)
		if !ok {
			continue
		}

		switch {
		case amount.Cmp(big.NewInt(filter.MinAmount)) < 0:
			return Result{Reason: fmt.Sprintf("Transfer amount below required ($%s)", formatUnits(amount, filter.Decimals))}
		case amount.Cmp(big.NewInt(filter.MaxAmount)) > 0:
			return Result{Reason: fmt.Sprintf("Transfer amount above expected ($%s)", formatUnits(amount, filter.Decimals))}
		default:
			return Result{Valid: true, Amount: float64(amount.Int64()) / float64(filter.Decimals)}
		}
	}
	return Result{Reason: "No valid USDC transfer to our address found"}
}

// topicAddress extracts the address packed into an indexed topic: the low
// 20 bytes of the 32-byte word.
func topicAddress(topic string) string {
	hexPart := strings.TrimPrefix(strings.TrimSpace(topic), "0x")
	if len(hexPart) < 40 {
		return ""
	}
	return "0x" + hexPart[len(hexPart)-40:]
}

func parseAmount(data string) (*big.Int, bool) {
	hexPart := strings.TrimPrefix(strings.TrimSpace(data), "0x")
	if hexPart == "" {
		return nil, false
	}
	amount, ok := new(big.Int).SetString(hexPart, 16)
	if !ok {
		return nil, false
	}
	return amount, true
}

func formatUnits(amount *big.Int, decimals int64) string {
	f := new(big.Float).Quo(new(big.Float).SetInt(amount), new(big.Float).SetInt64(decimals))
	return f.Text('f', 2)
}
