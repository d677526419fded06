package chain

import (
	"fmt"
	"strings"
	"testing"
)

const (
	testToken  = "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913"
	testWallet = "0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B"
	testSender = "0x1111111111111111111111111111111111111111"
)

func testFilter() TransferFilter {
	return TransferFilter{
		TokenContract: testToken,
		Wallet:        testWallet,
		MinAmount:     28_000_000,
		MaxAmount:     35_000_000,
		Decimals:      1_000_000,
	}
}

func addressTopic(addr string) string {
	return "0x" + strings.Repeat("0", 24) + strings.ToLower(strings.TrimPrefix(addr, "0x"))
}

func transferLog(token, to string, amount int64) Log {
	return Log{
		Address: token,
		Topics:  []string{TransferEventTopic, addressTopic(testSender), addressTopic(to)},
		Data:    fmt.Sprintf("0x%064x", amount),
	}
}

func TestVerifyTransfer_Valid(t *testing.T) {
	rcpt := &Receipt{Status: "0x1", Logs: []Log{transferLog(testToken, testWallet, 29_000_000)}}

	res := VerifyTransfer(rcpt, testFilter())
	if !res.Valid {
		t.Fatalf("expected valid transfer, got reason %q", res.Reason)
	}
	if res.Amount != 29.0 {
		t.Fatalf("expected amount 29.0, got %v", res.Amount)
	}
}

func TestVerifyTransfer_AmountBand(t *testing.T) {
	tests := []struct {
		name       string
		amount     int64
		wantValid  bool
		wantReason string
	}{
		{name: "below", amount: 27_000_000, wantReason: "Transfer amount below required ($27.00)"},
		{name: "lower bound", amount: 28_000_000, wantValid: true},
		{name: "upper bound", amount: 35_000_000, wantValid: true},
		{name: "above", amount: 36_000_000, wantReason: "Transfer amount above expected ($36.00)"},
	}

	for _, tt := range tests {
		rcpt := &Receipt{Status: "0x1", Logs: []Log{transferLog(testToken, testWallet, tt.amount)}}
		res := VerifyTransfer(rcpt, testFilter())
		if res.Valid != tt.wantValid {
			t.Fatalf("%s: valid=%v, want %v (reason %q)", tt.name, res.Valid, tt.wantValid, res.Reason)
		}
		if tt.wantReason != "" && res.Reason != tt.wantReason {
			t.Fatalf("%s: reason %q, want %q", tt.name, res.Reason, tt.wantReason)
		}
	}
}

func TestVerifyTransfer_NoQualifyingLog(t *testing.T) {
	tests := []struct {
		name string
		logs []Log
	}{
		{name: "no logs", logs: nil},
		{name: "other contract", logs: []Log{transferLog("0x2222222222222222222222222222222222222222", testWallet, 29_000_000)}},
		{name: "other destination", logs: []Log{transferLog(testToken, "0x3333333333333333333333333333333333333333", 29_000_000)}},
		{name: "wrong topic0", logs: []Log{{
			Address: testToken,
			Topics:  []string{"0x" + strings.Repeat("ab", 32), addressTopic(testSender), addressTopic(testWallet)},
			Data:    fmt.Sprintf("0x%064x", int64(29_000_000)),
		}}},
		{name: "too few topics", logs: []Log{{Address: testToken, Topics: []string{TransferEventTopic}, Data: "0x1"}}},
	}

	for _, tt := range tests {
		res := VerifyTransfer(&Receipt{Status: "0x1", Logs: tt.logs}, testFilter())
		if res.Valid {
			t.Fatalf("%s: expected invalid", tt.name)
		}
		if res.Reason != "No valid USDC transfer to our address found" {
			t.Fatalf("%s: unexpected reason %q", tt.name, res.Reason)
		}
	}
}

func TestVerifyTransfer_SkipsNonQualifyingThenMatches(t *testing.T) {
	rcpt := &Receipt{Status: "0x1", Logs: []Log{
		transferLog("0x2222222222222222222222222222222222222222", testWallet, 29_000_000),
		transferLog(testToken, "0x3333333333333333333333333333333333333333", 29_000_000),
		transferLog(testToken, testWallet, 30_500_000),
	}}

	res := VerifyTransfer(rcpt, testFilter())
	if !res.Valid || res.Amount != 30.5 {
		t.Fatalf("expected later matching log to qualify, got %+v", res)
	}
}

func TestVerifyTransfer_FirstQualifyingLogDecides(t *testing.T) {
	// An under-band transfer to our wallet short-circuits even when a later
	// log would have qualified.
	rcpt := &Receipt{Status: "0x1", Logs: []Log{
		transferLog(testToken, testWallet, 10_000_000),
		transferLog(testToken, testWallet, 29_000_000),
	}}

	res := VerifyTransfer(rcpt, testFilter())
	if res.Valid {
		t.Fatalf("expected first under-band log to reject, got %+v", res)
	}
	if !strings.Contains(res.Reason, "below required") {
		t.Fatalf("unexpected reason %q", res.Reason)
	}
}

func TestVerifyTransfer_CaseInsensitiveAddresses(t *testing.T) {
	lg := Log{
		Address: "0x" + strings.ToUpper(strings.TrimPrefix(testToken, "0x")),
		Topics: []string{
			TransferEventTopic,
			addressTopic(testSender),
			"0x" + strings.ToUpper(strings.TrimPrefix(addressTopic(testWallet), "0x")),
		},
		Data: fmt.Sprintf("0x%064x", int64(29_000_000)),
	}

	res := VerifyTransfer(&Receipt{Status: "0x1", Logs: []Log{lg}}, testFilter())
	if !res.Valid {
		t.Fatalf("expected case-insensitive address match, got reason %q", res.Reason)
	}
}

func TestVerifyTransfer_NoWalletConfigured(t *testing.T) {
	filter := testFilter()
	filter.Wallet = ""

	rcpt := &Receipt{Status: "0x1", Logs: []Log{
		transferLog(testToken, "0x3333333333333333333333333333333333333333", 29_000_000),
	}}

	res := VerifyTransfer(rcpt, filter)
	if !res.Valid {
		t.Fatalf("expected any destination to qualify without a wallet filter, got reason %q", res.Reason)
	}
}

func TestReceiptSucceeded(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{status: "0x1", want: true},
		{status: "0x0", want: false},
		{status: "", want: false},
	}

	for _, tt := range tests {
		r := &Receipt{Status: tt.status}
		if got := r.Succeeded(); got != tt.want {
			t.Fatalf("Succeeded(%q) = %v, want %v", tt.status, got, tt.want)
		}
	}
}
