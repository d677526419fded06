package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ReceiptFetcher is what the verify controller depends on; *Client is the
// production implementation.
type ReceiptFetcher interface {
	TransactionReceipt(ctx context.Context, txHash string) (*Receipt, error)
}

type Client struct {
	RPCURL string

	HTTPClient *http.Client
}

func NewClient(rpcURL string) *Client {
	return &Client{
		RPCURL: strings.TrimSpace(rpcURL),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type rpcRequest struct {
	JSONRPC string   `json:"jsonrpc"`
	ID      int      `json:"id"`
	Method  string   `json:"method"`
	Params  []string `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// TransactionReceipt fetches the receipt for txHash via
// eth_getTransactionReceipt. A nil receipt with nil error means the node
// does not know the transaction (pending or nonexistent).
func (c *Client) TransactionReceipt(ctx context.Context, txHash string) (*Receipt, error) {
	if strings.TrimSpace(c.RPCURL) == "" {
		return nil, errors.New("rpc url is not configured")
	}

	reqBody, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "eth_getTransactionReceipt",
		Params:  []string{txHash},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.RPCURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("rpc request failed: status=%d body=%s", resp.StatusCode, string(body))
	}

	var out struct {
		Result *Receipt  `json:"result"`
		Error  *rpcError `json:"error"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("rpc response decode failed: %w", err)
	}
	if out.Error != nil {
		return nil, fmt.Errorf("rpc error: code=%d message=%s", out.Error.Code, out.Error.Message)
	}
	return out.Result, nil
}
