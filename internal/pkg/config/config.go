package config

import (
	"strings"

	"github.com/inkdrop-studio/payhook/internal/pkg/env"
)

// Fixed product constants. These never vary per deployment: the store sells
// one digital product at one price, paid either by card or in USDC on Base.
const (
	// USDC token contract on Base mainnet.
	USDCContractAddress = "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913"

	DefaultRPCURL = "https://mainnet.base.org"

	DownloadURL = "https://inkdrop.studio/download/artpack-vol1"
	ThankYouURL = "https://inkdrop.studio/thank-you"

	// Card purchases settle in cents. Expected price is 2900; the band
	// tolerates small rounding/tax variance.
	CardAmountMin = 2800
	CardAmountMax = 3100

	// USDC has 6 decimals, so this band is $28.00 to $35.00.
	TransferAmountMin = 28_000_000
	TransferAmountMax = 35_000_000

	USDCDecimals = 1_000_000
)

// Config carries everything the handlers need. It is built once in main and
// never mutated afterwards; handlers only ever read from it.
type Config struct {
	StripeSecretKey     string
	StripeWebhookSecret string
	StripeAccount       string // optional connected-account context

	RPCURL        string
	PaymentWallet string // optional: when set, only transfers to this address count

	AllowedOrigin string

	AppHost string
	AppPort string
}

func FromEnv() *Config {
	return &Config{
		StripeSecretKey:     strings.TrimSpace(env.GetEnv("STRIPE_SECRET_KEY", "")),
		StripeWebhookSecret: strings.TrimSpace(env.GetEnv("STRIPE_WEBHOOK_SECRET", "")),
		StripeAccount:       strings.TrimSpace(env.GetEnv("STRIPE_ACCOUNT", "")),
		RPCURL:              strings.TrimSpace(env.GetEnv("RPC_URL", DefaultRPCURL)),
		PaymentWallet:       strings.TrimSpace(env.GetEnv("PAYMENT_WALLET", "")),
		AllowedOrigin:       strings.TrimSpace(env.GetEnv("ALLOWED_ORIGIN", "https://inkdrop.studio")),
		AppHost:             env.GetEnv("APP_HOST", "0.0.0.0"),
		AppPort:             env.GetEnv("APP_PORT", "4000"),
	}
}
