package controllers

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/inkdrop-studio/payhook/internal/pkg/chain"
	"github.com/inkdrop-studio/payhook/internal/pkg/config"
	"github.com/inkdrop-studio/payhook/internal/pkg/mail"
	"github.com/inkdrop-studio/payhook/internal/pkg/metrics"
)

var txHashPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("eth_txhash", func(fl validator.FieldLevel) bool {
		return txHashPattern.MatchString(fl.Field().String())
	})
	return v
}

// VerifyController handles buyer-submitted USDC payments: it looks up the
// transaction receipt on chain and accepts the first qualifying Transfer to
// the store wallet.
type VerifyController struct {
	cfg     *config.Config
	fetcher chain.ReceiptFetcher
	mailer  mail.Mailer
}

func NewVerifyController(cfg *config.Config, fetcher chain.ReceiptFetcher, mailer mail.Mailer) *VerifyController {
	return &VerifyController{cfg: cfg, fetcher: fetcher, mailer: mailer}
}

type verifyRequest struct {
	Email  string `json:"email"`
	TxHash string `json:"txHash"`
}

func (vc *VerifyController) HandleVerifyTransfer(c *fiber.Ctx) error {
	metrics.VerifyRequests.Inc()

	var req verifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	req.Email = strings.TrimSpace(req.Email)
	req.TxHash = strings.TrimSpace(req.TxHash)

	// Fail fast in a fixed order; nothing here touches the network.
	if req.Email == "" || req.TxHash == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email and transaction hash are required"})
	}
	if err := validate.Var(req.TxHash, "eth_txhash"); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid transaction hash format"})
	}
	if err := validate.Var(req.Email, "email"); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid email address"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	rcpt, err := vc.fetcher.TransactionReceipt(ctx, req.TxHash)
	if err != nil {
		metrics.RPCErrors.Inc()
		supportID := uuid.NewString()
		log.Printf("receipt fetch failed (ref %s, tx %s): %v", supportID, req.TxHash, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("Unable to verify the transaction right now. Please contact support with your transaction hash and reference %s.", supportID),
		})
	}
	if rcpt == nil || !rcpt.Succeeded() {
		metrics.VerifyRejected.Inc()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Transaction not found or failed"})
	}

	result := chain.VerifyTransfer(rcpt, chain.TransferFilter{
		TokenContract: config.USDCContractAddress,
		Wallet:        vc.cfg.PaymentWallet,
		MinAmount:     config.TransferAmountMin,
		MaxAmount:     config.TransferAmountMax,
		Decimals:      config.USDCDecimals,
	})
	if !result.Valid {
		metrics.VerifyRejected.Inc()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": result.Reason})
	}

	metrics.VerifyAccepted.Inc()
	log.Printf("verified USDC payment of $%.2f for %s (tx %s)", result.Amount, req.Email, req.TxHash)

	if htmlBody, renderErr := mail.RenderDownloadEmail(mail.DownloadEmail{
		DownloadURL: config.DownloadURL,
		ThankYouURL: config.ThankYouURL,
	}); renderErr != nil {
		log.Printf("download email render failed for %s: %v", req.Email, renderErr)
		metrics.EmailFailures.Inc()
	} else if sendErr := vc.mailer.Send(ctx, req.Email, mail.DownloadSubject, htmlBody); sendErr != nil {
		log.Printf("download email failed for %s: %v", req.Email, sendErr)
		metrics.EmailFailures.Inc()
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":     true,
		"downloadUrl": config.DownloadURL,
		"thankYouUrl": config.ThankYouURL,
		"message":     fmt.Sprintf("Payment of $%.2f verified. Your download link is on its way to %s.", result.Amount, req.Email),
	})
}
