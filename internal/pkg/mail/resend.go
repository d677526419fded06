package mail

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

	"github.com/inkdrop-studio/payhook/internal/pkg/env"
)

const defaultResendAPIBaseURL = "https://api.resend.com"

// ResendMailer sends through the Resend HTTP API.
type ResendMailer struct {
	APIKey     string
	Sender     string
	APIBaseURL string

	HTTPClient *http.Client
}

func NewResendMailerFromEnv() *ResendMailer {
	return &ResendMailer{
		APIKey:     strings.TrimSpace(env.GetEnv("RESEND_API_KEY", "")),
		Sender:     strings.TrimSpace(env.GetEnv("MAIL_SENDER", "Inkdrop Studio <orders@inkdrop.studio>")),
		APIBaseURL: strings.TrimSpace(env.GetEnv("RESEND_API_BASE_URL", defaultResendAPIBaseURL)),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (m *ResendMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if strings.TrimSpace(m.APIKey) == "" {
		return errors.New("RESEND_API_KEY is not configured")
	}

	reqBody, err := json.Marshal(map[string]any{
		"from":    m.Sender,
		"to":      []string{to},
		"subject": subject,
		"html":    htmlBody,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(m.APIBaseURL, "/")+"/emails", bytes.NewReader(reqBody))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+m.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("resend send failed: status=%d body=%s", resp.StatusCode, string(body))
	}
	return nil
}
