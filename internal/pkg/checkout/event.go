package checkout

import (
	"encoding/json"
	"errors"
	"strings"
)

const EventCheckoutSessionCompleted = "checkout.session.completed"

// Event is the decoded webhook envelope. For checkout.session.completed the
// session fields are populated; other event types only carry ID and Type.
type Event struct {
	ID          string
	Type        string
	SessionID   string
	AmountTotal int64
	BuyerEmail  string
}

// PurchaseEvent is a confirmed purchase extracted from a verified event.
type PurchaseEvent struct {
	AmountMinorUnits int64
	BuyerEmail       string
	SourceID         string
}

func ParseEvent(payload []byte) (*Event, error) {
	type rawPayload struct {
		ID   string `json:"id"`
		Type string `json:"type"`
		Data struct {
			Object struct {
				ID              string `json:"id"`
				AmountTotal     int64  `json:"amount_total"`
				CustomerEmail   string `json:"customer_email"`
				CustomerDetails struct {
					Email string `json:"email"`
				} `json:"customer_details"`
			} `json:"object"`
		} `json:"data"`
	}

	var raw rawPayload
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, err
	}
	if strings.TrimSpace(raw.Type) == "" {
		return nil, errors.New("webhook payload missing event type")
	}

	// Checkout confirms the email customers actually paid with; the
	// pre-checkout customer_email is only a fallback.
	email := strings.TrimSpace(raw.Data.Object.CustomerDetails.Email)
	if email == "" {
		email = strings.TrimSpace(raw.Data.Object.CustomerEmail)
	}

	return &Event{
		ID:          strings.TrimSpace(raw.ID),
		Type:        strings.TrimSpace(raw.Type),
		SessionID:   strings.TrimSpace(raw.Data.Object.ID),
		AmountTotal: raw.Data.Object.AmountTotal,
		BuyerEmail:  email,
	}, nil
}

// Purchase converts a completed-checkout event into a PurchaseEvent.
func (e *Event) Purchase() PurchaseEvent {
	return PurchaseEvent{
		AmountMinorUnits: e.AmountTotal,
		BuyerEmail:       e.BuyerEmail,
		SourceID:         e.SessionID,
	}
}
