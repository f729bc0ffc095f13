package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"sibiria/internal/pkg/decimal"

	"github.com/google/uuid"
)

// Client talks to the YooKassa payments API. Every request carries a
// fresh Idempotence-Key; payments are created with capture=false so the
// shop captures manually after admin confirmation.
type Client struct {
	baseURL   string
	shopID    string
	secretKey string
	http      *http.Client
}

func NewClient(baseURL, shopID, secretKey string) *Client {
	return &Client{
		baseURL:   baseURL,
		shopID:    shopID,
		secretKey: secretKey,
		http:      &http.Client{Timeout: 15 * time.Second},
	}
}

type amountPayload struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

type confirmationPayload struct {
	Type      string `json:"type"`
	ReturnURL string `json:"return_url,omitempty"`
}

type createPaymentPayload struct {
	Amount       amountPayload       `json:"amount"`
	Capture      bool                `json:"capture"`
	Confirmation confirmationPayload `json:"confirmation"`
	Description  string              `json:"description,omitempty"`
	Metadata     map[string]string   `json:"metadata,omitempty"`
}

type paymentReply struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	Confirmation struct {
		ConfirmationURL string `json:"confirmation_url"`
	} `json:"confirmation"`
}

// CreatePayment posts a redirect payment and returns its id and the
// confirmation URL the guest is sent to.
func (c *Client) CreatePayment(ctx context.Context, amount decimal.Decimal, description, returnURL string, bookingID int64) (string, string, error) {
	payload := createPaymentPayload{
		Amount:       amountPayload{Value: amount.String(), Currency: "RUB"},
		Capture:      false,
		Confirmation: confirmationPayload{Type: "redirect", ReturnURL: returnURL},
		Description:  description,
		Metadata:     map[string]string{"bookingId": strconv.FormatInt(bookingID, 10)},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", "", err
	}
	req.SetBasicAuth(c.shopID, c.secretKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotence-Key", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("yookassa: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", fmt.Errorf("yookassa: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", "", fmt.Errorf("yookassa: status %d: %s", resp.StatusCode, string(raw))
	}

	var reply paymentReply
	if err := json.Unmarshal(raw, &reply); err != nil {
		return "", "", fmt.Errorf("yookassa: invalid response: %w", err)
	}
	return reply.ID, reply.Confirmation.ConfirmationURL, nil
}
