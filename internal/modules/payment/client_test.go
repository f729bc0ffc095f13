package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"sibiria/internal/pkg/decimal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePayment_RequestShape(t *testing.T) {
	var captured struct {
		auth           string
		idempotenceKey string
		payload        createPaymentPayload
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		captured.auth = user + ":" + pass
		captured.idempotenceKey = r.Header.Get("Idempotence-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured.payload))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "2d8e54ab-000f-5000-8000-1a2b3c4d5e6f",
			"status": "pending",
			"confirmation": {"confirmation_url": "https://yookassa.example/confirm/abc"}
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "shop-1", "secret-key")

	paymentID, confirmationURL, err := client.CreatePayment(
		context.Background(), decimal.FromInt(4500), "Booking #9, room 3",
		"https://hotel.example/thanks?bookingId=9", 9,
	)

	require.NoError(t, err)
	assert.Equal(t, "2d8e54ab-000f-5000-8000-1a2b3c4d5e6f", paymentID)
	assert.Equal(t, "https://yookassa.example/confirm/abc", confirmationURL)

	assert.Equal(t, "shop-1:secret-key", captured.auth)
	assert.NotEmpty(t, captured.idempotenceKey)
	assert.Equal(t, "4500.00", captured.payload.Amount.Value)
	assert.Equal(t, "RUB", captured.payload.Amount.Currency)
	assert.False(t, captured.payload.Capture)
	assert.Equal(t, "redirect", captured.payload.Confirmation.Type)
	assert.Equal(t, "https://hotel.example/thanks?bookingId=9", captured.payload.Confirmation.ReturnURL)
	assert.Equal(t, "9", captured.payload.Metadata["bookingId"])
}

func TestCreatePayment_FreshIdempotenceKeyPerCall(t *testing.T) {
	keys := make([]string, 0, 2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		keys = append(keys, r.Header.Get("Idempotence-Key"))
		_, _ = w.Write([]byte(`{"id": "p1", "confirmation": {"confirmation_url": "https://c"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "shop-1", "secret-key")

	_, _, err := client.CreatePayment(context.Background(), decimal.FromInt(100), "", "https://r", 1)
	require.NoError(t, err)
	_, _, err = client.CreatePayment(context.Background(), decimal.FromInt(100), "", "https://r", 1)
	require.NoError(t, err)

	require.Len(t, keys, 2)
	assert.NotEqual(t, keys[0], keys[1])
}

func TestCreatePayment_GatewayErrorCarriesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"type":"error","description":"Invalid credentials"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "shop-1", "bad-key")

	_, _, err := client.CreatePayment(context.Background(), decimal.FromInt(100), "", "https://r", 1)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "yookassa")
	assert.Contains(t, err.Error(), "Invalid credentials")
}
