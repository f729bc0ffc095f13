package payment

import (
	"net/http"

	"sibiria/internal/pkg/decimal"
	"sibiria/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type CreatePaymentRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
	ReturnURL   string          `json:"return_url" binding:"required,url"`
	BookingID   int64           `json:"booking_id" binding:"required"`
}

// Handler exposes the standalone payment endpoint for bookings that
// were created without payment initiation.
type Handler struct {
	client *Client
}

func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/create", h.Create)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	paymentID, confirmationURL, err := h.client.CreatePayment(
		c.Request.Context(), req.Amount, req.Description, req.ReturnURL, req.BookingID,
	)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "PAYMENT_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"payment_id":       paymentID,
		"confirmation_url": confirmationURL,
	})
}
