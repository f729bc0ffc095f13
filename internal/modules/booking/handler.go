package booking

import (
	"net/http"
	"strconv"

	"sibiria/internal/pkg/response"
	"sibiria/internal/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type Handler struct {
	service *Service
	hub     *Hub
}

func NewHandler(service *Service, hub *Hub) *Handler {
	return &Handler{service: service, hub: hub}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.Create)
	rg.POST("/bookings/create-payment", h.CreateWithPayment)
	// The payment gateway redirect drives this, hence no auth.
	rg.PATCH("/bookings/:id/status", h.ChangeStatus)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/bookings/waiting-confirmation", h.ListWaitingConfirmation)
	rg.GET("/admin/events", h.Events)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if details := validator.Validate(req); details != nil {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", details)
			return
		}
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		if err == ErrValidation {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "check_in must precede check_out")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create booking")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) CreateWithPayment(c *gin.Context) {
	var req CreateWithPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	out, err := h.service.CreateWithPayment(c.Request.Context(), req)
	if err != nil {
		if err == ErrValidation {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "check_in must precede check_out")
			return
		}
		// Gateway errors carry the upstream message; the booking row
		// already exists at this point.
		response.Error(c, http.StatusBadRequest, "PAYMENT_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusCreated, out)
}

func (h *Handler) ChangeStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.ChangeStatus(c.Request.Context(), id, req.Status); err != nil {
		switch err {
		case ErrInvalidStatus:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown booking status")
		case ErrTransitionNotAllowed:
			response.Error(c, http.StatusConflict, "TRANSITION_NOT_ALLOWED", "Status transition not allowed")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to change booking status")
		}
		return
	}

	response.NoContent(c)
}

func (h *Handler) ListWaitingConfirmation(c *gin.Context) {
	rows, err := h.service.ListWaitingConfirmation(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list bookings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": rows})
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Auth already ran in the middleware chain; origins are handled
	// by the CORS layer.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Events upgrades the admin connection and keeps it registered until
// the peer goes away. The read loop only consumes control frames.
func (h *Handler) Events(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	id := h.hub.Register(conn)
	defer h.hub.Unregister(id)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
