package stats

import (
	"net/http"
	"strconv"
	"time"

	"sibiria/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/statistics", h.List)
	rg.GET("/statistics/generate", h.Generate)
}

// Generate handles GET /statistics/generate?year=2026&month=7 and
// inserts a fresh snapshot for the requested month.
func (h *Handler) Generate(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid year")
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid month")
		return
	}

	snapshot, err := h.service.ComputeMonthly(c.Request.Context(), year, time.Month(month))
	if err != nil {
		if err == ErrValidation {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "year and month must describe a real month")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute statistics")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"statistic": snapshot})
}

func (h *Handler) List(c *gin.Context) {
	snapshots, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list statistics")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"statistics": snapshots})
}
