package handler

import (
	"errors"
	"log"
	"net/http"

	"parking_admin/internal/domain"
	"parking_admin/internal/service"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentService *service.PaymentService
}

func NewPaymentHandler(ps *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: ps}
}

// POST /api/create-order
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	var dto domain.CreateOrderDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dữ liệu không hợp lệ: " + err.Error()})
		return
	}

	result, err := h.paymentService.CreateOrder(c.Request.Context(), dto)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		// Lỗi gateway và lỗi nội bộ đều trả thông điệp chung, chi tiết chỉ ghi log
		log.Printf("Lỗi tạo order: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tạo order thanh toán"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "keyId": result.KeyID, "order": result.Order})
}
