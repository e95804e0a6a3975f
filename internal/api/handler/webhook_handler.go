package handler

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"parking_admin/internal/service"

	"github.com/gin-gonic/gin"
)

type WebhookHandler struct {
	paymentService *service.PaymentService
	gateway        service.PaymentGateway
}

func NewWebhookHandler(ps *service.PaymentService, gateway service.PaymentGateway) *WebhookHandler {
	return &WebhookHandler{paymentService: ps, gateway: gateway}
}

type razorpayEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				OrderID string `json:"order_id"`
				Method  string `json:"method"`
				Amount  int64  `json:"amount"` // Razorpay gửi amount bằng paise
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// POST /webhooks/razorpay
// Chữ ký được tính trên đúng chuỗi byte thô của request, nên phải đọc body
// trước khi parse JSON. Lỗi chữ ký trả 400 dạng text, không phải JSON.
func (h *WebhookHandler) HandleRazorpay(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid body")
		return
	}

	signature := c.GetHeader("x-razorpay-signature")
	if signature == "" {
		c.String(http.StatusBadRequest, "Missing signature")
		return
	}
	if !h.gateway.VerifyWebhookSignature(raw, signature) {
		c.String(http.StatusBadRequest, "Invalid signature")
		return
	}

	var event razorpayEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		log.Printf("Lỗi parse payload webhook: %v", err)
		c.String(http.StatusInternalServerError, "Webhook error")
		return
	}

	// Chỉ payment.captured làm thay đổi trạng thái, các sự kiện khác ghi nhận rồi bỏ qua
	if event.Event == "payment.captured" {
		entity := event.Payload.Payment.Entity
		if err := h.paymentService.HandleCaptured(c.Request.Context(), entity.OrderID, entity.Method, entity.Amount); err != nil {
			log.Printf("Lỗi xử lý payment.captured cho order %s: %v", entity.OrderID, err)
			c.String(http.StatusInternalServerError, "Webhook error")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
