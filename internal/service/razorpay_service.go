package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"parking_admin/internal/config"

	razorpay "github.com/razorpay/razorpay-go"
)

var ErrGateway = errors.New("lỗi cổng thanh toán")

// PaymentGateway là mặt cắt của cổng thanh toán mà PaymentService cần.
type PaymentGateway interface {
	CreateOrder(amountPaise int64, currency string, receipt string, notes map[string]interface{}) (map[string]interface{}, error)
	VerifyWebhookSignature(rawBody []byte, signature string) bool
	KeyID() string
}

// RazorpayService bọc SDK Razorpay. Thiếu key thì client để nil,
// tạo order sẽ báo lỗi nhưng server vẫn khởi động bình thường.
type RazorpayService struct {
	client        *razorpay.Client
	keyID         string
	webhookSecret string
}

func NewRazorpayService(cfg *config.Config) *RazorpayService {
	var client *razorpay.Client
	if cfg.RazorpayKeyID != "" && cfg.RazorpayKeySecret != "" {
		client = razorpay.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	}
	return &RazorpayService{
		client:        client,
		keyID:         cfg.RazorpayKeyID,
		webhookSecret: cfg.RazorpayWebhookSecret,
	}
}

func (s *RazorpayService) KeyID() string { return s.keyID }

func (s *RazorpayService) CreateOrder(amountPaise int64, currency string, receipt string, notes map[string]interface{}) (map[string]interface{}, error) {
	if s.client == nil {
		return nil, fmt.Errorf("%w: Razorpay chưa được cấu hình", ErrGateway)
	}

	data := map[string]interface{}{
		"amount":   amountPaise,
		"currency": currency,
		"receipt":  receipt,
		"notes":    notes,
	}
	order, err := s.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	return order, nil
}

// VerifyWebhookSignature so sánh chữ ký với HMAC-SHA256 tính trên đúng
// chuỗi byte thô của request. hmac.Equal so sánh constant-time và coi
// hai chuỗi khác độ dài là không khớp chứ không phải lỗi.
// Chưa cấu hình webhook secret thì từ chối mọi chữ ký, kể cả chữ ký
// ký bằng key rỗng.
func (s *RazorpayService) VerifyWebhookSignature(rawBody []byte, signature string) bool {
	if s.webhookSecret == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(s.webhookSecret))
	mac.Write(rawBody)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
