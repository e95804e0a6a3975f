package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"

	"parking_admin/internal/domain"
	"parking_admin/internal/repository"

	"github.com/google/uuid"
	"gopkg.in/guregu/null.v4"
)

type PaymentService struct {
	paymentRepo repository.PaymentRepository
	gateway     PaymentGateway
	notifier    Notifier
	adminPhone  string
}

func NewPaymentService(paymentRepo repository.PaymentRepository, gateway PaymentGateway, notifier Notifier, adminPhone string) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		gateway:     gateway,
		notifier:    notifier,
		adminPhone:  adminPhone,
	}
}

type CreateOrderResult struct {
	KeyID string                 `json:"keyId"` // key công khai, frontend cần cho widget thanh toán
	Order map[string]interface{} `json:"order"`
}

// CreateOrder tạo order trên Razorpay cho một vé và lưu lại bản ghi thanh toán.
// dto.Amount tính bằng rupee, quy đổi sang paise tại đây (một lần duy nhất);
// cột amount trong DB luôn là paise.
func (s *PaymentService) CreateOrder(ctx context.Context, dto domain.CreateOrderDTO) (*CreateOrderResult, error) {
	ticket := strings.TrimSpace(dto.Ticket)
	if ticket == "" || dto.Amount <= 0 {
		return nil, fmt.Errorf("%w: ticket và amount là bắt buộc", ErrValidation)
	}
	paise := int64(math.Round(dto.Amount * 100))

	order, err := s.gateway.CreateOrder(paise, "INR", ticket, map[string]interface{}{"ticket": ticket})
	if err != nil {
		return nil, err
	}

	orderID, _ := order["id"].(string)
	if orderID == "" {
		return nil, fmt.Errorf("%w: phản hồi tạo order không có id", ErrGateway)
	}

	record := &domain.PaymentOrder{
		ID:       uuid.NewString(),
		Ticket:   ticket,
		OrderID:  orderID,
		Amount:   orderAmount(order, paise),
		Currency: orderString(order, "currency", "INR"),
		Status:   orderString(order, "status", domain.PaymentCreated),
		Method:   null.String{},
	}
	if err := s.paymentRepo.Upsert(ctx, record); err != nil {
		return nil, err
	}

	return &CreateOrderResult{KeyID: s.gateway.KeyID(), Order: order}, nil
}

// HandleCaptured xử lý sự kiện payment.captured từ webhook. Order không có
// trong hệ thống thì bỏ qua lặng lẽ: Razorpay có thể bắn sự kiện cho các
// tích hợp khác dùng chung tài khoản. amountPaise đã là paise, lưu nguyên văn.
func (s *PaymentService) HandleCaptured(ctx context.Context, orderID string, method string, amountPaise int64) error {
	existing, err := s.paymentRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}

	existing.Status = domain.PaymentCaptured
	existing.Method = null.NewString(method, method != "")
	if amountPaise > 0 {
		existing.Amount = amountPaise
	}
	if err := s.paymentRepo.Upsert(ctx, existing); err != nil {
		return err
	}

	go s.notifyPaymentSuccess(existing.Ticket, existing.Amount)

	return nil
}

func (s *PaymentService) notifyPaymentSuccess(ticket string, amountPaise int64) {
	if s.notifier == nil || s.adminPhone == "" {
		return
	}
	msg := fmt.Sprintf("Thanh toán thành công\nVé: %s\nSố tiền: ₹%.2f", ticket, float64(amountPaise)/100)
	if _, err := s.notifier.Send(s.adminPhone, msg); err != nil {
		log.Printf("Lỗi gửi SMS thanh toán cho vé %s: %v", ticket, err)
	}
}

func orderString(order map[string]interface{}, key string, fallback string) string {
	if v, ok := order[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

// orderAmount đọc amount từ phản hồi của gateway; JSON decode ra float64,
// còn dữ liệu tự dựng trong test có thể là số nguyên.
func orderAmount(order map[string]interface{}, fallback int64) int64 {
	switch v := order["amount"].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	}
	return fallback
}
