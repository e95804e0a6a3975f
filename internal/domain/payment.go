package domain

import (
	"gopkg.in/guregu/null.v4"
)

const (
	PaymentCreated  = "created"
	PaymentCaptured = "captured"
	// Razorpay còn có các trạng thái khác (attempted, paid...), lưu nguyên văn
)

// PaymentOrder là một order phía cổng thanh toán, tham chiếu Visit qua mã vé.
// Amount luôn tính bằng đơn vị nhỏ nhất (paise).
type PaymentOrder struct {
	ID        string      `json:"id"`
	Ticket    string      `json:"ticket"`
	OrderID   string      `json:"order_id"` // id order do Razorpay cấp, duy nhất
	Amount    int64       `json:"amount"`
	Currency  string      `json:"currency"`
	Status    string      `json:"status"`
	Method    null.String `json:"method"`
	CreatedAt string      `json:"created_at"`
	UpdatedAt string      `json:"updated_at"`
}

// DTO cho API tạo order. Amount tính bằng đơn vị tiền tệ đầy đủ (rupee),
// service sẽ quy đổi sang paise trước khi gọi cổng thanh toán.
type CreateOrderDTO struct {
	Ticket string  `json:"ticket"`
	Amount float64 `json:"amount"`
}
