package domain

import (
	"gopkg.in/guregu/null.v4"
)

type VisitStatus string

const (
	VisitParked     VisitStatus = "parked"
	VisitCheckedOut VisitStatus = "checkedout" // trạng thái cuối, không quay lại parked
)

// Visit là một lượt gửi xe, từ lúc check-in đến lúc check-out (nếu có).
// Các mốc thời gian lưu dưới dạng chuỗi ISO-8601 (RFC 3339).
type Visit struct {
	ID          string      `json:"id"`
	Ticket      string      `json:"ticket"` // mã vé duy nhất, đưa cho chủ xe
	VehicleNo   string      `json:"vehicle_no"`
	Owner       string      `json:"owner"`
	Phone       string      `json:"phone,omitempty"`
	Type        string      `json:"type,omitempty"`
	Notes       string      `json:"notes,omitempty"`
	CheckinISO  string      `json:"checkin_iso"`
	CheckoutISO null.String `json:"checkout_iso"`
	DurationMs  null.Int    `json:"duration_ms"`
	Status      VisitStatus `json:"status"`
	CreatedAt   string      `json:"created_at"`
	UpdatedAt   string      `json:"updated_at"`
}

// DTO cho API check-in (frontend gửi lên)
type CheckInDTO struct {
	VehicleNo  string `json:"vehicleNo"`
	Owner      string `json:"owner"`
	Phone      string `json:"phone"`
	Type       string `json:"type"`
	Notes      string `json:"notes"`
	CheckInISO string `json:"checkInISO"` // tùy chọn, RFC 3339; mặc định là thời điểm hiện tại
}

// DTO cho API check-out
type CheckOutDTO struct {
	VehicleNo   string `json:"vehicleNo"`
	CheckOutISO string `json:"checkOutISO"`
	Notes       string `json:"notes"`
}

// Receipt trả về cho chủ xe khi check-out.
type Receipt struct {
	Ticket    string `json:"ticket"`
	VehicleNo string `json:"vehicleNo"`
	Owner     string `json:"owner"`
	CheckIn   string `json:"checkIn"`
	CheckOut  string `json:"checkOut"`
	Duration  string `json:"duration"` // dạng "45 min" hoặc "1 hr 30 min"
}
