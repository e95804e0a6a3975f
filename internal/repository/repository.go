package repository

import (
	"context"
	"errors"

	"parking_admin/internal/domain"
)

var ErrNotFound = errors.New("không tìm thấy bản ghi")
var ErrDuplicateEntry = errors.New("bản ghi đã tồn tại")
var ErrNoActiveVisit = errors.New("không có xe đang gửi với biển số cung cấp")
var ErrActiveVisitExists = errors.New("xe này đang có lượt gửi chưa kết thúc")

type VisitRepository interface {
	// Insert trả ErrActiveVisitExists khi biển số đã có lượt gửi đang "parked",
	// ErrDuplicateEntry khi id hoặc ticket va chạm.
	Insert(ctx context.Context, visit *domain.Visit) error
	// FindActiveByVehicleNo trả về lượt gửi đang "parked" mới nhất cho biển số
	// (biển số đã được chuẩn hóa uppercase). Không có thì trả ErrNoActiveVisit.
	FindActiveByVehicleNo(ctx context.Context, vehicleNo string) (*domain.Visit, error)
	// Complete đặt thời gian ra, duration và status=checkedout cho một lượt gửi.
	// notes rỗng thì giữ nguyên notes cũ. Không tìm thấy id thì trả ErrNotFound.
	Complete(ctx context.Context, id string, checkoutISO string, durationMs int64, notes string) error
	FindAll(ctx context.Context) ([]domain.Visit, error)
	Delete(ctx context.Context, id string) error // idempotent, xóa id không tồn tại không phải lỗi
}

type PaymentRepository interface {
	// Upsert chèn mới hoặc cập nhật theo order_id (idempotent).
	Upsert(ctx context.Context, order *domain.PaymentOrder) error
	FindByOrderID(ctx context.Context, orderID string) (*domain.PaymentOrder, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id int) (*domain.User, error)
}
