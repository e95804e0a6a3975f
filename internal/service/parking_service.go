package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strconv"
	"strings"
	"time"

	"parking_admin/internal/domain"
	"parking_admin/internal/repository"

	"github.com/google/uuid"
)

var ErrValidation = errors.New("dữ liệu không hợp lệ")

// Notifier gửi tin nhắn thông báo. Trả về skipped=true nếu việc gửi bị bỏ qua
// (ví dụ: chưa cấu hình nhà cung cấp SMS).
type Notifier interface {
	Send(to string, body string) (skipped bool, err error)
}

type ParkingService struct {
	visitRepo  repository.VisitRepository
	notifier   Notifier
	adminPhone string
}

func NewParkingService(visitRepo repository.VisitRepository, notifier Notifier, adminPhone string) *ParkingService {
	return &ParkingService{
		visitRepo:  visitRepo,
		notifier:   notifier,
		adminPhone: adminPhone,
	}
}

// CheckIn ghi nhận xe vào bãi và tạo vé mới. Thông báo SMS chạy nền,
// lỗi gửi không làm hỏng check-in.
func (s *ParkingService) CheckIn(ctx context.Context, dto domain.CheckInDTO) (*domain.Visit, error) {
	vehicleNo := strings.ToUpper(strings.TrimSpace(dto.VehicleNo))
	owner := strings.TrimSpace(dto.Owner)
	if vehicleNo == "" || owner == "" {
		return nil, fmt.Errorf("%w: vehicleNo và owner là bắt buộc", ErrValidation)
	}

	checkinISO := time.Now().UTC().Format(time.RFC3339)
	if dto.CheckInISO != "" {
		t, err := time.Parse(time.RFC3339, dto.CheckInISO)
		if err != nil {
			return nil, fmt.Errorf("%w: checkInISO phải theo định dạng RFC 3339", ErrValidation)
		}
		checkinISO = t.UTC().Format(time.RFC3339)
	}

	visit := &domain.Visit{
		ID:         uuid.NewString(),
		Ticket:     newTicket(),
		VehicleNo:  vehicleNo,
		Owner:      owner,
		Phone:      strings.TrimSpace(dto.Phone),
		Type:       strings.TrimSpace(dto.Type),
		Notes:      strings.TrimSpace(dto.Notes),
		CheckinISO: checkinISO,
		Status:     domain.VisitParked,
	}

	if err := s.visitRepo.Insert(ctx, visit); err != nil {
		return nil, err
	}

	go s.notifyCheckIn(visit)

	return visit, nil
}

// CheckOut kết thúc lượt gửi đang hoạt động của một biển số và trả về biên nhận.
func (s *ParkingService) CheckOut(ctx context.Context, dto domain.CheckOutDTO) (*domain.Receipt, error) {
	vehicleNo := strings.ToUpper(strings.TrimSpace(dto.VehicleNo))
	if vehicleNo == "" {
		return nil, fmt.Errorf("%w: vehicleNo là bắt buộc", ErrValidation)
	}

	visit, err := s.visitRepo.FindActiveByVehicleNo(ctx, vehicleNo)
	if err != nil {
		return nil, err
	}

	checkoutTime := time.Now().UTC()
	if dto.CheckOutISO != "" {
		t, err := time.Parse(time.RFC3339, dto.CheckOutISO)
		if err != nil {
			return nil, fmt.Errorf("%w: checkOutISO phải theo định dạng RFC 3339", ErrValidation)
		}
		checkoutTime = t.UTC()
	}

	checkinTime, err := time.Parse(time.RFC3339, visit.CheckinISO)
	if err != nil {
		return nil, fmt.Errorf("thời gian vào của bản ghi %s không hợp lệ: %w", visit.ID, err)
	}

	// Kẹp về 0 khi checkOutISO bị lùi trước thời gian vào (lệch đồng hồ)
	durationMs := checkoutTime.Sub(checkinTime).Milliseconds()
	if durationMs < 0 {
		durationMs = 0
	}

	checkoutISO := checkoutTime.Format(time.RFC3339)
	if err := s.visitRepo.Complete(ctx, visit.ID, checkoutISO, durationMs, strings.TrimSpace(dto.Notes)); err != nil {
		return nil, err
	}

	return &domain.Receipt{
		Ticket:    visit.Ticket,
		VehicleNo: visit.VehicleNo,
		Owner:     visit.Owner,
		CheckIn:   visit.CheckinISO,
		CheckOut:  checkoutISO,
		Duration:  prettyDuration(durationMs),
	}, nil
}

func (s *ParkingService) ListVisits(ctx context.Context) ([]domain.Visit, error) {
	return s.visitRepo.FindAll(ctx)
}

func (s *ParkingService) DeleteVisit(ctx context.Context, id string) error {
	return s.visitRepo.Delete(ctx, id)
}

func (s *ParkingService) notifyCheckIn(visit *domain.Visit) {
	if s.notifier == nil || s.adminPhone == "" {
		return
	}
	msg := fmt.Sprintf("Xe vào bãi\nVé: %s\nBiển số: %s\nChủ xe: %s\nThời gian: %s",
		visit.Ticket, visit.VehicleNo, visit.Owner, visit.CheckinISO)
	if _, err := s.notifier.Send(s.adminPhone, msg); err != nil {
		log.Printf("Lỗi gửi SMS check-in cho vé %s: %v", visit.Ticket, err)
	}
}

// newTicket tạo mã vé dạng T-<unix ms, base36>-<6 ký tự base36 ngẫu nhiên>, viết hoa.
func newTicket() string {
	max := big.NewInt(2176782336) // 36^6
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		n = big.NewInt(time.Now().UnixNano() % 2176782336)
	}
	suffix := n.Text(36)
	for len(suffix) < 6 {
		suffix = "0" + suffix
	}
	ticket := "T-" + strconv.FormatInt(time.Now().UnixMilli(), 36) + "-" + suffix
	return strings.ToUpper(ticket)
}

// prettyDuration đổi mili giây sang chuỗi "45 min" hoặc "1 hr 30 min".
func prettyDuration(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	m := ms / 60000
	h := m / 60
	if h == 0 {
		return fmt.Sprintf("%d min", m)
	}
	return fmt.Sprintf("%d hr %d min", h, m%60)
}
