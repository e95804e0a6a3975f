package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"parking_admin/internal/domain"
	"parking_admin/internal/repository"
)

type fakeVisitRepo struct {
	insertFn     func(ctx context.Context, v *domain.Visit) error
	findActiveFn func(ctx context.Context, vehicleNo string) (*domain.Visit, error)
	completeFn   func(ctx context.Context, id string, checkoutISO string, durationMs int64, notes string) error
	findAllFn    func(ctx context.Context) ([]domain.Visit, error)
	deleteFn     func(ctx context.Context, id string) error
}

func (f *fakeVisitRepo) Insert(ctx context.Context, v *domain.Visit) error {
	if f.insertFn == nil {
		return nil
	}
	return f.insertFn(ctx, v)
}

func (f *fakeVisitRepo) FindActiveByVehicleNo(ctx context.Context, vehicleNo string) (*domain.Visit, error) {
	if f.findActiveFn == nil {
		return nil, repository.ErrNoActiveVisit
	}
	return f.findActiveFn(ctx, vehicleNo)
}

func (f *fakeVisitRepo) Complete(ctx context.Context, id string, checkoutISO string, durationMs int64, notes string) error {
	if f.completeFn == nil {
		return nil
	}
	return f.completeFn(ctx, id, checkoutISO, durationMs, notes)
}

func (f *fakeVisitRepo) FindAll(ctx context.Context) ([]domain.Visit, error) {
	if f.findAllFn == nil {
		return nil, nil
	}
	return f.findAllFn(ctx)
}

func (f *fakeVisitRepo) Delete(ctx context.Context, id string) error {
	if f.deleteFn == nil {
		return nil
	}
	return f.deleteFn(ctx, id)
}

type noopNotifier struct{}

func (noopNotifier) Send(to string, body string) (bool, error) { return true, nil }

func newTestParkingService(repo repository.VisitRepository) *ParkingService {
	return NewParkingService(repo, noopNotifier{}, "")
}

func TestCheckInValidation(t *testing.T) {
	s := newTestParkingService(&fakeVisitRepo{})

	cases := []domain.CheckInDTO{
		{VehicleNo: "", Owner: "Nguyen Van A"},
		{VehicleNo: "29A-12345", Owner: ""},
		{VehicleNo: "   ", Owner: "   "},
		{VehicleNo: "29A-12345", Owner: "Nguyen Van A", CheckInISO: "hom qua"},
		{VehicleNo: "29A-12345", Owner: "Nguyen Van A", CheckInISO: "2026-13-99"},
	}
	for _, dto := range cases {
		if _, err := s.CheckIn(context.Background(), dto); !errors.Is(err, ErrValidation) {
			t.Errorf("CheckIn(%+v): muốn ErrValidation, nhận %v", dto, err)
		}
	}
}

func TestCheckInNormalizesAndPersists(t *testing.T) {
	var saved *domain.Visit
	repo := &fakeVisitRepo{insertFn: func(ctx context.Context, v *domain.Visit) error {
		saved = v
		return nil
	}}
	s := newTestParkingService(repo)

	visit, err := s.CheckIn(context.Background(), domain.CheckInDTO{
		VehicleNo:  "  29a-12345 ",
		Owner:      "  Nguyen Van A ",
		CheckInISO: "2026-09-01T08:00:00Z",
	})
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if saved == nil {
		t.Fatalf("chưa gọi Insert")
	}
	if visit.VehicleNo != "29A-12345" {
		t.Errorf("vehicle_no chưa chuẩn hóa: %q", visit.VehicleNo)
	}
	if visit.Owner != "Nguyen Van A" {
		t.Errorf("owner chưa trim: %q", visit.Owner)
	}
	if visit.Status != domain.VisitParked {
		t.Errorf("status = %q, muốn parked", visit.Status)
	}
	if visit.CheckinISO != "2026-09-01T08:00:00Z" {
		t.Errorf("checkin_iso = %q", visit.CheckinISO)
	}
	if visit.ID == "" || visit.Ticket == "" {
		t.Errorf("id/ticket rỗng: %q %q", visit.ID, visit.Ticket)
	}
}

func TestCheckInTicketsUnique(t *testing.T) {
	s := newTestParkingService(&fakeVisitRepo{})

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		visit, err := s.CheckIn(context.Background(), domain.CheckInDTO{VehicleNo: "30F-00001", Owner: "B"})
		if err != nil {
			t.Fatalf("CheckIn lần %d: %v", i, err)
		}
		if seen[visit.Ticket] {
			t.Fatalf("ticket trùng: %s", visit.Ticket)
		}
		seen[visit.Ticket] = true
	}
}

func TestCheckOutNoActiveVisit(t *testing.T) {
	s := newTestParkingService(&fakeVisitRepo{})

	_, err := s.CheckOut(context.Background(), domain.CheckOutDTO{VehicleNo: "51K-99999"})
	if !errors.Is(err, repository.ErrNoActiveVisit) {
		t.Fatalf("muốn ErrNoActiveVisit, nhận %v", err)
	}
}

func TestCheckOutClampsNegativeDuration(t *testing.T) {
	var gotDuration int64 = -1
	repo := &fakeVisitRepo{
		findActiveFn: func(ctx context.Context, vehicleNo string) (*domain.Visit, error) {
			return &domain.Visit{
				ID:         "v1",
				Ticket:     "T-ABC",
				VehicleNo:  vehicleNo,
				Owner:      "C",
				CheckinISO: "2026-09-01T10:00:00Z",
				Status:     domain.VisitParked,
			}, nil
		},
		completeFn: func(ctx context.Context, id string, checkoutISO string, durationMs int64, notes string) error {
			gotDuration = durationMs
			return nil
		},
	}
	s := newTestParkingService(repo)

	// checkOutISO trước thời gian vào
	receipt, err := s.CheckOut(context.Background(), domain.CheckOutDTO{
		VehicleNo:   "29A-12345",
		CheckOutISO: "2026-09-01T09:00:00Z",
	})
	if err != nil {
		t.Fatalf("CheckOut: %v", err)
	}
	if gotDuration != 0 {
		t.Errorf("duration_ms = %d, muốn kẹp về 0", gotDuration)
	}
	if receipt.Duration != "0 min" {
		t.Errorf("duration = %q, muốn \"0 min\"", receipt.Duration)
	}
}

func TestCheckOutReceipt(t *testing.T) {
	repo := &fakeVisitRepo{
		findActiveFn: func(ctx context.Context, vehicleNo string) (*domain.Visit, error) {
			return &domain.Visit{
				ID:         "v1",
				Ticket:     "T-ABC",
				VehicleNo:  "29A-12345",
				Owner:      "C",
				CheckinISO: "2026-09-01T10:00:00Z",
				Status:     domain.VisitParked,
			}, nil
		},
	}
	s := newTestParkingService(repo)

	receipt, err := s.CheckOut(context.Background(), domain.CheckOutDTO{
		VehicleNo:   "29a-12345",
		CheckOutISO: "2026-09-01T11:30:00Z",
	})
	if err != nil {
		t.Fatalf("CheckOut: %v", err)
	}
	if receipt.Ticket != "T-ABC" || receipt.VehicleNo != "29A-12345" || receipt.Owner != "C" {
		t.Errorf("receipt sai: %+v", receipt)
	}
	if receipt.CheckIn != "2026-09-01T10:00:00Z" || receipt.CheckOut != "2026-09-01T11:30:00Z" {
		t.Errorf("mốc thời gian sai: %+v", receipt)
	}
	if receipt.Duration != "1 hr 30 min" {
		t.Errorf("duration = %q, muốn \"1 hr 30 min\"", receipt.Duration)
	}
}

func TestPrettyDuration(t *testing.T) {
	cases := []struct {
		ms   int64
		want string
	}{
		{0, "0 min"},
		{59999, "0 min"},
		{45 * 60000, "45 min"},
		{59 * 60000, "59 min"},
		{60 * 60000, "1 hr 0 min"},
		{90 * 60000, "1 hr 30 min"},
		{26*3600000 + 5*60000, "26 hr 5 min"},
		{-1000, "0 min"},
	}
	for _, c := range cases {
		if got := prettyDuration(c.ms); got != c.want {
			t.Errorf("prettyDuration(%d) = %q, muốn %q", c.ms, got, c.want)
		}
	}
}

func TestCheckOutUsesCurrentTimeByDefault(t *testing.T) {
	start := time.Now().UTC()
	repo := &fakeVisitRepo{
		findActiveFn: func(ctx context.Context, vehicleNo string) (*domain.Visit, error) {
			return &domain.Visit{
				ID:         "v1",
				Ticket:     "T-ABC",
				VehicleNo:  vehicleNo,
				Owner:      "C",
				CheckinISO: start.Add(-5 * time.Minute).Format(time.RFC3339),
				Status:     domain.VisitParked,
			}, nil
		},
	}
	s := newTestParkingService(repo)

	receipt, err := s.CheckOut(context.Background(), domain.CheckOutDTO{VehicleNo: "29A-12345"})
	if err != nil {
		t.Fatalf("CheckOut: %v", err)
	}
	out, err := time.Parse(time.RFC3339, receipt.CheckOut)
	if err != nil {
		t.Fatalf("checkOut không phải RFC 3339: %q", receipt.CheckOut)
	}
	if out.Before(start.Truncate(time.Second)) {
		t.Errorf("checkOut %v trước thời điểm bắt đầu test %v", out, start)
	}
}
