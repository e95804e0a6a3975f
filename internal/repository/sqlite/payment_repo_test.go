package sqlite

import (
	"context"
	"errors"
	"testing"

	"parking_admin/internal/domain"
	"parking_admin/internal/repository"

	"gopkg.in/guregu/null.v4"
)

func TestPaymentUpsertAndFind(t *testing.T) {
	db := newTestDB(t)
	visits := NewVisitRepository(db)
	payments := NewPaymentRepository(db)
	ctx := context.Background()

	// payments.ticket có khóa ngoại tới vehicles.ticket
	visit := testVisit(1)
	if err := visits.Insert(ctx, visit); err != nil {
		t.Fatalf("Insert visit: %v", err)
	}

	order := &domain.PaymentOrder{
		ID:       "pay-1",
		Ticket:   visit.Ticket,
		OrderID:  "order_abc",
		Amount:   5000,
		Currency: "INR",
		Status:   domain.PaymentCreated,
	}
	if err := payments.Upsert(ctx, order); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	got, err := payments.FindByOrderID(ctx, "order_abc")
	if err != nil {
		t.Fatalf("FindByOrderID: %v", err)
	}
	if got.Ticket != visit.Ticket || got.Amount != 5000 || got.Status != domain.PaymentCreated || got.Method.Valid {
		t.Errorf("bản ghi đọc lại sai: %+v", got)
	}

	if _, err := payments.FindByOrderID(ctx, "order_la"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("order lạ: muốn ErrNotFound, nhận %v", err)
	}
}

func TestPaymentUpsertIdempotentOnOrderID(t *testing.T) {
	db := newTestDB(t)
	visits := NewVisitRepository(db)
	payments := NewPaymentRepository(db)
	ctx := context.Background()

	visit := testVisit(1)
	if err := visits.Insert(ctx, visit); err != nil {
		t.Fatalf("Insert visit: %v", err)
	}

	order := &domain.PaymentOrder{
		ID:       "pay-1",
		Ticket:   visit.Ticket,
		OrderID:  "order_abc",
		Amount:   5000,
		Currency: "INR",
		Status:   domain.PaymentCreated,
	}
	if err := payments.Upsert(ctx, order); err != nil {
		t.Fatalf("Upsert lần 1: %v", err)
	}

	// áp lại cùng sự kiện captured hai lần, trạng thái cuối phải như áp một lần
	captured := *order
	captured.Status = domain.PaymentCaptured
	captured.Method = null.StringFrom("upi")
	for i := 0; i < 2; i++ {
		if err := payments.Upsert(ctx, &captured); err != nil {
			t.Fatalf("Upsert captured lần %d: %v", i+1, err)
		}
	}

	got, err := payments.FindByOrderID(ctx, "order_abc")
	if err != nil {
		t.Fatalf("FindByOrderID: %v", err)
	}
	if got.ID != "pay-1" {
		t.Errorf("id gốc phải được giữ nguyên, nhận %q", got.ID)
	}
	if got.Status != domain.PaymentCaptured || !got.Method.Valid || got.Method.String != "upi" {
		t.Errorf("trạng thái sau replay sai: %+v", got)
	}
}
