package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"parking_admin/internal/domain"
	"parking_admin/internal/repository"
)

type sqlitePaymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &sqlitePaymentRepository{db: db}
}

func (r *sqlitePaymentRepository) Upsert(ctx context.Context, order *domain.PaymentOrder) error {
	query := `INSERT INTO payments (id, ticket, order_id, amount, currency, status, method, created_at, updated_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?, datetime('now'), datetime('now'))
	           ON CONFLICT(order_id) DO UPDATE SET
	             amount = excluded.amount,
	             status = excluded.status,
	             method = excluded.method,
	             updated_at = datetime('now')`

	_, err := r.db.ExecContext(ctx, query,
		order.ID, order.Ticket, order.OrderID, order.Amount,
		order.Currency, order.Status, order.Method,
	)
	if err != nil {
		return fmt.Errorf("PaymentRepository.Upsert: %w", err)
	}
	return nil
}

func (r *sqlitePaymentRepository) FindByOrderID(ctx context.Context, orderID string) (*domain.PaymentOrder, error) {
	order := &domain.PaymentOrder{}
	query := `SELECT id, ticket, order_id, amount, currency, status, method, created_at, updated_at
	           FROM payments WHERE order_id = ?`

	err := r.db.QueryRowContext(ctx, query, orderID).Scan(
		&order.ID, &order.Ticket, &order.OrderID, &order.Amount,
		&order.Currency, &order.Status, &order.Method, &order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("PaymentRepository.FindByOrderID: %w", err)
	}
	return order, nil
}
