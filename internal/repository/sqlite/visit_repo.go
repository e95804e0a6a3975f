package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"parking_admin/internal/domain"
	"parking_admin/internal/repository"

	"github.com/mattn/go-sqlite3"
)

type sqliteVisitRepository struct {
	db *sql.DB
}

func NewVisitRepository(db *sql.DB) repository.VisitRepository {
	return &sqliteVisitRepository{db: db}
}

const visitColumns = `id, ticket, vehicle_no, owner, phone, type, notes, checkin_iso,
                      checkout_iso, duration_ms, status, created_at, updated_at`

func scanVisit(row interface{ Scan(...any) error }, v *domain.Visit) error {
	var phone, vtype, notes sql.NullString
	err := row.Scan(
		&v.ID, &v.Ticket, &v.VehicleNo, &v.Owner, &phone, &vtype, &notes,
		&v.CheckinISO, &v.CheckoutISO, &v.DurationMs, &v.Status, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return err
	}
	v.Phone = phone.String
	v.Type = vtype.String
	v.Notes = notes.String
	return nil
}

func (r *sqliteVisitRepository) Insert(ctx context.Context, visit *domain.Visit) error {
	query := `INSERT INTO vehicles
	           (id, ticket, vehicle_no, owner, phone, type, notes, checkin_iso, status, created_at, updated_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, datetime('now'), datetime('now'))`

	_, err := r.db.ExecContext(ctx, query,
		visit.ID, visit.Ticket, visit.VehicleNo, visit.Owner,
		visit.Phone, visit.Type, visit.Notes, visit.CheckinISO, visit.Status,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			// thông báo của SQLite nêu rõ index bị vi phạm, ví dụ
			// "UNIQUE constraint failed: vehicles.vehicle_no"
			if strings.Contains(err.Error(), "vehicles.vehicle_no") {
				return repository.ErrActiveVisitExists
			}
			return fmt.Errorf("%w: %v", repository.ErrDuplicateEntry, err)
		}
		return fmt.Errorf("VisitRepository.Insert: %w", err)
	}
	return nil
}

func (r *sqliteVisitRepository) FindActiveByVehicleNo(ctx context.Context, vehicleNo string) (*domain.Visit, error) {
	visit := &domain.Visit{}
	query := `SELECT ` + visitColumns + `
	           FROM vehicles
	           WHERE vehicle_no = ? AND status = ?
	           ORDER BY checkin_iso DESC LIMIT 1`

	err := scanVisit(r.db.QueryRowContext(ctx, query, vehicleNo, domain.VisitParked), visit)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNoActiveVisit
		}
		return nil, fmt.Errorf("VisitRepository.FindActiveByVehicleNo: %w", err)
	}
	return visit, nil
}

func (r *sqliteVisitRepository) Complete(ctx context.Context, id string, checkoutISO string, durationMs int64, notes string) error {
	query := `UPDATE vehicles
	           SET checkout_iso = ?, duration_ms = ?, status = ?,
	               notes = COALESCE(NULLIF(?, ''), notes),
	               updated_at = datetime('now')
	           WHERE id = ?`

	res, err := r.db.ExecContext(ctx, query, checkoutISO, durationMs, domain.VisitCheckedOut, notes, id)
	if err != nil {
		return fmt.Errorf("VisitRepository.Complete: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("VisitRepository.Complete (rows affected): %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *sqliteVisitRepository) FindAll(ctx context.Context) ([]domain.Visit, error) {
	// rowid làm tie-break khi nhiều bản ghi được tạo trong cùng một giây
	query := `SELECT ` + visitColumns + `
	           FROM vehicles ORDER BY created_at DESC, rowid DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("VisitRepository.FindAll: %w", err)
	}
	defer rows.Close()

	var visits []domain.Visit
	for rows.Next() {
		var visit domain.Visit
		if err := scanVisit(rows, &visit); err != nil {
			return nil, fmt.Errorf("VisitRepository.FindAll (scanning row): %w", err)
		}
		visits = append(visits, visit)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("VisitRepository.FindAll (rows error): %w", err)
	}
	return visits, nil
}

func (r *sqliteVisitRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM vehicles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("VisitRepository.Delete: %w", err)
	}
	return nil
}
