package sqlite

import (
	"database/sql"
	"fmt"

	"parking_admin/internal/config"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS vehicles (
  id TEXT PRIMARY KEY,
  ticket TEXT UNIQUE NOT NULL,
  vehicle_no TEXT NOT NULL,
  owner TEXT NOT NULL,
  phone TEXT,
  type TEXT,
  notes TEXT,
  checkin_iso TEXT NOT NULL,
  checkout_iso TEXT,
  duration_ms INTEGER,
  status TEXT NOT NULL DEFAULT 'parked',
  created_at TEXT NOT NULL DEFAULT (datetime('now')),
  updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_vehicles_vehicle_no ON vehicles(vehicle_no);
CREATE INDEX IF NOT EXISTS idx_vehicles_status ON vehicles(status);

-- Mỗi biển số chỉ được có tối đa một lượt gửi đang "parked".
-- Index này chặn cả trường hợp hai request check-in chạy song song.
CREATE UNIQUE INDEX IF NOT EXISTS idx_vehicles_active_no ON vehicles(vehicle_no) WHERE status = 'parked';

CREATE TABLE IF NOT EXISTS payments (
  id TEXT PRIMARY KEY,
  ticket TEXT NOT NULL,
  order_id TEXT UNIQUE NOT NULL,
  amount INTEGER NOT NULL, -- tính bằng paise
  currency TEXT NOT NULL DEFAULT 'INR',
  status TEXT NOT NULL DEFAULT 'created',
  method TEXT,
  created_at TEXT NOT NULL DEFAULT (datetime('now')),
  updated_at TEXT NOT NULL DEFAULT (datetime('now')),
  FOREIGN KEY(ticket) REFERENCES vehicles(ticket)
);

CREATE TABLE IF NOT EXISTS users (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  username TEXT UNIQUE NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'operator',
  created_at TEXT NOT NULL DEFAULT (datetime('now')),
  updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);
`

func NewDB(cfg *config.Config) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000", cfg.DBPath)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("lỗi mở database: %w", err)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("lỗi ping database: %w", err)
	}

	if _, err = db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("lỗi khởi tạo schema: %w", err)
	}
	return db, nil
}
