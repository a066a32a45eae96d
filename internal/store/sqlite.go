package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"invoice-audit/internal/common"
	"invoice-audit/internal/extract"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS invoices (
	id          TEXT PRIMARY KEY,
	filename    TEXT NOT NULL,
	vendor      TEXT NOT NULL,
	total       TEXT NOT NULL,
	currency    TEXT NOT NULL,
	status      TEXT NOT NULL,
	legitimacy  INTEGER NOT NULL,
	payload     TEXT NOT NULL,
	created_at  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_invoices_created_at ON invoices(created_at);
`

// SQLiteStore keeps records in a local SQLite file (or :memory:).
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLite opens (and migrates) the SQLite database at path.
func NewSQLite(ctx context.Context, path string, logger *slog.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Single connection: sqlite allows one writer, and :memory: databases
	// are per-connection.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	logger.Info("store.sqlite.ready", "path", path)
	return &SQLiteStore{db: db, logger: logger}, nil
}

func (s *SQLiteStore) Save(ctx context.Context, ex *extract.InvoiceExtraction) (*Record, error) {
	rec := &Record{ID: uuid.New(), CreatedAt: time.Now().UTC(), Extraction: ex}
	payload, err := json.Marshal(ex)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO invoices (id, filename, vendor, total, currency, status, legitimacy, payload, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID.String(), ex.Filename, ex.Sender.CompanyName, ex.Amounts.Total, ex.Amounts.Currency,
		string(ex.Legitimacy.LegitimacyStatus), ex.Legitimacy.LegitimacyScore, string(payload), rec.CreatedAt,
	)
	if err != nil {
		return nil, common.WrapError(err, "insert invoice")
	}
	return rec, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]*Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, payload, created_at FROM invoices ORDER BY created_at DESC`)
	if err != nil {
		return nil, common.WrapError(err, "query invoices")
	}
	defer rows.Close()

	var out []*Record
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Get(ctx context.Context, id uuid.UUID) (*Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, payload, created_at FROM invoices WHERE id = ?`, id.String())
	rec, err := scanRecord(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	return rec, err
}

func (s *SQLiteStore) Update(ctx context.Context, id uuid.UUID, ex *extract.InvoiceExtraction) error {
	payload, err := json.Marshal(ex)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE invoices SET vendor = ?, total = ?, currency = ?, payload = ? WHERE id = ?`,
		ex.Sender.CompanyName, ex.Amounts.Total, ex.Amounts.Currency, string(payload), id.String(),
	)
	if err != nil {
		return common.WrapError(err, "update invoice")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM invoices`)
	return common.WrapError(err, "clear invoices")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// scanRecord decodes one (id, payload, created_at) row.
func scanRecord(scan func(...any) error) (*Record, error) {
	var (
		idStr     string
		payload   string
		createdAt time.Time
	)
	if err := scan(&idStr, &payload, &createdAt); err != nil {
		return nil, err
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("parse record id: %w", err)
	}
	var ex extract.InvoiceExtraction
	if err := json.Unmarshal([]byte(payload), &ex); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return &Record{ID: id, CreatedAt: createdAt, Extraction: &ex}, nil
}
