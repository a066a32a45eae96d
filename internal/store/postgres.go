package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"invoice-audit/internal/common"
	"invoice-audit/internal/extract"
)

const pgSchema = `
CREATE TABLE IF NOT EXISTS invoices (
	id          UUID PRIMARY KEY,
	filename    TEXT NOT NULL,
	vendor      TEXT NOT NULL,
	total       TEXT NOT NULL,
	currency    TEXT NOT NULL,
	status      TEXT NOT NULL,
	legitimacy  INT NOT NULL,
	payload     JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_invoices_created_at ON invoices(created_at);
`

// PostgresStore keeps records in Postgres via a pgx pool.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// poolConfig translates the store configuration into pgx pool tuning.
func poolConfig(cfg common.StoreConfig) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	pc.MaxConns = cfg.MaxConns
	pc.MinConns = cfg.MinConns
	pc.MaxConnLifetime = cfg.MaxConnLifetime
	pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	pc.ConnConfig.RuntimeParams["application_name"] = "invoice-audit"
	return pc, nil
}

// NewPostgres connects per cfg, applies pool tuning, and migrates the
// schema. The caller owns Close.
func NewPostgres(ctx context.Context, cfg common.StoreConfig, logger *slog.Logger) (*PostgresStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	pc, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}

	dialTimeout := cfg.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = 10 * time.Second
	}
	dialCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	pool, err := pgxpool.NewWithConfig(dialCtx, pc)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(dialCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, pgSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate postgres: %w", err)
	}
	logger.Info("store.postgres.ready",
		"max_conns", cfg.MaxConns, "min_conns", cfg.MinConns)
	return &PostgresStore{pool: pool, logger: logger}, nil
}

func (s *PostgresStore) Save(ctx context.Context, ex *extract.InvoiceExtraction) (*Record, error) {
	rec := &Record{ID: uuid.New(), CreatedAt: time.Now().UTC(), Extraction: ex}
	payload, err := json.Marshal(ex)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO invoices (id, filename, vendor, total, currency, status, legitimacy, payload, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rec.ID, ex.Filename, ex.Sender.CompanyName, ex.Amounts.Total, ex.Amounts.Currency,
		string(ex.Legitimacy.LegitimacyStatus), ex.Legitimacy.LegitimacyScore, payload, rec.CreatedAt,
	)
	if err != nil {
		return nil, common.WrapError(err, "insert invoice")
	}
	return rec, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*Record, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, payload, created_at FROM invoices ORDER BY created_at DESC`)
	if err != nil {
		return nil, common.WrapError(err, "query invoices")
	}
	defer rows.Close()

	var out []*Record
	for rows.Next() {
		var (
			id        uuid.UUID
			payload   []byte
			createdAt time.Time
		)
		if err := rows.Scan(&id, &payload, &createdAt); err != nil {
			return nil, err
		}
		var ex extract.InvoiceExtraction
		if err := json.Unmarshal(payload, &ex); err != nil {
			return nil, fmt.Errorf("decode payload: %w", err)
		}
		out = append(out, &Record{ID: id, CreatedAt: createdAt, Extraction: &ex})
	}
	return out, rows.Err()
}

func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID) (*Record, error) {
	var (
		payload   []byte
		createdAt time.Time
	)
	err := s.pool.QueryRow(ctx,
		`SELECT payload, created_at FROM invoices WHERE id = $1`, id).
		Scan(&payload, &createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, common.WrapError(err, "query invoice")
	}
	var ex extract.InvoiceExtraction
	if err := json.Unmarshal(payload, &ex); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return &Record{ID: id, CreatedAt: createdAt, Extraction: &ex}, nil
}

func (s *PostgresStore) Update(ctx context.Context, id uuid.UUID, ex *extract.InvoiceExtraction) error {
	payload, err := json.Marshal(ex)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE invoices SET vendor = $1, total = $2, currency = $3, payload = $4 WHERE id = $5`,
		ex.Sender.CompanyName, ex.Amounts.Total, ex.Amounts.Currency, payload, id,
	)
	if err != nil {
		return common.WrapError(err, "update invoice")
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Clear(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM invoices`)
	return common.WrapError(err, "clear invoices")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
