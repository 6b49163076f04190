/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"creditline-client-go/internal/models"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service is the local sqlite journal of submitted operations. It exists so
// the dashboard can show recent activity without a node round trip; the
// on-chain event log stays authoritative.
type Service struct {
	db *sql.DB
}

// OperationRecord captures one settled (or rejected) operation.
type OperationRecord struct {
	Kind    string
	Address string
	Amount  decimal.Decimal
	TxRef   string
	Status  string
}

// Entry is one stored journal row.
type Entry struct {
	Id        string
	Kind      string
	Address   string
	Amount    decimal.Decimal
	TxRef     string
	Status    string
	CreatedAt time.Time
}

func NewService(ctx context.Context, cfg models.JournalConfig) (*Service, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("journal path cannot be empty")
	}
	if cfg.MaxOpenConns <= 0 {
		return nil, fmt.Errorf("max open connections must be positive, got %d", cfg.MaxOpenConns)
	}
	if cfg.PingTimeout <= 0 {
		return nil, fmt.Errorf("ping timeout must be positive, got %v", cfg.PingTimeout)
	}

	zap.L().Info("Opening operation journal", zap.String("file", cfg.Path))
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=1000")
	if err != nil {
		return nil, fmt.Errorf("unable to open journal database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to ping journal database: %w", err)
	}

	service := &Service{db: db}
	if err := service.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to initialize journal schema: %w", err)
	}

	zap.L().Info("Operation journal initialized")
	return service, nil
}

func (s *Service) Close() {
	if err := s.db.Close(); err != nil {
		zap.L().Warn("Failed to close journal database", zap.Error(err))
	}
}

func (s *Service) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS operations (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		address TEXT NOT NULL,
		amount TEXT NOT NULL,
		tx_ref TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_operations_address ON operations(address, created_at);
	CREATE INDEX IF NOT EXISTS idx_operations_tx_ref ON operations(tx_ref);
	`
	_, err := s.db.Exec(schema)
	return err
}

// RecordOperation appends one operation to the journal.
func (s *Service) RecordOperation(ctx context.Context, rec OperationRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO operations (id, kind, address, amount, tx_ref, status) VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), rec.Kind, rec.Address, rec.Amount.String(), rec.TxRef, rec.Status)
	if err != nil {
		return fmt.Errorf("unable to record operation: %w", err)
	}
	return nil
}

// History returns the most recent operations for an address, newest first.
func (s *Service) History(ctx context.Context, address string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, address, amount, tx_ref, status, created_at
		 FROM operations WHERE address = ?
		 ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		address, limit)
	if err != nil {
		return nil, fmt.Errorf("unable to query operation history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var amount string
		if err := rows.Scan(&e.Id, &e.Kind, &e.Address, &amount, &e.TxRef, &e.Status, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("unable to scan operation row: %w", err)
		}
		e.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("corrupt amount %q in journal: %w", amount, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
