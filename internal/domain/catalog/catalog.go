// Package catalog implements the tool facade over the snack price schema:
// shops, brands, categories, snacks, and time-bounded prices.
//
// Every operation opens one fresh store connection, executes its statement
// (writes inside an explicit transaction), normalizes the rows, and closes
// the connection before returning. Store-reported errors are rolled back,
// logged, and converted into status-tagged results; only connection
// acquisition is allowed to fail with an error, which the transport layer
// reports as a call failure.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
)

// Connector supplies a fresh database connection for a single tool call.
// The caller owns the returned handle and must close it.
type Connector interface {
	Connect(ctx context.Context) (*sql.DB, error)
}

// Service exposes the tool operations. It holds no connection state; each
// call acquires and releases its own connection through the Connector.
type Service struct {
	conn   Connector
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a Service using conn for per-call connections.
func NewService(conn Connector, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		conn:   conn,
		logger: logger,
		now:    time.Now,
	}
}

// connect acquires the connection for one call. Failures here propagate to
// the caller instead of turning into a result envelope.
func (s *Service) connect(ctx context.Context) (*sql.DB, error) {
	db, err := s.conn.Connect(ctx)
	if err != nil {
		s.logger.Error("could not connect to database", "error", err)
		return nil, fmt.Errorf("catalog: acquire connection: %w", err)
	}
	return db, nil
}

// runTx executes fn inside a transaction, rolling back when fn fails and
// committing otherwise.
func runTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		tx.Rollback() //nolint:errcheck
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// nullableString converts a scanned nullable column to a pointer.
func nullableString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

// nullableDate formats a scanned nullable date as YYYY-MM-DD.
func nullableDate(v sql.NullTime) *string {
	if !v.Valid {
		return nil
	}
	s := v.Time.Format(dateLayout)
	return &s
}

// decimalArg converts an optional decimal into a driver argument, mapping
// nil to SQL NULL. A nil *decimal.Decimal cannot be bound directly because
// its Valuer has a value receiver.
func decimalArg(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return *d
}
