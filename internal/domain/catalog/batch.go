package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// BatchPrice is one entry of a batch price insert. Field semantics match
// AddPriceInput.
type BatchPrice struct {
	ShopID        int64
	SnackID       int64
	Price         decimal.Decimal
	DiscountPrice *decimal.Decimal
	StartDate     string
	EndDate       string
}

// batchInsertColumns is the number of bind parameters per batch entry.
const batchInsertColumns = 5

// buildBatchInsert renders one multi-row INSERT covering all entries.
func buildBatchInsert(entries []BatchPrice, today time.Time) (string, []any, error) {
	var sb strings.Builder
	sb.WriteString("INSERT INTO prices (shop_id, snack_id, price, discount_price, valid_period) VALUES ")

	args := make([]any, 0, len(entries)*batchInsertColumns)
	for i, entry := range entries {
		validPeriod, err := buildDateRange(entry.StartDate, entry.EndDate, today)
		if err != nil {
			return "", nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if i > 0 {
			sb.WriteString(", ")
		}
		n := i * batchInsertColumns
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4, n+5)
		args = append(args, entry.ShopID, entry.SnackID, entry.Price, decimalArg(entry.DiscountPrice), validPeriod)
	}

	return sb.String(), args, nil
}

// AddPricesBatch inserts all entries with a single statement. The batch is
// atomic: when any entry is rejected the whole batch rolls back and nothing
// is stored. An empty batch is a warning, not an error.
func (s *Service) AddPricesBatch(ctx context.Context, entries []BatchPrice) (*BatchResult, error) {
	if len(entries) == 0 {
		return &BatchResult{Status: StatusWarning, Message: "No price data provided."}, nil
	}

	query, args, err := buildBatchInsert(entries, s.now())
	if err != nil {
		return nil, fmt.Errorf("catalog: batch add prices: %w", err)
	}

	db, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var inserted int64
	err = runTx(ctx, db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		inserted, err = res.RowsAffected()
		return err
	})
	if err != nil {
		s.logger.Error("batch price insert failed", "entries", len(entries), "error", err)
		return &BatchResult{Status: StatusError, Message: fmt.Sprintf("Batch add price failed: %v", err)}, nil
	}

	return &BatchResult{
		Status:   StatusSuccess,
		Message:  fmt.Sprintf("Successfully added %d price records.", inserted),
		Inserted: inserted,
	}, nil
}
