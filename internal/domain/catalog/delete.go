package catalog

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
)

// deleteRows runs a DELETE and converts its outcome into a result. Zero
// affected rows means the target was already gone, reported as a warning so
// the caller can tell a no-op from a stored change.
func (s *Service) deleteRows(ctx context.Context, op, query string, args ...any) (*DeleteResult, error) {
	db, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var affected int64
	err = runTx(ctx, db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		s.logger.Error("delete failed", "op", op, "error", err)
		return &DeleteResult{Status: StatusError, Message: crudErrorMessage(err)}, nil
	}
	if affected == 0 {
		return &DeleteResult{Status: StatusWarning, Message: "Operation executed, but no matching record was found."}, nil
	}

	return &DeleteResult{Status: StatusSuccess, RowsAffected: affected}, nil
}

// DeletePrice removes one price record by id.
func (s *Service) DeletePrice(ctx context.Context, priceID int64) (*DeleteResult, error) {
	return s.deleteRows(ctx, "delete price", `DELETE FROM prices WHERE id = $1`, priceID)
}

// DeletePricesBatch removes every price record whose id is in priceIDs. An
// empty list is a warning, not an error.
func (s *Service) DeletePricesBatch(ctx context.Context, priceIDs []int64) (*DeleteResult, error) {
	if len(priceIDs) == 0 {
		return &DeleteResult{Status: StatusWarning, Message: "No price IDs provided."}, nil
	}
	return s.deleteRows(ctx, "batch delete prices", `DELETE FROM prices WHERE id = ANY($1)`, pq.Array(priceIDs))
}

// DeleteSnack removes one snack by id. Prices referencing the snack go with
// it through the cascade.
func (s *Service) DeleteSnack(ctx context.Context, snackID int64) (*DeleteResult, error) {
	return s.deleteRows(ctx, "delete snack", `DELETE FROM snacks WHERE id = $1`, snackID)
}

// DeleteShop removes one shop by id. Prices referencing the shop go with it
// through the cascade.
func (s *Service) DeleteShop(ctx context.Context, shopID int64) (*DeleteResult, error) {
	return s.deleteRows(ctx, "delete shop", `DELETE FROM shops WHERE id = $1`, shopID)
}
