package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// AddShopInput carries the fields of a new shop. Address must be unique
// across shops.
type AddShopInput struct {
	Name    string
	Address string
	Phone   *string
}

// AddShop inserts a shop and returns the stored row.
func (s *Service) AddShop(ctx context.Context, in AddShopInput) (*ShopResult, error) {
	db, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var (
		shop  Shop
		phone sql.NullString
	)
	err = runTx(ctx, db, func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx,
			`INSERT INTO shops (name, address, phone) VALUES ($1, $2, $3) RETURNING id, name, address, phone`,
			in.Name, in.Address, in.Phone,
		).Scan(&shop.ID, &shop.Name, &shop.Address, &phone)
	})
	if err != nil {
		s.logger.Error("shop insert failed", "name", in.Name, "error", err)
		return &ShopResult{Status: StatusError, Message: crudErrorMessage(err)}, nil
	}
	shop.Phone = nullableString(phone)

	return &ShopResult{Status: StatusSuccess, Data: &shop}, nil
}

// AddSnackInput carries the fields of a new snack. Brand and category are
// names; missing lookup rows are created on the fly.
type AddSnackInput struct {
	Name        string
	Brand       string
	Category    string
	Description *string
	Spec        *string
	Barcode     *string
}

// AddSnack inserts a snack, creating its brand and category rows first when
// they do not exist yet. The lookups and the insert share one transaction,
// so a rejected snack leaves no stray brand or category behind.
func (s *Service) AddSnack(ctx context.Context, in AddSnackInput) (*SnackResult, error) {
	db, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	s.logger.Info("adding snack", "name", in.Name, "brand", in.Brand, "category", in.Category)

	var (
		rec                        SnackRecord
		description, spec, barcode sql.NullString
	)
	err = runTx(ctx, db, func(tx *sql.Tx) error {
		brandID, err := s.getOrCreateID(ctx, tx, "brands", in.Brand)
		if err != nil {
			return err
		}
		categoryID, err := s.getOrCreateID(ctx, tx, "categories", in.Category)
		if err != nil {
			return err
		}
		return tx.QueryRowContext(ctx,
			`INSERT INTO snacks (name, brand_id, category_id, description, spec, barcode)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, name, brand_id, category_id, description, spec, barcode`,
			in.Name, brandID, categoryID, in.Description, in.Spec, in.Barcode,
		).Scan(&rec.ID, &rec.Name, &rec.BrandID, &rec.CategoryID, &description, &spec, &barcode)
	})
	if err != nil {
		s.logger.Error("snack insert failed", "name", in.Name, "error", err)
		return &SnackResult{Status: StatusError, Message: addSnackErrorMessage(err)}, nil
	}
	rec.Description = nullableString(description)
	rec.Spec = nullableString(spec)
	rec.Barcode = nullableString(barcode)
	rec.Brand = in.Brand
	rec.Category = in.Category

	return &SnackResult{Status: StatusSuccess, Data: &rec}, nil
}

// getOrCreateID resolves the id of the row in table named name, inserting
// the row first when it does not exist. table is always one of the fixed
// lookup table names, never caller input.
func (s *Service) getOrCreateID(ctx context.Context, tx *sql.Tx, table, name string) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx, `SELECT id FROM `+table+` WHERE name = $1`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}

	if err := tx.QueryRowContext(ctx, `INSERT INTO `+table+` (name) VALUES ($1) RETURNING id`, name).Scan(&id); err != nil {
		return 0, err
	}
	s.logger.Info("created lookup row", "table", table, "name", name, "id", id)
	return id, nil
}

// AddPriceInput carries the fields of a new price record. StartDate and
// EndDate are YYYY-MM-DD; an empty start means today and an empty end
// leaves the validity open.
type AddPriceInput struct {
	ShopID        int64
	SnackID       int64
	Price         decimal.Decimal
	DiscountPrice *decimal.Decimal
	StartDate     string
	EndDate       string
}

// AddPrice inserts a price record with its validity period and returns the
// stored row, bounds included as the store canonicalized them.
func (s *Service) AddPrice(ctx context.Context, in AddPriceInput) (*PriceResult, error) {
	validPeriod, err := buildDateRange(in.StartDate, in.EndDate, s.now())
	if err != nil {
		return nil, fmt.Errorf("catalog: add price: %w", err)
	}

	db, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var (
		price      Price
		discount   sql.NullString
		start, end sql.NullTime
	)
	err = runTx(ctx, db, func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx,
			`INSERT INTO prices (shop_id, snack_id, price, discount_price, valid_period)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, shop_id, snack_id, price, discount_price, lower(valid_period) AS start_date, upper(valid_period) AS end_date`,
			in.ShopID, in.SnackID, in.Price, decimalArg(in.DiscountPrice), validPeriod,
		).Scan(&price.ID, &price.ShopID, &price.SnackID, &price.Price, &discount, &start, &end)
	})
	if err != nil {
		s.logger.Error("price insert failed", "shop_id", in.ShopID, "snack_id", in.SnackID, "error", err)
		return &PriceResult{Status: StatusError, Message: crudErrorMessage(err)}, nil
	}
	price.DiscountPrice = nullableString(discount)
	price.StartDate = nullableDate(start)
	price.EndDate = nullableDate(end)

	return &PriceResult{Status: StatusSuccess, Data: &price}, nil
}
