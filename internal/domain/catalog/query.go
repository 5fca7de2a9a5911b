package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// defaultQueryLimit caps price query results when the caller gives no limit.
const defaultQueryLimit = 100

// PriceQuery carries the price query filters. Zero values mean the filter is
// absent and contributes no clause. ShopID takes precedence over ShopName
// when both are set.
type PriceQuery struct {
	ShopName        string
	ShopID          *int64
	SnackName       string
	MinPrice        *decimal.Decimal
	MaxPrice        *decimal.Decimal
	Category        string
	Spec            string
	MinRecordedDate string
	MaxRecordedDate string
	Limit           int
	OrderBy         string
	OrderDirection  string
}

// priceOrderColumns whitelists order-by values. Anything else falls back to
// updated_at rather than erroring.
var priceOrderColumns = map[string]string{
	"price":      "p.price",
	"updated_at": "p.updated_at",
	"snack_name": "sn.name",
}

// buildPriceQuery renders the price SELECT for q. Text filters match
// case-insensitively on substrings; the sort column comes from the
// whitelist and the direction is ascending only for an explicit "asc".
func buildPriceQuery(q PriceQuery) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(expr string, value any) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(expr, len(args)))
	}

	if q.SnackName != "" {
		add("sn.name ILIKE $%d", contains(q.SnackName))
	}
	if q.MinPrice != nil {
		add("p.price >= $%d", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		add("p.price <= $%d", *q.MaxPrice)
	}
	if q.Category != "" {
		add("c.name ILIKE $%d", contains(q.Category))
	}
	if q.Spec != "" {
		add("sn.spec ILIKE $%d", contains(q.Spec))
	}
	switch {
	case q.ShopID != nil:
		add("s.id = $%d", *q.ShopID)
	case q.ShopName != "":
		add("s.name ILIKE $%d", contains(q.ShopName))
	}
	if q.MinRecordedDate != "" {
		add("p.created_at >= $%d", q.MinRecordedDate)
	}
	if q.MaxRecordedDate != "" {
		add("p.created_at <= $%d", q.MaxRecordedDate)
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ") + "\n"
	}

	orderColumn, ok := priceOrderColumns[q.OrderBy]
	if !ok {
		orderColumn = "p.updated_at"
	}
	direction := "DESC"
	if strings.EqualFold(q.OrderDirection, "ASC") {
		direction = "ASC"
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultQueryLimit
	}
	args = append(args, limit)

	query := fmt.Sprintf(`SELECT s.name AS shop_name, s.address AS shop_address, sn.name AS snack_name, b.name AS brand,
       c.name AS category, sn.spec, p.price, p.discount_price,
       lower(p.valid_period) AS start_date, upper(p.valid_period) AS end_date,
       p.created_at, p.updated_at, p.id AS price_id
FROM prices p
JOIN shops s ON p.shop_id = s.id
JOIN snacks sn ON p.snack_id = sn.id
JOIN brands b ON sn.brand_id = b.id
JOIN categories c ON sn.category_id = c.id
%sORDER BY %s %s
LIMIT $%d`, where, orderColumn, direction, len(args))

	return query, args
}

// contains wraps a filter value for substring ILIKE matching.
func contains(v string) string {
	return "%" + v + "%"
}

// QueryPrices returns the price rows matching q, newest first unless the
// query orders otherwise.
func (s *Service) QueryPrices(ctx context.Context, q PriceQuery) (*PriceList, error) {
	db, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	query, args := buildPriceQuery(q)
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return s.priceListError(err), nil
	}
	defer rows.Close()

	data := make([]PriceRow, 0)
	for rows.Next() {
		var (
			row        PriceRow
			spec       sql.NullString
			discount   sql.NullString
			start, end sql.NullTime
			created    time.Time
			updated    time.Time
		)
		if err := rows.Scan(
			&row.ShopName, &row.ShopAddress, &row.SnackName, &row.Brand, &row.Category,
			&spec, &row.Price, &discount, &start, &end, &created, &updated, &row.PriceID,
		); err != nil {
			return s.priceListError(err), nil
		}
		row.Spec = nullableString(spec)
		row.DiscountPrice = nullableString(discount)
		row.StartDate = nullableDate(start)
		row.EndDate = nullableDate(end)
		row.CreatedAt = created.Format(time.RFC3339)
		row.UpdatedAt = updated.Format(time.RFC3339)
		data = append(data, row)
	}
	if err := rows.Err(); err != nil {
		return s.priceListError(err), nil
	}

	return &PriceList{Status: StatusSuccess, Data: data}, nil
}

func (s *Service) priceListError(err error) *PriceList {
	s.logger.Error("price query failed", "error", err)
	return &PriceList{Status: StatusError, Message: queryErrorMessage(err), Data: []PriceRow{}}
}

// ListShops returns every shop, ordered by name then address.
func (s *Service) ListShops(ctx context.Context) (*ShopList, error) {
	db, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT id, name, address, phone FROM shops ORDER BY name, address`)
	if err != nil {
		return s.shopListError(err), nil
	}
	defer rows.Close()

	data := make([]Shop, 0)
	for rows.Next() {
		var (
			shop  Shop
			phone sql.NullString
		)
		if err := rows.Scan(&shop.ID, &shop.Name, &shop.Address, &phone); err != nil {
			return s.shopListError(err), nil
		}
		shop.Phone = nullableString(phone)
		data = append(data, shop)
	}
	if err := rows.Err(); err != nil {
		return s.shopListError(err), nil
	}

	return &ShopList{Status: StatusSuccess, Data: data}, nil
}

func (s *Service) shopListError(err error) *ShopList {
	s.logger.Error("shop listing failed", "error", err)
	return &ShopList{Status: StatusError, Message: queryErrorMessage(err), Data: []Shop{}}
}

// ListSnacks returns every snack with its brand and category names, ordered
// by snack name.
func (s *Service) ListSnacks(ctx context.Context) (*SnackList, error) {
	db, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT sn.id, sn.name, b.name AS brand, c.name AS category,
       sn.description, sn.spec, sn.barcode
FROM snacks sn
JOIN brands b ON sn.brand_id = b.id
JOIN categories c ON sn.category_id = c.id
ORDER BY sn.name`)
	if err != nil {
		return s.snackListError(err), nil
	}
	defer rows.Close()

	data := make([]Snack, 0)
	for rows.Next() {
		var (
			snack                      Snack
			description, spec, barcode sql.NullString
		)
		if err := rows.Scan(&snack.ID, &snack.Name, &snack.Brand, &snack.Category, &description, &spec, &barcode); err != nil {
			return s.snackListError(err), nil
		}
		snack.Description = nullableString(description)
		snack.Spec = nullableString(spec)
		snack.Barcode = nullableString(barcode)
		data = append(data, snack)
	}
	if err := rows.Err(); err != nil {
		return s.snackListError(err), nil
	}

	return &SnackList{Status: StatusSuccess, Data: data}, nil
}

func (s *Service) snackListError(err error) *SnackList {
	s.logger.Error("snack listing failed", "error", err)
	return &SnackList{Status: StatusError, Message: queryErrorMessage(err), Data: []Snack{}}
}

// ListCategories returns every category with its snack count. The left join
// keeps categories that have no snacks yet, with a count of zero.
func (s *Service) ListCategories(ctx context.Context) (*CategoryList, error) {
	db, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT c.name AS category, COUNT(sn.id) AS count
FROM categories c
LEFT JOIN snacks sn ON c.id = sn.category_id
GROUP BY c.name
ORDER BY c.name`)
	if err != nil {
		return s.categoryListError(err), nil
	}
	defer rows.Close()

	data := make([]CategoryCount, 0)
	for rows.Next() {
		var cc CategoryCount
		if err := rows.Scan(&cc.Category, &cc.Count); err != nil {
			return s.categoryListError(err), nil
		}
		data = append(data, cc)
	}
	if err := rows.Err(); err != nil {
		return s.categoryListError(err), nil
	}

	return &CategoryList{Status: StatusSuccess, Data: data}, nil
}

func (s *Service) categoryListError(err error) *CategoryList {
	s.logger.Error("category listing failed", "error", err)
	return &CategoryList{Status: StatusError, Message: queryErrorMessage(err), Data: []CategoryCount{}}
}
