package server

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/shopspring/decimal"

	"github.com/yaojiwei520/snack-price-api/internal/domain/catalog"
)

// Tool inputs. The json tags are the wire parameter names.

type queryPricesInput struct {
	ShopName        string           `json:"shop_name,omitempty"`
	ShopID          *int64           `json:"shop_id,omitempty"`
	SnackName       string           `json:"snack_name,omitempty"`
	MinPrice        *decimal.Decimal `json:"min_price,omitempty"`
	MaxPrice        *decimal.Decimal `json:"max_price,omitempty"`
	Category        string           `json:"category,omitempty"`
	Spec            string           `json:"spec,omitempty"`
	MinRecordedDate string           `json:"min_recorded_date,omitempty"`
	MaxRecordedDate string           `json:"max_recorded_date,omitempty"`
	Limit           int              `json:"limit,omitempty"`
	OrderBy         string           `json:"order_by,omitempty"`
	OrderDirection  string           `json:"order_direction,omitempty"`
}

type addShopInput struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Phone   *string `json:"phone,omitempty"`
}

type addSnackInput struct {
	Name        string  `json:"name"`
	Brand       string  `json:"brand"`
	Category    string  `json:"category"`
	Description *string `json:"description,omitempty"`
	Spec        *string `json:"spec,omitempty"`
	Barcode     *string `json:"barcode,omitempty"`
}

type priceInput struct {
	ShopID        int64            `json:"shop_id"`
	SnackID       int64            `json:"snack_id"`
	Price         decimal.Decimal  `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discount_price,omitempty"`
	StartDate     string           `json:"start_date,omitempty"`
	EndDate       string           `json:"end_date,omitempty"`
}

type pricesBatchInput struct {
	PricesData []priceInput `json:"prices_data"`
}

type deletePriceInput struct {
	PriceID int64 `json:"price_id"`
}

type batchDeletePricesInput struct {
	PriceIDs []int64 `json:"price_ids"`
}

type deleteSnackInput struct {
	SnackID int64 `json:"snack_id"`
}

type deleteShopInput struct {
	ShopID int64 `json:"shop_id"`
}

// addQueryTools registers the read-only tools.
func (r *registry) addQueryTools(srv *mcp.Server) {
	addTool(r, srv, &mcp.Tool{
		Name: "query_snack_prices",
		Description: "Query snack prices with optional filters. Filter by shop name or shop id; " +
			"when both are given the shop id wins. Text filters match case-insensitive substrings. " +
			"Results can be ordered by price, updated_at, or snack_name in either direction.",
		InputSchema: queryPricesSchema,
	}, func(ctx context.Context, in queryPricesInput) (catalog.Result, error) {
		return r.catalog.QueryPrices(ctx, catalog.PriceQuery{
			ShopName:        in.ShopName,
			ShopID:          in.ShopID,
			SnackName:       in.SnackName,
			MinPrice:        in.MinPrice,
			MaxPrice:        in.MaxPrice,
			Category:        in.Category,
			Spec:            in.Spec,
			MinRecordedDate: in.MinRecordedDate,
			MaxRecordedDate: in.MaxRecordedDate,
			Limit:           in.Limit,
			OrderBy:         in.OrderBy,
			OrderDirection:  in.OrderDirection,
		})
	})

	addTool(r, srv, &mcp.Tool{
		Name:        "get_shop_list",
		Description: "List every shop with its id, name, address, and phone.",
		InputSchema: emptyObjectSchema(),
	}, func(ctx context.Context, _ struct{}) (catalog.Result, error) {
		return r.catalog.ListShops(ctx)
	})

	addTool(r, srv, &mcp.Tool{
		Name:        "get_snack_list",
		Description: "List every snack with its brand and category.",
		InputSchema: emptyObjectSchema(),
	}, func(ctx context.Context, _ struct{}) (catalog.Result, error) {
		return r.catalog.ListSnacks(ctx)
	})

	addTool(r, srv, &mcp.Tool{
		Name:        "get_snack_categories",
		Description: "List every snack category with its snack count.",
		InputSchema: emptyObjectSchema(),
	}, func(ctx context.Context, _ struct{}) (catalog.Result, error) {
		return r.catalog.ListCategories(ctx)
	})
}

// addCRUDTools registers the single-record write tools.
func (r *registry) addCRUDTools(srv *mcp.Server) {
	addTool(r, srv, &mcp.Tool{
		Name:        "add_shop",
		Description: "Add a new shop. The address must be unique across shops.",
		InputSchema: addShopSchema,
	}, func(ctx context.Context, in addShopInput) (catalog.Result, error) {
		return r.catalog.AddShop(ctx, catalog.AddShopInput{
			Name:    in.Name,
			Address: in.Address,
			Phone:   in.Phone,
		})
	})

	addTool(r, srv, &mcp.Tool{
		Name:        "add_snack",
		Description: "Add a new snack. Its brand and category are created automatically when missing.",
		InputSchema: addSnackSchema,
	}, func(ctx context.Context, in addSnackInput) (catalog.Result, error) {
		return r.catalog.AddSnack(ctx, catalog.AddSnackInput{
			Name:        in.Name,
			Brand:       in.Brand,
			Category:    in.Category,
			Description: in.Description,
			Spec:        in.Spec,
			Barcode:     in.Barcode,
		})
	})

	addTool(r, srv, &mcp.Tool{
		Name: "add_price",
		Description: "Add a price record for a snack at a shop, with an optional discount price " +
			"and validity period.",
		InputSchema: addPriceSchema,
	}, func(ctx context.Context, in priceInput) (catalog.Result, error) {
		return r.catalog.AddPrice(ctx, catalog.AddPriceInput{
			ShopID:        in.ShopID,
			SnackID:       in.SnackID,
			Price:         in.Price,
			DiscountPrice: in.DiscountPrice,
			StartDate:     in.StartDate,
			EndDate:       in.EndDate,
		})
	})
}

// addBatchTools registers the multi-record write tools.
func (r *registry) addBatchTools(srv *mcp.Server) {
	addTool(r, srv, &mcp.Tool{
		Name: "add_prices_batch",
		Description: "Add many price records in one atomic batch. Either every record is stored " +
			"or none are.",
		InputSchema: addPricesBatchSchema,
	}, func(ctx context.Context, in pricesBatchInput) (catalog.Result, error) {
		entries := make([]catalog.BatchPrice, 0, len(in.PricesData))
		for _, item := range in.PricesData {
			entries = append(entries, catalog.BatchPrice{
				ShopID:        item.ShopID,
				SnackID:       item.SnackID,
				Price:         item.Price,
				DiscountPrice: item.DiscountPrice,
				StartDate:     item.StartDate,
				EndDate:       item.EndDate,
			})
		}
		return r.catalog.AddPricesBatch(ctx, entries)
	})
}

// addDeleteTools registers the delete tools.
func (r *registry) addDeleteTools(srv *mcp.Server) {
	addTool(r, srv, &mcp.Tool{
		Name:        "delete_price",
		Description: "Delete one price record by id.",
		InputSchema: deletePriceSchema,
	}, func(ctx context.Context, in deletePriceInput) (catalog.Result, error) {
		return r.catalog.DeletePrice(ctx, in.PriceID)
	})

	addTool(r, srv, &mcp.Tool{
		Name:        "batch_delete_prices",
		Description: "Delete every price record whose id is listed.",
		InputSchema: batchDeletePricesSchema,
	}, func(ctx context.Context, in batchDeletePricesInput) (catalog.Result, error) {
		return r.catalog.DeletePricesBatch(ctx, in.PriceIDs)
	})

	addTool(r, srv, &mcp.Tool{
		Name:        "delete_snack",
		Description: "Delete a snack by id, cascading to its price records.",
		InputSchema: deleteSnackSchema,
	}, func(ctx context.Context, in deleteSnackInput) (catalog.Result, error) {
		return r.catalog.DeleteSnack(ctx, in.SnackID)
	})

	addTool(r, srv, &mcp.Tool{
		Name:        "delete_shop",
		Description: "Delete a shop by id, cascading to its price records.",
		InputSchema: deleteShopSchema,
	}, func(ctx context.Context, in deleteShopInput) (catalog.Result, error) {
		return r.catalog.DeleteShop(ctx, in.ShopID)
	})
}
