package catalog_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/yaojiwei520/snack-price-api/internal/domain/catalog"
)

// These tests need a live PostgreSQL database named by SNACKDB_TEST_HOST.
// They share it and reset it in testService, so none run in parallel.

func seedShopAndSnack(t *testing.T, svc *catalog.Service) (shopID, snackID int64) {
	t.Helper()
	ctx := context.Background()

	shop, err := svc.AddShop(ctx, catalog.AddShopInput{Name: "Lawson", Address: "1 Chome"})
	if err != nil || shop.Status != catalog.StatusSuccess {
		t.Fatalf("seed shop: error = %v, result = %+v", err, shop)
	}
	snack, err := svc.AddSnack(ctx, catalog.AddSnackInput{Name: "Potato Rings", Brand: "Calbee", Category: "Chips"})
	if err != nil || snack.Status != catalog.StatusSuccess {
		t.Fatalf("seed snack: error = %v, result = %+v", err, snack)
	}
	return shop.Data.ID, snack.Data.ID
}

func TestAddShopAndList(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	res, err := svc.AddShop(ctx, catalog.AddShopInput{Name: "Lawson", Address: "1 Chome", Phone: strPtr("03-1234")})
	if err != nil {
		t.Fatalf("AddShop() error = %v; want nil", err)
	}
	if res.Status != catalog.StatusSuccess {
		t.Fatalf("AddShop() status = %q (%s); want success", res.Status, res.Message)
	}
	if res.Data == nil || res.Data.ID == 0 {
		t.Fatal("AddShop() returned no stored row")
	}
	if res.Data.Phone == nil || *res.Data.Phone != "03-1234" {
		t.Errorf("phone = %v; want 03-1234", res.Data.Phone)
	}

	list, err := svc.ListShops(ctx)
	if err != nil {
		t.Fatalf("ListShops() error = %v; want nil", err)
	}
	if len(list.Data) != 1 || list.Data[0].Name != "Lawson" {
		t.Errorf("ListShops() data = %+v; want the one shop", list.Data)
	}
}

func TestAddShop_DuplicateAddress(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	first, err := svc.AddShop(ctx, catalog.AddShopInput{Name: "A", Address: "same street"})
	if err != nil || first.Status != catalog.StatusSuccess {
		t.Fatalf("first AddShop(): error = %v, result = %+v", err, first)
	}

	second, err := svc.AddShop(ctx, catalog.AddShopInput{Name: "B", Address: "same street"})
	if err != nil {
		t.Fatalf("second AddShop() error = %v; want nil", err)
	}
	if second.Status != catalog.StatusError {
		t.Fatalf("duplicate AddShop() status = %q; want error", second.Status)
	}
	if !strings.Contains(second.Message, "shops_address_key") {
		t.Errorf("message = %q; want the violated constraint name", second.Message)
	}
}

func TestAddSnack_CreatesLookupRows(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	res, err := svc.AddSnack(ctx, catalog.AddSnackInput{Name: "Potato Rings", Brand: "Calbee", Category: "Chips", Spec: strPtr("90g")})
	if err != nil {
		t.Fatalf("AddSnack() error = %v; want nil", err)
	}
	if res.Status != catalog.StatusSuccess {
		t.Fatalf("AddSnack() status = %q (%s); want success", res.Status, res.Message)
	}
	if res.Data.Brand != "Calbee" || res.Data.Category != "Chips" {
		t.Errorf("resolved names = %q/%q; want Calbee/Chips", res.Data.Brand, res.Data.Category)
	}

	// Same brand and category again: the lookup rows are reused, not
	// duplicated.
	again, err := svc.AddSnack(ctx, catalog.AddSnackInput{Name: "Pizza Rings", Brand: "Calbee", Category: "Chips"})
	if err != nil {
		t.Fatalf("AddSnack() error = %v; want nil", err)
	}
	if again.Status != catalog.StatusSuccess {
		t.Fatalf("AddSnack() status = %q (%s); want success", again.Status, again.Message)
	}
	if again.Data.BrandID != res.Data.BrandID {
		t.Errorf("brand id = %d; want %d (reused)", again.Data.BrandID, res.Data.BrandID)
	}

	snacks, err := svc.ListSnacks(ctx)
	if err != nil {
		t.Fatalf("ListSnacks() error = %v; want nil", err)
	}
	if len(snacks.Data) != 2 || snacks.Data[0].Name != "Pizza Rings" {
		t.Errorf("ListSnacks() = %+v; want both snacks, Pizza Rings first", snacks.Data)
	}

	cats, err := svc.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories() error = %v; want nil", err)
	}
	if len(cats.Data) != 1 || cats.Data[0].Count != 2 {
		t.Errorf("ListCategories() = %+v; want Chips with count 2", cats.Data)
	}
}

func TestAddSnack_DuplicateKey(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	in := catalog.AddSnackInput{Name: "Potato Rings", Brand: "Calbee", Category: "Chips", Spec: strPtr("90g")}
	if _, err := svc.AddSnack(ctx, in); err != nil {
		t.Fatalf("AddSnack() error = %v; want nil", err)
	}

	dup, err := svc.AddSnack(ctx, in)
	if err != nil {
		t.Fatalf("AddSnack() error = %v; want nil", err)
	}
	if dup.Status != catalog.StatusError {
		t.Fatalf("duplicate AddSnack() status = %q; want error", dup.Status)
	}
	if dup.Message != "A snack with the same brand, name, and spec likely already exists." {
		t.Errorf("message = %q", dup.Message)
	}
}

func TestAddPriceAndQuery(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	shopID, snackID := seedShopAndSnack(t, svc)

	discount := decimal.RequireFromString("7.50")
	res, err := svc.AddPrice(ctx, catalog.AddPriceInput{
		ShopID:        shopID,
		SnackID:       snackID,
		Price:         decimal.RequireFromString("9.90"),
		DiscountPrice: &discount,
		StartDate:     "2025-01-01",
		EndDate:       "2025-06-30",
	})
	if err != nil {
		t.Fatalf("AddPrice() error = %v; want nil", err)
	}
	if res.Status != catalog.StatusSuccess {
		t.Fatalf("AddPrice() status = %q (%s); want success", res.Status, res.Message)
	}
	if res.Data.Price != "9.90" {
		t.Errorf("price = %q; want 9.90", res.Data.Price)
	}
	if res.Data.StartDate == nil || *res.Data.StartDate != "2025-01-01" {
		t.Errorf("start_date = %v; want 2025-01-01", res.Data.StartDate)
	}
	// The store keeps ranges in half-open form, so the inclusive end reads
	// back as the following day.
	if res.Data.EndDate == nil || *res.Data.EndDate != "2025-07-01" {
		t.Errorf("end_date = %v; want 2025-07-01", res.Data.EndDate)
	}

	list, err := svc.QueryPrices(ctx, catalog.PriceQuery{SnackName: "potato"})
	if err != nil {
		t.Fatalf("QueryPrices() error = %v; want nil", err)
	}
	if list.Status != catalog.StatusSuccess || len(list.Data) != 1 {
		t.Fatalf("QueryPrices() = %+v; want one row", list)
	}
	row := list.Data[0]
	if row.Price != "9.90" {
		t.Errorf("row price = %q; want 9.90", row.Price)
	}
	if row.DiscountPrice == nil || *row.DiscountPrice != "7.50" {
		t.Errorf("row discount = %v; want 7.50", row.DiscountPrice)
	}
	if row.PriceID != res.Data.ID {
		t.Errorf("row price_id = %d; want %d", row.PriceID, res.Data.ID)
	}
	if row.ShopName != "Lawson" || row.Brand != "Calbee" {
		t.Errorf("joined names = %q/%q; want Lawson/Calbee", row.ShopName, row.Brand)
	}
}

func TestAddPricesBatchAndFilters(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	shopID, snackID := seedShopAndSnack(t, svc)

	res, err := svc.AddPricesBatch(ctx, []catalog.BatchPrice{
		{ShopID: shopID, SnackID: snackID, Price: decimal.RequireFromString("3.00")},
		{ShopID: shopID, SnackID: snackID, Price: decimal.RequireFromString("5.50")},
		{ShopID: shopID, SnackID: snackID, Price: decimal.RequireFromString("8.00")},
	})
	if err != nil {
		t.Fatalf("AddPricesBatch() error = %v; want nil", err)
	}
	if res.Status != catalog.StatusSuccess || res.Inserted != 3 {
		t.Fatalf("AddPricesBatch() = %+v; want 3 inserted", res)
	}
	if res.Message != "Successfully added 3 price records." {
		t.Errorf("message = %q", res.Message)
	}

	min := decimal.RequireFromString("4.00")
	list, err := svc.QueryPrices(ctx, catalog.PriceQuery{MinPrice: &min, OrderBy: "price", OrderDirection: "ASC"})
	if err != nil {
		t.Fatalf("QueryPrices() error = %v; want nil", err)
	}
	if len(list.Data) != 2 {
		t.Fatalf("QueryPrices(min 4.00) returned %d rows; want 2", len(list.Data))
	}
	if list.Data[0].Price != "5.50" || list.Data[1].Price != "8.00" {
		t.Errorf("rows out of order: %q then %q", list.Data[0].Price, list.Data[1].Price)
	}
}

func TestAddPricesBatch_AtomicOnBadRow(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	shopID, snackID := seedShopAndSnack(t, svc)

	res, err := svc.AddPricesBatch(ctx, []catalog.BatchPrice{
		{ShopID: shopID, SnackID: snackID, Price: decimal.NewFromInt(2)},
		{ShopID: shopID, SnackID: 999999, Price: decimal.NewFromInt(3)},
	})
	if err != nil {
		t.Fatalf("AddPricesBatch() error = %v; want nil", err)
	}
	if res.Status != catalog.StatusError {
		t.Fatalf("status = %q; want error", res.Status)
	}
	if !strings.Contains(res.Message, "Batch add price failed:") {
		t.Errorf("message = %q", res.Message)
	}

	// The good row must not have survived the failed batch.
	list, err := svc.QueryPrices(ctx, catalog.PriceQuery{})
	if err != nil {
		t.Fatalf("QueryPrices() error = %v; want nil", err)
	}
	if len(list.Data) != 0 {
		t.Errorf("rows after failed batch = %d; want 0", len(list.Data))
	}
}

func TestDeletePrice(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	shopID, snackID := seedShopAndSnack(t, svc)
	price, err := svc.AddPrice(ctx, catalog.AddPriceInput{ShopID: shopID, SnackID: snackID, Price: decimal.NewFromInt(4)})
	if err != nil {
		t.Fatalf("AddPrice() error = %v; want nil", err)
	}

	res, err := svc.DeletePrice(ctx, price.Data.ID)
	if err != nil {
		t.Fatalf("DeletePrice() error = %v; want nil", err)
	}
	if res.Status != catalog.StatusSuccess || res.RowsAffected != 1 {
		t.Errorf("DeletePrice() = %+v; want 1 row affected", res)
	}

	// Deleting it again matches nothing.
	res, err = svc.DeletePrice(ctx, price.Data.ID)
	if err != nil {
		t.Fatalf("DeletePrice() error = %v; want nil", err)
	}
	if res.Status != catalog.StatusWarning {
		t.Errorf("repeat DeletePrice() status = %q; want warning", res.Status)
	}
	if res.Message != "Operation executed, but no matching record was found." {
		t.Errorf("message = %q", res.Message)
	}
}

func TestDeletePricesBatch(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	shopID, snackID := seedShopAndSnack(t, svc)
	var ids []int64
	for i := 0; i < 3; i++ {
		price, err := svc.AddPrice(ctx, catalog.AddPriceInput{ShopID: shopID, SnackID: snackID, Price: decimal.NewFromInt(int64(i + 1))})
		if err != nil {
			t.Fatalf("AddPrice() error = %v; want nil", err)
		}
		ids = append(ids, price.Data.ID)
	}

	res, err := svc.DeletePricesBatch(ctx, ids[:2])
	if err != nil {
		t.Fatalf("DeletePricesBatch() error = %v; want nil", err)
	}
	if res.Status != catalog.StatusSuccess || res.RowsAffected != 2 {
		t.Errorf("DeletePricesBatch() = %+v; want 2 rows affected", res)
	}

	list, err := svc.QueryPrices(ctx, catalog.PriceQuery{})
	if err != nil {
		t.Fatalf("QueryPrices() error = %v; want nil", err)
	}
	if len(list.Data) != 1 || list.Data[0].PriceID != ids[2] {
		t.Errorf("remaining rows = %+v; want only price %d", list.Data, ids[2])
	}
}

func TestDeleteSnack_CascadesToPrices(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	shopID, snackID := seedShopAndSnack(t, svc)
	if _, err := svc.AddPrice(ctx, catalog.AddPriceInput{ShopID: shopID, SnackID: snackID, Price: decimal.NewFromInt(4)}); err != nil {
		t.Fatalf("AddPrice() error = %v; want nil", err)
	}

	res, err := svc.DeleteSnack(ctx, snackID)
	if err != nil {
		t.Fatalf("DeleteSnack() error = %v; want nil", err)
	}
	if res.Status != catalog.StatusSuccess {
		t.Fatalf("DeleteSnack() = %+v; want success", res)
	}

	list, err := svc.QueryPrices(ctx, catalog.PriceQuery{})
	if err != nil {
		t.Fatalf("QueryPrices() error = %v; want nil", err)
	}
	if len(list.Data) != 0 {
		t.Errorf("prices after snack delete = %d; want 0 via cascade", len(list.Data))
	}
}

func TestDeleteShop_CascadesToPrices(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	shopID, snackID := seedShopAndSnack(t, svc)
	if _, err := svc.AddPrice(ctx, catalog.AddPriceInput{ShopID: shopID, SnackID: snackID, Price: decimal.NewFromInt(4)}); err != nil {
		t.Fatalf("AddPrice() error = %v; want nil", err)
	}

	res, err := svc.DeleteShop(ctx, shopID)
	if err != nil {
		t.Fatalf("DeleteShop() error = %v; want nil", err)
	}
	if res.Status != catalog.StatusSuccess {
		t.Fatalf("DeleteShop() = %+v; want success", res)
	}

	list, err := svc.QueryPrices(ctx, catalog.PriceQuery{})
	if err != nil {
		t.Fatalf("QueryPrices() error = %v; want nil", err)
	}
	if len(list.Data) != 0 {
		t.Errorf("prices after shop delete = %d; want 0 via cascade", len(list.Data))
	}
}
