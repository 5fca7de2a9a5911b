package server

import "github.com/google/jsonschema-go/jsonschema"

// Tool input schemas, written out explicitly instead of inferred from the
// input structs. Optional parameters accept null so clients that send
// explicit nulls for omitted values are not rejected, and decimal amounts
// accept a JSON number or a string so exact values like "3.50" survive.

func schemaString(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string", Description: desc}
}

func schemaOptString(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{Types: []string{"string", "null"}, Description: desc}
}

func schemaInteger(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "integer", Description: desc}
}

func schemaOptInteger(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{Types: []string{"integer", "null"}, Description: desc}
}

func schemaDecimal(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{Types: []string{"number", "string"}, Description: desc}
}

func schemaOptDecimal(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{Types: []string{"number", "string", "null"}, Description: desc}
}

// emptyObjectSchema returns a fresh schema for tools without parameters.
func emptyObjectSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "object"}
}

var queryPricesSchema = &jsonschema.Schema{
	Type: "object",
	Properties: map[string]*jsonschema.Schema{
		"shop_name":         schemaOptString("Shop name filter, matched as a case-insensitive substring. Ignored when shop_id is set."),
		"shop_id":           schemaOptInteger("Shop id filter. Takes precedence over shop_name."),
		"snack_name":        schemaOptString("Snack name filter, matched as a case-insensitive substring."),
		"min_price":         schemaOptDecimal("Lowest price to include."),
		"max_price":         schemaOptDecimal("Highest price to include."),
		"category":          schemaOptString("Category filter, matched as a case-insensitive substring."),
		"spec":              schemaOptString("Specification filter, matched as a case-insensitive substring."),
		"min_recorded_date": schemaOptString("Earliest record date to include, YYYY-MM-DD."),
		"max_recorded_date": schemaOptString("Latest record date to include, YYYY-MM-DD."),
		"limit":             schemaOptInteger("Most rows to return. Defaults to 100."),
		"order_by":          schemaOptString("Sort column: price, updated_at, or snack_name. Unknown values fall back to updated_at."),
		"order_direction":   schemaOptString("Sort direction: ASC or DESC. Anything but ASC means DESC."),
	},
}

var addShopSchema = &jsonschema.Schema{
	Type:     "object",
	Required: []string{"name", "address"},
	Properties: map[string]*jsonschema.Schema{
		"name":    schemaString("Shop name."),
		"address": schemaString("Shop address. Must be unique across shops."),
		"phone":   schemaOptString("Contact phone number."),
	},
}

var addSnackSchema = &jsonschema.Schema{
	Type:     "object",
	Required: []string{"name", "brand", "category"},
	Properties: map[string]*jsonschema.Schema{
		"name":        schemaString("Snack name."),
		"brand":       schemaString("Brand name. Created automatically when missing."),
		"category":    schemaString("Category name. Created automatically when missing."),
		"description": schemaOptString("Free-form description."),
		"spec":        schemaOptString("Specification, for example a package size like 100g."),
		"barcode":     schemaOptString("Product barcode."),
	},
}

var addPriceSchema = &jsonschema.Schema{
	Type:     "object",
	Required: []string{"shop_id", "snack_id", "price"},
	Properties: map[string]*jsonschema.Schema{
		"shop_id":        schemaInteger("Shop the price belongs to."),
		"snack_id":       schemaInteger("Snack the price belongs to."),
		"price":          schemaDecimal("Regular price."),
		"discount_price": schemaOptDecimal("Discounted price, when on offer."),
		"start_date":     schemaOptString("First day the price is valid, YYYY-MM-DD. Defaults to today."),
		"end_date":       schemaOptString("Last day the price is valid, YYYY-MM-DD. Empty means open-ended."),
	},
}

var addPricesBatchSchema = &jsonschema.Schema{
	Type:     "object",
	Required: []string{"prices_data"},
	Properties: map[string]*jsonschema.Schema{
		"prices_data": {
			Type:        "array",
			Description: "Price records to insert together.",
			Items: &jsonschema.Schema{
				Type:     "object",
				Required: []string{"shop_id", "snack_id", "price"},
				Properties: map[string]*jsonschema.Schema{
					"shop_id":        schemaInteger("Shop the price belongs to."),
					"snack_id":       schemaInteger("Snack the price belongs to."),
					"price":          schemaDecimal("Regular price."),
					"discount_price": schemaOptDecimal("Discounted price, when on offer."),
					"start_date":     schemaOptString("First day the price is valid, YYYY-MM-DD. Defaults to today."),
					"end_date":       schemaOptString("Last day the price is valid, YYYY-MM-DD. Empty means open-ended."),
				},
			},
		},
	},
}

var deletePriceSchema = &jsonschema.Schema{
	Type:     "object",
	Required: []string{"price_id"},
	Properties: map[string]*jsonschema.Schema{
		"price_id": schemaInteger("Id of the price record to delete."),
	},
}

var batchDeletePricesSchema = &jsonschema.Schema{
	Type:     "object",
	Required: []string{"price_ids"},
	Properties: map[string]*jsonschema.Schema{
		"price_ids": {
			Type:        "array",
			Description: "Ids of the price records to delete.",
			Items:       &jsonschema.Schema{Type: "integer"},
		},
	},
}

var deleteSnackSchema = &jsonschema.Schema{
	Type:     "object",
	Required: []string{"snack_id"},
	Properties: map[string]*jsonschema.Schema{
		"snack_id": schemaInteger("Id of the snack to delete. Its price records go with it."),
	},
}

var deleteShopSchema = &jsonschema.Schema{
	Type:     "object",
	Required: []string{"shop_id"},
	Properties: map[string]*jsonschema.Schema{
		"shop_id": schemaInteger("Id of the shop to delete. Its price records go with it."),
	},
}
