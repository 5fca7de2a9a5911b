package catalog

// Status tags every tool result.
type Status string

// Result statuses. Success covers completed operations, warning covers
// operations that ran but matched or received nothing, error covers store
// rejections.
const (
	StatusSuccess Status = "success"
	StatusWarning Status = "warning"
	StatusError   Status = "error"
)

// Result is implemented by every tool result envelope.
type Result interface {
	ResultStatus() Status
}

// Shop is one row of the shops table.
type Shop struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Phone   *string `json:"phone"`
}

// Snack is one snack listing row, with brand and category resolved to names.
type Snack struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Brand       string  `json:"brand"`
	Category    string  `json:"category"`
	Description *string `json:"description"`
	Spec        *string `json:"spec"`
	Barcode     *string `json:"barcode"`
}

// SnackRecord is a freshly inserted snacks row as stored, plus the resolved
// brand and category names.
type SnackRecord struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	BrandID     int64   `json:"brand_id"`
	CategoryID  int64   `json:"category_id"`
	Description *string `json:"description"`
	Spec        *string `json:"spec"`
	Barcode     *string `json:"barcode"`
	Brand       string  `json:"brand"`
	Category    string  `json:"category"`
}

// CategoryCount is one category with its snack count. Categories without
// snacks appear with a count of zero.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// PriceRow is one price query row. Amounts are decimal text exactly as the
// store renders them; dates are YYYY-MM-DD; timestamps are RFC 3339.
type PriceRow struct {
	ShopName      string  `json:"shop_name"`
	ShopAddress   string  `json:"shop_address"`
	SnackName     string  `json:"snack_name"`
	Brand         string  `json:"brand"`
	Category      string  `json:"category"`
	Spec          *string `json:"spec"`
	Price         string  `json:"price"`
	DiscountPrice *string `json:"discount_price"`
	StartDate     *string `json:"start_date"`
	EndDate       *string `json:"end_date"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
	PriceID       int64   `json:"price_id"`
}

// Price is a freshly inserted prices row. Start and end carry the store's
// canonical half-open bounds; a nil end means the price is open-ended.
type Price struct {
	ID            int64   `json:"id"`
	ShopID        int64   `json:"shop_id"`
	SnackID       int64   `json:"snack_id"`
	Price         string  `json:"price"`
	DiscountPrice *string `json:"discount_price"`
	StartDate     *string `json:"start_date"`
	EndDate       *string `json:"end_date"`
}

// PriceList is the price query result envelope.
type PriceList struct {
	Status  Status     `json:"status"`
	Message string     `json:"message,omitempty"`
	Data    []PriceRow `json:"data"`
}

// ShopList is the shop listing result envelope.
type ShopList struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
	Data    []Shop `json:"data"`
}

// SnackList is the snack listing result envelope.
type SnackList struct {
	Status  Status  `json:"status"`
	Message string  `json:"message,omitempty"`
	Data    []Snack `json:"data"`
}

// CategoryList is the category listing result envelope.
type CategoryList struct {
	Status  Status          `json:"status"`
	Message string          `json:"message,omitempty"`
	Data    []CategoryCount `json:"data"`
}

// ShopResult is the add_shop result envelope.
type ShopResult struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
	Data    *Shop  `json:"data,omitempty"`
}

// SnackResult is the add_snack result envelope.
type SnackResult struct {
	Status  Status       `json:"status"`
	Message string       `json:"message,omitempty"`
	Data    *SnackRecord `json:"data,omitempty"`
}

// PriceResult is the add_price result envelope.
type PriceResult struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
	Data    *Price `json:"data,omitempty"`
}

// BatchResult is the batch insert result envelope.
type BatchResult struct {
	Status   Status `json:"status"`
	Message  string `json:"message,omitempty"`
	Inserted int64  `json:"inserted,omitempty"`
}

// DeleteResult is the result envelope for the delete operations. A delete
// that matches nothing is a warning, not an error.
type DeleteResult struct {
	Status       Status `json:"status"`
	Message      string `json:"message,omitempty"`
	RowsAffected int64  `json:"rows_affected"`
}

func (r *PriceList) ResultStatus() Status    { return r.Status }
func (r *ShopList) ResultStatus() Status     { return r.Status }
func (r *SnackList) ResultStatus() Status    { return r.Status }
func (r *CategoryList) ResultStatus() Status { return r.Status }
func (r *ShopResult) ResultStatus() Status   { return r.Status }
func (r *SnackResult) ResultStatus() Status  { return r.Status }
func (r *PriceResult) ResultStatus() Status  { return r.Status }
func (r *BatchResult) ResultStatus() Status  { return r.Status }
func (r *DeleteResult) ResultStatus() Status { return r.Status }
