package model

// Stock status labels returned on product reads.
const (
	StatusLow = "LOW"
	StatusOK  = "OK"
)

// DefaultLowStockThreshold applies when a product is created without one.
const DefaultLowStockThreshold = 3

// Product is a catalogued phone-repair part. The (phone_model, part_type,
// variant) triple identifies a part uniquely; variant may be empty.
type Product struct {
	BaseModel
	PhoneModel         string  `gorm:"type:varchar(100);not null;uniqueIndex:idx_products_part,priority:1" json:"phone_model" validate:"required"`
	PartType           string  `gorm:"type:varchar(100);not null;uniqueIndex:idx_products_part,priority:2" json:"part_type" validate:"required"`
	Variant            string  `gorm:"type:varchar(100);not null;default:'';uniqueIndex:idx_products_part,priority:3" json:"variant"`
	LastPurchaseCost   float64 `gorm:"not null;default:0" json:"last_purchase_cost" validate:"gte=0"`
	SuggestedSellPrice float64 `gorm:"not null;default:0" json:"suggested_sell_price" validate:"gte=0"`
	LowStockThreshold  int     `gorm:"not null;default:3" json:"low_stock_threshold" validate:"gte=0"`

	// Relation
	Transactions []Transaction `json:"transactions,omitempty" validate:"-"`
}

// ProductWithStock is the read shape: the stored row plus the derived
// stock figures, recomputed on every read.
type ProductWithStock struct {
	Product
	CurrentStock int    `json:"current_stock"`
	Status       string `json:"status"`
}

// StockStatus reports LOW when stock is at or below the threshold (inclusive).
func StockStatus(stock, threshold int) string {
	if stock <= threshold {
		return StatusLow
	}
	return StatusOK
}

// ProductCreate is the create payload. LowStockThreshold is a pointer so an
// omitted field can fall back to the default while an explicit 0 is kept.
type ProductCreate struct {
	PhoneModel         string  `json:"phone_model" validate:"required"`
	PartType           string  `json:"part_type" validate:"required"`
	Variant            string  `json:"variant"`
	LastPurchaseCost   float64 `json:"last_purchase_cost" validate:"gte=0"`
	SuggestedSellPrice float64 `json:"suggested_sell_price" validate:"gte=0"`
	LowStockThreshold  *int    `json:"low_stock_threshold" validate:"omitempty,gte=0"`
}

// ProductUpdate is a partial update: only non-nil fields are applied.
type ProductUpdate struct {
	PhoneModel         *string  `json:"phone_model" validate:"omitempty,min=1"`
	PartType           *string  `json:"part_type" validate:"omitempty,min=1"`
	Variant            *string  `json:"variant"`
	LastPurchaseCost   *float64 `json:"last_purchase_cost" validate:"omitempty,gte=0"`
	SuggestedSellPrice *float64 `json:"suggested_sell_price" validate:"omitempty,gte=0"`
	LowStockThreshold  *int     `json:"low_stock_threshold" validate:"omitempty,gte=0"`
}
