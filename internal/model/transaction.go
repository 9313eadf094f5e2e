package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionType string

const (
	TxPurchase TransactionType = "purchase"
	TxSale     TransactionType = "sale"
)

// Transaction is an immutable purchase or sale record against one product.
// There is no UpdatedAt: rows are only ever created or deleted.
type Transaction struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product   *Product  `json:"product,omitempty" validate:"-"` // Relation - skip validation

	TransactionDate Date            `gorm:"not null;index" json:"transaction_date"`
	TransactionType TransactionType `gorm:"type:varchar(10);not null" json:"transaction_type" validate:"required,oneof=purchase sale"`
	Quantity        int             `gorm:"not null" json:"quantity" validate:"required,gt=0"` // Qty must be > 0

	// unit_cost is set on purchases, unit_price on sales; the other may be absent.
	UnitCost  *float64 `json:"unit_cost,omitempty" validate:"omitempty,gte=0"`
	UnitPrice *float64 `json:"unit_price,omitempty" validate:"omitempty,gte=0"`

	PartyName          string  `gorm:"type:varchar(255)" json:"party_name"` // supplier or customer
	TransportOtherCost float64 `gorm:"not null;default:0" json:"transport_other_cost" validate:"gte=0"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.TransactionDate.IsZero() {
		t.TransactionDate = Today()
	}
	return
}

// TransactionCreate is the create payload; the date defaults to today.
type TransactionCreate struct {
	ProductID          uuid.UUID       `json:"product_id" validate:"uuid_required"`
	TransactionDate    *Date           `json:"transaction_date"`
	TransactionType    TransactionType `json:"transaction_type" validate:"required,oneof=purchase sale"`
	Quantity           int             `json:"quantity" validate:"required,gt=0"`
	UnitCost           *float64        `json:"unit_cost" validate:"omitempty,gte=0"`
	UnitPrice          *float64        `json:"unit_price" validate:"omitempty,gte=0"`
	PartyName          string          `json:"party_name"`
	TransportOtherCost float64         `json:"transport_other_cost" validate:"gte=0"`
}
