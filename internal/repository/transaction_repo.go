package repository

import (
	"time"

	"github.com/alphadevking/mini-inventory/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	Create(tx *gorm.DB, transaction *model.Transaction) error
	FindAll() ([]model.Transaction, error)
	FindByID(id uuid.UUID) (*model.Transaction, error)
	Delete(id uuid.UUID) error
	CurrentStock(productID uuid.UUID) (int, error)
	StockByProduct() (map[uuid.UUID]int, error)
	GetFinancialSummary() (*FinancialSummary, error)
	GetStockMovement(startDate, endDate time.Time) ([]StockMovementData, error)
}

// FinancialSummary aggregates the full ledger. COGS uses each product's
// current last_purchase_cost, not the cost at time of sale.
type FinancialSummary struct {
	TotalRevenue             float64 `json:"total_revenue"`
	TotalCOGS                float64 `json:"total_cogs"`
	TotalGrossProfit         float64 `json:"total_gross_profit"`
	TotalTransportOtherCosts float64 `json:"total_transport_other_costs"`
	NetProfit                float64 `json:"net_profit"`
}

// StockMovementData holds per-day quantity aggregates for chart data
type StockMovementData struct {
	Date      string `json:"date"`
	Purchased int    `json:"purchased"`
	Sold      int    `json:"sold"`
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

// Create runs on the supplied handle so the caller can wrap the insert and
// the last-purchase-cost propagation in one transaction.
func (r *transactionRepo) Create(tx *gorm.DB, transaction *model.Transaction) error {
	return tx.Create(transaction).Error
}

func (r *transactionRepo) FindAll() ([]model.Transaction, error) {
	var transactions []model.Transaction
	// Most recent activity first; Product preloaded for display snapshots
	err := r.db.Preload("Product").
		Order("transaction_date DESC, created_at DESC").
		Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) FindByID(id uuid.UUID) (*model.Transaction, error) {
	var transaction model.Transaction
	err := r.db.Preload("Product").First(&transaction, "id = ?", id).Error
	return &transaction, err
}

func (r *transactionRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Transaction{}, "id = ?", id).Error
}

// CurrentStock derives net quantity on hand: purchases minus sales. A product
// with no transactions yields 0; an oversold product yields a negative number.
func (r *transactionRepo) CurrentStock(productID uuid.UUID) (int, error) {
	var stock int
	err := r.db.Model(&model.Transaction{}).
		Select(`COALESCE(SUM(CASE WHEN transaction_type = 'purchase' THEN quantity ELSE -quantity END), 0)`).
		Where("product_id = ?", productID).
		Scan(&stock).Error
	return stock, err
}

// StockByProduct computes stock for every product with at least one
// transaction in a single grouped query. Products absent from the map have
// zero stock.
func (r *transactionRepo) StockByProduct() (map[uuid.UUID]int, error) {
	rows, err := r.db.Model(&model.Transaction{}).
		Select(`product_id, COALESCE(SUM(CASE WHEN transaction_type = 'purchase' THEN quantity ELSE -quantity END), 0) as stock`).
		Group("product_id").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stocks := make(map[uuid.UUID]int)
	for rows.Next() {
		var productID uuid.UUID
		var stock int
		if err := rows.Scan(&productID, &stock); err != nil {
			return nil, err
		}
		stocks[productID] = stock
	}
	return stocks, rows.Err()
}

func (r *transactionRepo) GetFinancialSummary() (*FinancialSummary, error) {
	var summary FinancialSummary

	// Revenue: unit_price * quantity over sales
	err := r.db.Model(&model.Transaction{}).
		Select("COALESCE(SUM(COALESCE(unit_price, 0) * quantity), 0)").
		Where("transaction_type = ?", model.TxSale).
		Scan(&summary.TotalRevenue).Error
	if err != nil {
		return nil, err
	}

	// COGS: the product's current recorded cost * quantity over sales
	err = r.db.Model(&model.Transaction{}).
		Select("COALESCE(SUM(products.last_purchase_cost * transactions.quantity), 0)").
		Joins("JOIN products ON products.id = transactions.product_id").
		Where("transactions.transaction_type = ?", model.TxSale).
		Scan(&summary.TotalCOGS).Error
	if err != nil {
		return nil, err
	}

	// Freight/handling attributed to purchase batches
	err = r.db.Model(&model.Transaction{}).
		Select("COALESCE(SUM(transport_other_cost), 0)").
		Where("transaction_type = ?", model.TxPurchase).
		Scan(&summary.TotalTransportOtherCosts).Error
	if err != nil {
		return nil, err
	}

	summary.TotalGrossProfit = summary.TotalRevenue - summary.TotalCOGS
	summary.NetProfit = summary.TotalGrossProfit - summary.TotalTransportOtherCosts
	return &summary, nil
}

func (r *transactionRepo) GetStockMovement(startDate, endDate time.Time) ([]StockMovementData, error) {
	var results []StockMovementData

	// Aggregate quantities per transaction day
	rows, err := r.db.Model(&model.Transaction{}).
		Select(`
			DATE(transaction_date) as date,
			COALESCE(SUM(CASE WHEN transaction_type = 'purchase' THEN quantity ELSE 0 END), 0) as purchased,
			COALESCE(SUM(CASE WHEN transaction_type = 'sale' THEN quantity ELSE 0 END), 0) as sold
		`).
		Where("transaction_date BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(transaction_date)").
		Order("date ASC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data StockMovementData
		if err := rows.Scan(&data.Date, &data.Purchased, &data.Sold); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, rows.Err()
}
