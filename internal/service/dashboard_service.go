package service

import (
	"time"

	"github.com/alphadevking/mini-inventory/internal/model"
	"github.com/alphadevking/mini-inventory/internal/repository"
)

// DashboardStats is the overview card data for the UI landing page.
type DashboardStats struct {
	TotalProducts      int64   `json:"total_products"`
	LowStockCount      int64   `json:"low_stock_count"`
	InventoryValuation float64 `json:"inventory_valuation"`
}

type DashboardService interface {
	GetFinancialSummary() (*repository.FinancialSummary, error)
	GetStockMovement(days int) ([]repository.StockMovementData, error)
	GetDashboardStats() (*DashboardStats, error)
}

type dashboardService struct {
	productRepo repository.ProductRepository
	txRepo      repository.TransactionRepository
}

func NewDashboardService(productRepo repository.ProductRepository, txRepo repository.TransactionRepository) DashboardService {
	return &dashboardService{productRepo: productRepo, txRepo: txRepo}
}

func (s *dashboardService) GetFinancialSummary() (*repository.FinancialSummary, error) {
	return s.txRepo.GetFinancialSummary()
}

func (s *dashboardService) GetStockMovement(days int) ([]repository.StockMovementData, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)

	return s.txRepo.GetStockMovement(startDate, endDate)
}

// GetDashboardStats derives counts and valuation from current stock levels.
// Valuation prices remaining stock at each product's last purchase cost;
// negative (oversold) stock contributes nothing.
func (s *dashboardService) GetDashboardStats() (*DashboardStats, error) {
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, err
	}
	stocks, err := s.txRepo.StockByProduct()
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{TotalProducts: int64(len(products))}
	for _, p := range products {
		stock := stocks[p.ID]
		if model.StockStatus(stock, p.LowStockThreshold) == model.StatusLow {
			stats.LowStockCount++
		}
		if stock > 0 {
			stats.InventoryValuation += float64(stock) * p.LastPurchaseCost
		}
	}
	return stats, nil
}
