package repository

import (
	"testing"
	"time"

	"github.com/alphadevking/mini-inventory/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRepoTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&model.Product{}, &model.Transaction{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedProduct(t *testing.T, db *gorm.DB) *model.Product {
	t.Helper()
	p := &model.Product{PhoneModel: "iPhone 12", PartType: "screen", LastPurchaseCost: 10, LowStockThreshold: 3}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}

func cost(v float64) *float64 { return &v }

func TestFindAllOrdersNewestFirst(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewTransactionRepo(db)
	p := seedProduct(t, db)

	base := time.Date(2024, time.January, 20, 9, 0, 0, 0, time.UTC)
	oldest := &model.Transaction{
		ProductID:       p.ID,
		TransactionDate: model.NewDate(2024, time.January, 5),
		TransactionType: model.TxPurchase,
		Quantity:        1,
		UnitCost:        cost(10),
		CreatedAt:       base,
	}
	sameDayEarlier := &model.Transaction{
		ProductID:       p.ID,
		TransactionDate: model.NewDate(2024, time.January, 10),
		TransactionType: model.TxPurchase,
		Quantity:        2,
		UnitCost:        cost(10),
		CreatedAt:       base.Add(1 * time.Hour),
	}
	sameDayLater := &model.Transaction{
		ProductID:       p.ID,
		TransactionDate: model.NewDate(2024, time.January, 10),
		TransactionType: model.TxSale,
		Quantity:        1,
		UnitPrice:       cost(25),
		CreatedAt:       base.Add(2 * time.Hour),
	}
	for _, tx := range []*model.Transaction{oldest, sameDayEarlier, sameDayLater} {
		if err := repo.Create(db, tx); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	got, err := repo.FindAll()
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 transactions got %d", len(got))
	}
	// Date desc, then creation time desc within the same date
	if got[0].ID != sameDayLater.ID || got[1].ID != sameDayEarlier.ID || got[2].ID != oldest.ID {
		t.Fatalf("unexpected order: %s %s %s", got[0].ID, got[1].ID, got[2].ID)
	}
	if got[0].Product == nil || got[0].Product.PhoneModel != "iPhone 12" {
		t.Fatalf("expected product snapshot preloaded, got %+v", got[0].Product)
	}
}

func TestCurrentStockAndStockByProduct(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewTransactionRepo(db)
	p := seedProduct(t, db)
	other := &model.Product{PhoneModel: "iPhone 12", PartType: "battery", LowStockThreshold: 3}
	if err := db.Create(other).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	for _, tx := range []*model.Transaction{
		{ProductID: p.ID, TransactionType: model.TxPurchase, Quantity: 7, UnitCost: cost(10)},
		{ProductID: p.ID, TransactionType: model.TxSale, Quantity: 3, UnitPrice: cost(20)},
		{ProductID: other.ID, TransactionType: model.TxSale, Quantity: 2, UnitPrice: cost(20)},
	} {
		if err := repo.Create(db, tx); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	stock, err := repo.CurrentStock(p.ID)
	if err != nil {
		t.Fatalf("current stock: %v", err)
	}
	if stock != 4 {
		t.Fatalf("expected stock 4 got %d", stock)
	}

	stocks, err := repo.StockByProduct()
	if err != nil {
		t.Fatalf("stock by product: %v", err)
	}
	if stocks[p.ID] != 4 || stocks[other.ID] != -2 {
		t.Fatalf("unexpected stocks: %v", stocks)
	}
}

func TestCurrentStockNoTransactions(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewTransactionRepo(db)
	p := seedProduct(t, db)

	stock, err := repo.CurrentStock(p.ID)
	if err != nil {
		t.Fatalf("current stock: %v", err)
	}
	if stock != 0 {
		t.Fatalf("expected 0 for empty history got %d", stock)
	}
}

func TestGetStockMovement(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewTransactionRepo(db)
	p := seedProduct(t, db)

	today := model.Today()
	for _, tx := range []*model.Transaction{
		{ProductID: p.ID, TransactionDate: today, TransactionType: model.TxPurchase, Quantity: 5, UnitCost: cost(10)},
		{ProductID: p.ID, TransactionDate: today, TransactionType: model.TxSale, Quantity: 2, UnitPrice: cost(20)},
	} {
		if err := repo.Create(db, tx); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	data, err := repo.GetStockMovement(time.Now().AddDate(0, 0, -7), time.Now().AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("stock movement: %v", err)
	}
	if len(data) != 1 {
		t.Fatalf("expected 1 day of data got %d", len(data))
	}
	if data[0].Purchased != 5 || data[0].Sold != 2 {
		t.Fatalf("unexpected aggregates: %+v", data[0])
	}
}
