package service

import (
	"errors"

	"github.com/alphadevking/mini-inventory/internal/apperr"
	"github.com/alphadevking/mini-inventory/internal/model"
	"github.com/alphadevking/mini-inventory/internal/repository"
	"github.com/alphadevking/mini-inventory/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryService interface {
	CreateProduct(req *model.ProductCreate) (*model.Product, error)
	GetProducts() ([]model.ProductWithStock, error)
	GetProduct(id uuid.UUID) (*model.ProductWithStock, error)
	UpdateProduct(id uuid.UUID, req *model.ProductUpdate) (*model.Product, error)
	DeleteProduct(id uuid.UUID) error
	GetLowStockProducts() ([]model.ProductWithStock, error)
	RecordTransaction(req *model.TransactionCreate) (*model.Transaction, error)
	GetTransactions() ([]model.Transaction, error)
	GetTransaction(id uuid.UUID) (*model.Transaction, error)
	DeleteTransaction(id uuid.UUID) error
}

type inventoryService struct {
	productRepo     repository.ProductRepository
	transactionRepo repository.TransactionRepository
	db              *gorm.DB
}

func NewInventoryService(pRepo repository.ProductRepository, tRepo repository.TransactionRepository, db *gorm.DB) InventoryService {
	return &inventoryService{
		productRepo:     pRepo,
		transactionRepo: tRepo,
		db:              db,
	}
}

func (s *inventoryService) CreateProduct(req *model.ProductCreate) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation("%s", validator.Message(errs))
	}

	// Duplicate triple check (business validation)
	existing, err := s.productRepo.FindByParts(req.PhoneModel, req.PartType, req.Variant)
	if err == nil && existing.ID != uuid.Nil {
		return nil, apperr.Conflict("product with this phone model, part type and variant already exists")
	}

	threshold := model.DefaultLowStockThreshold
	if req.LowStockThreshold != nil {
		threshold = *req.LowStockThreshold
	}

	product := &model.Product{
		PhoneModel:         req.PhoneModel,
		PartType:           req.PartType,
		Variant:            req.Variant,
		LastPurchaseCost:   req.LastPurchaseCost,
		SuggestedSellPrice: req.SuggestedSellPrice,
		LowStockThreshold:  threshold,
	}

	if err := s.productRepo.Create(product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("product with this phone model, part type and variant already exists")
		}
		return nil, err
	}
	return product, nil
}

func (s *inventoryService) GetProducts() ([]model.ProductWithStock, error) {
	return s.productsWithStock(false)
}

// GetLowStockProducts returns only products whose stock sits at or below
// their configured threshold.
func (s *inventoryService) GetLowStockProducts() ([]model.ProductWithStock, error) {
	return s.productsWithStock(true)
}

func (s *inventoryService) productsWithStock(lowOnly bool) ([]model.ProductWithStock, error) {
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, err
	}
	stocks, err := s.transactionRepo.StockByProduct()
	if err != nil {
		return nil, err
	}

	result := make([]model.ProductWithStock, 0, len(products))
	for _, p := range products {
		stock := stocks[p.ID] // zero when no transactions exist
		status := model.StockStatus(stock, p.LowStockThreshold)
		if lowOnly && status != model.StatusLow {
			continue
		}
		result = append(result, model.ProductWithStock{
			Product:      p,
			CurrentStock: stock,
			Status:       status,
		})
	}
	return result, nil
}

func (s *inventoryService) GetProduct(id uuid.UUID) (*model.ProductWithStock, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, err
	}
	stock, err := s.transactionRepo.CurrentStock(id)
	if err != nil {
		return nil, err
	}
	return &model.ProductWithStock{
		Product:      *product,
		CurrentStock: stock,
		Status:       model.StockStatus(stock, product.LowStockThreshold),
	}, nil
}

// UpdateProduct applies only the fields present in the request. The triple is
// not re-checked against other rows here; a collision surfaces from the
// composite unique index instead.
func (s *inventoryService) UpdateProduct(id uuid.UUID, req *model.ProductUpdate) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation("%s", validator.Message(errs))
	}

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, err
	}

	if req.PhoneModel != nil {
		product.PhoneModel = *req.PhoneModel
	}
	if req.PartType != nil {
		product.PartType = *req.PartType
	}
	if req.Variant != nil {
		product.Variant = *req.Variant
	}
	if req.LastPurchaseCost != nil {
		product.LastPurchaseCost = *req.LastPurchaseCost
	}
	if req.SuggestedSellPrice != nil {
		product.SuggestedSellPrice = *req.SuggestedSellPrice
	}
	if req.LowStockThreshold != nil {
		product.LowStockThreshold = *req.LowStockThreshold
	}

	if err := s.productRepo.Save(product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("product with this phone model, part type and variant already exists")
		}
		return nil, err
	}
	return product, nil
}

func (s *inventoryService) DeleteProduct(id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("product not found")
		}
		return err
	}

	// Referential-integrity guard: products with history cannot be removed
	count, err := s.productRepo.CountTransactions(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("cannot delete product with existing transactions; delete transactions first")
	}

	return s.productRepo.Delete(id)
}

func (s *inventoryService) RecordTransaction(req *model.TransactionCreate) (*model.Transaction, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation("%s", validator.Message(errs))
	}
	// Cost/price must match the transaction type
	if req.TransactionType == model.TxPurchase && req.UnitCost == nil {
		return nil, apperr.Validation("unit_cost is required for purchase transactions")
	}
	if req.TransactionType == model.TxSale && req.UnitPrice == nil {
		return nil, apperr.Validation("unit_price is required for sale transactions")
	}

	transaction := &model.Transaction{
		ProductID:          req.ProductID,
		TransactionType:    req.TransactionType,
		Quantity:           req.Quantity,
		UnitCost:           req.UnitCost,
		UnitPrice:          req.UnitPrice,
		PartyName:          req.PartyName,
		TransportOtherCost: req.TransportOtherCost,
	}
	if req.TransactionDate != nil {
		transaction.TransactionDate = *req.TransactionDate
	}

	// Atomic unit: the insert and the cost propagation commit together or
	// not at all, so a reader never sees a purchase without its cost.
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product model.Product
		if err := tx.First(&product, "id = ?", req.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("product not found for this transaction")
			}
			return err
		}

		if err := s.transactionRepo.Create(tx, transaction); err != nil {
			return err
		}

		// A recorded purchase becomes the product's current cost
		if transaction.TransactionType == model.TxPurchase {
			if err := s.productRepo.UpdateLastPurchaseCost(tx, product.ID, *transaction.UnitCost); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

func (s *inventoryService) GetTransactions() ([]model.Transaction, error) {
	return s.transactionRepo.FindAll()
}

func (s *inventoryService) GetTransaction(id uuid.UUID) (*model.Transaction, error) {
	transaction, err := s.transactionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("transaction not found")
		}
		return nil, err
	}
	return transaction, nil
}

// DeleteTransaction removes the row only. The last_purchase_cost side effect
// is append-only and is never reversed here.
func (s *inventoryService) DeleteTransaction(id uuid.UUID) error {
	if _, err := s.transactionRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("transaction not found")
		}
		return err
	}
	return s.transactionRepo.Delete(id)
}
