package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alphadevking/mini-inventory/internal/model"
	"github.com/alphadevking/mini-inventory/internal/repository"
	"github.com/alphadevking/mini-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&model.Product{}, &model.Transaction{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	productRepo := repository.NewProductRepo(db)
	txRepo := repository.NewTransactionRepo(db)
	invHandler := NewInventoryHandler(service.NewInventoryService(productRepo, txRepo, db))
	dashHandler := NewDashboardHandler(service.NewDashboardService(productRepo, txRepo))

	app := fiber.New()
	api := app.Group("/api/v1")
	api.Post("/products", invHandler.CreateProduct)
	api.Get("/products", invHandler.GetProducts)
	api.Get("/products/low-stock", invHandler.GetLowStockProducts)
	api.Get("/products/:id", invHandler.GetProduct)
	api.Put("/products/:id", invHandler.UpdateProduct)
	api.Delete("/products/:id", invHandler.DeleteProduct)
	api.Post("/transactions", invHandler.CreateTransaction)
	api.Get("/transactions", invHandler.GetTransactions)
	api.Get("/transactions/:id", invHandler.GetTransaction)
	api.Delete("/transactions/:id", invHandler.DeleteTransaction)
	api.Get("/summary", dashHandler.GetFinancialSummary)
	api.Get("/dashboard/stats", dashHandler.GetDashboardStats)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func errorKind(t *testing.T, resp *http.Response) string {
	t.Helper()
	var payload struct {
		Error struct {
			Kind    string `json:"kind"`
			Message string `json:"message"`
		} `json:"error"`
	}
	decode(t, resp, &payload)
	return payload.Error.Kind
}

func TestProductEndpoints(t *testing.T) {
	app := setupTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/products",
		`{"phone_model":"iPhone 12","part_type":"screen","variant":"black","last_purchase_cost":10,"suggested_sell_price":25}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.StatusCode)
	}
	var created model.Product
	decode(t, resp, &created)
	if created.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Fatalf("expected generated id")
	}
	if created.LowStockThreshold != 3 {
		t.Fatalf("expected default threshold 3 got %d", created.LowStockThreshold)
	}

	// Duplicate triple
	resp = doJSON(t, app, http.MethodPost, "/api/v1/products",
		`{"phone_model":"iPhone 12","part_type":"screen","variant":"black"}`)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.StatusCode)
	}
	if kind := errorKind(t, resp); kind != "conflict" {
		t.Fatalf("expected conflict kind got %q", kind)
	}

	// List carries derived fields
	resp = doJSON(t, app, http.MethodGet, "/api/v1/products", "")
	var list []model.ProductWithStock
	decode(t, resp, &list)
	if len(list) != 1 {
		t.Fatalf("expected 1 product got %d", len(list))
	}
	if list[0].Status != model.StatusLow || list[0].CurrentStock != 0 {
		t.Fatalf("expected fresh product LOW at 0, got %s / %d", list[0].Status, list[0].CurrentStock)
	}

	// low-stock view must not be shadowed by the :id route
	resp = doJSON(t, app, http.MethodGet, "/api/v1/products/low-stock", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/v1/products/not-a-uuid", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/v1/products/9f4a9c70-0d0e-4a52-a7a5-5b43cf3ddfc4", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestTransactionEndpoints(t *testing.T) {
	app := setupTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/products",
		`{"phone_model":"Galaxy S22","part_type":"screen","last_purchase_cost":8,"suggested_sell_price":20}`)
	var product model.Product
	decode(t, resp, &product)

	// Unknown product
	resp = doJSON(t, app, http.MethodPost, "/api/v1/transactions",
		`{"product_id":"9f4a9c70-0d0e-4a52-a7a5-5b43cf3ddfc4","transaction_type":"purchase","quantity":1,"unit_cost":5}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Purchase with an explicit date propagates cost
	resp = doJSON(t, app, http.MethodPost, "/api/v1/transactions",
		`{"product_id":"`+product.ID.String()+`","transaction_date":"2024-01-10","transaction_type":"purchase","quantity":5,"unit_cost":12.5,"party_name":"Parts Wholesale Ltd","transport_other_cost":4}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.StatusCode)
	}
	var tx model.Transaction
	decode(t, resp, &tx)
	if tx.TransactionDate.Format("2006-01-02") != "2024-01-10" {
		t.Fatalf("unexpected date %v", tx.TransactionDate)
	}

	resp = doJSON(t, app, http.MethodGet, "/api/v1/products/"+product.ID.String(), "")
	var got model.ProductWithStock
	decode(t, resp, &got)
	if got.LastPurchaseCost != 12.5 {
		t.Fatalf("expected cost 12.5 got %v", got.LastPurchaseCost)
	}

	// Deleting a referenced product is blocked
	resp = doJSON(t, app, http.MethodDelete, "/api/v1/products/"+product.ID.String(), "")
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Delete the transaction, then the product
	resp = doJSON(t, app, http.MethodDelete, "/api/v1/transactions/"+tx.ID.String(), "")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", resp.StatusCode)
	}
	resp = doJSON(t, app, http.MethodDelete, "/api/v1/products/"+product.ID.String(), "")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", resp.StatusCode)
	}
}

func TestSummaryEndpoint(t *testing.T) {
	app := setupTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/v1/summary", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.StatusCode)
	}
	var summary repository.FinancialSummary
	decode(t, resp, &summary)
	if summary.TotalRevenue != 0 || summary.NetProfit != 0 {
		t.Fatalf("expected zeroed summary, got %+v", summary)
	}

	resp = doJSON(t, app, http.MethodGet, "/api/v1/dashboard/stats", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.StatusCode)
	}
	resp.Body.Close()
}
