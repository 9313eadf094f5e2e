package handler

import (
	"github.com/alphadevking/mini-inventory/internal/model"
	"github.com/alphadevking/mini-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

func (h *InventoryHandler) CreateProduct(c *fiber.Ctx) error {
	var req model.ProductCreate
	if err := c.BodyParser(&req); err != nil {
		return respondInvalidJSON(c)
	}

	product, err := h.service.CreateProduct(&req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

func (h *InventoryHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetProducts()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

func (h *InventoryHandler) GetLowStockProducts(c *fiber.Ctx) error {
	products, err := h.service.GetLowStockProducts()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

func (h *InventoryHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return respondInvalidID(c, "product")
	}

	product, err := h.service.GetProduct(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

func (h *InventoryHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return respondInvalidID(c, "product")
	}

	var req model.ProductUpdate
	if err := c.BodyParser(&req); err != nil {
		return respondInvalidJSON(c)
	}

	product, err := h.service.UpdateProduct(id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

func (h *InventoryHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return respondInvalidID(c, "product")
	}

	if err := h.service.DeleteProduct(id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *InventoryHandler) CreateTransaction(c *fiber.Ctx) error {
	var req model.TransactionCreate
	if err := c.BodyParser(&req); err != nil {
		return respondInvalidJSON(c)
	}

	transaction, err := h.service.RecordTransaction(&req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(transaction)
}

func (h *InventoryHandler) GetTransactions(c *fiber.Ctx) error {
	transactions, err := h.service.GetTransactions()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transactions)
}

func (h *InventoryHandler) GetTransaction(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return respondInvalidID(c, "transaction")
	}

	transaction, err := h.service.GetTransaction(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transaction)
}

func (h *InventoryHandler) DeleteTransaction(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return respondInvalidID(c, "transaction")
	}

	if err := h.service.DeleteTransaction(id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
