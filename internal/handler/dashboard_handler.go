package handler

import (
	"strconv"

	"github.com/alphadevking/mini-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetFinancialSummary returns revenue, COGS, gross/net profit across the
// whole ledger
func (h *DashboardHandler) GetFinancialSummary(c *fiber.Ctx) error {
	summary, err := h.service.GetFinancialSummary()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// GetStockMovement returns per-day purchase/sale quantities for charts
// Query params: days (default 7)
func (h *DashboardHandler) GetStockMovement(c *fiber.Ctx) error {
	daysStr := c.Query("days", "7")
	days, err := strconv.Atoi(daysStr)
	if err != nil || days <= 0 {
		days = 7
	}

	data, err := h.service.GetStockMovement(days)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"period": days,
		"data":   data,
	})
}

// GetDashboardStats returns overview statistics
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.service.GetDashboardStats()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}
