package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/copperwirepro/ledger-api/internal/application/reports"
)

// ReportHandler handles read-only reports (protected).
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler builds the handler.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// StockSummary godoc
// @Summary      Stage-wise created and available quantity
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StageSummaryDTO
// @Router       /api/reports/stock-summary [get]
func (h *ReportHandler) StockSummary(c *fiber.Ctx) error {
	rows, err := h.uc.StockSummary(c.Context())
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(rows)
}

// KhataBalances godoc
// @Summary      Paid totals per khata customer, reversed sales excluded
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.KhataBalanceDTO
// @Router       /api/reports/khata-balances [get]
func (h *ReportHandler) KhataBalances(c *fiber.Ctx) error {
	rows, err := h.uc.KhataBalances(c.Context())
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(rows)
}
