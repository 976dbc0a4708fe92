package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/copperwirepro/ledger-api/internal/application/dto"
	"github.com/copperwirepro/ledger-api/internal/application/ledger"
	"github.com/copperwirepro/ledger-api/internal/domain/entity"
	"github.com/copperwirepro/ledger-api/internal/domain/repository"
)

// EntryHandler handles stock entry creation and queries (protected).
type EntryHandler struct {
	uc *ledger.UseCase
}

// NewEntryHandler builds the handler.
func NewEntryHandler(uc *ledger.UseCase) *EntryHandler {
	return &EntryHandler{uc: uc}
}

// Create godoc
// @Summary      Record a new stock entry (purchase / production completed)
// @Tags         entries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEntryRequest  true  "source_kind, origin_id, label, total_quantity, unit_price"
// @Success      201   {object}  dto.EntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/entries [post]
func (h *EntryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	entry, err := h.uc.CreateEntry(c.Context(), ledger.CreateEntryInput{
		SourceKind:    in.SourceKind,
		OriginID:      in.OriginID,
		Label:         in.Label,
		TotalQuantity: in.TotalQuantity,
		UnitPrice:     in.UnitPrice,
		UserID:        GetUserID(c),
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toEntryResponse(entry, entry.TotalQuantity))
}

// List godoc
// @Summary      List stock entries with derived availability
// @Tags         entries
// @Security     Bearer
// @Produce      json
// @Param        source_kind  query  string  false  "RAW_PURCHASE | PVC_PURCHASE | KACHA_RETURN | DRAW_RETURN | PRODUCTION_OUTPUT"
// @Param        label        query  string  false  "case-insensitive substring"
// @Success      200  {array}  dto.EntryResponse
// @Router       /api/entries [get]
func (h *EntryHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err == nil {
		page.DefaultPage()
	} else {
		page = dto.PageRequest{Limit: 20}
	}
	filter := repository.EntryFilter{
		SourceKind: c.Query("source_kind"),
		Label:      c.Query("label"),
	}
	entries, available, err := h.uc.ListEntries(c.Context(), filter, page.Limit, page.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryResponse(e, available[e.ID]))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Get one stock entry with availability
// @Tags         entries
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.EntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/entries/{id} [get]
func (h *EntryHandler) GetByID(c *fiber.Ctx) error {
	entry, available, err := h.uc.GetEntry(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toEntryResponse(entry, available))
}

// GetAvailable godoc
// @Summary      Get the derived available quantity of an entry
// @Tags         entries
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/entries/{id}/available [get]
func (h *EntryHandler) GetAvailable(c *fiber.Ctx) error {
	available, err := h.uc.GetAvailableQuantity(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{"entry_id": c.Params("id"), "available_quantity": available})
}

// ListTransactions godoc
// @Summary      List the transaction log of an entry, oldest first
// @Tags         entries
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/entries/{id}/transactions [get]
func (h *EntryHandler) ListTransactions(c *fiber.Ctx) error {
	txns, err := h.uc.ListTransactions(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.TransactionResponse, 0, len(txns))
	for _, t := range txns {
		out = append(out, toTransactionResponse(t))
	}
	return c.JSON(out)
}

func toEntryResponse(e *entity.StockEntry, available decimal.Decimal) dto.EntryResponse {
	return dto.EntryResponse{
		ID:                e.ID,
		SourceKind:        e.SourceKind,
		OriginID:          e.OriginID,
		Label:             e.Label,
		TotalQuantity:     e.TotalQuantity,
		AvailableQuantity: available,
		UnitPrice:         e.UnitPrice,
		CreatedAt:         e.CreatedAt,
	}
}

func toTransactionResponse(t *entity.LedgerTransaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:               t.ID,
		EntryID:          t.EntryID,
		Kind:             t.Kind,
		QuantityDelta:    t.QuantityDelta,
		CounterpartyName: t.CounterpartyName,
		Notes:            t.Notes,
		ReversesID:       t.ReversesID,
		Timestamp:        t.Timestamp,
	}
}
