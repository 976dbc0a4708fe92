package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/copperwirepro/ledger-api/internal/application/dto"
	"github.com/copperwirepro/ledger-api/internal/application/ledger"
)

// LedgerHandler handles the mutating ledger operations: sell, return,
// delete-partial and undo (protected).
type LedgerHandler struct {
	uc *ledger.UseCase
}

// NewLedgerHandler builds the handler.
func NewLedgerHandler(uc *ledger.UseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

// Sell godoc
// @Summary      Sell a quantity from an entry
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SellRequest  true  "quantity, price_per_unit, buyer_name"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/entries/{id}/sell [post]
func (h *LedgerHandler) Sell(c *fiber.Ctx) error {
	var in dto.SellRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	txn, err := h.uc.Sell(c.Context(), ledger.SellInput{
		EntryID:      c.Params("id"),
		Quantity:     in.Quantity,
		PricePerUnit: in.PricePerUnit,
		BuyerName:    in.BuyerName,
		UserID:       GetUserID(c),
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTransactionResponse(txn))
}

// Return godoc
// @Summary      Consume a quantity and reclassify it as a new downstream lot
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReturnRequest  true  "new_label, quantity, processor_name"
// @Success      201   {object}  dto.EntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/entries/{id}/return [post]
func (h *LedgerHandler) Return(c *fiber.Ctx) error {
	var in dto.ReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	entry, err := h.uc.ReturnToInventory(c.Context(), ledger.ReturnToInventoryInput{
		SourceEntryID: c.Params("id"),
		NewLabel:      in.NewLabel,
		Quantity:      in.Quantity,
		ProcessorName: in.ProcessorName,
		UserID:        GetUserID(c),
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toEntryResponse(entry, entry.TotalQuantity))
}

// DeletePartial godoc
// @Summary      Remove a quantity as an audited delete adjustment (admin)
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DeletePartialRequest  true  "quantity, note (mandatory)"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/entries/{id}/delete-partial [post]
func (h *LedgerHandler) DeletePartial(c *fiber.Ctx) error {
	var in dto.DeletePartialRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	txn, err := h.uc.DeletePartial(c.Context(), ledger.DeletePartialInput{
		EntryID:  c.Params("id"),
		Quantity: in.Quantity,
		Note:     in.Note,
		UserID:   GetUserID(c),
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTransactionResponse(txn))
}

// UndoSale godoc
// @Summary      Undo a sale with a compensating return transaction
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transactions/{id}/undo [post]
func (h *LedgerHandler) UndoSale(c *fiber.Ctx) error {
	txn, err := h.uc.UndoSale(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTransactionResponse(txn))
}
