package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/copperwirepro/ledger-api/internal/application/dto"
	"github.com/copperwirepro/ledger-api/internal/application/khata"
	"github.com/copperwirepro/ledger-api/internal/domain/entity"
)

// KhataHandler handles khata customers, sales and statements (protected).
type KhataHandler struct {
	uc *khata.UseCase
}

// NewKhataHandler builds the handler.
func NewKhataHandler(uc *khata.UseCase) *KhataHandler {
	return &KhataHandler{uc: uc}
}

// CreateCustomer godoc
// @Summary      Register a khata customer
// @Tags         khata
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateKhataCustomerRequest  true  "name, phone"
// @Success      201   {object}  dto.KhataCustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/khata/customers [post]
func (h *KhataHandler) CreateCustomer(c *fiber.Ctx) error {
	var in dto.CreateKhataCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	customer, err := h.uc.CreateCustomer(c.Context(), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCustomerResponse(customer))
}

// ListCustomers godoc
// @Summary      List khata customers
// @Tags         khata
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.KhataCustomerResponse
// @Router       /api/khata/customers [get]
func (h *KhataHandler) ListCustomers(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.uc.ListCustomers(c.Context(), limit, offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.KhataCustomerResponse, 0, len(list))
	for _, customer := range list {
		out = append(out, toCustomerResponse(customer))
	}
	return c.JSON(out)
}

// RecordSale godoc
// @Summary      Record a khata sale with an exact payment split
// @Tags         khata
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordKhataSaleRequest  true  "customer_id, entry_id, quantity, price_per_unit, payments"
// @Success      201   {object}  dto.KhataSaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/khata/sales [post]
func (h *KhataHandler) RecordSale(c *fiber.Ctx) error {
	var in dto.RecordKhataSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	sale, err := h.uc.RecordSale(c.Context(), in, GetUserID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sale)
}

// Statement godoc
// @Summary      Khata statement of a customer (JSON)
// @Tags         khata
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StatementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/khata/customers/{id}/statement [get]
func (h *KhataHandler) Statement(c *fiber.Ctx) error {
	statement, err := h.uc.Statement(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(statement)
}

// StatementPDF godoc
// @Summary      Khata statement of a customer (PDF)
// @Tags         khata
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/khata/customers/{id}/statement.pdf [get]
func (h *KhataHandler) StatementPDF(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.StatementPDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="khata-statement.pdf"`)
	return c.Send(pdfBytes)
}

func toCustomerResponse(customer *entity.KhataCustomer) dto.KhataCustomerResponse {
	return dto.KhataCustomerResponse{
		ID:        customer.ID,
		Name:      customer.Name,
		Phone:     customer.Phone,
		CreatedAt: customer.CreatedAt,
	}
}
