package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mcarvalho/Producao-api/internal/application/dto"
	"github.com/mcarvalho/Producao-api/internal/application/producao"
)

// EstoqueHandler expõe a listagem de lotes candidatos, a validação de alocação
// e o consumo de item de venda.
type EstoqueHandler struct {
	allocator *producao.Allocator
	saleUC    *producao.SaleConsumptionUseCase
}

// NewEstoqueHandler constrói o handler.
func NewEstoqueHandler(allocator *producao.Allocator, saleUC *producao.SaleConsumptionUseCase) *EstoqueHandler {
	return &EstoqueHandler{allocator: allocator, saleUC: saleUC}
}

// ListCandidates GET /api/insumos/:id/lotes — lotes com quantidade > 0.
func (h *EstoqueHandler) ListCandidates(c *fiber.Ctx) error {
	candidates, err := h.allocator.ListCandidates(c.Context(), c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(candidates)
}

// ValidateAllocation POST /api/lotes/validar — suficiência do lote escolhido.
func (h *EstoqueHandler) ValidateAllocation(c *fiber.Ctx) error {
	var in dto.ValidateAllocationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	check, err := h.allocator.Validate(c.Context(), in.BatchID, in.Required)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(dto.ValidateAllocationResponse{OK: check.OK, Available: check.Available})
}

// ConsumeSaleItem POST /api/vendas/itens/consumir.
func (h *EstoqueHandler) ConsumeSaleItem(c *fiber.Ctx) error {
	auth := producao.AuthContext{CompanyID: GetCompanyID(c), UserID: GetUserID(c)}
	if auth.CompanyID == "" || auth.UserID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ConsumeSaleItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	err := h.saleUC.Consume(c.Context(), auth, producao.ConsumeSaleItemInput{
		ProductBatchID: in.ProductBatchID,
		Quantity:       in.Quantity,
		SaleID:         in.SaleID,
		Notes:          in.Notes,
	})
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(fiber.Map{"message": "consumo registrado"})
}
