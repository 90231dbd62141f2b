package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/mcarvalho/Producao-api/internal/application/dto"
	"github.com/mcarvalho/Producao-api/internal/application/producao"
	"github.com/mcarvalho/Producao-api/internal/domain"
	domainproducao "github.com/mcarvalho/Producao-api/internal/domain/producao"
)

// ProducaoHandler expõe a resolução/edição de fórmulas, as prévias de custo e a
// execução de produção. Camada fina: mapeia resultado discriminado para HTTP,
// sem regra de negócio.
type ProducaoHandler struct {
	formulaUC *producao.FormulaUseCase
	costUC    *producao.CostUseCase
	executor  *producao.Executor
}

// NewProducaoHandler constrói o handler.
func NewProducaoHandler(formulaUC *producao.FormulaUseCase, costUC *producao.CostUseCase, executor *producao.Executor) *ProducaoHandler {
	return &ProducaoHandler{formulaUC: formulaUC, costUC: costUC, executor: executor}
}

// GetFormula GET /api/producoes/:id/formula.
// Fórmula vazia não é erro: responde 200 com formula_vazia=true.
func (h *ProducaoHandler) GetFormula(c *fiber.Ctx) error {
	itemID := c.Params("id")
	formula, err := h.formulaUC.Resolve(c.Context(), itemID)
	if errors.Is(err, domain.ErrEmptyFormula) {
		return c.JSON(dto.FormulaResponse{ProductionItemID: itemID, Empty: true, Lines: []dto.FormulaLineResponse{}})
	}
	if err != nil {
		return mapError(c, err)
	}
	lines := make([]dto.FormulaLineResponse, 0, len(formula.Lines))
	for _, l := range formula.Lines {
		lines = append(lines, dto.FormulaLineResponse{
			ID:               l.ID,
			InputItemID:      l.InputItemID,
			QuantityRequired: l.QuantityRequired,
			Note:             l.Note,
		})
	}
	return c.JSON(dto.FormulaResponse{ProductionItemID: itemID, Lines: lines})
}

// ReplaceFormula PUT /api/producoes/:id/formula.
func (h *ProducaoHandler) ReplaceFormula(c *fiber.Ctx) error {
	itemID := c.Params("id")
	var in dto.ReplaceFormulaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	lines := make([]producao.NewLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, producao.NewLine{
			InputItemID:      l.InputItemID,
			QuantityRequired: l.QuantityRequired,
			Note:             l.Note,
		})
	}
	if err := h.formulaUC.Replace(c.Context(), itemID, lines); err != nil {
		return mapError(c, err)
	}
	return c.JSON(fiber.Map{"message": "fórmula substituída"})
}

// GetFormulaCost GET /api/producoes/:id/formula/custo.
func (h *ProducaoHandler) GetFormulaCost(c *fiber.Ctx) error {
	itemID := c.Params("id")
	total, err := h.costUC.EstimateForItem(c.Context(), itemID)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(dto.FormulaCostResponse{ProductionItemID: itemID, TotalCost: total})
}

// GetGroupedFormulas GET /api/formulas/agrupadas?name=&unit=&min_cost=&max_cost=.
func (h *ProducaoHandler) GetGroupedFormulas(c *fiber.Ctx) error {
	filter := domainproducao.SummaryFilter{
		Name: c.Query("name"),
		Unit: c.Query("unit"),
	}
	if raw := c.Query("min_cost"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "min_cost inválido"})
		}
		filter.MinCost = &v
	}
	if raw := c.Query("max_cost"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "max_cost inválido"})
		}
		filter.MaxCost = &v
	}

	summaries, err := h.costUC.GroupedView(c.Context(), filter)
	if err != nil {
		return mapError(c, err)
	}
	out := make([]dto.FormulaSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, dto.FormulaSummaryResponse{
			ProductionItemID: s.Item.ID,
			Code:             s.Item.Code,
			Name:             s.Item.Name,
			Unit:             s.Item.Unit,
			TotalCost:        s.TotalCost,
			IngredientCount:  s.IngredientCount,
		})
	}
	return c.JSON(out)
}

// ExecuteProduction POST /api/producoes/executar.
// O controle da tela fica desabilitado enquanto esta chamada está em voo; o
// orquestrador não aceita reentrância para o mesmo item.
func (h *ProducaoHandler) ExecuteProduction(c *fiber.Ctx) error {
	auth := producao.AuthContext{CompanyID: GetCompanyID(c), UserID: GetUserID(c)}
	if auth.CompanyID == "" || auth.UserID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ExecuteProductionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}

	result, err := h.executor.ExecuteForItem(c.Context(), auth, producao.ExecuteInput{
		ProductionItemID: in.ProductionItemID,
		Quantity:         in.Quantity,
		Allocations:      in.Allocations,
		OutputLotCode:    in.OutputLotCode,
		Notes:            in.Notes,
	})
	if err != nil {
		return mapExecutionError(c, result, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ExecuteProductionResponse{
		OutputBatchID: result.OutputBatchID,
		OutputLotCode: result.OutputLotCode,
		Consumed:      consumedToDTO(result.Consumed),
	})
}

func consumedToDTO(consumed []producao.ConsumedLine) []dto.ConsumedLineDTO {
	out := make([]dto.ConsumedLineDTO, 0, len(consumed))
	for _, cl := range consumed {
		out = append(out, dto.ConsumedLineDTO{
			LineIndex:   cl.LineIndex,
			InputItemID: cl.InputItemID,
			BatchID:     cl.BatchID,
			Quantity:    cl.Quantity,
		})
	}
	return out
}

// mapExecutionError devolve a falha de execução com o diário de baixas parciais,
// para a tela mostrar o que precisa de correção manual.
func mapExecutionError(c *fiber.Ctx, result *producao.ExecutionResult, err error) error {
	var (
		consumed           []dto.ConsumedLineDTO
		compensated        bool
		compensationErrors []string
	)
	if result != nil {
		consumed = consumedToDTO(result.Consumed)
		compensated = result.Compensated
		compensationErrors = result.CompensationErrors
	}

	var insuff *domain.InsufficientStockError
	if errors.As(err, &insuff) {
		return c.Status(fiber.StatusConflict).JSON(dto.ExecutionFailureResponse{
			Code:               "INSUFFICIENT_STOCK",
			Message:            insuff.Error(),
			Consumed:           consumed,
			Compensated:        compensated,
			CompensationErrors: compensationErrors,
		})
	}
	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validation.Error()})
	}
	if errors.Is(err, domain.ErrEmptyFormula) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EMPTY_FORMULA", Message: err.Error()})
	}
	var transport *domain.TransportError
	if errors.As(err, &transport) {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ExecutionFailureResponse{
			Code:               "BACKEND_ERROR",
			Message:            err.Error(),
			Consumed:           consumed,
			Compensated:        compensated,
			CompensationErrors: compensationErrors,
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ExecutionFailureResponse{
		Code:     "INTERNAL",
		Message:  err.Error(),
		Consumed: consumed,
	})
}

// mapError mapeamento padrão de erros de domínio para HTTP.
func mapError(c *fiber.Ctx, err error) error {
	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validation.Error()})
	}
	if errors.Is(err, domain.ErrNoValidIngredients) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NO_VALID_INGREDIENTS", Message: err.Error()})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	}
	var insuff *domain.InsufficientStockError
	if errors.As(err, &insuff) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: insuff.Error()})
	}
	var transport *domain.TransportError
	if errors.As(err, &transport) {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "BACKEND_ERROR", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
