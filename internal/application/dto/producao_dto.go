package dto

import "github.com/shopspring/decimal"

// FormulaLineRequest linha candidata no PUT da fórmula.
type FormulaLineRequest struct {
	InputItemID      string          `json:"input_item_id"`
	QuantityRequired decimal.Decimal `json:"quantity_required"`
	Note             string          `json:"note,omitempty"`
}

// ReplaceFormulaRequest body para PUT /api/producoes/:id/formula.
type ReplaceFormulaRequest struct {
	Lines []FormulaLineRequest `json:"lines"`
}

// FormulaLineResponse linha da fórmula na resposta.
type FormulaLineResponse struct {
	ID               string          `json:"id"`
	InputItemID      string          `json:"input_item_id"`
	QuantityRequired decimal.Decimal `json:"quantity_required"`
	Note             string          `json:"note,omitempty"`
}

// FormulaResponse fórmula resolvida de um item. Empty sinaliza o estado
// "sem BOM" (válido, não erro) para o chamador oferecer o cadastro.
type FormulaResponse struct {
	ProductionItemID string                `json:"production_item_id"`
	Empty            bool                  `json:"formula_vazia"`
	Lines            []FormulaLineResponse `json:"lines"`
}

// FormulaCostResponse prévia de custo da fórmula.
type FormulaCostResponse struct {
	ProductionItemID string          `json:"production_item_id"`
	TotalCost        decimal.Decimal `json:"custo_total"`
}

// FormulaSummaryResponse item da visão agrupada de fórmulas.
type FormulaSummaryResponse struct {
	ProductionItemID string          `json:"production_item_id"`
	Code             string          `json:"code"`
	Name             string          `json:"name"`
	Unit             string          `json:"unit"`
	TotalCost        decimal.Decimal `json:"custo_total"`
	IngredientCount  int             `json:"qtd_ingredientes"`
}

// ValidateAllocationRequest body para POST /api/lotes/validar.
type ValidateAllocationRequest struct {
	BatchID  string          `json:"batch_id"`
	Required decimal.Decimal `json:"required"`
}

// ValidateAllocationResponse resultado da verificação de suficiência.
type ValidateAllocationResponse struct {
	OK        bool            `json:"ok"`
	Available decimal.Decimal `json:"available"`
}

// ExecuteProductionRequest body para POST /api/producoes/executar.
// Allocations: id da linha da fórmula -> id do lote de insumo escolhido.
type ExecuteProductionRequest struct {
	ProductionItemID string            `json:"production_item_id"`
	Quantity         decimal.Decimal   `json:"quantity"`
	Allocations      map[string]string `json:"allocations"`
	OutputLotCode    string            `json:"output_lot_code,omitempty"`
	Notes            string            `json:"notes,omitempty"`
}

// ConsumedLineDTO baixa aplicada, parte do diário da execução.
type ConsumedLineDTO struct {
	LineIndex   int             `json:"line_index"`
	InputItemID string          `json:"input_item_id"`
	BatchID     string          `json:"batch_id"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// ExecuteProductionResponse resultado de uma execução bem-sucedida.
type ExecuteProductionResponse struct {
	OutputBatchID string            `json:"output_batch_id"`
	OutputLotCode string            `json:"output_lot_code"`
	Consumed      []ConsumedLineDTO `json:"consumed"`
}

// ExecutionFailureResponse falha com estado parcial: o diário identifica as
// linhas já consumidas para a correção manual (ou informa que foram estornadas).
type ExecutionFailureResponse struct {
	Code               string            `json:"code"`
	Message            string            `json:"message"`
	Consumed           []ConsumedLineDTO `json:"consumed,omitempty"`
	Compensated        bool              `json:"compensated,omitempty"`
	CompensationErrors []string          `json:"compensation_errors,omitempty"`
}

// ConsumeSaleItemRequest body para POST /api/vendas/itens/consumir.
type ConsumeSaleItemRequest struct {
	ProductBatchID string          `json:"product_batch_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	SaleID         string          `json:"sale_id,omitempty"`
	Notes          string          `json:"notes,omitempty"`
}
