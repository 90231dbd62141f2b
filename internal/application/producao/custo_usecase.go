package producao

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mcarvalho/Producao-api/internal/domain"
	"github.com/mcarvalho/Producao-api/internal/domain/entity"
	domainproducao "github.com/mcarvalho/Producao-api/internal/domain/producao"
	"github.com/mcarvalho/Producao-api/internal/domain/repository"
)

// CostUseCase calcula prévias de custo de fórmula e a visão agrupada por item.
type CostUseCase struct {
	formulas   repository.FormulaRepository
	items      repository.ProductionItemRepository
	inputItems repository.InputItemRepository
}

// NewCostUseCase constrói o caso de uso.
func NewCostUseCase(
	formulas repository.FormulaRepository,
	items repository.ProductionItemRepository,
	inputItems repository.InputItemRepository,
) *CostUseCase {
	return &CostUseCase{formulas: formulas, items: items, inputItems: inputItems}
}

// EstimateForItem devolve o custo estimado da fórmula do item
// (Σ quantidade_necessaria × custo_unitario). Fórmula vazia custa zero —
// a prévia serve também para o editor antes da primeira linha.
func (uc *CostUseCase) EstimateForItem(ctx context.Context, productionItemID string) (decimal.Decimal, error) {
	if productionItemID == "" {
		return decimal.Zero, domain.NewValidationError("production_item_id", "obrigatório")
	}
	lines, err := uc.formulas.ListByProductionItem(ctx, productionItemID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("buscar fórmula: %w", err)
	}
	if len(lines) == 0 {
		return decimal.Zero, nil
	}
	inputs, err := uc.inputItems.List(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("listar insumos: %w", err)
	}
	return domainproducao.EstimateCost(lines, domainproducao.LookupFromItems(inputs)), nil
}

// GroupedView devolve todas as fórmulas da empresa agrupadas por item, com custo
// total e contagem de ingredientes, já filtradas. Itens removidos ou inativos que
// ainda têm linhas órfãs são pulados, não causam erro.
func (uc *CostUseCase) GroupedView(ctx context.Context, filter domainproducao.SummaryFilter) ([]domainproducao.FormulaSummary, error) {
	items, err := uc.items.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar itens de produção: %w", err)
	}
	inputs, err := uc.inputItems.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar insumos: %w", err)
	}

	allLines := make([]entity.FormulaLine, 0, len(items))
	for _, item := range items {
		lines, err := uc.formulas.ListByProductionItem(ctx, item.ID)
		if err != nil {
			return nil, fmt.Errorf("buscar fórmula de %s: %w", item.ID, err)
		}
		allLines = append(allLines, lines...)
	}

	summaries := domainproducao.GroupFormulas(allLines, items, domainproducao.LookupFromItems(inputs))
	return domainproducao.FilterSummaries(summaries, filter), nil
}

// EstimateForFormula calcula o custo de uma fórmula já resolvida (prévia viva do
// editor, recalculada a cada alteração de linha — valor derivado, nunca persistido).
func (uc *CostUseCase) EstimateForFormula(ctx context.Context, lines []NewLine) (decimal.Decimal, error) {
	inputs, err := uc.inputItems.List(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("listar insumos: %w", err)
	}
	flat := make([]entity.FormulaLine, 0, len(lines))
	for _, l := range lines {
		flat = append(flat, entity.FormulaLine{InputItemID: l.InputItemID, QuantityRequired: l.QuantityRequired})
	}
	return domainproducao.EstimateCost(flat, domainproducao.LookupFromItems(inputs)), nil
}
