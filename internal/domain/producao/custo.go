package producao

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mcarvalho/Producao-api/internal/domain/entity"
)

// CostLookup resolve o custo unitário de um insumo. O segundo retorno indica se
// o insumo é conhecido; desconhecido é tratado como custo zero, nunca como erro.
type CostLookup func(inputItemID string) (decimal.Decimal, bool)

// LookupFromItems constrói um CostLookup a partir da lista de insumos da empresa.
func LookupFromItems(items []entity.InputItem) CostLookup {
	byID := make(map[string]decimal.Decimal, len(items))
	for _, it := range items {
		byID[it.ID] = it.UnitCost
	}
	return func(inputItemID string) (decimal.Decimal, bool) {
		c, ok := byID[inputItemID]
		return c, ok
	}
}

// EstimateCost calcula o custo estimado da fórmula:
// soma de (quantidade_necessaria × custo_unitario do insumo) por linha.
// Insumo sem custo conhecido entra como zero — a prévia de custo nunca falha.
func EstimateCost(lines []entity.FormulaLine, lookup CostLookup) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		cost, ok := lookup(l.InputItemID)
		if !ok {
			continue
		}
		total = total.Add(l.QuantityRequired.Mul(cost))
	}
	return total
}

// FormulaSummary é a visão agrupada de uma fórmula para exibição:
// item de produção + custo total + contagem de ingredientes.
type FormulaSummary struct {
	Item            entity.ProductionItem
	Lines           []entity.FormulaLine
	TotalCost       decimal.Decimal
	IngredientCount int
}

// GroupFormulas agrupa todas as linhas por production_item_id e junta cada grupo
// ao seu ProductionItem. Grupos cujo item não está na lista atual (removido ou
// inativo) são descartados. O resultado sai ordenado por nome do item, só para
// estabilidade de exibição.
func GroupFormulas(lines []entity.FormulaLine, items []entity.ProductionItem, lookup CostLookup) []FormulaSummary {
	itemByID := make(map[string]entity.ProductionItem, len(items))
	for _, it := range items {
		itemByID[it.ID] = it
	}

	grouped := make(map[string][]entity.FormulaLine)
	for _, l := range lines {
		grouped[l.ProductionItemID] = append(grouped[l.ProductionItemID], l)
	}

	summaries := make([]FormulaSummary, 0, len(grouped))
	for itemID, groupLines := range grouped {
		item, ok := itemByID[itemID]
		if !ok {
			continue
		}
		summaries = append(summaries, FormulaSummary{
			Item:            item,
			Lines:           groupLines,
			TotalCost:       EstimateCost(groupLines, lookup),
			IngredientCount: len(groupLines),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Item.Name != summaries[j].Item.Name {
			return summaries[i].Item.Name < summaries[j].Item.Name
		}
		return summaries[i].Item.ID < summaries[j].Item.ID
	})
	return summaries
}

// SummaryFilter são os filtros opcionais da visão agrupada. Campos zero não filtram.
type SummaryFilter struct {
	Name    string           // busca por substring no nome do item, sem diferenciar maiúsculas
	Unit    string           // unidade de medida exata
	MinCost *decimal.Decimal // inclusive
	MaxCost *decimal.Decimal // inclusive
}

// FilterSummaries aplica o filtro sobre a visão agrupada (derivação pura).
func FilterSummaries(in []FormulaSummary, f SummaryFilter) []FormulaSummary {
	name := strings.ToLower(strings.TrimSpace(f.Name))
	out := make([]FormulaSummary, 0, len(in))
	for _, s := range in {
		if name != "" && !strings.Contains(strings.ToLower(s.Item.Name), name) {
			continue
		}
		if f.Unit != "" && s.Item.Unit != f.Unit {
			continue
		}
		if f.MinCost != nil && s.TotalCost.LessThan(*f.MinCost) {
			continue
		}
		if f.MaxCost != nil && s.TotalCost.GreaterThan(*f.MaxCost) {
			continue
		}
		out = append(out, s)
	}
	return out
}
