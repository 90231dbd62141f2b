package entity

import "github.com/shopspring/decimal"

// FormulaLine é uma linha da fórmula (BOM): quanto de um insumo é consumido
// para produzir UMA unidade do item de produção.
type FormulaLine struct {
	ID               string
	ProductionItemID string
	InputItemID      string
	QuantityRequired decimal.Decimal // por unidade produzida; invariante: > 0
	Note             string
}

// Valid informa se a linha pode ser persistida: insumo escolhido e quantidade positiva.
func (l FormulaLine) Valid() bool {
	return l.InputItemID != "" && l.QuantityRequired.GreaterThan(decimal.Zero)
}

// RequiredFor devolve a quantidade total do insumo para produzir quantityToProduce unidades.
func (l FormulaLine) RequiredFor(quantityToProduce decimal.Decimal) decimal.Decimal {
	return l.QuantityRequired.Mul(quantityToProduce)
}

// Formula é o value object que agrega a BOM completa de um item de produção.
// O backend não tem entidade "cabeçalho de fórmula": a fórmula é o conjunto das
// linhas com o mesmo production_item_id, na ordem em que o servidor as devolve.
type Formula struct {
	ProductionItemID string
	Lines            []FormulaLine
}

// IsEmpty informa se o item ainda não tem BOM definida (estado válido, não erro duro).
func (f Formula) IsEmpty() bool {
	return len(f.Lines) == 0
}

// InputItemIDs devolve os insumos distintos referenciados pela fórmula, na ordem
// da primeira ocorrência.
func (f Formula) InputItemIDs() []string {
	seen := make(map[string]struct{}, len(f.Lines))
	ids := make([]string, 0, len(f.Lines))
	for _, l := range f.Lines {
		if _, ok := seen[l.InputItemID]; ok {
			continue
		}
		seen[l.InputItemID] = struct{}{}
		ids = append(ids, l.InputItemID)
	}
	return ids
}
