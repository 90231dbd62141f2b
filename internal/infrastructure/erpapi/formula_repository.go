package erpapi

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mcarvalho/Producao-api/internal/domain/entity"
	"github.com/mcarvalho/Producao-api/internal/domain/repository"
)

// Verificação em tempo de compilação de que o adaptador implementa o porto.
var _ repository.FormulaRepository = (*FormulaRepository)(nil)

// FormulaRepository adaptador REST das linhas de fórmula.
type FormulaRepository struct {
	client *Client
}

// NewFormulaRepository constrói o adaptador sobre o cliente compartilhado.
func NewFormulaRepository(client *Client) *FormulaRepository {
	return &FormulaRepository{client: client}
}

type formulaLineWire struct {
	ID               string          `json:"id,omitempty"`
	ProductionItemID string          `json:"production_item_id"`
	InputItemID      string          `json:"input_item_id"`
	QuantityRequired decimal.Decimal `json:"quantity_required"`
	Note             string          `json:"note,omitempty"`
}

func (w formulaLineWire) toEntity() entity.FormulaLine {
	return entity.FormulaLine{
		ID:               w.ID,
		ProductionItemID: w.ProductionItemID,
		InputItemID:      w.InputItemID,
		QuantityRequired: w.QuantityRequired,
		Note:             w.Note,
	}
}

// ListByProductionItem GET /formulas-producao/producao/{id}, ordem do servidor preservada.
func (r *FormulaRepository) ListByProductionItem(ctx context.Context, productionItemID string) ([]entity.FormulaLine, error) {
	var wires []formulaLineWire
	if err := r.client.get(ctx, "/formulas-producao/producao/"+productionItemID, &wires); err != nil {
		return nil, err
	}
	lines := make([]entity.FormulaLine, 0, len(wires))
	for _, w := range wires {
		lines = append(lines, w.toEntity())
	}
	return lines, nil
}

// Create POST /formulas-producao/, uma linha por chamada.
func (r *FormulaRepository) Create(ctx context.Context, line entity.FormulaLine) (*entity.FormulaLine, error) {
	body := formulaLineWire{
		ProductionItemID: line.ProductionItemID,
		InputItemID:      line.InputItemID,
		QuantityRequired: line.QuantityRequired,
		Note:             line.Note,
	}
	var created formulaLineWire
	if err := r.client.post(ctx, "/formulas-producao/", body, &created); err != nil {
		return nil, err
	}
	out := created.toEntity()
	return &out, nil
}

// Delete DELETE /formulas-producao/{id}.
func (r *FormulaRepository) Delete(ctx context.Context, id string) error {
	return r.client.del(ctx, "/formulas-producao/"+id)
}
