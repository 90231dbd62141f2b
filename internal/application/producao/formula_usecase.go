package producao

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mcarvalho/Producao-api/internal/domain"
	"github.com/mcarvalho/Producao-api/internal/domain/entity"
	"github.com/mcarvalho/Producao-api/internal/domain/repository"
)

// FormulaUseCase resolve e substitui a BOM de um item de produção.
type FormulaUseCase struct {
	formulas repository.FormulaRepository
}

// NewFormulaUseCase constrói o caso de uso.
func NewFormulaUseCase(formulas repository.FormulaRepository) *FormulaUseCase {
	return &FormulaUseCase{formulas: formulas}
}

// Resolve busca a fórmula completa do item, preservando a ordem do servidor.
// Fórmula vazia retorna domain.ErrEmptyFormula — estado distinto de falha de
// transporte, para o chamador oferecer o cadastro da BOM em vez de exibir erro.
func (uc *FormulaUseCase) Resolve(ctx context.Context, productionItemID string) (*entity.Formula, error) {
	if productionItemID == "" {
		return nil, domain.NewValidationError("production_item_id", "obrigatório")
	}
	lines, err := uc.formulas.ListByProductionItem(ctx, productionItemID)
	if err != nil {
		return nil, fmt.Errorf("buscar fórmula: %w", err)
	}
	if len(lines) == 0 {
		return nil, domain.ErrEmptyFormula
	}
	return &entity.Formula{ProductionItemID: productionItemID, Lines: lines}, nil
}

// NewLine é uma linha candidata vinda do editor de fórmula.
type NewLine struct {
	InputItemID      string
	QuantityRequired decimal.Decimal
	Note             string
}

// Replace substitui a BOM inteira do item: apaga todas as linhas atuais e recria
// as novas, uma chamada por linha (estratégia do backend, não atômica — uma falha
// no meio deixa a BOM parcial; o erro devolvido identifica a etapa).
//
// Linhas sem insumo ou com quantidade <= 0 são descartadas em silêncio; se nada
// sobrar, falha com domain.ErrNoValidIngredients ANTES de apagar qualquer linha.
func (uc *FormulaUseCase) Replace(ctx context.Context, productionItemID string, newLines []NewLine) error {
	if productionItemID == "" {
		return domain.NewValidationError("production_item_id", "obrigatório")
	}

	valid := make([]NewLine, 0, len(newLines))
	for _, l := range newLines {
		if l.InputItemID == "" || !l.QuantityRequired.GreaterThan(decimal.Zero) {
			continue
		}
		valid = append(valid, l)
	}
	if len(valid) == 0 {
		return domain.ErrNoValidIngredients
	}

	existing, err := uc.formulas.ListByProductionItem(ctx, productionItemID)
	if err != nil {
		return fmt.Errorf("buscar fórmula atual: %w", err)
	}
	for _, l := range existing {
		if err := uc.formulas.Delete(ctx, l.ID); err != nil {
			return fmt.Errorf("remover linha %s da fórmula: %w", l.ID, err)
		}
	}
	for i, l := range valid {
		line := entity.FormulaLine{
			ProductionItemID: productionItemID,
			InputItemID:      l.InputItemID,
			QuantityRequired: l.QuantityRequired,
			Note:             l.Note,
		}
		if _, err := uc.formulas.Create(ctx, line); err != nil {
			return fmt.Errorf("criar linha %d da fórmula: %w", i+1, err)
		}
	}
	return nil
}
