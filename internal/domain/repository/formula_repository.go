package repository

import (
	"context"

	"github.com/mcarvalho/Producao-api/internal/domain/entity"
)

// FormulaRepository é o porto de acesso às linhas de fórmula (BOM) no backend.
// Não existe cabeçalho de fórmula no servidor: a BOM é o conjunto de linhas do item.
type FormulaRepository interface {
	// ListByProductionItem devolve as linhas na ordem fornecida pelo servidor.
	// Lista vazia não é erro.
	ListByProductionItem(ctx context.Context, productionItemID string) ([]entity.FormulaLine, error)
	Create(ctx context.Context, line entity.FormulaLine) (*entity.FormulaLine, error)
	Delete(ctx context.Context, id string) error
}
