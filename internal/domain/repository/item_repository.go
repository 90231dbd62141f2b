package repository

import (
	"context"

	"github.com/mcarvalho/Producao-api/internal/domain/entity"
)

// ProductionItemRepository consulta itens de produção no backend.
type ProductionItemRepository interface {
	GetByID(ctx context.Context, id string) (*entity.ProductionItem, error)
	List(ctx context.Context) ([]entity.ProductionItem, error)
}

// InputItemRepository consulta insumos no backend (para nomes e custos unitários).
type InputItemRepository interface {
	GetByID(ctx context.Context, id string) (*entity.InputItem, error)
	List(ctx context.Context) ([]entity.InputItem, error)
}
