package repository

import (
	"context"

	"github.com/mcarvalho/Producao-api/internal/domain/entity"
)

// InputBatchRepository é o porto de leitura/baixa dos lotes de insumo.
type InputBatchRepository interface {
	// ListByInputItem devolve todos os lotes do insumo, inclusive os zerados;
	// o alocador filtra os candidatos.
	ListByInputItem(ctx context.Context, inputItemID string) ([]entity.InputBatch, error)
	GetByID(ctx context.Context, id string) (*entity.InputBatch, error)
	// Update persiste o lote completo (o backend espera o corpo inteiro no PUT).
	Update(ctx context.Context, batch *entity.InputBatch) error
}

// ProductionBatchRepository cria o lote de saída de uma execução de produção.
type ProductionBatchRepository interface {
	Create(ctx context.Context, batch entity.ProductionBatch) (*entity.ProductionBatch, error)
}

// ProductBatchRepository é o porto dos lotes de produto acabado (consumo por venda).
type ProductBatchRepository interface {
	GetByID(ctx context.Context, id string) (*entity.ProductBatch, error)
	Update(ctx context.Context, batch *entity.ProductBatch) error
}
