package repository

import (
	"context"

	"github.com/mcarvalho/Producao-api/internal/domain/entity"
)

// StockMovementRepository registra lançamentos no razão de estoque.
// Append-only: o núcleo nunca altera nem remove movimentações.
type StockMovementRepository interface {
	Append(ctx context.Context, movement entity.StockMovement) error
}
