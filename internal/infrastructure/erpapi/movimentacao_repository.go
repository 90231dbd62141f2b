package erpapi

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mcarvalho/Producao-api/internal/domain/entity"
	"github.com/mcarvalho/Producao-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepository)(nil)

// StockMovementRepository registra lançamentos no razão via backend.
type StockMovementRepository struct {
	client *Client
}

// NewStockMovementRepository constrói o adaptador.
func NewStockMovementRepository(client *Client) *StockMovementRepository {
	return &StockMovementRepository{client: client}
}

type stockMovementWire struct {
	ID                string          `json:"id,omitempty"`
	CompanyID         string          `json:"company_id"`
	UserID            string          `json:"user_id"`
	StockType         string          `json:"stock_type"`
	OperationType     string          `json:"operation_type"`
	Quantity          decimal.Decimal `json:"quantity"`
	InputBatchID      string          `json:"input_batch_id,omitempty"`
	ProductionBatchID string          `json:"production_batch_id,omitempty"`
	ProductBatchID    string          `json:"product_batch_id,omitempty"`
	Reason            string          `json:"reason,omitempty"`
	Notes             string          `json:"notes,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// Append POST /movimentacoes-estoque/. O corpo da resposta é ignorado:
// o núcleo não precisa do lançamento de volta.
func (r *StockMovementRepository) Append(ctx context.Context, movement entity.StockMovement) error {
	body := stockMovementWire{
		ID:                movement.ID,
		CompanyID:         movement.CompanyID,
		UserID:            movement.UserID,
		StockType:         movement.StockType,
		OperationType:     movement.OperationType,
		Quantity:          movement.Quantity,
		InputBatchID:      movement.InputBatchID,
		ProductionBatchID: movement.ProductionBatchID,
		ProductBatchID:    movement.ProductBatchID,
		Reason:            movement.Reason,
		Notes:             movement.Notes,
		CreatedAt:         movement.CreatedAt,
	}
	return r.client.post(ctx, "/movimentacoes-estoque/", body, nil)
}
