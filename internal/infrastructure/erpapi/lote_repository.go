package erpapi

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mcarvalho/Producao-api/internal/domain/entity"
	"github.com/mcarvalho/Producao-api/internal/domain/repository"
)

var (
	_ repository.InputBatchRepository      = (*InputBatchRepository)(nil)
	_ repository.ProductionBatchRepository = (*ProductionBatchRepository)(nil)
	_ repository.ProductBatchRepository    = (*ProductBatchRepository)(nil)
)

// ── Lotes de insumo ───────────────────────────────────────────────────────────

// InputBatchRepository adaptador REST dos lotes de insumo.
type InputBatchRepository struct {
	client *Client
}

// NewInputBatchRepository constrói o adaptador.
func NewInputBatchRepository(client *Client) *InputBatchRepository {
	return &InputBatchRepository{client: client}
}

type inputBatchWire struct {
	ID              string          `json:"id,omitempty"`
	InputItemID     string          `json:"input_item_id"`
	LotCode         string          `json:"lot_code"`
	EntryDate       time.Time       `json:"entry_date"`
	ExpiryDate      *time.Time      `json:"expiry_date,omitempty"`
	Quantity        decimal.Decimal `json:"quantity"`
	MinimumQuantity decimal.Decimal `json:"minimum_quantity"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	Location        string          `json:"location,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}

func (w inputBatchWire) toEntity() entity.InputBatch {
	return entity.InputBatch{
		ID:              w.ID,
		InputItemID:     w.InputItemID,
		LotCode:         w.LotCode,
		EntryDate:       w.EntryDate,
		ExpiryDate:      w.ExpiryDate,
		Quantity:        w.Quantity,
		MinimumQuantity: w.MinimumQuantity,
		UnitCost:        w.UnitCost,
		Location:        w.Location,
		Notes:           w.Notes,
	}
}

func inputBatchToWire(b *entity.InputBatch) inputBatchWire {
	return inputBatchWire{
		ID:              b.ID,
		InputItemID:     b.InputItemID,
		LotCode:         b.LotCode,
		EntryDate:       b.EntryDate,
		ExpiryDate:      b.ExpiryDate,
		Quantity:        b.Quantity,
		MinimumQuantity: b.MinimumQuantity,
		UnitCost:        b.UnitCost,
		Location:        b.Location,
		Notes:           b.Notes,
	}
}

// ListByInputItem GET /item-estoque-insumos/estoque/{inputItemId}.
func (r *InputBatchRepository) ListByInputItem(ctx context.Context, inputItemID string) ([]entity.InputBatch, error) {
	var wires []inputBatchWire
	if err := r.client.get(ctx, "/item-estoque-insumos/estoque/"+inputItemID, &wires); err != nil {
		return nil, err
	}
	batches := make([]entity.InputBatch, 0, len(wires))
	for _, w := range wires {
		batches = append(batches, w.toEntity())
	}
	return batches, nil
}

// GetByID GET /item-estoque-insumos/{id}.
func (r *InputBatchRepository) GetByID(ctx context.Context, id string) (*entity.InputBatch, error) {
	var w inputBatchWire
	if err := r.client.get(ctx, "/item-estoque-insumos/"+id, &w); err != nil {
		return nil, err
	}
	out := w.toEntity()
	return &out, nil
}

// Update PUT /item-estoque-insumos/{id} com o corpo completo do lote.
func (r *InputBatchRepository) Update(ctx context.Context, batch *entity.InputBatch) error {
	return r.client.put(ctx, "/item-estoque-insumos/"+batch.ID, inputBatchToWire(batch), nil)
}

// ── Lotes de produção ─────────────────────────────────────────────────────────

// ProductionBatchRepository cria lotes de produção (saída da execução).
type ProductionBatchRepository struct {
	client *Client
}

// NewProductionBatchRepository constrói o adaptador.
func NewProductionBatchRepository(client *Client) *ProductionBatchRepository {
	return &ProductionBatchRepository{client: client}
}

type productionBatchWire struct {
	ID               string          `json:"id,omitempty"`
	ProductionItemID string          `json:"production_item_id"`
	LotCode          string          `json:"lot_code"`
	ProductionDate   time.Time       `json:"production_date"`
	ExpiryDate       *time.Time      `json:"expiry_date,omitempty"`
	Quantity         decimal.Decimal `json:"quantity"`
	MinimumQuantity  decimal.Decimal `json:"minimum_quantity"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	Location         string          `json:"location,omitempty"`
	Notes            string          `json:"notes,omitempty"`
}

// Create POST /item-estoque-producoes/.
func (r *ProductionBatchRepository) Create(ctx context.Context, batch entity.ProductionBatch) (*entity.ProductionBatch, error) {
	body := productionBatchWire{
		ProductionItemID: batch.ProductionItemID,
		LotCode:          batch.LotCode,
		ProductionDate:   batch.ProductionDate,
		ExpiryDate:       batch.ExpiryDate,
		Quantity:         batch.Quantity,
		MinimumQuantity:  batch.MinimumQuantity,
		UnitCost:         batch.UnitCost,
		Location:         batch.Location,
		Notes:            batch.Notes,
	}
	var created productionBatchWire
	if err := r.client.post(ctx, "/item-estoque-producoes/", body, &created); err != nil {
		return nil, err
	}
	return &entity.ProductionBatch{
		ID:               created.ID,
		ProductionItemID: created.ProductionItemID,
		LotCode:          created.LotCode,
		ProductionDate:   created.ProductionDate,
		ExpiryDate:       created.ExpiryDate,
		Quantity:         created.Quantity,
		MinimumQuantity:  created.MinimumQuantity,
		UnitCost:         created.UnitCost,
		Location:         created.Location,
		Notes:            created.Notes,
	}, nil
}

// ── Lotes de produto acabado ──────────────────────────────────────────────────

// ProductBatchRepository adaptador REST dos lotes de produto (consumo por venda).
type ProductBatchRepository struct {
	client *Client
}

// NewProductBatchRepository constrói o adaptador.
func NewProductBatchRepository(client *Client) *ProductBatchRepository {
	return &ProductBatchRepository{client: client}
}

type productBatchWire struct {
	ID               string          `json:"id,omitempty"`
	ProductID        string          `json:"product_id"`
	LotCode          string          `json:"lot_code"`
	ProductionDate   time.Time       `json:"production_date"`
	ExpiryDate       *time.Time      `json:"expiry_date,omitempty"`
	Quantity         decimal.Decimal `json:"quantity"`
	ReservedQuantity decimal.Decimal `json:"reserved_quantity"`
	MinimumQuantity  decimal.Decimal `json:"minimum_quantity"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	Location         string          `json:"location,omitempty"`
	Notes            string          `json:"notes,omitempty"`
}

// GetByID GET /item-estoque-produtos/{id}.
func (r *ProductBatchRepository) GetByID(ctx context.Context, id string) (*entity.ProductBatch, error) {
	var w productBatchWire
	if err := r.client.get(ctx, "/item-estoque-produtos/"+id, &w); err != nil {
		return nil, err
	}
	return &entity.ProductBatch{
		ID:               w.ID,
		ProductID:        w.ProductID,
		LotCode:          w.LotCode,
		ProductionDate:   w.ProductionDate,
		ExpiryDate:       w.ExpiryDate,
		Quantity:         w.Quantity,
		ReservedQuantity: w.ReservedQuantity,
		MinimumQuantity:  w.MinimumQuantity,
		UnitCost:         w.UnitCost,
		Location:         w.Location,
		Notes:            w.Notes,
	}, nil
}

// Update PUT /item-estoque-produtos/{id} com o corpo completo.
func (r *ProductBatchRepository) Update(ctx context.Context, batch *entity.ProductBatch) error {
	body := productBatchWire{
		ID:               batch.ID,
		ProductID:        batch.ProductID,
		LotCode:          batch.LotCode,
		ProductionDate:   batch.ProductionDate,
		ExpiryDate:       batch.ExpiryDate,
		Quantity:         batch.Quantity,
		ReservedQuantity: batch.ReservedQuantity,
		MinimumQuantity:  batch.MinimumQuantity,
		UnitCost:         batch.UnitCost,
		Location:         batch.Location,
		Notes:            batch.Notes,
	}
	return r.client.put(ctx, "/item-estoque-produtos/"+batch.ID, body, nil)
}
