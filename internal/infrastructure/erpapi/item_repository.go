package erpapi

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mcarvalho/Producao-api/internal/domain/entity"
	"github.com/mcarvalho/Producao-api/internal/domain/repository"
)

var (
	_ repository.ProductionItemRepository = (*ProductionItemRepository)(nil)
	_ repository.InputItemRepository      = (*InputItemRepository)(nil)
)

// ProductionItemRepository adaptador REST dos itens de produção.
type ProductionItemRepository struct {
	client *Client
}

// NewProductionItemRepository constrói o adaptador.
func NewProductionItemRepository(client *Client) *ProductionItemRepository {
	return &ProductionItemRepository{client: client}
}

type productionItemWire struct {
	ID               string          `json:"id"`
	CompanyID        string          `json:"company_id"`
	Code             string          `json:"code"`
	Name             string          `json:"name"`
	Unit             string          `json:"unit"`
	StandardUnitCost decimal.Decimal `json:"standard_unit_cost"`
	Active           bool            `json:"active"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func (w productionItemWire) toEntity() entity.ProductionItem {
	return entity.ProductionItem{
		ID:               w.ID,
		CompanyID:        w.CompanyID,
		Code:             w.Code,
		Name:             w.Name,
		Unit:             w.Unit,
		StandardUnitCost: w.StandardUnitCost,
		Active:           w.Active,
		CreatedAt:        w.CreatedAt,
		UpdatedAt:        w.UpdatedAt,
	}
}

// GetByID GET /itens-producao/{id}.
func (r *ProductionItemRepository) GetByID(ctx context.Context, id string) (*entity.ProductionItem, error) {
	var w productionItemWire
	if err := r.client.get(ctx, "/itens-producao/"+id, &w); err != nil {
		return nil, err
	}
	out := w.toEntity()
	return &out, nil
}

// List GET /itens-producao/.
func (r *ProductionItemRepository) List(ctx context.Context) ([]entity.ProductionItem, error) {
	var wires []productionItemWire
	if err := r.client.get(ctx, "/itens-producao/", &wires); err != nil {
		return nil, err
	}
	items := make([]entity.ProductionItem, 0, len(wires))
	for _, w := range wires {
		items = append(items, w.toEntity())
	}
	return items, nil
}

// InputItemRepository adaptador REST dos insumos.
type InputItemRepository struct {
	client *Client
}

// NewInputItemRepository constrói o adaptador.
func NewInputItemRepository(client *Client) *InputItemRepository {
	return &InputItemRepository{client: client}
}

type inputItemWire struct {
	ID        string          `json:"id"`
	CompanyID string          `json:"company_id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Supplier  string          `json:"supplier,omitempty"`
	Active    bool            `json:"active"`
}

func (w inputItemWire) toEntity() entity.InputItem {
	return entity.InputItem{
		ID:        w.ID,
		CompanyID: w.CompanyID,
		Code:      w.Code,
		Name:      w.Name,
		Unit:      w.Unit,
		UnitCost:  w.UnitCost,
		Supplier:  w.Supplier,
		Active:    w.Active,
	}
}

// GetByID GET /insumos/{id}.
func (r *InputItemRepository) GetByID(ctx context.Context, id string) (*entity.InputItem, error) {
	var w inputItemWire
	if err := r.client.get(ctx, "/insumos/"+id, &w); err != nil {
		return nil, err
	}
	out := w.toEntity()
	return &out, nil
}

// List GET /insumos/.
func (r *InputItemRepository) List(ctx context.Context) ([]entity.InputItem, error) {
	var wires []inputItemWire
	if err := r.client.get(ctx, "/insumos/", &wires); err != nil {
		return nil, err
	}
	items := make([]entity.InputItem, 0, len(wires))
	for _, w := range wires {
		items = append(items, w.toEntity())
	}
	return items, nil
}
