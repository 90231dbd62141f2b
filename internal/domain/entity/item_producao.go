package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductionItem representa um item produzido pela fábrica (produção intermediária).
// É a âncora da fórmula (BOM) e dos lotes de produção; escopado por empresa.
type ProductionItem struct {
	ID               string
	CompanyID        string
	Code             string // código único por empresa
	Name             string
	Unit             string          // KG, L, UN...
	StandardUnitCost decimal.Decimal // custo unitário padrão usado no lote de saída
	Active           bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// InputItem representa um insumo (matéria-prima) cadastrado pela empresa.
type InputItem struct {
	ID        string
	CompanyID string
	Code      string
	Name      string
	Unit      string
	UnitCost  decimal.Decimal
	Supplier  string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
