package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InputBatch é um lote físico de insumo (entrada de matéria-prima).
// Consumido pela execução de produção; invariante: Quantity >= 0.
type InputBatch struct {
	ID              string
	InputItemID     string
	LotCode         string
	EntryDate       time.Time
	ExpiryDate      *time.Time // nil = sem validade
	Quantity        decimal.Decimal
	MinimumQuantity decimal.Decimal
	UnitCost        decimal.Decimal
	Location        string
	Notes           string
}

// HasQuantity informa se o lote é candidato à alocação (quantidade disponível > 0).
func (b InputBatch) HasQuantity() bool {
	return b.Quantity.GreaterThan(decimal.Zero)
}

// ProductionBatch é um lote produzido (saída de uma execução de produção).
type ProductionBatch struct {
	ID               string
	ProductionItemID string
	LotCode          string
	ProductionDate   time.Time
	ExpiryDate       *time.Time
	Quantity         decimal.Decimal
	MinimumQuantity  decimal.Decimal
	UnitCost         decimal.Decimal
	Location         string
	Notes            string
}

// ProductBatch é um lote de produto acabado, vendável. Só esta forma de lote tem
// quantidade reservada (comprometida com vendas pendentes).
type ProductBatch struct {
	ID               string
	ProductID        string
	LotCode          string
	ProductionDate   time.Time
	ExpiryDate       *time.Time
	Quantity         decimal.Decimal
	ReservedQuantity decimal.Decimal
	MinimumQuantity  decimal.Decimal
	UnitCost         decimal.Decimal
	Location         string
	Notes            string
}

// Available devolve a quantidade vendável: Quantity - ReservedQuantity (>= 0 por invariante).
func (b ProductBatch) Available() decimal.Decimal {
	return b.Quantity.Sub(b.ReservedQuantity)
}
