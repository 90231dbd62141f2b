package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale agrupa itens vendidos de uma empresa. O núcleo só a conhece como
// consumidora paralela do mesmo padrão de baixa de lote + lançamento no razão.
type Sale struct {
	ID        string
	CompanyID string
	UserID    string
	Customer  string
	Total     decimal.Decimal
	CreatedAt time.Time
}

// SaleItem referencia um lote de produto; consumi-lo decrementa o lote
// e registra uma movimentação de saída.
type SaleItem struct {
	ID             string
	SaleID         string
	ProductBatchID string
	Quantity       decimal.Decimal
	UnitPrice      decimal.Decimal
}
