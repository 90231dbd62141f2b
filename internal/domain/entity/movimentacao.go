package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de estoque de uma movimentação (value object conceitual).
const (
	StockTypeInsumo   = "insumo"
	StockTypeProducao = "producao"
	StockTypeProduto  = "produto"
)

// Tipos de operação de uma movimentação.
const (
	OperationEntrada       = "entrada"
	OperationSaida         = "saida"
	OperationAjuste        = "ajuste"
	OperationTransferencia = "transferencia"
)

// StockMovement é um lançamento imutável do livro-razão de estoque.
// Exatamente um dos campos *BatchID deve estar preenchido, conforme o StockType.
// Nunca é alterado nem removido depois de registrado.
type StockMovement struct {
	ID                string
	CompanyID         string
	UserID            string
	StockType         string // insumo, producao, produto
	OperationType     string // entrada, saida, ajuste, transferencia
	Quantity          decimal.Decimal
	InputBatchID      string
	ProductionBatchID string
	ProductBatchID    string
	Reason            string
	Notes             string
	CreatedAt         time.Time
}
