package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Erros de domínio (sem dependências de transporte).
var (
	// ErrEmptyFormula: o item de produção ainda não tem BOM. Estado esperado e
	// recuperável — o chamador deve oferecer o cadastro da fórmula, não tratar como falha.
	ErrEmptyFormula = errors.New("fórmula vazia para o item de produção")

	// ErrNoValidIngredients: nenhuma linha da fórmula passou no filtro de validade
	// (insumo escolhido e quantidade > 0). Detectado antes de qualquer chamada ao backend.
	ErrNoValidIngredients = errors.New("nenhum ingrediente válido na fórmula")

	ErrNotFound     = errors.New("recurso não encontrado")
	ErrUnauthorized = errors.New("não autorizado")
)

// ValidationError indica pré-condição não atendida (lote não selecionado,
// quantidade não positiva...). Sempre verificado antes de qualquer chamada de rede.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// NewValidationError constrói um erro de validação de pré-condição.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Msg: msg}
}

// InsufficientStockError indica que o lote escolhido não cobre a quantidade
// necessária de uma linha. A execução aborta na linha indicada; as baixas já
// aplicadas em linhas anteriores da mesma execução permanecem (não há rollback
// automático por padrão — ver o diário de execução do orquestrador).
type InsufficientStockError struct {
	LineIndex int // índice da linha na fórmula (base 0); -1 fora de fórmula (ex.: venda)
	ItemName  string
	BatchID   string
	Required  decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	if e.LineIndex < 0 {
		return fmt.Sprintf("estoque insuficiente para %q: necessário %s, disponível %s",
			e.ItemName, e.Required.String(), e.Available.String())
	}
	return fmt.Sprintf("estoque insuficiente para %q (linha %d): necessário %s, disponível %s",
		e.ItemName, e.LineIndex+1, e.Required.String(), e.Available.String())
}

// TransportError representa qualquer falha de rede/HTTP contra o backend,
// com o detalhe extraído do payload de erro do servidor quando disponível.
type TransportError struct {
	Status int    // 0 quando a requisição nem chegou a responder
	Detail string // detail do servidor, ou mensagem genérica
	Err    error  // causa subjacente (timeout, conexão recusada...)
}

func (e *TransportError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("backend HTTP %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("backend inacessível: %s", e.Detail)
}

func (e *TransportError) Unwrap() error { return e.Err }
