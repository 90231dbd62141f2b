package producao

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/mcarvalho/Producao-api/internal/domain"
	"github.com/mcarvalho/Producao-api/internal/domain/entity"
	"github.com/mcarvalho/Producao-api/internal/domain/repository"
)

// Allocator lista lotes candidatos e verifica suficiência para uma linha da fórmula.
// Nunca escolhe o "melhor" lote sozinho: a seleção é sempre do operador (ou de uma
// DefaultBatchPolicy explícita fornecida pelo chamador).
type Allocator struct {
	inputBatches repository.InputBatchRepository
}

// NewAllocator constrói o alocador.
func NewAllocator(inputBatches repository.InputBatchRepository) *Allocator {
	return &Allocator{inputBatches: inputBatches}
}

// ListCandidates devolve os lotes do insumo com quantidade > 0, na ordem do servidor.
func (a *Allocator) ListCandidates(ctx context.Context, inputItemID string) ([]entity.InputBatch, error) {
	if inputItemID == "" {
		return nil, domain.NewValidationError("input_item_id", "obrigatório")
	}
	batches, err := a.inputBatches.ListByInputItem(ctx, inputItemID)
	if err != nil {
		return nil, fmt.Errorf("listar lotes do insumo %s: %w", inputItemID, err)
	}
	candidates := make([]entity.InputBatch, 0, len(batches))
	for _, b := range batches {
		if b.HasQuantity() {
			candidates = append(candidates, b)
		}
	}
	return candidates, nil
}

// AllocationCheck é o resultado da verificação de suficiência de um lote.
type AllocationCheck struct {
	OK        bool
	Available decimal.Decimal
}

// Validate confere se o lote escolhido cobre a quantidade necessária.
// Disponível = quantidade em mãos do lote (lotes de insumo não têm reserva).
// OK falso é pré-condição dura: a execução deve ser bloqueada, não avisada.
func (a *Allocator) Validate(ctx context.Context, batchID string, required decimal.Decimal) (*AllocationCheck, error) {
	if batchID == "" {
		return nil, domain.NewValidationError("batch_id", "obrigatório")
	}
	if !required.GreaterThan(decimal.Zero) {
		return nil, domain.NewValidationError("required", "deve ser maior que zero")
	}
	batch, err := a.inputBatches.GetByID(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("buscar lote %s: %w", batchID, err)
	}
	return &AllocationCheck{
		OK:        batch.Quantity.GreaterThanOrEqual(required),
		Available: batch.Quantity,
	}, nil
}

// PrefetchCandidates carrega os candidatos de todos os insumos da fórmula de uma
// vez, para a tela de alocação. As buscas são só de leitura e por isso rodam em
// paralelo (uma goroutine por insumo distinto).
func (a *Allocator) PrefetchCandidates(ctx context.Context, formula *entity.Formula) (map[string][]entity.InputBatch, error) {
	if formula == nil || formula.IsEmpty() {
		return map[string][]entity.InputBatch{}, nil
	}
	ids := formula.InputItemIDs()

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
		result   = make(map[string][]entity.InputBatch, len(ids))
	)
	for _, id := range ids {
		wg.Add(1)
		go func(inputItemID string) {
			defer wg.Done()
			candidates, err := a.ListCandidates(ctx, inputItemID)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			result[inputItemID] = candidates
		}(id)
	}
	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return result, nil
}

// DefaultBatchPolicy escolhe o lote pré-selecionado na tela de alocação.
// Política explícita do chamador — nada no núcleo assume "o primeiro da lista".
// Retorna nil quando não há candidato.
type DefaultBatchPolicy func(candidates []entity.InputBatch) *entity.InputBatch

// FirstCandidate pré-seleciona o primeiro lote na ordem do servidor.
func FirstCandidate(candidates []entity.InputBatch) *entity.InputBatch {
	if len(candidates) == 0 {
		return nil
	}
	return &candidates[0]
}

// EarliestExpiry pré-seleciona o lote com validade mais próxima; lotes sem
// validade só são escolhidos quando nenhum candidato tem data.
func EarliestExpiry(candidates []entity.InputBatch) *entity.InputBatch {
	var best *entity.InputBatch
	for i := range candidates {
		c := &candidates[i]
		if c.ExpiryDate == nil {
			continue
		}
		if best == nil || c.ExpiryDate.Before(*best.ExpiryDate) {
			best = c
		}
	}
	if best != nil {
		return best
	}
	return FirstCandidate(candidates)
}
