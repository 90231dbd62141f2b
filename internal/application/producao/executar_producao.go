package producao

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mcarvalho/Producao-api/internal/domain"
	"github.com/mcarvalho/Producao-api/internal/domain/entity"
	"github.com/mcarvalho/Producao-api/internal/domain/repository"
	"github.com/mcarvalho/Producao-api/pkg/logger"
)

// Motivos registrados no razão pela execução de produção.
const (
	ReasonProducao           = "Produção"
	ReasonProducaoFinalizada = "Produção finalizada"
	ReasonEstornoProducao    = "Estorno de produção"
)

// ExecuteInput são os parâmetros de uma execução de produção.
type ExecuteInput struct {
	ProductionItemID string
	Quantity         decimal.Decimal
	// Allocations mapeia o id de cada linha da fórmula para o lote de insumo
	// escolhido pelo operador. Toda linha precisa de uma entrada.
	Allocations   map[string]string
	OutputLotCode string // vazio = gerado como LOTE-{código do item}-{timestamp}
	Notes         string
}

// ConsumedLine é uma baixa já aplicada, registrada no diário da execução.
type ConsumedLine struct {
	LineIndex     int
	FormulaLineID string
	InputItemID   string
	BatchID       string
	Quantity      decimal.Decimal
	MovementID    string
}

// ExecutionResult é o desfecho de uma execução. Em caso de falha após a primeira
// baixa, Consumed lista exatamente o que já foi aplicado, na ordem, para que um
// operador (ou a compensação automática) possa reverter.
type ExecutionResult struct {
	OutputBatchID string
	OutputLotCode string
	Consumed      []ConsumedLine
	// Compensated indica que as baixas de Consumed foram revertidas com
	// movimentações de entrada de estorno.
	Compensated bool
	// CompensationErrors lista falhas da reversão (cada linha segue precisando
	// de correção manual).
	CompensationErrors []string
}

// ExecutorConfig opções do orquestrador.
type ExecutorConfig struct {
	// CompensateOnAbort: quando a execução falha depois de baixas parciais,
	// reverte cada baixa aplicada (quantidade de volta no lote + movimentação de
	// entrada de estorno). Desligado por padrão: o comportamento documentado é
	// não atômico e as baixas anteriores permanecem.
	CompensateOnAbort bool
}

// Executor orquestra a execução de produção fim a fim: valida pré-condições,
// consome os lotes alocados linha a linha e cria o lote de saída, registrando
// cada passo no razão de estoque.
//
// Cada chamada de Execute é uma sequência estritamente serial — nenhuma linha é
// processada em paralelo, porque cada baixa precisa enxergar o efeito das
// anteriores quando o mesmo lote é reutilizado entre linhas. O chamador não deve
// disparar duas execuções simultâneas para o mesmo item (disciplina de chamador;
// na prática, o botão "Produzir" fica desabilitado enquanto há execução em voo).
type Executor struct {
	formulas     repository.FormulaRepository
	items        repository.ProductionItemRepository
	inputItems   repository.InputItemRepository
	inputBatches repository.InputBatchRepository
	prodBatches  repository.ProductionBatchRepository
	movements    repository.StockMovementRepository
	cfg          ExecutorConfig
	log          *logger.Logger
	now          func() time.Time
}

// NewExecutor constrói o orquestrador. log pode ser nil (vira no-op).
func NewExecutor(
	formulas repository.FormulaRepository,
	items repository.ProductionItemRepository,
	inputItems repository.InputItemRepository,
	inputBatches repository.InputBatchRepository,
	prodBatches repository.ProductionBatchRepository,
	movements repository.StockMovementRepository,
	cfg ExecutorConfig,
	log *logger.Logger,
) *Executor {
	if log == nil {
		log = logger.Nop()
	}
	return &Executor{
		formulas:     formulas,
		items:        items,
		inputItems:   inputItems,
		inputBatches: inputBatches,
		prodBatches:  prodBatches,
		movements:    movements,
		cfg:          cfg,
		log:          log,
		now:          time.Now,
	}
}

// ExecuteForItem resolve a fórmula do item e executa a produção em seguida.
// Conveniência para chamadores que ainda não têm a fórmula em mãos.
//
// A checagem de alocação por linha só acontece depois de buscar a fórmula:
// um mapa de alocações incompleto custa essa consulta antes do ValidationError.
// Quem precisa da garantia de falhar antes de qualquer chamada resolve a
// fórmula primeiro e chama Execute direto.
func (e *Executor) ExecuteForItem(ctx context.Context, auth AuthContext, in ExecuteInput) (*ExecutionResult, error) {
	if err := e.validateInput(auth, in); err != nil {
		return nil, err
	}
	lines, err := e.formulas.ListByProductionItem(ctx, in.ProductionItemID)
	if err != nil {
		return nil, fmt.Errorf("buscar fórmula: %w", err)
	}
	formula := &entity.Formula{ProductionItemID: in.ProductionItemID, Lines: lines}
	return e.Execute(ctx, auth, formula, in)
}

// Execute roda a sequência de produção sobre uma fórmula já resolvida.
//
// Pré-condições (todas checadas antes de QUALQUER chamada ao backend):
//   - quantidade a produzir > 0;
//   - fórmula não vazia e do mesmo item do input;
//   - toda linha da fórmula com lote alocado.
//
// Depois, linha a linha na ordem da fórmula: re-busca o lote escolhido (estado
// fresco, nunca snapshot), aborta com InsufficientStockError se não cobre a
// necessidade, senão baixa a quantidade e registra a saída no razão. Ao final,
// cria o lote de saída e registra a entrada. Sem retry automático: cada passo é
// at-most-once; repetir Execute só é seguro enquanto nenhuma baixa foi aplicada.
func (e *Executor) Execute(ctx context.Context, auth AuthContext, formula *entity.Formula, in ExecuteInput) (*ExecutionResult, error) {
	if err := e.validateInput(auth, in); err != nil {
		return nil, err
	}
	if formula == nil || formula.IsEmpty() {
		return nil, domain.ErrEmptyFormula
	}
	if formula.ProductionItemID != in.ProductionItemID {
		return nil, domain.NewValidationError("production_item_id", "fórmula não pertence ao item informado")
	}
	for i, line := range formula.Lines {
		if batchID, ok := in.Allocations[line.ID]; !ok || batchID == "" {
			return nil, domain.NewValidationError("allocations",
				fmt.Sprintf("linha %d sem lote de insumo selecionado", i+1))
		}
	}

	// Item de saída: necessário para o código do lote e o custo unitário padrão.
	// Buscado antes de qualquer mutação — falha aqui ainda permite retry seguro.
	item, err := e.items.GetByID(ctx, in.ProductionItemID)
	if err != nil {
		return nil, fmt.Errorf("buscar item de produção: %w", err)
	}

	result := &ExecutionResult{}
	for i, line := range formula.Lines {
		required := line.RequiredFor(in.Quantity)
		batchID := in.Allocations[line.ID]

		batch, err := e.inputBatches.GetByID(ctx, batchID)
		if err != nil {
			return result, e.abort(ctx, auth, result, fmt.Errorf("re-buscar lote %s (linha %d): %w", batchID, i+1, err))
		}
		if batch.Quantity.LessThan(required) {
			insuff := &domain.InsufficientStockError{
				LineIndex: i,
				ItemName:  e.inputItemName(ctx, line.InputItemID),
				BatchID:   batch.ID,
				Required:  required,
				Available: batch.Quantity,
			}
			return result, e.abort(ctx, auth, result, insuff)
		}

		batch.Quantity = batch.Quantity.Sub(required)
		if err := e.inputBatches.Update(ctx, batch); err != nil {
			return result, e.abort(ctx, auth, result, fmt.Errorf("baixar lote %s (linha %d): %w", batch.ID, i+1, err))
		}

		movementID := uuid.NewString()
		movement := entity.StockMovement{
			ID:            movementID,
			CompanyID:     auth.CompanyID,
			UserID:        auth.UserID,
			StockType:     entity.StockTypeInsumo,
			OperationType: entity.OperationSaida,
			Quantity:      required,
			InputBatchID:  batch.ID,
			Reason:        ReasonProducao,
			Notes:         in.Notes,
			CreatedAt:     e.now(),
		}
		if err := e.movements.Append(ctx, movement); err != nil {
			// A baixa já foi aplicada: entra no diário mesmo sem o lançamento,
			// para a correção manual saber o que reverter.
			result.Consumed = append(result.Consumed, ConsumedLine{
				LineIndex: i, FormulaLineID: line.ID, InputItemID: line.InputItemID,
				BatchID: batch.ID, Quantity: required,
			})
			return result, e.abort(ctx, auth, result, fmt.Errorf("registrar saída do lote %s (linha %d): %w", batch.ID, i+1, err))
		}

		consumed := ConsumedLine{
			LineIndex:     i,
			FormulaLineID: line.ID,
			InputItemID:   line.InputItemID,
			BatchID:       batch.ID,
			Quantity:      required,
			MovementID:    movementID,
		}
		result.Consumed = append(result.Consumed, consumed)
		e.log.Info().
			Int("linha", i+1).
			Str("insumo", line.InputItemID).
			Str("lote", batch.ID).
			Str("quantidade", required.String()).
			Msg("baixa de insumo aplicada")
	}

	outputLot := strings.TrimSpace(in.OutputLotCode)
	if outputLot == "" {
		outputLot = fmt.Sprintf("LOTE-%s-%d", item.Code, e.now().UnixMilli())
	}
	created, err := e.prodBatches.Create(ctx, entity.ProductionBatch{
		ProductionItemID: in.ProductionItemID,
		LotCode:          outputLot,
		ProductionDate:   e.now(),
		Quantity:         in.Quantity,
		UnitCost:         item.StandardUnitCost,
		MinimumQuantity:  decimal.Zero,
		Notes:            in.Notes,
	})
	if err != nil {
		return result, e.abort(ctx, auth, result, fmt.Errorf("criar lote de produção: %w", err))
	}
	result.OutputBatchID = created.ID
	result.OutputLotCode = outputLot

	entrada := entity.StockMovement{
		ID:                uuid.NewString(),
		CompanyID:         auth.CompanyID,
		UserID:            auth.UserID,
		StockType:         entity.StockTypeProducao,
		OperationType:     entity.OperationEntrada,
		Quantity:          in.Quantity,
		ProductionBatchID: created.ID,
		Reason:            ReasonProducaoFinalizada,
		Notes:             in.Notes,
		CreatedAt:         e.now(),
	}
	if err := e.movements.Append(ctx, entrada); err != nil {
		// O lote de saída já existe; não há endpoint de remoção, então o erro
		// sobe com o diário completo para correção manual do razão.
		return result, fmt.Errorf("registrar entrada do lote %s: %w", created.ID, err)
	}

	e.log.Info().
		Str("item", in.ProductionItemID).
		Str("lote_saida", created.ID).
		Str("quantidade", in.Quantity.String()).
		Int("linhas", len(formula.Lines)).
		Msg("produção finalizada")
	return result, nil
}

func (e *Executor) validateInput(auth AuthContext, in ExecuteInput) error {
	if err := auth.Validate(); err != nil {
		return err
	}
	if in.ProductionItemID == "" {
		return domain.NewValidationError("production_item_id", "obrigatório")
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return domain.NewValidationError("quantity", "deve ser maior que zero")
	}
	if len(in.Allocations) == 0 {
		return domain.NewValidationError("allocations", "nenhum lote de insumo selecionado")
	}
	return nil
}

// abort registra o estado parcial e, se configurado, dispara a compensação.
// Sempre devolve o erro original da falha — nunca o substitui pelo da reversão.
func (e *Executor) abort(ctx context.Context, auth AuthContext, result *ExecutionResult, cause error) error {
	for _, c := range result.Consumed {
		e.log.Warn().
			Int("linha", c.LineIndex+1).
			Str("insumo", c.InputItemID).
			Str("lote", c.BatchID).
			Str("quantidade", c.Quantity.String()).
			Msg("baixa já aplicada antes do aborto; requer reversão")
	}
	if e.cfg.CompensateOnAbort && len(result.Consumed) > 0 {
		e.compensate(ctx, auth, result)
	}
	return cause
}

// compensate reverte as baixas do diário em ordem inversa: devolve a quantidade
// ao lote e registra uma entrada de estorno. Falhas de reversão não interrompem
// as demais linhas; ficam em CompensationErrors.
func (e *Executor) compensate(ctx context.Context, auth AuthContext, result *ExecutionResult) {
	for i := len(result.Consumed) - 1; i >= 0; i-- {
		c := result.Consumed[i]
		batch, err := e.inputBatches.GetByID(ctx, c.BatchID)
		if err != nil {
			result.CompensationErrors = append(result.CompensationErrors,
				fmt.Sprintf("linha %d: re-buscar lote %s: %v", c.LineIndex+1, c.BatchID, err))
			continue
		}
		batch.Quantity = batch.Quantity.Add(c.Quantity)
		if err := e.inputBatches.Update(ctx, batch); err != nil {
			result.CompensationErrors = append(result.CompensationErrors,
				fmt.Sprintf("linha %d: devolver quantidade ao lote %s: %v", c.LineIndex+1, c.BatchID, err))
			continue
		}
		estorno := entity.StockMovement{
			ID:            uuid.NewString(),
			CompanyID:     auth.CompanyID,
			UserID:        auth.UserID,
			StockType:     entity.StockTypeInsumo,
			OperationType: entity.OperationEntrada,
			Quantity:      c.Quantity,
			InputBatchID:  c.BatchID,
			Reason:        ReasonEstornoProducao,
			CreatedAt:     e.now(),
		}
		if err := e.movements.Append(ctx, estorno); err != nil {
			result.CompensationErrors = append(result.CompensationErrors,
				fmt.Sprintf("linha %d: registrar estorno do lote %s: %v", c.LineIndex+1, c.BatchID, err))
			continue
		}
		e.log.Info().
			Int("linha", c.LineIndex+1).
			Str("lote", c.BatchID).
			Str("quantidade", c.Quantity.String()).
			Msg("baixa revertida por estorno")
	}
	result.Compensated = len(result.CompensationErrors) == 0
}

// inputItemName resolve o nome do insumo para mensagens de erro; na dúvida
// (falha de rede, insumo removido) usa o próprio id.
func (e *Executor) inputItemName(ctx context.Context, inputItemID string) string {
	item, err := e.inputItems.GetByID(ctx, inputItemID)
	if err != nil || item == nil {
		return inputItemID
	}
	return item.Name
}
