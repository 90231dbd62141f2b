package producao

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mcarvalho/Producao-api/internal/domain"
	"github.com/mcarvalho/Producao-api/internal/domain/entity"
	"github.com/mcarvalho/Producao-api/internal/domain/repository"
	"github.com/mcarvalho/Producao-api/pkg/logger"
)

// ReasonVenda motivo registrado no razão pelo consumo de venda.
const ReasonVenda = "Venda"

// SaleConsumptionUseCase aplica o mesmo padrão de baixa + lançamento no razão
// sobre lotes de produto acabado, mas respeitando a quantidade reservada:
// disponível para venda = quantidade - reservado.
type SaleConsumptionUseCase struct {
	productBatches repository.ProductBatchRepository
	movements      repository.StockMovementRepository
	log            *logger.Logger
	now            func() time.Time
}

// NewSaleConsumptionUseCase constrói o caso de uso. log pode ser nil.
func NewSaleConsumptionUseCase(
	productBatches repository.ProductBatchRepository,
	movements repository.StockMovementRepository,
	log *logger.Logger,
) *SaleConsumptionUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &SaleConsumptionUseCase{
		productBatches: productBatches,
		movements:      movements,
		log:            log,
		now:            time.Now,
	}
}

// ConsumeSaleItemInput parâmetros do consumo de um item de venda.
type ConsumeSaleItemInput struct {
	ProductBatchID string
	Quantity       decimal.Decimal
	SaleID         string
	Notes          string
}

// Consume re-busca o lote, valida contra a quantidade vendável e aplica a baixa
// com a saída correspondente no razão. Passo único: não há diário nem compensação.
func (uc *SaleConsumptionUseCase) Consume(ctx context.Context, auth AuthContext, in ConsumeSaleItemInput) error {
	if err := auth.Validate(); err != nil {
		return err
	}
	if in.ProductBatchID == "" {
		return domain.NewValidationError("product_batch_id", "obrigatório")
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return domain.NewValidationError("quantity", "deve ser maior que zero")
	}

	batch, err := uc.productBatches.GetByID(ctx, in.ProductBatchID)
	if err != nil {
		return fmt.Errorf("buscar lote de produto %s: %w", in.ProductBatchID, err)
	}
	available := batch.Available()
	if available.LessThan(in.Quantity) {
		return &domain.InsufficientStockError{
			LineIndex: -1,
			ItemName:  batch.LotCode,
			BatchID:   batch.ID,
			Required:  in.Quantity,
			Available: available,
		}
	}

	batch.Quantity = batch.Quantity.Sub(in.Quantity)
	if err := uc.productBatches.Update(ctx, batch); err != nil {
		return fmt.Errorf("baixar lote de produto %s: %w", batch.ID, err)
	}

	notes := in.Notes
	if in.SaleID != "" && notes == "" {
		notes = fmt.Sprintf("venda %s", in.SaleID)
	}
	movement := entity.StockMovement{
		ID:             uuid.NewString(),
		CompanyID:      auth.CompanyID,
		UserID:         auth.UserID,
		StockType:      entity.StockTypeProduto,
		OperationType:  entity.OperationSaida,
		Quantity:       in.Quantity,
		ProductBatchID: batch.ID,
		Reason:         ReasonVenda,
		Notes:          notes,
		CreatedAt:      uc.now(),
	}
	if err := uc.movements.Append(ctx, movement); err != nil {
		return fmt.Errorf("registrar saída do lote %s: %w", batch.ID, err)
	}

	uc.log.Info().
		Str("lote", batch.ID).
		Str("quantidade", in.Quantity.String()).
		Str("venda", in.SaleID).
		Msg("consumo de venda aplicado")
	return nil
}
