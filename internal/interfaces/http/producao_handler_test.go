package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcarvalho/Producao-api/internal/application/producao"
	"github.com/mcarvalho/Producao-api/internal/domain"
	"github.com/mcarvalho/Producao-api/internal/domain/entity"
	apphttp "github.com/mcarvalho/Producao-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Stubs dos portos de repositório — só o que as rotas sob teste tocam
// ──────────────────────────────────────────────────────────────────────────────

type stubFormulas struct {
	lines []entity.FormulaLine
}

func (s *stubFormulas) ListByProductionItem(_ context.Context, itemID string) ([]entity.FormulaLine, error) {
	out := make([]entity.FormulaLine, 0, len(s.lines))
	for _, l := range s.lines {
		if l.ProductionItemID == itemID {
			out = append(out, l)
		}
	}
	return out, nil
}
func (s *stubFormulas) Create(_ context.Context, line entity.FormulaLine) (*entity.FormulaLine, error) {
	return &line, nil
}
func (s *stubFormulas) Delete(context.Context, string) error { return nil }

type stubItems struct {
	item entity.ProductionItem
}

func (s *stubItems) GetByID(_ context.Context, id string) (*entity.ProductionItem, error) {
	if id != s.item.ID {
		return nil, domain.ErrNotFound
	}
	it := s.item
	return &it, nil
}
func (s *stubItems) List(context.Context) ([]entity.ProductionItem, error) {
	return []entity.ProductionItem{s.item}, nil
}

type stubInputItems struct{}

func (stubInputItems) GetByID(_ context.Context, id string) (*entity.InputItem, error) {
	return &entity.InputItem{ID: id, Name: "Insumo " + id}, nil
}
func (stubInputItems) List(context.Context) ([]entity.InputItem, error) { return nil, nil }

type stubInputBatches struct {
	batches     map[string]*entity.InputBatch
	getCalls    int
	updateCalls int
}

func (s *stubInputBatches) ListByInputItem(context.Context, string) ([]entity.InputBatch, error) {
	return nil, nil
}
func (s *stubInputBatches) GetByID(_ context.Context, id string) (*entity.InputBatch, error) {
	s.getCalls++
	b, ok := s.batches[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *b
	return &copied, nil
}
func (s *stubInputBatches) Update(_ context.Context, batch *entity.InputBatch) error {
	s.updateCalls++
	s.batches[batch.ID] = batch
	return nil
}

type stubProdBatches struct{ created int }

func (s *stubProdBatches) Create(_ context.Context, batch entity.ProductionBatch) (*entity.ProductionBatch, error) {
	s.created++
	batch.ID = "lote-saida-1"
	return &batch, nil
}

type stubProductBatches struct{}

func (stubProductBatches) GetByID(context.Context, string) (*entity.ProductBatch, error) {
	return nil, domain.ErrNotFound
}
func (stubProductBatches) Update(context.Context, *entity.ProductBatch) error { return nil }

type stubMovements struct{ appended int }

func (s *stubMovements) Append(context.Context, entity.StockMovement) error {
	s.appended++
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: app Fiber completo com as rotas reais e os stubs acima
// ──────────────────────────────────────────────────────────────────────────────

type handlerFixture struct {
	app          *fiber.App
	formulas     *stubFormulas
	inputBatches *stubInputBatches
	prodBatches  *stubProdBatches
	movements    *stubMovements
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	f := &handlerFixture{
		formulas: &stubFormulas{},
		inputBatches: &stubInputBatches{
			batches: map[string]*entity.InputBatch{},
		},
		prodBatches: &stubProdBatches{},
		movements:   &stubMovements{},
	}
	items := &stubItems{item: entity.ProductionItem{
		ID:               "item-suco",
		Code:             "SUCO-1KG",
		Name:             "Suco de Laranja 1kg",
		Unit:             "KG",
		StandardUnitCost: decimal.RequireFromString("4.50"),
	}}

	executor := producao.NewExecutor(
		f.formulas, items, stubInputItems{}, f.inputBatches,
		f.prodBatches, f.movements, producao.ExecutorConfig{}, nil,
	)
	f.app = fiber.New()
	apphttp.Router(f.app, apphttp.RouterDeps{
		FormulaUC: producao.NewFormulaUseCase(f.formulas),
		CostUC:    producao.NewCostUseCase(f.formulas, items, stubInputItems{}),
		Executor:  executor,
		Allocator: producao.NewAllocator(f.inputBatches),
		SaleUC:    producao.NewSaleConsumptionUseCase(stubProductBatches{}, f.movements, nil),
		JWTSecret: testJWTSecret,
	})
	return f
}

func (f *handlerFixture) request(t *testing.T, method, path, role string, body interface{}) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, role))
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /api/producoes/:id/formula
// ──────────────────────────────────────────────────────────────────────────────

func TestGetFormula_VaziaRetorna200ComFlag(t *testing.T) {
	f := newHandlerFixture(t)

	resp := f.request(t, http.MethodGet, "/api/producoes/item-suco/formula", "producao", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "fórmula vazia é estado válido, não erro")

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["formula_vazia"])
	assert.Empty(t, body["lines"])
}

func TestGetFormula_RetornaLinhasNaOrdemDoServidor(t *testing.T) {
	f := newHandlerFixture(t)
	f.formulas.lines = []entity.FormulaLine{
		{ID: "l1", ProductionItemID: "item-suco", InputItemID: "polpa", QuantityRequired: decimal.RequireFromString("0.8")},
		{ID: "l2", ProductionItemID: "item-suco", InputItemID: "acucar", QuantityRequired: decimal.RequireFromString("0.2")},
	}

	resp := f.request(t, http.MethodGet, "/api/producoes/item-suco/formula", "producao", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, false, body["formula_vazia"])
	lines, ok := body["lines"].([]interface{})
	require.True(t, ok)
	require.Len(t, lines, 2)
	first := lines[0].(map[string]interface{})
	assert.Equal(t, "l1", first["id"])
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /api/producoes/executar
// ──────────────────────────────────────────────────────────────────────────────

func TestExecuteProduction_SemAlocacaoRetorna400SemTocarLotes(t *testing.T) {
	f := newHandlerFixture(t)
	f.formulas.lines = []entity.FormulaLine{
		{ID: "l1", ProductionItemID: "item-suco", InputItemID: "polpa", QuantityRequired: decimal.RequireFromString("0.8")},
	}

	resp := f.request(t, http.MethodPost, "/api/producoes/executar", "producao", map[string]interface{}{
		"production_item_id": "item-suco",
		"quantity":           "2",
		"allocations":        map[string]string{}, // linha l1 sem lote
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "VALIDATION", body["code"])

	// Nenhuma mutação antes da validação completa.
	assert.Zero(t, f.inputBatches.getCalls)
	assert.Zero(t, f.inputBatches.updateCalls)
	assert.Zero(t, f.movements.appended)
	assert.Zero(t, f.prodBatches.created)
}

func TestExecuteProduction_Sucesso201ComDiario(t *testing.T) {
	f := newHandlerFixture(t)
	f.formulas.lines = []entity.FormulaLine{
		{ID: "l1", ProductionItemID: "item-suco", InputItemID: "polpa", QuantityRequired: decimal.RequireFromString("0.8")},
	}
	f.inputBatches.batches["lote-polpa"] = &entity.InputBatch{
		ID: "lote-polpa", InputItemID: "polpa", Quantity: decimal.RequireFromString("10"),
	}

	resp := f.request(t, http.MethodPost, "/api/producoes/executar", "producao", map[string]interface{}{
		"production_item_id": "item-suco",
		"quantity":           "2",
		"allocations":        map[string]string{"l1": "lote-polpa"},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "lote-saida-1", body["output_batch_id"])
	consumed, ok := body["consumed"].([]interface{})
	require.True(t, ok)
	require.Len(t, consumed, 1)

	// 10 − (0,8 × 2) = 8,4 persistido no lote.
	assert.True(t, f.inputBatches.batches["lote-polpa"].Quantity.Equal(decimal.RequireFromString("8.4")))
	// Uma saída de insumo + uma entrada de produção.
	assert.Equal(t, 2, f.movements.appended)
	assert.Equal(t, 1, f.prodBatches.created)
}

func TestExecuteProduction_EstoqueInsuficienteRetorna409ComDiarioParcial(t *testing.T) {
	f := newHandlerFixture(t)
	f.formulas.lines = []entity.FormulaLine{
		{ID: "l1", ProductionItemID: "item-suco", InputItemID: "polpa", QuantityRequired: decimal.RequireFromString("0.5")},
		{ID: "l2", ProductionItemID: "item-suco", InputItemID: "acucar", QuantityRequired: decimal.RequireFromString("1")},
	}
	f.inputBatches.batches["lote-polpa"] = &entity.InputBatch{
		ID: "lote-polpa", InputItemID: "polpa", Quantity: decimal.RequireFromString("10"),
	}
	f.inputBatches.batches["lote-acucar"] = &entity.InputBatch{
		ID: "lote-acucar", InputItemID: "acucar", Quantity: decimal.RequireFromString("1"),
	}

	resp := f.request(t, http.MethodPost, "/api/producoes/executar", "producao", map[string]interface{}{
		"production_item_id": "item-suco",
		"quantity":           "2",
		"allocations":        map[string]string{"l1": "lote-polpa", "l2": "lote-acucar"},
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])

	// O diário aponta a baixa já aplicada na linha 1.
	consumed, ok := body["consumed"].([]interface{})
	require.True(t, ok)
	require.Len(t, consumed, 1)
	first := consumed[0].(map[string]interface{})
	assert.Equal(t, "lote-polpa", first["batch_id"])

	// Execução não atômica: a baixa da linha 1 permanece, a linha 2 não foi tocada.
	assert.True(t, f.inputBatches.batches["lote-polpa"].Quantity.Equal(decimal.RequireFromString("9")))
	assert.True(t, f.inputBatches.batches["lote-acucar"].Quantity.Equal(decimal.RequireFromString("1")))
	assert.Zero(t, f.prodBatches.created)
}

func TestExecuteProduction_PapelVendasRecebe403(t *testing.T) {
	f := newHandlerFixture(t)

	resp := f.request(t, http.MethodPost, "/api/producoes/executar", "vendas", map[string]interface{}{
		"production_item_id": "item-suco",
		"quantity":           "1",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
