package producao_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/mcarvalho/Producao-api/internal/domain"
	"github.com/mcarvalho/Producao-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória dos portos, com contadores de chamadas para as asserções de
// "nenhuma chamada antes da validação".
// ──────────────────────────────────────────────────────────────────────────────

type fakeFormulaRepo struct {
	mu      sync.Mutex
	lines   map[string][]entity.FormulaLine // productionItemID -> linhas
	nextID  int
	listErr error

	ListCalls   int
	CreateCalls int
	DeleteCalls int
}

func newFakeFormulaRepo() *fakeFormulaRepo {
	return &fakeFormulaRepo{lines: make(map[string][]entity.FormulaLine)}
}

func (f *fakeFormulaRepo) ListByProductionItem(_ context.Context, productionItemID string) ([]entity.FormulaLine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]entity.FormulaLine, len(f.lines[productionItemID]))
	copy(out, f.lines[productionItemID])
	return out, nil
}

func (f *fakeFormulaRepo) Create(_ context.Context, line entity.FormulaLine) (*entity.FormulaLine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateCalls++
	f.nextID++
	line.ID = fmt.Sprintf("fl-%d", f.nextID)
	f.lines[line.ProductionItemID] = append(f.lines[line.ProductionItemID], line)
	return &line, nil
}

func (f *fakeFormulaRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeleteCalls++
	for itemID, lines := range f.lines {
		for i, l := range lines {
			if l.ID == id {
				f.lines[itemID] = append(lines[:i:i], lines[i+1:]...)
				return nil
			}
		}
	}
	return domain.ErrNotFound
}

func (f *fakeFormulaRepo) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ListCalls + f.CreateCalls + f.DeleteCalls
}

type fakeInputBatchRepo struct {
	mu      sync.Mutex
	batches map[string]*entity.InputBatch
	byItem  map[string][]string // inputItemID -> batch ids, na ordem de inserção
	getErr  map[string]error
	updErr  map[string]error

	ListCalls   int
	GetCalls    int
	UpdateCalls int
}

func newFakeInputBatchRepo() *fakeInputBatchRepo {
	return &fakeInputBatchRepo{
		batches: make(map[string]*entity.InputBatch),
		byItem:  make(map[string][]string),
		getErr:  make(map[string]error),
		updErr:  make(map[string]error),
	}
}

func (f *fakeInputBatchRepo) seed(b entity.InputBatch) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := b
	f.batches[b.ID] = &cp
	f.byItem[b.InputItemID] = append(f.byItem[b.InputItemID], b.ID)
}

func (f *fakeInputBatchRepo) quantityOf(id string) decimal.Decimal {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.batches[id].Quantity
}

func (f *fakeInputBatchRepo) ListByInputItem(_ context.Context, inputItemID string) ([]entity.InputBatch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListCalls++
	out := make([]entity.InputBatch, 0, len(f.byItem[inputItemID]))
	for _, id := range f.byItem[inputItemID] {
		out = append(out, *f.batches[id])
	}
	return out, nil
}

func (f *fakeInputBatchRepo) GetByID(_ context.Context, id string) (*entity.InputBatch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.GetCalls++
	if err := f.getErr[id]; err != nil {
		return nil, err
	}
	b, ok := f.batches[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeInputBatchRepo) Update(_ context.Context, batch *entity.InputBatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UpdateCalls++
	if err := f.updErr[batch.ID]; err != nil {
		return err
	}
	cp := *batch
	f.batches[batch.ID] = &cp
	return nil
}

func (f *fakeInputBatchRepo) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ListCalls + f.GetCalls + f.UpdateCalls
}

type fakeProductionBatchRepo struct {
	mu        sync.Mutex
	created   []entity.ProductionBatch
	createErr error

	CreateCalls int
}

func (f *fakeProductionBatchRepo) Create(_ context.Context, batch entity.ProductionBatch) (*entity.ProductionBatch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	batch.ID = fmt.Sprintf("pb-%d", len(f.created)+1)
	f.created = append(f.created, batch)
	return &batch, nil
}

type fakeProductBatchRepo struct {
	mu      sync.Mutex
	batches map[string]*entity.ProductBatch

	GetCalls    int
	UpdateCalls int
}

func newFakeProductBatchRepo() *fakeProductBatchRepo {
	return &fakeProductBatchRepo{batches: make(map[string]*entity.ProductBatch)}
}

func (f *fakeProductBatchRepo) seed(b entity.ProductBatch) {
	cp := b
	f.batches[b.ID] = &cp
}

func (f *fakeProductBatchRepo) GetByID(_ context.Context, id string) (*entity.ProductBatch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.GetCalls++
	b, ok := f.batches[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeProductBatchRepo) Update(_ context.Context, batch *entity.ProductBatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UpdateCalls++
	cp := *batch
	f.batches[batch.ID] = &cp
	return nil
}

type fakeMovementRepo struct {
	mu        sync.Mutex
	movements []entity.StockMovement
	appendErr error

	AppendCalls int
}

func (f *fakeMovementRepo) Append(_ context.Context, movement entity.StockMovement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.AppendCalls++
	if f.appendErr != nil {
		return f.appendErr
	}
	f.movements = append(f.movements, movement)
	return nil
}

func (f *fakeMovementRepo) all() []entity.StockMovement {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.StockMovement, len(f.movements))
	copy(out, f.movements)
	return out
}

type fakeProductionItemRepo struct {
	mu    sync.Mutex
	items map[string]entity.ProductionItem

	GetCalls  int
	ListCalls int
}

func newFakeProductionItemRepo() *fakeProductionItemRepo {
	return &fakeProductionItemRepo{items: make(map[string]entity.ProductionItem)}
}

func (f *fakeProductionItemRepo) seed(item entity.ProductionItem) {
	f.items[item.ID] = item
}

func (f *fakeProductionItemRepo) GetByID(_ context.Context, id string) (*entity.ProductionItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.GetCalls++
	item, ok := f.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &item, nil
}

func (f *fakeProductionItemRepo) List(_ context.Context) ([]entity.ProductionItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListCalls++
	out := make([]entity.ProductionItem, 0, len(f.items))
	for _, item := range f.items {
		out = append(out, item)
	}
	return out, nil
}

type fakeInputItemRepo struct {
	mu    sync.Mutex
	items map[string]entity.InputItem

	GetCalls  int
	ListCalls int
}

func newFakeInputItemRepo() *fakeInputItemRepo {
	return &fakeInputItemRepo{items: make(map[string]entity.InputItem)}
}

func (f *fakeInputItemRepo) seed(item entity.InputItem) {
	f.items[item.ID] = item
}

func (f *fakeInputItemRepo) GetByID(_ context.Context, id string) (*entity.InputItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.GetCalls++
	item, ok := f.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &item, nil
}

func (f *fakeInputItemRepo) List(_ context.Context) ([]entity.InputItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListCalls++
	out := make([]entity.InputItem, 0, len(f.items))
	for _, item := range f.items {
		out = append(out, item)
	}
	return out, nil
}
