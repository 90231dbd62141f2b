package producao_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcarvalho/Producao-api/internal/application/producao"
	"github.com/mcarvalho/Producao-api/internal/domain"
	"github.com/mcarvalho/Producao-api/internal/domain/entity"
)

func TestListCandidates_FiltraLotesZerados(t *testing.T) {
	repo := newFakeInputBatchRepo()
	repo.seed(entity.InputBatch{ID: "lote-1", InputItemID: "ins-a", Quantity: dec("10")})
	repo.seed(entity.InputBatch{ID: "lote-2", InputItemID: "ins-a", Quantity: dec("0")})
	repo.seed(entity.InputBatch{ID: "lote-3", InputItemID: "ins-a", Quantity: dec("3.5")})
	allocator := producao.NewAllocator(repo)

	candidates, err := allocator.ListCandidates(context.Background(), "ins-a")
	require.NoError(t, err)
	require.Len(t, candidates, 2, "lote zerado não é candidato")
	assert.Equal(t, "lote-1", candidates[0].ID)
	assert.Equal(t, "lote-3", candidates[1].ID)
}

func TestValidate_Suficiencia(t *testing.T) {
	repo := newFakeInputBatchRepo()
	repo.seed(entity.InputBatch{ID: "lote-1", InputItemID: "ins-a", Quantity: dec("20")})
	allocator := producao.NewAllocator(repo)

	// Exatamente igual cobre.
	check, err := allocator.Validate(context.Background(), "lote-1", dec("20"))
	require.NoError(t, err)
	assert.True(t, check.OK)
	assert.True(t, check.Available.Equal(dec("20")))

	// Acima da quantidade disponível bloqueia.
	check, err = allocator.Validate(context.Background(), "lote-1", dec("20.001"))
	require.NoError(t, err)
	assert.False(t, check.OK, "insuficiência é pré-condição dura, não aviso")
}

func TestValidate_PreCondicoes(t *testing.T) {
	allocator := producao.NewAllocator(newFakeInputBatchRepo())

	_, err := allocator.Validate(context.Background(), "", dec("1"))
	var validation *domain.ValidationError
	require.ErrorAs(t, err, &validation)

	_, err = allocator.Validate(context.Background(), "lote-1", dec("0"))
	require.ErrorAs(t, err, &validation)
}

func TestPrefetchCandidates_CarregaTodosOsInsumosDaFormula(t *testing.T) {
	repo := newFakeInputBatchRepo()
	repo.seed(entity.InputBatch{ID: "lote-a1", InputItemID: "ins-a", Quantity: dec("5")})
	repo.seed(entity.InputBatch{ID: "lote-b1", InputItemID: "ins-b", Quantity: dec("7")})
	repo.seed(entity.InputBatch{ID: "lote-b2", InputItemID: "ins-b", Quantity: dec("0")})
	allocator := producao.NewAllocator(repo)

	formula := &entity.Formula{
		ProductionItemID: "item-1",
		Lines: []entity.FormulaLine{
			{ID: "fl-1", InputItemID: "ins-a", QuantityRequired: dec("1")},
			{ID: "fl-2", InputItemID: "ins-b", QuantityRequired: dec("2")},
			{ID: "fl-3", InputItemID: "ins-a", QuantityRequired: dec("3")}, // insumo repetido
		},
	}
	result, err := allocator.PrefetchCandidates(context.Background(), formula)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Len(t, result["ins-a"], 1)
	assert.Len(t, result["ins-b"], 1, "lote zerado fora dos candidatos")
	assert.Equal(t, 2, repo.ListCalls, "uma busca por insumo distinto")
}

func TestDefaultBatchPolicy_FirstCandidate(t *testing.T) {
	assert.Nil(t, producao.FirstCandidate(nil))

	candidates := []entity.InputBatch{{ID: "lote-1"}, {ID: "lote-2"}}
	got := producao.FirstCandidate(candidates)
	require.NotNil(t, got)
	assert.Equal(t, "lote-1", got.ID)
}

func TestDefaultBatchPolicy_EarliestExpiry(t *testing.T) {
	d := func(s string) *time.Time {
		v, err := time.Parse("2006-01-02", s)
		require.NoError(t, err)
		return &v
	}

	candidates := []entity.InputBatch{
		{ID: "lote-sem-validade"},
		{ID: "lote-2026", ExpiryDate: d("2026-12-01")},
		{ID: "lote-2025", ExpiryDate: d("2025-06-15")},
	}
	got := producao.EarliestExpiry(candidates)
	require.NotNil(t, got)
	assert.Equal(t, "lote-2025", got.ID, "validade mais próxima vence")

	// Sem nenhuma validade, cai no primeiro candidato.
	noDates := []entity.InputBatch{{ID: "lote-a"}, {ID: "lote-b"}}
	got = producao.EarliestExpiry(noDates)
	require.NotNil(t, got)
	assert.Equal(t, "lote-a", got.ID)
}
