package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mcarvalho/Producao-api/internal/application/producao"
)

// RouterDeps dependências do router.
type RouterDeps struct {
	FormulaUC *producao.FormulaUseCase
	CostUC    *producao.CostUseCase
	Executor  *producao.Executor
	Allocator *producao.Allocator
	SaleUC    *producao.SaleConsumptionUseCase
	JWTSecret string
}

// Router registra as rotas da API. Todas protegidas por Bearer Token;
// a execução de produção exige papel de produção ou admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	producaoHandler := NewProducaoHandler(deps.FormulaUC, deps.CostUC, deps.Executor)
	producoes := api.Group("/producoes")
	producoes.Get("/:id/formula", producaoHandler.GetFormula)
	producoes.Put("/:id/formula", producaoHandler.ReplaceFormula)
	producoes.Get("/:id/formula/custo", producaoHandler.GetFormulaCost)
	producoes.Post("/executar", RequireRole("admin", "producao"), producaoHandler.ExecuteProduction)

	api.Get("/formulas/agrupadas", producaoHandler.GetGroupedFormulas)

	estoqueHandler := NewEstoqueHandler(deps.Allocator, deps.SaleUC)
	api.Get("/insumos/:id/lotes", estoqueHandler.ListCandidates)
	api.Post("/lotes/validar", estoqueHandler.ValidateAllocation)
	api.Post("/vendas/itens/consumir", RequireRole("admin", "vendas"), estoqueHandler.ConsumeSaleItem)
}
