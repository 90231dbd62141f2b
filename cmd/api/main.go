package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/mcarvalho/Producao-api/internal/application/producao"
	"github.com/mcarvalho/Producao-api/internal/infrastructure/erpapi"
	httpRouter "github.com/mcarvalho/Producao-api/internal/interfaces/http"
	"github.com/mcarvalho/Producao-api/pkg/config"
	"github.com/mcarvalho/Producao-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("erp", cfg.ERP.BaseURL).
		Msg("iniciando aplicação")

	client := erpapi.NewClient(erpapi.Config{
		BaseURL: cfg.ERP.BaseURL,
		Token:   cfg.ERP.Token,
		Timeout: cfg.ERP.Timeout(),
	}, log)

	formulaRepo := erpapi.NewFormulaRepository(client)
	itemRepo := erpapi.NewProductionItemRepository(client)
	inputItemRepo := erpapi.NewInputItemRepository(client)
	inputBatchRepo := erpapi.NewInputBatchRepository(client)
	prodBatchRepo := erpapi.NewProductionBatchRepository(client)
	productBatchRepo := erpapi.NewProductBatchRepository(client)
	movementRepo := erpapi.NewStockMovementRepository(client)

	formulaUC := producao.NewFormulaUseCase(formulaRepo)
	costUC := producao.NewCostUseCase(formulaRepo, itemRepo, inputItemRepo)
	allocator := producao.NewAllocator(inputBatchRepo)
	executor := producao.NewExecutor(
		formulaRepo, itemRepo, inputItemRepo,
		inputBatchRepo, prodBatchRepo, movementRepo,
		producao.ExecutorConfig{CompensateOnAbort: false},
		log,
	)
	saleUC := producao.NewSaleConsumptionUseCase(productBatchRepo, movementRepo, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		FormulaUC: formulaUC,
		CostUC:    costUC,
		Executor:  executor,
		Allocator: allocator,
		SaleUC:    saleUC,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}

	log.Info().Msg("aplicação finalizada")
}
