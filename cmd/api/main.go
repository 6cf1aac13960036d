package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Compras-api/internal/application/inventory"
	"github.com/jhoicas/Compras-api/internal/application/purchasing"
	"github.com/jhoicas/Compras-api/internal/application/replenish"
	"github.com/jhoicas/Compras-api/internal/application/rule"
	"github.com/jhoicas/Compras-api/internal/application/usecase"
	"github.com/jhoicas/Compras-api/internal/domain"
	infraemail "github.com/jhoicas/Compras-api/internal/infrastructure/email"
	infrapdf "github.com/jhoicas/Compras-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Compras-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Compras-api/internal/infrastructure/scheduler"
	httpRouter "github.com/jhoicas/Compras-api/internal/interfaces/http"
	"github.com/jhoicas/Compras-api/pkg/config"
	"github.com/jhoicas/Compras-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	providerRepo := postgres.NewProviderRepository(pool)
	ruleRepo := postgres.NewReorderRuleRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	orderRepo := postgres.NewPurchaseOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	pdfGenerator := infrapdf.NewMarotoOrderPDFGenerator()
	docStore := infrapdf.NewFileStore(cfg.Replenish.DocDir)
	mailer := infraemail.NewGomailSender(infraemail.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})

	evaluator := replenish.NewImmediateEvaluator(txRunner, ruleRepo, productRepo, cfg.Replenish.SystemActor)
	sweepUC := replenish.NewSweepUseCase(
		ruleRepo, orderRepo, companyRepo, providerRepo,
		txRunner, pdfGenerator, docStore,
		replenish.SweepConfig{
			SuppressPending: cfg.Replenish.SuppressPending,
			Timeout:         cfg.Replenish.SweepTimeout,
		},
		log,
	)

	productUC := usecase.NewProductUseCase(productRepo)
	providerUC := usecase.NewProviderUseCase(providerRepo)
	ruleUC := rule.NewUseCase(ruleRepo, productRepo, providerRepo)
	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner, productRepo, evaluator, log)
	movementQueryUC := inventory.NewMovementQueryUseCase(movementRepo, productRepo)
	orderUC := purchasing.NewUseCase(
		txRunner, orderRepo, productRepo, providerRepo, companyRepo,
		pdfGenerator, docStore, mailer, log,
	)

	// Barrido programado: una corrida por empresa activa. Las empresas creadas
	// después del arranque entran en la siguiente corrida programada.
	sched := scheduler.New(log)
	err = sched.AddJob("replenishment-sweep", cfg.Replenish.CronSpec, func() {
		companies, err := companyRepo.ListActive()
		if err != nil {
			log.Error().Err(err).Msg("listar empresas activas para el barrido")
			return
		}
		for _, company := range companies {
			summary, err := sweepUC.Run(context.Background(), company.ID)
			if err != nil {
				if err == domain.ErrSweepRunning {
					log.Warn().Str("company_id", company.ID).Msg("barrido ya en ejecución, corrida omitida")
					continue
				}
				log.Error().Err(err).Str("company_id", company.ID).Msg("barrido de reposición falló")
				continue
			}
			log.Info().
				Str("company_id", company.ID).
				Int("orders_created", summary.OrdersCreated).
				Msg("barrido programado completado")
		}
	})
	if err != nil {
		log.Fatal().Err(err).Str("cron", cfg.Replenish.CronSpec).Msg("registrar barrido programado")
	}
	sched.Start()
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Compras API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:        productUC,
		ProviderUC:       providerUC,
		RuleUC:           ruleUC,
		RegisterMovement: registerMovementUC,
		MovementQuery:    movementQueryUC,
		OrderUC:          orderUC,
		SweepUC:          sweepUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando aplicación")
	sched.Stop()
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("apagado del servidor HTTP")
	}
}
