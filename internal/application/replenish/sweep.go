package replenish

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
	"github.com/jhoicas/Compras-api/pkg/logger"
)

// SweepConfig parámetros del barrido programado.
type SweepConfig struct {
	// SuppressPending omite un proveedor si ya tiene una orden del barrido en
	// PENDING_REVIEW sin resolver (evita duplicados entre corridas consecutivas).
	SuppressPending bool
	// Timeout acota la duración total de una corrida. Al vencerse, el resultado
	// es un fallo parcial (errores por proveedor), no un error fatal.
	Timeout time.Duration
}

// Summary resultado de una corrida del barrido.
type Summary struct {
	RulesConsidered int      `json:"rules_considered"`
	OrdersCreated   int      `json:"orders_created"`
	Suppressed      int      `json:"suppressed"`
	Errors          []string `json:"errors"`
}

// SweepUseCase ejecuta el barrido de reposición: una consulta de reglas
// habilitadas con stock, filtro por umbral, partición por proveedor y una
// orden candidata por proveedor afectado. Cada partición se procesa en su
// propia goroutine; el fallo de un proveedor nunca detiene a los demás.
//
// El mutex garantiza a lo sumo una corrida concurrente por proceso. Con
// varias réplicas del servicio, el punto de entrada debe protegerse además
// con un lock distribuido (fuera del alcance de este componente).
type SweepUseCase struct {
	mu sync.Mutex

	ruleRepo     repository.ReorderRuleRepository
	orderRepo    repository.PurchaseOrderRepository
	companyRepo  repository.CompanyRepository
	providerRepo repository.ProviderRepository
	txRunner     TxRunner
	pdf          OrderPDFGenerator
	docs         DocumentStore
	cfg          SweepConfig
	log          *logger.Logger
}

// NewSweepUseCase construye el caso de uso del barrido.
func NewSweepUseCase(
	ruleRepo repository.ReorderRuleRepository,
	orderRepo repository.PurchaseOrderRepository,
	companyRepo repository.CompanyRepository,
	providerRepo repository.ProviderRepository,
	txRunner TxRunner,
	pdf OrderPDFGenerator,
	docs DocumentStore,
	cfg SweepConfig,
	log *logger.Logger,
) *SweepUseCase {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Minute
	}
	return &SweepUseCase{
		ruleRepo:     ruleRepo,
		orderRepo:    orderRepo,
		companyRepo:  companyRepo,
		providerRepo: providerRepo,
		txRunner:     txRunner,
		pdf:          pdf,
		docs:         docs,
		cfg:          cfg,
		log:          log,
	}
}

// Run ejecuta una corrida del barrido para una empresa. Seguro de invocar
// bajo demanda (endpoint manual, tests) o desde el planificador.
//
// Único error fatal: no poder leer reglas/stock. Todo lo demás se acumula
// en Summary.Errors como fallo de una unidad de trabajo.
func (uc *SweepUseCase) Run(ctx context.Context, companyID string) (Summary, error) {
	if !uc.mu.TryLock() {
		return Summary{}, domain.ErrSweepRunning
	}
	defer uc.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, uc.cfg.Timeout)
	defer cancel()

	rows, err := uc.ruleRepo.ListEnabledWithStock(ctx, companyID)
	if err != nil {
		return Summary{}, fmt.Errorf("leer reglas habilitadas: %w", err)
	}

	summary := Summary{RulesConsidered: len(rows)}

	var triggered []repository.EnabledRuleRow
	for _, row := range rows {
		if entity.ShouldReorder(row.CurrentStock, row.Rule.TriggerStock) {
			triggered = append(triggered, row)
		}
	}
	if len(triggered) == 0 {
		uc.log.Info().Str("company_id", companyID).Int("rules", len(rows)).
			Msg("barrido sin productos bajo umbral")
		return summary, nil
	}

	partitions := partitionByProvider(triggered)

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for providerID, partRows := range partitions {
		wg.Add(1)
		go func(providerID string, partRows []repository.EnabledRuleRow) {
			defer wg.Done()
			created, suppressed, err := uc.processProvider(ctx, companyID, providerID, partRows)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				summary.Errors = append(summary.Errors,
					fmt.Sprintf("proveedor %s: %v", providerID, err))
				return
			}
			if suppressed {
				summary.Suppressed++
				return
			}
			if created {
				summary.OrdersCreated++
			}
		}(providerID, partRows)
	}
	wg.Wait()

	uc.log.Info().
		Str("company_id", companyID).
		Int("rules_considered", summary.RulesConsidered).
		Int("orders_created", summary.OrdersCreated).
		Int("suppressed", summary.Suppressed).
		Int("errors", len(summary.Errors)).
		Msg("barrido de reposición terminado")
	return summary, nil
}

// processProvider crea la orden candidata de un proveedor. La generación del
// PDF es best-effort: si falla, la orden queda en PENDING_REVIEW sin documento
// y el error se reporta en el resumen.
func (uc *SweepUseCase) processProvider(ctx context.Context, companyID, providerID string, rows []repository.EnabledRuleRow) (created, suppressed bool, err error) {
	if uc.cfg.SuppressPending {
		open, err := uc.orderRepo.HasOpenSweepOrder(companyID, providerID)
		if err != nil {
			return false, false, fmt.Errorf("verificar órdenes abiertas: %w", err)
		}
		if open {
			uc.log.Debug().Str("provider_id", providerID).
				Msg("proveedor con orden de barrido pendiente, omitido")
			return false, true, nil
		}
	}

	po := buildProviderOrder(companyID, providerID, rows, time.Now())

	err = uc.txRunner.Run(ctx, func(
		_ repository.InventoryMovementRepository,
		_ repository.ProductRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error {
		return orderRepo.Create(po)
	})
	if err != nil {
		return false, false, fmt.Errorf("crear orden: %w", err)
	}

	if renderErr := uc.renderDocument(ctx, po); renderErr != nil {
		// La orden ya existe; el documento se puede regenerar al enviarla.
		uc.log.Warn().Err(renderErr).Str("order", po.Number).
			Msg("no se pudo generar el PDF de la orden")
	}
	return true, false, nil
}

func (uc *SweepUseCase) renderDocument(ctx context.Context, po *entity.PurchaseOrder) error {
	company, err := uc.companyRepo.GetByID(po.CompanyID)
	if err != nil {
		return fmt.Errorf("consultar empresa: %w", err)
	}
	provider, err := uc.providerRepo.GetByID(po.ProviderID)
	if err != nil {
		return fmt.Errorf("consultar proveedor: %w", err)
	}
	if company == nil || provider == nil {
		return domain.ErrNotFound
	}
	pdfBytes, err := uc.pdf.GenerateOrderPDF(ctx, po, company, provider)
	if err != nil {
		return fmt.Errorf("generar PDF: %w", err)
	}
	path, err := uc.docs.Save(po.Number, pdfBytes)
	if err != nil {
		return fmt.Errorf("guardar PDF: %w", err)
	}
	po.DocumentPath = path
	po.UpdatedAt = time.Now()
	if err := uc.orderRepo.Update(po); err != nil {
		return fmt.Errorf("actualizar ruta de documento: %w", err)
	}
	return nil
}
