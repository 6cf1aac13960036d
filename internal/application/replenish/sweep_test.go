package replenish

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
	"github.com/jhoicas/Compras-api/pkg/logger"
)

const testCompanyID = "co-1"

func ruleRow(productID, productName, providerID string, stock, trigger, qty, price int64) repository.EnabledRuleRow {
	return repository.EnabledRuleRow{
		Rule: entity.ReorderRule{
			ID:              "rule-" + productID,
			CompanyID:       testCompanyID,
			ProductID:       productID,
			ProviderID:      providerID,
			TriggerStock:    decimal.NewFromInt(trigger),
			ReorderQuantity: decimal.NewFromInt(qty),
			Enabled:         true,
		},
		ProductName:  productName,
		CurrentStock: decimal.NewFromInt(stock),
		UnitPrice:    decimal.NewFromInt(price),
		ProviderName: "Proveedor " + providerID,
	}
}

func newSweep(ruleRepo *fakeRuleRepo, orderRepo *fakeOrderRepo, cfg SweepConfig) *SweepUseCase {
	return NewSweepUseCase(
		ruleRepo, orderRepo,
		&fakeCompanyRepo{company: &entity.Company{ID: testCompanyID, Name: "ACME"}},
		&fakeProviderRepo{providers: map[string]*entity.Provider{}},
		&fakeTxRunner{movRepo: &fakeMovementRepo{}, productRepo: &fakeProductRepo{}, orderRepo: orderRepo},
		&fakePDF{}, &fakeDocs{},
		cfg,
		logger.Nop(),
	)
}

func TestSweep_UnaOrdenPorProveedorConLineasAgregadas(t *testing.T) {
	ruleRepo := &fakeRuleRepo{rows: []repository.EnabledRuleRow{
		ruleRow("p1", "Tornillos", "prov-A", 5, 10, 100, 2),
		ruleRow("p2", "Tuercas", "prov-A", 3, 10, 50, 4),
		ruleRow("p3", "Arandelas", "prov-B", 1, 8, 200, 1),
	}}
	orderRepo := &fakeOrderRepo{}
	uc := newSweep(ruleRepo, orderRepo, SweepConfig{})

	summary, err := uc.Run(context.Background(), testCompanyID)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.RulesConsidered)
	assert.Equal(t, 2, summary.OrdersCreated)
	assert.Empty(t, summary.Errors)

	orderA := orderRepo.byProvider("prov-A")
	require.NotNil(t, orderA)
	require.Len(t, orderA.Lines, 2)
	assert.Equal(t, entity.OrderOriginBatchSweep, orderA.Origin)
	assert.Equal(t, entity.OrderStatusPendingReview, orderA.Status)
	// Líneas ordenadas por nombre de producto
	assert.Equal(t, "Tornillos", orderA.Lines[0].ProductName)
	assert.Equal(t, "Tuercas", orderA.Lines[1].ProductName)
	// total = sum(qty * precio): 100*2 + 50*4 = 400
	assert.True(t, orderA.TotalEstimate.Equal(decimal.NewFromInt(400)),
		"total %s", orderA.TotalEstimate)

	orderB := orderRepo.byProvider("prov-B")
	require.NotNil(t, orderB)
	require.Len(t, orderB.Lines, 1)
	assert.True(t, orderB.TotalEstimate.Equal(decimal.NewFromInt(200)))
}

func TestSweep_StockIgualAlUmbralDispara(t *testing.T) {
	ruleRepo := &fakeRuleRepo{rows: []repository.EnabledRuleRow{
		ruleRow("p1", "Tornillos", "prov-A", 10, 10, 100, 2), // stock == umbral
		ruleRow("p2", "Tuercas", "prov-B", 11, 10, 50, 4),    // por encima, no dispara
	}}
	orderRepo := &fakeOrderRepo{}
	uc := newSweep(ruleRepo, orderRepo, SweepConfig{})

	summary, err := uc.Run(context.Background(), testCompanyID)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.OrdersCreated)
	assert.NotNil(t, orderRepo.byProvider("prov-A"))
	assert.Nil(t, orderRepo.byProvider("prov-B"))
}

func TestSweep_SinProductosBajoUmbralNoCreaNada(t *testing.T) {
	ruleRepo := &fakeRuleRepo{rows: []repository.EnabledRuleRow{
		ruleRow("p1", "Tornillos", "prov-A", 50, 10, 100, 2),
	}}
	orderRepo := &fakeOrderRepo{}
	uc := newSweep(ruleRepo, orderRepo, SweepConfig{})

	summary, err := uc.Run(context.Background(), testCompanyID)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.RulesConsidered)
	assert.Equal(t, 0, summary.OrdersCreated)
	assert.Empty(t, orderRepo.created)
}

func TestSweep_SuprimeProveedorConOrdenPendiente(t *testing.T) {
	ruleRepo := &fakeRuleRepo{rows: []repository.EnabledRuleRow{
		ruleRow("p1", "Tornillos", "prov-A", 5, 10, 100, 2),
		ruleRow("p2", "Tuercas", "prov-B", 3, 10, 50, 4),
	}}
	orderRepo := &fakeOrderRepo{open: map[string]bool{"prov-A": true}}
	uc := newSweep(ruleRepo, orderRepo, SweepConfig{SuppressPending: true})

	summary, err := uc.Run(context.Background(), testCompanyID)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Suppressed)
	assert.Equal(t, 1, summary.OrdersCreated)
	assert.Nil(t, orderRepo.byProvider("prov-A"))
	assert.NotNil(t, orderRepo.byProvider("prov-B"))
}

func TestSweep_SinSupresionCreaAunqueHayaPendiente(t *testing.T) {
	ruleRepo := &fakeRuleRepo{rows: []repository.EnabledRuleRow{
		ruleRow("p1", "Tornillos", "prov-A", 5, 10, 100, 2),
	}}
	orderRepo := &fakeOrderRepo{open: map[string]bool{"prov-A": true}}
	uc := newSweep(ruleRepo, orderRepo, SweepConfig{SuppressPending: false})

	summary, err := uc.Run(context.Background(), testCompanyID)
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Suppressed)
	assert.Equal(t, 1, summary.OrdersCreated)
}

func TestSweep_FalloDeUnProveedorNoDetieneLosDemas(t *testing.T) {
	ruleRepo := &fakeRuleRepo{rows: []repository.EnabledRuleRow{
		ruleRow("p1", "Tornillos", "prov-A", 5, 10, 100, 2),
		ruleRow("p2", "Tuercas", "prov-B", 3, 10, 50, 4),
	}}
	orderRepo := &fakeOrderRepo{createErr: map[string]error{
		"prov-A": errors.New("deadlock detectado"),
	}}
	uc := newSweep(ruleRepo, orderRepo, SweepConfig{})

	summary, err := uc.Run(context.Background(), testCompanyID)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.OrdersCreated)
	require.Len(t, summary.Errors, 1)
	assert.Contains(t, summary.Errors[0], "prov-A")
	assert.NotNil(t, orderRepo.byProvider("prov-B"))
}

func TestSweep_ErrorLeyendoReglasEsFatal(t *testing.T) {
	ruleRepo := &fakeRuleRepo{listErr: errors.New("conexión perdida")}
	uc := newSweep(ruleRepo, &fakeOrderRepo{}, SweepConfig{})

	_, err := uc.Run(context.Background(), testCompanyID)
	assert.Error(t, err)
}

func TestSweep_CorridaConcurrenteRechazada(t *testing.T) {
	uc := newSweep(&fakeRuleRepo{}, &fakeOrderRepo{}, SweepConfig{})

	// Simula una corrida en curso tomando el lock del caso de uso.
	uc.mu.Lock()
	defer uc.mu.Unlock()

	_, err := uc.Run(context.Background(), testCompanyID)
	assert.ErrorIs(t, err, domain.ErrSweepRunning)
}

func TestSweep_FalloDePDFNoImpideLaOrden(t *testing.T) {
	ruleRepo := &fakeRuleRepo{rows: []repository.EnabledRuleRow{
		ruleRow("p1", "Tornillos", "prov-A", 5, 10, 100, 2),
	}}
	orderRepo := &fakeOrderRepo{}
	uc := NewSweepUseCase(
		ruleRepo, orderRepo,
		&fakeCompanyRepo{company: &entity.Company{ID: testCompanyID, Name: "ACME"}},
		&fakeProviderRepo{providers: map[string]*entity.Provider{}},
		&fakeTxRunner{movRepo: &fakeMovementRepo{}, productRepo: &fakeProductRepo{}, orderRepo: orderRepo},
		&fakePDF{err: errors.New("fuente no encontrada")}, &fakeDocs{},
		SweepConfig{},
		logger.Nop(),
	)

	summary, err := uc.Run(context.Background(), testCompanyID)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.OrdersCreated)
	order := orderRepo.byProvider("prov-A")
	require.NotNil(t, order)
	assert.Empty(t, order.DocumentPath)
}

func TestSweep_GeneraDocumentoYActualizaRuta(t *testing.T) {
	ruleRepo := &fakeRuleRepo{rows: []repository.EnabledRuleRow{
		ruleRow("p1", "Tornillos", "prov-A", 5, 10, 100, 2),
	}}
	orderRepo := &fakeOrderRepo{}
	docs := &fakeDocs{}
	uc := NewSweepUseCase(
		ruleRepo, orderRepo,
		&fakeCompanyRepo{company: &entity.Company{ID: testCompanyID, Name: "ACME"}},
		&fakeProviderRepo{providers: map[string]*entity.Provider{
			"prov-A": {ID: "prov-A", CompanyID: testCompanyID, Name: "Proveedor A"},
		}},
		&fakeTxRunner{movRepo: &fakeMovementRepo{}, productRepo: &fakeProductRepo{}, orderRepo: orderRepo},
		&fakePDF{}, docs,
		SweepConfig{},
		logger.Nop(),
	)

	summary, err := uc.Run(context.Background(), testCompanyID)
	require.NoError(t, err)
	require.Equal(t, 1, summary.OrdersCreated)

	order := orderRepo.byProvider("prov-A")
	require.NotNil(t, order)
	assert.NotEmpty(t, order.DocumentPath)
	assert.Contains(t, docs.saved, order.Number)
	require.Len(t, orderRepo.updated, 1)
}

func TestSweep_TimeoutConfigurado(t *testing.T) {
	uc := newSweep(&fakeRuleRepo{}, &fakeOrderRepo{}, SweepConfig{Timeout: time.Nanosecond})

	// Con timeout vencido la lectura de reglas de los fakes no falla, pero la
	// corrida termina sin pánico ni bloqueo.
	_, err := uc.Run(context.Background(), testCompanyID)
	assert.NoError(t, err)
}
