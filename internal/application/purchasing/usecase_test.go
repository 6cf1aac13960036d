package purchasing

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
	"github.com/jhoicas/Compras-api/pkg/logger"
)

const testCompanyID = "co-1"

// ── Fakes ─────────────────────────────────────────────────────────────────────

type memOrderRepo struct {
	orders map[string]*entity.PurchaseOrder
}

func newMemOrderRepo(orders ...*entity.PurchaseOrder) *memOrderRepo {
	m := &memOrderRepo{orders: make(map[string]*entity.PurchaseOrder)}
	for _, o := range orders {
		m.orders[o.ID] = o
	}
	return m
}

func (m *memOrderRepo) Create(o *entity.PurchaseOrder) error {
	m.orders[o.ID] = o
	return nil
}
func (m *memOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	return m.orders[id], nil
}
func (m *memOrderRepo) Update(o *entity.PurchaseOrder) error {
	m.orders[o.ID] = o
	return nil
}
func (m *memOrderRepo) ListByCompany(string, repository.OrderFilter, int, int) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, o := range m.orders {
		out = append(out, o)
	}
	return out, nil
}
func (m *memOrderRepo) HasOpenSweepOrder(string, string) (bool, error) { return false, nil }

type memProductRepo struct {
	products map[string]*entity.Product
	stockUpd map[string]decimal.Decimal
}

func newMemProductRepo(products ...*entity.Product) *memProductRepo {
	m := &memProductRepo{
		products: make(map[string]*entity.Product),
		stockUpd: make(map[string]decimal.Decimal),
	}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *memProductRepo) Create(*entity.Product) error { return nil }
func (m *memProductRepo) GetByID(id string) (*entity.Product, error) {
	return m.products[id], nil
}
func (m *memProductRepo) GetByCompanyAndSKU(string, string) (*entity.Product, error) {
	return nil, nil
}
func (m *memProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return m.products[id], nil
}
func (m *memProductRepo) Update(*entity.Product) error { return nil }
func (m *memProductRepo) UpdateStock(productID string, stock decimal.Decimal) error {
	m.stockUpd[productID] = stock
	if p, ok := m.products[productID]; ok {
		p.CurrentStock = stock
	}
	return nil
}
func (m *memProductRepo) ListByCompany(string, int, int) ([]*entity.Product, error) {
	return nil, nil
}

type memMovementRepo struct {
	movements []*entity.InventoryMovement
}

func (m *memMovementRepo) Create(mov *entity.InventoryMovement) error {
	m.movements = append(m.movements, mov)
	return nil
}
func (m *memMovementRepo) ListByProduct(string, int, int) ([]*entity.InventoryMovement, error) {
	return nil, nil
}

type memProviderRepo struct {
	providers map[string]*entity.Provider
}

func (m *memProviderRepo) Create(*entity.Provider) error { return nil }
func (m *memProviderRepo) GetByID(id string) (*entity.Provider, error) {
	return m.providers[id], nil
}
func (m *memProviderRepo) Update(*entity.Provider) error { return nil }
func (m *memProviderRepo) ListByCompany(string, int, int) ([]*entity.Provider, error) {
	return nil, nil
}

type memCompanyRepo struct {
	company *entity.Company
}

func (m *memCompanyRepo) Create(*entity.Company) error { return nil }
func (m *memCompanyRepo) GetByID(id string) (*entity.Company, error) {
	if m.company != nil && m.company.ID == id {
		return m.company, nil
	}
	return nil, nil
}
func (m *memCompanyRepo) ListActive() ([]*entity.Company, error) { return nil, nil }

type memTxRunner struct {
	movRepo     *memMovementRepo
	productRepo *memProductRepo
	orderRepo   *memOrderRepo
}

func (m *memTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.PurchaseOrderRepository,
) error) error {
	return fn(m.movRepo, m.productRepo, m.orderRepo)
}

type stubPDF struct{ err error }

func (s *stubPDF) GenerateOrderPDF(context.Context, *entity.PurchaseOrder, *entity.Company, *entity.Provider) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []byte("%PDF-fake"), nil
}

type stubDocs struct{ saved map[string][]byte }

func (s *stubDocs) Save(orderNumber string, pdf []byte) (string, error) {
	if s.saved == nil {
		s.saved = make(map[string][]byte)
	}
	s.saved[orderNumber] = pdf
	return "/tmp/" + orderNumber + ".pdf", nil
}

type stubMailer struct {
	err  error
	sent int
	to   string
}

func (s *stubMailer) SendOrder(_ context.Context, to, _, _ string, _ []byte, _ string) error {
	if s.err != nil {
		return s.err
	}
	s.sent++
	s.to = to
	return nil
}

// ── Escenario ─────────────────────────────────────────────────────────────────

type fixture struct {
	uc          *UseCase
	orderRepo   *memOrderRepo
	productRepo *memProductRepo
	movRepo     *memMovementRepo
	mailer      *stubMailer
}

func newFixture(t *testing.T, orders ...*entity.PurchaseOrder) *fixture {
	t.Helper()
	orderRepo := newMemOrderRepo(orders...)
	productRepo := newMemProductRepo(
		&entity.Product{ID: "p1", CompanyID: testCompanyID, Name: "Tornillos",
			Price: decimal.NewFromInt(3), CurrentStock: decimal.NewFromInt(7)},
		&entity.Product{ID: "p2", CompanyID: testCompanyID, Name: "Tuercas",
			Price: decimal.NewFromInt(5), CurrentStock: decimal.NewFromInt(2)},
	)
	movRepo := &memMovementRepo{}
	mailer := &stubMailer{}
	uc := NewUseCase(
		&memTxRunner{movRepo: movRepo, productRepo: productRepo, orderRepo: orderRepo},
		orderRepo, productRepo,
		&memProviderRepo{providers: map[string]*entity.Provider{
			"prov-A": {ID: "prov-A", CompanyID: testCompanyID, Name: "Proveedor A", Email: "compras@proveedora.co"},
			"prov-sin-mail": {ID: "prov-sin-mail", CompanyID: testCompanyID, Name: "Sin Mail"},
		}},
		&memCompanyRepo{company: &entity.Company{ID: testCompanyID, Name: "ACME", NIT: "900123456"}},
		&stubPDF{}, &stubDocs{}, mailer,
		logger.Nop(),
	)
	return &fixture{uc: uc, orderRepo: orderRepo, productRepo: productRepo, movRepo: movRepo, mailer: mailer}
}

func orderInStatus(id, providerID, status, origin string) *entity.PurchaseOrder {
	return &entity.PurchaseOrder{
		ID:         id,
		CompanyID:  testCompanyID,
		ProviderID: providerID,
		Number:     "OC-TEST" + id,
		Origin:     origin,
		Status:     status,
		Lines: []entity.OrderLine{
			{ID: "l1", OrderID: id, ProductID: "p1", ProductName: "Tornillos",
				Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(3)},
			{ID: "l2", OrderID: id, ProductID: "p2", ProductName: "Tuercas",
				Quantity: decimal.NewFromInt(4), UnitPrice: decimal.NewFromInt(5)},
		},
		TotalEstimate: decimal.NewFromInt(50),
	}
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestCreateDraft_TotalYSnapshotDePrecios(t *testing.T) {
	f := newFixture(t)

	po, err := f.uc.CreateDraft(context.Background(), testCompanyID, "prov-A", "urgente", []LineInput{
		{ProductID: "p1", Quantity: decimal.NewFromInt(10)},                                  // precio del producto: 3
		{ProductID: "p2", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(8)}, // precio explícito
	})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusDraft, po.Status)
	assert.Equal(t, entity.OrderOriginManual, po.Origin)
	require.Len(t, po.Lines, 2)
	assert.True(t, po.Lines[0].UnitPrice.Equal(decimal.NewFromInt(3)))
	assert.True(t, po.Lines[1].UnitPrice.Equal(decimal.NewFromInt(8)))
	// 10*3 + 2*8 = 46
	assert.True(t, po.TotalEstimate.Equal(decimal.NewFromInt(46)), "total %s", po.TotalEstimate)
	assert.Regexp(t, `^OC-`, po.Number)
}

func TestCreateDraft_RechazaCantidadInvalida(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.CreateDraft(context.Background(), testCompanyID, "prov-A", "", []LineInput{
		{ProductID: "p1", Quantity: decimal.Zero},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.CreateDraft(context.Background(), testCompanyID, "prov-A", "", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateDraft_ProveedorDeOtroTenant(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.CreateDraft(context.Background(), "otra-empresa", "prov-A", "", []LineInput{
		{ProductID: "p1", Quantity: decimal.NewFromInt(1)},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestFlujoManualCompleto(t *testing.T) {
	po := orderInStatus("o1", "prov-A", entity.OrderStatusDraft, entity.OrderOriginManual)
	f := newFixture(t, po)
	ctx := context.Background()

	require.NoError(t, f.uc.Submit(ctx, testCompanyID, "o1"))
	assert.Equal(t, entity.OrderStatusPendingApproval, po.Status)

	require.NoError(t, f.uc.Approve(ctx, testCompanyID, "o1", "maria"))
	assert.Equal(t, entity.OrderStatusApproved, po.Status)
	assert.Equal(t, "maria", po.ApprovedBy)
	require.NotNil(t, po.ApprovedAt)

	require.NoError(t, f.uc.Send(ctx, testCompanyID, "o1"))
	assert.Equal(t, entity.OrderStatusSent, po.Status)
	require.NotNil(t, po.SentAt)
	assert.Equal(t, 1, f.mailer.sent)
	assert.Equal(t, "compras@proveedora.co", f.mailer.to)

	require.NoError(t, f.uc.Receive(ctx, testCompanyID, "o1", "maria"))
	assert.Equal(t, entity.OrderStatusReceived, po.Status)
}

func TestApprove_ExigeActor(t *testing.T) {
	po := orderInStatus("o1", "prov-A", entity.OrderStatusPendingApproval, entity.OrderOriginManual)
	f := newFixture(t, po)

	err := f.uc.Approve(context.Background(), testCompanyID, "o1", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, entity.OrderStatusPendingApproval, po.Status)
}

func TestCancel_EsTerminal(t *testing.T) {
	po := orderInStatus("o1", "prov-A", entity.OrderStatusApproved, entity.OrderOriginManual)
	f := newFixture(t, po)
	ctx := context.Background()

	require.NoError(t, f.uc.Cancel(ctx, testCompanyID, "o1"))
	assert.Equal(t, entity.OrderStatusCancelled, po.Status)

	err := f.uc.Send(ctx, testCompanyID, "o1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, 0, f.mailer.sent)
}

func TestSend_OrdenDelBarridoDesdePendingReview(t *testing.T) {
	po := orderInStatus("o1", "prov-A", entity.OrderStatusPendingReview, entity.OrderOriginBatchSweep)
	f := newFixture(t, po)

	require.NoError(t, f.uc.Send(context.Background(), testCompanyID, "o1"))
	assert.Equal(t, entity.OrderStatusSent, po.Status)
}

func TestSend_FalloDeCorreoNoCambiaEstado(t *testing.T) {
	po := orderInStatus("o1", "prov-A", entity.OrderStatusApproved, entity.OrderOriginManual)
	f := newFixture(t, po)
	f.mailer.err = errors.New("smtp: conexión rechazada")

	err := f.uc.Send(context.Background(), testCompanyID, "o1")
	require.Error(t, err)
	assert.Equal(t, entity.OrderStatusApproved, po.Status)
	assert.Nil(t, po.SentAt)
}

func TestSend_ProveedorSinEmail(t *testing.T) {
	po := orderInStatus("o1", "prov-sin-mail", entity.OrderStatusApproved, entity.OrderOriginManual)
	f := newFixture(t, po)

	err := f.uc.Send(context.Background(), testCompanyID, "o1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, entity.OrderStatusApproved, po.Status)
}

func TestReceive_IncrementaStockYRegistraMovimientos(t *testing.T) {
	po := orderInStatus("o1", "prov-A", entity.OrderStatusSent, entity.OrderOriginManual)
	f := newFixture(t, po)

	require.NoError(t, f.uc.Receive(context.Background(), testCompanyID, "o1", "juan"))

	assert.Equal(t, entity.OrderStatusReceived, po.Status)
	// Stock inicial p1=7 + 10 recibidos; p2=2 + 4 recibidos.
	assert.True(t, f.productRepo.stockUpd["p1"].Equal(decimal.NewFromInt(17)))
	assert.True(t, f.productRepo.stockUpd["p2"].Equal(decimal.NewFromInt(6)))

	require.Len(t, f.movRepo.movements, 2)
	for _, mov := range f.movRepo.movements {
		assert.Equal(t, entity.MovementTypeRECEIPT, mov.Type)
		assert.Equal(t, po.Number, mov.Reference)
		assert.Equal(t, "juan", mov.CreatedBy)
		assert.True(t, mov.Quantity.GreaterThan(decimal.Zero))
	}
}

func TestReceive_SoloDesdeSent(t *testing.T) {
	po := orderInStatus("o1", "prov-A", entity.OrderStatusApproved, entity.OrderOriginManual)
	f := newFixture(t, po)

	err := f.uc.Receive(context.Background(), testCompanyID, "o1", "juan")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Empty(t, f.movRepo.movements)
}

func TestReceive_EsIdempotenteEnEstadoTerminal(t *testing.T) {
	po := orderInStatus("o1", "prov-A", entity.OrderStatusSent, entity.OrderOriginManual)
	f := newFixture(t, po)
	ctx := context.Background()

	require.NoError(t, f.uc.Receive(ctx, testCompanyID, "o1", "juan"))
	err := f.uc.Receive(ctx, testCompanyID, "o1", "juan")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	// El stock no se aplica dos veces.
	require.Len(t, f.movRepo.movements, 2)
}

func TestGetByID_OrdenAjenaEsForbidden(t *testing.T) {
	po := orderInStatus("o1", "prov-A", entity.OrderStatusDraft, entity.OrderOriginManual)
	f := newFixture(t, po)

	_, err := f.uc.GetByID(context.Background(), "otra-empresa", "o1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestList_FiltroDeEstadoInvalido(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.List(context.Background(), testCompanyID, repository.OrderFilter{Status: "NO_EXISTE"}, 20, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
