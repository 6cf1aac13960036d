package replenish

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

// Fakes en memoria para los puertos del motor de reposición.

type fakeRuleRepo struct {
	rows        []repository.EnabledRuleRow
	listErr     error
	enabledRule *entity.ReorderRule
	enabledErr  error
}

func (f *fakeRuleRepo) Upsert(*entity.ReorderRule) error                 { return nil }
func (f *fakeRuleRepo) GetByID(string) (*entity.ReorderRule, error)      { return nil, nil }
func (f *fakeRuleRepo) SetEnabled(string, bool) error                    { return nil }
func (f *fakeRuleRepo) Delete(string) error                              { return nil }
func (f *fakeRuleRepo) ListByCompany(string, int, int) ([]*entity.ReorderRule, error) {
	return nil, nil
}

func (f *fakeRuleRepo) GetEnabledByProduct(companyID, productID string) (*entity.ReorderRule, error) {
	if f.enabledErr != nil {
		return nil, f.enabledErr
	}
	if f.enabledRule != nil && f.enabledRule.ProductID == productID {
		return f.enabledRule, nil
	}
	return nil, nil
}

func (f *fakeRuleRepo) ListEnabledWithStock(_ context.Context, _ string) ([]repository.EnabledRuleRow, error) {
	return f.rows, f.listErr
}

type fakeOrderRepo struct {
	mu sync.Mutex

	created []*entity.PurchaseOrder
	updated []*entity.PurchaseOrder

	open      map[string]bool  // providerID con orden de barrido pendiente
	createErr map[string]error // providerID -> error al crear
	openErr   error
}

func (f *fakeOrderRepo) Create(o *entity.PurchaseOrder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.createErr[o.ProviderID]; err != nil {
		return err
	}
	f.created = append(f.created, o)
	return nil
}

func (f *fakeOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.created {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, nil
}

func (f *fakeOrderRepo) Update(o *entity.PurchaseOrder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, o)
	return nil
}

func (f *fakeOrderRepo) ListByCompany(string, repository.OrderFilter, int, int) ([]*entity.PurchaseOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.created, nil
}

func (f *fakeOrderRepo) HasOpenSweepOrder(_, providerID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.openErr != nil {
		return false, f.openErr
	}
	return f.open[providerID], nil
}

func (f *fakeOrderRepo) byProvider(providerID string) *entity.PurchaseOrder {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.created {
		if o.ProviderID == providerID {
			return o
		}
	}
	return nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (f *fakeProductRepo) Create(*entity.Product) error { return nil }
func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return f.products[id], nil
}
func (f *fakeProductRepo) GetByCompanyAndSKU(string, string) (*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return f.products[id], nil
}
func (f *fakeProductRepo) Update(*entity.Product) error                 { return nil }
func (f *fakeProductRepo) UpdateStock(string, decimal.Decimal) error    { return nil }
func (f *fakeProductRepo) ListByCompany(string, int, int) ([]*entity.Product, error) {
	return nil, nil
}

type fakeMovementRepo struct{}

func (f *fakeMovementRepo) Create(*entity.InventoryMovement) error { return nil }
func (f *fakeMovementRepo) ListByProduct(string, int, int) ([]*entity.InventoryMovement, error) {
	return nil, nil
}

type fakeCompanyRepo struct {
	company *entity.Company
}

func (f *fakeCompanyRepo) Create(*entity.Company) error { return nil }
func (f *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) {
	if f.company != nil && f.company.ID == id {
		return f.company, nil
	}
	return nil, nil
}
func (f *fakeCompanyRepo) ListActive() ([]*entity.Company, error) {
	if f.company == nil {
		return nil, nil
	}
	return []*entity.Company{f.company}, nil
}

type fakeProviderRepo struct {
	providers map[string]*entity.Provider
}

func (f *fakeProviderRepo) Create(*entity.Provider) error { return nil }
func (f *fakeProviderRepo) GetByID(id string) (*entity.Provider, error) {
	return f.providers[id], nil
}
func (f *fakeProviderRepo) Update(*entity.Provider) error { return nil }
func (f *fakeProviderRepo) ListByCompany(string, int, int) ([]*entity.Provider, error) {
	return nil, nil
}

// fakeTxRunner ejecuta el callback directamente contra los fakes (sin tx real).
type fakeTxRunner struct {
	movRepo     repository.InventoryMovementRepository
	productRepo repository.ProductRepository
	orderRepo   repository.PurchaseOrderRepository
	err         error
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.PurchaseOrderRepository,
) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(f.movRepo, f.productRepo, f.orderRepo)
}

type fakePDF struct {
	err   error
	calls int
}

func (f *fakePDF) GenerateOrderPDF(context.Context, *entity.PurchaseOrder, *entity.Company, *entity.Provider) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-fake"), nil
}

type fakeDocs struct {
	saved map[string][]byte
	err   error
}

func (f *fakeDocs) Save(orderNumber string, pdf []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.saved == nil {
		f.saved = make(map[string][]byte)
	}
	f.saved[orderNumber] = pdf
	return "/tmp/docs/" + orderNumber + ".pdf", nil
}
