package replenish

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

func enabledRule(productID, providerID string, trigger, qty int64, requiresApproval bool) *entity.ReorderRule {
	return &entity.ReorderRule{
		ID:               "rule-1",
		CompanyID:        testCompanyID,
		ProductID:        productID,
		ProviderID:       providerID,
		TriggerStock:     decimal.NewFromInt(trigger),
		ReorderQuantity:  decimal.NewFromInt(qty),
		RequiresApproval: requiresApproval,
		Enabled:          true,
	}
}

func newEvaluator(ruleRepo *fakeRuleRepo, orderRepo *fakeOrderRepo, products map[string]*entity.Product) *ImmediateEvaluator {
	productRepo := &fakeProductRepo{products: products}
	return NewImmediateEvaluator(
		&fakeTxRunner{movRepo: &fakeMovementRepo{}, productRepo: productRepo, orderRepo: orderRepo},
		ruleRepo, productRepo, "system",
	)
}

func TestEvaluator_SinReglaNoHaceNada(t *testing.T) {
	uc := newEvaluator(&fakeRuleRepo{}, &fakeOrderRepo{}, nil)

	po, err := uc.Evaluate(context.Background(), testCompanyID, "p1", decimal.NewFromInt(0))
	require.NoError(t, err)
	assert.Nil(t, po)
}

func TestEvaluator_StockSobreUmbralNoDispara(t *testing.T) {
	ruleRepo := &fakeRuleRepo{enabledRule: enabledRule("p1", "prov-A", 10, 100, true)}
	orderRepo := &fakeOrderRepo{}
	uc := newEvaluator(ruleRepo, orderRepo, nil)

	po, err := uc.Evaluate(context.Background(), testCompanyID, "p1", decimal.NewFromInt(11))
	require.NoError(t, err)
	assert.Nil(t, po)
	assert.Empty(t, orderRepo.created)
}

func TestEvaluator_StockIgualAlUmbralDispara(t *testing.T) {
	ruleRepo := &fakeRuleRepo{enabledRule: enabledRule("p1", "prov-A", 10, 100, true)}
	orderRepo := &fakeOrderRepo{}
	products := map[string]*entity.Product{
		"p1": {ID: "p1", CompanyID: testCompanyID, Name: "Tornillos", Price: decimal.NewFromInt(3)},
	}
	uc := newEvaluator(ruleRepo, orderRepo, products)

	po, err := uc.Evaluate(context.Background(), testCompanyID, "p1", decimal.NewFromInt(10))
	require.NoError(t, err)
	require.NotNil(t, po)

	assert.Equal(t, entity.OrderOriginImmediateTrigger, po.Origin)
	assert.Equal(t, entity.OrderStatusPendingApproval, po.Status)
	require.Len(t, po.Lines, 1)
	assert.True(t, po.Lines[0].Quantity.Equal(decimal.NewFromInt(100)))
	assert.True(t, po.Lines[0].UnitPrice.Equal(decimal.NewFromInt(3)))
	assert.True(t, po.TotalEstimate.Equal(decimal.NewFromInt(300)))
	require.Len(t, orderRepo.created, 1)
}

func TestEvaluator_SinAprobacionRequeridaQuedaAprobada(t *testing.T) {
	ruleRepo := &fakeRuleRepo{enabledRule: enabledRule("p1", "prov-A", 10, 100, false)}
	orderRepo := &fakeOrderRepo{}
	products := map[string]*entity.Product{
		"p1": {ID: "p1", CompanyID: testCompanyID, Name: "Tornillos", Price: decimal.NewFromInt(3)},
	}
	uc := newEvaluator(ruleRepo, orderRepo, products)

	po, err := uc.Evaluate(context.Background(), testCompanyID, "p1", decimal.NewFromInt(2))
	require.NoError(t, err)
	require.NotNil(t, po)

	assert.Equal(t, entity.OrderStatusApproved, po.Status)
	assert.Equal(t, "system", po.ApprovedBy)
	require.NotNil(t, po.ApprovedAt)
}

func TestEvaluator_NumeroDeOrdenUnicoPorCreacion(t *testing.T) {
	ruleRepo := &fakeRuleRepo{enabledRule: enabledRule("p1", "prov-A", 10, 100, true)}
	orderRepo := &fakeOrderRepo{}
	products := map[string]*entity.Product{
		"p1": {ID: "p1", CompanyID: testCompanyID, Name: "Tornillos", Price: decimal.NewFromInt(3)},
	}
	uc := newEvaluator(ruleRepo, orderRepo, products)

	first, err := uc.Evaluate(context.Background(), testCompanyID, "p1", decimal.NewFromInt(5))
	require.NoError(t, err)
	second, err := uc.Evaluate(context.Background(), testCompanyID, "p1", decimal.NewFromInt(4))
	require.NoError(t, err)

	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.NotEqual(t, first.Number, second.Number)
	assert.Regexp(t, `^OC-[0-9A-Z]{26}$`, first.Number)
}

func TestEvaluator_ErrorDeReglasSePropaga(t *testing.T) {
	ruleRepo := &fakeRuleRepo{enabledErr: errors.New("conexión perdida")}
	uc := newEvaluator(ruleRepo, &fakeOrderRepo{}, nil)

	_, err := uc.Evaluate(context.Background(), testCompanyID, "p1", decimal.NewFromInt(1))
	assert.Error(t, err)
}
