package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"garment-oms/internal/dto"
	"garment-oms/internal/entities"
	"garment-oms/internal/events"
	"garment-oms/internal/repositories"
	"garment-oms/internal/timeline"
	apperrors "garment-oms/pkg/errors"
	"garment-oms/pkg/eventbus"
	"garment-oms/pkg/types"
)

type fakeOrderRepo struct {
	order           *entities.Order
	updateTimelines []timeline.Timeline
}

func (f *fakeOrderRepo) GetOrders(ctx context.Context, filter types.Filter) ([]entities.Order, uint64, error) {
	if f.order == nil {
		return nil, 0, nil
	}
	return []entities.Order{*f.order}, 1, nil
}

func (f *fakeOrderRepo) FindOrder(ctx context.Context, id uint64) (*entities.Order, error) {
	if f.order == nil || f.order.ID != id {
		return nil, apperrors.ErrNotFound
	}
	cp := *f.order
	return &cp, nil
}

func (f *fakeOrderRepo) CreateOrder(ctx context.Context, order *entities.Order) (*entities.Order, error) {
	cp := *order
	cp.ID = 1
	cp.CreatedAt = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	f.order = &cp
	return &cp, nil
}

func (f *fakeOrderRepo) UpdateOrder(ctx context.Context, id uint64, payload dto.UpdateOrderDTO) (*entities.Order, error) {
	return f.FindOrder(ctx, id)
}

func (f *fakeOrderRepo) UpdateTimeline(ctx context.Context, id uint64, tl timeline.Timeline) error {
	f.updateTimelines = append(f.updateTimelines, tl)
	f.order.ApplyTimeline(tl)
	return nil
}

func (f *fakeOrderRepo) DeleteOrder(ctx context.Context, id uint64) error { return nil }

func (f *fakeOrderRepo) GetBoardOrders(ctx context.Context) ([]entities.Order, error) {
	return nil, nil
}

func (f *fakeOrderRepo) AddPayment(ctx context.Context, orderID uint64, payload dto.CreatePaymentDTO, paidAt time.Time) (*entities.Payment, error) {
	return &entities.Payment{ID: 1, OrderID: orderID, Amount: payload.Amount, Method: payload.Method, PaidAt: paidAt}, nil
}

func (f *fakeOrderRepo) ListPayments(ctx context.Context, orderID uint64) ([]entities.Payment, error) {
	return nil, nil
}

type fakeCompanyRepo struct {
	company *entities.Company
	nextSeq uint64
}

func (f *fakeCompanyRepo) GetCompanies(ctx context.Context, filter types.Filter) ([]entities.Company, uint64, error) {
	return nil, 0, nil
}

func (f *fakeCompanyRepo) FindCompany(ctx context.Context, id uint64) (*entities.Company, error) {
	if f.company == nil || f.company.ID != id {
		return nil, apperrors.ErrNotFound
	}
	return f.company, nil
}

func (f *fakeCompanyRepo) CreateCompany(ctx context.Context, payload dto.CreateCompanyDTO) (*entities.Company, error) {
	return nil, nil
}

func (f *fakeCompanyRepo) UpdateCompany(ctx context.Context, id uint64, payload dto.UpdateCompanyDTO) (*entities.Company, error) {
	return nil, nil
}

func (f *fakeCompanyRepo) DeleteCompany(ctx context.Context, id uint64) error { return nil }

func (f *fakeCompanyRepo) NextOrderSequence(ctx context.Context, id uint64) (uint64, error) {
	f.nextSeq++
	return f.nextSeq, nil
}

type fakeClientRepo struct{ client *entities.Client }

func (f *fakeClientRepo) GetClients(ctx context.Context, filter types.Filter) ([]entities.Client, uint64, error) {
	return nil, 0, nil
}

func (f *fakeClientRepo) FindClient(ctx context.Context, id uint64) (*entities.Client, error) {
	if f.client == nil || f.client.ID != id {
		return nil, apperrors.ErrNotFound
	}
	return f.client, nil
}

func (f *fakeClientRepo) CreateClient(ctx context.Context, payload dto.CreateClientDTO) (*entities.Client, error) {
	return nil, nil
}

func (f *fakeClientRepo) UpdateClient(ctx context.Context, id uint64, payload dto.UpdateClientDTO) (*entities.Client, error) {
	return nil, nil
}

func (f *fakeClientRepo) DeleteClient(ctx context.Context, id uint64) error { return nil }

type fakeProductRepo struct{ product *entities.Product }

func (f *fakeProductRepo) GetProducts(ctx context.Context, filter types.Filter) ([]entities.Product, uint64, error) {
	return nil, 0, nil
}

func (f *fakeProductRepo) FindProduct(ctx context.Context, id uint64) (*entities.Product, error) {
	if f.product == nil || f.product.ID != id {
		return nil, apperrors.ErrNotFound
	}
	return f.product, nil
}

func (f *fakeProductRepo) CreateProduct(ctx context.Context, payload dto.CreateProductDTO) (*entities.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) UpdateProduct(ctx context.Context, id uint64, payload dto.UpdateProductDTO) (*entities.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) DeleteProduct(ctx context.Context, id uint64) error { return nil }

type fakeCache struct{ dels []string }

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) { return "", nil }

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return nil
}

func (f *fakeCache) Del(ctx context.Context, keys ...string) error {
	f.dels = append(f.dels, keys...)
	return nil
}

var _ repositories.OrderRepositoryInterface = (*fakeOrderRepo)(nil)
var _ repositories.CompanyRepositoryInterface = (*fakeCompanyRepo)(nil)
var _ repositories.ClientRepositoryInterface = (*fakeClientRepo)(nil)
var _ repositories.ProductRepositoryInterface = (*fakeProductRepo)(nil)
var _ repositories.CacheRepositoryInterface = (*fakeCache)(nil)

type orderServiceFixture struct {
	svc         *OrderService
	orderRepo   *fakeOrderRepo
	companyRepo *fakeCompanyRepo
	cache       *fakeCache
	bus         *eventbus.Bus
	stageEvents chan events.OrderStageChangedEvent
}

func newOrderServiceFixture(t *testing.T, now time.Time) *orderServiceFixture {
	t.Helper()
	logger := zap.NewNop()
	pipeline := timeline.Default()

	fx := &orderServiceFixture{
		orderRepo: &fakeOrderRepo{},
		companyRepo: &fakeCompanyRepo{company: &entities.Company{
			ID: 10, Name: "Acme Garments", ShortCode: "ACME",
		}},
		cache:       &fakeCache{},
		bus:         eventbus.New(logger),
		stageEvents: make(chan events.OrderStageChangedEvent, 8),
	}
	fx.bus.Subscribe("order.stage.changed", func(ctx context.Context, event eventbus.Event) error {
		fx.stageEvents <- event.(events.OrderStageChangedEvent)
		return nil
	})

	fx.svc = NewOrderService(
		fx.orderRepo,
		fx.companyRepo,
		&fakeClientRepo{client: &entities.Client{ID: 20, CompanyID: 10, Name: "Retail Hub"}},
		&fakeProductRepo{product: &entities.Product{ID: 30, CompanyID: 10, Name: "Polo Shirt", SKU: "POLO-1"}},
		pipeline,
		fx.bus,
		fx.cache,
		logger,
		func() time.Time { return now },
	)
	return fx
}

func (fx *orderServiceFixture) waitStageEvent(t *testing.T) events.OrderStageChangedEvent {
	t.Helper()
	select {
	case e := <-fx.stageEvents:
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("no stage changed event published")
		return events.OrderStageChangedEvent{}
	}
}

func seedOrder(fx *orderServiceFixture, now time.Time, expected *time.Time) {
	stage := "Order Confirmed"
	fx.orderRepo.order = &entities.Order{
		ID:                   1,
		OrderNumber:          "CC/ON/ACME/01",
		CompanyID:            10,
		ClientID:             20,
		ProductID:            30,
		Quantity:             100,
		UnitPrice:            12.5,
		OrderDate:            now,
		ExpectedDeliveryDate: expected,
		CurrentStage:         &stage,
		StageHistory: []timeline.HistoryEntry{
			{StageName: stage, EnteredAt: now, Status: timeline.EntryActive},
		},
		CreatedAt: now,
	}
}

func TestOrderService_CreateOrder(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	fx := newOrderServiceFixture(t, now)

	res, err := fx.svc.CreateOrder(context.Background(), dto.CreateOrderDTO{
		CompanyID: 10,
		ClientID:  20,
		ProductID: 30,
		Quantity:  100,
		UnitPrice: 12.5,
		OrderDate: "2025-03-10",
	})
	require.NoError(t, err)

	assert.Equal(t, "CC/ON/ACME/01", res.OrderNumber)
	require.NotNil(t, res.CurrentStage)
	assert.Equal(t, "Order Confirmed", *res.CurrentStage)
	assert.Equal(t, 13, res.Progress)
	assert.False(t, res.IsDelayed)
	require.Len(t, res.StageHistory, 1)
	assert.Equal(t, timeline.EntryActive, res.StageHistory[0].Status)
	assert.InDelta(t, 1250.0, res.TotalAmount, 0.001)
}

func TestOrderService_CreateOrder_MissingCompany(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	fx := newOrderServiceFixture(t, now)

	_, err := fx.svc.CreateOrder(context.Background(), dto.CreateOrderDTO{
		CompanyID: 99,
		ClientID:  20,
		ProductID: 30,
		Quantity:  10,
		UnitPrice: 5,
		OrderDate: "2025-03-10",
	})
	require.Error(t, err)

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnprocessableEntity, httpErr.Code)
	assert.Nil(t, fx.orderRepo.order)
}

func TestOrderService_ChangeStage_CommitsSingleWrite(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	fx := newOrderServiceFixture(t, now)
	seedOrder(fx, now, nil)

	res, err := fx.svc.ChangeStage(context.Background(), 1, dto.ChangeStageDTO{Stage: "Stitching"}, 42)
	require.NoError(t, err)

	require.Len(t, fx.orderRepo.updateTimelines, 1)
	tl := fx.orderRepo.updateTimelines[0]
	assert.Equal(t, "Stitching", tl.CurrentStage)
	require.Len(t, tl.History, 2)
	assert.Equal(t, timeline.EntryCompleted, tl.History[0].Status)
	assert.Equal(t, timeline.EntryActive, tl.History[1].Status)

	require.NotNil(t, res.CurrentStage)
	assert.Equal(t, "Stitching", *res.CurrentStage)
	assert.Equal(t, 63, res.Progress)

	e := fx.waitStageEvent(t)
	assert.Equal(t, uint64(1), e.OrderID)
	assert.Equal(t, "Order Confirmed", e.FromStage)
	assert.Equal(t, "Stitching", e.ToStage)
	assert.Equal(t, 63, e.Progress)
	assert.Equal(t, uint64(42), e.ActorID)
	assert.NotEmpty(t, e.EventID)

	assert.Contains(t, fx.cache.dels, boardCacheKey)
}

func TestOrderService_ChangeStage_AliasCanonicalized(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	fx := newOrderServiceFixture(t, now)
	seedOrder(fx, now, nil)

	res, err := fx.svc.ChangeStage(context.Background(), 1, dto.ChangeStageDTO{Stage: "Delivered"}, 42)
	require.NoError(t, err)

	require.NotNil(t, res.CurrentStage)
	assert.Equal(t, "Shipped", *res.CurrentStage)

	e := fx.waitStageEvent(t)
	assert.Equal(t, "Shipped", e.ToStage)
}

func TestOrderService_ChangeStage_NoOpSkipsWriteAndEvent(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	fx := newOrderServiceFixture(t, now)
	seedOrder(fx, now, nil)

	res, err := fx.svc.ChangeStage(context.Background(), 1, dto.ChangeStageDTO{Stage: "Order Confirmed"}, 42)
	require.NoError(t, err)

	assert.Empty(t, fx.orderRepo.updateTimelines)
	assert.Empty(t, fx.cache.dels)
	require.Len(t, res.StageHistory, 1)

	select {
	case e := <-fx.stageEvents:
		t.Fatalf("unexpected event published: %+v", e)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestOrderService_ChangeStage_UnknownStage(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	fx := newOrderServiceFixture(t, now)
	seedOrder(fx, now, nil)

	_, err := fx.svc.ChangeStage(context.Background(), 1, dto.ChangeStageDTO{Stage: "Dyeing"}, 42)
	require.Error(t, err)

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnprocessableEntity, httpErr.Code)
	assert.ErrorIs(t, err, timeline.ErrUnknownStage)

	assert.Empty(t, fx.orderRepo.updateTimelines)
	require.NotNil(t, fx.orderRepo.order.CurrentStage)
	assert.Equal(t, "Order Confirmed", *fx.orderRepo.order.CurrentStage)
}

func TestOrderService_ChangeStage_CompletionPublishesCompletedEvent(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	fx := newOrderServiceFixture(t, now)
	seedOrder(fx, now, nil)

	completed := make(chan events.OrderCompletedEvent, 1)
	fx.bus.Subscribe("order.completed", func(ctx context.Context, event eventbus.Event) error {
		completed <- event.(events.OrderCompletedEvent)
		return nil
	})

	res, err := fx.svc.ChangeStage(context.Background(), 1, dto.ChangeStageDTO{Stage: "Order Completed"}, 42)
	require.NoError(t, err)
	require.NotNil(t, res.CompletedAt)
	assert.Equal(t, 100, res.Progress)

	select {
	case e := <-completed:
		assert.Equal(t, uint64(1), e.OrderID)
		assert.Equal(t, now, e.CompletedAt)
	case <-time.After(2 * time.Second):
		t.Fatal("no completed event published")
	}
}

func TestOrderService_DelayedProjection(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	fx := newOrderServiceFixture(t, now)
	expected := now.AddDate(0, 0, -2)
	seedOrder(fx, now.AddDate(0, 0, -10), &expected)

	res, err := fx.svc.FindOrder(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, res.IsDelayed)

	// Shipping clears the delay flag even past the expected date.
	res, err = fx.svc.ChangeStage(context.Background(), 1, dto.ChangeStageDTO{Stage: "Shipped"}, 42)
	require.NoError(t, err)
	assert.False(t, res.IsDelayed)
	fx.waitStageEvent(t)
}

func TestOrderService_ErrUnknownStage_LeavesOrderUntouched(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	fx := newOrderServiceFixture(t, now)
	seedOrder(fx, now, nil)
	before := *fx.orderRepo.order

	_, err := fx.svc.ChangeStage(context.Background(), 1, dto.ChangeStageDTO{Stage: ""}, 42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, timeline.ErrUnknownStage))
	assert.Equal(t, before.StageHistory, fx.orderRepo.order.StageHistory)
}
