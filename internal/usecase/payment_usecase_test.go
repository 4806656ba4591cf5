package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type GatewayMock struct{ mock.Mock }

func (m *GatewayMock) CreatePaymentIntent(ctx context.Context, in usecase.GatewayIntentInput) (usecase.GatewayIntent, error) {
	args := m.Called(ctx, in)
	intent, _ := args.Get(0).(usecase.GatewayIntent)
	return intent, args.Error(1)
}

func TestCreatePayment_TotalFromSnapshotPrices(t *testing.T) {
	orders := new(OrderRepoMock)
	customers := new(CustomerRepoMock)
	items := new(OrderItemRepoMock)
	payments := new(PaymentRepoMock)
	gateway := new(GatewayMock)

	tx := new(TxManagerMock)
	tx.Repos = &TxReposMock{orders: orders, orderItems: items, customers: customers}
	tx.On("WithinTx", mock.Anything).Return(nil)

	customer := model.Customer{CustomerNo: 42, Email: "kari@example.com", FirstName: "Kari"}

	orders.On("FindByID", mock.Anything, "ord-1").Return(model.Order{
		OrderID: "ord-1", CustomerNo: 42, Status: model.OrderStatusInitiated,
	}, nil)
	customers.On("FindByNo", mock.Anything, int64(42)).Return(customer, nil)
	items.On("ListByOrderID", mock.Anything, "ord-1").Return([]model.OrderItem{
		{OrderID: "ord-1", ProductSkuNo: 10, Price: 250, Quantity: 2},
		{OrderID: "ord-1", ProductSkuNo: 20, Price: 100, Quantity: 1},
	}, nil)

	// 合計はスナップショット価格から：250*2 + 100*1
	gateway.On("CreatePaymentIntent", mock.Anything, usecase.GatewayIntentInput{
		OrderID:  "ord-1",
		Total:    600,
		Customer: customer,
	}).Return(usecase.GatewayIntent{
		TransactionID: "pi_1",
		ClientSecret:  "pi_1_secret",
		Status:        "requires_payment_method",
		Amount:        60000,
		Raw:           `{"id":"pi_1"}`,
	}, nil)

	payments.On("Create", mock.Anything, mock.MatchedBy(func(p model.StripePayment) bool {
		return p.OrderID == "ord-1" &&
			p.StripeTransactionID == "pi_1" &&
			p.Amount == 60000 &&
			p.InitiationResponse == `{"id":"pi_1"}`
	})).Return(nil)

	uc := usecase.NewPaymentUsecase(tx, payments, gateway)

	out, err := uc.CreatePayment(context.Background(), "ord-1", 42)
	assert.NoError(t, err)
	assert.Equal(t, "pi_1_secret", out.ClientSecret)

	gateway.AssertExpectations(t)
	payments.AssertExpectations(t)
}

func TestCreatePayment_OrderNotFound(t *testing.T) {
	orders := new(OrderRepoMock)
	payments := new(PaymentRepoMock)
	gateway := new(GatewayMock)

	tx := new(TxManagerMock)
	tx.Repos = &TxReposMock{orders: orders}
	tx.On("WithinTx", mock.Anything).Return(nil)

	orders.On("FindByID", mock.Anything, "nope").Return(model.Order{}, repo.ErrNotFound)

	uc := usecase.NewPaymentUsecase(tx, payments, gateway)

	_, err := uc.CreatePayment(context.Background(), "nope", 42)
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 404, he.Status)

	gateway.AssertNotCalled(t, "CreatePaymentIntent", mock.Anything, mock.Anything)
}

func TestCreatePayment_GatewayFailure_NoPaymentRecord(t *testing.T) {
	orders := new(OrderRepoMock)
	customers := new(CustomerRepoMock)
	items := new(OrderItemRepoMock)
	payments := new(PaymentRepoMock)
	gateway := new(GatewayMock)

	tx := new(TxManagerMock)
	tx.Repos = &TxReposMock{orders: orders, orderItems: items, customers: customers}
	tx.On("WithinTx", mock.Anything).Return(nil)

	orders.On("FindByID", mock.Anything, "ord-1").Return(model.Order{OrderID: "ord-1", CustomerNo: 42}, nil)
	customers.On("FindByNo", mock.Anything, int64(42)).Return(model.Customer{CustomerNo: 42}, nil)
	items.On("ListByOrderID", mock.Anything, "ord-1").Return([]model.OrderItem{}, nil)
	gateway.On("CreatePaymentIntent", mock.Anything, mock.Anything).
		Return(usecase.GatewayIntent{}, usecase.NewHTTPError(502, "payment gateway unavailable"))

	uc := usecase.NewPaymentUsecase(tx, payments, gateway)

	_, err := uc.CreatePayment(context.Background(), "ord-1", 42)
	assert.Error(t, err)
	payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// =====================
// Restock tests
// =====================

func TestRestock_RecordsAdjustment(t *testing.T) {
	stock := new(StockRepoMock)
	tx := new(TxManagerMock)
	tx.Repos = &TxReposMock{stock: stock}
	tx.On("WithinTx", mock.Anything).Return(nil)

	stock.On("Increase", mock.Anything, int64(7), int64(5)).Return(nil)
	stock.On("CreateAdjustment", mock.Anything, mock.MatchedBy(func(a model.StockAdjustment) bool {
		return a.SkuID == 7 && a.Delta == 5 && a.Reason == "returned goods"
	})).Return(nil)

	uc := usecase.NewStockUsecase(tx)

	err := uc.Restock(context.Background(), 7, 5, "returned goods")
	assert.NoError(t, err)
	stock.AssertExpectations(t)
}

func TestRestock_RejectsNonPositiveQuantity(t *testing.T) {
	tx := new(TxManagerMock)
	uc := usecase.NewStockUsecase(tx)

	for _, qty := range []int64{0, -3} {
		err := uc.Restock(context.Background(), 7, qty, "oops")
		he, ok := usecase.AsHTTPError(err)
		if assert.True(t, ok, "qty=%d", qty) {
			assert.Equal(t, 400, he.Status)
		}
	}
	tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}
