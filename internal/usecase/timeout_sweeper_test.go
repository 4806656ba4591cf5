package usecase_test

import (
	"context"
	"testing"
	"time"

	"app/internal/domain/model"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSweep_RejectsExpiredUnpaidOrders(t *testing.T) {
	listing := new(OrderRepoMock)
	txOrders := new(OrderRepoMock)

	tx := new(TxManagerMock)
	tx.Repos = &TxReposMock{orders: txOrders}
	tx.On("WithinTx", mock.Anything).Return(nil)

	listing.On("ListExpiredTimeBoxed", mock.Anything).Return([]string{"ord-1", "ord-2"}, nil)

	expired := timeBoxedOrder("ord-1", time.Now().Add(-time.Hour))
	txOrders.On("FindByIDForUpdate", mock.Anything, "ord-1").Return(expired, nil)
	txOrders.On("UpdateStatusClosingWindow", mock.Anything, "ord-1",
		model.OrderStatusInitiated, model.OrderStatusTimedOutReject, mock.Anything).Return(true, nil)

	// ord-2は掃除の直前に支払いが確定した：ガードでno-opになる
	paid := model.Order{OrderID: "ord-2", Status: model.OrderStatusConfirmed}
	txOrders.On("FindByIDForUpdate", mock.Anything, "ord-2").Return(paid, nil)

	cache := newCacheStub()
	lifecycle := usecase.NewLifecycleUsecase(tx, cache, nopLogger{})
	sweeper := usecase.NewTimeoutSweeper(listing, lifecycle, nopLogger{})

	sweeper.Sweep(context.Background())

	status, ok := cache.GetStatus(context.Background(), "ord-1")
	assert.True(t, ok)
	assert.Equal(t, model.OrderStatusTimedOutReject, status)

	_, ok = cache.GetStatus(context.Background(), "ord-2")
	assert.False(t, ok)

	listing.AssertExpectations(t)
	txOrders.AssertExpectations(t)
}

func TestSweep_ListingFailure_DoesNothing(t *testing.T) {
	listing := new(OrderRepoMock)
	tx := new(TxManagerMock)

	listing.On("ListExpiredTimeBoxed", mock.Anything).Return([]string{}, assert.AnError)

	lifecycle := usecase.NewLifecycleUsecase(tx, newCacheStub(), nopLogger{})
	sweeper := usecase.NewTimeoutSweeper(listing, lifecycle, nopLogger{})

	sweeper.Sweep(context.Background())
	tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}
